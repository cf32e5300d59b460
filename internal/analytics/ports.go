package analytics

import (
	"context"
	"time"

	"orderdesk/internal/domain"
)

type Repository interface {
	CountOrders(ctx context.Context, ownerID string, since *time.Time) (int, error)
	DailyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]domain.DailyTotal, error)
}

type Service interface {
	GetDashboardStats(ctx context.Context, ownerID string) (*domain.DashboardStats, error)
	GetWeeklyOrders(ctx context.Context, ownerID string, year, week int) (*domain.WeeklyOrders, error)
	GetMonthlyOrders(ctx context.Context, ownerID string, year, month int) (*domain.MonthlyOrders, error)
}
