package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

const (
	minYear = 1970
	maxYear = 9999
	day     = 24 * time.Hour
)

// Engine computes order analytics in one calendar location. The location must
// match the session time zone of the store so day keys line up.
type Engine struct {
	repo   Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewEngine(repo Repository, loc *time.Location, logger *zap.Logger) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		repo:   repo,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// GetDashboardStats uses sliding windows (now minus N days) for the counts; the
// day series hold exactly N calendar days ending today.
func (e *Engine) GetDashboardStats(ctx context.Context, ownerID string) (*domain.DashboardStats, error) {
	now := e.now().In(e.loc)
	since7 := now.Add(-7 * day)
	since30 := now.Add(-30 * day)

	total, err := e.repo.CountOrders(ctx, ownerID, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseError("counting orders", err)
	}
	last7, err := e.repo.CountOrders(ctx, ownerID, &since7)
	if err != nil {
		return nil, apperrors.NewDatabaseError("counting orders in last 7 days", err)
	}
	last30, err := e.repo.CountOrders(ctx, ownerID, &since30)
	if err != nil {
		return nil, apperrors.NewDatabaseError("counting orders in last 30 days", err)
	}

	tomorrow := StartOfDay(now, e.loc).AddDate(0, 0, 1)
	rows30, err := e.repo.DailyTotals(ctx, ownerID, since30, tomorrow)
	if err != nil {
		return nil, apperrors.NewDatabaseError("loading 30 day series", err)
	}
	rows7, err := e.repo.DailyTotals(ctx, ownerID, since7, tomorrow)
	if err != nil {
		return nil, apperrors.NewDatabaseError("loading 7 day series", err)
	}

	monthStart, monthEnd := MonthBounds(now.Year(), now.Month(), e.loc)
	monthRows, err := e.repo.DailyTotals(ctx, ownerID, monthStart, monthEnd.Add(time.Second))
	if err != nil {
		return nil, apperrors.NewDatabaseError("loading current month", err)
	}
	monthCount, monthValue := Summarize(FillDays(monthStart, monthEnd.Day(), monthRows, e.loc))

	stats := &domain.DashboardStats{
		TotalOrders:      total,
		OrdersLast7Days:  last7,
		OrdersLast30Days: last30,
		OrdersByDay7:     FillDays(now.AddDate(0, 0, -6), 7, rows7, e.loc),
		OrdersByDay30:    FillDays(now.AddDate(0, 0, -29), 30, rows30, e.loc),
		CurrentMonth: domain.MonthSummary{
			Year:       now.Year(),
			Month:      int(now.Month()),
			Count:      monthCount,
			TotalValue: monthValue,
		},
	}

	e.logger.Debug("dashboard stats computed",
		zap.String("ownerId", ownerID), zap.Int("totalOrders", total), zap.Int("last7", last7), zap.Int("last30", last30))
	return stats, nil
}

// GetWeeklyOrders reports the week whose Monday is (week-1) weeks after the
// first Monday of year. Week 53 may run into the next year.
func (e *Engine) GetWeeklyOrders(ctx context.Context, ownerID string, year, week int) (*domain.WeeklyOrders, error) {
	var details []apperrors.ValidationDetail
	if err := validateYear(year); err != nil {
		details = append(details, *err)
	}
	if week < 1 || week > 53 {
		details = append(details, apperrors.ValidationDetail{Field: "week", Message: "week must be between 1 and 53"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid week", details...)
	}

	start, end := WeekBounds(year, week, e.loc)
	rows, err := e.repo.DailyTotals(ctx, ownerID, start, end.Add(time.Second))
	if err != nil {
		return nil, apperrors.NewDatabaseError("loading weekly orders", err)
	}

	return &domain.WeeklyOrders{
		OrdersByDay: FillDays(start, 7, rows, e.loc),
		WeekStart:   start,
		WeekEnd:     end,
	}, nil
}

func (e *Engine) GetMonthlyOrders(ctx context.Context, ownerID string, year, month int) (*domain.MonthlyOrders, error) {
	var details []apperrors.ValidationDetail
	if err := validateYear(year); err != nil {
		details = append(details, *err)
	}
	if month < 1 || month > 12 {
		details = append(details, apperrors.ValidationDetail{Field: "month", Message: "month must be between 1 and 12"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid month", details...)
	}

	start, end := MonthBounds(year, time.Month(month), e.loc)
	rows, err := e.repo.DailyTotals(ctx, ownerID, start, end.Add(time.Second))
	if err != nil {
		return nil, apperrors.NewDatabaseError("loading monthly orders", err)
	}

	return &domain.MonthlyOrders{
		Year:        year,
		Month:       month,
		OrdersByDay: FillDays(start, end.Day(), rows, e.loc),
	}, nil
}

func validateYear(year int) *apperrors.ValidationDetail {
	if year < minYear || year > maxYear {
		return &apperrors.ValidationDetail{
			Field:   "year",
			Message: fmt.Sprintf("year must be between %d and %d", minYear, maxYear),
		}
	}
	return nil
}
