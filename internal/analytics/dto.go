package analytics

import (
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
)

type DayBucketResponse struct {
	Date       string    `json:"date"`
	Count      int       `json:"count"`
	TotalValue dto.Money `json:"totalValue"`
}

type MonthSummaryResponse struct {
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Count      int       `json:"count"`
	TotalValue dto.Money `json:"totalValue"`
}

type DashboardResponse struct {
	TotalOrders      int                  `json:"totalOrders"`
	OrdersLast7Days  int                  `json:"ordersLast7Days"`
	OrdersLast30Days int                  `json:"ordersLast30Days"`
	OrdersByDay7     []DayBucketResponse  `json:"ordersByDay7"`
	OrdersByDay30    []DayBucketResponse  `json:"ordersByDay30"`
	CurrentMonth     MonthSummaryResponse `json:"currentMonth"`
}

type WeeklyResponse struct {
	OrdersByDay []DayBucketResponse `json:"ordersByDay"`
	WeekStart   time.Time           `json:"weekStart"`
	WeekEnd     time.Time           `json:"weekEnd"`
}

type MonthlyResponse struct {
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	OrdersByDay []DayBucketResponse `json:"ordersByDay"`
}

func toBuckets(buckets []domain.DayBucket) []DayBucketResponse {
	out := make([]DayBucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = DayBucketResponse{Date: b.Date, Count: b.Count, TotalValue: dto.NewMoney(b.TotalValue)}
	}
	return out
}

func toDashboardResponse(stats domain.DashboardStats) DashboardResponse {
	return DashboardResponse{
		TotalOrders:      stats.TotalOrders,
		OrdersLast7Days:  stats.OrdersLast7Days,
		OrdersLast30Days: stats.OrdersLast30Days,
		OrdersByDay7:     toBuckets(stats.OrdersByDay7),
		OrdersByDay30:    toBuckets(stats.OrdersByDay30),
		CurrentMonth: MonthSummaryResponse{
			Year:       stats.CurrentMonth.Year,
			Month:      stats.CurrentMonth.Month,
			Count:      stats.CurrentMonth.Count,
			TotalValue: dto.NewMoney(stats.CurrentMonth.TotalValue),
		},
	}
}
