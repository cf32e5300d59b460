package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayKeyLayout is the calendar-day key shared by SQL grouping and bucket filling.
const DayKeyLayout = "2006-01-02"

// DailyTotal is one grouped row: orders created on Day and the sum of their totals.
type DailyTotal struct {
	Day        string
	Count      int
	TotalValue decimal.Decimal
}

type DayBucket struct {
	Date       string
	Count      int
	TotalValue decimal.Decimal
}

type MonthSummary struct {
	Year       int
	Month      int
	Count      int
	TotalValue decimal.Decimal
}

type DashboardStats struct {
	TotalOrders      int
	OrdersLast7Days  int
	OrdersLast30Days int
	OrdersByDay7     []DayBucket
	OrdersByDay30    []DayBucket
	CurrentMonth     MonthSummary
}

type WeeklyOrders struct {
	OrdersByDay []DayBucket
	WeekStart   time.Time
	WeekEnd     time.Time
}

type MonthlyOrders struct {
	Year        int
	Month       int
	OrdersByDay []DayBucket
}
