package analytics

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

type fakeOrder struct {
	ownerID   string
	createdAt time.Time
	total     string
}

// fakeRepository aggregates in memory the way the SQL store does, grouping by
// calendar day in loc.
type fakeRepository struct {
	orders []fakeOrder
	loc    *time.Location
	err    error
}

func (f *fakeRepository) CountOrders(ctx context.Context, ownerID string, since *time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, o := range f.orders {
		if o.ownerID != ownerID {
			continue
		}
		if since != nil && o.createdAt.Before(*since) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeRepository) DailyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]domain.DailyTotal, error) {
	if f.err != nil {
		return nil, f.err
	}
	byDay := map[string]*domain.DailyTotal{}
	for _, o := range f.orders {
		if o.ownerID != ownerID || o.createdAt.Before(from) || !o.createdAt.Before(to) {
			continue
		}
		key := DayKey(o.createdAt, f.loc)
		row, ok := byDay[key]
		if !ok {
			row = &domain.DailyTotal{Day: key, TotalValue: decimal.Zero}
			byDay[key] = row
		}
		row.Count++
		row.TotalValue = row.TotalValue.Add(decimal.RequireFromString(o.total))
	}

	var rows []domain.DailyTotal
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })
	return rows, nil
}

func newTestEngine(repo *fakeRepository, now time.Time) *Engine {
	e := NewEngine(repo, repo.loc, zap.NewNop())
	e.now = func() time.Time { return now }
	return e
}

func TestGetDashboardStats(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepository{loc: time.UTC, orders: []fakeOrder{
		{"owner-1", now.Add(-time.Hour), "10.00"},
		{"owner-1", now.Add(-3 * 24 * time.Hour), "5.25"},
		{"owner-1", now.Add(-10 * 24 * time.Hour), "7.00"},
		{"owner-1", now.Add(-40 * 24 * time.Hour), "1.00"},
		{"owner-2", now.Add(-time.Hour), "999.00"},
	}}

	stats, err := newTestEngine(repo, now).GetDashboardStats(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 2, stats.OrdersLast7Days)
	assert.Equal(t, 3, stats.OrdersLast30Days)

	require.Len(t, stats.OrdersByDay7, 7)
	assert.Equal(t, "2024-03-09", stats.OrdersByDay7[0].Date)
	assert.Equal(t, "2024-03-15", stats.OrdersByDay7[6].Date)
	assert.Equal(t, 1, stats.OrdersByDay7[6].Count)
	assert.Equal(t, "10.00", stats.OrdersByDay7[6].TotalValue.StringFixed(2))
	assert.Equal(t, 1, stats.OrdersByDay7[3].Count)

	require.Len(t, stats.OrdersByDay30, 30)
	assert.Equal(t, "2024-02-15", stats.OrdersByDay30[0].Date)
	assert.Equal(t, "2024-03-15", stats.OrdersByDay30[29].Date)
	assert.Equal(t, 1, stats.OrdersByDay30[19].Count) // 2024-03-05

	assert.Equal(t, domain.MonthSummary{Year: 2024, Month: 3, Count: 3, TotalValue: stats.CurrentMonth.TotalValue}, stats.CurrentMonth)
	assert.Equal(t, "22.25", stats.CurrentMonth.TotalValue.StringFixed(2))
}

func TestGetDashboardStats_SlidingWindowBoundary(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepository{loc: time.UTC, orders: []fakeOrder{
		{"owner-1", now.Add(-7*24*time.Hour + time.Minute), "1.00"}, // 2024-03-08 10:01, inside the window
		{"owner-1", now.Add(-7*24*time.Hour - time.Minute), "1.00"}, // just outside
	}}

	stats, err := newTestEngine(repo, now).GetDashboardStats(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.OrdersLast7Days)
	// 2024-03-08 precedes the first day of the 7-day series and is not shown there.
	count, _ := Summarize(stats.OrdersByDay7)
	assert.Equal(t, 0, count)
}

func TestGetDashboardStats_Empty(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	stats, err := newTestEngine(&fakeRepository{loc: time.UTC}, now).GetDashboardStats(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Zero(t, stats.TotalOrders)
	assert.Len(t, stats.OrdersByDay7, 7)
	assert.Len(t, stats.OrdersByDay30, 30)
	assert.True(t, stats.CurrentMonth.TotalValue.IsZero())
}

func TestGetDashboardStats_RepositoryError(t *testing.T) {
	repo := &fakeRepository{loc: time.UTC, err: errors.New("connection refused")}

	_, err := newTestEngine(repo, time.Now()).GetDashboardStats(context.Background(), "owner-1")

	_, ok := apperrors.IsDatabaseError(err)
	assert.True(t, ok)
}

func TestGetWeeklyOrders(t *testing.T) {
	repo := &fakeRepository{loc: time.UTC, orders: []fakeOrder{
		{"owner-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "3.00"},
		{"owner-1", time.Date(2024, 1, 7, 23, 59, 59, 500, time.UTC), "4.00"},
		{"owner-1", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), "99.00"},
	}}

	weekly, err := newTestEngine(repo, time.Now()).GetWeeklyOrders(context.Background(), "owner-1", 2024, 1)
	require.NoError(t, err)

	require.Len(t, weekly.OrdersByDay, 7)
	assert.Equal(t, "2024-01-01", weekly.OrdersByDay[0].Date)
	assert.Equal(t, "2024-01-07", weekly.OrdersByDay[6].Date)
	assert.Equal(t, 1, weekly.OrdersByDay[0].Count)
	assert.Equal(t, 1, weekly.OrdersByDay[6].Count)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), weekly.WeekStart)
	assert.Equal(t, time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC), weekly.WeekEnd)
}

func TestGetWeeklyOrders_Validation(t *testing.T) {
	engine := newTestEngine(&fakeRepository{loc: time.UTC}, time.Now())

	tests := []struct {
		year, week int
	}{
		{2024, 0},
		{2024, 54},
		{1969, 1},
		{10000, 1},
	}

	for _, tt := range tests {
		_, err := engine.GetWeeklyOrders(context.Background(), "owner-1", tt.year, tt.week)
		_, ok := apperrors.IsValidationError(err)
		assert.True(t, ok, "year=%d week=%d", tt.year, tt.week)
	}
}

func TestGetMonthlyOrders_February2024(t *testing.T) {
	repo := &fakeRepository{loc: time.UTC, orders: []fakeOrder{
		{"owner-1", time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), "8.00"},
		{"owner-1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "1.00"},
	}}

	monthly, err := newTestEngine(repo, time.Now()).GetMonthlyOrders(context.Background(), "owner-1", 2024, 2)
	require.NoError(t, err)

	require.Len(t, monthly.OrdersByDay, 29)
	assert.Equal(t, 1, monthly.OrdersByDay[28].Count)
	count, total := Summarize(monthly.OrdersByDay)
	assert.Equal(t, 1, count)
	assert.Equal(t, "8.00", total.StringFixed(2))
}

func TestGetMonthlyOrders_UsesConfiguredLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	repo := &fakeRepository{loc: est, orders: []fakeOrder{
		// 2024-03-01 22:00 in EST
		{"owner-1", time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC), "5.00"},
	}}

	monthly, err := newTestEngine(repo, time.Now()).GetMonthlyOrders(context.Background(), "owner-1", 2024, 3)
	require.NoError(t, err)

	require.Len(t, monthly.OrdersByDay, 31)
	assert.Equal(t, 1, monthly.OrdersByDay[0].Count)
	assert.Zero(t, monthly.OrdersByDay[1].Count)
}

func TestGetMonthlyOrders_Validation(t *testing.T) {
	engine := newTestEngine(&fakeRepository{loc: time.UTC}, time.Now())

	_, err := engine.GetMonthlyOrders(context.Background(), "owner-1", 2024, 13)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "month", ve.Details[0].Field)
}
