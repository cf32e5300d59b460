package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

// FillDays returns exactly days contiguous buckets starting at first's calendar day.
// Days without rows are zero; rows outside the range are dropped.
func FillDays(first time.Time, days int, rows []domain.DailyTotal, loc *time.Location) []domain.DayBucket {
	byDay := make(map[string]domain.DailyTotal, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}

	start := StartOfDay(first, loc)
	buckets := make([]domain.DayBucket, days)
	for i := 0; i < days; i++ {
		day := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, loc)
		key := day.Format(domain.DayKeyLayout)

		bucket := domain.DayBucket{Date: key, TotalValue: decimal.Zero}
		if row, ok := byDay[key]; ok {
			bucket.Count = row.Count
			bucket.TotalValue = row.TotalValue
		}
		buckets[i] = bucket
	}
	return buckets
}

// Summarize adds up a bucket series.
func Summarize(buckets []domain.DayBucket) (int, decimal.Decimal) {
	count := 0
	total := decimal.Zero
	for _, b := range buckets {
		count += b.Count
		total = total.Add(b.TotalValue)
	}
	return count, total
}
