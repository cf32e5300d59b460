package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"orderdesk/internal/domain"
)

type MySQLAnalyticsRepository struct {
	db *sql.DB
}

func NewMySQLAnalyticsRepository(db *sql.DB) *MySQLAnalyticsRepository {
	return &MySQLAnalyticsRepository{db: db}
}

// CountOrders counts live orders, all time when since is nil.
func (r *MySQLAnalyticsRepository) CountOrders(ctx context.Context, ownerID string, since *time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM orders WHERE owner_id = ? AND is_deleted = 0`
	args := []interface{}{ownerID}
	if since != nil {
		query += ` AND created_at >= ?`
		args = append(args, *since)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return count, nil
}

// DailyTotals groups live orders created in [from, to) by the session-local
// calendar day of created_at.
func (r *MySQLAnalyticsRepository) DailyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]domain.DailyTotal, error) {
	query := `
		SELECT DATE_FORMAT(created_at, '%Y-%m-%d') AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE owner_id = ?
		  AND is_deleted = 0
		  AND created_at >= ?
		  AND created_at < ?
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying daily totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.DailyTotal
	for rows.Next() {
		var row domain.DailyTotal
		if err := rows.Scan(&row.Day, &row.Count, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("scanning daily total row: %w", err)
		}
		totals = append(totals, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily total rows: %w", err)
	}

	return totals, nil
}
