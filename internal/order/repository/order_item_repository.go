package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"orderdesk/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

// InsertBatch writes all line items of one order in a single statement inside tx.
func (r *MySQLOrderItemRepository) InsertBatch(ctx context.Context, tx *sql.Tx, orderID uint64, items []domain.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}

	placeholders := make([]string, len(items))
	args := make([]interface{}, 0, len(items)*3)
	for i, item := range items {
		placeholders[i] = "(?, ?, ?)"
		args = append(args, orderID, item.ItemID, item.Quantity)
	}

	query := `INSERT INTO order_items (order_id, item_id, quantity) VALUES ` + strings.Join(placeholders, ", ")

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting order items: %w", err)
	}

	return nil
}
