package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

const orderColumns = `id, owner_id, customer_name, status, total, tax, tax_rate, delivery_cost,
		       is_deleted, created_at, updated_at`

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Insert writes the order header inside tx and returns the assigned id.
func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint64, error) {
	query := `
		INSERT INTO orders (owner_id, customer_name, status, total, tax, tax_rate, delivery_cost,
		                    is_deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		order.OwnerID, order.CustomerName, order.Status,
		order.Total, order.Tax, order.TaxRate, order.DeliveryCost,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint64(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByIDAndOwner(ctx context.Context, id uint64, ownerID string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = ? AND owner_id = ? AND is_deleted = 0
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE owner_id = ? AND is_deleted = 0
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE owner_id = ? AND is_deleted = 0`,
		ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return count, nil
}

// UpdateStatus relies on the connection reporting matched rather than changed
// rows, so re-setting the current status is not mistaken for a missing order.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint64, ownerID string, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND owner_id = ? AND is_deleted = 0`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id, ownerID)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError("order not found")
	}

	return nil
}

// FindLineDetails joins line items to the catalog as it is now, soft-deleted items included.
func (r *MySQLOrderRepository) FindLineDetails(ctx context.Context, orderID uint64) ([]domain.OrderLineDetail, error) {
	query := `
		SELECT oi.item_id, i.name, i.price, oi.quantity
		FROM order_items oi
		JOIN items i ON i.id = oi.item_id
		WHERE oi.order_id = ?
		ORDER BY oi.item_id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order line details: %w", err)
	}
	defer rows.Close()

	lines := []domain.OrderLineDetail{}
	for rows.Next() {
		var line domain.OrderLineDetail
		if err := rows.Scan(&line.ItemID, &line.Name, &line.Price, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scanning order line row: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order line rows: %w", err)
	}

	return lines, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := s.Scan(
		&order.ID, &order.OwnerID, &order.CustomerName, &order.Status,
		&order.Total, &order.Tax, &order.TaxRate, &order.DeliveryCost,
		&order.IsDeleted, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
