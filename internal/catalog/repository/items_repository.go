package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

const itemColumns = `id, owner_id, name, description, price, is_deleted, created_at, updated_at`

type MySQLItemRepository struct {
	db *sql.DB
}

func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

func (r *MySQLItemRepository) Create(ctx context.Context, item domain.Item) (*domain.Item, error) {
	now := time.Now()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO items (owner_id, name, description, price, is_deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`,
		item.OwnerID, item.Name, item.Description, item.Price, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inserted item id: %w", err)
	}

	item.ID = uint64(id)
	item.IsDeleted = false
	item.CreatedAt = now
	item.UpdatedAt = now
	return &item, nil
}

// ListByOwner returns non-deleted items, newest first.
func (r *MySQLItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE owner_id = ? AND is_deleted = 0
		ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *MySQLItemRepository) FindByIDsAndOwner(ctx context.Context, ids []uint64, ownerID string) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, ownerID)

	query := fmt.Sprintf(`
		SELECT `+itemColumns+`
		FROM items
		WHERE id IN (%s)
		  AND owner_id = ?
		  AND is_deleted = 0`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items by ids: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *MySQLItemRepository) FindByIDAndOwner(ctx context.Context, id uint64, ownerID string) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE id = ? AND owner_id = ? AND is_deleted = 0`,
		id, ownerID,
	)

	item, err := scanItem(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("item not found")
		}
		return nil, fmt.Errorf("querying item %d: %w", id, err)
	}
	return item, nil
}

func (r *MySQLItemRepository) Update(ctx context.Context, item domain.Item) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE items
		SET name = ?, description = ?, price = ?, updated_at = ?
		WHERE id = ? AND owner_id = ? AND is_deleted = 0`,
		item.Name, item.Description, item.Price, time.Now(), item.ID, item.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating item %d: %w", item.ID, err)
	}

	return requireRow(result, "item not found")
}

func (r *MySQLItemRepository) SoftDelete(ctx context.Context, id uint64, ownerID string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE items
		SET is_deleted = 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND is_deleted = 0`,
		time.Now(), id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("deleting item %d: %w", id, err)
	}

	return requireRow(result, "item not found")
}

func requireRow(result sql.Result, notFound string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(notFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(s scanner) (*domain.Item, error) {
	var (
		item        domain.Item
		description sql.NullString
	)
	err := s.Scan(
		&item.ID, &item.OwnerID, &item.Name, &description, &item.Price,
		&item.IsDeleted, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		item.Description = &description.String
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}
