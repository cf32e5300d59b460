package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLTaxSettingsRepository struct {
	db *sql.DB
}

func NewMySQLTaxSettingsRepository(db *sql.DB) *MySQLTaxSettingsRepository {
	return &MySQLTaxSettingsRepository{db: db}
}

func (r *MySQLTaxSettingsRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.TaxSettings, error) {
	query := `
		SELECT owner_id, gst_enabled, gst_rate, updated_at
		FROM accounts
		WHERE owner_id = ?
	`

	var settings domain.TaxSettings
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&settings.OwnerID, &settings.GSTEnabled, &settings.GSTRate, &settings.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("tax settings for owner %s not found", ownerID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying tax settings by owner: %w", err)
	}

	return &settings, nil
}

func (r *MySQLTaxSettingsRepository) Upsert(ctx context.Context, settings domain.TaxSettings) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (owner_id, gst_enabled, gst_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE gst_enabled = VALUES(gst_enabled), gst_rate = VALUES(gst_rate), updated_at = VALUES(updated_at)`,
		settings.OwnerID, settings.GSTEnabled, settings.GSTRate, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting tax settings: %w", err)
	}
	return nil
}
