package account

import (
	"context"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

type Service interface {
	GetTaxSettings(ctx context.Context, ownerID string) (domain.TaxSettings, error)
	UpdateTaxSettings(ctx context.Context, ownerID string, gstEnabled bool, gstRate *decimal.Decimal) (domain.TaxSettings, error)
}

type Repository interface {
	FindByOwner(ctx context.Context, ownerID string) (*domain.TaxSettings, error)
	Upsert(ctx context.Context, settings domain.TaxSettings) error
}
