package account

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

var maxGSTRate = decimal.NewFromInt(100)

type taxSettingsService struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &taxSettingsService{repo: repo, logger: logger}
}

// GetTaxSettings falls back to the defaults for owners without a saved row.
func (s *taxSettingsService) GetTaxSettings(ctx context.Context, ownerID string) (domain.TaxSettings, error) {
	settings, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return domain.DefaultTaxSettings(ownerID), nil
		}
		return domain.TaxSettings{}, apperrors.NewDatabaseError("loading tax settings", err)
	}
	return *settings, nil
}

// UpdateTaxSettings keeps the stored rate when gstRate is nil.
func (s *taxSettingsService) UpdateTaxSettings(ctx context.Context, ownerID string, gstEnabled bool, gstRate *decimal.Decimal) (domain.TaxSettings, error) {
	current, err := s.GetTaxSettings(ctx, ownerID)
	if err != nil {
		return domain.TaxSettings{}, err
	}

	rate := current.GSTRate
	if gstRate != nil {
		if gstRate.IsNegative() || gstRate.GreaterThan(maxGSTRate) {
			return domain.TaxSettings{}, apperrors.NewValidationError("invalid gstRate", apperrors.ValidationDetail{
				Field:   "gstRate",
				Message: "gstRate must be between 0 and 100",
			})
		}
		rate = domain.RoundMoney(*gstRate)
	}

	updated := domain.TaxSettings{
		OwnerID:    ownerID,
		GSTEnabled: gstEnabled,
		GSTRate:    rate,
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return domain.TaxSettings{}, apperrors.NewDatabaseError("saving tax settings", err)
	}

	s.logger.Info("tax settings updated",
		zap.String("ownerId", ownerID),
		zap.Bool("gstEnabled", gstEnabled),
		zap.String("gstRate", rate.StringFixed(2)),
	)
	return updated, nil
}
