package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 255
)

var maxPrice = decimal.RequireFromString("99999999.99")

// ItemInput is the editable part of an item.
type ItemInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
}

type itemService struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &itemService{repo: repo, logger: logger}
}

func (s *itemService) CreateItem(ctx context.Context, ownerID string, input ItemInput) (*domain.Item, error) {
	input, err := normalizeItemInput(input)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Create(ctx, domain.Item{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("creating item", err)
	}

	s.logger.Info("item created", zap.String("ownerId", ownerID), zap.Uint64("itemId", item.ID))
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, ownerID string) ([]domain.Item, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("listing items", err)
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

func (s *itemService) UpdateItem(ctx context.Context, ownerID string, itemID uint64, input ItemInput) (*domain.Item, error) {
	input, err := normalizeItemInput(input)
	if err != nil {
		return nil, err
	}

	err = s.repo.Update(ctx, domain.Item{
		ID:          itemID,
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
	if err != nil {
		return nil, wrapRepoError("updating item", err)
	}

	item, err := s.repo.FindByIDAndOwner(ctx, itemID, ownerID)
	if err != nil {
		return nil, wrapRepoError("reloading item", err)
	}
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, ownerID string, itemID uint64) error {
	if err := s.repo.SoftDelete(ctx, itemID, ownerID); err != nil {
		return wrapRepoError("deleting item", err)
	}

	s.logger.Info("item deleted", zap.String("ownerId", ownerID), zap.Uint64("itemId", itemID))
	return nil
}

// ResolveItems returns the live items among ids and the ids that are missing,
// soft deleted or owned by someone else, in request order.
func (s *itemService) ResolveItems(ctx context.Context, ownerID string, ids []uint64) ([]domain.Item, []uint64, error) {
	found, err := s.repo.FindByIDsAndOwner(ctx, ids, ownerID)
	if err != nil {
		return nil, nil, apperrors.NewDatabaseError("resolving items", err)
	}

	foundSet := make(map[uint64]struct{}, len(found))
	for _, item := range found {
		foundSet[item.ID] = struct{}{}
	}

	var notFoundIDs []uint64
	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			notFoundIDs = append(notFoundIDs, id)
		}
	}

	return found, notFoundIDs, nil
}

func normalizeItemInput(input ItemInput) (ItemInput, error) {
	var details []apperrors.ValidationDetail

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	} else if len(input.Name) > maxNameLength {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name must be at most 255 characters"})
	}

	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if desc == "" {
			input.Description = nil
		} else if len(desc) > maxDescriptionLength {
			details = append(details, apperrors.ValidationDetail{Field: "description", Message: "description must be at most 255 characters"})
		} else {
			input.Description = &desc
		}
	}

	if input.Price.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must not be negative"})
	} else if input.Price.GreaterThan(maxPrice) {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price exceeds maximum of 99999999.99"})
	}
	input.Price = domain.RoundMoney(input.Price)

	if len(details) > 0 {
		return input, apperrors.NewValidationError("invalid item", details...)
	}
	return input, nil
}

func wrapRepoError(op string, err error) error {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return err
	}
	return apperrors.NewDatabaseError(op, err)
}
