package catalog

import (
	"context"

	"orderdesk/internal/domain"
)

type Service interface {
	CreateItem(ctx context.Context, ownerID string, input ItemInput) (*domain.Item, error)
	ListItems(ctx context.Context, ownerID string) ([]domain.Item, error)
	UpdateItem(ctx context.Context, ownerID string, itemID uint64, input ItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, ownerID string, itemID uint64) error
	ResolveItems(ctx context.Context, ownerID string, ids []uint64) (found []domain.Item, notFoundIDs []uint64, err error)
}

type Repository interface {
	Create(ctx context.Context, item domain.Item) (*domain.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	FindByIDsAndOwner(ctx context.Context, ids []uint64, ownerID string) ([]domain.Item, error)
	FindByIDAndOwner(ctx context.Context, id uint64, ownerID string) (*domain.Item, error)
	Update(ctx context.Context, item domain.Item) error
	SoftDelete(ctx context.Context, id uint64, ownerID string) error
}
