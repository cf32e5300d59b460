package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is never hard-deleted so historical order lines stay resolvable.
type Item struct {
	ID          uint64
	OwnerID     string
	Name        string
	Description *string
	Price       decimal.Decimal
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
