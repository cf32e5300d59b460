package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses is an unordered label set: any status may replace any other.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Order totals are frozen at creation and never recomputed.
type Order struct {
	ID           uint64
	OwnerID      string
	CustomerName string
	Status       OrderStatus
	Total        decimal.Decimal
	Tax          decimal.Decimal
	TaxRate      decimal.Decimal
	DeliveryCost decimal.Decimal
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []OrderLineItem
}

type OrderLineItem struct {
	OrderID  uint64
	ItemID   uint64
	Quantity int
}

// OrderLineDetail is a line item joined to the catalog at read time.
type OrderLineDetail struct {
	ItemID   uint64
	Name     string
	Price    decimal.Decimal
	Quantity int
}

type OrderDetails struct {
	OrderID      uint64
	Items        []OrderLineDetail
	Total        decimal.Decimal
	Tax          decimal.Decimal
	TaxRate      decimal.Decimal
	DeliveryCost decimal.Decimal
}

// MergeLineItems folds repeated item ids into one line with the summed quantity,
// keeping the position of the first occurrence.
func MergeLineItems(lines []OrderLineItem) []OrderLineItem {
	merged := make([]OrderLineItem, 0, len(lines))
	index := make(map[uint64]int, len(lines))
	for _, l := range lines {
		if i, ok := index[l.ItemID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ItemID] = len(merged)
		merged = append(merged, l)
	}
	return merged
}

// OrderPage is one offset page of an owner's orders, newest first.
// NextCursor is nil on the last page.
type OrderPage struct {
	Orders     []Order
	NextCursor *int
	TotalPages int
}
