package domain

import "time"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderCreatedEvent struct {
	OrderID      uint64    `json:"orderId"`
	OwnerID      string    `json:"ownerId"`
	CustomerName string    `json:"customerName"`
	Total        string    `json:"total"`
	ItemCount    int       `json:"itemCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint64      `json:"orderId"`
	OwnerID   string      `json:"ownerId"`
	Status    OrderStatus `json:"status"`
	ChangedAt time.Time   `json:"changedAt"`
}

func NewOrderCreatedEvent(order Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:      order.ID,
		OwnerID:      order.OwnerID,
		CustomerName: order.CustomerName,
		Total:        order.Total.StringFixed(2),
		ItemCount:    len(order.Items),
		CreatedAt:    order.CreatedAt,
	}
}
