package dto

import "time"

type OrderResponse struct {
	ID           uint64          `json:"id"`
	CustomerName string          `json:"customerName"`
	Status       string          `json:"status"`
	Total        Money           `json:"total"`
	Tax          Money           `json:"tax"`
	TaxRate      Money           `json:"taxRate"`
	DeliveryCost Money           `json:"deliveryCost"`
	Items        []OrderItemLine `json:"items,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type PlaceOrderResponse struct {
	TraceID string        `json:"traceId"`
	Order   OrderResponse `json:"order"`
}

type ListOrdersResponse struct {
	Items      []OrderResponse `json:"items"`
	NextCursor *int            `json:"nextCursor"`
	TotalPages int             `json:"totalPages"`
}

type OrderLineDetailResponse struct {
	ItemID   uint64 `json:"itemId"`
	Name     string `json:"name"`
	Price    Money  `json:"price"`
	Quantity int    `json:"quantity"`
}

type OrderDetailsResponse struct {
	OrderID      uint64                    `json:"orderId"`
	Items        []OrderLineDetailResponse `json:"items"`
	Total        Money                     `json:"total"`
	Tax          Money                     `json:"tax"`
	TaxRate      Money                     `json:"taxRate"`
	DeliveryCost Money                     `json:"deliveryCost"`
}

type UpdateStatusResponse struct {
	OrderID uint64 `json:"orderId"`
	Status  string `json:"status"`
}
