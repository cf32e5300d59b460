package dto

type PlaceOrderRequest struct {
	CustomerName string          `json:"customerName"`
	Items        []OrderItemLine `json:"items"`
	DeliveryCost *Money          `json:"deliveryCost"`
}

type OrderItemLine struct {
	ItemID   uint64 `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
