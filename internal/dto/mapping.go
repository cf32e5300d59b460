package dto

import "orderdesk/internal/domain"

func NewOrderResponse(order domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Status:       string(order.Status),
		Total:        NewMoney(order.Total),
		Tax:          NewMoney(order.Tax),
		TaxRate:      NewMoney(order.TaxRate),
		DeliveryCost: NewMoney(order.DeliveryCost),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemLine{ItemID: item.ItemID, Quantity: item.Quantity})
	}
	return resp
}

func NewListOrdersResponse(page domain.OrderPage) ListOrdersResponse {
	resp := ListOrdersResponse{
		Items:      make([]OrderResponse, 0, len(page.Orders)),
		NextCursor: page.NextCursor,
		TotalPages: page.TotalPages,
	}
	for _, order := range page.Orders {
		resp.Items = append(resp.Items, NewOrderResponse(order))
	}
	return resp
}

func NewOrderDetailsResponse(details domain.OrderDetails) OrderDetailsResponse {
	resp := OrderDetailsResponse{
		OrderID:      details.OrderID,
		Items:        make([]OrderLineDetailResponse, 0, len(details.Items)),
		Total:        NewMoney(details.Total),
		Tax:          NewMoney(details.Tax),
		TaxRate:      NewMoney(details.TaxRate),
		DeliveryCost: NewMoney(details.DeliveryCost),
	}
	for _, line := range details.Items {
		resp.Items = append(resp.Items, OrderLineDetailResponse{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    NewMoney(line.Price),
			Quantity: line.Quantity,
		})
	}
	return resp
}
