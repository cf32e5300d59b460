package catalog

import (
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
)

type ItemRequest struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       dto.Money `json:"price"`
}

type ItemResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       dto.Money `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

func toItemResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       dto.NewMoney(item.Price),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
