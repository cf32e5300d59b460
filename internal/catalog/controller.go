package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/server/middleware"
	"orderdesk/internal/server/response"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) CreateItem(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	item, err := c.service.CreateItem(r.Context(), middleware.GetOwnerID(r.Context()), toInput(req))
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusCreated, toItemResponse(*item))
}

func (c *Controller) ListItems(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	items, err := c.service.ListItems(r.Context(), middleware.GetOwnerID(r.Context()))
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	resp := ListItemsResponse{Items: make([]ItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	response.WriteJSON(w, c.logger, http.StatusOK, resp)
}

func (c *Controller) UpdateItem(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	itemID, ok := c.parseItemID(w, r, traceID)
	if !ok {
		return
	}

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	item, err := c.service.UpdateItem(r.Context(), middleware.GetOwnerID(r.Context()), itemID, toInput(req))
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, toItemResponse(*item))
}

func (c *Controller) DeleteItem(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	itemID, ok := c.parseItemID(w, r, traceID)
	if !ok {
		return
	}

	if err := c.service.DeleteItem(r.Context(), middleware.GetOwnerID(r.Context()), itemID); err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) parseItemID(w http.ResponseWriter, r *http.Request, traceID string) (uint64, bool) {
	itemID, err := strconv.ParseUint(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil || itemID == 0 {
		response.WriteValidationError(w, c.logger, traceID, "invalid itemId", apperrors.ValidationDetail{
			Field:   "itemId",
			Message: "itemId must be a positive integer",
		})
		return 0, false
	}
	return itemID, true
}

func toInput(req ItemRequest) ItemInput {
	return ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Decimal,
	}
}
