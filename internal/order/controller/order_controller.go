package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/order/usecase"
	"orderdesk/internal/server/middleware"
	"orderdesk/internal/server/response"
)

type OrderUseCase interface {
	PlaceOrder(ctx context.Context, ownerID string, input usecase.PlaceOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, ownerID string, limit int, cursor string) (*domain.OrderPage, error)
	GetOrderDetails(ctx context.Context, ownerID string, orderID uint64) (*domain.OrderDetails, error)
	UpdateStatus(ctx context.Context, ownerID string, orderID uint64, status domain.OrderStatus) error
}

type OrderController struct {
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		response.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	input := usecase.PlaceOrderInput{
		CustomerName: req.CustomerName,
		Items:        make([]domain.OrderLineItem, len(req.Items)),
		DeliveryCost: decimal.Zero,
	}
	for i, item := range req.Items {
		input.Items[i] = domain.OrderLineItem{ItemID: item.ItemID, Quantity: item.Quantity}
	}
	if req.DeliveryCost != nil {
		input.DeliveryCost = req.DeliveryCost.Decimal
	}

	order, err := c.useCase.PlaceOrder(r.Context(), middleware.GetOwnerID(r.Context()), input)
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusCreated, dto.PlaceOrderResponse{
		TraceID: traceID,
		Order:   dto.NewOrderResponse(*order),
	})
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.WriteValidationError(w, c.logger, traceID, "invalid limit", apperrors.ValidationDetail{
				Field:   "limit",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	page, err := c.useCase.ListOrders(r.Context(), middleware.GetOwnerID(r.Context()), limit, query.Get("cursor"))
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, dto.NewListOrdersResponse(*page))
}

func (c *OrderController) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	orderID, ok := c.parseOrderID(w, r, traceID)
	if !ok {
		return
	}

	details, err := c.useCase.GetOrderDetails(r.Context(), middleware.GetOwnerID(r.Context()), orderID)
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, dto.NewOrderDetailsResponse(*details))
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	orderID, ok := c.parseOrderID(w, r, traceID)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	status := domain.OrderStatus(req.Status)
	if err := c.useCase.UpdateStatus(r.Context(), middleware.GetOwnerID(r.Context()), orderID, status); err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, dto.UpdateStatusResponse{OrderID: orderID, Status: string(status)})
}

func (c *OrderController) parseOrderID(w http.ResponseWriter, r *http.Request, traceID string) (uint64, bool) {
	orderID, err := strconv.ParseUint(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil || orderID == 0 {
		c.logger.Warn("invalid orderId in path", zap.String("traceId", traceID))
		response.WriteValidationError(w, c.logger, traceID, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return 0, false
	}
	return orderID, true
}
