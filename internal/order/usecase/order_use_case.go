package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/order/service"
)

const (
	maxDistinctItems = 100
	maxItemQuantity  = 10000
)

type ItemResolver interface {
	ResolveItems(ctx context.Context, ownerID string, ids []uint64) (found []domain.Item, notFoundIDs []uint64, err error)
}

type TaxSettingsProvider interface {
	GetTaxSettings(ctx context.Context, ownerID string) (domain.TaxSettings, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, params service.CreateOrderParams) (*domain.Order, error)
	ListOrders(ctx context.Context, ownerID string, limit int, cursor string) (*domain.OrderPage, error)
	GetOrderDetails(ctx context.Context, ownerID string, orderID uint64) (*domain.OrderDetails, error)
	UpdateStatus(ctx context.Context, ownerID string, orderID uint64, status domain.OrderStatus) error
}

type EventPublisher interface {
	Publish(ctx context.Context, key, eventType string, event any) error
}

type Metrics interface {
	OrderPlaced(ctx context.Context, total float64)
	OrderFailed(ctx context.Context, reason string)
	StatusUpdated(ctx context.Context, status string)
}

type PlaceOrderInput struct {
	CustomerName string
	Items        []domain.OrderLineItem
	DeliveryCost decimal.Decimal
}

type OrderUseCase struct {
	items     ItemResolver
	taxes     TaxSettingsProvider
	store     OrderStore
	publisher EventPublisher
	metrics   Metrics
	logger    *zap.Logger
}

// NewOrderUseCase accepts a nil publisher or metrics sink; both are then skipped.
func NewOrderUseCase(
	items ItemResolver,
	taxes TaxSettingsProvider,
	store OrderStore,
	publisher EventPublisher,
	metrics Metrics,
	logger *zap.Logger,
) *OrderUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &OrderUseCase{
		items:     items,
		taxes:     taxes,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// PlaceOrder prices the cart from the catalog, applies the owner's tax settings
// and stores the order. A failed store call is reported, never retried.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, ownerID string, input PlaceOrderInput) (*domain.Order, error) {
	logger := uc.logger.With(zap.String("ownerId", ownerID))
	logger.Info("place order started", zap.Int("lineCount", len(input.Items)))

	order, err := uc.placeOrder(ctx, ownerID, input)
	if err != nil {
		reason := failureReason(err)
		uc.metrics.OrderFailed(ctx, reason)
		if reason == "validation" {
			logger.Warn("place order rejected", zap.Error(err))
		} else {
			logger.Error("place order failed", zap.String("reason", reason), zap.Error(err))
		}
		return nil, err
	}

	total, _ := order.Total.Float64()
	uc.metrics.OrderPlaced(ctx, total)
	uc.publish(ctx, logger, order.ID, domain.EventOrderCreated, domain.NewOrderCreatedEvent(*order))

	return order, nil
}

func (uc *OrderUseCase) placeOrder(ctx context.Context, ownerID string, input PlaceOrderInput) (*domain.Order, error) {
	lines := domain.MergeLineItems(input.Items)
	if err := validatePlaceOrder(input, lines); err != nil {
		return nil, err
	}

	ids := make([]uint64, len(lines))
	for i, line := range lines {
		ids[i] = line.ItemID
	}

	found, notFoundIDs, err := uc.items.ResolveItems(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	if len(notFoundIDs) > 0 {
		details := make([]apperrors.ValidationDetail, len(notFoundIDs))
		for i, id := range notFoundIDs {
			details[i] = apperrors.ValidationDetail{
				Field:   "items",
				Message: fmt.Sprintf("item %d not found", id),
			}
		}
		return nil, apperrors.NewValidationError("item not found", details...)
	}

	prices := make(map[uint64]decimal.Decimal, len(found))
	for _, item := range found {
		prices[item.ID] = item.Price
	}

	priced := make([]domain.PricedLine, len(lines))
	for i, line := range lines {
		priced[i] = domain.PricedLine{ItemID: line.ItemID, Price: prices[line.ItemID], Quantity: line.Quantity}
	}

	settings, err := uc.taxes.GetTaxSettings(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totals := domain.ComputeTotals(priced, settings, input.DeliveryCost)
	if totals.Total.GreaterThan(domain.MaxOrderAmount) {
		return nil, apperrors.NewValidationError("invalid order", apperrors.ValidationDetail{
			Field:   "total",
			Message: "order total exceeds maximum of 99999999.99",
		})
	}

	return uc.store.CreateOrder(ctx, service.CreateOrderParams{
		OwnerID:      ownerID,
		CustomerName: strings.TrimSpace(input.CustomerName),
		Items:        lines,
		Total:        totals.Total,
		Tax:          totals.Tax,
		TaxRate:      totals.TaxRate,
		DeliveryCost: totals.DeliveryCost,
	})
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, ownerID string, limit int, cursor string) (*domain.OrderPage, error) {
	page, err := uc.store.ListOrders(ctx, ownerID, limit, cursor)
	if err != nil {
		uc.logger.Warn("list orders failed", zap.String("ownerId", ownerID), zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (uc *OrderUseCase) GetOrderDetails(ctx context.Context, ownerID string, orderID uint64) (*domain.OrderDetails, error) {
	details, err := uc.store.GetOrderDetails(ctx, ownerID, orderID)
	if err != nil {
		uc.logger.Warn("get order details failed", zap.String("ownerId", ownerID), zap.Uint64("orderId", orderID), zap.Error(err))
		return nil, err
	}
	return details, nil
}

func (uc *OrderUseCase) UpdateStatus(ctx context.Context, ownerID string, orderID uint64, status domain.OrderStatus) error {
	logger := uc.logger.With(zap.String("ownerId", ownerID), zap.Uint64("orderId", orderID))

	if err := uc.store.UpdateStatus(ctx, ownerID, orderID, status); err != nil {
		logger.Warn("update order status failed", zap.Error(err))
		return err
	}

	uc.metrics.StatusUpdated(ctx, string(status))
	uc.publish(ctx, logger, orderID, domain.EventOrderStatusChanged, domain.OrderStatusChangedEvent{
		OrderID:   orderID,
		OwnerID:   ownerID,
		Status:    status,
		ChangedAt: time.Now(),
	})
	return nil
}

// publish is best effort: the order is already committed.
func (uc *OrderUseCase) publish(ctx context.Context, logger *zap.Logger, orderID uint64, eventType string, event any) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, fmt.Sprintf("%d", orderID), eventType, event); err != nil {
		logger.Warn("failed to publish order event", zap.String("eventType", eventType), zap.Error(err))
	}
}

func validatePlaceOrder(input PlaceOrderInput, lines []domain.OrderLineItem) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(input.CustomerName) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "customerName", Message: "customerName is required"})
	}

	if len(lines) == 0 {
		return apperrors.NewValidationError("order must contain at least one item",
			append(details, apperrors.ValidationDetail{Field: "items", Message: "items must not be empty"})...)
	}

	if len(lines) > maxDistinctItems {
		details = append(details, apperrors.ValidationDetail{Field: "items", Message: "items exceeds maximum of 100"})
	}

	for idx, item := range input.Items {
		if item.ItemID == 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].itemId", idx),
				Message: "itemId must be a positive integer",
			})
		}
		if item.Quantity < 1 || item.Quantity > maxItemQuantity {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", idx),
				Message: "quantity must be between 1 and 10000",
			})
		}
	}

	if input.DeliveryCost.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "deliveryCost", Message: "deliveryCost must not be negative"})
	} else if input.DeliveryCost.GreaterThan(domain.MaxDeliveryCost) {
		details = append(details, apperrors.ValidationDetail{Field: "deliveryCost", Message: "deliveryCost exceeds maximum of 999999.99"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid order", details...)
	}
	return nil
}

func failureReason(err error) string {
	if _, ok := apperrors.IsValidationError(err); ok {
		return "validation"
	}
	if isDeadlockError(err) {
		return "deadlock"
	}
	if _, ok := apperrors.IsTransactionError(err); ok {
		return "transaction"
	}
	return "internal"
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}

type noopMetrics struct{}

func (noopMetrics) OrderPlaced(context.Context, float64)  {}
func (noopMetrics) OrderFailed(context.Context, string)   {}
func (noopMetrics) StatusUpdated(context.Context, string) {}
