package service

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 20

	maxCursor = 1_000_000
)

var maxTaxRate = decimal.NewFromInt(100)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint64, error)
	FindByIDAndOwner(ctx context.Context, id uint64, ownerID string) (*domain.Order, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Order, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	UpdateStatus(ctx context.Context, id uint64, ownerID string, status domain.OrderStatus) error
	FindLineDetails(ctx context.Context, orderID uint64) ([]domain.OrderLineDetail, error)
}

type OrderItemRepository interface {
	InsertBatch(ctx context.Context, tx *sql.Tx, orderID uint64, items []domain.OrderLineItem) error
}

// CreateOrderParams carries totals already computed by the caller.
type CreateOrderParams struct {
	OwnerID      string
	CustomerName string
	Items        []domain.OrderLineItem
	Total        decimal.Decimal
	Tax          decimal.Decimal
	TaxRate      decimal.Decimal
	DeliveryCost decimal.Decimal
}

type OrderService struct {
	db            TransactionManager
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
	txTimeout     time.Duration
	pageSize      int
	maxPageSize   int
	now           func() time.Time
}

func NewOrderService(
	db TransactionManager,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *OrderService {
	return &OrderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
		txTimeout:     txTimeout,
		pageSize:      DefaultPageSize,
		maxPageSize:   MaxPageSize,
		now:           time.Now,
	}
}

// WithPageSizes overrides the default and maximum listing page sizes.
func (s *OrderService) WithPageSizes(defaultSize, maxSize int) *OrderService {
	if defaultSize > 0 {
		s.pageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	if s.pageSize > s.maxPageSize {
		s.pageSize = s.maxPageSize
	}
	return s
}

// CreateOrder persists the order header and all of its line items atomically.
// Every submitted line is validated, then repeated item ids are merged.
func (s *OrderService) CreateOrder(ctx context.Context, params CreateOrderParams) (*domain.Order, error) {
	if err := validateCreateParams(params); err != nil {
		return nil, err
	}
	params.Items = domain.MergeLineItems(params.Items)

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, apperrors.NewTransactionError("beginning order transaction", err)
	}
	// Rollback is a no-op once the transaction has committed.
	defer tx.Rollback()

	now := s.now()
	order := domain.Order{
		OwnerID:      params.OwnerID,
		CustomerName: params.CustomerName,
		Status:       domain.OrderStatusPending,
		Total:        params.Total,
		Tax:          params.Tax,
		TaxRate:      params.TaxRate,
		DeliveryCost: params.DeliveryCost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	orderID, err := s.orderRepo.Insert(txCtx, tx, order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.String("ownerId", params.OwnerID), zap.Error(err))
		return nil, apperrors.NewTransactionError("creating order", err)
	}

	if err := s.orderItemRepo.InsertBatch(txCtx, tx, orderID, params.Items); err != nil {
		s.logger.Error("failed to insert order items, rolling back",
			zap.Uint64("orderId", orderID), zap.Int("itemCount", len(params.Items)), zap.Error(err))
		return nil, apperrors.NewTransactionError("creating order items", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint64("orderId", orderID), zap.Error(err))
		return nil, apperrors.NewTransactionError("committing order", err)
	}

	order.ID = orderID
	order.Items = make([]domain.OrderLineItem, len(params.Items))
	for i, item := range params.Items {
		item.OrderID = orderID
		order.Items[i] = item
	}

	s.logger.Info("order created",
		zap.Uint64("orderId", orderID),
		zap.String("ownerId", params.OwnerID),
		zap.Int("itemCount", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return &order, nil
}

// ListOrders pages through an owner's orders newest first. The cursor is a page
// index, so rows inserted between calls shift later pages.
func (s *OrderService) ListOrders(ctx context.Context, ownerID string, limit int, cursor string) (*domain.OrderPage, error) {
	if limit == 0 {
		limit = s.pageSize
	}
	if limit < 1 || limit > s.maxPageSize {
		msg := "limit must be between 1 and " + strconv.Itoa(s.maxPageSize)
		return nil, apperrors.NewValidationError(msg, apperrors.ValidationDetail{Field: "limit", Message: msg})
	}

	page, err := parseCursor(cursor)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByOwner(ctx, ownerID, limit+1, page*limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("listing orders", err)
	}

	total, err := s.orderRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("counting orders", err)
	}

	result := &domain.OrderPage{
		Orders:     orders,
		TotalPages: (total + limit - 1) / limit,
	}
	if len(orders) > limit {
		result.Orders = orders[:limit]
		next := page + 1
		result.NextCursor = &next
	}
	if result.Orders == nil {
		result.Orders = []domain.Order{}
	}

	return result, nil
}

// GetOrderDetails treats a foreign order exactly like a missing one.
func (s *OrderService) GetOrderDetails(ctx context.Context, ownerID string, orderID uint64) (*domain.OrderDetails, error) {
	order, err := s.orderRepo.FindByIDAndOwner(ctx, orderID, ownerID)
	if err != nil {
		return nil, passNotFound("loading order", err)
	}

	lines, err := s.orderRepo.FindLineDetails(ctx, order.ID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("loading order lines", err)
	}

	return &domain.OrderDetails{
		OrderID:      order.ID,
		Items:        lines,
		Total:        order.Total,
		Tax:          order.Tax,
		TaxRate:      order.TaxRate,
		DeliveryCost: order.DeliveryCost,
	}, nil
}

// UpdateStatus allows any label to replace any other, including itself.
func (s *OrderService) UpdateStatus(ctx context.Context, ownerID string, orderID uint64, status domain.OrderStatus) error {
	if !status.Valid() {
		msg := "status must be one of pending, processing, completed, cancelled"
		return apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{Field: "status", Message: msg})
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, ownerID, status); err != nil {
		return passNotFound("updating order status", err)
	}

	s.logger.Info("order status updated",
		zap.Uint64("orderId", orderID), zap.String("ownerId", ownerID), zap.String("status", string(status)))
	return nil
}

func validateCreateParams(params CreateOrderParams) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(params.CustomerName) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "customerName", Message: "customerName is required"})
	}

	if len(params.Items) == 0 {
		return apperrors.NewValidationError("order must contain at least one item",
			append(details, apperrors.ValidationDetail{Field: "items", Message: "items must not be empty"})...)
	}

	for idx, item := range params.Items {
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be a positive integer",
			})
		}
	}

	money := []struct {
		field string
		value decimal.Decimal
		max   decimal.Decimal
	}{
		{"total", params.Total, domain.MaxOrderAmount},
		{"tax", params.Tax, domain.MaxOrderAmount},
		{"taxRate", params.TaxRate, maxTaxRate},
		{"deliveryCost", params.DeliveryCost, domain.MaxDeliveryCost},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			details = append(details, apperrors.ValidationDetail{Field: m.field, Message: m.field + " must not be negative"})
		} else if m.value.GreaterThan(m.max) {
			details = append(details, apperrors.ValidationDetail{Field: m.field, Message: m.field + " exceeds maximum of " + m.max.StringFixed(2)})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid order", details...)
	}
	return nil
}

func parseCursor(cursor string) (int, error) {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return 0, nil
	}

	page, err := strconv.Atoi(cursor)
	if err != nil || page < 0 || page > maxCursor {
		return 0, apperrors.NewValidationError("invalid cursor", apperrors.ValidationDetail{
			Field:   "cursor",
			Message: "cursor must be a non-negative integer",
		})
	}
	return page, nil
}

func passNotFound(op string, err error) error {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return err
	}
	return apperrors.NewDatabaseError(op, err)
}
