package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/order/usecase"
	"orderdesk/internal/server/middleware"
)

type mockOrderUseCase struct {
	PlaceOrderFunc      func(ctx context.Context, ownerID string, input usecase.PlaceOrderInput) (*domain.Order, error)
	ListOrdersFunc      func(ctx context.Context, ownerID string, limit int, cursor string) (*domain.OrderPage, error)
	GetOrderDetailsFunc func(ctx context.Context, ownerID string, orderID uint64) (*domain.OrderDetails, error)
	UpdateStatusFunc    func(ctx context.Context, ownerID string, orderID uint64, status domain.OrderStatus) error
}

func (m *mockOrderUseCase) PlaceOrder(ctx context.Context, ownerID string, input usecase.PlaceOrderInput) (*domain.Order, error) {
	return m.PlaceOrderFunc(ctx, ownerID, input)
}

func (m *mockOrderUseCase) ListOrders(ctx context.Context, ownerID string, limit int, cursor string) (*domain.OrderPage, error) {
	return m.ListOrdersFunc(ctx, ownerID, limit, cursor)
}

func (m *mockOrderUseCase) GetOrderDetails(ctx context.Context, ownerID string, orderID uint64) (*domain.OrderDetails, error) {
	return m.GetOrderDetailsFunc(ctx, ownerID, orderID)
}

func (m *mockOrderUseCase) UpdateStatus(ctx context.Context, ownerID string, orderID uint64, status domain.OrderStatus) error {
	return m.UpdateStatusFunc(ctx, ownerID, orderID, status)
}

func newTestRouter(uc OrderUseCase) http.Handler {
	ctrl := NewOrderController(uc, zap.NewNop())
	r := chi.NewRouter()
	r.Use(middleware.TraceID, middleware.RequireOwner)
	r.Post("/orders", ctrl.PlaceOrder)
	r.Get("/orders", ctrl.ListOrders)
	r.Get("/orders/{orderId}", ctrl.GetOrderDetails)
	r.Patch("/orders/{orderId}/status", ctrl.UpdateStatus)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set(middleware.HeaderOwnerID, "owner-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPlaceOrder_Created(t *testing.T) {
	uc := &mockOrderUseCase{
		PlaceOrderFunc: func(ctx context.Context, ownerID string, input usecase.PlaceOrderInput) (*domain.Order, error) {
			assert.Equal(t, "owner-1", ownerID)
			assert.Equal(t, "Ada", input.CustomerName)
			assert.Len(t, input.Items, 2)
			assert.Equal(t, "3.50", input.DeliveryCost.StringFixed(2))
			return &domain.Order{
				ID: 12, CustomerName: "Ada", Status: domain.OrderStatusPending,
				Total: decimal.RequireFromString("23.5"), Tax: decimal.Zero, TaxRate: decimal.Zero,
				DeliveryCost: decimal.RequireFromString("3.5"),
			}, nil
		},
	}

	rec := do(t, newTestRouter(uc), http.MethodPost, "/orders",
		`{"customerName":"Ada","items":[{"itemId":1,"quantity":2},{"itemId":2,"quantity":1}],"deliveryCost":3.5}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body dto.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(12), body.Order.ID)
	assert.Equal(t, "pending", body.Order.Status)
	assert.NotEmpty(t, body.TraceID)
	assert.Contains(t, rec.Body.String(), `"total":23.50`)
}

func TestPlaceOrder_ValidationErrorIsVerbatim(t *testing.T) {
	uc := &mockOrderUseCase{
		PlaceOrderFunc: func(ctx context.Context, ownerID string, input usecase.PlaceOrderInput) (*domain.Order, error) {
			return nil, apperrors.NewValidationError("order must contain at least one item")
		},
	}

	rec := do(t, newTestRouter(uc), http.MethodPost, "/orders", `{"customerName":"Ada","items":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "order must contain at least one item")
}

func TestPlaceOrder_TransactionErrorIsGeneric(t *testing.T) {
	uc := &mockOrderUseCase{
		PlaceOrderFunc: func(ctx context.Context, ownerID string, input usecase.PlaceOrderInput) (*domain.Order, error) {
			return nil, apperrors.NewTransactionError("creating order items", assert.AnError)
		},
	}

	rec := do(t, newTestRouter(uc), http.MethodPost, "/orders", `{"customerName":"Ada","items":[{"itemId":1,"quantity":1}]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "an unexpected error occurred")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestListOrders_PassesPaging(t *testing.T) {
	next := 2
	uc := &mockOrderUseCase{
		ListOrdersFunc: func(ctx context.Context, ownerID string, limit int, cursor string) (*domain.OrderPage, error) {
			assert.Equal(t, 5, limit)
			assert.Equal(t, "1", cursor)
			return &domain.OrderPage{Orders: []domain.Order{{ID: 1}}, NextCursor: &next, TotalPages: 3}, nil
		},
	}

	rec := do(t, newTestRouter(uc), http.MethodGet, "/orders?limit=5&cursor=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.ListOrdersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 2, *body.NextCursor)
	assert.Equal(t, 3, body.TotalPages)
}

func TestListOrders_BadLimit(t *testing.T) {
	rec := do(t, newTestRouter(&mockOrderUseCase{}), http.MethodGet, "/orders?limit=ten", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderDetails_NotFound(t *testing.T) {
	uc := &mockOrderUseCase{
		GetOrderDetailsFunc: func(ctx context.Context, ownerID string, orderID uint64) (*domain.OrderDetails, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}

	rec := do(t, newTestRouter(uc), http.MethodGet, "/orders/99", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "order not found")
}

func TestUpdateStatus(t *testing.T) {
	uc := &mockOrderUseCase{
		UpdateStatusFunc: func(ctx context.Context, ownerID string, orderID uint64, status domain.OrderStatus) error {
			assert.Equal(t, uint64(4), orderID)
			assert.Equal(t, domain.OrderStatusCompleted, status)
			return nil
		},
	}

	rec := do(t, newTestRouter(uc), http.MethodPatch, "/orders/4/status", `{"status":"completed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orderId":4,"status":"completed"}`, rec.Body.String())
}

func TestUpdateStatus_InvalidOrderID(t *testing.T) {
	rec := do(t, newTestRouter(&mockOrderUseCase{}), http.MethodPatch, "/orders/x/status", `{"status":"completed"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "orderId")
}
