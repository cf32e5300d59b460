package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/server/middleware"
)

type mockService struct {
	Service
	CreateItemFunc func(ctx context.Context, ownerID string, input ItemInput) (*domain.Item, error)
	DeleteItemFunc func(ctx context.Context, ownerID string, itemID uint64) error
}

func (m *mockService) CreateItem(ctx context.Context, ownerID string, input ItemInput) (*domain.Item, error) {
	return m.CreateItemFunc(ctx, ownerID, input)
}

func (m *mockService) DeleteItem(ctx context.Context, ownerID string, itemID uint64) error {
	return m.DeleteItemFunc(ctx, ownerID, itemID)
}

func newRouter(ctrl *Controller) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.TraceID, middleware.RequireOwner)
	r.Post("/items", ctrl.CreateItem)
	r.Delete("/items/{itemId}", ctrl.DeleteItem)
	return r
}

func TestController_CreateItem(t *testing.T) {
	svc := &mockService{
		CreateItemFunc: func(ctx context.Context, ownerID string, input ItemInput) (*domain.Item, error) {
			assert.Equal(t, "owner-1", ownerID)
			return &domain.Item{ID: 9, Name: input.Name, Price: input.Price, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
		},
	}
	handler := newRouter(NewController(svc, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"Mocha","price":"4.5"}`))
	req.Header.Set(middleware.HeaderOwnerID, "owner-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":4.50`)

	var body ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(9), body.ID)
	assert.True(t, body.Price.Equal(decimal.RequireFromString("4.5")))
}

func TestController_CreateItem_InvalidJSON(t *testing.T) {
	handler := newRouter(NewController(&mockService{}, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{`))
	req.Header.Set(middleware.HeaderOwnerID, "owner-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestController_DeleteItem(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"deleted", "/items/3", nil, http.StatusNoContent},
		{"not found", "/items/3", apperrors.NewNotFoundError("item not found"), http.StatusNotFound},
		{"bad id", "/items/abc", nil, http.StatusBadRequest},
		{"zero id", "/items/0", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{
				DeleteItemFunc: func(ctx context.Context, ownerID string, itemID uint64) error {
					assert.Equal(t, uint64(3), itemID)
					return tt.err
				},
			}
			handler := newRouter(NewController(svc, zap.NewNop()))

			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			req.Header.Set(middleware.HeaderOwnerID, "owner-1")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
