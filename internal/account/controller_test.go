package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/server/middleware"
)

type mockService struct {
	UpdateFunc func(ctx context.Context, ownerID string, gstEnabled bool, gstRate *decimal.Decimal) (domain.TaxSettings, error)
}

func (m *mockService) GetTaxSettings(ctx context.Context, ownerID string) (domain.TaxSettings, error) {
	return domain.DefaultTaxSettings(ownerID), nil
}

func (m *mockService) UpdateTaxSettings(ctx context.Context, ownerID string, gstEnabled bool, gstRate *decimal.Decimal) (domain.TaxSettings, error) {
	return m.UpdateFunc(ctx, ownerID, gstEnabled, gstRate)
}

func TestController_UpdateTaxSettings(t *testing.T) {
	svc := &mockService{
		UpdateFunc: func(ctx context.Context, ownerID string, gstEnabled bool, gstRate *decimal.Decimal) (domain.TaxSettings, error) {
			assert.Equal(t, "owner-1", ownerID)
			assert.True(t, gstEnabled)
			assert.Equal(t, "5.00", gstRate.StringFixed(2))
			return domain.TaxSettings{OwnerID: ownerID, GSTEnabled: gstEnabled, GSTRate: *gstRate}, nil
		},
	}
	ctrl := NewController(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/account/tax", strings.NewReader(`{"gstEnabled":true,"gstRate":5}`))
	req = req.WithContext(middleware.WithOwnerID(req.Context(), "owner-1"))
	rec := httptest.NewRecorder()
	ctrl.UpdateTaxSettings(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"gstEnabled":true,"gstRate":5.00}`, rec.Body.String())
}

func TestController_UpdateTaxSettings_MissingFlag(t *testing.T) {
	ctrl := NewController(&mockService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/account/tax", strings.NewReader(`{"gstRate":5}`))
	rec := httptest.NewRecorder()
	ctrl.UpdateTaxSettings(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "gstEnabled")
}

func TestController_GetTaxSettings_Defaults(t *testing.T) {
	ctrl := NewController(&mockService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/tax", nil)
	req = req.WithContext(middleware.WithOwnerID(req.Context(), "owner-1"))
	rec := httptest.NewRecorder()
	ctrl.GetTaxSettings(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"gstEnabled":false,"gstRate":18.00}`, rec.Body.String())
}
