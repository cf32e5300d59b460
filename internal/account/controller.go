package account

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/server/middleware"
	"orderdesk/internal/server/response"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

func (c *Controller) GetTaxSettings(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	settings, err := c.service.GetTaxSettings(r.Context(), middleware.GetOwnerID(r.Context()))
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, toTaxResponse(settings))
}

func (c *Controller) UpdateTaxSettings(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	var req UpdateTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.GSTEnabled == nil {
		response.WriteValidationError(w, c.logger, traceID, "gstEnabled is required", apperrors.ValidationDetail{
			Field:   "gstEnabled",
			Message: "gstEnabled is required",
		})
		return
	}

	var rate *decimal.Decimal
	if req.GSTRate != nil {
		rate = &req.GSTRate.Decimal
	}

	settings, err := c.service.UpdateTaxSettings(r.Context(), middleware.GetOwnerID(r.Context()), *req.GSTEnabled, rate)
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, toTaxResponse(settings))
}

func toTaxResponse(settings domain.TaxSettings) TaxSettingsResponse {
	return TaxSettingsResponse{
		GSTEnabled: settings.GSTEnabled,
		GSTRate:    dto.NewMoney(settings.GSTRate),
	}
}
