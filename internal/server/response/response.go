package response

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "orderdesk/internal/errors"

	"go.uber.org/zap"
)

const genericMessage = "an unexpected error occurred"

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Error     string                       `json:"error"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, logger *zap.Logger, traceID, message string, details ...apperrors.ValidationDetail) {
	WriteJSON(w, logger, http.StatusBadRequest, ErrorResponse{
		TraceID:   traceID,
		Error:     "VALIDATION_ERROR",
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// WriteError maps the error taxonomy onto HTTP. Only validation and not-found
// messages reach the client; everything else is logged and replaced.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, logger, traceID, ve.Message, ve.Details...)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		WriteJSON(w, logger, http.StatusNotFound, ErrorResponse{
			TraceID:   traceID,
			Error:     "NOT_FOUND",
			Message:   nfe.Message,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	code := "INTERNAL_ERROR"
	if _, ok := apperrors.IsTransactionError(err); ok {
		code = "TRANSACTION_ERROR"
	} else if _, ok := apperrors.IsDatabaseError(err); ok {
		code = "DATABASE_ERROR"
	}

	logger.Error("request failed", zap.String("traceId", traceID), zap.String("code", code), zap.Error(err))
	WriteJSON(w, logger, http.StatusInternalServerError, ErrorResponse{
		TraceID:   traceID,
		Error:     code,
		Message:   genericMessage,
		Timestamp: time.Now().UTC(),
	})
}
