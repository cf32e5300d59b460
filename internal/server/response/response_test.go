package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "orderdesk/internal/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWriteError_Validation(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, zap.NewNop(), "t-1", apperrors.NewValidationError("item not found",
		apperrors.ValidationDetail{Field: "items[0].itemId", Message: "item 9 not found"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error)
	assert.Equal(t, "item not found", body.Message)
	assert.Len(t, body.Details, 1)
	assert.Equal(t, "t-1", body.TraceID)
}

func TestWriteError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, zap.NewNop(), "t-2", apperrors.NewNotFoundError("order not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order not found", decode(t, rec).Message)
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"transaction", apperrors.NewTransactionError("creating order", errors.New("Duplicate entry 'x'")), "TRANSACTION_ERROR"},
		{"database", apperrors.NewDatabaseError("listing orders", errors.New("dial tcp: refused")), "DATABASE_ERROR"},
		{"plain", errors.New("boom"), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, zap.NewNop(), "t-3", tt.err)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.code, body.Error)
			assert.Equal(t, genericMessage, body.Message)
			assert.NotContains(t, rec.Body.String(), "Duplicate")
		})
	}
}
