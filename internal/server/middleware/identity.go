package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	HeaderOwnerID = "X-Owner-Id"
	HeaderTraceID = "X-Trace-Id"
)

type ctxKey string

const (
	ctxOwnerID ctxKey = "owner_id"
	ctxTraceID ctxKey = "trace_id"
)

// TraceID reuses an inbound X-Trace-Id or generates one, and echoes it back.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid := strings.TrimSpace(r.Header.Get(HeaderTraceID))
		if tid == "" {
			tid = uuid.NewString()
		}
		w.Header().Set(HeaderTraceID, tid)

		next.ServeHTTP(w, r.WithContext(WithTraceID(r.Context(), tid)))
	})
}

// RequireOwner trusts the identity supplied by the upstream identity provider.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := strings.TrimSpace(r.Header.Get(HeaderOwnerID))
		if owner == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "VALIDATION_ERROR",
				"message": "missing required header: " + HeaderOwnerID,
				"traceId": GetTraceID(r.Context()),
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), owner)))
	})
}

func WithOwnerID(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ctxOwnerID, owner)
}

func GetOwnerID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxOwnerID).(string); ok {
		return v
	}
	return ""
}

func WithTraceID(ctx context.Context, tid string) context.Context {
	return context.WithValue(ctx, ctxTraceID, tid)
}

func GetTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxTraceID).(string); ok {
		return v
	}
	return ""
}
