package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"orderdesk/internal/account"
	"orderdesk/internal/analytics"
	"orderdesk/internal/catalog"
	ordercontroller "orderdesk/internal/order/controller"
	"orderdesk/internal/server/middleware"
	"orderdesk/internal/server/response"
)

// Handlers groups the controllers mounted under /api/v1.
type Handlers struct {
	Items     *catalog.Controller
	Account   *account.Controller
	Orders    *ordercontroller.OrderController
	Analytics *analytics.Controller
	// Metrics serves /metrics; nil leaves the route unmounted.
	Metrics http.Handler
	// Ping backs /health; nil reports healthy unconditionally.
	Ping func(ctx context.Context) error
}

func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.TraceID)
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health", healthHandler(h.Ping, logger))
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireOwner)

		r.Route("/items", func(r chi.Router) {
			r.Post("/", h.Items.CreateItem)
			r.Get("/", h.Items.ListItems)
			r.Put("/{itemId}", h.Items.UpdateItem)
			r.Delete("/{itemId}", h.Items.DeleteItem)
		})

		r.Get("/account/tax", h.Account.GetTaxSettings)
		r.Put("/account/tax", h.Account.UpdateTaxSettings)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Orders.PlaceOrder)
			r.Get("/", h.Orders.ListOrders)
			r.Get("/{orderId}", h.Orders.GetOrderDetails)
			r.Patch("/{orderId}/status", h.Orders.UpdateStatus)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", h.Analytics.Dashboard)
			r.Get("/weekly", h.Analytics.Weekly)
			r.Get("/monthly", h.Analytics.Monthly)
		})
	})

	return otelhttp.NewHandler(r, "orderdesk",
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + req.URL.Path
		}),
	)
}

func healthHandler(ping func(ctx context.Context) error, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				response.WriteJSON(w, logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		response.WriteJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}
