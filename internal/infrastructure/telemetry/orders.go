package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type OrderMetrics struct {
	placed        metric.Int64Counter
	placeFailures metric.Int64Counter
	orderValue    metric.Float64Histogram
	statusUpdates metric.Int64Counter
}

// NewOrderMetrics registers instruments on the global MeterProvider, so it must
// run after InitMeterProvider to be exported.
func NewOrderMetrics() (*OrderMetrics, error) {
	meter := otel.Meter("orderdesk/order")

	placed, err := meter.Int64Counter("orders_placed_total",
		metric.WithDescription("Orders committed"))
	if err != nil {
		return nil, err
	}

	placeFailures, err := meter.Int64Counter("orders_place_failures_total",
		metric.WithDescription("Order placements that were rejected or rolled back"))
	if err != nil {
		return nil, err
	}

	orderValue, err := meter.Float64Histogram("order_total_value",
		metric.WithDescription("Frozen order total at creation"))
	if err != nil {
		return nil, err
	}

	statusUpdates, err := meter.Int64Counter("order_status_updates_total",
		metric.WithDescription("Order status changes by target status"))
	if err != nil {
		return nil, err
	}

	return &OrderMetrics{
		placed:        placed,
		placeFailures: placeFailures,
		orderValue:    orderValue,
		statusUpdates: statusUpdates,
	}, nil
}

func (m *OrderMetrics) OrderPlaced(ctx context.Context, total float64) {
	if m == nil {
		return
	}
	m.placed.Add(ctx, 1)
	m.orderValue.Record(ctx, total)
}

func (m *OrderMetrics) OrderFailed(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.placeFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *OrderMetrics) StatusUpdated(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.statusUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
