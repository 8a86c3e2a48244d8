package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics initializes the OpenTelemetry metrics provider with a
// Prometheus exporter. It returns the HTTP handler for the /metrics endpoint
// and a shutdown function to be called on application exit.
func InitMetrics() (http.Handler, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)

	return promhttp.Handler(), provider.Shutdown, nil
}

// LifecycleCounter counts runtime lifecycle operations by name and outcome.
type LifecycleCounter struct {
	counter metric.Int64Counter
}

// NewLifecycleCounter registers the lifecycle operation counter on the
// global meter.
func NewLifecycleCounter() (*LifecycleCounter, error) {
	meter := otel.Meter("runtimeplane-daemon")
	counter, err := meter.Int64Counter("runtimeplane.lifecycle.operations",
		metric.WithDescription("Runtime lifecycle operations handled, by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register lifecycle counter: %w", err)
	}
	return &LifecycleCounter{counter: counter}, nil
}

// Record counts one operation.
func (c *LifecycleCounter) Record(ctx context.Context, op string, ok bool) {
	if c == nil || c.counter == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	c.counter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("outcome", outcome),
		),
	)
}
