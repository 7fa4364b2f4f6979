package telemetry

import (
	"context"

	"github.com/giobyte8/imgresize/internal/telemetry/metrics"
)

type Config struct {
	OtelEnabled       bool
	CollectorEndpoint string
}

type TelemetrySvc struct {
	metrics metrics.MetricsSvc
}

func NewTelemetrySvc(ctx context.Context, cfg Config) (*TelemetrySvc, error) {
	var metricsSvc metrics.MetricsSvc
	var err error

	if cfg.OtelEnabled {
		metricsSvc, err = metrics.NewOtelMetricsSvc(ctx, cfg.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
	} else {
		metricsSvc = metrics.NewNoopMetricsSvc()
	}

	return &TelemetrySvc{
		metrics: metricsSvc,
	}, nil
}

// Telemetry service that records nothing. Used by tests and
// whenever a component is built without telemetry.
func NewNoopTelemetrySvc() *TelemetrySvc {
	return &TelemetrySvc{metrics: metrics.NewNoopMetricsSvc()}
}

// Wraps an existing metrics implementation
func NewTelemetrySvcWithMetrics(m metrics.MetricsSvc) *TelemetrySvc {
	return &TelemetrySvc{metrics: m}
}

func (t *TelemetrySvc) Metrics() metrics.MetricsSvc {
	return t.metrics
}

func (t *TelemetrySvc) Shutdown(ctx context.Context) error {
	return t.metrics.Shutdown(ctx)
}
