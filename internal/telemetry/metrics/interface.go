package metrics

import (
	"context"
)

// Custom type to represent a metric name,
// providing a type-safe way to handle metric names.
type MetricName string

const (
	ImageLoaded     MetricName = "resizer.image.loaded"
	ImageLoadFailed MetricName = "resizer.image.load_failed"
	PreviewRendered MetricName = "resizer.preview.rendered"
	ImageExported   MetricName = "resizer.image.exported"
	ExportFailed    MetricName = "resizer.export.failed"
)

type MetricsSvc interface {
	Increment(metric MetricName, attrs map[string]string)
	Shutdown(ctx context.Context) error
}
