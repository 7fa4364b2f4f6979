package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type counterDef struct {
	name        MetricName
	description string
	unit        string
}

var counterDefs = []counterDef{
	{ImageLoaded, "Number of images decoded successfully", "{image}"},
	{ImageLoadFailed, "Number of images that could not be decoded", "{image}"},
	{PreviewRendered, "Number of preview renders applied to the canvas", "{render}"},
	{ImageExported, "Number of resized images written", "{image}"},
	{ExportFailed, "Number of failed exports", "{export}"},
}

type OtelMetricsSvc struct {
	counters      map[MetricName]metric.Int64Counter
	shutDownFuncs []func(ctx context.Context) error
}

var serviceName = semconv.ServiceNameKey.String("imgresize")

func NewOtelMetricsSvc(
	ctx context.Context,
	collectorEndpoint string,
) (*OtelMetricsSvc, error) {
	shutDownFuncs, err := initOtel(ctx, collectorEndpoint)
	if err != nil {
		return nil, err
	}
	meter := otel.Meter("imgresize")

	counters := make(map[MetricName]metric.Int64Counter, len(counterDefs))
	for _, def := range counterDefs {
		counter, err := meter.Int64Counter(
			string(def.name),
			metric.WithDescription(def.description),
			metric.WithUnit(def.unit),
		)
		if err != nil {
			return nil, err
		}
		counters[def.name] = counter
	}

	return &OtelMetricsSvc{
		counters:      counters,
		shutDownFuncs: shutDownFuncs,
	}, nil
}

func (s *OtelMetricsSvc) Increment(
	metricName MetricName,
	attrs map[string]string,
) {
	counter, ok := s.counters[metricName]
	if !ok {
		slog.Warn("Unknown metric name", "metricName", metricName)
		return
	}

	// Convert attrs map to OpenTelemetry attributes
	kvAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for key, value := range attrs {
		kvAttrs = append(kvAttrs, attribute.String(key, value))
	}

	slog.Debug(
		"Incrementing metric",
		"metricName", metricName,
		"attributes", attrs,
	)
	counter.Add(
		context.Background(),
		1,
		metric.WithAttributeSet(attribute.NewSet(kvAttrs...)),
	)
}

func (s *OtelMetricsSvc) Shutdown(ctx context.Context) error {
	for _, shutdownFunc := range s.shutDownFuncs {
		if err := shutdownFunc(ctx); err != nil {
			slog.Error("Error during OpenTelemetry shutdown", "error", err)
			return err
		}
	}

	slog.Debug("OpenTelemetry services shutdown successfully")
	return nil
}

func initOtel(
	ctx context.Context,
	collectorEndpoint string,
) ([]func(ctx context.Context) error, error) {
	slog.Debug("Initializing OpenTelemetry")
	var shutDownFuncs []func(ctx context.Context) error

	// Connect to the OpenTelemetry collector
	conn, err := newCollectorGrpcConn(collectorEndpoint)
	if err != nil {
		return nil, err
	}

	// Resource for the OpenTelemetry service
	res, err := newResource(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}

	meterProvider, err := newMeterProvider(ctx, res, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Provider first so pending metrics are flushed before the
	// connection goes away
	shutDownFuncs = append(shutDownFuncs, meterProvider.Shutdown)
	shutDownFuncs = append(shutDownFuncs, func(context.Context) error {
		return conn.Close()
	})

	otel.SetMeterProvider(meterProvider)
	return shutDownFuncs, nil
}

func newResource(ctx context.Context) (*resource.Resource, error) {
	res, err := resource.New(ctx, resource.WithAttributes(serviceName))
	if err != nil {
		return nil, fmt.Errorf(
			"failed to create resource for OpenTelemetry: %w",
			err,
		)
	}

	return res, nil
}

// Creates a new gRPC connection to the OpenTelemetry collector.
func newCollectorGrpcConn(endpoint string) (*grpc.ClientConn, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("OpenTelemetry collector endpoint is empty")
	}

	conn, err := grpc.NewClient(
		endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to create gRPC connection to collector: %w",
			err,
		)
	}

	return conn, nil
}

func newMeterProvider(
	ctx context.Context,
	res *resource.Resource,
	conn *grpc.ClientConn,
) (*sdkmetric.MeterProvider, error) {
	metricExporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithGRPCConn(conn),
	)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			metricExporter,
			sdkmetric.WithInterval(3*time.Second),
		)),
	)

	return meterProvider, nil
}
