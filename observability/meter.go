package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/picoview/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(ctx, config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by the REST client and the
// topology service. A nil *Metrics records nothing.
type Metrics struct {
	roundTripTotal    metric.Int64Counter
	roundTripDuration metric.Float64Histogram
	roundTripActive   metric.Int64UpDownCounter
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	roundTripTotal, err := meter.Int64Counter("picoview.rest.round_trips",
		metric.WithDescription("Completed REST round-trips by method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating round_trips counter: %w", err)
	}

	roundTripDuration, err := meter.Float64Histogram("picoview.rest.duration",
		metric.WithDescription("Duration of REST round-trips in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	roundTripActive, err := meter.Int64UpDownCounter("picoview.rest.active",
		metric.WithDescription("REST round-trips currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating active counter: %w", err)
	}

	operationTotal, err := meter.Int64Counter("picoview.topology.operations",
		metric.WithDescription("Topology operations by name and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating operations counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("picoview.topology.duration",
		metric.WithDescription("Duration of topology operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating operation duration histogram: %w", err)
	}

	return &Metrics{
		roundTripTotal:    roundTripTotal,
		roundTripDuration: roundTripDuration,
		roundTripActive:   roundTripActive,
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
	}, nil
}

// RoundTripStarted increments the in-flight gauge.
func (m *Metrics) RoundTripStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.roundTripActive.Add(ctx, 1)
}

// RoundTripFinished decrements the in-flight gauge and records the outcome.
// outcome is "ok" or an error category; status is 0 when no response arrived.
func (m *Metrics) RoundTripFinished(ctx context.Context, method, outcome string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.roundTripActive.Add(ctx, -1)
	m.roundTripTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
		attribute.String("status", strconv.Itoa(status)),
	))
	m.roundTripDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
	))
}

// RecordOperation records one topology operation.
func (m *Metrics) RecordOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}
