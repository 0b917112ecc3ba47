package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one traced, timed unit of work such as a topology query.
type Operation struct {
	Name      string
	StartTime time.Time
	metrics   *Metrics
	span      trace.Span
}

// StartOperation opens a span named after the operation.
// If metrics is nil, metric recording is silently skipped.
func StartOperation(ctx context.Context, name string, metrics *Metrics, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, SpanOperation, trace.WithAttributes(
		append([]attribute.KeyValue{attribute.String(AttrOperationName, name)}, attrs...)...,
	))
	op := &Operation{
		Name:      name,
		StartTime: time.Now(),
		metrics:   metrics,
		span:      span,
	}
	return context.WithValue(ctx, operationKey{}, op), op
}

type operationKey struct{}

// OperationFromContext returns the innermost Operation in ctx, or nil.
func OperationFromContext(ctx context.Context) *Operation {
	if op, ok := ctx.Value(operationKey{}).(*Operation); ok {
		return op
	}
	return nil
}

// End closes the span and records the operation metric.
func (op *Operation) End(ctx context.Context, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	}
	duration := op.Duration()
	op.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	op.span.End()
	op.metrics.RecordOperation(ctx, op.Name, status, duration)
}

// Duration returns the elapsed time since operation start.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
