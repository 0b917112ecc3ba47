package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/picoview/httpclient"
	"github.com/kbukum/picoview/logger"
	"github.com/kbukum/picoview/observability"
)

// RequestIDHeader carries the per-round-trip request ID.
const RequestIDHeader = "X-Request-Id"

// Fetch issues GET base/api/endpoint and decodes the body into T.
func Fetch[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return do[T](ctx, c, http.MethodGet, endpoint, nil, false)
}

// Create issues POST base/api/endpoint with body encoded as JSON and decodes
// the response into T.
func Create[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	return do[T](ctx, c, http.MethodPost, endpoint, body, true)
}

// Replace issues PUT base/api/endpoint with body encoded as JSON and decodes
// the response into T.
func Replace[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	return do[T](ctx, c, http.MethodPut, endpoint, body, true)
}

// Remove issues DELETE base/api/endpoint and decodes the body into T.
func Remove[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return do[T](ctx, c, http.MethodDelete, endpoint, nil, false)
}

// do performs exactly one round-trip against the transport current at entry.
func do[T any](ctx context.Context, c *Client, method, endpoint string, body any, hasBody bool) (T, error) {
	var zero T

	t := c.state.Load()
	if t == nil {
		return zero, ErrNotInitialized
	}

	requestID := uuid.NewString()
	req := httpclient.Request{
		Method:  method,
		Path:    endpoint,
		Headers: map[string]string{RequestIDHeader: requestID},
	}
	if hasBody {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, httpclient.NewInvalidRequestError("encode body: "+err.Error(), err)
		}
		req.Body = payload
		req.Headers["Content-Type"] = "application/json"
	}

	target := t.adapter.ResolveURL(endpoint)
	ctx, span := observability.StartSpan(ctx, observability.SpanRoundTrip,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrHTTPMethod, method),
			attribute.String(observability.AttrHTTPURL, target),
			attribute.String(observability.AttrRequestID, requestID),
		),
	)
	defer span.End()

	c.metrics.RoundTripStarted(ctx)
	start := time.Now()

	resp, err := t.adapter.Do(ctx, req)
	var out T
	if err == nil {
		out, err = decode[T](resp)
	}

	duration := time.Since(start)
	status := 0
	if resp != nil {
		status = resp.StatusCode
		observability.SetSpanAttribute(ctx, observability.AttrHTTPStatus, status)
	}
	kind := Category(err)
	c.metrics.RoundTripFinished(ctx, method, kind.String(), status, duration)

	fields := logger.Fields(
		logger.FieldMethod, method,
		logger.FieldURL, target,
		logger.FieldStatus, status,
		logger.FieldRequestID, requestID,
		logger.FieldDuration, duration.Milliseconds(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())
		span.SetAttributes(attribute.String(observability.AttrErrorKind, kind.String()))
		fields["kind"] = kind.String()
		c.log.WithError(err).Warn("rest round-trip failed", fields)
		return zero, err
	}
	c.log.Debug("rest round-trip", fields)
	return out, nil
}

// decode parses a 2xx body into T. Empty, whitespace-only and null bodies
// fail, as does any decode that leaves a nil pointer, map, slice or interface.
// Field names match case-insensitively.
func decode[T any](resp *httpclient.Response) (T, error) {
	var out T
	target := typeName[T]()
	fail := func(reason string, err error) (T, error) {
		var zero T
		return zero, &DecodeError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Target:     target,
			Reason:     reason,
			Err:        err,
		}
	}

	trimmed := bytes.TrimSpace(resp.Body)
	switch {
	case len(trimmed) == 0:
		return fail("empty body", nil)
	case bytes.Equal(trimmed, []byte("null")):
		return fail("null body", nil)
	}

	if err := json.Unmarshal(trimmed, &out); err != nil {
		return fail("", err)
	}
	if isNil(&out) {
		return fail("decoded to nil", nil)
	}
	return out, nil
}

func isNil[T any](v *T) bool {
	rv := reflect.ValueOf(v).Elem()
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
