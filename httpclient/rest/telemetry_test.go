package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/picoview/logger"
	"github.com/kbukum/picoview/observability"
)

func TestRoundTrip_SpanAndMetrics(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	okSrv, _ := jsonServer(t, http.StatusOK, `{"name":"n1"}`)
	failSrv, _ := jsonServer(t, http.StatusInternalServerError, "internal error")

	ctx := context.Background()
	if _, err := Fetch[testNode](ctx, newClient(t, okSrv.URL, WithMetrics(metrics)), "nodes/n1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Fetch[testNode](ctx, newClient(t, failSrv.URL, WithMetrics(metrics)), "nodes"); err == nil {
		t.Fatal("expected error")
	}

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != observability.SpanRoundTrip {
		t.Errorf("expected span %q, got %q", observability.SpanRoundTrip, spans[0].Name())
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("expected successful span")
	}
	if spans[1].Status().Code != codes.Error || spans[1].Status().Description != "request_failed" {
		t.Errorf("expected request_failed error status, got %+v", spans[1].Status())
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	outcomes := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "picoview.rest.round_trips" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				v, _ := dp.Attributes.Value("outcome")
				outcomes[v.AsString()] += dp.Value
			}
		}
	}
	if outcomes["ok"] != 1 || outcomes["request_failed"] != 1 {
		t.Errorf("expected one ok and one request_failed round-trip, got %v", outcomes)
	}
}

func TestRoundTrip_Logging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&logger.Config{Level: "debug", Format: "json", Writer: &buf}, "picoview")

	srv, _ := jsonServer(t, http.StatusNotFound, "missing")
	c := newClient(t, srv.URL, WithLogger(log))
	_, _ = Fetch[testNode](context.Background(), c, "nodes/ghost")

	var warn map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		if entry["level"] == "warn" {
			warn = entry
		}
	}
	if warn == nil {
		t.Fatalf("expected a warn entry, got %s", buf.String())
	}
	if warn["component"] != "rest" {
		t.Errorf("expected component rest, got %v", warn["component"])
	}
	if warn["kind"] != "request_failed" {
		t.Errorf("expected kind request_failed, got %v", warn["kind"])
	}
	if warn["status"] != float64(404) {
		t.Errorf("expected status 404, got %v", warn["status"])
	}
	if !strings.HasSuffix(warn["url"].(string), "/api/nodes/ghost") {
		t.Errorf("unexpected url %v", warn["url"])
	}
	if warn["request_id"] == "" || warn["request_id"] == nil {
		t.Error("expected request_id field")
	}
}
