// Package observability wires OpenTelemetry tracing and metrics into picoview.
//
// Setup installs OTLP/HTTP exporters when telemetry is enabled:
//
//	shutdown, err := observability.Setup(ctx, cfg.Telemetry, "picoview", version.Version, "development")
//	defer shutdown(ctx)
//
// The REST client opens one span per round-trip and records the
// picoview.rest.* instruments; the topology service wraps each call in an
// Operation:
//
//	ctx, op := observability.StartOperation(ctx, "ListNodes", metrics)
//	nodes, err := ...
//	op.End(ctx, err)
package observability
