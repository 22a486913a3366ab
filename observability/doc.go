// Package observability provides OpenTelemetry tracing and metrics
// integration for the reactive service surface.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("reactived"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanHTTPRequest)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("reactived"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("reactived"))
//	metrics.RecordRequestEnd(ctx, "reactived", "PUT /v1/cells/:name", "ok", duration)
package observability
