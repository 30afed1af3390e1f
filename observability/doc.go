// Package observability provides OpenTelemetry tracing and metrics for the
// identity service.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg.Observability.Tracing)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanAuthLogin)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg.Observability.Metrics)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("identity-api"))
//	metrics.RecordOperation(ctx, "identity-api", "login", "fake", "ok", elapsed)
//
// Without InitTracer and InitMeter the global no-op providers are used and
// all recording is free.
package observability
