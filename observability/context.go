package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// OperationContext tracks one authentication operation: its span, duration
// and outcome metric.
type OperationContext struct {
	ServiceName   string
	OperationName string
	Provider      string
	RequestID     string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is skipped.
func NewOperationContext(serviceName, operationName, provider, requestID string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		Provider:      provider,
		RequestID:     requestID,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

type operationContextKey struct{}

// WithOperationContext stores an OperationContext in the context.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, operationContextKey{}, oc)
}

// OperationContextFromContext retrieves the OperationContext from context, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	if oc, ok := ctx.Value(operationContextKey{}).(*OperationContext); ok {
		return oc
	}
	return nil
}

// StartSpanForOperation starts a span tagged with the operation attributes
// and stores the operation in the returned context.
func (oc *OperationContext) StartSpanForOperation(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrOperationName, oc.OperationName),
		attribute.String(AttrProvider, oc.Provider),
	)
	if oc.RequestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, oc.RequestID))
	}
	return WithOperationContext(ctx, oc), span
}

// EndOperation ends the span and records the operation metric. errCode is
// the application error code when err is non-nil.
func (oc *OperationContext) EndOperation(ctx context.Context, span trace.Span, errCode string, err error) {
	duration := time.Since(oc.StartTime)
	status := StatusOK

	if err != nil {
		status = StatusError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String(AttrErrorCode, errCode),
			attribute.String(AttrErrorMessage, err.Error()),
		)
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordOperation(ctx, oc.ServiceName, oc.OperationName, oc.Provider, status, duration)
		if err != nil {
			oc.Metrics.RecordError(ctx, errCode, oc.OperationName)
		}
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
