package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OperationContext holds observability context for one tracked operation,
// typically a single tool call.
type OperationContext struct {
	ServiceName   string
	OperationName string
	CorrelationID string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped.
func NewOperationContext(serviceName, operationName, correlationID string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		CorrelationID: correlationID,
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

// StartChildSpan starts a span under the operation carried by ctx and tags
// it with the operation's correlation id. Without an operation it is a plain
// StartSpan.
func StartChildSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, name)
	if oc := OperationContextFromContext(ctx); oc != nil {
		span.SetAttributes(
			attribute.String(AttrOperationName, oc.OperationName),
			attribute.String(AttrCorrelationID, oc.CorrelationID),
		)
	}
	return ctx, span
}

// StartSpanForOperation starts a traced span and records the call start metric.
func (oc *OperationContext) StartSpanForOperation(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrOperationName, oc.OperationName),
		attribute.String(AttrCorrelationID, oc.CorrelationID),
	)
	if oc.Metrics != nil {
		oc.Metrics.RecordCallStart(ctx)
	}
	return WithOperationContext(ctx, oc), span
}

// EndOperation ends the span and records call-end metrics.
func (oc *OperationContext) EndOperation(ctx context.Context, span trace.Span, status string, err error) {
	duration := time.Since(oc.StartTime)

	if err != nil {
		SetSpanError(trace.ContextWithSpan(ctx, span), err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordCallEnd(ctx, oc.OperationName, status, duration)
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
