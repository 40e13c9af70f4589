package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

// TracingCollector implements domainmodel.TracingCollector using the
// OpenTelemetry tracing API, creating spans for dispatch operations and
// propagating trace context automatically.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates an OpenTelemetry tracing collector.
// The tracer should come from your OpenTelemetry TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts an OpenTelemetry span with the given name and attributes
// and returns the span context together with a SpanContext wrapper.
func (t *TracingCollector) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, domainmodel.SpanContext) {

	spanOptions := make([]trace.SpanStartOption, 0, len(attrs))
	for key, value := range attrs {
		spanOptions = append(spanOptions, trace.WithAttributes(attribute.String(key, value)))
	}

	spanCtx, span := t.tracer.Start(ctx, name, spanOptions...)

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan completes the span with the given status and final attributes.
func (t *TracingCollector) FinishSpan(spanCtx domainmodel.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	for key, value := range attrs {
		otelSpanCtx.span.SetAttributes(attribute.String(key, value))
	}

	otelSpanCtx.setSpanStatus(status)
	otelSpanCtx.span.End()
}

// Ensure TracingCollector implements domainmodel.TracingCollector.
var _ domainmodel.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext implements domainmodel.SpanContext by wrapping an OpenTelemetry span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus sets the span status from a generic status string.
func (s *OTelSpanContext) SetStatus(status string) {
	s.setSpanStatus(status)
}

// AddAttribute adds a string attribute to the span.
func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// setSpanStatus maps generic status strings to OpenTelemetry status codes.
// Unknown status strings are recorded as a span attribute instead.
func (s *OTelSpanContext) setSpanStatus(status string) {
	switch status {
	case "ok", "success", "completed":
		s.span.SetStatus(codes.Ok, "")
	case "error", "failed", "failure":
		s.span.SetStatus(codes.Error, "operation failed")
	case "cancelled", "canceled":
		s.span.SetStatus(codes.Error, "operation cancelled")
	case "skipped":
		s.span.SetStatus(codes.Ok, "no handler registered")
	default:
		s.span.SetAttributes(attribute.String("status", status))
	}
}

// Ensure OTelSpanContext implements domainmodel.SpanContext.
var _ domainmodel.SpanContext = (*OTelSpanContext)(nil)
