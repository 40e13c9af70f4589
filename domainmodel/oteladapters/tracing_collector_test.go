package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/domain-model-go/domainmodel/oteladapters"
)

func tracingTestSetup() (*tracetest.InMemoryExporter, *oteladapters.TracingCollector) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := provider.Tracer("test")

	return exporter, oteladapters.NewTracingCollector(tracer)
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	exporter, collector := tracingTestSetup()

	// act
	_, span := collector.StartSpan(context.Background(), "dispatch.handle", map[string]string{
		"event_type": "SomethingHappened",
	})
	span.AddAttribute("handler", "audit")
	collector.FinishSpan(span, "success", map[string]string{"outcome": "handled"})

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "dispatch.handle", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("event_type", "SomethingHappened"))
	assert.Contains(t, spans[0].Attributes, attribute.String("handler", "audit"))
	assert.Contains(t, spans[0].Attributes, attribute.String("outcome", "handled"))
}

func Test_TracingCollector_ErrorStatusIsMapped(t *testing.T) {
	// arrange
	exporter, collector := tracingTestSetup()

	// act
	_, span := collector.StartSpan(context.Background(), "dispatch.handle", nil)
	collector.FinishSpan(span, "error", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func Test_TracingCollector_SkippedStatusEndsOk(t *testing.T) {
	// arrange
	exporter, collector := tracingTestSetup()

	// act
	_, span := collector.StartSpan(context.Background(), "dispatch.handle", nil)
	collector.FinishSpan(span, "skipped", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
}

func Test_TracingCollector_UnknownStatusBecomesAnAttribute(t *testing.T) {
	// arrange
	exporter, collector := tracingTestSetup()

	// act
	_, span := collector.StartSpan(context.Background(), "dispatch.handle", nil)
	collector.FinishSpan(span, "weird", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("status", "weird"))
}
