package domainmodel

import (
	"context"
	"errors"
	"time"
)

// ErrNilHandlerResolver is returned when a Dispatcher is built without a resolver.
var ErrNilHandlerResolver = errors.New("handler resolver must not be nil")

const (
	// DispatchedEventsMetric tracks events handed to a handler (OpenTelemetry-compatible).
	DispatchedEventsMetric = "dispatcher_dispatched_events_total"

	// SkippedEventsMetric tracks events dispatched without a registered handler.
	SkippedEventsMetric = "dispatcher_skipped_events_total"

	// FailedEventsMetric tracks events whose handler returned an error.
	FailedEventsMetric = "dispatcher_failed_events_total"

	// HandleDurationMetric tracks per-event handler execution duration.
	HandleDurationMetric = "dispatcher_handle_duration_seconds"

	logMsgNoHandlerRegistered = "no handler registered for event type, skipping"
	logMsgHandlerFailed       = "event handler failed, aborting batch"
	logMsgEventDispatched     = "event dispatched"
	logAttrEventType          = "event_type"
	logAttrError              = "error"
	logAttrDurationMS         = "duration_ms"

	spanNameDispatchEvent = "dispatcher.dispatch_event"

	statusSuccess = "success"
	statusError   = "error"
	statusSkipped = "skipped"
)

// Dispatcher routes each domain event of a batch to the handler registered
// for its event type.
//
// A Dispatcher holds no mutable state beyond its constructor-injected
// collaborators: it is a stateless pass-through per call and safe to reuse
// concurrently for different event batches, provided its HandlerResolver is
// safe for concurrent reads.
type Dispatcher struct {
	resolver         HandlerResolver
	logger           Logger
	contextualLogger ContextualLogger
	metrics          MetricsCollector
	tracer           TracingCollector
}

// DispatcherOption defines a functional option for configuring a Dispatcher.
type DispatcherOption func(*Dispatcher) error

// WithLogger sets the logger for the Dispatcher.
//
// Debug level: skipped events without a handler, per-event timing
// Error level: handler failures aborting a batch
func WithLogger(logger Logger) DispatcherOption {
	return func(d *Dispatcher) error {
		d.logger = logger

		return nil
	}
}

// WithContextualLogger sets a context-aware logger for the Dispatcher.
// When set, it takes precedence over the basic logger so log records carry
// trace correlation from the dispatch context.
func WithContextualLogger(logger ContextualLogger) DispatcherOption {
	return func(d *Dispatcher) error {
		d.contextualLogger = logger

		return nil
	}
}

// WithMetrics sets the metrics collector for the Dispatcher.
func WithMetrics(collector MetricsCollector) DispatcherOption {
	return func(d *Dispatcher) error {
		d.metrics = collector

		return nil
	}
}

// WithTracing sets the tracing collector for the Dispatcher.
// Each dispatched event gets its own span covering handler resolution and
// execution, finished with a success, error, or skipped status.
func WithTracing(collector TracingCollector) DispatcherOption {
	return func(d *Dispatcher) error {
		d.tracer = collector

		return nil
	}
}

// BuildDispatcher is the factory method for Dispatcher.
// The resolver is the only required collaborator.
func BuildDispatcher(resolver HandlerResolver, options ...DispatcherOption) (Dispatcher, error) {
	if resolver == nil {
		return Dispatcher{}, ErrNilHandlerResolver
	}

	dispatcher := Dispatcher{resolver: resolver}

	for _, option := range options {
		if err := option(&dispatcher); err != nil {
			return Dispatcher{}, err
		}
	}

	return dispatcher, nil
}

// Dispatch routes the events of the batch strictly sequentially, in the exact
// order they appear: the handler for event n has returned before the handler
// for event n+1 is resolved and invoked. There is no parallel fan-out, so
// ordering assumptions of the caller's business logic hold.
//
// An event type without a registered handler is skipped silently; that is not
// an error condition. A handler error aborts processing of the remaining
// events and propagates to the caller unwrapped - no retry, no
// partial-failure isolation. Callers that need to know which events were
// delivered before a failure must track that themselves.
//
// An empty or nil batch returns nil without resolving anything.
func (d Dispatcher) Dispatch(ctx context.Context, events DomainEvents) error {
	for _, event := range events {
		spanCtx, span := d.startEventSpan(ctx, event)

		handler, found := d.resolver.Resolve(event.EventType())
		if !found {
			d.recordSkipped(spanCtx, event, span)

			continue
		}

		start := time.Now()
		err := handler.Handle(spanCtx, event)
		duration := time.Since(start)

		if err != nil {
			d.recordFailed(spanCtx, event, err, span)

			return err
		}

		d.recordDispatched(spanCtx, event, duration, span)
	}

	return nil
}

// startEventSpan starts a per-event tracing span if a tracing collector is configured.
func (d Dispatcher) startEventSpan(ctx context.Context, event DomainEvent) (context.Context, SpanContext) {
	if d.tracer == nil {
		return ctx, nil
	}

	return d.tracer.StartSpan(ctx, spanNameDispatchEvent, map[string]string{
		logAttrEventType: event.EventType(),
	})
}

// finishEventSpan finishes a per-event tracing span if one was started.
func (d Dispatcher) finishEventSpan(span SpanContext, status string, attrs map[string]string) {
	if d.tracer != nil && span != nil {
		d.tracer.FinishSpan(span, status, attrs)
	}
}

// recordSkipped logs and counts an event dispatched without a registered handler.
func (d Dispatcher) recordSkipped(ctx context.Context, event DomainEvent, span SpanContext) {
	d.logDebug(ctx, logMsgNoHandlerRegistered, logAttrEventType, event.EventType())
	d.incrementCounter(ctx, SkippedEventsMetric, event.EventType())
	d.finishEventSpan(span, statusSkipped, nil)
}

// recordFailed logs and counts a handler failure that aborts the batch.
func (d Dispatcher) recordFailed(ctx context.Context, event DomainEvent, err error, span SpanContext) {
	d.logError(ctx, logMsgHandlerFailed, logAttrEventType, event.EventType(), logAttrError, err.Error())
	d.incrementCounter(ctx, FailedEventsMetric, event.EventType())
	d.finishEventSpan(span, statusError, map[string]string{logAttrError: err.Error()})
}

// recordDispatched logs and measures a successfully handled event.
func (d Dispatcher) recordDispatched(ctx context.Context, event DomainEvent, duration time.Duration, span SpanContext) {
	durationMS := float64(duration.Microseconds()) / 1000.0

	d.logDebug(ctx, logMsgEventDispatched,
		logAttrEventType, event.EventType(),
		logAttrDurationMS, durationMS)

	d.incrementCounter(ctx, DispatchedEventsMetric, event.EventType())

	if d.metrics != nil {
		labels := map[string]string{logAttrEventType: event.EventType()}

		if contextualCollector, ok := d.metrics.(ContextualMetricsCollector); ok {
			contextualCollector.RecordDurationContext(ctx, HandleDurationMetric, duration, labels)
		} else {
			d.metrics.RecordDuration(HandleDurationMetric, duration, labels)
		}
	}

	d.finishEventSpan(span, statusSuccess, nil)
}

// logDebug logs at debug level, preferring the contextual logger when set.
func (d Dispatcher) logDebug(ctx context.Context, msg string, args ...any) {
	if d.contextualLogger != nil {
		d.contextualLogger.DebugContext(ctx, msg, args...)

		return
	}

	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

// logError logs at error level, preferring the contextual logger when set.
func (d Dispatcher) logError(ctx context.Context, msg string, args ...any) {
	if d.contextualLogger != nil {
		d.contextualLogger.ErrorContext(ctx, msg, args...)

		return
	}

	if d.logger != nil {
		d.logger.Error(msg, args...)
	}
}

// incrementCounter increments a per-event-type counter, context-aware when supported.
func (d Dispatcher) incrementCounter(ctx context.Context, metric string, eventType EventTypeString) {
	if d.metrics == nil {
		return
	}

	labels := map[string]string{logAttrEventType: eventType}

	if contextualCollector, ok := d.metrics.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		d.metrics.IncrementCounter(metric, labels)
	}
}
