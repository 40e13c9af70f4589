package shell

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
	"github.com/AntonStoeckl/domain-model-go/example/shared/shell/postgresrepo"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3

	// SaveRetriesMetric tracks retried save attempts after a concurrency conflict.
	SaveRetriesMetric = "repository_save_retries_total"

	// SaveRetryDelayMetric tracks the backoff delay before each retry attempt.
	SaveRetryDelayMetric = "repository_save_retry_delay_seconds"

	labelAttemptNumber = "attempt_number"
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc represents a function that can be retried.
type RetryableFunc func(ctx context.Context) error

// retryConfig holds configuration for exponential backoff retry logic.
type retryConfig struct {
	maxAttempts      int
	baseDelay        time.Duration
	jitterFactor     float64
	metricsCollector domainmodel.MetricsCollector
}

// RetryOption configures retry behavior using the functional options pattern.
type RetryOption func(*retryConfig) error

// WithMaxAttempts sets the maximum number of attempts, including the first one.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, and so on.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter added as a fraction of the calculated
// backoff delay, to prevent thundering herd effects.
// Valid range: 0.0 (no jitter) to 1.0 (100% jitter).
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}

// WithRetryMetrics sets a metrics collector for retry instrumentation.
func WithRetryMetrics(collector domainmodel.MetricsCollector) RetryOption {
	return func(config *retryConfig) error {
		config.metricsCollector = collector

		return nil
	}
}

// RetryWithExponentialBackoff executes fn with exponential backoff retry
// logic, retrying only on postgresrepo.ErrConcurrencyConflict up to the
// configured number of attempts. All other errors fail fast - retrying a
// timeout or a broken connection during overload only makes things worse.
//
// Retry schedule (default): 0 ms, 10 ms, 20 ms, 40 ms, 80 ms, 160 ms (with 30% jitter).
func RetryWithExponentialBackoff(ctx context.Context, fn RetryableFunc, options ...RetryOption) error {
	config := &retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return err
		}
	}

	var lastErr error

	for attempt := 0; attempt < config.maxAttempts; attempt++ {
		if attempt > 0 {
			backoffDelay := config.backoffDelayFor(attempt)
			config.recordRetry(ctx, attempt, backoffDelay)

			select {
			case <-time.After(backoffDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !errors.Is(lastErr, postgresrepo.ErrConcurrencyConflict) {
			return lastErr
		}
	}

	return lastErr
}

// backoffDelayFor calculates the jittered exponential delay before the given attempt.
func (config *retryConfig) backoffDelayFor(attempt int) time.Duration {
	delay := config.baseDelay * time.Duration(1<<(attempt-1))
	jitter := rand.Float64() * float64(delay) * config.jitterFactor //nolint:gosec // math/rand is sufficient for jitter

	return delay + time.Duration(jitter)
}

// recordRetry records retry count and delay metrics for the given attempt.
func (config *retryConfig) recordRetry(ctx context.Context, attempt int, backoffDelay time.Duration) {
	if config.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelAttemptNumber: strconv.Itoa(attempt)}

	if contextualCollector, ok := config.metricsCollector.(domainmodel.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, SaveRetriesMetric, labels)
		contextualCollector.RecordDurationContext(ctx, SaveRetryDelayMetric, backoffDelay, labels)

		return
	}

	config.metricsCollector.IncrementCounter(SaveRetriesMetric, labels)
	config.metricsCollector.RecordDuration(SaveRetryDelayMetric, backoffDelay, labels)
}
