package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/felixgeelhaar/fortify/retry"
)

// ResilienceConfig holds configuration for the resilient transport wrapper.
type ResilienceConfig struct {
	// EnableCircuitBreaker enables circuit breaker pattern
	EnableCircuitBreaker bool

	// EnableRetry enables retry with backoff
	EnableRetry bool

	// EnableRateLimit enables rate limiting
	EnableRateLimit bool

	// RatePerSecond for rate limiting (default: 5)
	RatePerSecond int

	// Logger for resilience events
	Logger *slog.Logger
}

// DefaultResilienceConfig returns sensible defaults for backend calls.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		EnableCircuitBreaker: true,
		EnableRetry:          true,
		EnableRateLimit:      true,
		RatePerSecond:        5,
	}
}

// WithResilience wraps the client's transport with fortify resilience
// patterns: rate limit, then circuit breaker, then retry. Mutations stay
// safe to retry because marking a problem solved/unsolved is idempotent
// on the backend.
func (c *Client) WithResilience(cfg ResilienceConfig) *Client {
	base := c.send

	var retrier retry.Retry[[]byte]
	if cfg.EnableRetry {
		retrier = retry.New[[]byte](retry.Config{
			MaxAttempts:   3,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      10 * time.Second,
			Multiplier:    2.0,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        true,
			IsRetryable: func(err error) bool {
				return isRetryableHTTPError(err)
			},
		})
	}

	var breaker circuitbreaker.CircuitBreaker[[]byte]
	if cfg.EnableCircuitBreaker {
		breaker = circuitbreaker.New[[]byte](circuitbreaker.Config{
			MaxRequests: 2,
			Interval:    10 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				if cfg.Logger != nil {
					cfg.Logger.Warn("backend circuit breaker state change",
						"from", from.String(),
						"to", to.String())
				}
			},
		})
	}

	var limiter ratelimit.RateLimiter
	if cfg.EnableRateLimit {
		rate := cfg.RatePerSecond
		if rate <= 0 {
			rate = 5
		}
		limiter = ratelimit.New(&ratelimit.Config{
			Rate:     rate,
			Burst:    rate * 3,
			Interval: time.Second,
		})
	}

	c.send = func(ctx context.Context, method, path string, body []byte) ([]byte, error) {
		if limiter != nil {
			if !limiter.Allow(ctx, "backend") {
				return nil, fmt.Errorf("rate limit exceeded for backend")
			}
		}

		operation := func(ctx context.Context) ([]byte, error) {
			return base(ctx, method, path, body)
		}

		if retrier != nil {
			inner := operation
			operation = func(ctx context.Context) ([]byte, error) {
				return retrier.Do(ctx, inner)
			}
		}

		if breaker != nil {
			return breaker.Execute(ctx, operation)
		}
		return operation(ctx)
	}

	return c
}

// isRetryableHTTPError checks if an error is retryable based on HTTP semantics
func isRetryableHTTPError(err error) bool {
	if err == nil {
		return false
	}

	code := extractStatusCode(err)
	retryableCodes := []int{
		http.StatusTooManyRequests,     // 429
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout,      // 504
	}

	for _, rc := range retryableCodes {
		if code == rc {
			return true
		}
	}

	return false
}

// extractStatusCode tries to extract HTTP status code from error message
func extractStatusCode(err error) int {
	if err == nil {
		return 0
	}

	errStr := err.Error()

	statusCodes := map[string]int{
		"status 429": http.StatusTooManyRequests,
		"status 500": http.StatusInternalServerError,
		"status 502": http.StatusBadGateway,
		"status 503": http.StatusServiceUnavailable,
		"status 504": http.StatusGatewayTimeout,
	}

	for pattern, code := range statusCodes {
		if strings.Contains(errStr, pattern) {
			return code
		}
	}

	return 0
}
