package httpx

import (
	"time"

	"github.com/sony/gobreaker"
)

// NewBreaker returns a per-remote circuit breaker: opens after 5
// consecutive failures, half-opens after 30s to probe recovery. Grounded
// on jordigilh-kubernaut's go.mod (direct sony/gobreaker dependency
// there) — an ambient resilience layer sitting under the Retrier, one
// breaker per remote (HRIS, ATS, Planner) so a sick upstream can't starve
// the others' request budget.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return gobreaker.NewCircuitBreaker(settings)
}

// Guard executes op through the breaker. gobreaker's Execute is untyped
// ([interface{}]), so Guard restores the generic signature callers want
// and reports a breaker-open rejection as ErrTransient — callers' retry
// logic treats it the same as any other transient upstream failure.
func Guard[T any](cb *gobreaker.CircuitBreaker, op func() (T, error)) (T, error) {
	v, err := cb.Execute(func() (any, error) {
		return op()
	})
	if err != nil {
		var zero T
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return zero, ErrTransient
		}
		return zero, err
	}
	return v.(T), nil
}
