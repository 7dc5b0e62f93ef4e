package httpx

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// NewTokenBucket builds a blocking token-bucket limiter for the planner
// adapter (§4.1: "A token-bucket limiter (e.g., 100 req/60 s) protects the
// planner adapter; wait_if_needed blocks before each call"). Grounded on
// golang.org/x/time/rate, already an indirect dependency of the teacher,
// promoted to direct use.
func NewTokenBucket(requests int, window time.Duration) *rate.Limiter {
	if requests <= 0 {
		requests = 1
	}
	r := rate.Limit(float64(requests) / window.Seconds())
	return rate.NewLimiter(r, requests)
}

// WaitIfNeeded blocks until the limiter admits one more request, or ctx is
// done. It is the direct analogue of spec.md's wait_if_needed.
func WaitIfNeeded(ctx context.Context, limiter *rate.Limiter) error {
	return limiter.Wait(ctx)
}
