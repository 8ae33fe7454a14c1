// Package common provides shared utilities used across the scanner.
package common

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter caps the request rate the worker pool is allowed to put on a
// downstream service. The extraction service is typically a single local
// instance, so an unthrottled fan-out from every worker can starve it.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a RateLimiter with the specified requests per second
// (rps) and burst size.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until the rate limiter allows an event or the context is
// canceled. It returns an error if the context is canceled while waiting.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}
