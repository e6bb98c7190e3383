// Package ratelimit paces periodic work with a token bucket.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer releases one token per interval with a burst of one. The initial
// token is drained at construction so the first Wait also blocks for a
// full interval, which matches "sleep, then act" loops.
type Pacer struct {
	limiter  *rate.Limiter
	interval time.Duration
}

func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	limiter.Allow()
	return &Pacer{limiter: limiter, interval: interval}
}

// Wait blocks until the next tick or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Interval returns the configured spacing between ticks; zero means unpaced.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
