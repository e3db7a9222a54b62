package entity

import (
	"context"
	"time"
)

// fixedClock implements the TimeProvider port with a settable instant
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time                { return c.now }
func (c *fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *fixedClock) Sleep(time.Duration)           {}
func (c *fixedClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
