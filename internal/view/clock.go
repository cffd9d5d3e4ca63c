package view

import (
	"context"
	"sync"
	"time"
)

// Clock calls Tick once immediately and then every Interval until its
// context is cancelled.
type Clock struct {
	Interval time.Duration
	Now      func() time.Time
	Tick     func(time.Time)
}

// NewClock returns a one-second clock.
func NewClock(tick func(time.Time)) *Clock {
	return &Clock{Interval: time.Second, Now: time.Now, Tick: tick}
}

// Run blocks until ctx is done.
func (c *Clock) Run(ctx context.Context) {
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}

	c.Tick(now())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick(now())
		}
	}
}

// Start runs the clock in a goroutine. The returned function stops it and
// waits for the goroutine to exit; calling it more than once is safe.
func (c *Clock) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Run(ctx)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}
