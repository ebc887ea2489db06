package app

import (
	"context"
	"sync"
	"time"
)

// TickerFunc starts a periodic ticker and returns its channel and a stop function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Countdown is the periodic process behind a session clock. It calls tick once
// per interval until tick returns false or Stop is called.
type Countdown struct {
	interval  time.Duration
	newTicker TickerFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewCountdown(interval time.Duration, newTicker TickerFunc) *Countdown {
	if newTicker == nil {
		newTicker = realTicker
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{interval: interval, newTicker: newTicker}
}

// Start launches the process, replacing any previous one.
func (c *Countdown) Start(tick func() bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	ch, stop := c.newTicker(c.interval)
	go func() {
		defer close(done)
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				if ctx.Err() != nil || !tick() {
					return
				}
			}
		}
	}()
}

// Stop cancels the process without waiting for it. It is safe to call from tick.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Wait blocks until the current process has exited.
func (c *Countdown) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}
