package engine

import (
	"context"
	"time"
)

// Pacer emits a TickEvent into the queue at a fixed rate for the life of the
// process. It never renders itself; it only signals intent, which decouples
// timer jitter from render cost.
type Pacer struct {
	interval time.Duration
	queue    *Queue
}

// NewPacer creates a pacer emitting frameRate ticks per second.
// frameRate must be > 0 (validated by the configuration layer).
func NewPacer(frameRate float64, q *Queue) *Pacer {
	return &Pacer{
		interval: time.Duration(float64(time.Second) / frameRate),
		queue:    q,
	}
}

// Interval returns the configured frame interval (1/frameRate).
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Run emits ticks until the context is cancelled. An immediate tick is sent
// first so a fresh process publishes its restored canvas without waiting a
// full interval.
func (p *Pacer) Run(ctx context.Context) {
	p.queue.Push(TickEvent{At: time.Now()})

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case at := <-ticker.C:
			p.queue.Push(TickEvent{At: at})
		case <-ctx.Done():
			return
		}
	}
}
