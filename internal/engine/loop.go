package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cubecast/internal/core"
)

// ErrDeadlineOverflow is returned when the next render deadline cannot be
// represented. Pacing cannot safely continue past this point.
var ErrDeadlineOverflow = errors.New("engine: pacing deadline overflow")

// Stats are the loop's pacing counters. Owned exclusively by the loop
// goroutine; read them only after Run returns (or from tests driving the
// loop synchronously).
type Stats struct {
	NextDeadline       time.Time
	LastRenderDuration time.Duration
	FramesLost         uint64
}

// Loop is the single consumer that owns all canvas mutations and all calls
// to the archive and renderer. Producers reach it only through the queue, so
// no locking is needed anywhere in the canvas.
type Loop struct {
	canvas   *core.Canvas
	queue    *Queue
	archive  Archive
	renderer Renderer
	interval time.Duration
	logger   *log.Logger

	stats Stats
	now   func() time.Time
}

// NewLoop wires a loop to its collaborators. interval is the frame interval
// (Pacer.Interval of the pacer feeding the same queue).
func NewLoop(canvas *core.Canvas, q *Queue, archive Archive, renderer Renderer, interval time.Duration, logger *log.Logger) *Loop {
	return &Loop{
		canvas:   canvas,
		queue:    q,
		archive:  archive,
		renderer: renderer,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Stats returns the pacing counters. See the ownership note on Stats.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Run replays the archive into the canvas and then consumes the queue until
// it is closed. It returns nil on a clean queue close, or the first fatal
// error: a failed replay, a failed archive append, or a pacing overflow.
func (l *Loop) Run() error {
	events, err := l.archive.ListAll()
	if err != nil {
		return fmt.Errorf("engine: replaying archive: %w", err)
	}
	l.canvas.LoadAll(events)
	l.logger.Info("canvas restored", "cubes", l.canvas.Len())

	for ev := range l.queue.Events() {
		switch e := ev.(type) {
		case CommandEvent:
			if err := l.handleCommand(e.Cmd); err != nil {
				return err
			}
		case TickEvent:
			if err := l.handleTick(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Loop) handleCommand(cmd core.Command) error {
	if !l.canvas.InBounds(cmd) {
		l.logger.Debug("dropping placement outside canvas",
			"x", cmd.X, "y", cmd.Y, "z", cmd.Z, "bound", l.canvas.Bound())
		return nil
	}

	l.canvas.Place(cmd)

	// The archive is the source of truth for replay; losing an accepted
	// command silently would corrupt every future restart.
	if err := l.archive.Append(cmd); err != nil {
		return fmt.Errorf("engine: archiving placement: %w", err)
	}
	return nil
}

func (l *Loop) handleTick() error {
	start := l.now()

	// A tick that lands before the previous attempt's deadline is spurious:
	// skip it and leave the deadline untouched.
	if start.Before(l.stats.NextDeadline) {
		return nil
	}

	if img, err := l.renderer.Capture(l.canvas.Snapshot()); err != nil {
		l.logger.Error("snapshot capture failed", "error", err)
	} else if err := l.renderer.Publish(img); err != nil {
		l.logger.Error("snapshot publish failed", "error", err)
	}

	elapsed := l.now().Sub(start)

	// Whole intervals consumed beyond the first are lost frames. They are an
	// accounting signal only; the canvas is always rendered as current and
	// never re-rendered to catch up.
	lost := int64(elapsed / l.interval)
	if lost > 0 {
		l.stats.FramesLost += uint64(lost)
		l.logger.Warn("frames lost to slow render",
			"lost", lost, "render", elapsed, "interval", l.interval, "total", l.stats.FramesLost)
	}

	if lost >= math.MaxInt64/int64(l.interval) {
		return fmt.Errorf("%w: render took %v", ErrDeadlineOverflow, elapsed)
	}
	steps := lost + 1

	l.stats.LastRenderDuration = elapsed
	l.stats.NextDeadline = start.Add(l.interval * time.Duration(steps))
	return nil
}
