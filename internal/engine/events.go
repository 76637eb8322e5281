// Package engine contains the single-writer event loop at the heart of the
// bot: it merges render ticks and chat placements into one ordered stream,
// applies them to the canvas exactly once, and paces snapshot production so
// slow renders degrade into counted frame loss instead of queue growth.
package engine

import (
	"image"
	"time"

	"github.com/vovakirdan/cubecast/internal/core"
)

// Event is a unit of work for the event loop. Exactly two kinds exist:
// TickEvent and CommandEvent.
type Event interface {
	isEvent()
}

// TickEvent asks the loop to attempt one render. Emitted by the Pacer.
type TickEvent struct {
	At time.Time
}

func (TickEvent) isEvent() {}

// CommandEvent carries one accepted placement from a producer to the loop.
type CommandEvent struct {
	Cmd core.Command
}

func (CommandEvent) isEvent() {}

// Archive is the durable store of accepted placements. Append failures are
// fatal to the loop; retry policy, if any, belongs to the implementation.
type Archive interface {
	Append(cmd core.Command) error
	ListAll() ([]core.Command, error)
}

// Renderer produces and publishes pixel snapshots of the canvas.
// Both methods may fail without stopping the loop; a failed frame is logged
// and skipped.
type Renderer interface {
	Capture(voxels []core.Voxel) (*image.RGBA, error)
	Publish(img *image.RGBA) error
}
