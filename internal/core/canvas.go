package core

// Canvas is the in-memory map from coordinate to color for all placed cubes.
// It has no internal locking: by contract it is only ever touched by the
// single event loop goroutine that owns it.
type Canvas struct {
	bound int
	cells map[Coord]RGB
}

// NewCanvas creates an empty canvas addressing the volume
// 0 <= x,y,z < bound.
func NewCanvas(bound int) *Canvas {
	return &Canvas{
		bound: bound,
		cells: make(map[Coord]RGB),
	}
}

// Bound returns the side length of the addressable volume.
func (c *Canvas) Bound() int {
	return c.bound
}

// InBounds reports whether the command's coordinate is inside the volume.
func (c *Canvas) InBounds(cmd Command) bool {
	return cmd.X >= 0 && cmd.X < c.bound &&
		cmd.Y >= 0 && cmd.Y < c.bound &&
		cmd.Z >= 0 && cmd.Z < c.bound
}

// Place inserts or overwrites the entry at the command's coordinate.
// Last writer wins; there is no removal operation. Bounds are the caller's
// responsibility and must be checked with InBounds before calling.
func (c *Canvas) Place(cmd Command) {
	c.cells[cmd.Coord()] = cmd.Color()
}

// Get returns the color at the coordinate and whether a cube is placed there.
func (c *Canvas) Get(at Coord) (RGB, bool) {
	rgb, ok := c.cells[at]
	return rgb, ok
}

// Len returns the number of placed cubes.
func (c *Canvas) Len() int {
	return len(c.cells)
}

// Snapshot returns the placed cubes at call time.
// The returned slice is independent of later mutations.
func (c *Canvas) Snapshot() []Voxel {
	out := make([]Voxel, 0, len(c.cells))
	for at, rgb := range c.cells {
		out = append(out, Voxel{Coord: at, Color: rgb})
	}
	return out
}

// LoadAll replays persisted commands into the canvas, equivalent to calling
// Place for each in order. Used once at startup to restore archived state.
// Replay is idempotent and tolerates duplicates; the last command at a
// coordinate wins.
func (c *Canvas) LoadAll(cmds []Command) {
	for _, cmd := range cmds {
		c.Place(cmd)
	}
}
