// Package core provides the pure domain types for the cube canvas: placement
// commands, the chat command parser, and the in-memory canvas state. It
// contains no external dependencies to keep the logic testable on its own.
package core

// Coord is an integer position inside the canvas volume.
type Coord struct {
	X, Y, Z int
}

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Command is a validated instruction to color one coordinate.
// Immutable once constructed; produced by Parse, consumed by the event loop.
// Coordinates may be negative after parsing (bulk importers shift them before
// acceptance); the bound check happens at the point of application.
type Command struct {
	X, Y, Z int
	R, G, B uint8
}

// Coord returns the command's target coordinate.
func (c Command) Coord() Coord {
	return Coord{X: c.X, Y: c.Y, Z: c.Z}
}

// Color returns the command's color.
func (c Command) Color() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Voxel is one placed cube, as reported by Canvas.Snapshot.
type Voxel struct {
	Coord Coord
	Color RGB
}
