package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse failure categories. Callers distinguish them with errors.Is.
var (
	// ErrFieldCount means the line did not have exactly six fields.
	ErrFieldCount = errors.New("expected 6 fields: x y z r g b")

	// ErrNumericFormat means a field was not a base-10 integer.
	ErrNumericFormat = errors.New("field is not an integer")

	// ErrColorRange means r, g or b was outside 0..255.
	ErrColorRange = errors.New("color out of range 0-255")

	// ErrOutOfBounds means a coordinate falls outside the canvas volume.
	// Reported by Canvas.InBounds callers, not by Parse: the bound is
	// runtime configuration and not a parsing concern.
	ErrOutOfBounds = errors.New("coordinate outside canvas")
)

// Parse turns one chat line into a placement command.
// The line must be exactly six single-space-separated base-10 integers:
// x y z r g b. Coordinates are not bound-checked here and may be negative.
func Parse(text string) (Command, error) {
	fields := strings.Split(text, " ")
	if len(fields) != 6 {
		return Command{}, fmt.Errorf("%w (got %d)", ErrFieldCount, len(fields))
	}

	var vals [6]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrNumericFormat, f)
		}
		vals[i] = n
	}

	for _, c := range vals[3:] {
		if c < 0 || c > 255 {
			return Command{}, fmt.Errorf("%w: %d", ErrColorRange, c)
		}
	}

	return Command{
		X: vals[0],
		Y: vals[1],
		Z: vals[2],
		R: uint8(vals[3]),
		G: uint8(vals[4]),
		B: uint8(vals[5]),
	}, nil
}
