// Package render turns canvas snapshots into PNG images on disk. The
// projection is a fixed oblique view of the cube volume; readers of the
// output file never observe a partial frame because publishing writes a
// temporary file and renames it into place.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/vovakirdan/cubecast/internal/core"
)

// Background is the canvas clear color, a near-white gray.
var Background = color.RGBA{R: 250, G: 250, B: 250, A: 255}

// depthShift controls how far one z step displaces a cube on screen,
// as a fraction of a cell.
const depthShift = 0.5

// Snapshotter renders voxel snapshots into square RGBA images and publishes
// them to a single output path. It implements the event loop's Renderer.
type Snapshotter struct {
	resolution int
	bound      int
	outputPath string

	// cell is the on-screen size of one cube, sized so the whole volume
	// plus its depth displacement fits in the frame.
	cell float64
}

// New creates a Snapshotter drawing a bound-sided volume into a
// resolution x resolution image, published at outputPath.
func New(resolution, bound int, outputPath string) *Snapshotter {
	return &Snapshotter{
		resolution: resolution,
		bound:      bound,
		outputPath: outputPath,
		cell:       float64(resolution) / (float64(bound) * (1 + depthShift)),
	}
}

// Capture draws the snapshot into a fresh image. Cubes nearer the viewer
// (larger z) are painted last so they occlude those behind them.
func (s *Snapshotter) Capture(voxels []core.Voxel) (*image.RGBA, error) {
	if s.resolution <= 0 || s.bound <= 0 {
		return nil, fmt.Errorf("render: invalid geometry: resolution=%d bound=%d", s.resolution, s.bound)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.resolution, s.resolution))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	ordered := make([]core.Voxel, len(voxels))
	copy(ordered, voxels)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Coord.Z < ordered[j].Coord.Z
	})

	for _, v := range ordered {
		s.paint(img, v)
	}
	return img, nil
}

func (s *Snapshotter) paint(img *image.RGBA, v core.Voxel) {
	shift := depthShift * float64(v.Coord.Z)
	x0 := int((float64(v.Coord.X) + shift) * s.cell)
	y0 := int((float64(v.Coord.Y) + shift) * s.cell)

	side := int(s.cell)
	if side < 1 {
		side = 1
	}

	c := color.RGBA{R: v.Color.R, G: v.Color.G, B: v.Color.B, A: 255}
	rect := image.Rect(x0, y0, x0+side, y0+side).Intersect(img.Bounds())
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// Publish encodes the image as PNG and atomically replaces the output file.
func (s *Snapshotter) Publish(img *image.RGBA) error {
	dir := filepath.Dir(s.outputPath)
	tmp, err := os.CreateTemp(dir, ".canvas-*.png")
	if err != nil {
		return fmt.Errorf("render: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("render: encoding png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("render: closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("render: setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("render: publishing frame: %w", err)
	}
	return nil
}
