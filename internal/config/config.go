// Package config provides YAML-based configuration loading for the bot:
// Twitch credentials and the canvas/render surface.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full configuration surface of the bot.
type Config struct {
	Twitch TwitchConfig `yaml:"twitch"`
	Canvas CanvasConfig `yaml:"canvas"`
}

// TwitchConfig identifies the bot account and the channel it reads.
type TwitchConfig struct {
	LoginName   string `yaml:"login_name"`
	ChannelName string `yaml:"channel_name"`
	ClientID    string `yaml:"client_id"`
	Secret      string `yaml:"secret"`
	TokenFile   string `yaml:"token_file"`
}

// CanvasConfig shapes the cube volume and the published snapshot.
type CanvasConfig struct {
	// CubeSize is the side length of the addressable volume; placements
	// outside 0..CubeSize-1 on any axis are dropped.
	CubeSize int `yaml:"cube_size"`

	// FrameRate is snapshots per second. May be fractional (0.5 = one
	// frame every two seconds).
	FrameRate float64 `yaml:"frame_rate"`

	// Resolution is the output image side length in pixels.
	Resolution int `yaml:"resolution"`

	// ImageFile is where published frames land.
	ImageFile string `yaml:"image_file"`
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.CubeSize <= 0 {
		errs = append(errs, fmt.Errorf("canvas.cube_size must be positive, got %d", c.Canvas.CubeSize))
	}
	if !(c.Canvas.FrameRate > 0) {
		errs = append(errs, fmt.Errorf("canvas.frame_rate must be positive, got %g", c.Canvas.FrameRate))
	} else if time.Duration(float64(time.Second)/c.Canvas.FrameRate) <= 0 {
		// Rates past ~1e9 collapse the frame interval below 1ns.
		errs = append(errs, fmt.Errorf("canvas.frame_rate %g is too high for a nanosecond timer", c.Canvas.FrameRate))
	}
	if c.Canvas.Resolution <= 0 {
		errs = append(errs, fmt.Errorf("canvas.resolution must be positive, got %d", c.Canvas.Resolution))
	}
	if c.Canvas.ImageFile == "" {
		errs = append(errs, errors.New("canvas.image_file must be set"))
	}
	return errors.Join(errs...)
}
