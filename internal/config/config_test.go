package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	data := []byte(`
twitch:
  login_name: cubebot
  channel_name: somechannel
  client_id: abc
  secret: shh
  token_file: /tmp/token.json
canvas:
  cube_size: 64
  frame_rate: 0.5
  resolution: 256
  image_file: out.png
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Twitch.LoginName != "cubebot" {
		t.Errorf("login_name = %q, expected cubebot", cfg.Twitch.LoginName)
	}
	if cfg.Canvas.CubeSize != 64 {
		t.Errorf("cube_size = %d, expected 64", cfg.Canvas.CubeSize)
	}
	if cfg.Canvas.FrameRate != 0.5 {
		t.Errorf("frame_rate = %g, expected 0.5", cfg.Canvas.FrameRate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() rejected a complete config: %v", err)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() succeeded with a missing custom path")
	}
}

func TestLoadMalformedCustomPathFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("canvas: ["), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() succeeded with malformed YAML")
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
	if cfg.Canvas.CubeSize != 500 {
		t.Errorf("default cube_size = %d, expected 500", cfg.Canvas.CubeSize)
	}
	if cfg.Canvas.FrameRate != 1.0 {
		t.Errorf("default frame_rate = %g, expected 1.0", cfg.Canvas.FrameRate)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cube_size", func(c *Config) { c.Canvas.CubeSize = 0 }},
		{"negative frame_rate", func(c *Config) { c.Canvas.FrameRate = -1 }},
		{"zero frame_rate", func(c *Config) { c.Canvas.FrameRate = 0 }},
		{"NaN frame_rate", func(c *Config) { c.Canvas.FrameRate = math.NaN() }},
		{"infinite frame_rate", func(c *Config) { c.Canvas.FrameRate = math.Inf(1) }},
		{"sub-nanosecond frame interval", func(c *Config) { c.Canvas.FrameRate = 2e9 }},
		{"zero resolution", func(c *Config) { c.Canvas.Resolution = 0 }},
		{"empty image_file", func(c *Config) { c.Canvas.ImageFile = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}
