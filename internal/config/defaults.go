package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the default configuration. Twitch credentials are left
// empty on purpose; `cubecast run` refuses to start without them.
func Default() Config {
	return Config{
		Twitch: TwitchConfig{
			TokenFile: "~/.cubecast/token.json",
		},
		Canvas: CanvasConfig{
			CubeSize:   500,
			FrameRate:  1.0,
			Resolution: 1080,
			ImageFile:  "canvas.png",
		},
	}
}
