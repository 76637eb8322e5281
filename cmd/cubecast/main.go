// cubecast is a Twitch chat bot that lets viewers place colored cubes in a
// shared 3D canvas by typing "x y z r g b" in chat. The canvas is rendered
// to a PNG at a fixed rate and every accepted placement is archived to
// SQLite so the canvas survives restarts.
//
// Usage:
//
//	cubecast run                 - Connect to chat and run the bot
//	cubecast populate <file>     - Bulk-import placements from a text file
//	cubecast cubes               - Show (or clear) the cube archive
//	cubecast view                - Live terminal preview of one canvas slice
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.cubecast/config.yaml)
//	--db <path>          - Archive database (default: ~/.cubecast/cubes.db)
//	--log-level <level>  - debug, info, warn, error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cubecast",
	Short: "Chat-driven cube canvas with periodic PNG snapshots",
	Long: `cubecast turns a Twitch channel into a shared 3D canvas.

Viewers type six integers in chat - x y z r g b - and a colored unit cube
appears at that coordinate. The canvas is rendered to a PNG file at a fixed
frame rate (point OBS or a web overlay at it) and every accepted placement
is persisted, so restarting the bot restores the canvas.

Examples:
  cubecast run
  cubecast run --config ./cubecast.yaml --log-level debug
  cubecast populate dump.txt --dx 300 --dy 50 --dz 100
  cubecast cubes
  cubecast view --z 10`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cubecast/cubes.db", "Path to cube archive database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(populateCmd)
	rootCmd.AddCommand(cubesCmd)
	rootCmd.AddCommand(viewCmd)
}

// newLogger builds the process logger from the --log-level flag.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cubecast",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}
