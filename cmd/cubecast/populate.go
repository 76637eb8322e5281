package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubecast/internal/config"
	"github.com/vovakirdan/cubecast/internal/core"
	"github.com/vovakirdan/cubecast/internal/storage"
)

var (
	flagDX int
	flagDY int
	flagDZ int
)

var populateCmd = &cobra.Command{
	Use:   "populate <file>",
	Short: "Bulk-import placements from a text file",
	Long: `Read placement lines ("x y z r g b", one per line) from a file and
append them to the cube archive, bypassing chat. Useful for seeding the
canvas from a point-cloud dump.

The --dx/--dy/--dz offsets are added to every coordinate before the bound
check, so dumps centered on the origin can be shifted into the canvas.
Lines that fail to parse or land outside the canvas are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runPopulate,
}

func init() {
	populateCmd.Flags().IntVar(&flagDX, "dx", 0, "X offset added to every line")
	populateCmd.Flags().IntVar(&flagDY, "dy", 0, "Y offset added to every line")
	populateCmd.Flags().IntVar(&flagDZ, "dz", 0, "Z offset added to every line")
}

func runPopulate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	logger := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	canvas := core.NewCanvas(cfg.Canvas.CubeSize)

	var imported, skipped int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		cmdLine, err := core.Parse(scanner.Text())
		if err != nil {
			logger.Debug("skipping line", "error", err)
			skipped++
			continue
		}

		cmdLine.X += flagDX
		cmdLine.Y += flagDY
		cmdLine.Z += flagDZ
		if !canvas.InBounds(cmdLine) {
			logger.Debug("skipping line outside canvas",
				"x", cmdLine.X, "y", cmdLine.Y, "z", cmdLine.Z)
			skipped++
			continue
		}

		if err := store.Append(cmdLine); err != nil {
			return err
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	fmt.Printf("Imported %d placements (%d skipped)\n", imported, skipped)
	return nil
}
