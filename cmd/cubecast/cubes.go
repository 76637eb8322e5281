package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubecast/internal/storage"
)

var flagClear bool

var cubesCmd = &cobra.Command{
	Use:   "cubes",
	Short: "Show (or clear) the cube archive",
	Long: `Print how many placements the archive holds.

With --clear, delete all of them. The running bot's in-memory canvas is not
affected until it restarts; clearing while the bot runs is mostly useful
right before a restart.`,
	RunE: runCubes,
}

func init() {
	cubesCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all archived placements")
}

func runCubes(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Archive cleared")
		return nil
	}

	n, err := store.Count()
	if err != nil {
		return err
	}
	fmt.Printf("%d placements archived\n", n)
	return nil
}
