package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubecast/internal/chat"
	"github.com/vovakirdan/cubecast/internal/config"
	"github.com/vovakirdan/cubecast/internal/core"
	"github.com/vovakirdan/cubecast/internal/engine"
	"github.com/vovakirdan/cubecast/internal/render"
	"github.com/vovakirdan/cubecast/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to chat and run the bot",
	Long: `Connect to the configured Twitch channel and run until interrupted.

Every valid "x y z r g b" chat line places a cube; the canvas is rendered to
the configured PNG at the configured frame rate. The OAuth token must already
be provisioned at twitch.token_file; refreshed tokens are checkpointed back
to the same file.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Twitch.LoginName == "" || cfg.Twitch.ChannelName == "" {
		return fmt.Errorf("twitch.login_name and twitch.channel_name must be configured")
	}

	logger := newLogger()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tokenStore, err := chat.NewTokenStore(cfg.Twitch.TokenFile)
	if err != nil {
		return err
	}
	creds, err := chat.NewCredentials(ctx, cfg.Twitch.ClientID, cfg.Twitch.Secret, tokenStore)
	if err != nil {
		return err
	}

	queue := engine.NewQueue()
	pacer := engine.NewPacer(cfg.Canvas.FrameRate, queue)
	canvas := core.NewCanvas(cfg.Canvas.CubeSize)
	snapshotter := render.New(cfg.Canvas.Resolution, cfg.Canvas.CubeSize, cfg.Canvas.ImageFile)
	loop := engine.NewLoop(canvas, queue, store, snapshotter, pacer.Interval(), logger)

	source := chat.NewSource(cfg.Twitch.LoginName, cfg.Twitch.ChannelName, creds, queue, logger)

	var sourceErr error
	var producers sync.WaitGroup
	producers.Add(2)
	go func() {
		defer producers.Done()
		pacer.Run(ctx)
	}()
	go func() {
		defer producers.Done()
		if err := source.Run(ctx); err != nil {
			logger.Error("chat source stopped", "error", err)
			sourceErr = err
		}
		cancel()
	}()

	// The loop ends when the queue closes. Close it only after both
	// producers have stopped; buffered events still drain.
	go func() {
		<-ctx.Done()
		producers.Wait()
		queue.Close()
	}()

	logger.Info("bot started",
		"channel", cfg.Twitch.ChannelName,
		"cube_size", cfg.Canvas.CubeSize,
		"frame_rate", cfg.Canvas.FrameRate,
		"image", cfg.Canvas.ImageFile)

	if err := loop.Run(); err != nil {
		logger.Error("event loop failed", "error", err)
		return err
	}
	// loop.Run returns only after the queue closes, which happens after
	// the producers finish, so sourceErr is settled by now.
	if sourceErr != nil {
		return fmt.Errorf("chat source failed: %w", sourceErr)
	}
	logger.Info("bot stopped")
	return nil
}
