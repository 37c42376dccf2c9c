// Package main provides the CLI entrypoint for cliplay.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliplay/internal/audio"
	"github.com/jmylchreest/cliplay/internal/config"
	"github.com/jmylchreest/cliplay/internal/library"
	"github.com/jmylchreest/cliplay/internal/menu"
	"github.com/jmylchreest/cliplay/internal/player"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		dir        string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cliplay",
	Short: "Play recorded audio clips from a local directory",
	Long: `cliplay plays the audio clips in a local directory.

It lists the .wav, .mp3 and .ogg files in the clip directory and plays
them one at a time: all of them in order, only the newest recording, or
a single clip picked by name or number.

Running cliplay without a subcommand opens the interactive menu.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.dir != "" {
			cfg.Library.Directory = globalOpts.dir
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger.Debug("config loaded", "directory", cfg.ClipDirectory(), "extensions", cfg.Library.Extensions)
		return nil
	},
	// Default to the interactive menu when no subcommand is provided
	RunE: runMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := player.Suggestion(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/cliplay/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.dir, "dir", "d", "",
		"Clip directory (default: audio_clips)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// newScanner builds a library scanner for the configured extensions.
func newScanner() *library.Scanner {
	return library.NewScanner(library.NewExtensions(cfg.Library.Extensions...), logger)
}

// openController opens the audio device and returns a controller over the
// configured clip directory. The returned close func releases the device.
func openController(out io.Writer) (*player.Controller, func(), error) {
	speaker := audio.NewSpeaker(audio.SpeakerOptions{
		SampleRate: cfg.Playback.SampleRate,
		Volume:     float64(cfg.Playback.Volume) / 100,
	}, logger)

	if err := speaker.Open(); err != nil {
		return nil, nil, fmt.Errorf("failed to open audio device: %w", err)
	}

	ctrl := player.New(speaker, newScanner(), player.Options{
		Directory:    cfg.ClipDirectory(),
		PollInterval: cfg.Playback.PollInterval.Duration(),
		Gap:          cfg.Playback.Gap.Duration(),
		Output:       out,
		Logger:       logger,
	})

	closeFn := func() {
		if err := speaker.Close(); err != nil {
			logger.Warn("failed to close audio device", "error", err)
		}
	}
	return ctrl, closeFn, nil
}

// interrupted reports whether err is only the signal cancellation.
func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}

func runMenu(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	ctrl, closeFn, err := openController(os.Stdout)
	if err != nil {
		return err
	}
	defer closeFn()

	// The menu blocks on stdin, so an interrupt at the prompt is handled here
	done := make(chan error, 1)
	go func() {
		done <- menu.New(ctrl, os.Stdout, logger).Run(ctx, os.Stdin)
	}()

	select {
	case err := <-done:
		if err != nil && !interrupted(ctx, err) {
			return err
		}
		return nil
	case <-ctx.Done():
		fmt.Println()
		return nil
	}
}
