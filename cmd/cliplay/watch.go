package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliplay/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Play new clips as they are recorded",
	Long: `Watch the clip directory and play every new clip once it has been
completely written. Clips that arrive during playback are queued and
played afterwards, one at a time.

The settle delay ([watch] settle in the config) controls how long a file
must stay unchanged before it is played.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	ctrl, closeFn, err := openController(os.Stdout)
	if err != nil {
		return err
	}
	defer closeFn()

	scanner := newScanner()
	w := watch.New(ctrl.Directory(), scanner.Extensions(), ctrl, watch.Options{
		Settle: cfg.Watch.Settle.Duration(),
		Logger: logger,
	})

	fmt.Printf("Watching %s for new clips (Ctrl+C to stop)\n", ctrl.Directory())

	if err := w.Run(ctx); err != nil && !interrupted(ctx, err) {
		return err
	}
	return nil
}
