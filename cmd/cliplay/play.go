package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliplay/internal/adapter/input"
	"github.com/jmylchreest/cliplay/internal/player"
)

var playOpts struct {
	index int
}

var playCmd = &cobra.Command{
	Use:   "play [all|latest|NAME|-]",
	Short: "Play clips without the menu",
	Long: `Play clips from the clip directory and exit when playback finishes.

  all      play every clip in path order
  latest   play the most recently created clip
  NAME     play the named file from the clip directory
  -        play the clips selected on standard input, one per line,
           in any 'cliplay list' format

Examples:
  cliplay play latest
  cliplay play recording_0007.wav
  cliplay play --index 3

  # Pick clips with fuzzel
  cliplay list -f dmenu --age | fuzzel -d | cliplay play -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().IntVarP(&playOpts.index, "index", "i", 0,
		"Play the clip at this 1-based position in 'cliplay list'")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playOpts.index == 0 && len(args) == 0 {
		return fmt.Errorf("%w: specify all, latest, a file name or --index", player.ErrInvalidSelection)
	}

	ctx, cancel := signalContext()
	defer cancel()

	ctrl, closeFn, err := openController(os.Stdout)
	if err != nil {
		return err
	}
	defer closeFn()

	if playOpts.index != 0 {
		clips, err := ctrl.Discover()
		if err != nil {
			return err
		}
		err = ctrl.PlayIndex(ctx, clips, playOpts.index)
		if interrupted(ctx, err) {
			return nil
		}
		return err
	}

	switch target := args[0]; target {
	case "all":
		result, err := ctrl.PlayAll(ctx)
		if err == nil && result.Failed > 0 {
			err = fmt.Errorf("%w: %d of %d clips failed", player.ErrPlayback, result.Failed, result.Total)
		}
		if interrupted(ctx, err) {
			return nil
		}
		return err
	case "latest":
		err = ctrl.PlayLatest(ctx)
	case "-":
		err = playSelections(ctx, ctrl, input.NewStdinReader())
	default:
		err = ctrl.PlaySpecific(ctx, target)
	}

	if interrupted(ctx, err) {
		return nil
	}
	return err
}

// playSelections plays every clip picked on the reader, in input order.
// Selections that no longer resolve are reported and skipped.
func playSelections(ctx context.Context, ctrl *player.Controller, reader *input.SelectionReader) error {
	selections, err := reader.Read(ctx)
	if err != nil {
		return err
	}
	if len(selections) == 0 {
		return fmt.Errorf("%w: nothing selected on standard input", player.ErrInvalidSelection)
	}

	clips, err := ctrl.Discover()
	if err != nil {
		return err
	}

	failed := 0
	for _, sel := range selections {
		clip := input.Resolve(clips, sel)
		if clip == nil {
			fmt.Printf("File not found: %s\n", sel.Raw)
			failed++
			continue
		}
		if err := ctrl.PlayClip(ctx, *clip); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d selections failed", player.ErrPlayback, failed, len(selections))
	}
	return nil
}
