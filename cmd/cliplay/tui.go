package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliplay/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI browser",
	Long: `Launch the interactive terminal user interface for browsing clips.

Key bindings:
  j/k, ↑/↓    Navigate list
  h/l, ←/→    Previous/next page
  enter       Play the selected clip
  a           Play all clips
  L           Play the latest clip
  /           Filter clips by name
  r           Rescan the clip directory
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	// Notices would corrupt the alt screen; the model reports status itself
	ctrl, closeFn, err := openController(io.Discard)
	if err != nil {
		return err
	}
	defer closeFn()

	return tui.Run(tui.RunOptions{
		Context:    ctx,
		Controller: ctrl,
	})
}
