package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliplay/internal/adapter/output"
	"github.com/jmylchreest/cliplay/internal/config"
	"github.com/jmylchreest/cliplay/internal/core"
	"github.com/jmylchreest/cliplay/internal/library"
)

var listOpts struct {
	format   string
	search   string
	since    string
	ext      string
	limit    int
	age      bool
	template string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the clips in the clip directory",
	Long: `List the recognised audio clips in the clip directory, sorted by path.

Without filters, the numbers match the ones accepted by
'cliplay play --index'.

Examples:
  # Numbered listing
  cliplay list

  # Include how long ago each clip was recorded
  cliplay list --age

  # Clips recorded in the last hour
  cliplay list --since 1h

  # Output as JSON
  cliplay list --format json

  # Pick a clip with fuzzel and play it
  cliplay play "$(cliplay list -f dmenu | fuzzel -d | cut -d'|' -f2 | xargs)"`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "",
		"Output format (plain, dmenu, json, yaml; default from config)")
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Only show clips whose name contains this text")
	listCmd.Flags().StringVar(&listOpts.since, "since", "",
		"Only show clips created within this duration (e.g., 1h, 7d, 1w)")
	listCmd.Flags().StringVar(&listOpts.ext, "ext", "",
		"Only show clips with this extension (e.g., wav)")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
		"Maximum number of clips to show (0=unlimited)")
	listCmd.Flags().BoolVar(&listOpts.age, "age", false,
		"Show how long ago each clip was created")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for plain/dmenu output")
}

func runList(cmd *cobra.Command, args []string) error {
	if listOpts.format != "" && !slices.Contains(config.ValidFormats(), strings.ToLower(listOpts.format)) {
		return fmt.Errorf("unknown format %q (valid: %s)", listOpts.format, strings.Join(config.ValidFormats(), ", "))
	}

	dir := cfg.ClipDirectory()

	clips, err := newScanner().Discover(dir, library.WithCreationTime())
	if err != nil {
		return err
	}
	core.SortByPath(clips)

	if listOpts.search != "" {
		clips = core.Search(clips, listOpts.search)
	}

	since, err := core.ParseDuration(listOpts.since)
	if err != nil {
		return err
	}

	clips = core.Filter(clips, core.FilterOptions{
		Since:     since,
		Extension: listOpts.ext,
		Limit:     listOpts.limit,
	})

	format := output.FormatType(strings.ToLower(cfg.Output.Format))
	if listOpts.format != "" {
		format = output.FormatType(strings.ToLower(listOpts.format))
	}

	if len(clips) == 0 && (format == output.FormatPlain || format == output.FormatDmenu) {
		logger.Debug("no clips to output", "directory", dir)
		fmt.Fprintf(os.Stderr, "No audio files found in %s\n", dir)
		return nil
	}

	opts := output.DefaultFormatterOptions()
	opts.ShowAge = listOpts.age
	opts.Template = listOpts.template

	return output.NewFormatter(format, opts).Format(os.Stdout, clips)
}
