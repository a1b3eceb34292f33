package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/five82/tailview/internal/app"
	"github.com/five82/tailview/internal/config"
	"github.com/five82/tailview/internal/highlight"
	"github.com/five82/tailview/internal/version"
)

// runFunc starts tailview with the parsed options.
type runFunc func(ctx context.Context, opts app.Options) error

func newRootCmd(run runFunc) *cobra.Command {
	var (
		opts     app.Options
		keywords string
		interval string
	)

	cmd := &cobra.Command{
		Use:   "tailview [file]",
		Short: "Follow a growing log file and highlight keywords",
		Long: `tailview shows the last lines of a log file and keeps them current as the
file grows, is truncated or rotated. Keywords are highlighted case-insensitively.

With a terminal on stdout an interactive viewer starts; otherwise, or with
--cli, new content is streamed to stdout.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Path = args[0]
			}
			if cmd.Flags().Changed("keywords") {
				opts.Keywords = highlight.ParseKeywords(keywords)
				if opts.Keywords == nil {
					opts.Keywords = []string{}
				}
			}
			if cmd.Flags().Changed("interval") {
				d, err := config.ParseInterval(interval)
				if err != nil {
					return err
				}
				opts.Interval = d
			}
			if cmd.Flags().Changed("lines") && opts.MaxLines <= 0 {
				return config.ErrInvalidMaxLines
			}
			return run(cmd.Context(), opts)
		},
	}
	cmd.SetVersionTemplate("tailview {{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolVar(&opts.CLI, "cli", false, "Stream new lines to stdout instead of the viewer")
	flags.IntVarP(&opts.MaxLines, "lines", "n", 0, "Number of lines to keep (default from config, 1000)")
	flags.StringVarP(&keywords, "keywords", "k", "", "Comma-separated keywords to highlight (empty disables)")
	flags.StringVar(&interval, "interval", "", "Poll interval, e.g. 500ms or 2s (default from config, 1s)")
	flags.StringVar(&opts.Encoding, "encoding", "", "File encoding, e.g. utf-8, utf-16le, iso-8859-1")
	flags.BoolVar(&opts.Watch, "watch", false, "Also poll on filesystem notifications")
	flags.StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.config/tailview/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "Prefs file (default ~/.config/tailview/prefs.toml)")
	flags.StringVar(&opts.Theme, "theme", "", "Viewer theme: Nightfox, Kanagawa or Slate")

	return cmd
}
