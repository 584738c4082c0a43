package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixfilter"
)

func newRootCmd() *cobra.Command {
	var verbose, debug bool

	cmd := &cobra.Command{
		Use:   "pixfilter",
		Short: "Apply bitmap filters to images",
		Long: `pixfilter runs images through chains of box blur, color matrix and
drop shadow filters. Chains are given with flags or as a YAML chain file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), verbose, debug)
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every filter pass")

	cmd.AddCommand(
		newApplyCmd(),
		newBatchCmd(),
		newBoundsCmd(),
		newFormatsCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setupLogging routes the library logger to w. Warnings are always shown.
func setupLogging(w io.Writer, verbose, debug bool) {
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	}
	pixfilter.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
