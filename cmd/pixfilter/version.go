package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixfilter/internal/chainfile"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "v0.1.0-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pixfilter %s (chain format %s, %s %s/%s)\n",
				version, chainfile.CurrentVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
