package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixfilter/internal/chainfile"
	"github.com/gogpu/pixfilter/surface"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List pixel formats, allocators, presets and image codecs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Pixel formats:")
			for _, f := range surface.Formats() {
				info := f.Info()
				var notes []string
				if f.IsBGRA() {
					notes = append(notes, "filterable")
				}
				if info.IsPremultiplied {
					notes = append(notes, "premultiplied")
				}
				if !info.HasAlpha {
					notes = append(notes, "opaque")
				}
				fmt.Fprintf(w, "  %-11s %d bpp  %s\n", f, info.BytesPerPixel, strings.Join(notes, ", "))
			}
			fmt.Fprintf(w, "Allocators:     %s\n", strings.Join(surface.List(), ", "))
			fmt.Fprintf(w, "Presets:        %s\n", strings.Join(chainfile.Presets(), ", "))
			fmt.Fprintf(w, "Image input:    %s\n", strings.Join(decodeFormats(), ", "))
			fmt.Fprintf(w, "Image output:   %s\n", strings.Join(encodeExtensions(), ", "))
		},
	}
}
