package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pixfilter/geom"
)

func newBoundsCmd() *cobra.Command {
	var (
		chain chainFlags
		rect  string
	)
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Show the rectangles a chain reads and produces",
		Long: `Show, for an object rectangle, the source region a chain must read to
render it and the rectangle of the filtered result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRect(rect)
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidArguments)
			}
			list, _, err := chain.build()
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidChain)
			}

			visible := list.ExpandVisibleFilterDomain(r)
			filtered := list.FilteredObjectRect(r)

			p := message.NewPrinter(language.English)
			w := cmd.OutOrStdout()
			p.Fprintf(w, "chain    %s (%d passes)\n", describe(list), list.Passes())
			p.Fprintf(w, "object   %v %d pixels\n", r, r.Area())
			p.Fprintf(w, "visible  %v %d pixels\n", visible, visible.Area())
			p.Fprintf(w, "filtered %v %d pixels\n", filtered, filtered.Area())
			return nil
		},
	}
	chain.register(cmd)
	cmd.Flags().StringVar(&rect, "rect", "0,0,100,100", "object rectangle as x,y,w,h")
	return cmd
}

// parseRect parses "x,y,w,h" or "w,h".
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	v := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geom.Rect{}, fmt.Errorf("invalid rectangle %q: %w", s, err)
		}
		v[i] = n
	}
	switch len(v) {
	case 2:
		if v[0] < 0 || v[1] < 0 {
			break
		}
		return geom.Size(v[0], v[1]), nil
	case 4:
		if v[2] < 0 || v[3] < 0 {
			break
		}
		return geom.R(v[0], v[1], v[2], v[3]), nil
	}
	return geom.Rect{}, fmt.Errorf("invalid rectangle %q: want x,y,w,h or w,h with non-negative size", s)
}
