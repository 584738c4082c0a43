// Command pixfilter applies bitmap filter chains to image files.
//
// Usage:
//
//	pixfilter apply --blur 5 --preset sepia in.png out.png
//	pixfilter apply --chain shadow.yaml in.png out.png
//	pixfilter batch --chain chain.yaml out/ a.png b.jpg
//	pixfilter bounds --chain chain.yaml --rect 0,0,64,64
//	pixfilter formats
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "pixfilter:", err)
		os.Exit(exitCode(err))
	}
}
