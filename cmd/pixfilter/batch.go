package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pixfilter"
	"github.com/gogpu/pixfilter/internal/parallel"
)

type batchOptions struct {
	chain         chainFlags
	workers       int
	ext           string
	premultiplied bool
}

func newBatchCmd() *cobra.Command {
	var o batchOptions
	cmd := &cobra.Command{
		Use:   "batch [output-dir] [input...]",
		Short: "Filter many images concurrently",
		Long: `Filter every input with the same chain. Each result is written to the
output directory under the input's base name.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], args[1:], &o)
		},
	}
	o.chain.register(cmd)
	f := cmd.Flags()
	f.IntVarP(&o.workers, "workers", "j", 0, "number of workers (0 = GOMAXPROCS)")
	f.StringVar(&o.ext, "ext", ".png", "output file extension")
	f.BoolVar(&o.premultiplied, "premultiplied", false, "load inputs as premultiplied BGRA")
	return cmd
}

func runBatch(cmd *cobra.Command, outDir string, inputs []string, o *batchOptions) error {
	list, opts, err := o.chain.build()
	if err != nil {
		return newExitCodeError(err, ExitCodeInvalidChain)
	}
	ext := o.ext
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if _, ok := encoders[strings.ToLower(ext)]; !ok {
		return newExitCodeError(fmt.Errorf("unsupported output format %q", ext), ExitCodeInvalidArguments)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return newExitCodeError(err, ExitCodeInvalidOutput)
	}

	jobs := make([]parallel.Job, 0, len(inputs))
	for _, in := range inputs {
		bmp, err := loadSurface(in, inputFormat(o.premultiplied))
		if err != nil {
			for _, j := range jobs {
				j.Input.DecRef()
			}
			return err
		}
		src := bmp.Bounds()
		jobs = append(jobs, parallel.Job{
			Filters: list,
			Input:   bmp,
			Src:     src,
			Dest:    list.FilteredObjectRect(src),
			Options: opts,
		})
	}

	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()
	pixfilter.Logger().Info("batch", "inputs", len(inputs), "workers", pool.Workers(), "chain", describe(list))
	results := pool.Run(cmd.Context(), jobs)

	p := message.NewPrinter(language.English)
	var firstErr error
	pixels := 0
	for i, r := range results {
		if r.Err != nil {
			firstErr = firstError(firstErr, newExitCodeError(fmt.Errorf("%s: %w", inputs[i], r.Err), ExitCodeFilterError))
			continue
		}
		out := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(inputs[i]), filepath.Ext(inputs[i]))+ext)
		err := saveSurface(out, r.Output)
		pixels += r.Output.Width() * r.Output.Height()
		r.Output.DecRef()
		if err != nil {
			firstErr = firstError(firstErr, err)
			continue
		}
		p.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", inputs[i], out)
	}
	if firstErr != nil {
		return firstErr
	}
	p.Fprintf(cmd.OutOrStdout(), "%d images, %d pixels\n", len(inputs), pixels)
	return nil
}

// firstError returns a unless it is nil.
func firstError(a, b error) error {
	if a != nil {
		return a
	}
	return b
}
