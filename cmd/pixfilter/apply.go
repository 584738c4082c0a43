package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pixfilter"
	"github.com/gogpu/pixfilter/surface"
)

type applyOptions struct {
	chain         chainFlags
	scale         float64
	premultiplied bool
	highlight     bool
}

func newApplyCmd() *cobra.Command {
	var o applyOptions
	cmd := &cobra.Command{
		Use:   "apply [input] [output]",
		Short: "Filter one image",
		Long: `Filter one image. The output grows by whatever the chain adds around the
object, so a blur or an offset shadow makes the image larger.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], args[1], &o)
		},
	}
	o.chain.register(cmd)
	f := cmd.Flags()
	f.Float64Var(&o.scale, "scale", 1, "resample the input by this factor before filtering")
	f.BoolVar(&o.premultiplied, "premultiplied", false, "load the input as premultiplied BGRA")
	f.BoolVar(&o.highlight, "highlight-transparent", false, "paint fully transparent result pixels green")
	return cmd
}

func runApply(cmd *cobra.Command, in, out string, o *applyOptions) error {
	list, opts, err := o.chain.build()
	if err != nil {
		return newExitCodeError(err, ExitCodeInvalidChain)
	}
	if o.scale <= 0 || math.IsNaN(o.scale) || math.IsInf(o.scale, 0) {
		return newExitCodeError(fmt.Errorf("invalid --scale %v", o.scale), ExitCodeInvalidArguments)
	}

	bmp, err := loadSurface(in, inputFormat(o.premultiplied))
	if err != nil {
		return err
	}
	inW, inH := bmp.Width(), bmp.Height()

	if o.scale != 1 {
		w := max(int(math.Round(float64(inW)*o.scale)), 1)
		h := max(int(math.Round(float64(inH)*o.scale)), 1)
		scaled, err := surface.Scale(bmp, w, h)
		bmp.DecRef()
		if err != nil {
			return newExitCodeError(fmt.Errorf("could not scale %s: %w", in, err), ExitCodeFilterError)
		}
		bmp = scaled
	}

	src := bmp.Bounds()
	dest := list.FilteredObjectRect(src)
	pixfilter.Logger().Info("apply", "input", in, "chain", describe(list), "src", src, "dest", dest)

	res, err := pixfilter.Run(list, bmp, src, dest, opts...)
	if err != nil {
		return newExitCodeError(err, ExitCodeFilterError)
	}
	defer res.DecRef()

	if o.highlight {
		if err := res.ChangeInternalFormat(surface.FormatBGRA); err != nil {
			return newExitCodeError(err, ExitCodeFilterError)
		}
		pixfilter.HighlightZeroAlpha(res)
	}
	if err := saveSurface(out, res); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(cmd.OutOrStdout(), "%s: %d×%d -> %s: %d×%d, %d pixels, %d passes\n",
		in, inW, inH, out, res.Width(), res.Height(), res.Width()*res.Height(), list.Passes())
	return nil
}
