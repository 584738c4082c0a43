package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixfilter"
	"github.com/gogpu/pixfilter/internal/chainfile"
	"github.com/gogpu/pixfilter/surface"
)

// chainFlags are the flags that select a filter chain.
type chainFlags struct {
	file      string
	blur      int
	quality   int
	preset    string
	amount    float64
	allocator string
	pow2      bool
}

func (c *chainFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&c.file, "chain", "c", "", "YAML chain file")
	f.IntVar(&c.blur, "blur", 0, "append a box blur of this size in both directions")
	f.IntVar(&c.quality, "quality", 1, "passes for --blur")
	f.StringVar(&c.preset, "preset", "", "append a color matrix preset")
	f.Float64Var(&c.amount, "amount", 1, "amount for --preset brightness, contrast, saturation, opacity and hue_rotate")
	f.StringVar(&c.allocator, "allocator", "", "surface allocator (see 'pixfilter formats')")
	f.BoolVar(&c.pow2, "pow2", false, "pad the result to power-of-two dimensions")
}

// build returns the filters and Run options the flags describe. The chain
// file comes first, then --blur, then --preset.
func (c *chainFlags) build() (pixfilter.FilterList, []pixfilter.Option, error) {
	file := &chainfile.File{Version: chainfile.CurrentVersion}
	if c.file != "" {
		var err error
		if file, err = chainfile.Load(c.file); err != nil {
			return nil, nil, err
		}
	}
	if c.blur > 0 {
		file.Filters = append(file.Filters, chainfile.Filter{
			Type:    chainfile.TypeBlur,
			Quality: c.quality,
			BlurX:   c.blur,
			BlurY:   c.blur,
		})
	}
	if c.preset != "" {
		file.Filters = append(file.Filters, chainfile.Filter{
			Type:   chainfile.TypeColorMatrix,
			Preset: c.preset,
			Amount: c.amount,
		})
	}
	if c.allocator != "" {
		file.Allocator = c.allocator
	}
	file.Pow2 = file.Pow2 || c.pow2

	list, err := file.Build()
	if err != nil {
		return nil, nil, err
	}
	if len(list) == 0 {
		return nil, nil, fmt.Errorf("no filters given; use --chain, --blur or --preset")
	}
	opts, err := file.Options()
	if err != nil {
		return nil, nil, err
	}
	return list, opts, nil
}

// describe returns a one-line summary of list.
func describe(list pixfilter.FilterList) string {
	s := ""
	for i, f := range list {
		if i > 0 {
			s += " -> "
		}
		s += fmt.Sprintf("%v", pixfilter.TypeOf(f))
		if q := f.Quality(); q != 1 {
			s += fmt.Sprintf("x%d", q)
		}
	}
	return s
}

// inputFormat is the surface format images are loaded into.
func inputFormat(premultiplied bool) surface.Format {
	if premultiplied {
		return surface.FormatBGRAPremul
	}
	return surface.FormatBGRA
}
