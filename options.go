package pixfilter

import (
	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/surface"
)

// Option configures a Run call.
//
// Example:
//
//	// Defaults: fresh buffers, no padding, input left untouched.
//	out, err := pixfilter.Run(filters, bmp, src, dst)
//
//	// Recycle intermediate buffers and pad to powers of two.
//	pooled, _ := surface.Lookup("pooled")
//	out, err := pixfilter.Run(filters, bmp, src, dst,
//	    pixfilter.WithAllocator(pooled), pixfilter.WithPow2(true))
type Option func(*options)

// options holds the configuration of one Run call.
type options struct {
	allocator surface.Allocator
	pow2      bool
	recycle   bool
	src0      geom.Point
}

// defaultOptions returns the default Run options.
func defaultOptions() options {
	return options{
		allocator: surface.Simple,
	}
}

// WithAllocator sets the allocator for intermediate and final surfaces.
// A nil allocator keeps the default.
func WithAllocator(a surface.Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.allocator = a
		}
	}
}

// WithPow2 pads the final surface up to power-of-two dimensions. The
// padding is zeroed.
func WithPow2(pow2 bool) Option {
	return func(o *options) {
		o.pow2 = pow2
	}
}

// WithRecycle allows the input surface to be converted in place instead of
// copied when its format has to change.
func WithRecycle(recycle bool) Option {
	return func(o *options) {
		o.recycle = recycle
	}
}

// WithSourceOrigin sets the origin of valid data in the input surface. It
// only affects the first pass.
func WithSourceOrigin(p geom.Point) Option {
	return func(o *options) {
		o.src0 = p
	}
}
