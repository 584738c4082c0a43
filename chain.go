package pixfilter

import (
	"fmt"

	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/surface"
)

// FilterBitmap runs bmp through every pass of filters and returns the
// result.
//
// srcRect is the rectangle bmp covers and destRect the rectangle of the
// returned surface, usually filters.FilteredObjectRect(srcRect). When pow2
// is set the final surface is padded up to power-of-two dimensions. When
// recycle is set bmp may be converted in place. src0 is the origin of
// valid data in bmp and is only used by the first pass.
//
// FilterBitmap takes over the caller's reference to bmp. With no filters,
// or when bmp is not 32-bit BGRA, bmp itself is returned untouched.
// Premultiplied input is filtered as straight alpha and converted back at
// the end.
func FilterBitmap(filters FilterList, bmp *surface.Surface, srcRect, destRect geom.Rect,
	pow2, recycle bool, src0 geom.Point) *surface.Surface {
	o := defaultOptions()
	o.pow2, o.recycle, o.src0 = pow2, recycle, src0
	out, err := filterBitmap(filters, bmp, srcRect, destRect, o)
	if err != nil {
		// Plain allocation cannot fail for BGRA, so err means bmp was
		// already released.
		panic(err)
	}
	return out
}

// Run is FilterBitmap configured with options. It returns an error when the
// allocator fails or bmp has been released; the reference to bmp is
// consumed either way.
func Run(filters FilterList, bmp *surface.Surface, srcRect, destRect geom.Rect, opts ...Option) (*surface.Surface, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return filterBitmap(filters, bmp, srcRect, destRect, o)
}

func filterBitmap(filters FilterList, bmp *surface.Surface, srcRect, destRect geom.Rect, o options) (*surface.Surface, error) {
	format := bmp.Format()
	if len(filters) == 0 || !format.IsBGRA() {
		return bmp, nil
	}

	if format != surface.FormatBGRA {
		if o.recycle {
			if err := bmp.ChangeInternalFormat(surface.FormatBGRA); err != nil {
				bmp.DecRef()
				return nil, fmt.Errorf("pixfilter: normalize input: %w", err)
			}
		} else {
			converted, err := convertCopy(bmp, surface.FormatBGRA, o.allocator)
			bmp.DecRef()
			if err != nil {
				return nil, fmt.Errorf("pixfilter: normalize input: %w", err)
			}
			bmp = converted
		}
	}

	log := Logger()
	last := len(filters) - 1
	src0 := o.src0
	for i, f := range filters {
		quality := f.Quality()
		for q := range quality {
			dest := srcRect
			clearDest := false
			if i == last && q == quality-1 {
				dest = destRect
				if o.pow2 {
					clearDest = true
					dest.W = geom.UpToPower2(dest.W)
					dest.H = geom.UpToPower2(dest.H)
				}
			} else {
				dest = f.FilteredObjectRect(dest, q)
			}

			filtered, err := o.allocator.Allocate(max(dest.W, 0), max(dest.H, 0), bmp.Format())
			if err != nil {
				bmp.DecRef()
				return nil, fmt.Errorf("pixfilter: allocate pass %d.%d %v: %w", i, q, dest, err)
			}
			if clearDest {
				filtered.Zero()
			}

			diff := dest.Origin().Sub(srcRect.Origin())
			log.Debug("pixfilter: pass",
				"filter", TypeOf(f), "index", i, "pass", q,
				"src", srcRect, "dest", dest, "diff", diff)

			f.Apply(bmp, filtered, src0, diff, q)
			src0 = geom.Point{}

			bmp.DecRef()
			bmp = filtered
			srcRect = dest
		}
	}

	if format == surface.FormatBGRAPremul {
		if err := bmp.ChangeInternalFormat(surface.FormatBGRAPremul); err != nil {
			bmp.DecRef()
			return nil, fmt.Errorf("pixfilter: restore format: %w", err)
		}
	}
	return bmp, nil
}

// convertCopy returns a copy of s in format f allocated with a.
func convertCopy(s *surface.Surface, f surface.Format, a surface.Allocator) (*surface.Surface, error) {
	w, h := s.Width(), s.Height()
	out, err := a.Allocate(w, h, f)
	if err != nil {
		return nil, err
	}
	var cerr error
	out.Render(func(t *surface.RenderTarget) {
		cerr = surface.Convert(w, h, s.Format(), s.Pix(), s.Stride(), f, t.Pix(), t.Stride)
	})
	if cerr != nil {
		out.DecRef()
		return nil, cerr
	}
	return out, nil
}
