package pixfilter

import (
	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/internal/blend"
	"github.com/gogpu/pixfilter/surface"
)

// maxBlur is the largest number of extra pixels a blur window may span.
const maxBlur = 256

// BlurFilter is a separable box blur. Repeating it over several quality
// passes approximates a Gaussian.
//
// BlurX and BlurY count the pixels blended in besides the center one, so a
// blur of 0 leaves the image unchanged and the sliding window holds
// BlurX+1 samples horizontally.
//
// On odd passes the window leans the other way. Alternating keeps repeated
// passes centered on the object instead of drifting it by half a pixel
// each time.
type BlurFilter struct {
	quality int
	blurX   int
	blurY   int
}

// NewBlurFilter creates a blur filter. blurX and blurY are the requested
// total spread: a value of n yields n-1 extra pixels, clamped to [0, 256].
func NewBlurFilter(quality, blurX, blurY int) *BlurFilter {
	return &BlurFilter{
		quality: max(quality, 0),
		blurX:   clampInt(blurX-1, 0, maxBlur),
		blurY:   clampInt(blurY-1, 0, maxBlur),
	}
}

// Quality returns the number of passes.
func (f *BlurFilter) Quality() int { return f.quality }

// BlurX returns the number of extra pixels blended horizontally.
func (f *BlurFilter) BlurX() int { return f.blurX }

// BlurY returns the number of extra pixels blended vertically.
func (f *BlurFilter) BlurY() int { return f.blurY }

// ExpandVisibleFilterDomain grows r by the window size. Source pixels are
// taken from the right first, so the floor half goes on the left on even
// passes.
func (f *BlurFilter) ExpandVisibleFilterDomain(r geom.Rect, pass int) geom.Rect {
	x0, y0 := f.blurX/2, f.blurY/2
	if pass&1 != 0 {
		x0, y0 = f.blurX-x0, f.blurY-y0
	}
	return geom.R(r.X-x0, r.Y-y0, r.W+f.blurX, r.H+f.blurY)
}

// FilteredObjectRect grows r by the window size. Destination pixels reach
// further left, so the ceiling half goes on the left on even passes.
func (f *BlurFilter) FilteredObjectRect(r geom.Rect, pass int) geom.Rect {
	x0, y0 := f.leftExtra(pass)
	return geom.R(r.X-x0, r.Y-y0, r.W+f.blurX, r.H+f.blurY)
}

// leftExtra returns how many pixels a pass adds to the left and top of the
// object. It is also the window offset used by Apply.
func (f *BlurFilter) leftExtra(pass int) (x, y int) {
	x, y = f.blurX/2, f.blurY/2
	if pass&1 == 0 {
		x, y = f.blurX-x, f.blurY-y
	}
	return x, y
}

// Apply blurs src into dst. Only BGRA→BGRA and BGRAPremul→BGRAPremul are
// supported; any other pairing leaves dst untouched.
func (f *BlurFilter) Apply(src, dst *surface.Surface, src0, diff geom.Point, pass int) {
	sf, df := src.Format(), dst.Format()
	if sf != df || (sf != surface.FormatBGRA && sf != surface.FormatBGRAPremul) {
		Logger().Warn("pixfilter: blur: unsupported format pairing",
			"src", sf, "dst", df)
		return
	}
	f.apply(src, dst, src0, diff, pass)
}

// apply runs the row pass into a temporary surface and the column pass
// into dst. Formats are assumed to match.
func (f *BlurFilter) apply(src, dst *surface.Surface, src0, diff geom.Point, pass int) {
	w, h := dst.Width(), dst.Height()
	sw, sh := src.Width(), src.Height()
	bw := min(sw+f.blurX, w)
	bh := min(sh+f.blurY, h)

	format := dst.Format()
	bpp := format.BytesPerPixel()
	run := blurLine4
	if format == surface.FormatAlpha8 {
		run = blurLine1
	}
	premul := format.IsPremultiplied()
	ox, oy := f.leftExtra(pass)

	tmp := surface.Alloc(bw, sh, format)
	defer tmp.DecRef()

	sx0 := src0.X + diff.X
	tmp.Render(func(t *surface.RenderTarget) {
		for y := range sh {
			run(
				lineOf(src.Pix(), y*src.Stride(), bpp), sw,
				lineOf(t.Pix(), y*t.Stride, bpp), bw,
				sx0-ox, f.blurX+1, premul,
			)
		}
	})

	sy0 := src0.Y + diff.Y
	dst.Render(func(t *surface.RenderTarget) {
		for x := range bw {
			run(
				lineOf(tmp.Pix(), x*bpp, tmp.Stride()), sh,
				lineOf(t.Pix(), x*bpp, t.Stride), bh,
				sy0-oy, f.blurY+1, premul,
			)
		}
	})
}

// line addresses evenly spaced pixels of a buffer: a row when step is the
// pixel size, a column when step is the stride.
type line struct {
	buf  []byte
	off  int
	step int
}

func lineOf(buf []byte, off, step int) line {
	return line{buf: buf, off: off, step: step}
}

func (l line) at(i int) int { return l.off + i*l.step }

// blurLine4 box-filters n source pixels into dn destination pixels.
// Destination pixel d averages source pixels [start+d, start+d+size)
// clipped to [0, n). Once the window has left the source the rest of the
// line is cleared.
func blurLine4(src line, n int, dst line, dn int, start, size int, premul bool) {
	var sr, sg, sb, sa int
	// straight pixels are accumulated premultiplied
	acc := func(i, sign int) {
		p := src.buf[src.at(i):]
		a := p[3]
		sa += sign * int(a)
		if premul {
			sr += sign * int(p[2])
			sg += sign * int(p[1])
			sb += sign * int(p[0])
			return
		}
		sr += sign * int(blend.Premultiply(p[2], a))
		sg += sign * int(blend.Premultiply(p[1], a))
		sb += sign * int(blend.Premultiply(p[0], a))
	}

	prev, lead := start, start+size
	for i := max(start, 0); i < min(lead, n); i++ {
		acc(i, 1)
	}
	for d := range dn {
		if prev >= n {
			for ; d < dn; d++ {
				q := dst.buf[dst.at(d):]
				q[0], q[1], q[2], q[3] = 0, 0, 0, 0
			}
			return
		}

		q := dst.buf[dst.at(d):]
		switch {
		case sa == 0:
			q[0], q[1], q[2], q[3] = 0, 0, 0, 0
		case premul:
			q[0] = byte(sb / size)
			q[1] = byte(sg / size)
			q[2] = byte(sr / size)
			q[3] = byte(sa / size)
		default:
			q[0] = byte(sb * 255 / sa)
			q[1] = byte(sg * 255 / sa)
			q[2] = byte(sr * 255 / sa)
			q[3] = byte(sa / size)
		}

		if lead >= 0 && lead < n {
			acc(lead, 1)
		}
		if prev >= 0 {
			acc(prev, -1)
		}
		lead++
		prev++
	}
}

// blurLine1 is blurLine4 for single-channel samples.
func blurLine1(src line, n int, dst line, dn int, start, size int, _ bool) {
	sa := 0
	prev, lead := start, start+size
	for i := max(start, 0); i < min(lead, n); i++ {
		sa += int(src.buf[src.at(i)])
	}
	for d := range dn {
		if prev >= n {
			for ; d < dn; d++ {
				dst.buf[dst.at(d)] = 0
			}
			return
		}
		dst.buf[dst.at(d)] = byte(sa / size)

		if lead >= 0 && lead < n {
			sa += int(src.buf[src.at(lead)])
		}
		if prev >= 0 {
			sa -= int(src.buf[src.at(prev)])
		}
		lead++
		prev++
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
