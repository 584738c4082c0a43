package pixfilter

import (
	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/internal/blend"
	"github.com/gogpu/pixfilter/surface"
)

// identityStrength is the strength value that leaves alpha unchanged.
const identityStrength = 0x100

// ExtractAlpha copies the alpha channel of s into a new Alpha8 surface
// holding one reference owned by the caller.
func ExtractAlpha(s *surface.Surface) *surface.Surface {
	w, h := s.Width(), s.Height()
	out := surface.Alloc(w, h, surface.FormatAlpha8)
	out.Render(func(t *surface.RenderTarget) {
		s.BlitChannel(t, geom.Size(w, h), 0, 0, surface.ChannelAlpha, surface.ChannelAlpha)
	})
	return out
}

// ApplyStrength remaps alpha through a(v) = min(255, v*strength>>8).
// strength is 8.8 fixed point; 0x100 is a no-op. Alpha8 surfaces are
// remapped in full, 32-bit surfaces only in their alpha byte. Negative
// results map to 0.
func ApplyStrength(s *surface.Surface, strength int) {
	if strength == identityStrength {
		return
	}
	var lut [256]byte
	for a := range lut {
		lut[a] = byte(clampInt((a*strength)>>8, 0, 255))
	}

	alphaOnly := s.Format() == surface.FormatAlpha8
	s.Render(func(t *surface.RenderTarget) {
		for y := range t.Height() {
			row := t.Row(y)
			if alphaOnly {
				for x, v := range row {
					row[x] = lut[v]
				}
				continue
			}
			for x := 3; x < len(row); x += 4 {
				row[x] = lut[row[x]]
			}
		}
	})
}

// HighlightZeroAlpha paints every fully transparent pixel of a 32-bit BGRA
// surface opaque green. It is a debugging aid for inspecting filter
// coverage.
func HighlightZeroAlpha(s *surface.Surface) {
	if !s.Format().IsBGRA() {
		return
	}
	s.Render(func(t *surface.RenderTarget) {
		for y := range t.Height() {
			row := t.Row(y)
			for x := 0; x < len(row); x += 4 {
				if row[x+3] == 0 {
					row[x], row[x+1], row[x+2], row[x+3] = 0x00, 0xff, 0x00, 0xff
				}
			}
		}
	})
}

// ShadowRect blends the color of every pixel of t inside r toward col, a
// 0xAARRGGBB shadow color. The blend weight is col's alpha scaled by the
// 8.8 fixed-point strength, capped at full weight. Alpha is not changed.
// t must be a straight BGRA target.
func ShadowRect(t *surface.RenderTarget, r geom.Rect, col uint32, strength int) {
	r = t.Rect.Intersect(r)
	if r.IsEmpty() {
		return
	}
	k := clampInt(blend.Alpha256(byte(col>>24))*strength>>8, 0, 256)
	cr, cg, cb := byte(col>>16), byte(col>>8), byte(col)
	for y := r.Y; y < r.Bottom(); y++ {
		row := t.Row(y)[(r.X-t.Rect.X)*4:]
		for i := 0; i < r.W*4; i += 4 {
			row[i+2] = blend.Lerp(row[i+2], cr, k)
			row[i+1] = blend.Lerp(row[i+1], cg, k)
			row[i+0] = blend.Lerp(row[i+0], cb, k)
		}
	}
}
