package pixfilter

import (
	"math"

	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/surface"
)

// maxShadowDistance is the largest shadow offset in pixels.
const maxShadowDistance = 255

// ShadowParams describes a drop shadow.
type ShadowParams struct {
	// Quality is the number of blur passes over the shadow mask.
	Quality int

	// BlurX and BlurY are the blur spread, as for NewBlurFilter.
	BlurX, BlurY int

	// Angle is the direction of the offset in degrees, clockwise from +X
	// since Y grows downward.
	Angle float64

	// Distance is the length of the offset in pixels, clamped to [0, 255].
	Distance float64

	// Color is the shadow color as 0xRRGGBB. The high byte is ignored.
	Color uint32

	// Strength scales the shadow mask. 1 leaves it unchanged.
	Strength float64

	// Alpha is the shadow opacity in [0, 1].
	Alpha float64

	// HideObject draws the shadow without the object.
	HideObject bool

	// Knockout punches the object out of the shadow.
	Knockout bool

	// Inner draws the shadow inside the object's silhouette.
	Inner bool
}

// DropShadowFilter draws a blurred, offset silhouette of the object in a
// flat color, either behind the object or inside it.
//
// The mask blur runs all of its passes inside a single Apply, so the
// orchestrator sees a quality of 1.
type DropShadowFilter struct {
	blur BlurFilter

	tx, ty   int
	color    uint32
	strength int // 8.8 fixed point, [0, 0x10000]
	alpha    int // [0, 256]

	hideObject bool
	knockout   bool
	inner      bool
}

// NewDropShadowFilter creates a drop shadow filter from p.
func NewDropShadowFilter(p ShadowParams) *DropShadowFilter {
	theta := p.Angle * math.Pi / 180
	dist := math.Min(math.Max(p.Distance, 0), maxShadowDistance)

	return &DropShadowFilter{
		blur:       *NewBlurFilter(p.Quality, p.BlurX, p.BlurY),
		tx:         int(math.Cos(theta) * dist),
		ty:         int(math.Sin(theta) * dist),
		color:      p.Color & 0xffffff,
		strength:   clampInt(int(p.Strength*256), 0, 0x10000),
		alpha:      clampInt(int(p.Alpha*256), 0, 256),
		hideObject: p.HideObject,
		knockout:   p.Knockout,
		inner:      p.Inner,
	}
}

// Quality is always 1; see the type documentation.
func (f *DropShadowFilter) Quality() int { return 1 }

// Offset returns the shadow displacement in whole pixels.
func (f *DropShadowFilter) Offset() geom.Point { return geom.Pt(f.tx, f.ty) }

// Strength returns the 8.8 fixed-point mask scale.
func (f *DropShadowFilter) Strength() int { return f.strength }

// ExpandVisibleFilterDomain returns the source rectangle needed to draw r:
// the blurred area shifted against the shadow offset, plus r itself unless
// the object is knocked out.
func (f *DropShadowFilter) ExpandVisibleFilterDomain(r geom.Rect, _ int) geom.Rect {
	orig := r
	for q := range f.blur.quality {
		r = f.blur.ExpandVisibleFilterDomain(r, q)
	}
	r = r.Translate(-f.tx, -f.ty)
	if !f.knockout {
		r = r.Union(orig)
	}
	return r
}

// FilteredObjectRect returns the area covered by the shadow and, when it is
// drawn, the object. An inner shadow never grows the object.
func (f *DropShadowFilter) FilteredObjectRect(r geom.Rect, _ int) geom.Rect {
	if f.inner {
		return r
	}
	orig := r
	for q := range f.blur.quality {
		r = f.blur.FilteredObjectRect(r, q)
	}
	r = r.Translate(f.tx, f.ty)
	if !f.knockout && !f.hideObject {
		r = r.Union(orig)
	}
	return r
}

// Apply renders the shadow of src into dst, which is cleared first. Both
// surfaces must be straight BGRA; otherwise dst is left untouched.
func (f *DropShadowFilter) Apply(src, dst *surface.Surface, src0, diff geom.Point, _ int) {
	if src.Format() != surface.FormatBGRA || dst.Format() != surface.FormatBGRA {
		Logger().Warn("pixfilter: drop shadow: unsupported format pairing",
			"src", src.Format(), "dst", dst.Format())
		return
	}

	innerHide := f.inner && (f.knockout || f.hideObject)
	alpha := ExtractAlpha(src)
	var silhouette *surface.Surface
	if innerHide {
		silhouette = alpha.IncRef()
	}

	// Blur the mask, tracking how far its origin moves.
	var offset geom.Point
	from := src0
	for q := range f.blur.quality {
		r := f.blur.FilteredObjectRect(alpha.Bounds(), q)
		blurred := surface.Alloc(r.W, r.H, surface.FormatAlpha8)
		f.blur.apply(alpha, blurred, from, r.Origin(), q)
		from = geom.Point{}
		alpha.DecRef()
		alpha = blurred
		offset = offset.Add(r.Origin())
	}
	ApplyStrength(alpha, f.strength)

	blurPos := offset.Add(geom.Pt(f.tx, f.ty)).Sub(diff)
	object := geom.R(src0.X, src0.Y, src.Width(), src.Height())

	Logger().Debug("pixfilter: drop shadow",
		"mask", alpha.Bounds(), "at", blurPos, "inner", f.inner)

	dst.Render(func(t *surface.RenderTarget) {
		dst.Zero()
		if f.inner {
			f.drawInner(t, src, silhouette, alpha, object, diff, offset, blurPos, innerHide)
		} else {
			f.drawOuter(t, src, alpha, object, diff, blurPos)
		}
	})

	alpha.DecRef()
	if silhouette != nil {
		silhouette.DecRef()
	}
}

func (f *DropShadowFilter) drawInner(t *surface.RenderTarget, src, silhouette, mask *surface.Surface,
	object geom.Rect, diff, offset, blurPos geom.Point, hide bool) {
	col := f.color | uint32(f.tintAlpha())<<24

	if hide {
		silhouette.BlitTo(t, object, -diff.X, -diff.Y, surface.BlendTinted, col)
		mask.BlitTo(t, mask.Bounds(), blurPos.X, blurPos.Y, surface.BlendErase, col)
		return
	}
	src.BlitTo(t, object, -diff.X, -diff.Y, surface.BlendCopy, 0xffffff)
	mask.BlitTo(t, mask.Bounds(), blurPos.X, blurPos.Y, surface.BlendTintedInner, col)

	// Where the shifted mask does not reach, the object is fully in shadow.
	const all = 999999
	mw, mh := mask.Width(), mask.Height()
	if blurPos.X > offset.X {
		ShadowRect(t, geom.R(offset.X, blurPos.Y, blurPos.X-offset.X, mh), col, f.strength)
	}
	if blurPos.Y > offset.Y {
		ShadowRect(t, geom.R(offset.X, offset.Y, all, blurPos.Y-offset.Y), col, f.strength)
	}
	if blurPos.X+mw < t.Width() {
		ShadowRect(t, geom.R(blurPos.X+mw, blurPos.Y, all, mh), col, f.strength)
	}
	if blurPos.Y+mh < t.Height() {
		ShadowRect(t, geom.R(offset.X, blurPos.Y+mh, all, all), col, f.strength)
	}
}

// tintAlpha is the shadow alpha as a byte for the inner tint. Values
// above half are lowered by one so 256 fits.
func (f *DropShadowFilter) tintAlpha() int {
	a := f.alpha
	if a > 127 {
		a--
	}
	return a
}

func (f *DropShadowFilter) drawOuter(t *surface.RenderTarget, src, mask *surface.Surface,
	object geom.Rect, diff, blurPos geom.Point) {
	area := mask.Bounds().Translate(blurPos.X, blurPos.Y).Intersect(t.Rect)
	cr, cg, cb := byte(f.color>>16), byte(f.color>>8), byte(f.color)
	for y := area.Y; y < area.Bottom() && area.W > 0; y++ {
		d := t.Row(y)[area.X*4:]
		m := mask.Row(y - blurPos.Y)[area.X-blurPos.X:]
		for x := range area.W {
			i := x * 4
			d[i+0], d[i+1], d[i+2] = cb, cg, cr
			d[i+3] = byte(int(m[x]) * f.alpha >> 8)
		}
	}

	switch {
	case f.knockout:
		src.BlitTo(t, object, -diff.X, -diff.Y, surface.BlendErase, 0xffffff)
	case !f.hideObject:
		src.BlitTo(t, object, -diff.X, -diff.Y, surface.BlendNormal, 0xffffff)
	}
}
