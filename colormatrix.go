package pixfilter

import (
	"math"

	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/surface"
)

// ColorMatrix is a 4x5 color transformation in row-major order:
//
//	[R']   [m00 m01 m02 m03 m04]   [R]
//	[G'] = [m10 m11 m12 m13 m14] * [G]
//	[B']   [m20 m21 m22 m23 m24]   [B]
//	[A']   [m30 m31 m32 m33 m34]   [A]
//	                               [1]
//
// Channels are straight-alpha values in [0, 255]; the fifth column is a
// bias in the same units.
type ColorMatrix [20]float32

// IdentityMatrix leaves every pixel unchanged.
var IdentityMatrix = ColorMatrix{
	1, 0, 0, 0, 0, // R
	0, 1, 0, 0, 0, // G
	0, 0, 1, 0, 0, // B
	0, 0, 0, 1, 0, // A
}

// Multiply returns the matrix that applies m first, then n.
func (m ColorMatrix) Multiply(n ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += n[row*5+k] * m[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = n[row*5+0]*m[4] + n[row*5+1]*m[9] +
			n[row*5+2]*m[14] + n[row*5+3]*m[19] + n[row*5+4]
	}
	return r
}

// ColorMatrixFilter applies a ColorMatrix to every pixel. It never changes
// the size of the bitmap and always runs a single pass.
type ColorMatrixFilter struct {
	matrix ColorMatrix
}

// NewColorMatrixFilter creates a color matrix filter with the given matrix.
func NewColorMatrixFilter(m ColorMatrix) *ColorMatrixFilter {
	return &ColorMatrixFilter{matrix: m}
}

// NewIdentityColorMatrix creates a color matrix filter that passes through unchanged.
func NewIdentityColorMatrix() *ColorMatrixFilter {
	return NewColorMatrixFilter(IdentityMatrix)
}

// NewBrightnessFilter creates a filter that adjusts brightness.
// factor: 0.0 = black, 1.0 = unchanged, 2.0 = twice as bright
func NewBrightnessFilter(factor float32) *ColorMatrixFilter {
	return NewColorMatrixFilter(ColorMatrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	})
}

// NewContrastFilter creates a filter that adjusts contrast around mid gray.
// factor: 0.0 = gray, 1.0 = unchanged, 2.0 = high contrast
func NewContrastFilter(factor float32) *ColorMatrixFilter {
	offset := 128 * (1 - factor)
	return NewColorMatrixFilter(ColorMatrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	})
}

// NewSaturationFilter creates a filter that adjusts color saturation.
// factor: 0.0 = grayscale, 1.0 = unchanged, 2.0 = oversaturated
func NewSaturationFilter(factor float32) *ColorMatrixFilter {
	// Rec. 709 luminance weights
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor
	return NewColorMatrixFilter(ColorMatrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	})
}

// NewGrayscaleFilter creates a filter that converts to grayscale.
func NewGrayscaleFilter() *ColorMatrixFilter {
	return NewSaturationFilter(0)
}

// NewSepiaFilter creates a filter that applies a sepia tone.
func NewSepiaFilter() *ColorMatrixFilter {
	return NewColorMatrixFilter(ColorMatrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	})
}

// NewInvertFilter creates a filter that inverts colors and keeps alpha.
func NewInvertFilter() *ColorMatrixFilter {
	return NewColorMatrixFilter(ColorMatrix{
		-1, 0, 0, 0, 255,
		0, -1, 0, 0, 255,
		0, 0, -1, 0, 255,
		0, 0, 0, 1, 0,
	})
}

// NewHueRotateFilter creates a filter that rotates hue by degrees.
func NewHueRotateFilter(degrees float64) *ColorMatrixFilter {
	rad := degrees * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)
	return NewColorMatrixFilter(ColorMatrix{
		lumR + cos*(1-lumR) + sin*(-lumR), lumG + cos*(-lumG) + sin*(-lumG), lumB + cos*(-lumB) + sin*(1-lumB), 0, 0,
		lumR + cos*(-lumR) + sin*(0.143), lumG + cos*(1-lumG) + sin*(0.140), lumB + cos*(-lumB) + sin*(-0.283), 0, 0,
		lumR + cos*(-lumR) + sin*(-(1 - lumR)), lumG + cos*(-lumG) + sin*(lumG), lumB + cos*(1-lumB) + sin*(lumB), 0, 0,
		0, 0, 0, 1, 0,
	})
}

// NewOpacityFilter creates a filter that multiplies alpha by factor.
// factor: 0.0 = fully transparent, 1.0 = unchanged
func NewOpacityFilter(factor float32) *ColorMatrixFilter {
	return NewColorMatrixFilter(ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, factor, 0,
	})
}

// Matrix returns a copy of the filter's matrix.
func (f *ColorMatrixFilter) Matrix() ColorMatrix { return f.matrix }

// Multiply returns a filter applying f first, then other.
func (f *ColorMatrixFilter) Multiply(other *ColorMatrixFilter) *ColorMatrixFilter {
	return NewColorMatrixFilter(f.matrix.Multiply(other.matrix))
}

// Quality is always 1.
func (f *ColorMatrixFilter) Quality() int { return 1 }

// ExpandVisibleFilterDomain returns r unchanged.
func (f *ColorMatrixFilter) ExpandVisibleFilterDomain(r geom.Rect, _ int) geom.Rect { return r }

// FilteredObjectRect returns r unchanged.
func (f *ColorMatrixFilter) FilteredObjectRect(r geom.Rect, _ int) geom.Rect { return r }

// Apply transforms src into dst. Both surfaces must be straight BGRA;
// otherwise dst is left untouched. Destination pixel (x, y) reads source
// pixel (x, y) + src0 + diff; pixels with no source are not written.
func (f *ColorMatrixFilter) Apply(src, dst *surface.Surface, src0, diff geom.Point, _ int) {
	if src.Format() != surface.FormatBGRA || dst.Format() != surface.FormatBGRA {
		Logger().Warn("pixfilter: color matrix: unsupported format pairing",
			"src", src.Format(), "dst", dst.Format())
		return
	}

	off := src0.Add(diff)
	area := src.Bounds().Translate(-off.X, -off.Y).Intersect(dst.Bounds())
	if area.IsEmpty() {
		return
	}

	m := &f.matrix
	dst.Render(func(t *surface.RenderTarget) {
		for y := area.Y; y < area.Bottom(); y++ {
			s := src.Row(y + off.Y)[(area.X+off.X)*4:]
			d := t.Row(y)[area.X*4:]
			for i := 0; i < area.W*4; i += 4 {
				b, g, r, a := float32(s[i]), float32(s[i+1]), float32(s[i+2]), float32(s[i+3])
				d[i+2] = clamp255(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
				d[i+1] = clamp255(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
				d[i+0] = clamp255(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
				d[i+3] = clamp255(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
			}
		}
	})
}

// clamp255 clamps v to [0, 255] and truncates it. NaN maps to 0.
func clamp255(v float32) byte {
	switch {
	case v > 255:
		return 255
	case v >= 0:
		return byte(v)
	}
	return 0
}
