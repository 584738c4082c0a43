// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/pixfilter/geom"
)

// Common errors for surface operations.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("surface: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("surface: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("surface: data buffer too small")

	// ErrReleased is returned when a surface is used after its last reference
	// was dropped.
	ErrReleased = errors.New("surface: surface released")
)

// Surface is a reference-counted pixel buffer.
//
// Thread safety: reference counting is safe for concurrent use. Pixel access
// is not synchronized; a Surface belongs to one pipeline at a time.
type Surface struct {
	pix    []byte
	width  int
	height int
	stride int
	format Format

	refs      atomic.Int32
	rendering atomic.Bool

	// pool receives pix when the last reference is dropped.
	pool *Pool
}

// New creates a zeroed surface with a tightly packed stride.
// The returned surface holds one reference owned by the caller.
func New(width, height int, format Format) (*Surface, error) {
	return NewWithStride(width, height, format, format.RowBytes(width))
}

// NewWithStride creates a zeroed surface with a custom row stride.
// Stride must be at least format.RowBytes(width).
func NewWithStride(width, height int, format Format, stride int) (*Surface, error) {
	if err := validate(width, height, format, stride); err != nil {
		return nil, err
	}
	return newSurface(make([]byte, stride*height), width, height, format, stride), nil
}

// FromRaw wraps existing pixel data without copying.
// The caller must keep data valid for the lifetime of the surface.
func FromRaw(data []byte, width, height int, format Format, stride int) (*Surface, error) {
	if err := validate(width, height, format, stride); err != nil {
		return nil, err
	}
	required := stride * height
	if len(data) < required {
		return nil, ErrDataTooSmall
	}
	return newSurface(data[:required], width, height, format, stride), nil
}

// Alloc creates a zeroed, tightly packed surface. Negative dimensions are
// clamped to zero. It panics on an unknown format, which is a programming
// error rather than a runtime condition.
func Alloc(width, height int, format Format) *Surface {
	s, err := New(max(width, 0), max(height, 0), format)
	if err != nil {
		panic(fmt.Sprintf("surface.Alloc(%d, %d, %v): %v", width, height, format, err))
	}
	return s
}

func validate(width, height int, format Format, stride int) error {
	if width < 0 || height < 0 {
		return ErrInvalidDimensions
	}
	if !format.IsValid() {
		return ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return ErrInvalidStride
	}
	return nil
}

func newSurface(pix []byte, width, height int, format Format, stride int) *Surface {
	s := &Surface{
		pix:    pix,
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}
	s.refs.Store(1)
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Format returns the pixel format.
func (s *Surface) Format() Format { return s.format }

// Stride returns the number of bytes between the starts of adjacent rows.
func (s *Surface) Stride() int { return s.stride }

// Bounds returns the surface rectangle at the origin.
func (s *Surface) Bounds() geom.Rect { return geom.Size(s.width, s.height) }

// Pix returns the backing pixel slice. It is nil once released.
func (s *Surface) Pix() []byte { return s.pix }

// Row returns the bytes of row y for reading, trimmed to the visible width.
// It returns nil if y is out of range or the surface was released.
func (s *Surface) Row(y int) []byte {
	if y < 0 || y >= s.height || s.pix == nil {
		return nil
	}
	start := y * s.stride
	return s.pix[start : start+s.format.RowBytes(s.width)]
}

// Zero clears every byte of the buffer, padding included.
func (s *Surface) Zero() {
	clear(s.pix)
}

// Pixel returns the pixel at (x, y) as 0xAARRGGBB with straight-alpha color
// for the BGRA and RGB formats; premultiplied surfaces return their stored
// values. Alpha8 returns the sample in the alpha byte, Gray8 an opaque gray.
// Out-of-range coordinates return 0.
func (s *Surface) Pixel(x, y int) uint32 {
	if x < 0 || x >= s.width || y < 0 || y >= s.height || s.pix == nil {
		return 0
	}
	bpp := s.format.BytesPerPixel()
	p := s.pix[y*s.stride+x*bpp:]
	switch s.format {
	case FormatBGRA, FormatBGRAPremul:
		return uint32(p[3])<<24 | uint32(p[2])<<16 | uint32(p[1])<<8 | uint32(p[0])
	case FormatRGBA8:
		return uint32(p[3])<<24 | uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
	case FormatRGB8:
		return 0xff000000 | uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
	case FormatAlpha8:
		return uint32(p[0]) << 24
	case FormatGray8:
		v := uint32(p[0])
		return 0xff000000 | v<<16 | v<<8 | v
	}
	return 0
}

// SetPixel stores 0xAARRGGBB at (x, y) without any conversion beyond the
// byte order of the format. Out-of-range coordinates are ignored.
func (s *Surface) SetPixel(x, y int, argb uint32) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height || s.pix == nil {
		return
	}
	bpp := s.format.BytesPerPixel()
	p := s.pix[y*s.stride+x*bpp:]
	a, r, g, b := byte(argb>>24), byte(argb>>16), byte(argb>>8), byte(argb)
	switch s.format {
	case FormatBGRA, FormatBGRAPremul:
		p[0], p[1], p[2], p[3] = b, g, r, a
	case FormatRGBA8:
		p[0], p[1], p[2], p[3] = r, g, b, a
	case FormatRGB8:
		p[0], p[1], p[2] = r, g, b
	case FormatAlpha8:
		p[0] = a
	case FormatGray8:
		p[0] = luminance(r, g, b)
	}
}

// Fill sets every pixel to argb via SetPixel semantics.
func (s *Surface) Fill(argb uint32) {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.SetPixel(x, y, argb)
		}
	}
}

// IncRef adds a reference and returns s for chaining.
func (s *Surface) IncRef() *Surface {
	s.refs.Add(1)
	return s
}

// DecRef drops a reference. The last DecRef releases the pixel buffer.
func (s *Surface) DecRef() {
	n := s.refs.Add(-1)
	switch {
	case n == 0:
		pix := s.pix
		s.pix = nil
		if s.pool != nil {
			s.pool.put(pix, s.width, s.height, s.format, s.stride)
		}
	case n < 0:
		panic("surface: DecRef on released surface")
	}
}

// RefCount returns the current reference count.
func (s *Surface) RefCount() int {
	return int(s.refs.Load())
}

// Released reports whether the last reference has been dropped.
func (s *Surface) Released() bool {
	return s.refs.Load() <= 0
}

// Clone returns an independent copy holding one reference.
func (s *Surface) Clone() *Surface {
	pix := make([]byte, len(s.pix))
	copy(pix, s.pix)
	return newSurface(pix, s.width, s.height, s.format, s.stride)
}

// ChangeInternalFormat converts the pixels in place to format f. When the
// bytes per pixel differ a new buffer is allocated.
func (s *Surface) ChangeInternalFormat(f Format) error {
	if s.pix == nil {
		return ErrReleased
	}
	if !f.IsValid() {
		return ErrInvalidFormat
	}
	if f == s.format {
		return nil
	}
	if f.BytesPerPixel() == s.format.BytesPerPixel() {
		if err := Convert(s.width, s.height, s.format, s.pix, s.stride, f, s.pix, s.stride); err != nil {
			return err
		}
		s.format = f
		return nil
	}

	stride := f.RowBytes(s.width)
	pix := make([]byte, stride*s.height)
	if err := Convert(s.width, s.height, s.format, s.pix, s.stride, f, pix, stride); err != nil {
		return err
	}
	// The old buffer no longer matches the pool key.
	s.pool = nil
	s.pix, s.stride, s.format = pix, stride, f
	return nil
}

// String implements fmt.Stringer.
func (s *Surface) String() string {
	return fmt.Sprintf("Surface(%dx%d %v refs=%d)", s.width, s.height, s.format, s.RefCount())
}
