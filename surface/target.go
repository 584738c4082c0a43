// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "github.com/gogpu/pixfilter/geom"

// RenderTarget is a scoped write capability over a Surface's pixels.
//
// Obtain one with Surface.BeginRender and close it with End before the
// surface is read by anyone else. The buffer stays valid for writing until
// End is called.
type RenderTarget struct {
	// Rect is the writable rectangle in surface coordinates.
	Rect geom.Rect

	// Stride is the byte distance between rows.
	Stride int

	// Format is the pixel format of the target.
	Format Format

	pix []byte
	s   *Surface
}

// BeginRender opens the render target of s. It panics if a target is
// already open or the surface was released.
func (s *Surface) BeginRender() *RenderTarget {
	if s.pix == nil && s.width*s.height > 0 {
		panic("surface: BeginRender on released surface")
	}
	if !s.rendering.CompareAndSwap(false, true) {
		panic("surface: render target already open")
	}
	return &RenderTarget{
		Rect:   s.Bounds(),
		Stride: s.stride,
		Format: s.format,
		pix:    s.pix,
		s:      s,
	}
}

// Render opens the render target, calls fn and closes it again.
func (s *Surface) Render(fn func(t *RenderTarget)) {
	t := s.BeginRender()
	defer t.End()
	fn(t)
}

// Rendering reports whether a render target is currently open.
func (s *Surface) Rendering() bool {
	return s.rendering.Load()
}

// End closes the target. Further writes through it are invalid.
func (t *RenderTarget) End() {
	if t.s == nil {
		return
	}
	t.s.rendering.Store(false)
	t.s = nil
	t.pix = nil
}

// Width returns the target width in pixels.
func (t *RenderTarget) Width() int { return t.Rect.W }

// Height returns the target height in pixels.
func (t *RenderTarget) Height() int { return t.Rect.H }

// Pix returns the writable backing slice.
func (t *RenderTarget) Pix() []byte { return t.pix }

// Row returns the writable bytes of row y trimmed to the target width, or
// nil when y is outside Rect.
func (t *RenderTarget) Row(y int) []byte {
	if y < t.Rect.Y || y >= t.Rect.Bottom() || t.pix == nil {
		return nil
	}
	bpp := t.Format.BytesPerPixel()
	start := y*t.Stride + t.Rect.X*bpp
	return t.pix[start : start+t.Rect.W*bpp]
}

// Surface returns the surface being rendered, or nil after End.
func (t *RenderTarget) Surface() *Surface { return t.s }
