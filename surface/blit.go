// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/internal/blend"
)

// BlendMode selects how BlitTo combines source and destination pixels.
type BlendMode uint8

const (
	// BlendCopy replaces the destination.
	BlendCopy BlendMode = iota

	// BlendNormal composites the source over the destination.
	BlendNormal

	// BlendErase removes destination coverage where the source is opaque.
	BlendErase

	// BlendTinted uses the source alpha as a mask for the tint color and
	// composites the result over the destination.
	BlendTinted

	// BlendTintedInner pulls destination color toward the tint where the
	// source mask is absent. Destination alpha is kept.
	BlendTintedInner
)

var blendModeNames = [...]string{
	BlendCopy:        "Copy",
	BlendNormal:      "Normal",
	BlendErase:       "Erase",
	BlendTinted:      "Tinted",
	BlendTintedInner: "TintedInner",
}

// String returns the mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "Unknown"
}

// BlitTo draws the src rectangle of s into t with its top-left corner at
// (dx, dy) in target coordinates. The operation is clipped to both the
// source bounds and t.Rect.
//
// tint is 0xAARRGGBB with straight alpha. It supplies the color of Alpha8
// sources and the mask color of the tinted modes; other modes ignore it
// for color sources.
func (s *Surface) BlitTo(t *RenderTarget, src geom.Rect, dx, dy int, mode BlendMode, tint uint32) {
	if s.pix == nil || t.pix == nil {
		return
	}
	clipped := src.Intersect(s.Bounds())
	dx += clipped.X - src.X
	dy += clipped.Y - src.Y
	dst := geom.R(dx, dy, clipped.W, clipped.H).Intersect(t.Rect)
	if dst.IsEmpty() {
		return
	}
	sx0 := clipped.X + dst.X - dx
	sy0 := clipped.Y + dst.Y - dy

	ta, tr, tg, tb := byte(tint>>24), byte(tint>>16), byte(tint>>8), byte(tint)
	alphaSrc := s.format.Info().AlphaOnly
	sbpp := s.format.BytesPerPixel()
	dbpp := t.Format.BytesPerPixel()

	for y := 0; y < dst.H; y++ {
		srow := s.pix[(sy0+y)*s.stride:]
		drow := t.pix[(dst.Y+y)*t.Stride:]
		for x := 0; x < dst.W; x++ {
			sp := srow[(sx0+x)*sbpp:]
			dp := drow[(dst.X+x)*dbpp:]

			sr, sg, sb, sa := load(s.format, sp)
			if alphaSrc {
				sr, sg, sb = tr, tg, tb
			}
			dr, dg, db, da := load(t.Format, dp)

			var r, g, b, a byte
			switch mode {
			case BlendCopy:
				r, g, b, a = sr, sg, sb, sa
			case BlendNormal:
				r, g, b, a = blend.Over(sr, sg, sb, sa, dr, dg, db, da)
			case BlendErase:
				r, g, b, a = dr, dg, db, blend.Erase(sa, da)
			case BlendTinted:
				r, g, b, a = blend.Tinted(sa, tr, tg, tb, ta, dr, dg, db, da)
			case BlendTintedInner:
				r, g, b, a = blend.TintedInner(sa, tr, tg, tb, ta, dr, dg, db, da)
			default:
				continue
			}
			store(t.Format, dp, r, g, b, a)
		}
	}
}

// Channel names one color component of a pixel.
type Channel uint8

const (
	ChannelBlue Channel = iota
	ChannelGreen
	ChannelRed
	ChannelAlpha
)

// offset returns the byte offset of c within a pixel of format f, or -1 if
// the format does not store c.
func (c Channel) offset(f Format) int {
	switch f {
	case FormatBGRA, FormatBGRAPremul:
		return int(c)
	case FormatRGBA8:
		switch c {
		case ChannelRed:
			return 0
		case ChannelGreen:
			return 1
		case ChannelBlue:
			return 2
		case ChannelAlpha:
			return 3
		}
	case FormatRGB8:
		if c == ChannelAlpha {
			return -1
		}
		return 2 - int(c)
	case FormatAlpha8:
		if c == ChannelAlpha {
			return 0
		}
	case FormatGray8:
		if c != ChannelAlpha {
			return 0
		}
	}
	return -1
}

// BlitChannel copies channel srcCh of the src rectangle of s into channel
// dstCh of t, placing the rectangle's top-left corner at (dx, dy). Other
// channels of the target are left untouched. Clipping follows BlitTo.
func (s *Surface) BlitChannel(t *RenderTarget, src geom.Rect, dx, dy int, srcCh, dstCh Channel) {
	if s.pix == nil || t.pix == nil {
		return
	}
	so := srcCh.offset(s.format)
	do := dstCh.offset(t.Format)
	if so < 0 || do < 0 {
		return
	}
	clipped := src.Intersect(s.Bounds())
	dx += clipped.X - src.X
	dy += clipped.Y - src.Y
	dst := geom.R(dx, dy, clipped.W, clipped.H).Intersect(t.Rect)
	if dst.IsEmpty() {
		return
	}
	sx0 := clipped.X + dst.X - dx
	sy0 := clipped.Y + dst.Y - dy
	sbpp := s.format.BytesPerPixel()
	dbpp := t.Format.BytesPerPixel()

	for y := 0; y < dst.H; y++ {
		si := (sy0+y)*s.stride + sx0*sbpp + so
		di := (dst.Y+y)*t.Stride + dst.X*dbpp + do
		for x := 0; x < dst.W; x++ {
			t.pix[di] = s.pix[si]
			si += sbpp
			di += dbpp
		}
	}
}
