// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"

	"github.com/gogpu/pixfilter/internal/blend"
)

// Convert copies a width×height block of pixels from src in srcFmt to dst in
// dstFmt. Strides are in bytes. src and dst may be the same slice when both
// formats have the same bytes per pixel and the strides match.
func Convert(width, height int, srcFmt Format, src []byte, srcStride int,
	dstFmt Format, dst []byte, dstStride int) error {
	if !srcFmt.IsValid() || !dstFmt.IsValid() {
		return ErrInvalidFormat
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	if srcStride < srcFmt.RowBytes(width) || dstStride < dstFmt.RowBytes(width) {
		return ErrInvalidStride
	}
	if len(src) < srcStride*(height-1)+srcFmt.RowBytes(width) ||
		len(dst) < dstStride*(height-1)+dstFmt.RowBytes(width) {
		return fmt.Errorf("convert %v->%v: %w", srcFmt, dstFmt, ErrDataTooSmall)
	}

	sbpp := srcFmt.BytesPerPixel()
	dbpp := dstFmt.BytesPerPixel()
	for y := 0; y < height; y++ {
		srow := src[y*srcStride : y*srcStride+sbpp*width]
		drow := dst[y*dstStride : y*dstStride+dbpp*width]
		if srcFmt == dstFmt {
			copy(drow, srow)
			continue
		}
		for x := 0; x < width; x++ {
			r, g, b, a := load(srcFmt, srow[x*sbpp:])
			store(dstFmt, drow[x*dbpp:], r, g, b, a)
		}
	}
	return nil
}

// load returns the straight-alpha channels of the pixel starting at p.
func load(f Format, p []byte) (r, g, b, a byte) {
	switch f {
	case FormatBGRA:
		return p[2], p[1], p[0], p[3]
	case FormatBGRAPremul:
		a = p[3]
		return blend.Unpremultiply(p[2], a), blend.Unpremultiply(p[1], a), blend.Unpremultiply(p[0], a), a
	case FormatRGBA8:
		return p[0], p[1], p[2], p[3]
	case FormatRGB8:
		return p[0], p[1], p[2], 255
	case FormatAlpha8:
		return 0, 0, 0, p[0]
	case FormatGray8:
		return p[0], p[0], p[0], 255
	}
	return 0, 0, 0, 0
}

// store writes straight-alpha channels into the pixel starting at p.
func store(f Format, p []byte, r, g, b, a byte) {
	switch f {
	case FormatBGRA:
		p[0], p[1], p[2], p[3] = b, g, r, a
	case FormatBGRAPremul:
		p[0], p[1], p[2], p[3] = blend.Premultiply(b, a), blend.Premultiply(g, a), blend.Premultiply(r, a), a
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

// luminance uses the Rec. 601 weights: 0.299*R + 0.587*G + 0.114*B.
func luminance(r, g, b byte) byte {
	return byte((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
}
