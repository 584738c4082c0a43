// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// imageView exposes a Surface through the image/draw interfaces.
type imageView struct {
	s *Surface
}

// Image returns a draw.Image view of s sharing its pixels.
func (s *Surface) Image() xdraw.Image {
	return imageView{s: s}
}

func (v imageView) ColorModel() color.Model {
	switch v.s.format {
	case FormatBGRAPremul:
		return color.RGBAModel
	case FormatAlpha8:
		return color.AlphaModel
	case FormatGray8:
		return color.GrayModel
	}
	return color.NRGBAModel
}

func (v imageView) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.s.width, v.s.height)
}

func (v imageView) At(x, y int) color.Color {
	p := v.s.Pixel(x, y)
	a, r, g, b := uint8(p>>24), uint8(p>>16), uint8(p>>8), uint8(p)
	switch v.s.format {
	case FormatBGRAPremul:
		return color.RGBA{R: r, G: g, B: b, A: a}
	case FormatAlpha8:
		return color.Alpha{A: a}
	case FormatGray8:
		return color.Gray{Y: b}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func (v imageView) Set(x, y int, c color.Color) {
	if v.s.format == FormatBGRAPremul {
		r, g, b, a := c.RGBA()
		v.s.SetPixel(x, y, uint32(a>>8)<<24|uint32(r>>8)<<16|uint32(g>>8)<<8|uint32(b>>8))
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	v.s.SetPixel(x, y, uint32(n.A)<<24|uint32(n.R)<<16|uint32(n.G)<<8|uint32(n.B))
}

// FromImage copies img into a new surface of the given format. The
// surface origin corresponds to img.Bounds().Min.
func FromImage(img image.Image, format Format) (*Surface, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Copy(nrgba, image.Point{}, img, b, xdraw.Src, nil)
	}
	s, err := New(b.Dx(), b.Dy(), format)
	if err != nil {
		return nil, err
	}
	if err := Convert(b.Dx(), b.Dy(), FormatRGBA8, nrgba.Pix, nrgba.Stride, format, s.pix, s.stride); err != nil {
		return nil, err
	}
	return s, nil
}

// ToNRGBA copies s into a new straight-alpha RGBA image.
func ToNRGBA(s *Surface) (*image.NRGBA, error) {
	if s.pix == nil && s.width*s.height > 0 {
		return nil, ErrReleased
	}
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	if err := Convert(s.width, s.height, s.format, s.pix, s.stride, FormatRGBA8, img.Pix, img.Stride); err != nil {
		return nil, err
	}
	return img, nil
}

// Scale resamples s to width×height with the Catmull-Rom kernel and
// returns a new surface in the same format.
func Scale(s *Surface, width, height int) (*Surface, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	src, err := ToNRGBA(s)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return FromImage(dst, s.format)
}
