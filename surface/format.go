// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"strings"
)

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatBGRA is 32-bit B,G,R,A with straight alpha. As a little-endian
	// uint32 a pixel reads 0xAARRGGBB.
	FormatBGRA Format = iota

	// FormatBGRAPremul is 32-bit B,G,R,A with color premultiplied by alpha.
	FormatBGRAPremul

	// FormatAlpha8 is a single 8-bit alpha channel.
	FormatAlpha8

	// FormatRGBA8 is 32-bit R,G,B,A with straight alpha.
	FormatRGBA8

	// FormatRGB8 is 24-bit R,G,B without alpha.
	FormatRGB8

	// FormatGray8 is 8-bit luminance without alpha.
	FormatGray8

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsPremultiplied indicates if color is premultiplied by alpha.
	IsPremultiplied bool

	// AlphaOnly indicates that alpha is the only channel.
	AlphaOnly bool

	name string
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatBGRA:       {BytesPerPixel: 4, HasAlpha: true, name: "BGRA"},
	FormatBGRAPremul: {BytesPerPixel: 4, HasAlpha: true, IsPremultiplied: true, name: "BGRAPremul"},
	FormatAlpha8:     {BytesPerPixel: 1, HasAlpha: true, AlphaOnly: true, name: "Alpha8"},
	FormatRGBA8:      {BytesPerPixel: 4, HasAlpha: true, name: "RGBA8"},
	FormatRGB8:       {BytesPerPixel: 3, name: "RGB8"},
	FormatGray8:      {BytesPerPixel: 1, name: "Gray8"},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsPremultiplied returns true if color is premultiplied by alpha.
func (f Format) IsPremultiplied() bool {
	return f.Info().IsPremultiplied
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// IsBGRA reports whether f is one of the two 32-bit BGRA layouts the
// filter pipeline accepts.
func (f Format) IsBGRA() bool {
	return f == FormatBGRA || f == FormatBGRAPremul
}

// RowBytes returns the number of bytes used by a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns the format name.
func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return formatInfoTable[f].name
}

// ParseFormat returns the format with the given name, ignoring case.
func ParseFormat(name string) (Format, error) {
	for f := range formatCount {
		if strings.EqualFold(formatInfoTable[f].name, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// Formats returns every known format in declaration order.
func Formats() []Format {
	out := make([]Format, 0, formatCount)
	for f := range formatCount {
		out = append(out, f)
	}
	return out
}
