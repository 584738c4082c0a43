package pixfilter

import (
	"fmt"
	"testing"

	"github.com/gogpu/pixfilter/surface"
)

// Test helper functions shared across filter tests.

// newFilled creates a surface of format f with every pixel set to argb.
func newFilled(w, h int, f surface.Format, argb uint32) *surface.Surface {
	s := surface.Alloc(w, h, f)
	s.Fill(argb)
	return s
}

// rowPixels returns the pixels of row y as 0xAARRGGBB values.
func rowPixels(s *surface.Surface, y int) []uint32 {
	out := make([]uint32, s.Width())
	for x := range out {
		out[x] = s.Pixel(x, y)
	}
	return out
}

// alphaRow returns the alpha bytes of row y.
func alphaRow(s *surface.Surface, y int) []byte {
	out := make([]byte, s.Width())
	for x := range out {
		out[x] = byte(s.Pixel(x, y) >> 24)
	}
	return out
}

// checkPixel fails the test if s at (x, y) is not want.
func checkPixel(t *testing.T, s *surface.Surface, x, y int, want uint32) {
	t.Helper()
	if got := s.Pixel(x, y); got != want {
		t.Errorf("Pixel(%d, %d) = %#08x, want %#08x", x, y, got, want)
	}
}

// hex formats a pixel slice for failure messages.
func hex(px []uint32) string {
	s := "["
	for i, p := range px {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%08x", p)
	}
	return s + "]"
}
