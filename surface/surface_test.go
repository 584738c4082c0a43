// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		format  Format
		stride  int
		wantErr error
	}{
		{"ok", 4, 3, FormatBGRA, 16, nil},
		{"padded", 4, 3, FormatBGRA, 32, nil},
		{"zero size", 0, 0, FormatAlpha8, 0, nil},
		{"negative width", -1, 3, FormatBGRA, 16, ErrInvalidDimensions},
		{"negative height", 4, -3, FormatBGRA, 16, ErrInvalidDimensions},
		{"bad format", 4, 3, Format(200), 16, ErrInvalidFormat},
		{"short stride", 4, 3, FormatBGRA, 15, ErrInvalidStride},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewWithStride(tt.w, tt.h, tt.format, tt.stride)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if s.Width() != tt.w || s.Height() != tt.h || s.Stride() != tt.stride {
				t.Errorf("got %dx%d stride %d", s.Width(), s.Height(), s.Stride())
			}
			if len(s.Pix()) != tt.stride*tt.h {
				t.Errorf("len(Pix) = %d, want %d", len(s.Pix()), tt.stride*tt.h)
			}
			if s.RefCount() != 1 {
				t.Errorf("RefCount = %d, want 1", s.RefCount())
			}
		})
	}
}

func TestFromRaw(t *testing.T) {
	data := make([]byte, 8)
	if _, err := FromRaw(data, 2, 2, FormatBGRA, 8); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("err = %v, want ErrDataTooSmall", err)
	}
	s, err := FromRaw(data, 2, 1, FormatBGRA, 8)
	if err != nil {
		t.Fatal(err)
	}
	s.SetPixel(1, 0, 0x80112233)
	if data[4] != 0x33 || data[5] != 0x22 || data[6] != 0x11 || data[7] != 0x80 {
		t.Errorf("raw bytes = %v, want shared BGRA storage", data[4:8])
	}
}

func TestAllocClampsNegative(t *testing.T) {
	s := Alloc(-5, 3, FormatBGRA)
	if s.Width() != 0 || s.Height() != 3 {
		t.Errorf("Alloc(-5, 3) = %dx%d", s.Width(), s.Height())
	}
}

func TestPixelRoundTrip(t *testing.T) {
	tests := []struct {
		format Format
		in     uint32
		want   uint32
	}{
		{FormatBGRA, 0x80112233, 0x80112233},
		{FormatBGRAPremul, 0x80102030, 0x80102030},
		{FormatRGBA8, 0x40aabbcc, 0x40aabbcc},
		{FormatRGB8, 0x40aabbcc, 0xffaabbcc},
		{FormatAlpha8, 0x7f123456, 0x7f000000},
		{FormatGray8, 0xff646464, 0xff646464},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			s := Alloc(3, 2, tt.format)
			s.SetPixel(2, 1, tt.in)
			if got := s.Pixel(2, 1); got != tt.want {
				t.Errorf("Pixel = %#08x, want %#08x", got, tt.want)
			}
			if got := s.Pixel(3, 0); got != 0 {
				t.Errorf("out of range Pixel = %#08x, want 0", got)
			}
		})
	}
}

func TestRowTrimsPadding(t *testing.T) {
	s, err := NewWithStride(3, 2, FormatBGRA, 20)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(s.Row(1)); got != 12 {
		t.Errorf("len(Row) = %d, want 12", got)
	}
	if s.Row(2) != nil || s.Row(-1) != nil {
		t.Error("Row out of range should be nil")
	}
}

func TestRefCounting(t *testing.T) {
	s := Alloc(2, 2, FormatBGRA)
	s.IncRef()
	if s.RefCount() != 2 {
		t.Fatalf("RefCount = %d, want 2", s.RefCount())
	}
	s.DecRef()
	if s.Released() {
		t.Fatal("released with one reference left")
	}
	s.DecRef()
	if !s.Released() || s.Pix() != nil {
		t.Fatal("last DecRef should release the buffer")
	}
	defer func() {
		if recover() == nil {
			t.Error("DecRef past zero should panic")
		}
	}()
	s.DecRef()
}

func TestClone(t *testing.T) {
	s := Alloc(2, 2, FormatBGRA)
	s.Fill(0xff0000ff)
	c := s.Clone()
	c.SetPixel(0, 0, 0)
	if s.Pixel(0, 0) != 0xff0000ff {
		t.Error("Clone shares pixels with the original")
	}
	if c.RefCount() != 1 {
		t.Errorf("clone RefCount = %d, want 1", c.RefCount())
	}
}

func TestChangeInternalFormat(t *testing.T) {
	t.Run("premul in place", func(t *testing.T) {
		s := Alloc(1, 1, FormatBGRA)
		s.SetPixel(0, 0, 0x80ff0000)
		pix := s.Pix()
		if err := s.ChangeInternalFormat(FormatBGRAPremul); err != nil {
			t.Fatal(err)
		}
		if &pix[0] != &s.Pix()[0] {
			t.Error("same-size conversion should reuse the buffer")
		}
		if got := s.Pixel(0, 0); got != 0x80800000 {
			t.Errorf("premul pixel = %#08x, want 0x80800000", got)
		}
		if err := s.ChangeInternalFormat(FormatBGRA); err != nil {
			t.Fatal(err)
		}
		if got := s.Pixel(0, 0); got != 0x80ff0000 {
			t.Errorf("round trip = %#08x, want 0x80ff0000", got)
		}
	})

	t.Run("to alpha", func(t *testing.T) {
		s := Alloc(2, 1, FormatBGRA)
		s.SetPixel(1, 0, 0x33aabbcc)
		if err := s.ChangeInternalFormat(FormatAlpha8); err != nil {
			t.Fatal(err)
		}
		if s.Stride() != 2 || s.Format() != FormatAlpha8 {
			t.Errorf("stride %d format %v", s.Stride(), s.Format())
		}
		if got := s.Pixel(1, 0); got != 0x33000000 {
			t.Errorf("alpha = %#08x, want 0x33000000", got)
		}
	})

	t.Run("released", func(t *testing.T) {
		s := Alloc(1, 1, FormatBGRA)
		s.DecRef()
		if err := s.ChangeInternalFormat(FormatAlpha8); !errors.Is(err, ErrReleased) {
			t.Errorf("err = %v, want ErrReleased", err)
		}
	})
}

func TestRenderTarget(t *testing.T) {
	s := Alloc(3, 2, FormatBGRA)
	tgt := s.BeginRender()
	if !s.Rendering() {
		t.Fatal("Rendering should be true while a target is open")
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Error("second BeginRender should panic")
			}
		}()
		s.BeginRender()
	}()
	row := tgt.Row(1)
	row[0], row[1], row[2], row[3] = 1, 2, 3, 4
	tgt.End()
	if s.Rendering() || tgt.Surface() != nil {
		t.Error("End should close the target")
	}
	if got := s.Pixel(0, 1); got != 0x04030201 {
		t.Errorf("Pixel = %#08x, want 0x04030201", got)
	}

	s.Render(func(rt *RenderTarget) { rt.Row(0)[3] = 9 })
	if s.Rendering() {
		t.Error("Render should close the target")
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
	if f, err := ParseFormat("bgrapremul"); err != nil || f != FormatBGRAPremul {
		t.Errorf("case-insensitive parse = %v, %v", f, err)
	}
	if _, err := ParseFormat("cmyk"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}
