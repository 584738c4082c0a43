package blend

import "testing"

func TestDiv255Exact(t *testing.T) {
	for x := uint32(0); x <= 255*255; x++ {
		if got, want := div255(x), x/255; got != want {
			t.Fatalf("div255(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestMulDiv255(t *testing.T) {
	tests := []struct {
		a, b, want byte
	}{
		{0, 0, 0},
		{255, 255, 255},
		{0, 255, 0},
		{128, 128, 64},
		{200, 100, 78},
		{1, 255, 1},
	}
	for _, tt := range tests {
		if got := MulDiv255(tt.a, tt.b); got != tt.want {
			t.Errorf("MulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPremultiplyRoundTripOpaque(t *testing.T) {
	for c := 0; c < 256; c++ {
		p := Premultiply(byte(c), 255)
		if p != byte(c) {
			t.Fatalf("Premultiply(%d, 255) = %d", c, p)
		}
		if u := Unpremultiply(p, 255); u != byte(c) {
			t.Fatalf("Unpremultiply(%d, 255) = %d", p, u)
		}
	}
	if Unpremultiply(10, 0) != 0 {
		t.Error("Unpremultiply with zero alpha should be 0")
	}
}

func TestOver(t *testing.T) {
	tests := []struct {
		name     string
		src, dst [4]byte
		want     [4]byte
	}{
		{"opaque source wins", [4]byte{10, 20, 30, 255}, [4]byte{1, 2, 3, 255}, [4]byte{10, 20, 30, 255}},
		{"transparent source keeps dst", [4]byte{10, 20, 30, 0}, [4]byte{1, 2, 3, 200}, [4]byte{1, 2, 3, 200}},
		{"empty dst takes src", [4]byte{10, 20, 30, 77}, [4]byte{1, 2, 3, 0}, [4]byte{10, 20, 30, 77}},
		{"half over opaque", [4]byte{255, 0, 0, 128}, [4]byte{0, 0, 255, 255}, [4]byte{128, 0, 127, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := Over(tt.src[0], tt.src[1], tt.src[2], tt.src[3], tt.dst[0], tt.dst[1], tt.dst[2], tt.dst[3])
			if got := [4]byte{r, g, b, a}; got != tt.want {
				t.Errorf("Over = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErase(t *testing.T) {
	if got := Erase(255, 200); got != 0 {
		t.Errorf("Erase(255, 200) = %d, want 0", got)
	}
	if got := Erase(0, 200); got != 200 {
		t.Errorf("Erase(0, 200) = %d, want 200", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 255, 256); got != 255 {
		t.Errorf("Lerp full = %d, want 255", got)
	}
	if got := Lerp(100, 0, 0); got != 100 {
		t.Errorf("Lerp none = %d, want 100", got)
	}
	if got := Lerp(0, 200, 128); got != 100 {
		t.Errorf("Lerp half = %d, want 100", got)
	}
}

func TestTintedInner(t *testing.T) {
	// Full mask: no tint.
	r, g, b, a := TintedInner(255, 0, 0, 0, 255, 200, 100, 50, 255)
	if r != 200 || g != 100 || b != 50 || a != 255 {
		t.Errorf("full mask changed color: %d %d %d %d", r, g, b, a)
	}
	// No mask: replaced by tint, alpha kept.
	r, g, b, a = TintedInner(0, 0, 0, 0, 255, 200, 100, 50, 90)
	if r != 0 || g != 0 || b != 0 || a != 90 {
		t.Errorf("empty mask = %d %d %d %d, want 0 0 0 90", r, g, b, a)
	}
}
