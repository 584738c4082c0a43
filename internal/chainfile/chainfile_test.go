package chainfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/pixfilter"
	"github.com/gogpu/pixfilter/geom"
)

const sample = `
version: v1
pow2: true
allocator: pooled
filters:
  - type: blur
    quality: 2
    blur_x: 5
    blur_y: 3
  - type: color_matrix
    preset: sepia
  - type: drop_shadow
    blur_x: 1
    blur_y: 1
    angle: 0
    distance: 3
    color: "#102030"
    alpha: 0.5
    knockout: true
`

func TestParseSample(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if !f.Pow2 || f.Allocator != "pooled" || len(f.Filters) != 3 {
		t.Fatalf("decoded %+v", f)
	}

	list, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d", len(list))
	}

	blur, ok := list[0].(*pixfilter.BlurFilter)
	if !ok {
		t.Fatalf("list[0] is %T", list[0])
	}
	if blur.Quality() != 2 || blur.BlurX() != 4 || blur.BlurY() != 2 {
		t.Errorf("blur = q%d %dx%d", blur.Quality(), blur.BlurX(), blur.BlurY())
	}
	if got := pixfilter.TypeOf(list[1]); got != pixfilter.FilterColorMatrix {
		t.Errorf("list[1] type = %v", got)
	}

	shadow, ok := list[2].(*pixfilter.DropShadowFilter)
	if !ok {
		t.Fatalf("list[2] is %T", list[2])
	}
	if p := shadow.Offset(); p != geom.Pt(3, 0) {
		t.Errorf("shadow offset = %v, want (3,0)", p)
	}

	opts, err := f.Options()
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 2 {
		t.Errorf("len(opts) = %d, want 2", len(opts))
	}
}

func TestFilterDefaults(t *testing.T) {
	f, err := Parse([]byte("filters:\n  - type: drop_shadow\n"))
	if err != nil {
		t.Fatal(err)
	}
	if f.Version != CurrentVersion {
		t.Errorf("Version = %q, want %q", f.Version, CurrentVersion)
	}
	got := f.Filters[0]
	want := Filter{
		Type: TypeDropShadow, Quality: 1, BlurX: 4, BlurY: 4, Amount: 1,
		Angle: 45, Distance: 4, Color: "#000000", Strength: 1, Alpha: 1,
	}
	if got.Type != want.Type || got.Quality != want.Quality || got.BlurX != want.BlurX ||
		got.Angle != want.Angle || got.Distance != want.Distance || got.Color != want.Color ||
		got.Strength != want.Strength || got.Alpha != want.Alpha || got.Amount != want.Amount {
		t.Errorf("defaults = %+v, want %+v", got, want)
	}
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	list, err := f.Build()
	if err != nil || len(list) != 0 {
		t.Errorf("Build() = %v, %v", list, err)
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"v1", true},
		{"v1.4.2", true},
		{"1.0.0", true},
		{"v2", false},
		{"v0.9.0", false},
		{"latest", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			_, err := Parse([]byte("version: " + tt.version + "\n"))
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrUnsupportedVersion) {
				t.Errorf("err = %v, want ErrUnsupportedVersion", err)
			}
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("filter:\n  - type: blur\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestParseRejectsUnknownFilterKeys(t *testing.T) {
	_, err := Parse([]byte("filters:\n  - type: blur\n    blurx: 9\n"))
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("err = %v, want ErrUnknownField", err)
	}
	if !strings.Contains(err.Error(), `"blurx"`) || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("err = %v, want the key and its line", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown type", "filters:\n  - type: glow\n", ErrUnknownFilter},
		{"short matrix", "filters:\n  - type: color_matrix\n    matrix: [1, 0, 0]\n", ErrBadMatrix},
		{"preset and matrix", "filters:\n  - type: color_matrix\n    preset: invert\n    matrix: [1,0,0,0,0,0,1,0,0,0,0,0,1,0,0,0,0,0,1,0]\n", ErrBadMatrix},
		{"unknown preset", "filters:\n  - type: color_matrix\n    preset: vintage\n", ErrBadMatrix},
		{"bad color", "filters:\n  - type: drop_shadow\n    color: red\n", ErrBadColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			_, err = f.Build()
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if err != nil && !strings.Contains(err.Error(), "filter 0") {
				t.Errorf("error %q does not name the filter index", err)
			}
		})
	}
}

func TestColorMatrixPresets(t *testing.T) {
	for _, name := range Presets() {
		f := Filter{Type: TypeColorMatrix, Preset: name, Amount: 1}
		if _, err := f.Build(); err != nil {
			t.Errorf("preset %q: %v", name, err)
		}
	}

	f := Filter{Type: TypeColorMatrix, Matrix: make([]float32, 20)}
	flt, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if m := flt.(*pixfilter.ColorMatrixFilter).Matrix(); m != (pixfilter.ColorMatrix{}) {
		t.Errorf("matrix = %v, want zero", m)
	}
}

func TestOptionsUnknownAllocator(t *testing.T) {
	f := &File{Allocator: "gpu"}
	if _, err := f.Options(); err == nil {
		t.Fatal("expected an error for an unknown allocator")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"#102030", 0x102030, true},
		{"0xFFaa00", 0xffaa00, true},
		{"abcdef", 0xabcdef, true},
		{" #000000 ", 0, true},
		{"#fff", 0, false},
		{"#gg0000", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("ParseColor(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.ok && !errors.Is(err, ErrBadColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrBadColor", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %#06x, want %#06x", tt.in, got, tt.want)
		}
	}
}

func TestLoadAndEncode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	again, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("re-parse: %v\n%s", err, buf.String())
	}
	if len(again.Filters) != 3 || again.Filters[2].Color != "#102030" || !again.Filters[2].Knockout {
		t.Errorf("round trip lost data:\n%s", buf.String())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) err = %v", err)
	}
}
