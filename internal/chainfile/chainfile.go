// Package chainfile reads filter chains described in YAML.
//
// A chain file looks like:
//
//	version: v1
//	pow2: false
//	allocator: pooled
//	filters:
//	  - type: blur
//	    quality: 2
//	    blur_x: 5
//	    blur_y: 5
//	  - type: color_matrix
//	    preset: sepia
//	  - type: drop_shadow
//	    distance: 4
//	    color: "#202020"
package chainfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/pixfilter"
	"github.com/gogpu/pixfilter/surface"
)

// CurrentVersion is the newest chain file version this package writes.
const CurrentVersion = "v1.0.0"

// Errors returned while decoding a chain file.
var (
	ErrUnsupportedVersion = errors.New("chainfile: unsupported version")
	ErrUnknownFilter      = errors.New("chainfile: unknown filter")
	ErrBadMatrix          = errors.New("chainfile: bad color matrix")
	ErrBadColor           = errors.New("chainfile: bad color")
	ErrUnknownField       = errors.New("chainfile: unknown field")
)

// Filter type names.
const (
	TypeBlur        = "blur"
	TypeColorMatrix = "color_matrix"
	TypeDropShadow  = "drop_shadow"
)

// File is a decoded chain file.
type File struct {
	Version   string   `yaml:"version"`
	Pow2      bool     `yaml:"pow2,omitempty"`
	Allocator string   `yaml:"allocator,omitempty"`
	Filters   []Filter `yaml:"filters"`
}

// Filter describes one filter. Which fields apply depends on Type.
type Filter struct {
	Type string `yaml:"type"`

	// blur, drop_shadow
	Quality int `yaml:"quality,omitempty"`
	BlurX   int `yaml:"blur_x,omitempty"`
	BlurY   int `yaml:"blur_y,omitempty"`

	// color_matrix
	Preset string    `yaml:"preset,omitempty"`
	Amount float64   `yaml:"amount,omitempty"`
	Matrix []float32 `yaml:"matrix,omitempty,flow"`

	// drop_shadow
	Angle      float64 `yaml:"angle,omitempty"`
	Distance   float64 `yaml:"distance,omitempty"`
	Color      string  `yaml:"color,omitempty"`
	Strength   float64 `yaml:"strength,omitempty"`
	Alpha      float64 `yaml:"alpha,omitempty"`
	HideObject bool    `yaml:"hide_object,omitempty"`
	Knockout   bool    `yaml:"knockout,omitempty"`
	Inner      bool    `yaml:"inner,omitempty"`
}

// filterKeys holds the yaml names of the Filter fields.
var filterKeys = func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeFor[Filter]()
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		keys[name] = true
	}
	return keys
}()

// UnmarshalYAML fills in the defaults for fields the document omits.
// Node.Decode does not inherit the decoder's KnownFields setting, so keys
// are checked here.
func (f *Filter) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i < len(node.Content); i += 2 {
			if k := node.Content[i]; !filterKeys[k.Value] {
				return fmt.Errorf("%w %q in filter at line %d", ErrUnknownField, k.Value, k.Line)
			}
		}
	}

	type plain Filter
	p := plain{
		Quality:  1,
		BlurX:    4,
		BlurY:    4,
		Amount:   1,
		Angle:    45,
		Distance: 4,
		Color:    "#000000",
		Strength: 1,
		Alpha:    1,
	}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*f = Filter(p)
	return nil
}

// Load reads and decodes the chain file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chainfile: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a chain file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("chainfile: parse: %w", err)
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}
	if f.Version == "" {
		f.Version = CurrentVersion
	}
	return &f, nil
}

// Encode writes f as YAML.
func (f *File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("chainfile: encode: %w", err)
	}
	return enc.Close()
}

// checkVersion accepts an empty version or any valid v1.x.y.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != semver.Major(CurrentVersion) {
		return fmt.Errorf("%w: %s (want %s)", ErrUnsupportedVersion, v, semver.Major(CurrentVersion))
	}
	return nil
}

// Build returns the filters of f in application order.
func (f *File) Build() (pixfilter.FilterList, error) {
	list := make(pixfilter.FilterList, 0, len(f.Filters))
	for i := range f.Filters {
		flt, err := f.Filters[i].Build()
		if err != nil {
			return nil, fmt.Errorf("chainfile: filter %d: %w", i, err)
		}
		list = append(list, flt)
	}
	return list, nil
}

// Options returns the Run options f selects.
func (f *File) Options() ([]pixfilter.Option, error) {
	opts := []pixfilter.Option{pixfilter.WithPow2(f.Pow2)}
	if f.Allocator != "" {
		a, err := surface.Lookup(f.Allocator)
		if err != nil {
			return nil, fmt.Errorf("chainfile: %w", err)
		}
		opts = append(opts, pixfilter.WithAllocator(a))
	}
	return opts, nil
}

// Build constructs the filter f describes.
func (f *Filter) Build() (pixfilter.Filter, error) {
	switch strings.ToLower(f.Type) {
	case TypeBlur:
		return pixfilter.NewBlurFilter(f.Quality, f.BlurX, f.BlurY), nil
	case TypeColorMatrix:
		return f.colorMatrix()
	case TypeDropShadow:
		col, err := ParseColor(f.Color)
		if err != nil {
			return nil, err
		}
		return pixfilter.NewDropShadowFilter(pixfilter.ShadowParams{
			Quality:    f.Quality,
			BlurX:      f.BlurX,
			BlurY:      f.BlurY,
			Angle:      f.Angle,
			Distance:   f.Distance,
			Color:      col,
			Strength:   f.Strength,
			Alpha:      f.Alpha,
			HideObject: f.HideObject,
			Knockout:   f.Knockout,
			Inner:      f.Inner,
		}), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, f.Type)
}

func (f *Filter) colorMatrix() (*pixfilter.ColorMatrixFilter, error) {
	if f.Matrix != nil {
		if f.Preset != "" {
			return nil, fmt.Errorf("%w: both preset and matrix given", ErrBadMatrix)
		}
		var m pixfilter.ColorMatrix
		if len(f.Matrix) != len(m) {
			return nil, fmt.Errorf("%w: %d values, want %d", ErrBadMatrix, len(f.Matrix), len(m))
		}
		copy(m[:], f.Matrix)
		return pixfilter.NewColorMatrixFilter(m), nil
	}

	a := f.Amount
	switch strings.ToLower(f.Preset) {
	case "", "identity":
		return pixfilter.NewIdentityColorMatrix(), nil
	case "grayscale":
		return pixfilter.NewGrayscaleFilter(), nil
	case "sepia":
		return pixfilter.NewSepiaFilter(), nil
	case "invert":
		return pixfilter.NewInvertFilter(), nil
	case "brightness":
		return pixfilter.NewBrightnessFilter(float32(a)), nil
	case "contrast":
		return pixfilter.NewContrastFilter(float32(a)), nil
	case "saturation":
		return pixfilter.NewSaturationFilter(float32(a)), nil
	case "opacity":
		return pixfilter.NewOpacityFilter(float32(a)), nil
	case "hue_rotate":
		return pixfilter.NewHueRotateFilter(a), nil
	}
	return nil, fmt.Errorf("%w: unknown preset %q", ErrBadMatrix, f.Preset)
}

// Presets lists the color matrix preset names.
func Presets() []string {
	return []string{"identity", "grayscale", "sepia", "invert", "brightness", "contrast", "saturation", "opacity", "hue_rotate"}
}

// ParseColor parses "#rrggbb", "0xrrggbb" or "rrggbb" into 0xRRGGBB.
func ParseColor(s string) (uint32, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	if len(h) > 2 && (h[:2] == "0x" || h[:2] == "0X") {
		h = h[2:]
	}
	if len(h) != 6 {
		return 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return uint32(v), nil
}
