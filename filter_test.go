package pixfilter

import (
	"testing"

	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/surface"
)

// stubFilter is a Filter with no registered type.
type stubFilter struct{}

func (stubFilter) Quality() int                                           { return 0 }
func (stubFilter) ExpandVisibleFilterDomain(r geom.Rect, _ int) geom.Rect { return r }
func (stubFilter) FilteredObjectRect(r geom.Rect, _ int) geom.Rect        { return r }
func (stubFilter) Apply(_, _ *surface.Surface, _, _ geom.Point, _ int)    {}

func TestFilterTypeString(t *testing.T) {
	tests := []struct {
		ft      FilterType
		want    string
		expands bool
	}{
		{FilterNone, "None", false},
		{FilterBlur, "Blur", true},
		{FilterColorMatrix, "ColorMatrix", false},
		{FilterDropShadow, "DropShadow", true},
		{FilterType(42), "Unknown", false},
	}
	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("FilterType(%d).String() = %q, want %q", tt.ft, got, tt.want)
		}
		if got := tt.ft.ExpandsOutput(); got != tt.expands {
			t.Errorf("%v.ExpandsOutput() = %v, want %v", tt.ft, got, tt.expands)
		}
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		f    Filter
		want FilterType
	}{
		{NewBlurFilter(1, 2, 2), FilterBlur},
		{NewSepiaFilter(), FilterColorMatrix},
		{NewDropShadowFilter(ShadowParams{Quality: 1}), FilterDropShadow},
		{stubFilter{}, FilterNone},
	}
	for _, tt := range tests {
		if got := TypeOf(tt.f); got != tt.want {
			t.Errorf("TypeOf(%T) = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestFilterListDomains(t *testing.T) {
	r := geom.R(0, 0, 10, 10)
	tests := []struct {
		name     string
		list     FilterList
		expand   geom.Rect
		produced geom.Rect
		passes   int
	}{
		{"empty", nil, r, r, 0},
		{"color only", FilterList{NewInvertFilter(), NewGrayscaleFilter()}, r, r, 2},
		{"two blur passes", FilterList{NewBlurFilter(2, 3, 3)}, geom.R(-2, -2, 14, 14), geom.R(-2, -2, 14, 14), 2},
		{"blur then matrix", FilterList{NewBlurFilter(1, 3, 1), NewInvertFilter()}, geom.R(-1, 0, 12, 10), geom.R(-1, 0, 12, 10), 2},
		{"zero quality", FilterList{stubFilter{}, NewBlurFilter(0, 9, 9)}, r, r, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.ExpandVisibleFilterDomain(r); got != tt.expand {
				t.Errorf("ExpandVisibleFilterDomain = %v, want %v", got, tt.expand)
			}
			if got := tt.list.FilteredObjectRect(r); got != tt.produced {
				t.Errorf("FilteredObjectRect = %v, want %v", got, tt.produced)
			}
			if got := tt.list.Passes(); got != tt.passes {
				t.Errorf("Passes = %d, want %d", got, tt.passes)
			}
		})
	}
}
