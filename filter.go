package pixfilter

import (
	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/surface"
)

// Filter is a visual effect applied to a surface in one or more passes.
//
// The orchestrator only needs four things from a filter: how many passes it
// runs, how each pass grows the region it reads from, how each pass grows
// the region it produces, and the pass itself.
//
// Rectangle bookkeeping:
//   - ExpandVisibleFilterDomain maps a destination rectangle of interest to
//     the source rectangle that must be read to produce it.
//   - FilteredObjectRect maps a source rectangle to the destination
//     rectangle the pass produces.
//
// Filters are immutable once constructed and may be shared by concurrent
// pipelines.
type Filter interface {
	// Quality returns the number of passes the orchestrator runs.
	Quality() int

	// ExpandVisibleFilterDomain returns the source rectangle needed to
	// produce r on the given pass.
	ExpandVisibleFilterDomain(r geom.Rect, pass int) geom.Rect

	// FilteredObjectRect returns the rectangle produced from source
	// rectangle r on the given pass.
	FilteredObjectRect(r geom.Rect, pass int) geom.Rect

	// Apply runs one pass from src into dst. src0 is the origin of valid
	// data in src; diff is the position of dst's origin relative to the
	// source rectangle.
	Apply(src, dst *surface.Surface, src0, diff geom.Point, pass int)
}

// FilterType identifies the kind of a filter for serialization and debugging.
type FilterType uint8

// Filter type constants.
const (
	// FilterNone represents an unknown or custom filter.
	FilterNone FilterType = iota

	// FilterBlur represents the box blur filter.
	FilterBlur

	// FilterColorMatrix represents the color matrix transformation.
	FilterColorMatrix

	// FilterDropShadow represents the drop shadow filter.
	FilterDropShadow
)

// String returns a human-readable name for the filter type.
func (ft FilterType) String() string {
	switch ft {
	case FilterNone:
		return "None"
	case FilterBlur:
		return "Blur"
	case FilterColorMatrix:
		return "ColorMatrix"
	case FilterDropShadow:
		return "DropShadow"
	default:
		return "Unknown"
	}
}

// ExpandsOutput reports whether this filter type can grow the bitmap.
func (ft FilterType) ExpandsOutput() bool {
	return ft == FilterBlur || ft == FilterDropShadow
}

// TypeOf returns the FilterType of f.
func TypeOf(f Filter) FilterType {
	switch f.(type) {
	case *BlurFilter:
		return FilterBlur
	case *ColorMatrixFilter:
		return FilterColorMatrix
	case *DropShadowFilter:
		return FilterDropShadow
	}
	return FilterNone
}

// FilterList is an ordered sequence of filters. Index order is application
// order.
type FilterList []Filter

// ExpandVisibleFilterDomain returns the source rectangle that must be read
// to render r through every filter and pass of the list.
func (l FilterList) ExpandVisibleFilterDomain(r geom.Rect) geom.Rect {
	for _, f := range l {
		for q := range f.Quality() {
			r = f.ExpandVisibleFilterDomain(r, q)
		}
	}
	return r
}

// FilteredObjectRect returns the rectangle produced by running source
// rectangle r through every filter and pass of the list.
func (l FilterList) FilteredObjectRect(r geom.Rect) geom.Rect {
	for _, f := range l {
		for q := range f.Quality() {
			r = f.FilteredObjectRect(r, q)
		}
	}
	return r
}

// Passes returns the total number of passes of the list.
func (l FilterList) Passes() int {
	n := 0
	for _, f := range l {
		n += max(f.Quality(), 0)
	}
	return n
}
