// Package pixfilter is an in-memory bitmap filter engine.
//
// A filter chain takes a source surface through an ordered list of filters,
// each run for one or more quality passes. Every pass renders into a newly
// allocated surface sized by the filter's domain math, so the bitmap grows
// as blur and shadow spill pixels outward.
//
// # Filters
//
//   - BlurFilter: separable sliding-window box blur. Repeated passes lean
//     alternately left and right to approximate a centered Gaussian.
//   - ColorMatrixFilter: a 4x5 affine transform of straight-alpha color.
//   - DropShadowFilter: a blurred, offset, tinted silhouette drawn behind the
//     object (outer) or inside it (inner), with knockout and hide-object
//     variants.
//
// # Running a chain
//
//	filters := pixfilter.FilterList{
//	    pixfilter.NewBlurFilter(2, 5, 5),
//	    pixfilter.NewSepiaFilter(),
//	}
//	src := bmp.Bounds()
//	out := pixfilter.FilterBitmap(filters, bmp, src, filters.FilteredObjectRect(src), false, false, geom.Point{})
//	defer out.DecRef()
//
// FilterBitmap consumes the caller's reference to its input. Run does the
// same work with functional options and reports allocator errors.
//
// # Logging
//
// The package logs through log/slog and is silent by default; see SetLogger.
package pixfilter
