// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the reference-counted pixel buffers consumed by
// the pixfilter pipeline.
//
// A Surface owns width×height pixels in one Format, with a row stride of at
// least Format.RowBytes(width). Reading goes through Row; writing goes
// through a RenderTarget obtained with BeginRender and closed with End.
// Only one RenderTarget may be open on a Surface at a time.
//
// # Ownership
//
// New surfaces start with a reference count of one. Every holder that keeps
// a handle calls IncRef; every holder that discards one calls DecRef. When
// the count reaches zero the pixel buffer is released, returning it to its
// Pool when the surface came from one. Counts are atomic, so independent
// pipelines may run on different goroutines; a single Surface is never
// shared between concurrent pipelines.
//
// # Formats
//
// The filters work on FormatBGRA (straight alpha), FormatBGRAPremul and
// FormatAlpha8. FormatRGBA8, FormatRGB8 and FormatGray8 exist so that
// capture devices and codecs can hand over frames; Convert and
// ChangeInternalFormat move pixels between any two formats.
//
// # Allocators
//
// Intermediate surfaces are created through an Allocator. The built-in
// "simple" allocator always makes fresh buffers; "pooled" recycles buffers
// through a Pool. Additional allocators can be added with Register.
package surface
