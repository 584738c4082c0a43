// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "sync"

// Pool is a thread-safe pool of pixel buffers.
//
// Buffers are grouped by dimensions and format. A surface taken from a Pool
// returns its buffer to the pool when its last reference is dropped, which
// keeps the intermediate surfaces of a filter chain off the garbage
// collector.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][][]byte
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identical surface specifications.
type poolKey struct {
	width  int
	height int
	stride int
	format Format
}

// NewPool creates a pool retaining at most maxPerBucket buffers of each
// size and format. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed, tightly packed surface backed by a pooled buffer
// when one is available. It returns an error for negative dimensions or an
// unknown format.
func (p *Pool) Get(width, height int, format Format) (*Surface, error) {
	stride := format.RowBytes(width)
	if err := validate(width, height, format, stride); err != nil {
		return nil, err
	}
	key := poolKey{width: width, height: height, stride: stride, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	var pix []byte
	if n := len(bucket); n > 0 {
		pix = bucket[n-1]
		p.buckets[key] = bucket[:n-1]
	}
	p.mu.Unlock()

	if pix == nil {
		pix = make([]byte, stride*height)
	} else {
		clear(pix)
	}
	s := newSurface(pix, width, height, format, stride)
	s.pool = p
	return s, nil
}

// put stores pix for reuse. It is called by Surface.DecRef.
func (p *Pool) put(pix []byte, width, height int, format Format, stride int) {
	if len(pix) == 0 {
		return
	}
	key := poolKey{width: width, height: height, stride: stride, format: format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, pix)
}

// Len returns the number of idle buffers across all buckets.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

// Reset drops every idle buffer.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	clear(p.buckets)
}
