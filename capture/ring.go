// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capture

import (
	"sync"

	"github.com/gogpu/pixfilter/surface"
)

// slotCount is the number of frame slots in a Ring.
const slotCount = 3

// emptyAge marks a slot that holds no readable frame.
const emptyAge = -1

// Frame is one slot of a Ring.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Format surface.Format

	age     int64
	reading bool
}

// Ring rotates three frame slots between one writer and one reader.
//
// Every published frame gets a higher age than the previous one. The writer
// takes the slot with the lowest age; the reader takes the slot with the
// highest age. The lock is held only while a slot is chosen, never while
// pixels are copied.
type Ring struct {
	mu    sync.Mutex
	slots [slotCount]Frame
	clock int64
}

// NewRing returns a ring with every slot empty.
func NewRing() *Ring {
	r := &Ring{}
	for i := range r.slots {
		r.slots[i].age = emptyAge
	}
	return r
}

// AcquireWrite claims the least recently filled slot and sizes its buffer
// for a width×height frame in format f. The slot is unreadable until
// Publish.
func (r *Ring) AcquireWrite(width, height int, f surface.Format) *Frame {
	r.mu.Lock()
	var fr *Frame
	for i := range r.slots {
		s := &r.slots[i]
		if s.reading {
			continue
		}
		if fr == nil || s.age < fr.age {
			fr = s
		}
	}
	fr.age = emptyAge
	r.mu.Unlock()

	stride := f.RowBytes(width)
	if n := stride * height; cap(fr.Pix) < n {
		fr.Pix = make([]byte, n)
	} else {
		fr.Pix = fr.Pix[:n]
	}
	fr.Width, fr.Height, fr.Stride, fr.Format = width, height, stride, f
	return fr
}

// Publish makes a frame claimed by AcquireWrite readable.
func (r *Ring) Publish(fr *Frame) {
	r.mu.Lock()
	r.clock++
	fr.age = r.clock
	r.mu.Unlock()
}

// AcquireRead claims the newest readable frame, or returns nil if none has
// been published since the last read.
func (r *Ring) AcquireRead() *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	var fr *Frame
	for i := range r.slots {
		s := &r.slots[i]
		if s.age < 0 || s.reading {
			continue
		}
		if fr == nil || s.age > fr.age {
			fr = s
		}
	}
	if fr != nil {
		fr.reading = true
	}
	return fr
}

// Release returns a frame claimed by AcquireRead. The frame is consumed and
// will not be read again.
func (r *Ring) Release(fr *Frame) {
	r.mu.Lock()
	fr.reading = false
	fr.age = emptyAge
	r.mu.Unlock()
}

// Ready reports how many published frames are waiting to be read.
func (r *Ring) Ready() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for i := range r.slots {
		if r.slots[i].age >= 0 && !r.slots[i].reading {
			n++
		}
	}
	return n
}
