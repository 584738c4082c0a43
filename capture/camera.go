// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/pixfilter"
	"github.com/gogpu/pixfilter/surface"
)

// ErrDevice is wrapped by the error Camera.Err returns.
var ErrDevice = errors.New("capture: device error")

// Status is the state of a Camera.
type Status int32

const (
	// StatusInit means the device has not started delivering frames.
	StatusInit Status = iota

	// StatusRunning means frames are being delivered.
	StatusRunning

	// StatusError means the device failed. See Camera.Err.
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusInit:
		return "Init"
	case StatusRunning:
		return "Running"
	case StatusError:
		return "Error"
	default:
		return fmt.Sprintf("Status(%d)", int32(s))
	}
}

// Handler receives notifications from Camera.Poll on the polling goroutine.
type Handler interface {
	// OnError is called on every poll while the camera is in error.
	OnError(msg string)

	// InitFrame returns the surface frames are copied into. It is called
	// once the camera is running and until it returns a non-nil surface.
	// The camera takes over the returned reference.
	InitFrame(width, height int, format surface.Format) *surface.Surface

	// OnFrame is called after a new frame was copied into the surface.
	OnFrame(frameID int64)
}

// Camera connects a device producer to a polling consumer.
type Camera struct {
	ring *Ring

	mu      sync.Mutex
	status  Status
	errMsg  string
	width   int
	height  int
	format  surface.Format
	buffer  *surface.Surface
	frameID int64
}

// NewCamera returns a camera in StatusInit for width×height frames stored
// in format f.
func NewCamera(width, height int, f surface.Format) *Camera {
	return &Camera{
		ring:   NewRing(),
		width:  max(width, 0),
		height: max(height, 0),
		format: f,
	}
}

// Start moves the camera to StatusRunning unless it is in error.
func (c *Camera) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusError {
		c.status = StatusRunning
	}
}

// SetError puts the camera in StatusError with reason msg.
func (c *Camera) SetError(msg string) {
	c.mu.Lock()
	c.status = StatusError
	c.errMsg = msg
	c.mu.Unlock()
	pixfilter.Logger().Warn("capture: device error", "reason", msg)
}

// Status returns the current status.
func (c *Camera) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Err returns the device error, or nil when the camera is not in error.
func (c *Camera) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusError {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrDevice, c.errMsg)
}

// Size returns the frame dimensions.
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

// Format returns the frame storage format.
func (c *Camera) Format() surface.Format {
	return c.format
}

// Ring returns the frame ring shared with the producer.
func (c *Camera) Ring() *Ring {
	return c.ring
}

// Deliver copies one device frame in format srcFmt into the ring. It is
// called from the producer goroutine.
func (c *Camera) Deliver(pix []byte, stride int, srcFmt surface.Format) error {
	fr := c.ring.AcquireWrite(c.width, c.height, c.format)
	if err := surface.Convert(c.width, c.height, srcFmt, pix, stride, fr.Format, fr.Pix, fr.Stride); err != nil {
		// The slot stays empty and is reused by the next write.
		return fmt.Errorf("capture: deliver: %w", err)
	}
	c.ring.Publish(fr)
	return nil
}

// Poll drives the handler: it reports errors, requests the frame surface
// once running, and copies the newest ready frame into it.
func (c *Camera) Poll(h Handler) {
	c.mu.Lock()
	status, msg, buffer := c.status, c.errMsg, c.buffer
	c.mu.Unlock()

	switch status {
	case StatusError:
		h.OnError(msg)
		return
	case StatusInit:
		return
	}

	if buffer == nil {
		buffer = h.InitFrame(c.width, c.height, c.format)
		if buffer == nil {
			return
		}
		c.mu.Lock()
		c.buffer = buffer
		c.mu.Unlock()
	}

	fr := c.ring.AcquireRead()
	if fr == nil {
		return
	}
	err := copyFrame(buffer, fr)
	size := fmt.Sprintf("%dx%d", fr.Width, fr.Height)
	c.ring.Release(fr)
	if err != nil {
		pixfilter.Logger().Warn("capture: copy frame", "err", err)
		return
	}

	c.mu.Lock()
	c.frameID++
	id := c.frameID
	c.mu.Unlock()

	pixfilter.Logger().Debug("capture: frame", "id", id, "size", size)
	h.OnFrame(id)
}

// Close drops the camera's reference to the frame surface.
func (c *Camera) Close() {
	c.mu.Lock()
	buffer := c.buffer
	c.buffer = nil
	c.mu.Unlock()
	if buffer != nil {
		buffer.DecRef()
	}
}

// copyFrame converts fr into dst, clipped to the smaller of the two.
func copyFrame(dst *surface.Surface, fr *Frame) error {
	w := min(dst.Width(), fr.Width)
	h := min(dst.Height(), fr.Height)
	var err error
	dst.Render(func(t *surface.RenderTarget) {
		err = surface.Convert(w, h, fr.Format, fr.Pix, fr.Stride, dst.Format(), t.Pix(), t.Stride)
	})
	return err
}
