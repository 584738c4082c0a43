// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package capture moves frames from a capture device into surfaces.
//
// A device thread writes frames into a Ring of three slots. The consumer
// calls Camera.Poll from its own loop; Poll copies the newest finished frame
// into a surface supplied by a Handler and notifies it.
//
//	cam := capture.NewCamera(640, 480, surface.FormatBGRA)
//	go device.Run(func(pix []byte, stride int) {
//	    _ = cam.Deliver(pix, stride, surface.FormatRGBA8)
//	})
//	cam.Start()
//	for range ticker.C {
//	    cam.Poll(handler)
//	}
package capture
