// Package blend provides the 8-bit integer arithmetic behind surface
// blitting: exact division by 255, premultiplication, and the straight-alpha
// compositing operators used by the blit modes.
//
// All operators take and return straight (non-premultiplied) channels.
//
// References:
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
package blend

// div255 divides x by 255 exactly for 0 <= x <= 65535+255.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8
func div255(x uint32) uint32 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// MulDiv255 returns a*b/255, truncated.
func MulDiv255(a, b byte) byte {
	return byte(div255(uint32(a) * uint32(b)))
}

// Premultiply scales channel c by alpha a, rounding to nearest.
func Premultiply(c, a byte) byte {
	return byte((uint32(c)*uint32(a) + 127) / 255)
}

// Unpremultiply recovers a straight channel from a premultiplied one.
// Fully transparent pixels yield 0.
func Unpremultiply(c, a byte) byte {
	if a == 0 {
		return 0
	}
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

// Alpha256 maps an 8-bit alpha to the [0,256] range so that 255 becomes a
// full-weight 256 for >>8 arithmetic.
func Alpha256(a byte) int {
	return int(a) + int(a>>7)
}
