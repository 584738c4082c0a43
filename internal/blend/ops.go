package blend

// Over composites straight source s over straight destination d.
func Over(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	switch {
	case sa == 255 || da == 0:
		return sr, sg, sb, sa
	case sa == 0:
		return dr, dg, db, da
	}
	// dst weight = da*(255-sa)/255, scaled by 255 to keep precision
	dw := uint32(da) * uint32(255-sa)
	sw := uint32(sa) * 255
	outA := sw + dw // alpha * 255
	r = byte((uint32(sr)*sw + uint32(dr)*dw) / outA)
	g = byte((uint32(sg)*sw + uint32(dg)*dw) / outA)
	b = byte((uint32(sb)*sw + uint32(db)*dw) / outA)
	a = byte(div255(outA))
	return r, g, b, a
}

// Erase removes coverage sa from destination alpha da (destination-out).
func Erase(sa, da byte) byte {
	return MulDiv255(da, 255-sa)
}

// OverAlpha composites a coverage value over an alpha-only destination.
func OverAlpha(sa, da byte) byte {
	return sa + MulDiv255(da, 255-sa)
}

// Lerp moves d toward s by k/256, with k in [0,256].
func Lerp(d, s byte, k int) byte {
	return byte(int(d) + ((int(s)-int(d))*k)>>8)
}

// Tinted composites the color (tr,tg,tb) with coverage mask*ta/255 over d.
func Tinted(mask, tr, tg, tb, ta, dr, dg, db, da byte) (r, g, b, a byte) {
	return Over(tr, tg, tb, MulDiv255(mask, ta), dr, dg, db, da)
}

// TintedInner pulls the destination color toward (tr,tg,tb) where the mask
// is absent: weight is (255-mask)*ta/255. Destination alpha is kept.
func TintedInner(mask, tr, tg, tb, ta, dr, dg, db, da byte) (r, g, b, a byte) {
	k := Alpha256(MulDiv255(255-mask, ta))
	return Lerp(dr, tr, k), Lerp(dg, tg, k), Lerp(db, tb, k), da
}
