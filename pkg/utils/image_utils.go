package utils

import (
	"image"
	"math"
)

// NewOpaqueRGBA allocates a width×height RGBA image cleared to opaque black.
func NewOpaqueRGBA(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	ClearRGBA(img)
	return img
}

// ClearRGBA resets every pixel to opaque black.
// Seeds the first pixel and fills the rest by exponential copy.
func ClearRGBA(img *image.RGBA) {
	pix := img.Pix
	if len(pix) < 4 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = 0, 0, 0, 0xff
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// CopyRGBA copies src into dst. Both images must have identical bounds.
func CopyRGBA(dst, src *image.RGBA) {
	copy(dst.Pix, src.Pix)
}

// WeightLUT precomputes round(v*weight) for every 8-bit channel value.
//
// A weighted blend of a frame with a solid black overlay,
// frame = overlay*alpha + frame*(1-alpha), reduces to a per-channel lookup
// with weight = 1-alpha.
func WeightLUT(weight float64) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		v := math.RoundToEven(float64(i) * weight)
		switch {
		case v <= 0:
			lut[i] = 0
		case v >= 255:
			lut[i] = 255
		default:
			lut[i] = uint8(v)
		}
	}
	return lut
}

// ApplyLUT maps the RGB channels of every pixel through lut.
// Alpha is left untouched.
func ApplyLUT(img *image.RGBA, lut *[256]uint8) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = lut[pix[i+0]]
		pix[i+1] = lut[pix[i+1]]
		pix[i+2] = lut[pix[i+2]]
	}
}

// AddSaturate writes the per-channel saturating sum a+b into dst.
// All three images must have identical bounds; dst may alias a or b.
func AddSaturate(dst, a, b *image.RGBA) {
	dp, ap, bp := dst.Pix, a.Pix, b.Pix
	for i := 0; i+3 < len(dp); i += 4 {
		dp[i+0] = addChannel(ap[i+0], bp[i+0])
		dp[i+1] = addChannel(ap[i+1], bp[i+1])
		dp[i+2] = addChannel(ap[i+2], bp[i+2])
		dp[i+3] = 0xff
	}
}

// addChannel is addition with clamping
func addChannel(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// ScaleChannel multiplies an 8-bit channel by alpha and truncates toward zero,
// clamped to [0, 255].
func ScaleChannel(c uint8, alpha float64) uint8 {
	v := float64(c) * alpha
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
