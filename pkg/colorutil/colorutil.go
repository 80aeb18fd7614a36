// Package colorutil provides shared color utilities for the tracking pipeline.
package colorutil

import (
	"math"
)

// RGB is an 8-bit-per-channel color in RGB order.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}

// HSV returns the color in OpenCV HSV convention.
func (c RGB) HSV() (h, s, v float64) {
	return RGBToHSV(float64(c.R), float64(c.G), float64(c.B))
}

// HueWindow derives the accepted hue half-window from a raw tolerance value
// (0-255 control units). Hue spans only 0-180 in OpenCV terms, so the window
// is a quarter of the tolerance, never less than one step.
func HueWindow(tolerance int) float64 {
	w := tolerance / 4
	if w < 1 {
		w = 1
	}
	return float64(w)
}

// HueBounds returns the lower and upper hue bounds for a target hue and raw
// tolerance, clamped to OpenCV's valid hue range [0, 179].
func HueBounds(hue float64, tolerance int) (lower, upper float64) {
	w := HueWindow(tolerance)
	lower = math.Max(0, hue-w)
	upper = math.Min(179, hue+w)
	return lower, upper
}
