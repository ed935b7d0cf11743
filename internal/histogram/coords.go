// Package histogram implements the dense 3-D (or 1-D, grayscale) color
// histogram described in spec §3 "Histogram cell" / "Histogram", the
// coordinate mapping of spec §4.2, and the scanning builder of spec §4.3.
//
// Grounded in original_source/app/core/gimpimage-convert-indexed.c's
// rgb_to_unshifted_lin/RSDF/GSDF/BSDF macros and generate_histogram_rgb.
package histogram

import (
	"math"

	"github.com/deepteams/indexed/colorspace"
)

// Axis distance scales from spec §4.2 / §3 Box invariants: these weight
// the non-uniform L*a*b* packing back to a near-perceptual metric.
const (
	ScaleR = 13 // L* axis
	ScaleG = 24 // a* axis
	ScaleB = 26 // b* axis
)

// Affine constants for the a*/b* axis mapping (spec §4.2).
const (
	lowA  = -86.181
	highA = 98.237
	lowB  = -107.858
	highB = 94.480
	lRat  = 2.55
)

var (
	aRat = 255.0 / (highA - lowA)
	bRat = 255.0 / (highB - lowB)
)

// Coord is an (R,G,B) triple in unshifted (8-bit-precision) L*a*b*
// histogram-bin coordinates, 0..255 each.
type Coord struct {
	R, G, B int
}

// RGBToUnshiftedLab maps an sRGB byte triple to unshifted L*a*b* histogram
// coordinates via the fixed affine constants of spec §4.2:
//
//	L' = clamp(round(L*2.55), 0, 255)
//	a' = clamp(round((a-LOW_A)*255/(HIGH_A-LOW_A)), 0, 255)
//	b' = clamp(round((b-LOW_B)*255/(HIGH_B-LOW_B)), 0, 255)
func RGBToUnshiftedLab(c colorspace.RGB) Coord {
	lab := colorspace.SRGBToLab(c)
	return Coord{
		R: clampRound(lab.L * lRat),
		G: clampRound((lab.A - lowA) * aRat),
		B: clampRound((lab.B - lowB) * bRat),
	}
}

func clampRound(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return r
}

// Shift converts an unshifted (8-bit) histogram coordinate down to the
// histogram's configured precision, per spec §4.2: "When the histogram has
// fewer than 256 bins per axis, coordinates are right-shifted by
// 8-precision."
func Shift(v, precision int) int {
	return v >> uint(8-precision)
}
