// Package clip provides low-level saturation-arithmetic helpers used by
// the dither passes.
//
// A pre-computed 0..255 lookup table services the hot path every
// pixel-mapping pass shares: clamping an out-of-range intermediate sum
// back into sRGB byte range. Adapted from the teacher's VP8 clip-table
// pattern (precomputed table, offset-indexed for negative inputs), applied
// here to the indexed-color gamut clamps instead of loop-filter arithmetic.
package clip

// clip1 table covers the byte-range clamp used throughout the
// pixel-mapping passes (spec §4.8): inputs in [-255, 511] collapse to
// [0, 255], matching the extended range the fixed-ordered and FS passes
// can produce before clamping.
var clip1 [255 + 511 + 1]uint8

const clip1Offset = 255

func init() {
	for i := -255; i <= 511; i++ {
		v := i
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		clip1[clip1Offset+i] = uint8(v)
	}
}

// Byte clamps v to [0, 255], using the lookup table for the common
// extended range and falling back to branches outside it. This is the
// Go form of the source's CLAMP0255 macro used by the fixed-ordered
// dither pass's error-vector extrapolation.
func Byte(v int) uint8 {
	if v >= -255 && v <= 511 {
		return clip1[clip1Offset+v]
	}
	if v < 0 {
		return 0
	}
	return 255
}

// Int clamps v to [lo, hi].
func Int(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Int32 is Int for int32. Used for the FS passes' hard gamut clamp, whose
// bounds are the palette's own linear-space extrema rather than a fixed
// range (spec §4.8: "clamp each channel to the palette's linear gamut
// bounds").
func Int32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
