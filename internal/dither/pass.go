package dither

import "github.com/deepteams/indexed/internal/histogram"

// Source is the pixel-mapping passes' view of one input layer; satisfied
// by the same shape internal/histogram.Source exposes.
type Source = histogram.Source

// Sink receives the per-pixel output of a pixel-mapping pass: a palette
// index plus an alpha byte (255 opaque, 0 transparent). Passes over
// non-alpha sources always write alpha=255.
type Sink interface {
	Set(x, y int, index, alpha uint8)
}

// Options configures one pixel-mapping pass (spec §4.8 "Common
// contract" / "Alpha handling").
type Options struct {
	DitherAlpha  bool
	Matrix       *Matrix
	ErrorFreedom int // 0 = high-bleed, 1 = low-bleed; meaningful only to the FS pass
}

// UsedCounter tracks spec §3's "Index-used counter": 256 64-bit counts,
// one per palette index.
type UsedCounter struct {
	counts [256]uint64
}

func (u *UsedCounter) Inc(index uint8) { u.counts[index]++ }
func (u *UsedCounter) Count(index int) uint64 {
	return u.counts[index]
}

// resolveAlpha applies spec §4.8's alpha rule, reporting whether the pixel
// is opaque. It writes nothing; when it returns false the caller should
// write alpha=0, index=0 and move to the next pixel.
func resolveAlpha(opts Options, hasAlpha bool, a uint8, x, y int) bool {
	if !hasAlpha {
		return true
	}
	if opts.DitherAlpha {
		thresh := opts.Matrix.At(x, y)
		return a >= thresh
	}
	return a > AlphaThreshold
}

// AlphaThreshold mirrors histogram.AlphaThreshold for the dither-alpha-off
// branch of the pixel-mapping passes.
const AlphaThreshold = histogram.AlphaThreshold
