package dither

import (
	"github.com/deepteams/indexed/internal/histogram"
	"github.com/deepteams/indexed/internal/invcmap"
)

// NoDitherRGB maps every pixel to the nearest palette entry with no error
// diffusion or ordering (spec §4.8 "NO_DITHER (RGB)").
func NoDitherRGB(cache *invcmap.Cache, precision int, src Source, sink Sink, opts Options, used *UsedCounter) {
	w, h := src.Width(), src.Height()
	hasAlpha := src.HasAlpha()
	offX, offY := src.OffsetX(), src.OffsetY()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.Pixel(x, y)
			if !resolveAlpha(opts, hasAlpha, a, x+offX, y+offY) {
				sink.Set(x, y, 0, 0)
				continue
			}

			unshifted := histogram.RGBToUnshiftedLab(rgbOf(r, g, b))
			rc := histogram.Shift(unshifted.R, precision)
			gc := histogram.Shift(unshifted.G, precision)
			bc := histogram.Shift(unshifted.B, precision)

			index := cache.Lookup(rc, gc, bc)
			used.Inc(uint8(index))
			sink.Set(x, y, uint8(index), 255)
		}
	}
}

// NoDitherGray is NoDitherRGB's grayscale analogue.
func NoDitherGray(cache *invcmap.Gray, src Source, sink Sink, opts Options, used *UsedCounter) {
	w, h := src.Width(), src.Height()
	hasAlpha := src.HasAlpha()
	offX, offY := src.OffsetX(), src.OffsetY()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			y8, _, _, a := src.Pixel(x, y)
			if !resolveAlpha(opts, hasAlpha, a, x+offX, y+offY) {
				sink.Set(x, y, 0, 0)
				continue
			}
			index := cache.Lookup(int(y8))
			used.Inc(uint8(index))
			sink.Set(x, y, uint8(index), 255)
		}
	}
}
