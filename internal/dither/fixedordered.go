package dither

import (
	"github.com/deepteams/indexed/colorspace"
	"github.com/deepteams/indexed/internal/clip"
	"github.com/deepteams/indexed/internal/histogram"
	"github.com/deepteams/indexed/internal/invcmap"
)

// distp is the luma-weighted squared sRGB distance spec §9's design note
// confirms the source actually uses (DISTP, not the commented-out
// LIN_DISTP): 30*ΔR² + 59*ΔG² + 11*ΔB².
func distp(c1, c2 colorspace.RGB) int {
	dr := int(c1.R) - int(c2.R)
	dg := int(c1.G) - int(c2.G)
	db := int(c1.B) - int(c2.B)
	return 30*dr*dr + 59*dg*dg + 11*db*db
}

// FixedOrderedRGB implements spec §4.8's FIXED_ORDERED pass: the nearest
// match plus an error-vector extrapolation to a second candidate,
// probabilistically chosen per-pixel via the dither matrix.
func FixedOrderedRGB(cache *invcmap.Cache, palette []colorspace.RGB, precision int, src Source, sink Sink, opts Options, used *UsedCounter) {
	w, h := src.Width(), src.Height()
	hasAlpha := src.HasAlpha()
	offX, offY := src.OffsetX(), src.OffsetY()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.Pixel(x, y)
			gx, gy := x+offX, y+offY
			if !resolveAlpha(opts, hasAlpha, a, gx, gy) {
				sink.Set(x, y, 0, 0)
				continue
			}

			pix := rgbOf(r, g, b)
			pixval1 := lookupRGB(cache, precision, pix)
			color1 := palette[pixval1]

			pixval2 := pixval1
			if len(palette) > 2 {
				re := int(r) - int(color1.R)
				ge := int(g) - int(color1.G)
				be := int(b) - int(color1.B)
				rv, gv, bv := int(r)+re, int(g)+ge, int(b)+be

				if re != 0 || ge != 0 || be != 0 {
					for {
						cand := rgbOf(clip.Byte(rv), clip.Byte(gv), clip.Byte(bv))
						pixval2 = lookupRGB(cache, precision, cand)
						rv += re
						gv += ge
						bv += be
						outOfCube := rv > 255 || rv < 0 || gv > 255 || gv < 0 || bv > 255 || bv < 0
						if pixval2 != pixval1 || outOfCube {
							break
						}
					}
				}
			} else {
				pixval2 = (pixval1 + 1) % len(palette)
			}

			if pixval1 > pixval2 {
				pixval1, pixval2 = pixval2, pixval1
			}
			color1 = palette[pixval1]
			color2 := palette[pixval2]

			err1 := distp(color1, pix)
			err2 := distp(color2, pix)

			chosen := pixval1
			if err1 != 0 || err2 != 0 {
				proportion2 := (255 * err2) / (err1 + err2)
				dmval := int(opts.Matrix.At(gx, gy))
				if dmval > proportion2 {
					chosen = pixval2
				}
			}

			used.Inc(uint8(chosen))
			sink.Set(x, y, uint8(chosen), 255)
		}
	}
}

func lookupRGB(cache *invcmap.Cache, precision int, c colorspace.RGB) int {
	unshifted := histogram.RGBToUnshiftedLab(c)
	rc := histogram.Shift(unshifted.R, precision)
	gc := histogram.Shift(unshifted.G, precision)
	bc := histogram.Shift(unshifted.B, precision)
	return cache.Lookup(rc, gc, bc)
}
