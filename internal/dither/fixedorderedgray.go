package dither

import (
	"github.com/deepteams/indexed/internal/clip"
	"github.com/deepteams/indexed/internal/invcmap"
)

// FixedOrderedGray is FixedOrderedRGB's grayscale analogue: the distance
// metric collapses to plain squared difference since there is only one
// channel to weight.
func FixedOrderedGray(cache *invcmap.Gray, palette []uint8, src Source, sink Sink, opts Options, used *UsedCounter) {
	w, h := src.Width(), src.Height()
	hasAlpha := src.HasAlpha()
	offX, offY := src.OffsetX(), src.OffsetY()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			y8, _, _, a := src.Pixel(x, y)
			gx, gy := x+offX, y+offY
			if !resolveAlpha(opts, hasAlpha, a, gx, gy) {
				sink.Set(x, y, 0, 0)
				continue
			}

			pixval1 := cache.Lookup(int(y8))
			color1 := palette[pixval1]

			pixval2 := pixval1
			if len(palette) > 2 {
				e := int(y8) - int(color1)
				v := int(y8) + e
				if e != 0 {
					for {
						pixval2 = cache.Lookup(int(clip.Byte(v)))
						v += e
						if pixval2 != pixval1 || v > 255 || v < 0 {
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

			d1 := int(y8) - int(color1)
			d2 := int(y8) - int(color2)
			err1 := d1 * d1
			err2 := d2 * d2

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
