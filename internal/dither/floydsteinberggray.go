package dither

import (
	"github.com/deepteams/indexed/colorspace"
	"github.com/deepteams/indexed/internal/clip"
	"github.com/deepteams/indexed/internal/invcmap"
)

// grayToLinearU16 and linearU16ToGray route a single gray byte through the
// RGB gamma tables on the diagonal (R=G=B), since colorspace only exposes
// the three-channel conversion.
func grayToLinearU16(y uint8) uint16 {
	return colorspace.SRGBToLinearU16(colorspace.RGB{R: y, G: y, B: y}).R
}

func linearU16ToGray(v uint16) uint8 {
	return colorspace.LinearU16ToSRGB(colorspace.LinRGB{R: v, G: v, B: v}).R
}

func computeLinGamutGray(palette []uint8) (lo, hi int32) {
	lo, hi = 1<<30, 0
	for _, y := range palette {
		lin := int32(grayToLinearU16(y))
		if lin < lo {
			lo = lin
		}
		if lin > hi {
			hi = lin
		}
	}
	return lo, hi
}

// FloydSteinbergGray is FloydSteinbergRGB's single-channel analogue.
func FloydSteinbergGray(cache *invcmap.Gray, palette []uint8, src Source, sink Sink, opts Options, used *UsedCounter) {
	w, h := src.Width(), src.Height()
	hasAlpha := src.HasAlpha()
	offX, offY := src.OffsetX(), src.OffsetY()
	lowBleed := opts.ErrorFreedom != 0
	lo, hi := computeLinGamutGray(palette)

	linPalette := make([]uint16, len(palette))
	for i, y := range palette {
		linPalette[i] = grayToLinearU16(y)
	}

	n := w + 2
	cur := make([]int32, n)
	next := make([]int32, n)

	for y := 0; y < h; y++ {
		for i := range next {
			next[i] = 0
		}
		gy := y + offY

		step := func(x, dir int) {
			y8, _, _, a := src.Pixel(x, y)
			gx := x + offX
			if !resolveAlpha(opts, hasAlpha, a, gx, gy) {
				sink.Set(x, y, 0, 0)
				return
			}

			pad := x + 1
			lin := int32(grayToLinearU16(y8))
			want := lin + limitError(lowBleed, cur[pad])
			want = clip.Int32(want, lo, hi)

			soughtByte := linearU16ToGray(uint16(want))
			index := cache.Lookup(int(soughtByte))
			used.Inc(uint8(index))
			sink.Set(x, y, uint8(index), 255)

			errv := want - int32(linPalette[index])
			cur[pad+dir] += errv * fsRight / 16
			next[pad-dir] += errv * fsDownLeft / 16
			next[pad] += errv * fsDown / 16
			next[pad+dir] += errv * fsDownRight / 16
		}

		if y%2 == 0 {
			for x := 0; x < w; x++ {
				step(x, 1)
			}
		} else {
			for x := w - 1; x >= 0; x-- {
				step(x, -1)
			}
		}

		cur, next = next, cur
	}
}
