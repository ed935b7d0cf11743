package dither

import (
	"github.com/deepteams/indexed/colorspace"
	"github.com/deepteams/indexed/internal/clip"
	"github.com/deepteams/indexed/internal/histogram"
	"github.com/deepteams/indexed/internal/invcmap"
)

// fsCoeffs are the four Floyd-Steinberg taps, sixteenths: right, down-left,
// down, down-right.
const (
	fsRight     = 7
	fsDownLeft  = 3
	fsDown      = 5
	fsDownRight = 1
)

// linGamut is the palette's linear-RGB bounding box, the hard clamp the
// FS pass applies to every corrected pixel (spec §4.8: "clamp each
// channel to the palette's own linear gamut bounds").
type linGamut struct {
	rlo, rhi, glo, ghi, blo, bhi int32
}

func computeLinGamut(palette []colorspace.RGB) linGamut {
	g := linGamut{rlo: 1 << 30, glo: 1 << 30, blo: 1 << 30}
	for _, c := range palette {
		lin := colorspace.SRGBToLinearU16(c)
		r, gg, b := int32(lin.R), int32(lin.G), int32(lin.B)
		if r < g.rlo {
			g.rlo = r
		}
		if r > g.rhi {
			g.rhi = r
		}
		if gg < g.glo {
			g.glo = gg
		}
		if gg > g.ghi {
			g.ghi = gg
		}
		if b < g.blo {
			g.blo = b
		}
		if b > g.bhi {
			g.bhi = b
		}
	}
	return g
}

// fsRow holds one row's carried-forward error, three channels, with a
// one-pixel pad on each side so the serpentine taps never need bounds
// checks.
type fsRow struct {
	r, g, b []int32
}

func newFSRow(width int) fsRow {
	n := width + 2
	return fsRow{r: make([]int32, n), g: make([]int32, n), b: make([]int32, n)}
}

// FloydSteinbergRGB implements spec §4.8's FLOYD_STEINBERG pass: linear-RGB
// 4-tap error diffusion in serpentine order, using two explicit
// ascending/descending loops rather than a signed step variable.
func FloydSteinbergRGB(cache *invcmap.Cache, palette []colorspace.RGB, precision int, src Source, sink Sink, opts Options, used *UsedCounter) {
	w, h := src.Width(), src.Height()
	hasAlpha := src.HasAlpha()
	offX, offY := src.OffsetX(), src.OffsetY()
	lowBleed := opts.ErrorFreedom != 0
	gamut := computeLinGamut(palette)

	linPalette := make([]colorspace.LinRGB, len(palette))
	for i, c := range palette {
		linPalette[i] = colorspace.SRGBToLinearU16(c)
	}

	cur := newFSRow(w)
	next := newFSRow(w)

	for y := 0; y < h; y++ {
		for i := range next.r {
			next.r[i], next.g[i], next.b[i] = 0, 0, 0
		}
		gy := y + offY

		if y%2 == 0 {
			for x := 0; x < w; x++ {
				fsStep(cache, linPalette, precision, src, sink, opts, used, hasAlpha, gamut, lowBleed, x, y, offX, gy, &cur, &next, 1)
			}
		} else {
			for x := w - 1; x >= 0; x-- {
				fsStep(cache, linPalette, precision, src, sink, opts, used, hasAlpha, gamut, lowBleed, x, y, offX, gy, &cur, &next, -1)
			}
		}

		cur, next = next, cur
	}
}

func fsStep(cache *invcmap.Cache, linPalette []colorspace.LinRGB, precision int, src Source, sink Sink, opts Options, used *UsedCounter, hasAlpha bool, gamut linGamut, lowBleed bool, x, y, offX, gy int, cur, next *fsRow, dir int) {
	r, g, b, a := src.Pixel(x, y)
	gx := x + offX
	if !resolveAlpha(opts, hasAlpha, a, gx, gy) {
		sink.Set(x, y, 0, 0)
		return
	}

	pad := x + 1
	lin := colorspace.SRGBToLinearU16(rgbOf(r, g, b))

	wantR := int32(lin.R) + limitError(lowBleed, cur.r[pad])
	wantG := int32(lin.G) + limitError(lowBleed, cur.g[pad])
	wantB := int32(lin.B) + limitError(lowBleed, cur.b[pad])

	wantR = clip.Int32(wantR, gamut.rlo, gamut.rhi)
	wantG = clip.Int32(wantG, gamut.glo, gamut.ghi)
	wantB = clip.Int32(wantB, gamut.blo, gamut.bhi)

	sought := colorspace.LinearU16ToSRGB(colorspace.LinRGB{
		R: uint16(wantR), G: uint16(wantG), B: uint16(wantB),
	})

	unshifted := histogram.RGBToUnshiftedLab(sought)
	rc := histogram.Shift(unshifted.R, precision)
	gc := histogram.Shift(unshifted.G, precision)
	bc := histogram.Shift(unshifted.B, precision)
	index := cache.Lookup(rc, gc, bc)
	used.Inc(uint8(index))
	sink.Set(x, y, uint8(index), 255)

	chosen := linPalette[index]
	errR := wantR - int32(chosen.R)
	errG := wantG - int32(chosen.G)
	errB := wantB - int32(chosen.B)

	diffuse(cur, next, pad, dir, errR, errG, errB)
}

func diffuse(cur, next *fsRow, pad, dir int, errR, errG, errB int32) {
	cur.r[pad+dir] += errR * fsRight / 16
	cur.g[pad+dir] += errG * fsRight / 16
	cur.b[pad+dir] += errB * fsRight / 16

	next.r[pad-dir] += errR * fsDownLeft / 16
	next.g[pad-dir] += errG * fsDownLeft / 16
	next.b[pad-dir] += errB * fsDownLeft / 16

	next.r[pad] += errR * fsDown / 16
	next.g[pad] += errG * fsDown / 16
	next.b[pad] += errB * fsDown / 16

	next.r[pad+dir] += errR * fsDownRight / 16
	next.g[pad+dir] += errG * fsDownRight / 16
	next.b[pad+dir] += errB * fsDownRight / 16
}
