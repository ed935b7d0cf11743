package dither

import "github.com/deepteams/indexed/colorspace"

// NodestructRGB implements spec §4.8's NODESTRUCT pass: every pixel must
// already be an exact palette color (the caller is expected to have built
// the palette from the source's own exact colors via CUSTOM or the
// exact-color-list path). A pixel with no exact match is a programming
// error in the caller, not a runtime condition to recover from.
func NodestructRGB(palette []colorspace.RGB, src Source, sink Sink, opts Options, used *UsedCounter) {
	index := make(map[colorspace.RGB]int, len(palette))
	for i, c := range palette {
		index[c] = i
	}

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

			idx, ok := index[rgbOf(r, g, b)]
			if !ok {
				panic("dither: NODESTRUCT pass encountered a pixel with no exact palette match")
			}
			used.Inc(uint8(idx))
			sink.Set(x, y, uint8(idx), 255)
		}
	}
}

// NodestructGray is NodestructRGB's grayscale analogue.
func NodestructGray(palette []uint8, src Source, sink Sink, opts Options, used *UsedCounter) {
	index := make(map[uint8]int, len(palette))
	for i, v := range palette {
		index[v] = i
	}

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

			idx, ok := index[y8]
			if !ok {
				panic("dither: NODESTRUCT pass encountered a pixel with no exact palette match")
			}
			used.Inc(uint8(idx))
			sink.Set(x, y, uint8(idx), 255)
		}
	}
}
