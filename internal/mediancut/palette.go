package mediancut

import (
	"sort"

	"github.com/deepteams/indexed/colorspace"
)

// SnapToBlackAndWhite overwrites the palette entries nearest pure white
// and pure black with exact (255,255,255)/(0,0,0), when the source image
// contained that exact color and the nearest entry is within 128 squared
// sRGB units (spec §4.6 "snap-to-BW"). Never applied to 2-color palettes.
func SnapToBlackAndWhite(palette []colorspace.RGB, hadBlack, hadWhite bool) {
	if len(palette) <= 2 {
		return
	}

	const threshold = 128 * 128
	whitest, blackest := -1, -1
	whiteDist := int64(255*255) * 3
	blackDist := int64(255*255) * 3

	pow2 := func(v int) int64 { return int64(v) * int64(v) }

	for i, c := range palette {
		wd := pow2(int(c.R)-255) + pow2(int(c.G)-255) + pow2(int(c.B)-255)
		if wd < whiteDist {
			whiteDist = wd
			whitest = i
		}
		bd := pow2(int(c.R)) + pow2(int(c.G)) + pow2(int(c.B))
		if bd < blackDist {
			blackDist = bd
			blackest = i
		}
	}

	if hadWhite && whitest >= 0 && whiteDist < threshold {
		palette[whitest] = colorspace.RGB{R: 255, G: 255, B: 255}
	}
	if hadBlack && blackest >= 0 && blackDist < threshold {
		palette[blackest] = colorspace.RGB{R: 0, G: 0, B: 0}
	}
}

// luminance is the 0.299R + 0.587G + 0.114B weighting spec §4.6 sorts the
// final palette by.
func luminance(c colorspace.RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// SortByLuminance orders palette ascending by luminance, per spec §4.6.
func SortByLuminance(palette []colorspace.RGB) {
	sort.SliceStable(palette, func(i, j int) bool {
		return luminance(palette[i]) < luminance(palette[j])
	})
}

// MonoPalette is the fixed 2-entry MONO special palette (spec §4.6).
func MonoPalette() []colorspace.RGB {
	return []colorspace.RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
	}
}

// webLevels are the six per-channel intensities of the web-safe cube.
var webLevels = [6]uint8{0, 51, 102, 153, 204, 255}

// WebPalette is the 216-entry web-safe cube special palette (spec §4.6),
// generated from the standard six-level-per-channel convention rather
// than a literal table.
func WebPalette() []colorspace.RGB {
	palette := make([]colorspace.RGB, 0, 216)
	for _, r := range webLevels {
		for _, g := range webLevels {
			for _, b := range webLevels {
				palette = append(palette, colorspace.RGB{R: r, G: g, B: b})
			}
		}
	}
	return palette
}

// CustomPalette truncates a caller-supplied palette to at most 256
// entries (spec §4.6 "CUSTOM").
func CustomPalette(colors []colorspace.RGB) []colorspace.RGB {
	if len(colors) > 256 {
		return append([]colorspace.RGB(nil), colors[:256]...)
	}
	return append([]colorspace.RGB(nil), colors...)
}
