package dither

import "github.com/deepteams/indexed/colorspace"

func rgbOf(r, g, b uint8) colorspace.RGB {
	return colorspace.RGB{R: r, G: g, B: b}
}
