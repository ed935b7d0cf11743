package main

import (
	"image"
	"image/color"

	"github.com/deepteams/indexed"
	"github.com/deepteams/indexed/colorspace"
)

// imageLayer adapts a single image.Image to indexed.LayerHandle. It is
// never a text layer: gimpconvert has no concept of GIMP text layers, so
// IsTextLayer always reports false and DitherTextLayers is moot for this
// host.
type imageLayer struct {
	src      image.Image
	bounds   image.Rectangle
	format   indexed.PixelFormat
	gray     bool
	hasAlpha bool

	// out holds the produced index/alpha planes until Paletted is called.
	out   []uint8
	alpha []uint8
}

func newImageLayer(src image.Image, gray, hasAlpha bool) *imageLayer {
	b := src.Bounds()
	format := indexed.FormatSRGB8
	switch {
	case gray && hasAlpha:
		format = indexed.FormatGray8Alpha
	case gray:
		format = indexed.FormatGray8
	case hasAlpha:
		format = indexed.FormatSRGB8Alpha
	}
	w, h := b.Dx(), b.Dy()
	return &imageLayer{
		src:      src,
		bounds:   b,
		format:   format,
		gray:     gray,
		hasAlpha: hasAlpha,
		out:      make([]uint8, w*h),
		alpha:    make([]uint8, w*h),
	}
}

func (l *imageLayer) Width() int                  { return l.bounds.Dx() }
func (l *imageLayer) Height() int                 { return l.bounds.Dy() }
func (l *imageLayer) OffsetX() int                { return 0 }
func (l *imageLayer) OffsetY() int                { return 0 }
func (l *imageLayer) Format() indexed.PixelFormat { return l.format }
func (l *imageLayer) IsTextLayer() bool           { return false }

func (l *imageLayer) ReadPixel(x, y int) (r, g, b, a uint8) {
	c := color.NRGBAModel.Convert(l.src.At(l.bounds.Min.X+x, l.bounds.Min.Y+y)).(color.NRGBA)
	if l.gray {
		y := color.GrayModel.Convert(c).(color.Gray).Y
		return y, 0, 0, c.A
	}
	return c.R, c.G, c.B, c.A
}

func (l *imageLayer) WriteIndexedPixel(x, y int, index, alpha uint8) {
	i := y*l.bounds.Dx() + x
	l.out[i] = index
	l.alpha[i] = alpha
}

// Paletted renders the produced indices into a standard library
// image.Paletted using pal, the shared palette Convert returned.
func (l *imageLayer) Paletted(pal []colorspace.RGB) *image.Paletted {
	colors := make(color.Palette, len(pal))
	for i, c := range pal {
		colors[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	w, h := l.bounds.Dx(), l.bounds.Dy()
	img := image.NewPaletted(image.Rect(0, 0, w, h), colors)
	copy(img.Pix, l.out)
	return img
}
