// Package indexed converts continuous-tone RGB or grayscale image layers
// into a shared palette of at most 256 colors plus a per-layer index
// buffer, optionally applying ordered or error-diffusion dithering.
//
// The core pipeline is a perceptually-weighted 3-D color histogram in
// CIE L*a*b* space, a recursive median-cut palette builder, an inverse
// color-map cache for nearest-neighbor lookup during pixel mapping, and
// several pixel-mapping passes culminating in an optional duplicate-entry
// remapper.
//
// Basic usage:
//
//	palette, err := indexed.Convert(indexed.Options{
//		PaletteMode: indexed.PaletteGenerate,
//		MaxColors:   64,
//		Dither:      indexed.DitherFloydSteinberg,
//	}, []indexed.LayerHandle{layer}, nil)
//
// Convert writes indices (and alpha, for layers that carry it) back
// through each LayerHandle's WriteIndexedPixel method; the returned
// palette is the single 3*N-byte RGB table shared by every layer.
package indexed
