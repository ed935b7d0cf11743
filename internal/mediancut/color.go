package mediancut

import (
	"github.com/deepteams/indexed/colorspace"
	"github.com/deepteams/indexed/internal/histogram"
)

// Histogram-coordinate affine constants mirroring internal/histogram's
// forward mapping, used here to invert it (spec §4.5 "Representative
// color": "convert back with lin_to_rgb").
const (
	lowA  = -86.181
	highA = 98.237
	lowB  = -107.858
	highB = 94.480
	lRat  = 2.55
)

var (
	aRat = 255.0 / (highA - lowA)
	bRat = 255.0 / (highB - lowB)
)

// ComputeColorRGB computes the pixel-weighted mean color of b in
// histogram space and converts it back to sRGB (spec §4.5). If the box
// contains no pixels (null or fully transparent image) it returns
// (0,0,0).
func ComputeColorRGB(h *histogram.RGB, b *Box) colorspace.RGB {
	var total, rTotal, gTotal, bTotal int64
	for r := b.Rmin; r <= b.Rmax; r++ {
		for g := b.Gmin; g <= b.Gmax; g++ {
			for bl := b.Bmin; bl <= b.Bmax; bl++ {
				f := int64(h.Count(r, g, bl))
				if f == 0 {
					continue
				}
				total += f
				rTotal += int64(r) * f
				gTotal += int64(g) * f
				bTotal += int64(bl) * f
			}
		}
	}
	if total == 0 {
		return colorspace.RGB{}
	}

	meanR := float64(rTotal) / float64(total)
	meanG := float64(gTotal) / float64(total)
	meanB := float64(bTotal) / float64(total)
	return histToSRGB(meanR, meanG, meanB, h.Dim())
}

// histToSRGB inverts internal/histogram's RGBToUnshiftedLab+Shift chain:
// given histogram-space coordinates at the given per-axis cell count, it
// recovers floating-point L*a*b* and converts to sRGB.
func histToSRGB(hr, hg, hb float64, dim int) colorspace.RGB {
	scale := 255.0 / float64(dim-1)
	ir := hr * scale
	ig := hg * scale
	ib := hb * scale

	l := ir / lRat
	a := ig/aRat + lowA
	bch := ib/bRat + lowB

	return colorspace.LabToSRGB(colorspace.Lab{L: l, A: a, B: bch})
}
