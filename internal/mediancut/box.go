// Package mediancut implements the recursive median-cut palette builder
// described in spec §4.4: a list of axis-aligned boxes in histogram
// space, repeatedly split along the axis with greatest weighted error
// until the desired color count is reached or no box remains splittable.
//
// Grounded in original_source/app/core/gimpimage-convert-indexed.c's
// update_box_rgb/update_box_gray, find_split_candidate/find_biggest_volume,
// and median_cut_rgb/median_cut_gray.
package mediancut

import "github.com/deepteams/indexed/internal/histogram"

// Axis scale constants, shared with package histogram's distance scales
// (spec §3 Box invariants): "volume = (ΔR·sR)² + (ΔG·sG)² + (ΔB·sB)²".
const (
	scaleR = histogram.ScaleR
	scaleG = histogram.ScaleG
	scaleB = histogram.ScaleB
)

// Axis identifies a histogram dimension a box can be split along.
type Axis int

const (
	AxisUndef Axis = iota
	AxisRed
	AxisGreen
	AxisBlue
)

// Box is one axis-aligned region of RGB histogram space, per spec §3's
// Box entity.
type Box struct {
	Rmin, Rmax, Gmin, Gmax, Bmin, Bmax int

	volume     int64
	colorCount int64

	rerror, gerror, berror int64

	splitR, splitG, splitB int
}

// NewRootBox returns a box spanning the full histogram at the given
// per-axis cell count (1 << precision).
func NewRootBox(dim int) *Box {
	return &Box{Rmax: dim - 1, Gmax: dim - 1, Bmax: dim - 1}
}

// Volume returns the box's scaled 2-norm volume (0 once shrunk to an
// unsplittable point).
func (b *Box) Volume() int64 { return b.volume }

// ColorCount returns the number of distinct nonzero histogram cells
// inside the box's (shrunk) bounds.
func (b *Box) ColorCount() int64 { return b.colorCount }

// Update shrinks b's bounds to the smallest volume enclosing every
// nonzero histogram cell, then recomputes volume, population and the
// per-axis weighted error (spec §4.4 "Box statistics (update)").
func (b *Box) Update(h *histogram.RGB) {
	shrinkRGB(h, b)

	dist0 := int64(b.Rmax - b.Rmin)
	dist1 := int64(b.Gmax - b.Gmin)
	dist2 := int64(b.Bmax - b.Bmin)
	d0 := dist0 * scaleR
	d1 := dist1 * scaleG
	d2 := dist2 * scaleB
	b.volume = d0*d0 + d1*d1 + d2*d2

	b.colorCount, b.rerror, b.gerror, b.berror = computeBoxError(h, b)

	b.splitR = b.Rmin + (b.Rmax-b.Rmin+1)/2
	b.splitG = b.Gmin + (b.Gmax-b.Gmin+1)/2
	b.splitB = b.Bmin + (b.Bmax-b.Bmin+1)/2

	if dist0 > 0 && dist1 > 0 && dist2 > 0 {
		adjustSplitForLongestAxis(b, dist0, dist1, dist2)
	}

	if b.splitR == b.Rmax {
		b.splitR = b.Rmin
	}
	if b.splitG == b.Gmax {
		b.splitG = b.Gmin
	}
	if b.splitB == b.Bmax {
		b.splitB = b.Bmin
	}
}

// adjustSplitForLongestAxis implements the ratio-biased split-point shift
// of spec §4.4: "If all three extents are positive and the ratio of
// longest to second-longest axis exceeds two ... shift the longest
// axis's split toward one end by ratio/2."
func adjustSplitForLongestAxis(b *Box, dist0, dist1, dist2 int64) {
	var longestAxis Axis
	var longest, secondLongest int64

	consider := func(d int64, axis Axis) {
		if d >= longest {
			secondLongest = longest
			longest = d
			longestAxis = axis
		} else if d >= secondLongest {
			secondLongest = d
		}
	}
	consider(dist0, AxisRed)
	consider(dist1, AxisGreen)
	consider(dist2, AxisBlue)

	if secondLongest == 0 {
		secondLongest = 1
	}

	ratio := (longest + secondLongest/2) / secondLongest
	if ratio <= 2 {
		return
	}

	switch longestAxis {
	case AxisRed:
		if v := b.Rmin + int((int64(b.Rmax-b.Rmin)+ratio/2)/ratio); v < b.Rmax {
			b.splitR = v
		}
	case AxisGreen:
		if v := b.Gmin + int((int64(b.Gmax-b.Gmin)+ratio/2)/ratio); v < b.Gmax {
			b.splitG = v
		}
	case AxisBlue:
		if v := b.Bmin + int((int64(b.Bmax-b.Bmin)+ratio/2)/ratio); v < b.Bmax {
			b.splitB = v
		}
	}
}

func shrinkRGB(h *histogram.RGB, b *Box) {
	if b.Rmax > b.Rmin {
	findRmin:
		for r := b.Rmin; r <= b.Rmax; r++ {
			for g := b.Gmin; g <= b.Gmax; g++ {
				for bl := b.Bmin; bl <= b.Bmax; bl++ {
					if h.Count(r, g, bl) != 0 {
						b.Rmin = r
						break findRmin
					}
				}
			}
		}
	}
	if b.Rmax > b.Rmin {
	findRmax:
		for r := b.Rmax; r >= b.Rmin; r-- {
			for g := b.Gmin; g <= b.Gmax; g++ {
				for bl := b.Bmin; bl <= b.Bmax; bl++ {
					if h.Count(r, g, bl) != 0 {
						b.Rmax = r
						break findRmax
					}
				}
			}
		}
	}
	if b.Gmax > b.Gmin {
	findGmin:
		for g := b.Gmin; g <= b.Gmax; g++ {
			for r := b.Rmin; r <= b.Rmax; r++ {
				for bl := b.Bmin; bl <= b.Bmax; bl++ {
					if h.Count(r, g, bl) != 0 {
						b.Gmin = g
						break findGmin
					}
				}
			}
		}
	}
	if b.Gmax > b.Gmin {
	findGmax:
		for g := b.Gmax; g >= b.Gmin; g-- {
			for r := b.Rmin; r <= b.Rmax; r++ {
				for bl := b.Bmin; bl <= b.Bmax; bl++ {
					if h.Count(r, g, bl) != 0 {
						b.Gmax = g
						break findGmax
					}
				}
			}
		}
	}
	if b.Bmax > b.Bmin {
	findBmin:
		for bl := b.Bmin; bl <= b.Bmax; bl++ {
			for r := b.Rmin; r <= b.Rmax; r++ {
				for g := b.Gmin; g <= b.Gmax; g++ {
					if h.Count(r, g, bl) != 0 {
						b.Bmin = bl
						break findBmin
					}
				}
			}
		}
	}
	if b.Bmax > b.Bmin {
	findBmax:
		for bl := b.Bmax; bl >= b.Bmin; bl-- {
			for r := b.Rmin; r <= b.Rmax; r++ {
				for g := b.Gmin; g <= b.Gmax; g++ {
					if h.Count(r, g, bl) != 0 {
						b.Bmax = bl
						break findBmax
					}
				}
			}
		}
	}
}

// computeBoxError walks every nonzero cell in b's (already-shrunk) bounds,
// counting the occupied cells and accumulating the pixel-weighted squared
// deviation of each cell's representative color from the box's own mean
// color (spec §4.4 step 3).
func computeBoxError(h *histogram.RGB, b *Box) (count, rerr, gerr, berr int64) {
	var total, rTotal, gTotal, bTotal int64
	for r := b.Rmin; r <= b.Rmax; r++ {
		for g := b.Gmin; g <= b.Gmax; g++ {
			for bl := b.Bmin; bl <= b.Bmax; bl++ {
				f := int64(h.Count(r, g, bl))
				if f == 0 {
					continue
				}
				count++
				total += f
				rTotal += int64(r) * f
				gTotal += int64(g) * f
				bTotal += int64(bl) * f
			}
		}
	}
	if total == 0 {
		return 0, 0, 0, 0
	}
	meanR := float64(rTotal) / float64(total)
	meanG := float64(gTotal) / float64(total)
	meanB := float64(bTotal) / float64(total)

	for r := b.Rmin; r <= b.Rmax; r++ {
		for g := b.Gmin; g <= b.Gmax; g++ {
			for bl := b.Bmin; bl <= b.Bmax; bl++ {
				f := int64(h.Count(r, g, bl))
				if f == 0 {
					continue
				}
				re := float64(r) - meanR
				ge := float64(g) - meanG
				be := float64(bl) - meanB
				rerr += int64(f * int64(re*re))
				gerr += int64(f * int64(ge*ge))
				berr += int64(f * int64(be*be))
			}
		}
	}
	return count, rerr, gerr, berr
}
