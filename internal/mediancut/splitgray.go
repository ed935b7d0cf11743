package mediancut

import "github.com/deepteams/indexed/internal/histogram"

// Gray is the 1-D analogue of Box used by the grayscale median-cut
// variant (spec §4.4 "Grayscale variant").
type Gray struct {
	Rmin, Rmax int
	volume     int64
	colorCount int64
}

// NewRootGray returns a box spanning the full grayscale histogram.
func NewRootGray() *Gray {
	return &Gray{Rmax: 255}
}

func (b *Gray) Volume() int64     { return b.volume }
func (b *Gray) ColorCount() int64 { return b.colorCount }

// Update shrinks b to the occupied range and recomputes its 2-norm
// volume and population, per update_box_gray.
func (b *Gray) Update(h *histogram.Gray) {
	min, max := b.Rmin, b.Rmax
	if max > min {
		for i := min; i <= max; i++ {
			if h.Count(i) != 0 {
				min = i
				break
			}
		}
	}
	if max > min {
		for i := max; i >= min; i-- {
			if h.Count(i) != 0 {
				max = i
				break
			}
		}
	}
	b.Rmin, b.Rmax = min, max

	dist := int64(max - min)
	b.volume = dist * dist

	var count int64
	for i := min; i <= max; i++ {
		if h.Count(i) != 0 {
			count++
		}
	}
	b.colorCount = count
}

// FindBiggestVolumeGray returns the splittable box with the largest
// volume, or nil if none remain (spec §4.4 "Grayscale variant": "selects
// the largest-volume box rather than the error-weighted axis").
func FindBiggestVolumeGray(boxes []*Gray) *Gray {
	var which *Gray
	var maxVol int64
	for _, b := range boxes {
		if b.volume > maxVol {
			which = b
			maxVol = b.volume
		}
	}
	return which
}

// MedianCutGray runs the grayscale median-cut loop until desired boxes
// exist or none remain splittable.
func MedianCutGray(h *histogram.Gray, desired int) []*Gray {
	root := NewRootGray()
	root.Update(h)
	boxes := []*Gray{root}

	for len(boxes) < desired {
		b1 := FindBiggestVolumeGray(boxes)
		if b1 == nil {
			break
		}
		b2 := &Gray{Rmin: b1.Rmin, Rmax: b1.Rmax}
		lb := (b1.Rmax + b1.Rmin) / 2
		b1.Rmax = lb
		b2.Rmin = lb + 1

		b1.Update(h)
		b2.Update(h)
		boxes = append(boxes, b2)
	}
	return boxes
}

// ComputeColorGray computes the pixel-weighted mean gray value of b, per
// compute_color_gray. Returns 0 if the box is empty (null/fully
// transparent image).
func ComputeColorGray(h *histogram.Gray, b *Gray) uint8 {
	var total, gtotal int64
	for i := b.Rmin; i <= b.Rmax; i++ {
		c := int64(h.Count(i))
		if c == 0 {
			continue
		}
		total += c
		gtotal += int64(i) * c
	}
	if total == 0 {
		return 0
	}
	return uint8((gtotal + total/2) / total)
}
