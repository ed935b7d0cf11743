package mediancut

import "github.com/deepteams/indexed/internal/histogram"

// biasNumber and biasFactor are the fixed constants the L-split bias
// ramp uses when the final palette is small (spec §4.4 "Split candidate
// selection": "Lbias = 2.66·(3−numboxes)/2 when ... ≤16 and numboxes≤2").
const (
	biasNumber = 2
	biasFactor = 2.66
)

// lBias returns the weighting applied to the red/L* axis when ranking
// split candidates. Below 16 desired colors the first couple of splits
// are nudged toward the L* axis; beyond that, or once enough boxes
// exist, the bias is neutral.
func lBias(numBoxes, desiredColors int) float64 {
	if desiredColors > 16 {
		return 1.0
	}
	if numBoxes > biasNumber {
		return 1.0
	}
	return (float64(biasNumber+1) - float64(numBoxes)) / (float64(biasNumber) / biasFactor)
}

// FindSplitCandidate scans boxes for the one with the greatest scaled
// weighted error along its best axis (spec §4.4 "Split candidate
// selection"). Returns nil, AxisUndef when no splittable box remains.
func FindSplitCandidate(boxes []*Box, desiredColors int) (*Box, Axis) {
	var which *Box
	var axis Axis = AxisUndef
	var maxc float64

	bias := lBias(len(boxes), desiredColors)

	for _, b := range boxes {
		if b.volume <= 0 {
			continue
		}
		rpe := bias * float64(b.rerror) * scaleR * scaleR
		gpe := float64(b.gerror) * scaleG * scaleG
		bpe := float64(b.berror) * scaleB * scaleB

		if rpe > maxc && b.Rmin < b.Rmax {
			which, axis, maxc = b, AxisRed, rpe
		}
		if gpe > maxc && b.Gmin < b.Gmax {
			which, axis, maxc = b, AxisGreen, gpe
		}
		if bpe > maxc && b.Bmin < b.Bmax {
			which, axis, maxc = b, AxisBlue, bpe
		}
	}
	return which, axis
}

// Split divides parent along axis at its precomputed split point,
// returning the new (upper) box. Both halves are left with stale
// statistics; the caller must call Update on each. A split point outside
// [min, max-1] on the chosen axis indicates corrupted state and panics.
func Split(parent *Box, axis Axis) *Box {
	child := &Box{
		Rmin: parent.Rmin, Rmax: parent.Rmax,
		Gmin: parent.Gmin, Gmax: parent.Gmax,
		Bmin: parent.Bmin, Bmax: parent.Bmax,
	}
	switch axis {
	case AxisRed:
		lb := parent.splitR
		if lb < parent.Rmin || lb >= parent.Rmax {
			panic("mediancut: split point outside box bounds")
		}
		parent.Rmax = lb
		child.Rmin = lb + 1
	case AxisGreen:
		lb := parent.splitG
		if lb < parent.Gmin || lb >= parent.Gmax {
			panic("mediancut: split point outside box bounds")
		}
		parent.Gmax = lb
		child.Gmin = lb + 1
	case AxisBlue:
		lb := parent.splitB
		if lb < parent.Bmin || lb >= parent.Bmax {
			panic("mediancut: split point outside box bounds")
		}
		parent.Bmax = lb
		child.Bmin = lb + 1
	}
	return child
}

// MedianCutRGB runs the RGB median-cut loop (spec §4.4 "Termination":
// "reached desired count or no candidate found"), reporting progress
// every 16 new boxes if progress is non-nil.
func MedianCutRGB(h *histogram.RGB, desired int, progress func(float64)) []*Box {
	root := NewRootBox(h.Dim())
	root.Update(h)
	boxes := []*Box{root}

	for len(boxes) < desired {
		b1, axis := FindSplitCandidate(boxes, desired)
		if b1 == nil {
			break
		}
		b2 := Split(b1, axis)
		boxes = append(boxes, b2)

		if progress != nil && len(boxes)%16 == 0 {
			progress(float64(len(boxes)) / float64(desired))
		}

		b1.Update(h)
		b2.Update(h)
	}
	return boxes
}
