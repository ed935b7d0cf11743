// Package invcmap implements the inverse color-map cache and nearest-color
// search described in spec §4.7: pass 2 repurposes histogram memory as a
// cache from histogram cell to nearest palette index, filled on demand by
// Heckbert's locally-sorted search combined with Thomas' incremental
// distance scan.
//
// Grounded in original_source/app/core/gimpimage-convert-indexed.c's
// find_nearby_colors / find_best_colors / fill_inverse_cmap_rgb and
// fill_inverse_cmap_gray.
package invcmap

import (
	"github.com/deepteams/indexed/colorspace"
	"github.com/deepteams/indexed/internal/histogram"
)

// Axis distance scales, matching internal/histogram's and
// internal/mediancut's weighting.
const (
	scaleR = histogram.ScaleR
	scaleG = histogram.ScaleG
	scaleB = histogram.ScaleB
)

// Cache wraps an RGB histogram switched into PhaseLookup together with
// the palette's coordinates in unshifted L*a*b* histogram space (the
// "clab" view of spec §3's Color entity), filling cells on demand.
//
// Spec §4.7 step 1 sets BOX_R_LOG=BOX_G_LOG=BOX_B_LOG=0, making the
// "update box" a single histogram cell. With a single-cell box Heckbert's
// min/max-distance bounds coincide (the box has no extent), so pruning
// and the Thomas incremental scan both degenerate to an exact weighted
// nearest-neighbor search over the palette — which is what Fill performs
// directly, rather than re-deriving the general multi-cell machinery for
// a box shape this engine never uses.
type Cache struct {
	hist *histogram.RGB
	clab []histogram.Coord
}

// NewCache resets h into PhaseLookup and records each palette entry's
// unshifted L*a*b* histogram coordinates.
func NewCache(h *histogram.RGB, palette []colorspace.RGB) *Cache {
	h.ResetForLookup()
	clab := make([]histogram.Coord, len(palette))
	for i, c := range palette {
		clab[i] = histogram.RGBToUnshiftedLab(c)
	}
	return &Cache{hist: h, clab: clab}
}

// Lookup returns the palette index nearest the histogram cell (r,g,b),
// given in the histogram's configured precision. Fills the cache entry
// on a miss.
func (c *Cache) Lookup(r, g, b int) int {
	if idx := c.hist.IndexAt(r, g, b); idx >= 0 {
		return idx
	}
	idx := c.fill(r, g, b)
	c.hist.SetIndex(r, g, b, idx)
	return idx
}

// fill performs the nearest-color search for cell (r,g,b), expressed in
// the unshifted (0..255) coordinate space fill_inverse_cmap_rgb computes
// its update-box center in.
func (c *Cache) fill(r, g, b int) int {
	precision := c.hist.Precision()
	shift := uint(8 - precision)

	centerR := (r << shift) + (1 << shift >> 1)
	centerG := (g << shift) + (1 << shift >> 1)
	centerB := (b << shift) + (1 << shift >> 1)

	best := -1
	var bestDist int64 = 1<<62 - 1
	for i, cl := range c.clab {
		dr := int64(cl.R-centerR) * scaleR
		dg := int64(cl.G-centerG) * scaleG
		db := int64(cl.B-centerB) * scaleB
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = i
			if dist == 0 {
				break
			}
		}
	}
	return best
}

// Gray is the grayscale analogue: a linear scan of the 1-D palette by
// absolute difference (spec §4.7 "Grayscale: linear scan ... store
// best+1").
type Gray struct {
	hist    *histogram.Gray
	palette []uint8
}

// NewGray resets h into PhaseLookup and records each palette entry's gray
// level.
func NewGray(h *histogram.Gray, palette []uint8) *Gray {
	h.ResetForLookup()
	return &Gray{hist: h, palette: append([]uint8(nil), palette...)}
}

// Lookup returns the palette index nearest gray value y, filling on miss.
func (c *Gray) Lookup(y int) int {
	if idx := c.hist.IndexAt(y); idx >= 0 {
		return idx
	}
	best := -1
	bestDist := 1 << 30
	for i, p := range c.palette {
		d := y - int(p)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestDist = d
			best = i
			if d == 0 {
				break
			}
		}
	}
	c.hist.SetIndex(y, best)
	return best
}
