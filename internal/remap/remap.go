// Package remap implements the duplicate-entry remapper of spec §4.9:
// compact, merge, rank, and rewrite. The orchestrator runs it after pass 2
// when duplicate removal is requested and the palette mode is not MONO
// (the orchestrator decides when to invoke it; this package only knows
// how).
package remap

import (
	"sort"

	"github.com/deepteams/indexed/colorspace"
)

// entry is one surviving palette slot mid-build: its original index,
// color, and accumulated usage.
type entry struct {
	origIndex int
	color     colorspace.RGB
	usage     uint64
}

// Result is the output of Build: the compacted/merged/ranked palette plus
// the 256-entry table that maps every original index to its final one.
type Result struct {
	Palette []colorspace.RGB
	// LUT maps an original (pre-remap) index to the final index of the
	// surviving entry with the same color. Indices whose color has no
	// surviving entry map to 0, matching the "transparent pixels are
	// forced to index 0" rule for indices that never occur in an opaque
	// pixel.
	LUT [256]uint8
}

// Build implements spec §4.9 steps 1-3: compact to used indices, merge
// entries with equal RGB (summing usage), then rank by descending usage
// so the most-used surviving color becomes index 0.
func Build(palette []colorspace.RGB, used [256]uint64) Result {
	entries := make([]entry, 0, len(palette))
	seen := make(map[colorspace.RGB]int, len(palette))

	for i, c := range palette {
		if i >= len(used) || used[i] == 0 {
			continue
		}
		if pos, ok := seen[c]; ok {
			entries[pos].usage += used[i]
			continue
		}
		seen[c] = len(entries)
		entries = append(entries, entry{origIndex: i, color: c, usage: used[i]})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].usage > entries[b].usage
	})

	var res Result
	res.Palette = make([]colorspace.RGB, len(entries))
	finalOf := make(map[colorspace.RGB]int, len(entries))
	for newIdx, e := range entries {
		res.Palette[newIdx] = e.color
		finalOf[e.color] = newIdx
	}

	for i, c := range palette {
		if i >= len(used) {
			continue
		}
		if final, ok := finalOf[c]; ok {
			res.LUT[i] = uint8(final)
		}
	}

	return res
}

// Layer is the minimal surface the remapper needs to rewrite one layer's
// index buffer in place (spec §4.9 step 4).
type Layer interface {
	Width() int
	Height() int
	HasAlpha() bool
	IndexAt(x, y int) uint8
	AlphaAt(x, y int) uint8
	SetIndex(x, y int, index uint8)
}

// Rewrite applies res.LUT to every pixel of layer, forcing transparent
// pixels (alpha==0, when the layer has alpha) to index 0 per spec §4.9
// step 4's last clause.
func Rewrite(layer Layer, res Result) {
	w, h := layer.Width(), layer.Height()
	hasAlpha := layer.HasAlpha()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if hasAlpha && layer.AlphaAt(x, y) == 0 {
				layer.SetIndex(x, y, 0)
				continue
			}
			orig := layer.IndexAt(x, y)
			layer.SetIndex(x, y, res.LUT[orig])
		}
	}
}
