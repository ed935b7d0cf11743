package histogram

import "github.com/deepteams/indexed/colorspace"

// Source is one input layer as the histogram builder needs to see it: a
// row-major pixel grid, optionally offset within a larger canvas (spec
// §4.3's "layer_offset", used when dither-alpha consults the process-wide
// dither matrix). Grayscale layers report HasAlpha() normally and carry
// the gray value in r; BuildGray ignores g and b.
type Source interface {
	Width() int
	Height() int
	OffsetX() int
	OffsetY() int
	HasAlpha() bool
	Pixel(x, y int) (r, g, b, a uint8)
}

// AlphaThreshold is the source-alpha cutoff at or below which a pixel is
// treated as fully transparent when dither-alpha is off (spec §4.3).
const AlphaThreshold = 127

// DitherMatrixSource supplies the per-cell dither-alpha threshold table
// consulted when BuildOptions.DitherAlpha is set. It is satisfied by
// internal/dither's Matrix; At wraps its own coordinates, so callers pass
// raw (x+offsetX, y+offsetY) without masking.
type DitherMatrixSource interface {
	At(x, y int) uint8
}

// BuildOptions configures one histogram build pass.
type BuildOptions struct {
	DitherAlpha bool
	MaxColors   int
	Matrix      DitherMatrixSource // required when DitherAlpha is true
}

// ExactColorList tracks the up-to-max_colors distinct sRGB triples seen
// during a build, per spec §3's "Exact-color list" entity and §4.10 step 4
// (the no-quantize shortcut for GENERATE palettes).
type ExactColorList struct {
	colors   []colorspace.RGB
	max      int
	exceeded bool
}

// NewExactColorList allocates a tracker capped at max entries.
func NewExactColorList(max int) *ExactColorList {
	return &ExactColorList{max: max}
}

// Add records c, linear-scanning for a duplicate first. Once the list has
// overflowed it stops tracking entirely (spec: "on overflow set
// exceeded=true and stop maintaining the list").
func (e *ExactColorList) Add(c colorspace.RGB) {
	if e.exceeded {
		return
	}
	for _, existing := range e.colors {
		if existing == c {
			return
		}
	}
	if len(e.colors) >= e.max {
		e.exceeded = true
		e.colors = nil
		return
	}
	e.colors = append(e.colors, c)
}

// Exceeded reports whether more than max distinct colors were seen.
func (e *ExactColorList) Exceeded() bool { return e.exceeded }

// Colors returns the tracked distinct colors. Empty (and meaningless) if
// Exceeded is true.
func (e *ExactColorList) Colors() []colorspace.RGB { return e.colors }

// Result summarizes one histogram build pass (spec §4.3's pure-black /
// pure-white tracking plus the number of opaque pixels counted). The
// exact-color shortcut data stays in the caller's ExactColorList.
type Result struct {
	PureBlack  bool
	PureWhite  bool
	TotalCount uint64
}

// progressChunk is the scanline cadence spec §4.3 mandates: "update every
// 16 scanline chunks."
const progressChunk = 16

// BuildRGB scans every layer into h, optionally tracking list (pass nil
// to skip exact-color tracking). progress, if non-nil, is called with a
// fraction in [0,1] after every 16-scanline chunk across all layers
// combined.
func BuildRGB(h *RGB, layers []Source, opts BuildOptions, list *ExactColorList, progress func(float64)) Result {
	var res Result
	precision := h.Precision()

	totalRows := 0
	for _, l := range layers {
		totalRows += l.Height()
	}
	rowsDone := 0
	rowsSinceReport := 0

	reportIfDue := func() {
		rowsSinceReport++
		if rowsSinceReport >= progressChunk && progress != nil {
			rowsSinceReport = 0
			if totalRows > 0 {
				progress(float64(rowsDone) / float64(totalRows))
			}
		}
	}

	for _, layer := range layers {
		w, ht := layer.Width(), layer.Height()
		hasAlpha := layer.HasAlpha()
		offX, offY := layer.OffsetX(), layer.OffsetY()

		for y := 0; y < ht; y++ {
			for x := 0; x < w; x++ {
				r, g, b, a := layer.Pixel(x, y)

				if hasAlpha {
					if opts.DitherAlpha {
						thresh := opts.Matrix.At(x+offX, y+offY)
						if a < thresh {
							continue
						}
					} else if a <= AlphaThreshold {
						continue
					}
				}

				c := colorspace.RGB{R: r, G: g, B: b}
				res.TotalCount++
				if r == 0 && g == 0 && b == 0 {
					res.PureBlack = true
				}
				if r == 255 && g == 255 && b == 255 {
					res.PureWhite = true
				}

				unshifted := RGBToUnshiftedLab(c)
				rc := Shift(unshifted.R, precision)
				gc := Shift(unshifted.G, precision)
				bc := Shift(unshifted.B, precision)
				h.Inc(rc, gc, bc)

				if list != nil {
					list.Add(c)
				}
			}
			rowsDone++
			reportIfDue()
		}
	}

	if progress != nil {
		progress(1.0)
	}
	return res
}

// BuildGray scans every layer's gray channel (layer.Pixel's r component)
// into h. Exact-color tracking is skipped entirely, per spec §4.3's
// grayscale fast path.
func BuildGray(h *Gray, layers []Source, opts BuildOptions, progress func(float64)) Result {
	var res Result

	totalRows := 0
	for _, l := range layers {
		totalRows += l.Height()
	}
	rowsDone := 0
	rowsSinceReport := 0

	reportIfDue := func() {
		rowsSinceReport++
		if rowsSinceReport >= progressChunk && progress != nil {
			rowsSinceReport = 0
			if totalRows > 0 {
				progress(float64(rowsDone) / float64(totalRows))
			}
		}
	}

	for _, layer := range layers {
		w, ht := layer.Width(), layer.Height()
		hasAlpha := layer.HasAlpha()
		offX, offY := layer.OffsetX(), layer.OffsetY()

		for y := 0; y < ht; y++ {
			for x := 0; x < w; x++ {
				y8, _, _, a := layer.Pixel(x, y)

				if hasAlpha {
					if opts.DitherAlpha {
						thresh := opts.Matrix.At(x+offX, y+offY)
						if a < thresh {
							continue
						}
					} else if a <= AlphaThreshold {
						continue
					}
				}

				res.TotalCount++
				if y8 == 0 {
					res.PureBlack = true
				}
				if y8 == 255 {
					res.PureWhite = true
				}
				h.Inc(int(y8))
			}
			rowsDone++
			reportIfDue()
		}
	}

	if progress != nil {
		progress(1.0)
	}
	return res
}
