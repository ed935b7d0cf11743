package indexed

import (
	"fmt"

	"github.com/deepteams/indexed/colorspace"
)

// PaletteMode selects how the output palette is built (spec §4.6, §6).
type PaletteMode int

const (
	PaletteGenerate PaletteMode = iota
	PaletteWeb
	PaletteMono
	PaletteCustom
)

// DitherMode selects the pass-2 pixel-mapping algorithm (spec §4.8).
type DitherMode int

const (
	DitherNone DitherMode = iota
	DitherFloydSteinberg
	DitherFloydSteinbergLowBleed
	DitherFixedOrdered
	DitherNodestruct
)

// Options configures one Convert call (spec §6 "Primary entry point").
type Options struct {
	PaletteMode      PaletteMode
	MaxColors        int
	RemoveDuplicates bool
	Dither           DitherMode
	DitherAlpha      bool
	DitherTextLayers bool
	CustomPalette    []colorspace.RGB

	// Progress is optional; a nil ProgressSink means no progress reporting
	// and no cancellation support (spec §6 "ProgressSink").
	Progress ProgressSink
}

// validate implements spec §4.10 step 1, in the style of the teacher's
// validateConfig: one fmt.Errorf per field, returned on first failure.
func (o *Options) validate() error {
	if o.MaxColors < 2 || o.MaxColors > 256 {
		return fmt.Errorf("indexed: invalid MaxColors %d (must be 2-256)", o.MaxColors)
	}
	if o.PaletteMode == PaletteCustom && len(o.CustomPalette) == 0 {
		return fmt.Errorf("%w: CustomPalette must be non-empty when PaletteMode is PaletteCustom", ErrPaletteEmpty)
	}
	if o.PaletteMode < PaletteGenerate || o.PaletteMode > PaletteCustom {
		return fmt.Errorf("indexed: invalid PaletteMode %d", o.PaletteMode)
	}
	if o.Dither < DitherNone || o.Dither > DitherNodestruct {
		return fmt.Errorf("indexed: invalid Dither %d", o.Dither)
	}
	return nil
}

// ProgressSink reports progress and allows cancellation (spec §6
// "ProgressSink").
type ProgressSink interface {
	SetText(msg string)
	SetValue(fraction float64)
	CheckCancel() bool
}
