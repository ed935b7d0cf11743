package indexed

import (
	"github.com/rs/zerolog"

	"github.com/deepteams/indexed/colorspace"
	"github.com/deepteams/indexed/internal/dither"
	"github.com/deepteams/indexed/internal/histogram"
	"github.com/deepteams/indexed/internal/invcmap"
	"github.com/deepteams/indexed/internal/mediancut"
	"github.com/deepteams/indexed/internal/remap"
)

// histogramPrecision is the bits-per-axis the core always builds at; spec
// §5's "16 MiB" memory figure (256^3*8 bytes) is this precision's cost.
const histogramPrecision = 8

// Convert implements the spec §4.10 orchestrator: it builds (or accepts)
// a shared palette, then dispatches the appropriate pixel-mapping pass to
// every layer, writing indices back through each LayerHandle.
//
// logger is optional; a nil logger means silent operation.
func Convert(opts Options, layers []LayerHandle, logger *zerolog.Logger) ([]colorspace.RGB, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	isGray := allGray(layers)

	// spec §4.10 step 2: GRAY + GENERATE + max_colors=256 forces identity
	// dithering.
	if isGray && opts.PaletteMode == PaletteGenerate && opts.MaxColors == 256 {
		opts.Dither = DitherNone
	}

	logDebug(logger, "starting conversion", func(e *zerolog.Event) {
		e.Int("layers", len(layers)).Bool("gray", isGray).Int("maxColors", opts.MaxColors)
	})

	if isGray {
		return convertGray(opts, layers, logger)
	}
	return convertRGB(opts, layers, logger)
}

func allGray(layers []LayerHandle) bool {
	for _, l := range layers {
		if !l.Format().isGray() {
			return false
		}
	}
	return len(layers) > 0
}

func logDebug(logger *zerolog.Logger, msg string, fields func(*zerolog.Event)) {
	if logger == nil {
		return
	}
	e := logger.Debug()
	fields(e)
	e.Msg(msg)
}

func checkCancel(opts Options) bool {
	return opts.Progress != nil && opts.Progress.CheckCancel()
}

func setProgress(opts Options, text string, frac float64) {
	if opts.Progress == nil {
		return
	}
	if text != "" {
		opts.Progress.SetText(text)
	}
	opts.Progress.SetValue(frac)
}

func activeLayers(opts Options, layers []LayerHandle) []LayerHandle {
	if opts.DitherTextLayers {
		return layers
	}
	out := make([]LayerHandle, 0, len(layers))
	for _, l := range layers {
		if !l.IsTextLayer() {
			out = append(out, l)
		}
	}
	return out
}

// --- RGB pipeline ---

func convertRGB(opts Options, allLayers []LayerHandle, logger *zerolog.Logger) ([]colorspace.RGB, error) {
	layers := activeLayers(opts, allLayers)

	sources := make([]histogram.Source, len(layers))
	for i, l := range layers {
		sources[i] = layerSource{h: l}
	}

	var palette []colorspace.RGB
	var err error

	switch opts.PaletteMode {
	case PaletteMono:
		palette = mediancut.MonoPalette()
	case PaletteWeb:
		palette = mediancut.WebPalette()
	case PaletteCustom:
		palette = mediancut.CustomPalette(opts.CustomPalette)
	case PaletteGenerate:
		palette, err = buildGenerateRGBPalette(opts, sources, logger)
		if err != nil {
			return nil, err
		}
	}

	if len(palette) == 0 {
		return nil, ErrPaletteEmpty
	}

	if checkCancel(opts) {
		return nil, ErrCancelled
	}

	h := histogram.NewRGB(histogramPrecision)
	cache := invcmap.NewCache(h, palette)
	used := &dither.UsedCounter{}
	dopts := dither.Options{
		DitherAlpha:  opts.DitherAlpha,
		Matrix:       dither.CurrentMatrix(),
		ErrorFreedom: errorFreedomOf(opts.Dither),
	}

	buffers := make([]*indexBuffer, len(layers))
	for i, l := range layers {
		if checkCancel(opts) {
			return nil, ErrCancelled
		}
		src := layerSource{h: l}
		buf := newIndexBuffer(l.Width(), l.Height(), l.Format().hasAlpha())
		runRGBPass(opts.Dither, cache, palette, histogramPrecision, src, buf, dopts, used)
		buffers[i] = buf
		setProgress(opts, "pass 2", float64(i+1)/float64(len(layers)))
	}

	if opts.RemoveDuplicates && opts.PaletteMode != PaletteMono {
		var usedArr [256]uint64
		for i := range usedArr {
			usedArr[i] = used.Count(i)
		}
		res := remap.Build(palette, usedArr)
		for _, buf := range buffers {
			remap.Rewrite(buf, res)
		}
		palette = res.Palette
	}

	for i, l := range layers {
		buffers[i].flush(l)
	}

	return palette, nil
}

func buildGenerateRGBPalette(opts Options, sources []histogram.Source, logger *zerolog.Logger) ([]colorspace.RGB, error) {
	h := histogram.NewRGB(histogramPrecision)
	list := histogram.NewExactColorList(opts.MaxColors)
	bopts := histogram.BuildOptions{
		DitherAlpha: opts.DitherAlpha,
		MaxColors:   opts.MaxColors,
		Matrix:      dither.CurrentMatrix(),
	}

	res := histogram.BuildRGB(h, sources, bopts, list, func(f float64) {
		setProgress(opts, "building histogram", f*0.5)
	})

	// spec §4.10 step 4: lossless shortcut — RGB, not dithered, exact-color
	// list intact.
	if opts.Dither == DitherNone && !list.Exceeded() && len(list.Colors()) > 0 {
		logDebug(logger, "lossless shortcut taken", func(e *zerolog.Event) {
			e.Int("colors", len(list.Colors()))
		})
		palette := append([]colorspace.RGB(nil), list.Colors()...)
		mediancut.SortByLuminance(palette)
		return palette, nil
	}

	boxes := mediancut.MedianCutRGB(h, opts.MaxColors, func(f float64) {
		setProgress(opts, "building palette", 0.5+f*0.4)
	})

	palette := make([]colorspace.RGB, len(boxes))
	for i, b := range boxes {
		palette[i] = mediancut.ComputeColorRGB(h, b)
	}

	mediancut.SnapToBlackAndWhite(palette, res.PureBlack, res.PureWhite)
	mediancut.SortByLuminance(palette)
	return palette, nil
}

func errorFreedomOf(mode DitherMode) int {
	if mode == DitherFloydSteinbergLowBleed {
		return 1
	}
	return 0
}

func runRGBPass(mode DitherMode, cache *invcmap.Cache, palette []colorspace.RGB, precision int, src dither.Source, sink dither.Sink, opts dither.Options, used *dither.UsedCounter) {
	switch mode {
	case DitherNone:
		dither.NoDitherRGB(cache, precision, src, sink, opts, used)
	case DitherFixedOrdered:
		dither.FixedOrderedRGB(cache, palette, precision, src, sink, opts, used)
	case DitherFloydSteinberg, DitherFloydSteinbergLowBleed:
		dither.FloydSteinbergRGB(cache, palette, precision, src, sink, opts, used)
	case DitherNodestruct:
		dither.NodestructRGB(palette, src, sink, opts, used)
	}
}

// --- Gray pipeline ---

func convertGray(opts Options, allLayers []LayerHandle, logger *zerolog.Logger) ([]colorspace.RGB, error) {
	layers := activeLayers(opts, allLayers)

	sources := make([]histogram.Source, len(layers))
	for i, l := range layers {
		sources[i] = layerSource{h: l}
	}

	var grayPalette []uint8

	switch opts.PaletteMode {
	case PaletteMono:
		grayPalette = []uint8{0, 255}
	case PaletteGenerate:
		grayPalette = buildGenerateGrayPalette(opts, sources, logger)
	default:
		// WEB/CUSTOM have no meaningful grayscale form; fall back to the
		// caller's custom values (its R channel), or MONO if none given.
		if len(opts.CustomPalette) > 0 {
			grayPalette = make([]uint8, 0, len(opts.CustomPalette))
			for _, c := range opts.CustomPalette {
				grayPalette = append(grayPalette, c.R)
			}
		} else {
			grayPalette = []uint8{0, 255}
		}
	}

	if len(grayPalette) == 0 {
		return nil, ErrPaletteEmpty
	}

	h := histogram.NewGray()
	cache := invcmap.NewGray(h, grayPalette)
	used := &dither.UsedCounter{}
	dopts := dither.Options{
		DitherAlpha:  opts.DitherAlpha,
		Matrix:       dither.CurrentMatrix(),
		ErrorFreedom: errorFreedomOf(opts.Dither),
	}

	for i, l := range layers {
		if checkCancel(opts) {
			return nil, ErrCancelled
		}
		src := layerSource{h: l}
		buf := newIndexBuffer(l.Width(), l.Height(), l.Format().hasAlpha())
		runGrayPass(opts.Dither, cache, grayPalette, src, buf, dopts, used)
		buf.flush(l)
		setProgress(opts, "pass 2", float64(i+1)/float64(len(layers)))
	}

	palette := make([]colorspace.RGB, len(grayPalette))
	for i, v := range grayPalette {
		palette[i] = colorspace.RGB{R: v, G: v, B: v}
	}
	return palette, nil
}

func buildGenerateGrayPalette(opts Options, sources []histogram.Source, logger *zerolog.Logger) []uint8 {
	h := histogram.NewGray()
	bopts := histogram.BuildOptions{
		DitherAlpha: opts.DitherAlpha,
		MaxColors:   opts.MaxColors,
		Matrix:      dither.CurrentMatrix(),
	}
	histogram.BuildGray(h, sources, bopts, func(f float64) {
		setProgress(opts, "building histogram", f*0.5)
	})

	boxes := mediancut.MedianCutGray(h, opts.MaxColors)
	palette := make([]uint8, len(boxes))
	for i, b := range boxes {
		palette[i] = mediancut.ComputeColorGray(h, b)
	}
	logDebug(logger, "gray palette built", func(e *zerolog.Event) {
		e.Int("colors", len(palette))
	})
	return palette
}

func runGrayPass(mode DitherMode, cache *invcmap.Gray, palette []uint8, src dither.Source, sink dither.Sink, opts dither.Options, used *dither.UsedCounter) {
	switch mode {
	case DitherNone:
		dither.NoDitherGray(cache, src, sink, opts, used)
	case DitherFixedOrdered:
		dither.FixedOrderedGray(cache, palette, src, sink, opts, used)
	case DitherFloydSteinberg, DitherFloydSteinbergLowBleed:
		dither.FloydSteinbergGray(cache, palette, src, sink, opts, used)
	case DitherNodestruct:
		dither.NodestructGray(palette, src, sink, opts, used)
	}
}
