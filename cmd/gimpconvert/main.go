// Command gimpconvert is a thin demonstration host for the indexed
// package, analogous to cmd/gwebp in the codec this module grew out of:
// it is a CLI wrapper exercising the library end to end, out of the
// core's own budget.
package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/deepteams/indexed"
)

var (
	inputPath   string
	outputPath  string
	paletteFlag string
	maxColors   int
	ditherFlag  string
	ditherAlpha bool
	removeDup   bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "gimpconvert",
	Short: "Convert an RGB or grayscale image to an indexed palette",
	Long: `gimpconvert reads a PNG, JPEG, BMP, or TIFF image, converts it to an
indexed (paletted) image using the indexed package's histogram/median-cut/
dither pipeline, and writes the result as an indexed PNG.

Examples:
  gimpconvert -i photo.png -o photo-indexed.png --max-colors 64 --dither floyd-steinberg
  gimpconvert -i photo.jpg -o out.png --palette web
  gimpconvert -i photo.bmp -o out.png --palette mono`,
	RunE: runConvert,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "input image path (png, jpg, bmp, tiff)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output PNG path")
	rootCmd.Flags().StringVarP(&paletteFlag, "palette", "p", "generate", "palette mode: generate, web, mono")
	rootCmd.Flags().IntVarP(&maxColors, "max-colors", "c", 256, "maximum palette size (2-256)")
	rootCmd.Flags().StringVarP(&ditherFlag, "dither", "d", "floyd-steinberg",
		"dither mode: none, floyd-steinberg, floyd-steinberg-low-bleed, fixed-ordered, nodestruct")
	rootCmd.Flags().BoolVar(&ditherAlpha, "dither-alpha", false, "also dither the alpha channel")
	rootCmd.Flags().BoolVar(&removeDup, "remove-duplicates", true, "merge duplicate palette entries after pass 2")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	paletteMode, err := parsePaletteMode(paletteFlag)
	if err != nil {
		return err
	}
	ditherMode, err := parseDitherMode(ditherFlag)
	if err != nil {
		return err
	}

	src, gray, err := decodeImage(inputPath)
	if err != nil {
		return fmt.Errorf("gimpconvert: decoding %s: %w", inputPath, err)
	}
	logger.Info().Str("path", inputPath).Int("width", src.Bounds().Dx()).
		Int("height", src.Bounds().Dy()).Bool("gray", gray).Msg("decoded input image")

	hasAlpha := imageHasAlpha(src)
	layer := newImageLayer(src, gray, hasAlpha)

	opts := indexed.Options{
		PaletteMode:      paletteMode,
		MaxColors:        maxColors,
		RemoveDuplicates: removeDup,
		Dither:           ditherMode,
		DitherAlpha:      ditherAlpha,
		Progress:         &termProgress{quiet: quiet},
	}

	palette, err := indexed.Convert(opts, []indexed.LayerHandle{layer}, &logger)
	if err != nil {
		return fmt.Errorf("gimpconvert: conversion failed: %w", err)
	}
	logger.Info().Int("colors", len(palette)).Str("dither", ditherFlag).Msg("conversion complete")

	out := layer.Paletted(palette)
	if err := writePNG(outputPath, out); err != nil {
		return fmt.Errorf("gimpconvert: writing %s: %w", outputPath, err)
	}
	logger.Info().Str("path", outputPath).Msg("wrote indexed PNG")
	return nil
}

func parsePaletteMode(s string) (indexed.PaletteMode, error) {
	switch strings.ToLower(s) {
	case "generate":
		return indexed.PaletteGenerate, nil
	case "web":
		return indexed.PaletteWeb, nil
	case "mono":
		return indexed.PaletteMono, nil
	default:
		return 0, fmt.Errorf("gimpconvert: unknown palette mode %q (want generate, web, or mono)", s)
	}
}

func parseDitherMode(s string) (indexed.DitherMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return indexed.DitherNone, nil
	case "floyd-steinberg":
		return indexed.DitherFloydSteinberg, nil
	case "floyd-steinberg-low-bleed":
		return indexed.DitherFloydSteinbergLowBleed, nil
	case "fixed-ordered":
		return indexed.DitherFixedOrdered, nil
	case "nodestruct":
		return indexed.DitherNodestruct, nil
	default:
		return 0, fmt.Errorf("gimpconvert: unknown dither mode %q", s)
	}
}

// decodeImage reads path via the stdlib image package, or the
// golang.org/x/image bmp/tiff decoders for .bmp/.tif/.tiff paths, and
// reports whether the decoded image is a grayscale type (*image.Gray or
// *image.Gray16); pixel values are not inspected.
func decodeImage(path string) (image.Image, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".bmp":
		img, err = bmp.Decode(f)
	case ".tif", ".tiff":
		img, err = tiff.Decode(f)
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, false, err
	}
	return img, looksGray(img), nil
}

func looksGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}

func imageHasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		return true
	}
	return false
}

func writePNG(path string, img *image.Paletted) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
