package dither

import (
	"testing"

	"github.com/deepteams/indexed/colorspace"
	"github.com/deepteams/indexed/internal/histogram"
	"github.com/deepteams/indexed/internal/invcmap"
)

func TestFixedOrderedRGBExactColorsMapExactly(t *testing.T) {
	h := histogram.NewRGB(8)
	palette := []colorspace.RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 128, G: 0, B: 0},
	}
	cache := invcmap.NewCache(h, palette)

	src := &fakeSource{
		w: 3, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			switch x {
			case 0:
				return 0, 0, 0, 255
			case 1:
				return 255, 255, 255, 255
			default:
				return 128, 0, 0, 255
			}
		},
	}
	sink := newFakeSink(3, 1)
	used := &UsedCounter{}
	FixedOrderedRGB(cache, palette, h.Precision(), src, sink, constOptions(), used)

	for x, want := range []uint8{0, 1, 2} {
		if sink.indices[0][x] != want {
			t.Errorf("exact-color pixel %d mapped to %d, want %d", x, sink.indices[0][x], want)
		}
	}
}

func TestFixedOrderedRGBChoosesOneOfTwoNearest(t *testing.T) {
	h := histogram.NewRGB(8)
	palette := []colorspace.RGB{
		{R: 0, G: 0, B: 0},
		{R: 100, G: 100, B: 100},
		{R: 255, G: 255, B: 255},
	}
	cache := invcmap.NewCache(h, palette)

	src := &fakeSource{
		w: 1, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) { return 50, 50, 50, 255 },
	}
	sink := newFakeSink(1, 1)
	used := &UsedCounter{}
	FixedOrderedRGB(cache, palette, h.Precision(), src, sink, constOptions(), used)

	idx := sink.indices[0][0]
	if idx != 0 && idx != 1 {
		t.Errorf("mid-gray pixel mapped to index %d, want 0 or 1 (its two nearest neighbors)", idx)
	}
}

func TestFixedOrderedGrayExactColorsMapExactly(t *testing.T) {
	h := histogram.NewGray()
	palette := []uint8{0, 128, 255}
	cache := invcmap.NewGray(h, palette)

	src := &fakeSource{
		w: 3, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			return palette[x], 0, 0, 255
		},
	}
	sink := newFakeSink(3, 1)
	used := &UsedCounter{}
	FixedOrderedGray(cache, palette, src, sink, constOptions(), used)

	for x, want := range []uint8{0, 1, 2} {
		if sink.indices[0][x] != want {
			t.Errorf("exact-gray pixel %d mapped to %d, want %d", x, sink.indices[0][x], want)
		}
	}
}
