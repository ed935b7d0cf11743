package dither

import (
	"testing"

	"github.com/deepteams/indexed/colorspace"
	"github.com/deepteams/indexed/internal/histogram"
	"github.com/deepteams/indexed/internal/invcmap"
)

func TestNoDitherRGBMapsToNearest(t *testing.T) {
	h := histogram.NewRGB(8)
	palette := []colorspace.RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
	}
	cache := invcmap.NewCache(h, palette)

	src := &fakeSource{
		w: 2, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			if x == 0 {
				return 10, 10, 10, 255
			}
			return 240, 240, 240, 255
		},
	}
	sink := newFakeSink(2, 1)
	used := &UsedCounter{}
	NoDitherRGB(cache, h.Precision(), src, sink, constOptions(), used)

	if sink.indices[0][0] != 0 {
		t.Errorf("dark pixel mapped to index %d, want 0 (black)", sink.indices[0][0])
	}
	if sink.indices[0][1] != 1 {
		t.Errorf("light pixel mapped to index %d, want 1 (white)", sink.indices[0][1])
	}
	if used.Count(0) != 1 || used.Count(1) != 1 {
		t.Errorf("UsedCounter = (%d,%d), want (1,1)", used.Count(0), used.Count(1))
	}
}

func TestNoDitherRGBSkipsTransparentPixels(t *testing.T) {
	h := histogram.NewRGB(8)
	palette := []colorspace.RGB{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}
	cache := invcmap.NewCache(h, palette)

	src := &fakeSource{
		w: 1, h: 1, hasAlpha: true,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) { return 200, 200, 200, 0 },
	}
	sink := newFakeSink(1, 1)
	used := &UsedCounter{}
	NoDitherRGB(cache, h.Precision(), src, sink, constOptions(), used)

	if sink.alphas[0][0] != 0 {
		t.Errorf("transparent pixel got alpha %d, want 0", sink.alphas[0][0])
	}
	if used.Count(0) != 0 || used.Count(1) != 0 {
		t.Errorf("transparent pixel should not be counted as used")
	}
}

func TestNoDitherGray(t *testing.T) {
	h := histogram.NewGray()
	cache := invcmap.NewGray(h, []uint8{0, 128, 255})

	src := &fakeSource{
		w: 3, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			vals := []uint8{5, 130, 250}
			return vals[x], 0, 0, 255
		},
	}
	sink := newFakeSink(3, 1)
	used := &UsedCounter{}
	NoDitherGray(cache, src, sink, constOptions(), used)

	want := []uint8{0, 1, 2}
	for x, w := range want {
		if sink.indices[0][x] != w {
			t.Errorf("pixel %d mapped to index %d, want %d", x, sink.indices[0][x], w)
		}
	}
}
