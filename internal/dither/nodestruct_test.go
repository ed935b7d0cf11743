package dither

import (
	"testing"

	"github.com/deepteams/indexed/colorspace"
)

func TestNodestructRGBExactMatches(t *testing.T) {
	palette := []colorspace.RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 10, G: 20, B: 30},
	}
	src := &fakeSource{
		w: 3, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			c := palette[x]
			return c.R, c.G, c.B, 255
		},
	}
	sink := newFakeSink(3, 1)
	used := &UsedCounter{}
	NodestructRGB(palette, src, sink, constOptions(), used)

	for x, want := range []uint8{0, 1, 2} {
		if sink.indices[0][x] != want {
			t.Errorf("pixel %d mapped to %d, want %d", x, sink.indices[0][x], want)
		}
	}
}

func TestNodestructRGBPanicsOnUnmatchedPixel(t *testing.T) {
	palette := []colorspace.RGB{{R: 0, G: 0, B: 0}}
	src := &fakeSource{
		w: 1, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) { return 5, 5, 5, 255 },
	}
	sink := newFakeSink(1, 1)
	used := &UsedCounter{}

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for unmatched pixel, got none")
		}
	}()
	NodestructRGB(palette, src, sink, constOptions(), used)
}

func TestNodestructGrayExactMatches(t *testing.T) {
	palette := []uint8{0, 128, 255}
	src := &fakeSource{
		w: 3, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) { return palette[x], 0, 0, 255 },
	}
	sink := newFakeSink(3, 1)
	used := &UsedCounter{}
	NodestructGray(palette, src, sink, constOptions(), used)

	for x, want := range []uint8{0, 1, 2} {
		if sink.indices[0][x] != want {
			t.Errorf("pixel %d mapped to %d, want %d", x, sink.indices[0][x], want)
		}
	}
}

func TestNodestructGrayPanicsOnUnmatchedPixel(t *testing.T) {
	palette := []uint8{0}
	src := &fakeSource{
		w: 1, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) { return 7, 0, 0, 255 },
	}
	sink := newFakeSink(1, 1)
	used := &UsedCounter{}

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for unmatched pixel, got none")
		}
	}()
	NodestructGray(palette, src, sink, constOptions(), used)
}
