package dither

import (
	"testing"

	"github.com/deepteams/indexed/colorspace"
	"github.com/deepteams/indexed/internal/histogram"
	"github.com/deepteams/indexed/internal/invcmap"
)

func TestFloydSteinbergRGBProducesValidIndices(t *testing.T) {
	h := histogram.NewRGB(8)
	palette := []colorspace.RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
	}
	cache := invcmap.NewCache(h, palette)

	src := &fakeSource{
		w: 8, h: 4,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			v := uint8(128)
			return v, v, v, 255
		},
	}
	sink := newFakeSink(8, 4)
	used := &UsedCounter{}
	FloydSteinbergRGB(cache, palette, h.Precision(), src, sink, constOptions(), used)

	blacks, whites := 0, 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			switch sink.indices[y][x] {
			case 0:
				blacks++
			case 1:
				whites++
			default:
				t.Errorf("pixel (%d,%d) has out-of-palette index %d", x, y, sink.indices[y][x])
			}
		}
	}
	if blacks == 0 || whites == 0 {
		t.Errorf("mid-gray field produced blacks=%d whites=%d, want a mix of both", blacks, whites)
	}
}

func TestFloydSteinbergRGBSkipsTransparentPixels(t *testing.T) {
	h := histogram.NewRGB(8)
	palette := []colorspace.RGB{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}
	cache := invcmap.NewCache(h, palette)

	src := &fakeSource{
		w: 1, h: 1, hasAlpha: true,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) { return 128, 128, 128, 0 },
	}
	sink := newFakeSink(1, 1)
	used := &UsedCounter{}
	FloydSteinbergRGB(cache, palette, h.Precision(), src, sink, constOptions(), used)

	if sink.alphas[0][0] != 0 {
		t.Errorf("transparent pixel got alpha %d, want 0", sink.alphas[0][0])
	}
}

func TestFloydSteinbergGrayProducesValidIndices(t *testing.T) {
	h := histogram.NewGray()
	palette := []uint8{0, 255}
	cache := invcmap.NewGray(h, palette)

	src := &fakeSource{
		w: 8, h: 4,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) { return 128, 0, 0, 255 },
	}
	sink := newFakeSink(8, 4)
	used := &UsedCounter{}
	FloydSteinbergGray(cache, palette, src, sink, constOptions(), used)

	blacks, whites := 0, 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			switch sink.indices[y][x] {
			case 0:
				blacks++
			case 1:
				whites++
			default:
				t.Errorf("pixel (%d,%d) has out-of-palette index %d", x, y, sink.indices[y][x])
			}
		}
	}
	if blacks == 0 || whites == 0 {
		t.Errorf("mid-gray field produced blacks=%d whites=%d, want a mix of both", blacks, whites)
	}
}
