package histogram

import (
	"testing"

	"github.com/deepteams/indexed/colorspace"
)

// fakeSource is a minimal in-memory Source for builder tests.
type fakeSource struct {
	w, h       int
	offX, offY int
	hasAlpha   bool
	pix        func(x, y int) (r, g, b, a uint8)
}

func (f *fakeSource) Width() int     { return f.w }
func (f *fakeSource) Height() int    { return f.h }
func (f *fakeSource) OffsetX() int   { return f.offX }
func (f *fakeSource) OffsetY() int   { return f.offY }
func (f *fakeSource) HasAlpha() bool { return f.hasAlpha }
func (f *fakeSource) Pixel(x, y int) (r, g, b, a uint8) {
	return f.pix(x, y)
}

func TestBuildRGBCountsOpaquePixelsOnly(t *testing.T) {
	src := &fakeSource{
		w: 2, h: 1, hasAlpha: true,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			if x == 0 {
				return 10, 10, 10, 255
			}
			return 200, 200, 200, 0 // alpha <= 127, skipped
		},
	}
	h := NewRGB(8)
	list := NewExactColorList(256)
	res := BuildRGB(h, []Source{src}, BuildOptions{}, list, nil)

	if res.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1 (one opaque pixel)", res.TotalCount)
	}
	if len(list.Colors()) != 1 {
		t.Errorf("exact color list has %d entries, want 1", len(list.Colors()))
	}
	if list.Exceeded() {
		t.Errorf("list should not have exceeded with 1 color and max 256")
	}
}

func TestBuildRGBTracksPureBlackAndWhite(t *testing.T) {
	src := &fakeSource{
		w: 2, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			if x == 0 {
				return 0, 0, 0, 255
			}
			return 255, 255, 255, 255
		},
	}
	h := NewRGB(8)
	res := BuildRGB(h, []Source{src}, BuildOptions{}, nil, nil)
	if !res.PureBlack {
		t.Errorf("expected PureBlack true")
	}
	if !res.PureWhite {
		t.Errorf("expected PureWhite true")
	}
}

func TestExactColorListOverflow(t *testing.T) {
	list := NewExactColorList(2)
	list.Add(colorRGB(1, 1, 1))
	list.Add(colorRGB(2, 2, 2))
	if list.Exceeded() {
		t.Fatalf("list should not have exceeded yet with exactly max entries")
	}
	list.Add(colorRGB(3, 3, 3))
	if !list.Exceeded() {
		t.Errorf("list should have exceeded after a 3rd distinct color with max=2")
	}
	if len(list.Colors()) != 0 {
		t.Errorf("exceeded list should discard its contents")
	}
}

func TestExactColorListDedup(t *testing.T) {
	list := NewExactColorList(4)
	list.Add(colorRGB(5, 5, 5))
	list.Add(colorRGB(5, 5, 5))
	list.Add(colorRGB(5, 5, 5))
	if got := len(list.Colors()); got != 1 {
		t.Errorf("dedup failed: list has %d entries, want 1", got)
	}
}

func TestBuildGraySkipsExactColorTracking(t *testing.T) {
	src := &fakeSource{
		w: 3, h: 1,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			v := uint8(x * 50)
			return v, v, v, 255
		},
	}
	h := NewGray()
	res := BuildGray(h, []Source{src}, BuildOptions{}, nil)
	if res.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", res.TotalCount)
	}
	if got := h.Count(0); got != 1 {
		t.Errorf("Count(0) = %d, want 1", got)
	}
	if got := h.Count(50); got != 1 {
		t.Errorf("Count(50) = %d, want 1", got)
	}
}

func TestBuildRGBDitherAlphaThreshold(t *testing.T) {
	mat := constMatrix{val: 128}
	src := &fakeSource{
		w: 2, h: 1, hasAlpha: true,
		pix: func(x, y int) (uint8, uint8, uint8, uint8) {
			if x == 0 {
				return 10, 10, 10, 200 // >= threshold, kept
			}
			return 20, 20, 20, 50 // < threshold, skipped
		},
	}
	h := NewRGB(8)
	res := BuildRGB(h, []Source{src}, BuildOptions{DitherAlpha: true, Matrix: mat}, nil, nil)
	if res.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", res.TotalCount)
	}
}

type constMatrix struct {
	val uint8
}

func (m constMatrix) At(x, y int) uint8 { return m.val }

func colorRGB(r, g, b uint8) colorspace.RGB {
	return colorspace.RGB{R: r, G: g, B: b}
}
