package dither

import "testing"

// fakeSource is a minimal in-memory Source for pass tests.
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

// fakeSink records every Set call, indexed by (x,y).
type fakeSink struct {
	w, h    int
	indices [][]uint8
	alphas  [][]uint8
}

func newFakeSink(w, h int) *fakeSink {
	s := &fakeSink{w: w, h: h}
	s.indices = make([][]uint8, h)
	s.alphas = make([][]uint8, h)
	for y := range s.indices {
		s.indices[y] = make([]uint8, w)
		s.alphas[y] = make([]uint8, w)
	}
	return s
}

func (s *fakeSink) Set(x, y int, index, alpha uint8) {
	s.indices[y][x] = index
	s.alphas[y][x] = alpha
}

func constOptions() Options {
	return Options{Matrix: CurrentMatrix()}
}
