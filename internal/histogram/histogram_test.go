package histogram

import "testing"

func TestRGBPhaseGating(t *testing.T) {
	h := NewRGB(8)
	if h.Phase() != PhaseBuild {
		t.Fatalf("new histogram should start in PhaseBuild")
	}
	h.Inc(1, 2, 3)
	if got := h.Count(1, 2, 3); got != 1 {
		t.Errorf("Count(1,2,3) = %d, want 1", got)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("IndexAt should panic outside PhaseLookup")
			}
		}()
		h.IndexAt(1, 2, 3)
	}()

	h.ResetForLookup()
	if h.Phase() != PhaseLookup {
		t.Fatalf("ResetForLookup should switch to PhaseLookup")
	}
	if got := h.IndexAt(1, 2, 3); got != -1 {
		t.Errorf("IndexAt on zeroed cell = %d, want -1 (unfilled)", got)
	}
	h.SetIndex(1, 2, 3, 7)
	if got := h.IndexAt(1, 2, 3); got != 7 {
		t.Errorf("IndexAt after SetIndex(...,7) = %d, want 7", got)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("Count should panic outside PhaseBuild")
			}
		}()
		h.Count(1, 2, 3)
	}()
}

func TestRGBDimAndPrecision(t *testing.T) {
	h := NewRGB(5)
	if h.Precision() != 5 {
		t.Errorf("Precision() = %d, want 5", h.Precision())
	}
	if h.Dim() != 32 {
		t.Errorf("Dim() = %d, want 32", h.Dim())
	}
}

func TestGrayPhaseGating(t *testing.T) {
	h := NewGray()
	h.Inc(10)
	h.Inc(10)
	if got := h.Count(10); got != 2 {
		t.Errorf("Count(10) = %d, want 2", got)
	}
	h.ResetForLookup()
	if got := h.IndexAt(10); got != -1 {
		t.Errorf("IndexAt on zeroed gray cell = %d, want -1", got)
	}
	h.SetIndex(10, 3)
	if got := h.IndexAt(10); got != 3 {
		t.Errorf("IndexAt after SetIndex(...,3) = %d, want 3", got)
	}
}
