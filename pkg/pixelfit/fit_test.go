package pixelfit_test

import (
	"math"
	"testing"

	"pixelcam/pkg/pixelfit"
)

// checkSane verifies the invariants that must hold for every non-degenerate
// fit: containment in the window, non-negative centering, finite scale.
func checkSane(t *testing.T, canvas, window pixelfit.Size, fit pixelfit.FitResult) {
	t.Helper()

	if fit.Viewport.W > window.W || fit.Viewport.H > window.H {
		t.Errorf("canvas %v window %v: viewport %v exceeds window", canvas, window, fit.Viewport)
	}
	if fit.Origin.X < 0 || fit.Origin.Y < 0 {
		t.Errorf("canvas %v window %v: negative origin %v", canvas, window, fit.Origin)
	}
	if fit.Origin.X+fit.Viewport.W > window.W || fit.Origin.Y+fit.Viewport.H > window.H {
		t.Errorf("canvas %v window %v: origin %v + viewport %v exceeds window",
			canvas, window, fit.Origin, fit.Viewport)
	}
	for i := 0; i < 2; i++ {
		s := float64(fit.Scale[i])
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			t.Errorf("canvas %v window %v: bad scale component %v", canvas, window, fit.Scale)
		}
	}
}

func TestFitContainment(t *testing.T) {
	canvases := []pixelfit.Size{
		{W: 256, H: 224},
		{W: 320, H: 180},
		{W: 64, H: 64},
		{W: 100, H: 333},
		{W: 1, H: 1},
	}
	windows := []pixelfit.Size{
		{W: 1, H: 1},
		{W: 37, H: 91},
		{W: 800, H: 800},
		{W: 1920, H: 1080},
		{W: 123, H: 4567},
		{W: 0, H: 600},
		{W: 600, H: 0},
		{W: 0, H: 0},
	}

	for _, c := range canvases {
		for _, w := range windows {
			fit, err := pixelfit.Fit(c, w)
			if err != nil {
				t.Fatalf("Fit(%v, %v): unexpected error %v", c, w, err)
			}
			checkSane(t, c, w, fit)
		}
	}
}

func TestFitExactIntegerScale(t *testing.T) {
	// Windows that are exact multiples of the canvas must fill completely:
	// integer scale on both axes, no bars, no offset.
	canvas := pixelfit.Size{W: 256, H: 224}
	for k := 1; k <= 6; k++ {
		window := pixelfit.Size{W: 256 * k, H: 224 * k}
		fit, err := pixelfit.Fit(canvas, window)
		if err != nil {
			t.Fatalf("Fit k=%d: %v", k, err)
		}
		if fit.Viewport != window {
			t.Errorf("k=%d: expected viewport %v, got %v", k, window, fit.Viewport)
		}
		if fit.Origin != (pixelfit.Offset{}) {
			t.Errorf("k=%d: expected zero origin, got %v", k, fit.Origin)
		}
		want := float32(k)
		if fit.Scale[0] != want || fit.Scale[1] != want {
			t.Errorf("k=%d: expected scale (%v, %v), got %v", k, want, want, fit.Scale)
		}
	}
}

func TestFitLetterboxSquareWindow(t *testing.T) {
	// 256x224 (aspect 8:7) into a square 800x800 window: the width-derived
	// height overshoots, so width limits. Height comes out as
	// floor(800 / aspect) in float32, which is 699, leaving a 50px bar on
	// top and bottom (the odd pixel goes below).
	fit, err := pixelfit.Fit(pixelfit.Size{W: 256, H: 224}, pixelfit.Size{W: 800, H: 800})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if fit.Viewport.W != 800 || fit.Viewport.H != 699 {
		t.Fatalf("expected viewport 800x699, got %v", fit.Viewport)
	}
	if fit.Origin.X != 0 || fit.Origin.Y != 50 {
		t.Errorf("expected origin (0, 50), got %v", fit.Origin)
	}
}

func TestFitPillarboxTallWindow(t *testing.T) {
	// A window taller than wide always letterboxes vertically for a wide
	// canvas: full width, centered height.
	canvas := pixelfit.Size{W: 256, H: 224}
	window := pixelfit.Size{W: 400, H: 800}
	fit, err := pixelfit.Fit(canvas, window)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if fit.Viewport.W != window.W {
		t.Errorf("expected full window width %d, got %d", window.W, fit.Viewport.W)
	}
	if fit.Viewport.H >= window.H {
		t.Errorf("expected letterboxed height below %d, got %d", window.H, fit.Viewport.H)
	}
	if fit.Origin.X != 0 {
		t.Errorf("expected x origin 0, got %d", fit.Origin.X)
	}
	wantY := (window.H - fit.Viewport.H) / 2
	if fit.Origin.Y != wantY {
		t.Errorf("expected y origin %d, got %d", wantY, fit.Origin.Y)
	}
}

func TestFitTallCanvasInTallWindow(t *testing.T) {
	// A canvas taller than wide inside a window that is taller than wide
	// but proportionally less tall than the canvas: height, not width, is
	// the limiting axis, and the viewport must stay inside the window.
	canvas := pixelfit.Size{W: 100, H: 333}
	window := pixelfit.Size{W: 37, H: 91}
	fit, err := pixelfit.Fit(canvas, window)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	checkSane(t, canvas, window, fit)
	if fit.Viewport.H != window.H {
		t.Errorf("expected full window height %d, got %d", window.H, fit.Viewport.H)
	}
	if fit.Viewport.W >= window.W {
		t.Errorf("expected pillarboxed width below %d, got %d", window.W, fit.Viewport.W)
	}
}

func TestFitAspectPreserved(t *testing.T) {
	canvases := []pixelfit.Size{
		{W: 256, H: 224},
		{W: 320, H: 180},
		{W: 640, H: 480},
	}
	windows := []pixelfit.Size{
		{W: 500, H: 500},
		{W: 1280, H: 720},
		{W: 720, H: 1280},
		{W: 1920, H: 1200},
		{W: 333, H: 777},
	}

	for _, c := range canvases {
		want := float64(c.W) / float64(c.H)
		for _, w := range windows {
			fit, err := pixelfit.Fit(c, w)
			if err != nil {
				t.Fatalf("Fit(%v, %v): %v", c, w, err)
			}
			if fit.Viewport.W < 100 || fit.Viewport.H < 100 {
				continue // floor error dominates tiny viewports
			}
			got := float64(fit.Viewport.W) / float64(fit.Viewport.H)
			if math.Abs(got-want) > 0.02 {
				t.Errorf("canvas %v window %v: aspect %v drifted to %v", c, w, want, got)
			}
		}
	}
}

func TestFitResizeScalesProportionally(t *testing.T) {
	// Doubling the window while keeping its aspect doubles the viewport
	// and keeps the per-axis scales equal to each other.
	canvas := pixelfit.Size{W: 256, H: 224}
	small, err := pixelfit.Fit(canvas, pixelfit.Size{W: 512, H: 448})
	if err != nil {
		t.Fatalf("Fit small: %v", err)
	}
	large, err := pixelfit.Fit(canvas, pixelfit.Size{W: 1024, H: 896})
	if err != nil {
		t.Fatalf("Fit large: %v", err)
	}
	if large.Viewport.W != 2*small.Viewport.W || large.Viewport.H != 2*small.Viewport.H {
		t.Errorf("expected doubled viewport, got %v -> %v", small.Viewport, large.Viewport)
	}
	if small.Scale[0] != small.Scale[1] {
		t.Errorf("small fit scale not uniform: %v", small.Scale)
	}
	if large.Scale[0] != large.Scale[1] {
		t.Errorf("large fit scale not uniform: %v", large.Scale)
	}
}

func TestFitDegenerateCanvas(t *testing.T) {
	window := pixelfit.Size{W: 800, H: 600}
	for _, c := range []pixelfit.Size{
		{W: 0, H: 224},
		{W: 256, H: 0},
		{W: 0, H: 0},
		{W: -10, H: 224},
	} {
		fit, err := pixelfit.Fit(c, window)
		if err != pixelfit.ErrDegenerateCanvas {
			t.Errorf("canvas %v: expected ErrDegenerateCanvas, got %v", c, err)
		}
		if fit != (pixelfit.FitResult{}) {
			t.Errorf("canvas %v: expected zero result, got %+v", c, fit)
		}
		// The whole point of the sentinel: nothing downstream sees NaN.
		if math.IsNaN(float64(fit.Scale[0])) || math.IsNaN(float64(fit.Scale[1])) {
			t.Errorf("canvas %v: NaN leaked into scale", c)
		}
	}
}

func TestFitZeroWindow(t *testing.T) {
	// A zero-sized window is not an error; the viewport collapses and
	// nothing would be drawn that frame.
	fit, err := pixelfit.Fit(pixelfit.Size{W: 256, H: 224}, pixelfit.Size{W: 0, H: 0})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if fit.Viewport.W != 0 || fit.Viewport.H != 0 {
		t.Errorf("expected collapsed viewport, got %v", fit.Viewport)
	}
}
