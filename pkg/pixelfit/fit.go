package pixelfit

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateCanvas is returned when the virtual canvas has a zero
// dimension, which makes the aspect ratio undefined. Callers get a zero
// FitResult alongside it; no NaN or Inf ever leaks into the outputs.
var ErrDegenerateCanvas = errors.New("pixelfit: virtual canvas has a zero dimension")

// Size is a dimension in whole pixels.
type Size struct {
	W, H int
}

// Offset is a top-left position in whole pixels.
type Offset struct {
	X, Y int
}

// FitResult describes how a virtual canvas maps onto a physical window:
// the sub-rectangle of the window used for presentation, the offset that
// centers it, and the per-axis scale that maps canvas pixels onto it 1:1.
type FitResult struct {
	Viewport Size
	Origin   Offset
	Scale    mgl32.Vec2
}

// Fit computes the largest aspect-preserving viewport for canvas inside
// window and centers it. The non-limiting axis is letterboxed; nothing is
// ever cropped.
//
// The math runs in float32 on purpose: scale factors feed float32 GL
// transforms, and the rounding behavior of the viewport derivation is part
// of the contract (e.g. 256x224 into an 800x800 window yields 800x699).
//
// A window dimension of zero is valid and produces a zero-width or
// zero-height viewport: nothing is drawn that frame. A canvas dimension of
// zero is a configuration error and returns ErrDegenerateCanvas with a
// zero result.
func Fit(canvas, window Size) (FitResult, error) {
	if canvas.W <= 0 || canvas.H <= 0 {
		return FitResult{}, ErrDegenerateCanvas
	}
	if window.W < 0 {
		window.W = 0
	}
	if window.H < 0 {
		window.H = 0
	}

	aspect := float32(canvas.W) / float32(canvas.H)

	// The window is "tall" relative to the canvas when its height, scaled
	// by the canvas aspect, overshoots its width. Then width is the
	// limiting axis and height letterboxes; otherwise the reverse.
	var viewport Size
	if window.H > window.W || float32(window.H)*aspect > float32(window.W) {
		viewport = Size{
			W: window.W,
			H: int(float32(window.W) / aspect),
		}
		// A taller-than-wide window holding a taller-than-wide canvas can
		// land here with height as the true limiting axis. Fall back to
		// the height-limited derivation so the viewport stays contained.
		if viewport.H > window.H {
			viewport = Size{
				W: int(float32(window.H) * aspect),
				H: window.H,
			}
		}
	} else {
		viewport = Size{
			W: int(float32(window.H) * aspect),
			H: window.H,
		}
	}

	// Both components converge to the same value since the viewport was
	// derived from the same aspect ratio; computed per axis anyway so
	// rounding on the derived axis is reflected honestly.
	scale := mgl32.Vec2{
		float32(viewport.W) / float32(canvas.W),
		float32(viewport.H) / float32(canvas.H),
	}

	// Center along whichever axis is not fully filled. The viewport never
	// exceeds the window by construction, but clamp instead of going
	// negative if that invariant is ever violated.
	var origin Offset
	if d := window.W - viewport.W; d > 0 {
		origin.X = d / 2
	}
	if d := window.H - viewport.H; d > 0 {
		origin.Y = d / 2
	}

	return FitResult{Viewport: viewport, Origin: origin, Scale: scale}, nil
}
