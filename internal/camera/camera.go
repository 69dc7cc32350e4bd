// Package camera owns the per-camera lifecycle around the pixelfit math:
// a one-shot setup that allocates the offscreen render target, and a
// per-frame update that fits the virtual canvas into the current window
// and hands the result to the presentation side.
package camera

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"pixelcam/pkg/pixelfit"
)

// State is the setup state machine. There is a single allowed transition,
// Uninitialized -> Ready, taken exactly once per camera instance.
type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// Target is the engine-owned offscreen image a camera renders into. The
// concrete type lives with the renderer; the camera only tracks identity
// and size.
type Target interface {
	Size() pixelfit.Size
	Dispose()
}

// TargetProvider allocates offscreen render targets. The provider must
// produce a color target usable both as a render attachment and as a
// sampled texture, with nearest-neighbor filtering.
type TargetProvider interface {
	CreateTarget(size pixelfit.Size, clear mgl32.Vec4) (Target, error)
}

// ViewportSink supplies the current physical window size and receives the
// computed fit each cycle, applying it to the presentation pass.
type ViewportSink interface {
	WindowSize() pixelfit.Size
	ApplyFit(fit pixelfit.FitResult)
}

// PixelCamera binds a VirtualCanvas to its render target and drives the
// fit computation. It is frame-driven and single-threaded: Setup and
// Update run on the render orchestration thread only.
type PixelCamera struct {
	canvas pixelfit.VirtualCanvas
	state  State
	target Target

	// Last fit keyed on window size. Recomputing is O(1) and safe every
	// frame; the cache just skips the arithmetic on unchanged windows.
	lastWindow pixelfit.Size
	lastFit    pixelfit.FitResult
	haveFit    bool

	degenerateReported bool
}

// New creates a camera for the given canvas in the Uninitialized state.
func New(canvas pixelfit.VirtualCanvas) *PixelCamera {
	return &PixelCamera{canvas: canvas}
}

// Canvas returns the camera's virtual canvas configuration.
func (c *PixelCamera) Canvas() pixelfit.VirtualCanvas { return c.canvas }

// State reports the setup state.
func (c *PixelCamera) State() State { return c.state }

// Target returns the offscreen target, or nil before setup / after Dispose.
func (c *PixelCamera) Target() Target { return c.target }

// Setup allocates the offscreen target on the first call and transitions
// to Ready. It is safe to poll every frame: once the transition happened
// the call is a no-op. A nil provider is treated as a collaborator that is
// not there yet; the camera stays Uninitialized and the next poll retries.
//
// A canvas with a zero dimension consumes the one transition without
// allocating anything and returns pixelfit.ErrDegenerateCanvas: the
// misconfiguration is reported once and the camera stays inert instead of
// re-attempting a doomed allocation forever.
func (c *PixelCamera) Setup(p TargetProvider) error {
	if c.state != StateUninitialized {
		return nil
	}
	if p == nil {
		return nil
	}

	if c.canvas.Size.W <= 0 || c.canvas.Size.H <= 0 {
		c.state = StateReady
		c.reportDegenerate()
		return pixelfit.ErrDegenerateCanvas
	}

	target, err := p.CreateTarget(c.canvas.Size, c.canvas.ClearColor)
	if err != nil {
		// Allocation failed; leave the transition untaken so the caller
		// can retry next cycle.
		return err
	}
	c.target = target
	c.state = StateReady
	return nil
}

// Update reads the window metrics from sink, fits the canvas and applies
// the result. The bool reports whether a fit was applied this cycle; a
// false return is the silent skip for transient conditions (not yet set
// up, collaborator missing, degenerate canvas).
func (c *PixelCamera) Update(sink ViewportSink) (pixelfit.FitResult, bool) {
	if c.state != StateReady || c.target == nil || sink == nil {
		return pixelfit.FitResult{}, false
	}

	window := sink.WindowSize()
	if !c.haveFit || window != c.lastWindow {
		fit, err := pixelfit.Fit(c.canvas.Size, window)
		if err != nil {
			c.reportDegenerate()
			return pixelfit.FitResult{}, false
		}
		c.lastWindow = window
		c.lastFit = fit
		c.haveFit = true
	}

	sink.ApplyFit(c.lastFit)
	return c.lastFit, true
}

// Dispose releases the offscreen target. The camera keeps its Ready state
// (the setup transition is one-way) but skips all further updates.
func (c *PixelCamera) Dispose() {
	if c.target != nil {
		c.target.Dispose()
		c.target = nil
	}
	c.haveFit = false
}

func (c *PixelCamera) reportDegenerate() {
	if c.degenerateReported {
		return
	}
	c.degenerateReported = true
	log.Printf("pixel camera: degenerate virtual canvas %dx%d, nothing will be presented",
		c.canvas.Size.W, c.canvas.Size.H)
}
