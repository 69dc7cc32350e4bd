// Package pixelfit computes how a fixed virtual resolution maps onto a
// variable physical window: viewport size, centering offset and per-axis
// scale, preserving aspect ratio with letterbox/pillarbox bars. It is pure
// value math with no engine dependencies, usable from any host renderer.
package pixelfit

import "github.com/go-gl/mathgl/mgl32"

// FixedAxis records which canvas dimension the caller considers
// authoritative when the virtual resolution was given with only one axis.
//
// TODO: have Fit consult this when choosing the letterbox axis. Right now
// the axis decision comes purely from the aspect comparison and FixedAxis
// is carried but not read.
type FixedAxis int

const (
	// AxisNone lets either axis letterbox.
	AxisNone FixedAxis = iota
	// AxisVertical marks the canvas height as authoritative.
	AxisVertical
	// AxisHorizontal marks the canvas width as authoritative.
	AxisHorizontal
)

func (a FixedAxis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return "none"
	}
}

// Default virtual resolution (a classic 8:7 console framebuffer).
const (
	DefaultWidth  = 256
	DefaultHeight = 224
)

// DefaultClearColor is the background the offscreen target is cleared to
// when the caller does not pick one.
var DefaultClearColor = mgl32.Vec4{1, 1, 1, 1}

// VirtualCanvas is a validated-by-use virtual resolution configuration.
// It is a plain value: construction never fails, and a zero dimension is
// legal here but surfaces as ErrDegenerateCanvas once Fit runs.
type VirtualCanvas struct {
	Size       Size
	FixedAxis  FixedAxis
	ClearColor mgl32.Vec4
}

// New builds a canvas from explicit values.
func New(size Size, axis FixedAxis, clear mgl32.Vec4) VirtualCanvas {
	return VirtualCanvas{Size: size, FixedAxis: axis, ClearColor: clear}
}

// Default returns a 256x224 canvas cleared to white.
func Default() VirtualCanvas {
	return VirtualCanvas{
		Size:       Size{W: DefaultWidth, H: DefaultHeight},
		FixedAxis:  AxisNone,
		ClearColor: DefaultClearColor,
	}
}

// FromHeight fixes the vertical resolution. The width is left zero as a
// placeholder; until it is filled in this canvas is degenerate at fit time.
func FromHeight(h int) VirtualCanvas {
	return VirtualCanvas{
		Size:       Size{W: 0, H: h},
		FixedAxis:  AxisVertical,
		ClearColor: DefaultClearColor,
	}
}

// FromWidth fixes the horizontal resolution. The height is left zero as a
// placeholder; until it is filled in this canvas is degenerate at fit time.
func FromWidth(w int) VirtualCanvas {
	return VirtualCanvas{
		Size:       Size{W: w, H: 0},
		FixedAxis:  AxisHorizontal,
		ClearColor: DefaultClearColor,
	}
}

// FromSize fixes both axes; the window letterboxes whichever way its
// aspect requires.
func FromSize(w, h int) VirtualCanvas {
	return VirtualCanvas{
		Size:       Size{W: w, H: h},
		FixedAxis:  AxisNone,
		ClearColor: DefaultClearColor,
	}
}

// Fit maps this canvas onto the given window. See the package-level Fit.
func (c VirtualCanvas) Fit(window Size) (FitResult, error) {
	return Fit(c.Size, window)
}
