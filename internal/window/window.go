// Package window wraps the GLFW presentation surface. It owns window
// creation, physical pixel metrics and fullscreen/vsync handling; all other
// packages see sizes only through pixelfit.Size.
package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"pixelcam/internal/config"
	"pixelcam/pkg/pixelfit"
)

// Window is the single presentation surface of a demo process. All methods
// must run on the main thread (GLFW requirement); glfw.Init must have been
// called already.
type Window struct {
	glfw *glfw.Window

	// Windowed-mode geometry, saved across fullscreen round trips.
	restoreX, restoreY int
	restoreW, restoreH int
	fullscreen         bool

	vsync bool
}

// New creates the GLFW window with an OpenGL 4.1 core context and makes
// the context current.
func New(title string) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(config.WindowWidth, config.WindowHeight, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	w := &Window{glfw: win, vsync: config.GetVSync()}
	w.applySwapInterval()
	return w, nil
}

// Metrics returns the current physical framebuffer size in pixels. Polled
// every frame; GLFW keeps it current through resizes and monitor moves.
func (w *Window) Metrics() pixelfit.Size {
	pw, ph := w.glfw.GetFramebufferSize()
	return pixelfit.Size{W: pw, H: ph}
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.glfw.ShouldClose() }

// RequestClose flags the window for closing at the end of the frame.
func (w *Window) RequestClose() { w.glfw.SetShouldClose(true) }

// SwapBuffers presents the frame and picks up vsync setting changes.
func (w *Window) SwapBuffers() {
	if v := config.GetVSync(); v != w.vsync {
		w.vsync = v
		w.applySwapInterval()
	}
	w.glfw.SwapBuffers()
}

// ToggleFullscreen switches between windowed mode and fullscreen on the
// primary monitor, restoring the previous windowed geometry on the way
// back.
func (w *Window) ToggleFullscreen() {
	if w.fullscreen {
		w.glfw.SetMonitor(nil, w.restoreX, w.restoreY, w.restoreW, w.restoreH, 0)
		w.fullscreen = false
		return
	}

	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return
	}
	mode := monitor.GetVideoMode()

	w.restoreX, w.restoreY = w.glfw.GetPos()
	w.restoreW, w.restoreH = w.glfw.GetSize()
	w.glfw.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	w.fullscreen = true

	// SetMonitor resets the swap interval on some platforms.
	w.applySwapInterval()
}

// Glfw exposes the underlying handle for callback installation.
func (w *Window) Glfw() *glfw.Window { return w.glfw }

// Destroy releases the window.
func (w *Window) Destroy() { w.glfw.Destroy() }

func (w *Window) applySwapInterval() {
	if w.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}
