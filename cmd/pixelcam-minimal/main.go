// Minimal integration example: one camera with the default 256x224 canvas,
// a solid rectangle as the "scene", and the fitted presentation into a
// resizable window. No input mapping, overlay or frame limiter.
package main

import (
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"pixelcam/internal/camera"
	"pixelcam/internal/graphics"
	"pixelcam/pkg/pixelfit"
)

func init() {
	runtime.LockOSThread()
}

// sink adapts the GLFW window and present pass to camera.ViewportSink.
type sink struct {
	window  *glfw.Window
	present *graphics.PresentPass
	cam     *camera.PixelCamera
}

func (s *sink) WindowSize() pixelfit.Size {
	w, h := s.window.GetFramebufferSize()
	return pixelfit.Size{W: w, H: h}
}

func (s *sink) ApplyFit(fit pixelfit.FitResult) {
	target, _ := s.cam.Target().(*graphics.RenderTarget)
	s.present.Draw(target, fit, s.WindowSize())
}

func main() {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(800, 600, "pixelcam minimal", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		panic(err)
	}

	present, err := graphics.NewPresentPass()
	if err != nil {
		panic(err)
	}
	defer present.Dispose()

	canvas2d, err := graphics.NewCanvas2D()
	if err != nil {
		panic(err)
	}
	defer canvas2d.Dispose()

	cam := camera.New(pixelfit.Default())
	defer cam.Dispose()

	s := &sink{window: window, present: present, cam: cam}

	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		if err := cam.Setup(graphics.Provider{}); err != nil {
			panic(err)
		}

		// Draw into the virtual canvas.
		if target, ok := cam.Target().(*graphics.RenderTarget); ok {
			target.Begin()
			canvas2d.Begin(cam.Canvas().Size)
			canvas2d.FillRect(96, 80, 64, 64, mgl32.Vec4{0.9, 0.2, 0.25, 1})
			target.End()
		}

		cam.Update(s)

		window.SwapBuffers()
		glfw.PollEvents()
	}
}
