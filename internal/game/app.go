package game

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"pixelcam/internal/camera"
	"pixelcam/internal/config"
	"pixelcam/internal/graphics"
	"pixelcam/internal/input"
	"pixelcam/internal/profiling"
	"pixelcam/internal/window"
	"pixelcam/pkg/pixelfit"
)

// App owns the demo loop: it renders the scene into the camera's virtual
// canvas every frame and presents the canvas scaled into the window. It is
// also the camera's viewport sink, supplying window metrics and receiving
// fit results.
type App struct {
	window *window.Window
	input  *input.Manager

	cam      *camera.PixelCamera
	provider graphics.Provider
	present  *graphics.PresentPass
	canvas2d *graphics.Canvas2D
	scene    *Scene

	presets   []pixelfit.VirtualCanvas
	presetIdx int

	showOverlay bool
	lastFit     pixelfit.FitResult

	fpsLimiter *FPSLimiter
	lastTime   time.Time

	// FPS measurement for the overlay.
	fpsFrames int
	fpsSince  time.Time
	fps       int
}

// NewApp builds the demo around the given window and an optional sprite
// texture (0 for the built-in procedural one).
func NewApp(w *window.Window, im *input.Manager, spriteTex uint32, spriteSize int) (*App, error) {
	present, err := graphics.NewPresentPass()
	if err != nil {
		return nil, fmt.Errorf("present pass: %w", err)
	}
	canvas2d, err := graphics.NewCanvas2D()
	if err != nil {
		present.Dispose()
		return nil, fmt.Errorf("canvas pass: %w", err)
	}
	scene, err := NewScene(spriteTex, spriteSize)
	if err != nil {
		present.Dispose()
		canvas2d.Dispose()
		return nil, fmt.Errorf("scene: %w", err)
	}

	presets := []pixelfit.VirtualCanvas{
		pixelfit.Default(),
		pixelfit.FromSize(320, 180),
		pixelfit.FromSize(160, 144),
		pixelfit.FromSize(64, 64),
	}

	a := &App{
		window:      w,
		input:       im,
		cam:         camera.New(presets[0]),
		present:     present,
		canvas2d:    canvas2d,
		scene:       scene,
		presets:     presets,
		showOverlay: true,
		fpsLimiter:  NewFPSLimiter(),
		lastTime:    time.Now(),
		fpsSince:    time.Now(),
	}
	return a, nil
}

// Run drives the loop until the window closes.
func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
	a.cleanup()
}

// WindowSize implements camera.ViewportSink.
func (a *App) WindowSize() pixelfit.Size { return a.window.Metrics() }

// ApplyFit implements camera.ViewportSink: it presents the camera's
// canvas into the window at the fitted viewport.
func (a *App) ApplyFit(fit pixelfit.FitResult) {
	a.lastFit = fit
	target, _ := a.cam.Target().(*graphics.RenderTarget)
	a.present.Draw(target, fit, a.window.Metrics())
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	glfw.PollEvents()
	a.handleActions()

	// One-shot target allocation; a no-op once the camera is ready.
	if err := a.cam.Setup(a.provider); err != nil {
		log.Printf("camera setup: %v", err)
	}

	canvas := a.cam.Canvas().Size
	a.scene.Update(dt, canvas)

	if target, ok := a.cam.Target().(*graphics.RenderTarget); ok && target != nil {
		func() {
			defer profiling.Track("canvas.render")()
			target.Begin()
			a.canvas2d.Begin(canvas)
			a.scene.Render(a.canvas2d, canvas, a.overlayLines(canvas))
			target.End()
		}()
	}

	if _, ok := a.cam.Update(a); !ok {
		// Nothing to present yet; show the bars so the window is not
		// left with stale content.
		a.present.Draw(nil, pixelfit.FitResult{}, a.window.Metrics())
	}

	a.window.SwapBuffers()

	processingDuration := time.Since(startTick)
	if processingDuration > 16*time.Millisecond {
		log.Printf("Slow frame: %v. Top tasks: %s", processingDuration, profiling.TopN(5))
	}

	a.countFrame()
	a.input.PostUpdate()
	a.fpsLimiter.Wait()
}

func (a *App) handleActions() {
	if a.input.JustPressed(input.ActionQuit) {
		a.window.RequestClose()
	}
	if a.input.JustPressed(input.ActionToggleFullscreen) {
		a.window.ToggleFullscreen()
	}
	if a.input.JustPressed(input.ActionToggleOverlay) {
		a.showOverlay = !a.showOverlay
	}
	if a.input.JustPressed(input.ActionToggleVSync) {
		config.SetVSync(!config.GetVSync())
	}
	if a.input.JustPressed(input.ActionCyclePreset) {
		a.cyclePreset()
	}
}

// cyclePreset swaps the camera for one with the next canvas preset. The
// old target is released; the new camera allocates on its first setup
// poll next frame.
func (a *App) cyclePreset() {
	a.presetIdx = (a.presetIdx + 1) % len(a.presets)
	a.cam.Dispose()
	a.cam = camera.New(a.presets[a.presetIdx])
	log.Printf("canvas preset: %dx%d", a.presets[a.presetIdx].Size.W, a.presets[a.presetIdx].Size.H)
}

func (a *App) overlayLines(canvas pixelfit.Size) []string {
	if !a.showOverlay {
		return nil
	}
	win := a.window.Metrics()
	return []string{
		fmt.Sprintf("canvas %dx%d  window %dx%d", canvas.W, canvas.H, win.W, win.H),
		fmt.Sprintf("viewport %dx%d @%d,%d  scale %.2fx%.2f",
			a.lastFit.Viewport.W, a.lastFit.Viewport.H,
			a.lastFit.Origin.X, a.lastFit.Origin.Y,
			a.lastFit.Scale.X(), a.lastFit.Scale.Y()),
		fmt.Sprintf("fps %d  vsync %v", a.fps, config.GetVSync()),
	}
}

func (a *App) countFrame() {
	a.fpsFrames++
	if since := time.Since(a.fpsSince); since >= time.Second {
		a.fps = int(float64(a.fpsFrames) / since.Seconds())
		a.fpsFrames = 0
		a.fpsSince = time.Now()
	}
}

func (a *App) cleanup() {
	a.cam.Dispose()
	a.scene.Dispose()
	a.canvas2d.Dispose()
	a.present.Dispose()
}
