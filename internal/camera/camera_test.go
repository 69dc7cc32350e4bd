package camera_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"pixelcam/internal/camera"
	"pixelcam/pkg/pixelfit"
)

type fakeTarget struct {
	size     pixelfit.Size
	disposed bool
}

func (t *fakeTarget) Size() pixelfit.Size { return t.size }
func (t *fakeTarget) Dispose()            { t.disposed = true }

type fakeProvider struct {
	calls int
	fail  bool
	last  *fakeTarget
}

func (p *fakeProvider) CreateTarget(size pixelfit.Size, clear mgl32.Vec4) (camera.Target, error) {
	p.calls++
	if p.fail {
		return nil, errors.New("out of texture memory")
	}
	p.last = &fakeTarget{size: size}
	return p.last, nil
}

type fakeSink struct {
	window  pixelfit.Size
	applied []pixelfit.FitResult
}

func (s *fakeSink) WindowSize() pixelfit.Size       { return s.window }
func (s *fakeSink) ApplyFit(fit pixelfit.FitResult) { s.applied = append(s.applied, fit) }

func TestSetupRunsExactlyOnce(t *testing.T) {
	cam := camera.New(pixelfit.Default())
	provider := &fakeProvider{}

	// Poll the setup the way a frame loop would.
	for i := 0; i < 5; i++ {
		if err := cam.Setup(provider); err != nil {
			t.Fatalf("Setup poll %d: %v", i, err)
		}
	}

	if provider.calls != 1 {
		t.Fatalf("expected exactly one target allocation, got %d", provider.calls)
	}
	if cam.State() != camera.StateReady {
		t.Errorf("expected StateReady, got %v", cam.State())
	}
	if cam.Target() == nil {
		t.Error("expected a target after setup")
	}
	if got := cam.Target().Size(); got != (pixelfit.Size{W: 256, H: 224}) {
		t.Errorf("target allocated at %v, want canvas size", got)
	}
}

func TestSetupWaitsForProvider(t *testing.T) {
	cam := camera.New(pixelfit.Default())

	// Provider not there yet: stay uninitialized, no error, retry later.
	if err := cam.Setup(nil); err != nil {
		t.Fatalf("Setup(nil): %v", err)
	}
	if cam.State() != camera.StateUninitialized {
		t.Fatalf("expected StateUninitialized while provider is absent, got %v", cam.State())
	}

	provider := &fakeProvider{}
	if err := cam.Setup(provider); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if provider.calls != 1 || cam.State() != camera.StateReady {
		t.Errorf("expected single allocation and ready state, got calls=%d state=%v",
			provider.calls, cam.State())
	}
}

func TestSetupRetriesAfterAllocationFailure(t *testing.T) {
	cam := camera.New(pixelfit.Default())
	provider := &fakeProvider{fail: true}

	if err := cam.Setup(provider); err == nil {
		t.Fatal("expected allocation error")
	}
	if cam.State() != camera.StateUninitialized {
		t.Fatalf("failed allocation must not consume the transition, state=%v", cam.State())
	}

	provider.fail = false
	if err := cam.Setup(provider); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if cam.State() != camera.StateReady {
		t.Errorf("expected StateReady after retry, got %v", cam.State())
	}
}

func TestSetupDegenerateCanvas(t *testing.T) {
	// FromHeight leaves width zero; setting it up without filling the
	// width is a configuration error, reported but not fatal.
	cam := camera.New(pixelfit.FromHeight(224))
	provider := &fakeProvider{}

	err := cam.Setup(provider)
	if err != pixelfit.ErrDegenerateCanvas {
		t.Fatalf("expected ErrDegenerateCanvas, got %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("degenerate canvas must not allocate a target, got %d calls", provider.calls)
	}
	// The transition is consumed: polling again stays a no-op.
	if err := cam.Setup(provider); err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("second poll re-attempted allocation (%d calls)", provider.calls)
	}

	// Updates skip silently: no target exists.
	sink := &fakeSink{window: pixelfit.Size{W: 800, H: 600}}
	if _, ok := cam.Update(sink); ok {
		t.Error("expected update to skip for degenerate camera")
	}
	if len(sink.applied) != 0 {
		t.Errorf("degenerate camera applied %d fits", len(sink.applied))
	}
}

func TestUpdateSkipsUntilReady(t *testing.T) {
	cam := camera.New(pixelfit.Default())
	sink := &fakeSink{window: pixelfit.Size{W: 512, H: 448}}

	if _, ok := cam.Update(sink); ok {
		t.Fatal("update before setup must skip")
	}

	if err := cam.Setup(&fakeProvider{}); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if _, ok := cam.Update(nil); ok {
		t.Fatal("update without a sink must skip")
	}

	fit, ok := cam.Update(sink)
	if !ok {
		t.Fatal("expected update to apply once ready")
	}
	if fit.Viewport != (pixelfit.Size{W: 512, H: 448}) {
		t.Errorf("unexpected viewport %v", fit.Viewport)
	}
	if fit.Scale != (mgl32.Vec2{2, 2}) {
		t.Errorf("unexpected scale %v", fit.Scale)
	}
	if len(sink.applied) != 1 || sink.applied[0] != fit {
		t.Errorf("sink did not receive the fit: %v", sink.applied)
	}
}

func TestUpdateTracksWindowResizes(t *testing.T) {
	cam := camera.New(pixelfit.Default())
	if err := cam.Setup(&fakeProvider{}); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	sink := &fakeSink{window: pixelfit.Size{W: 512, H: 448}}
	first, _ := cam.Update(sink)

	// Same window: the cached fit is re-applied unchanged.
	again, ok := cam.Update(sink)
	if !ok || again != first {
		t.Fatalf("expected identical fit on unchanged window, got %+v vs %+v", again, first)
	}

	// Resize: the fit follows.
	sink.window = pixelfit.Size{W: 1024, H: 896}
	resized, ok := cam.Update(sink)
	if !ok {
		t.Fatal("expected update after resize")
	}
	if resized.Viewport.W != 2*first.Viewport.W || resized.Viewport.H != 2*first.Viewport.H {
		t.Errorf("viewport did not track resize: %v -> %v", first.Viewport, resized.Viewport)
	}
	if len(sink.applied) != 3 {
		t.Errorf("expected a fit applied every update, got %d", len(sink.applied))
	}
}

func TestDisposeStopsUpdates(t *testing.T) {
	cam := camera.New(pixelfit.Default())
	provider := &fakeProvider{}
	if err := cam.Setup(provider); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	cam.Dispose()
	if !provider.last.disposed {
		t.Error("target was not disposed")
	}
	if cam.Target() != nil {
		t.Error("target should be nil after dispose")
	}

	sink := &fakeSink{window: pixelfit.Size{W: 800, H: 600}}
	if _, ok := cam.Update(sink); ok {
		t.Error("disposed camera must skip updates")
	}
	// The one-way transition holds: no re-setup happens either.
	if err := cam.Setup(provider); err != nil {
		t.Fatalf("post-dispose poll: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("dispose must not re-arm setup, got %d allocations", provider.calls)
	}
}
