package input_test

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"pixelcam/internal/input"
)

func TestEdgeDetection(t *testing.T) {
	m := input.NewManager()

	m.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if !m.IsActive(input.ActionQuit) {
		t.Error("expected quit active while held")
	}
	if !m.JustPressed(input.ActionQuit) {
		t.Error("expected just-pressed on the press frame")
	}

	// Edge flag clears at frame end; held state persists.
	m.PostUpdate()
	if m.JustPressed(input.ActionQuit) {
		t.Error("just-pressed leaked into the next frame")
	}
	if !m.IsActive(input.ActionQuit) {
		t.Error("held key lost between frames")
	}

	m.HandleKeyEvent(glfw.KeyEscape, glfw.Release)
	if m.IsActive(input.ActionQuit) {
		t.Error("expected quit inactive after release")
	}
}

func TestMultipleKeysOneAction(t *testing.T) {
	m := input.NewManager()

	// Both F and F11 toggle fullscreen by default.
	m.HandleKeyEvent(glfw.KeyF, glfw.Press)
	if !m.JustPressed(input.ActionToggleFullscreen) {
		t.Error("F did not trigger fullscreen toggle")
	}
	m.HandleKeyEvent(glfw.KeyF, glfw.Release)
	m.PostUpdate()

	m.HandleKeyEvent(glfw.KeyF11, glfw.Press)
	if !m.JustPressed(input.ActionToggleFullscreen) {
		t.Error("F11 did not trigger fullscreen toggle")
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	m := input.NewManager()
	m.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	for a := input.Action(0); a < input.ActionCount; a++ {
		if m.IsActive(a) || m.JustPressed(a) {
			t.Fatalf("unbound key activated action %d", a)
		}
	}
}
