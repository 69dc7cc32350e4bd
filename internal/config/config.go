package config

import "sync"

// Window defaults for the demo binaries.
const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "pixelcam"
)

// DisplaySettings holds runtime-tunable presentation configuration.
type DisplaySettings struct {
	mu       sync.RWMutex
	fpsLimit int // frames per second, 0 disables the limiter
	vsync    bool
}

var globalDisplaySettings = &DisplaySettings{
	fpsLimit: 120,
	vsync:    false,
}

// GetFPSLimit returns the current FPS cap (0 = uncapped).
func GetFPSLimit() int {
	globalDisplaySettings.mu.RLock()
	defer globalDisplaySettings.mu.RUnlock()
	return globalDisplaySettings.fpsLimit
}

// SetFPSLimit sets the FPS cap. Zero disables limiting; anything else is
// clamped to a sane range.
func SetFPSLimit(limit int) {
	globalDisplaySettings.mu.Lock()
	defer globalDisplaySettings.mu.Unlock()

	if limit != 0 {
		if limit < 30 {
			limit = 30
		}
		if limit > 480 {
			limit = 480
		}
	}

	globalDisplaySettings.fpsLimit = limit
}

// GetVSync reports whether buffer swaps sync to the display.
func GetVSync() bool {
	globalDisplaySettings.mu.RLock()
	defer globalDisplaySettings.mu.RUnlock()
	return globalDisplaySettings.vsync
}

// SetVSync toggles swap synchronization. Takes effect on the next frame
// via the window layer.
func SetVSync(on bool) {
	globalDisplaySettings.mu.Lock()
	defer globalDisplaySettings.mu.Unlock()
	globalDisplaySettings.vsync = on
}
