package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pixelcam/internal/camera"
	"pixelcam/pkg/pixelfit"
)

// RenderTarget is an offscreen framebuffer with an RGBA8 color texture,
// sampled with nearest-neighbor filtering so scaled presentation keeps
// hard pixel edges. It implements camera.Target.
type RenderTarget struct {
	fbo     uint32
	texture uint32
	size    pixelfit.Size
	clear   mgl32.Vec4
}

// NewRenderTarget allocates the texture and framebuffer at exactly the
// given pixel size.
func NewRenderTarget(size pixelfit.Size, clear mgl32.Vec4) (*RenderTarget, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("render target size %dx%d is not positive", size.W, size.H)
	}

	t := &RenderTarget{size: size, clear: clear}

	gl.GenTextures(1, &t.texture)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.W), int32(size.H), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.texture, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Dispose()
		return nil, fmt.Errorf("framebuffer incomplete: status 0x%x", status)
	}
	return t, nil
}

// Size returns the pixel dimensions the target was allocated at.
func (t *RenderTarget) Size() pixelfit.Size { return t.size }

// TextureID returns the GL name of the color texture for sampling.
func (t *RenderTarget) TextureID() uint32 { return t.texture }

// Begin binds the framebuffer, sets the viewport to the full target and
// clears it to the canvas clear color. Everything drawn until End lands in
// the offscreen texture.
func (t *RenderTarget) Begin() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.size.W), int32(t.size.H))
	gl.ClearColor(t.clear.X(), t.clear.Y(), t.clear.Z(), t.clear.W())
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// End rebinds the default framebuffer.
func (t *RenderTarget) End() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Dispose releases the framebuffer and texture.
func (t *RenderTarget) Dispose() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	if t.texture != 0 {
		gl.DeleteTextures(1, &t.texture)
		t.texture = 0
	}
}

// Provider allocates RenderTargets for cameras. It is the OpenGL
// implementation of camera.TargetProvider.
type Provider struct{}

// CreateTarget allocates an offscreen target at the canvas size.
func (Provider) CreateTarget(size pixelfit.Size, clear mgl32.Vec4) (camera.Target, error) {
	return NewRenderTarget(size, clear)
}
