package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pixelcam/pkg/pixelfit"
)

var presentVertexShader = `#version 410 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
uniform mat4 proj;
uniform mat4 model;
out vec2 vUV;
void main() {
	gl_Position = proj * model * vec4(aPos, 0.0, 1.0);
	vUV = aUV;
}
`

var presentFragmentShader = `#version 410 core
in vec2 vUV;
uniform sampler2D uCanvas;
out vec4 fragColor;
void main() {
	fragColor = texture(uCanvas, vUV);
}
`

// Unit quad centered at the origin, position + uv interleaved. The model
// matrix blows it up to canvas-size times the axis scale.
var presentQuadVertices = []float32{
	-0.5, 0.5, 0, 1,
	0.5, 0.5, 1, 1,
	0.5, -0.5, 1, 0,
	-0.5, 0.5, 0, 1,
	0.5, -0.5, 1, 0,
	-0.5, -0.5, 0, 0,
}

// PresentPass draws a camera's offscreen texture into the window: it
// clears the whole window for the letterbox bars, restricts the viewport
// to the fitted sub-rectangle and renders the canvas quad scaled by the
// per-axis fit scale under an orthographic projection sized to the
// viewport. The quad therefore fills the viewport exactly, one canvas
// pixel to scale-many window pixels.
type PresentPass struct {
	shader *Shader
	vao    uint32
	vbo    uint32

	// Letterbox bar color.
	BarColor mgl32.Vec4
}

// NewPresentPass compiles the presentation shader and uploads the quad.
func NewPresentPass() (*PresentPass, error) {
	shader, err := NewShader(presentVertexShader, presentFragmentShader)
	if err != nil {
		return nil, err
	}

	p := &PresentPass{
		shader:   shader,
		BarColor: mgl32.Vec4{0, 0, 0, 1},
	}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(presentQuadVertices)*4, gl.Ptr(presentQuadVertices), gl.STATIC_DRAW)

	stride := int32(4 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return p, nil
}

// Draw presents target into the current window framebuffer according to
// fit. window is the full physical framebuffer size; a collapsed viewport
// leaves the window cleared to the bar color and draws nothing.
func (p *PresentPass) Draw(target *RenderTarget, fit pixelfit.FitResult, window pixelfit.Size) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(window.W), int32(window.H))
	gl.ClearColor(p.BarColor.X(), p.BarColor.Y(), p.BarColor.Z(), p.BarColor.W())
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if target == nil || fit.Viewport.W <= 0 || fit.Viewport.H <= 0 {
		return
	}

	// GL viewports are bottom-left anchored while the fit origin is
	// top-left; centering is symmetric, so the offset carries over (an
	// odd leftover pixel just swaps bars).
	gl.Viewport(int32(fit.Origin.X), int32(fit.Origin.Y),
		int32(fit.Viewport.W), int32(fit.Viewport.H))

	canvas := target.Size()
	halfW := float32(fit.Viewport.W) / 2
	halfH := float32(fit.Viewport.H) / 2
	proj := mgl32.Ortho(-halfW, halfW, -halfH, halfH, -1, 1)
	model := mgl32.Scale3D(
		float32(canvas.W)*fit.Scale.X(),
		float32(canvas.H)*fit.Scale.Y(),
		1,
	)

	gl.Disable(gl.DEPTH_TEST)

	p.shader.Use()
	p.shader.SetMatrix4("proj", &proj[0])
	p.shader.SetMatrix4("model", &model[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, target.TextureID())
	p.shader.SetInt("uCanvas", 0)

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Dispose releases GL resources.
func (p *PresentPass) Dispose() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
		p.vbo = 0
	}
	if p.shader != nil {
		p.shader.Dispose()
	}
}
