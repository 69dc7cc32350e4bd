package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pixelcam/pkg/pixelfit"
)

var canvasVertexShader = `#version 410 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
uniform mat4 proj;
out vec2 vUV;
void main() {
	gl_Position = proj * vec4(aPos, 0.0, 1.0);
	vUV = aUV;
}
`

var canvasFragmentShader = `#version 410 core
in vec2 vUV;
uniform vec4 uColor;
uniform bool uUseTexture;
uniform bool uAlphaOnly;
uniform sampler2D uTexture;
out vec4 fragColor;
void main() {
	if (!uUseTexture) {
		fragColor = uColor;
	} else if (uAlphaOnly) {
		fragColor = vec4(uColor.rgb, uColor.a * texture(uTexture, vUV).r);
	} else {
		fragColor = texture(uTexture, vUV) * uColor;
	}
}
`

// Canvas2D draws colored rectangles, textured quads and atlas text into
// whatever framebuffer is bound, using a top-left pixel coordinate system
// matching the virtual canvas. One shader, one streaming quad buffer.
type Canvas2D struct {
	shader *Shader
	vao    uint32
	vbo    uint32
}

// NewCanvas2D compiles the shader and allocates the streaming quad buffer.
func NewCanvas2D() (*Canvas2D, error) {
	shader, err := NewShader(canvasVertexShader, canvasFragmentShader)
	if err != nil {
		return nil, err
	}

	c := &Canvas2D{shader: shader}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	// 6 vertices, pos2 + uv2, re-uploaded per quad.
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)

	stride := int32(4 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return c, nil
}

// Begin prepares the pass for a surface of the given pixel size: top-left
// origin, y growing downward, alpha blending on.
func (c *Canvas2D) Begin(size pixelfit.Size) {
	proj := mgl32.Ortho(0, float32(size.W), float32(size.H), 0, -1, 1)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	c.shader.Use()
	c.shader.SetMatrix4("proj", &proj[0])
	c.shader.SetInt("uTexture", 0)
}

// FillRect draws a solid rectangle at x,y with the given size.
func (c *Canvas2D) FillRect(x, y, w, h float32, color mgl32.Vec4) {
	c.shader.SetBool("uUseTexture", false)
	c.shader.SetBool("uAlphaOnly", false)
	c.shader.SetVector4("uColor", color.X(), color.Y(), color.Z(), color.W())
	c.drawQuad(x, y, w, h, 0, 0, 1, 1)
}

// DrawTexture draws a full texture into the rectangle at x,y. Tint is
// multiplied in; pass white for the texture as-is.
func (c *Canvas2D) DrawTexture(texture uint32, x, y, w, h float32, tint mgl32.Vec4) {
	c.shader.SetBool("uUseTexture", true)
	c.shader.SetBool("uAlphaOnly", false)
	c.shader.SetVector4("uColor", tint.X(), tint.Y(), tint.Z(), tint.W())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	c.drawQuad(x, y, w, h, 0, 0, 1, 1)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// DrawText renders a string at x,y (baseline at y plus the font ascent)
// using the atlas, one quad per glyph.
func (c *Canvas2D) DrawText(atlas *FontAtlas, text string, x, y float32, color mgl32.Vec4) {
	if atlas == nil {
		return
	}

	c.shader.SetBool("uUseTexture", true)
	c.shader.SetBool("uAlphaOnly", true)
	c.shader.SetVector4("uColor", color.X(), color.Y(), color.Z(), color.W())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, atlas.Texture)

	baseline := y + float32(atlas.Ascent)
	penX := x
	for _, r := range text {
		ch, ok := atlas.Characters[r]
		if !ok {
			penX += float32(atlas.SpaceAdvance)
			continue
		}

		gx := penX + float32(ch.BearingX)
		gy := baseline - float32(ch.BearingY)
		c.drawQuad(gx, gy, float32(ch.Width), float32(ch.Height),
			ch.U0, ch.V0, ch.U1, ch.V1)

		penX += float32(ch.Advance)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Dispose releases GL resources.
func (c *Canvas2D) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
		c.vbo = 0
	}
	if c.shader != nil {
		c.shader.Dispose()
	}
}

func (c *Canvas2D) drawQuad(x, y, w, h, u0, v0, u1, v1 float32) {
	vertices := []float32{
		x, y, u0, v0,
		x + w, y, u1, v0,
		x + w, y + h, u1, v1,
		x, y, u0, v0,
		x + w, y + h, u1, v1,
		x, y + h, u0, v1,
	}

	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}
