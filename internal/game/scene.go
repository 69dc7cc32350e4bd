package game

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"pixelcam/internal/graphics"
	"pixelcam/internal/profiling"
	"pixelcam/pkg/pixelfit"
)

const (
	checkerCell  = 16
	spriteSpeedX = 60
	spriteSpeedY = 45
	scrollSpeed  = 20
)

var (
	checkerDark  = mgl32.Vec4{0.25, 0.28, 0.38, 1}
	checkerLight = mgl32.Vec4{0.32, 0.36, 0.48, 1}
	textColor    = mgl32.Vec4{1, 1, 0.6, 1}
	shadowColor  = mgl32.Vec4{0, 0, 0, 0.6}
)

// Scene is the demo content drawn into the virtual canvas: a scrolling
// checkerboard, a bouncing sprite and a text line. Everything is laid out
// in canvas pixels, so the presentation scale is plainly visible.
type Scene struct {
	scroll  float32
	spriteX float32
	spriteY float32
	velX    float32
	velY    float32

	spriteTex  uint32
	spriteSize int

	atlas *graphics.FontAtlas
}

// NewScene builds the demo scene. spriteTex may be 0, in which case a
// procedural sprite is generated; spriteSize is its square pixel size.
func NewScene(spriteTex uint32, spriteSize int) (*Scene, error) {
	if spriteTex == 0 {
		spriteSize = 24
		spriteTex = graphics.NewTextureFromImage(proceduralSprite(spriteSize))
	}

	atlas, err := graphics.BuildFontAtlas(8)
	if err != nil {
		return nil, err
	}

	return &Scene{
		spriteX:    40,
		spriteY:    30,
		velX:       spriteSpeedX,
		velY:       spriteSpeedY,
		spriteTex:  spriteTex,
		spriteSize: spriteSize,
		atlas:      atlas,
	}, nil
}

// Update advances the scroll and bounces the sprite inside the canvas.
func (s *Scene) Update(dt float64, canvas pixelfit.Size) {
	defer profiling.Track("scene.update")()

	s.scroll += float32(dt) * scrollSpeed
	if s.scroll >= 2*checkerCell {
		s.scroll -= 2 * checkerCell
	}

	s.spriteX += s.velX * float32(dt)
	s.spriteY += s.velY * float32(dt)

	size := float32(s.spriteSize)
	if s.spriteX < 0 {
		s.spriteX = 0
		s.velX = -s.velX
	}
	if s.spriteX+size > float32(canvas.W) {
		s.spriteX = float32(canvas.W) - size
		s.velX = -s.velX
	}
	if s.spriteY < 0 {
		s.spriteY = 0
		s.velY = -s.velY
	}
	if s.spriteY+size > float32(canvas.H) {
		s.spriteY = float32(canvas.H) - size
		s.velY = -s.velY
	}
}

// Render draws the scene into whatever target c.Begin was called for.
// overlay lines, if any, are drawn in the top-left corner.
func (s *Scene) Render(c *graphics.Canvas2D, canvas pixelfit.Size, overlay []string) {
	defer profiling.Track("scene.render")()

	// Checkerboard, offset by the scroll so motion is visible even when
	// nothing else changes.
	offset := float32(math.Floor(float64(s.scroll)))
	for y := float32(-checkerCell); y < float32(canvas.H)+checkerCell; y += checkerCell {
		for x := float32(-checkerCell); x < float32(canvas.W)+checkerCell; x += checkerCell {
			col := checkerDark
			if int((x+checkerCell)/checkerCell+(y+checkerCell)/checkerCell)%2 == 0 {
				col = checkerLight
			}
			c.FillRect(x+offset-checkerCell, y, checkerCell, checkerCell, col)
		}
	}

	c.DrawTexture(s.spriteTex, s.spriteX, s.spriteY,
		float32(s.spriteSize), float32(s.spriteSize), mgl32.Vec4{1, 1, 1, 1})

	lineY := float32(2)
	for _, line := range overlay {
		c.DrawText(s.atlas, line, 3, lineY+1, shadowColor)
		c.DrawText(s.atlas, line, 2, lineY, textColor)
		lineY += float32(s.atlas.Ascent) + 3
	}
}

// Dispose releases the scene's GL resources.
func (s *Scene) Dispose() {
	if s.atlas != nil {
		s.atlas.Dispose()
	}
}

// proceduralSprite draws a small shaded ring so the demo runs without any
// asset files.
func proceduralSprite(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	outer := center - 1
	inner := center / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			d := math.Sqrt(dx*dx + dy*dy)
			if d > outer || d < inner {
				continue
			}
			shade := uint8(255 - 110*(d-inner)/(outer-inner))
			img.SetRGBA(x, y, color.RGBA{R: shade, G: uint8(shade / 2), B: 40, A: 255})
		}
	}
	return img
}
