package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontCharacter describes one glyph in the atlas: normalized texture
// coordinates plus pixel metrics for layout.
type FontCharacter struct {
	U0, V0, U1, V1 float32

	// Glyph bitmap size in pixels
	Width  int
	Height int
	// Offset from the pen position / baseline in pixels
	BearingX int
	BearingY int
	// Pen advance in pixels (converted from 26.6 fixed point)
	Advance int
}

// FontAtlas holds the baked glyph texture and per-rune metadata. Glyphs
// are rasterized at a fixed pixel size and sampled with nearest filtering,
// so text stays crisp on the low-resolution canvas.
type FontAtlas struct {
	Texture uint32
	Width   int
	Height  int

	// Baseline offset from the top of a text line, in pixels.
	Ascent int
	// Fallback advance for runes missing from the atlas.
	SpaceAdvance int

	Characters map[rune]FontCharacter
}

// BuildFontAtlas bakes the printable ASCII range of the embedded Go Mono
// font at the given pixel size into a single-channel GL texture.
func BuildFontAtlas(fontPixels int) (*FontAtlas, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(fontPixels),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	// Character set: ASCII printable range 32..126
	var runes []rune
	for r := rune(32); r <= rune(126); r++ {
		runes = append(runes, r)
	}

	// First pass: measure glyphs to size the atlas. Simple row packer
	// with a fixed width.
	atlasW := 256
	padding := 1
	maxH := 0
	offsetX := 0
	rows := 1
	for _, r := range runes {
		dr, mask, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil {
			continue
		}
		gw, gh := dr.Dx(), dr.Dy()
		if gh > maxH {
			maxH = gh
		}
		if gw == 0 {
			continue
		}
		if offsetX+gw+padding > atlasW {
			rows++
			offsetX = 0
		}
		offsetX += gw + padding
	}
	if maxH == 0 {
		maxH = fontPixels
	}
	atlasH := rows * (maxH + padding)

	atlasImg := image.NewAlpha(image.Rect(0, 0, atlasW, atlasH))
	characters := make(map[rune]FontCharacter)

	// Second pass: render glyphs into the atlas and record metrics.
	offsetX, offsetY := 0, 0
	for _, r := range runes {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil {
			continue
		}
		gw, gh := dr.Dx(), dr.Dy()
		advancePx := int(math.Round(float64(advance) / 64.0))

		if gw == 0 || gh == 0 {
			// Space or non-drawable glyph; still record the advance.
			characters[r] = FontCharacter{Advance: advancePx}
			continue
		}

		if offsetX+gw+padding > atlasW {
			offsetX = 0
			offsetY += maxH + padding
		}

		dstRect := image.Rect(offsetX, offsetY, offsetX+gw, offsetY+gh)
		draw.Draw(atlasImg, dstRect, mask, maskp, draw.Src)

		characters[r] = FontCharacter{
			U0:       float32(offsetX) / float32(atlasW),
			V0:       float32(offsetY) / float32(atlasH),
			U1:       float32(offsetX+gw) / float32(atlasW),
			V1:       float32(offsetY+gh) / float32(atlasH),
			Width:    gw,
			Height:   gh,
			BearingX: dr.Min.X,
			BearingY: -dr.Min.Y,
			Advance:  advancePx,
		}

		offsetX += gw + padding
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	spaceAdvance := fontPixels / 2
	if sp, ok := characters[' ']; ok && sp.Advance > 0 {
		spaceAdvance = sp.Advance
	}

	// Upload as GL_RED with tight byte alignment for the single channel.
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(atlasW), int32(atlasH), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlasImg.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &FontAtlas{
		Texture:      texture,
		Width:        atlasW,
		Height:       atlasH,
		Ascent:       ascent,
		SpaceAdvance: spaceAdvance,
		Characters:   characters,
	}, nil
}

// MeasureText returns the width in pixels the text occupies.
func (a *FontAtlas) MeasureText(text string) int {
	width := 0
	for _, r := range text {
		if ch, ok := a.Characters[r]; ok {
			width += ch.Advance
		} else {
			width += a.SpaceAdvance
		}
	}
	return width
}

// Dispose releases the atlas texture.
func (a *FontAtlas) Dispose() {
	if a.Texture != 0 {
		gl.DeleteTextures(1, &a.Texture)
		a.Texture = 0
	}
}
