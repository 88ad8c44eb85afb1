package ui2d

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph = ' '
	lastGlyph  = '~'
	atlasCols  = 16
)

// Atlas is a grid of fixed-size glyph cells rasterised from a monospace face.
// Runes outside printable ASCII draw as '?'.
type Atlas struct {
	Image *image.Alpha
	CellW int
	CellH int
}

// NewAtlas rasterises the printable ASCII range of face.
func NewAtlas(face font.Face) *Atlas {
	m := face.Metrics()
	cellH := (m.Ascent + m.Descent).Ceil()
	adv, _ := face.GlyphAdvance('M')
	cellW := adv.Ceil()

	n := int(lastGlyph-firstGlyph) + 1
	rows := (n + atlasCols - 1) / atlasCols
	img := image.NewAlpha(image.Rect(0, 0, cellW*atlasCols, cellH*rows))

	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for i := 0; i < n; i++ {
		x, y := (i%atlasCols)*cellW, (i/atlasCols)*cellH
		d.Dot = fixed.P(x, y+m.Ascent.Ceil())
		d.DrawString(string(rune(firstGlyph + i)))
	}
	return &Atlas{Image: img, CellW: cellW, CellH: cellH}
}

// UV returns the texture coordinates of r's cell.
func (a *Atlas) UV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	b := a.Image.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	x, y := float32((i%atlasCols)*a.CellW), float32((i/atlasCols)*a.CellH)
	return x / w, y / h, (x + float32(a.CellW)) / w, (y + float32(a.CellH)) / h
}

// Measure returns the size of text drawn at scale. Newlines start a new line.
func (a *Atlas) Measure(text string, scale float32) (w, h float32) {
	lines, col, widest := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			col = 0
			continue
		}
		col++
		widest = max(widest, col)
	}
	return float32(widest*a.CellW) * scale, float32(lines*a.CellH) * scale
}

// Font is an Atlas uploaded as a single-channel texture.
type Font struct {
	*Atlas
	texture uint32
}

// NewFont uploads the built-in 7x13 bitmap face. The OpenGL context must
// already exist.
func NewFont() *Font {
	f := &Font{Atlas: NewAtlas(basicfont.Face7x13)}
	b := f.Image.Bounds()

	gl.GenTextures(1, &f.texture)
	gl.BindTexture(gl.TEXTURE_2D, f.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(f.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return f
}

// TextureID returns the GL texture name.
func (f *Font) TextureID() uint32 { return f.texture }

// Close deletes the texture.
func (f *Font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}
