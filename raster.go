package asciimage

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultPointSize is the glyph size of the image renderer.
	DefaultPointSize = 10
	dpi              = 72
)

// Rasterizer draws strings with a monospace TrueType face.
type Rasterizer struct {
	face   font.Face
	cell   image.Point
	ascent int
}

// NewRasterizer loads the embedded Go Mono font at size points.
func NewRasterizer(size float64) (*Rasterizer, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})

	m := face.Metrics()
	advance, _ := face.GlyphAdvance('M')
	return &Rasterizer{
		face:   face,
		cell:   image.Pt(advance.Ceil(), m.Height.Ceil()),
		ascent: m.Ascent.Ceil(),
	}, nil
}

// CellSize is the box every glyph occupies: the advance width of the font
// by its line height.
func (r *Rasterizer) CellSize() image.Point {
	return r.cell
}

// Ascent is the distance from the top of a cell to its baseline.
func (r *Rasterizer) Ascent() int {
	return r.ascent
}

// DrawString walks the pixels covered by s laid out with its baseline
// starting at origin, calling fn for each one with a non-zero coverage.
// The walk is finite and cannot be restarted: the face reuses its glyph
// mask, so fn must consume each pixel as it comes.
func (r *Rasterizer) DrawString(s string, origin image.Point, fn func(x, y int, coverage uint8)) {
	dot := fixed.P(origin.X, origin.Y)
	prev := rune(-1)
	for _, c := range s {
		if prev >= 0 {
			dot.X += r.face.Kern(prev, c)
		}
		dr, mask, maskp, advance, ok := r.face.Glyph(dot, c)
		if !ok {
			// Missing glyph: keep the column, draw nothing.
			advance, _ = r.face.GlyphAdvance(c)
			dot.X += advance
			prev = c
			continue
		}
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			for x := dr.Min.X; x < dr.Max.X; x++ {
				mx, my := maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y
				if a := color.AlphaModel.Convert(mask.At(mx, my)).(color.Alpha).A; a != 0 {
					fn(x, y, a)
				}
			}
		}
		dot.X += advance
		prev = c
	}
}
