package asciimage

import (
	"fmt"
	"image"
)

// Grid is a row-major matrix of palette levels, one cell per pixel of the
// resized image. Row 0 is the top of the image. A Grid is never modified
// after Assemble returns, so renderers may share it.
type Grid struct {
	Width   int
	Height  int
	Palette Palette

	cells []Level
}

// Assemble quantizes every pixel of img into a freshly allocated grid of
// exactly img's dimensions. It panics if p is outside the palette size
// limits.
func Assemble(img *image.Gray, p Palette) *Grid {
	p.mustBeSized()
	bounds := img.Bounds()
	g := &Grid{
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Palette: p,
		cells:   make([]Level, bounds.Dx()*bounds.Dy()),
	}

	// An image's bounds do not necessarily start at (0, 0), so the two loops start
	// at bounds.Min.Y and bounds.Min.X.
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, py):]
		for px := 0; px < g.Width; px++ {
			g.set(px, py-bounds.Min.Y, p.Quantize(row[px]))
		}
	}
	return g
}

func (g *Grid) set(x, y int, l Level) {
	if !g.Palette.Valid(l) {
		panic(fmt.Sprintf("asciimage: level %d at (%d,%d) outside palette", l, x, y))
	}
	g.cells[y*g.Width+x] = l
}

// At returns the level of the cell in column x, row y.
func (g *Grid) At(x, y int) Level {
	return g.cells[y*g.Width+x]
}

// Row returns row y. The slice aliases the grid and must not be modified.
func (g *Grid) Row(y int) []Level {
	return g.cells[y*g.Width : (y+1)*g.Width]
}

// Line returns row y as glyphs.
func (g *Grid) Line(y int) string {
	rs := make([]rune, g.Width)
	for x, l := range g.Row(y) {
		rs[x] = g.Palette.Rune(l)
	}
	return string(rs)
}
