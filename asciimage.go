/*
Package asciimage converts raster images into text art: a grid of glyphs
whose density follows the luminance of the source.

The pipeline is decode, normalize to gray, resize, quantize every pixel to
a palette level, then render the grid to a terminal, a text file or a PNG
in which each glyph is drawn with a monospace font.

As an example, a 14x7 image whose left half is white and right half black
becomes a 2x1 grid, a single line holding "@ ".
*/
package asciimage

import (
	"image"
)

type Option func(c *Converter)

// WithPalette sets the glyph ramp, lightest first. NewConverter panics if
// the palette is outside the size limits; use ParsePalette on user input.
func WithPalette(p Palette) Option {
	return func(c *Converter) {
		c.palette = p
	}
}

// WithFilter sets the resampling filter.
func WithFilter(f Filter) Option {
	return func(c *Converter) {
		c.resizer.Filter = f
	}
}

// WithDivisor sets how many source columns collapse into one glyph.
func WithDivisor(d int) Option {
	return func(c *Converter) {
		c.resizer.Policy.Divisor = d
	}
}

// WithFit scales the image to fit in cols columns and lines lines instead
// of dividing its width.
func WithFit(cols, lines int) Option {
	return func(c *Converter) {
		c.resizer.Policy.Fit = image.Pt(cols, lines)
	}
}

// WithAdjustments applies tonal corrections before resizing.
func WithAdjustments(adj Adjustments) Option {
	return func(c *Converter) {
		c.adjust = adj
	}
}

// Converter turns decoded images into grids. It holds no per-image state
// and may be reused.
type Converter struct {
	palette Palette
	resizer Resizer
	adjust  Adjustments
}

func NewConverter(opts ...Option) *Converter {
	c := Converter{
		palette: DefaultPalette,
		resizer: Resizer{
			Filter: Box,
			Policy: SizePolicy{Divisor: DefaultDivisor},
		},
	}
	for _, opt := range opts {
		opt(&c)
	}
	c.palette.mustBeSized()
	return &c
}

// Palette returns the palette grids are assembled with.
func (c *Converter) Palette() Palette {
	return c.palette
}

// Convert normalizes, resizes and quantizes img.
func (c *Converter) Convert(img image.Image) *Grid {
	gray := Normalize(img, c.adjust)
	return Assemble(c.resizer.Resize(gray), c.palette)
}
