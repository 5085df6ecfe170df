package asciimage

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Level is the ordinal of a glyph in a Palette. Higher levels are denser.
type Level uint8

// Palette is an ordered table of glyphs indexed by Level. Eg, the default:
//
//	+-------+---+---+---+---+---+---+---+---+---+
//	| level | 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 | 8 |
//	| glyph |   | . | : | - | = | * | # | % | @ |
//	+-------+---+---+---+---+---+---+---+---+---+
//
// A usable palette holds between MinGlyphs and MaxGlyphs glyphs.
type Palette []rune

// Palette size limits. Levels are bytes, and a single glyph carries no
// information.
const (
	MinGlyphs = 2
	MaxGlyphs = 256
)

// DefaultPalette is the 9 level ramp used unless another one is configured.
var DefaultPalette = Palette(" .:-=*#%@")

var (
	errPaletteSize  = errors.New("palette must hold between 2 and 256 glyphs")
	errPaletteGlyph = errors.New("palette glyphs must be printable")
)

// ParsePalette validates a ramp given from lightest to densest glyph.
func ParsePalette(s string) (Palette, error) {
	if !utf8.ValidString(s) {
		return nil, errPaletteGlyph
	}
	p := Palette(s)
	if !p.sized() {
		return nil, errPaletteSize
	}
	seen := make(map[rune]bool, len(p))
	for _, r := range p {
		if r != ' ' && !unicode.IsPrint(r) {
			return nil, errPaletteGlyph
		}
		if seen[r] {
			return nil, fmt.Errorf("palette glyph %q appears twice", r)
		}
		seen[r] = true
	}
	return p, nil
}

// Levels is the number of glyphs in the palette.
func (p Palette) Levels() int {
	return len(p)
}

// Densest is the highest level of the palette.
func (p Palette) Densest() Level {
	return Level(len(p) - 1)
}

func (p Palette) sized() bool {
	return len(p) >= MinGlyphs && len(p) <= MaxGlyphs
}

// mustBeSized panics on a palette no grid can be assembled with.
func (p Palette) mustBeSized() {
	if !p.sized() {
		panic(fmt.Sprintf("asciimage: palette of %d glyphs, want %d to %d", len(p), MinGlyphs, MaxGlyphs))
	}
}

// band is the width of every band but the last, which also absorbs the
// remainder up to 255.
func (p Palette) band() int {
	p.mustBeSized()
	return 256 / len(p)
}

// Quantize maps a luminance sample onto a level. [0,255] is split into
// len(p) contiguous bands of 256/len(p) values each, the last band running
// up to 255. Zero always lands on level 0 and 255 on the densest level.
func (p Palette) Quantize(sample uint8) Level {
	l := int(sample) / p.band()
	if l > len(p)-1 {
		l = len(p) - 1
	}
	return Level(l)
}

// Valid reports whether l names a glyph of the palette.
func (p Palette) Valid(l Level) bool {
	return int(l) < len(p)
}

// Rune returns the glyph for l. A level outside the palette is a bug in
// whoever produced it, so Rune panics instead of substituting a glyph.
func (p Palette) Rune(l Level) rune {
	if !p.Valid(l) {
		panic(fmt.Sprintf("asciimage: level %d outside %d level palette", l, len(p)))
	}
	return p[l]
}

// String returns the ramp from lightest to densest.
func (p Palette) String() string {
	return string(p)
}
