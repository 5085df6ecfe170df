package asciimage

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Filter selects the resampling kernel used to shrink the gray image.
type Filter int

const (
	// Box averages the source area under each output pixel.
	Box Filter = iota
	// Lanczos is imaging's windowed sinc filter.
	Lanczos
	// NfntLanczos3 is nfnt/resize's Lanczos-3 implementation.
	NfntLanczos3
)

var filterNames = map[Filter]string{
	Box:          "box",
	Lanczos:      "lanczos",
	NfntLanczos3: "lanczos3",
}

func (f Filter) String() string {
	if s, ok := filterNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter accepts the names printed by Filter.String.
func ParseFilter(s string) (Filter, error) {
	for f, name := range filterNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}

const (
	// DefaultDivisor shrinks the width by 7 so each glyph covers a 7 pixel wide strip.
	DefaultDivisor = 7
)

// DefaultFallbackSize is used when the source has no usable aspect ratio.
var DefaultFallbackSize = image.Pt(300, 320)

// SizePolicy decides the dimensions of the image handed to the assembler.
// If Fit is non-zero the image is scaled to fit in Fit.X columns and Fit.Y
// lines, otherwise the width is divided by Divisor.
type SizePolicy struct {
	Divisor int
	Fit     image.Point
}

// TargetSize computes the resized dimensions of a w by h image. The aspect
// ratio of the source is kept within rounding, and neither dimension drops
// below one pixel.
func TargetSize(w, h int, p SizePolicy) (int, int) {
	if w <= 0 || h <= 0 {
		return DefaultFallbackSize.X, DefaultFallbackSize.Y
	}
	ratio := float64(w) / float64(h)

	if p.Fit.X > 0 || p.Fit.Y > 0 {
		return fit(w, h, p.Fit)
	}

	divisor := p.Divisor
	if divisor <= 0 {
		divisor = DefaultDivisor
	}
	tw := atLeastOne(w / divisor)
	th := atLeastOne(int(math.Round(float64(tw) / ratio)))
	return tw, th
}

// fit scales w by h down to fit in a box, never scaling up. A zero side of
// the box is unconstrained.
func fit(w, h int, box image.Point) (int, int) {
	scale := 1.0
	if box.X > 0 {
		scale = math.Min(scale, float64(box.X)/float64(w))
	}
	if box.Y > 0 {
		scale = math.Min(scale, float64(box.Y)/float64(h))
	}
	return atLeastOne(int(math.Round(float64(w) * scale))),
		atLeastOne(int(math.Round(float64(h) * scale)))
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Resizer shrinks normalized gray images. The same Resizer is used for
// every output so that all renderers see identical grids.
type Resizer struct {
	Filter Filter
	Policy SizePolicy
}

// Resize returns img scaled to TargetSize.
func (r Resizer) Resize(img *image.Gray) *image.Gray {
	bounds := img.Bounds()
	w, h := TargetSize(bounds.Dx(), bounds.Dy(), r.Policy)
	if bounds.Empty() {
		// Nothing to sample from; the fallback canvas stays black.
		return image.NewGray(image.Rect(0, 0, w, h))
	}

	switch r.Filter {
	case NfntLanczos3:
		return toGray(resize.Resize(uint(w), uint(h), img, resize.Lanczos3))
	case Lanczos:
		return toGray(imaging.Resize(img, w, h, imaging.Lanczos))
	default:
		return toGray(imaging.Resize(img, w, h, imaging.Box))
	}
}
