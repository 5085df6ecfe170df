package asciimage

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Adjustments are tonal corrections applied to the gray image before it is
// resized. The zero value leaves the image untouched.
type Adjustments struct {
	// Gamma = 1.0 gives the original image. Less darkens, more lightens. Zero means unset.
	Gamma float64
	// Brightness in [-100, 100].
	Brightness float64
	// Contrast in [-100, 100].
	Contrast float64
	// Sharpen sigma; 0 disables sharpening.
	Sharpen float64
	// SigmoidMidpoint in [0, 1] and SigmoidFactor apply a non-linear
	// contrast curve when SigmoidFactor is non-zero.
	SigmoidMidpoint float64
	SigmoidFactor   float64
	// Invert swaps light and dark.
	Invert bool
}

func (adj Adjustments) apply(img *image.NRGBA) *image.NRGBA {
	if adj.Gamma > 0 && adj.Gamma != 1 {
		img = imaging.AdjustGamma(img, adj.Gamma)
	}
	if adj.Brightness != 0 {
		img = imaging.AdjustBrightness(img, adj.Brightness)
	}
	if adj.Sharpen > 0 {
		img = imaging.Sharpen(img, adj.Sharpen)
	}
	if adj.Contrast != 0 {
		img = imaging.AdjustContrast(img, adj.Contrast)
	}
	if adj.SigmoidFactor != 0 {
		img = imaging.AdjustSigmoid(img, adj.SigmoidMidpoint, adj.SigmoidFactor)
	}
	if adj.Invert {
		img = imaging.Invert(img)
	}
	return img
}

// Normalize converts img to single channel luminance. Transparent pixels
// count as black: each sample is scaled by its pixel's alpha.
func Normalize(img image.Image, adj Adjustments) *image.Gray {
	return toGray(adj.apply(imaging.Grayscale(img)))
}

// toGray flattens an image whose color channels already hold luminance.
// The result always starts at (0, 0).
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < bounds.Dy(); y++ {
			src := n.Pix[n.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			dst := gray.Pix[gray.PixOffset(0, y):]
			for x := 0; x < bounds.Dx(); x++ {
				lum, a := uint32(src[x*4]), uint32(src[x*4+3])
				dst[x] = uint8((lum*a + 127) / 255)
			}
		}
		return gray
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			// Premultiplied, so alpha is already folded in.
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			gray.SetGray(x, y, c)
		}
	}
	return gray
}
