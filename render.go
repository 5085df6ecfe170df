package asciimage

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/llgcode/draw2d/draw2dimg"
)

// Default output names, used when the source has no usable base name.
const (
	DefaultTextName  = "ascii.txt"
	DefaultImageName = "ascii.png"
)

// Renderer emits a grid somewhere. Renderers never modify the grid.
type Renderer interface {
	Render(g *Grid) error
}

// ResourceError reports an output that could not be created or written.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return "output " + e.Path + ": " + e.Err.Error()
}

func (e *ResourceError) Unwrap() error { return e.Err }

// WriteText writes the grid as lines of glyphs, each one terminated by a
// line feed, the last line included.
func WriteText(w io.Writer, g *Grid) error {
	for y := 0; y < g.Height; y++ {
		if _, err := io.WriteString(w, g.Line(y)); err != nil {
			return err
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

// TextRenderer prints the grid to W, usually os.Stdout.
type TextRenderer struct {
	W io.Writer
}

func (r TextRenderer) Render(g *Grid) error {
	return WriteText(r.W, g)
}

// FileRenderer writes the grid to a text file at Path, replacing any
// existing file.
type FileRenderer struct {
	Path string
}

func (r FileRenderer) Render(g *Grid) (err error) {
	f, err := os.Create(r.Path)
	if err != nil {
		return &ResourceError{Path: r.Path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &ResourceError{Path: r.Path, Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	if err := WriteText(w, g); err != nil {
		return &ResourceError{Path: r.Path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &ResourceError{Path: r.Path, Err: err}
	}
	return nil
}

// ImageRenderer draws the grid with Raster and saves it as a PNG at Path.
type ImageRenderer struct {
	Path   string
	Raster *Rasterizer
}

func (r ImageRenderer) Render(g *Grid) error {
	if err := draw2dimg.SaveToPngFile(r.Path, Compose(g, r.Raster)); err != nil {
		return &ResourceError{Path: r.Path, Err: err}
	}
	return nil
}

// Compose draws every row of g on a transparent bitmap, one cell per grid
// cell. Row y sits y cell heights from the top. Covered pixels are stamped
// opaque black; pixels falling outside the bitmap are dropped.
func Compose(g *Grid, r *Rasterizer) *image.NRGBA {
	cell := r.CellSize()
	img := image.NewNRGBA(image.Rect(0, 0, g.Width*cell.X, g.Height*cell.Y))
	bounds := img.Bounds()
	ink := color.NRGBA{A: 0xff}

	for y := 0; y < g.Height; y++ {
		origin := image.Pt(0, y*cell.Y+r.Ascent())
		r.DrawString(g.Line(y), origin, func(px, py int, _ uint8) {
			if !image.Pt(px, py).In(bounds) {
				return
			}
			img.SetNRGBA(px, py, ink)
		})
	}
	return img
}

// OutputName derives an output file name from the source path by replacing
// its extension with ext. fallback is returned when src has no base name,
// as with standard input. A name that would collide with the source itself
// gets an extra ".ascii" before ext.
func OutputName(src, ext, fallback string) string {
	if src == "" || src == Stdin {
		return fallback
	}
	if IsURL(src) {
		u, err := url.Parse(src)
		if err != nil {
			return fallback
		}
		src = u.Path
	}
	base := filepath.Base(src)
	if base == "." || base == string(filepath.Separator) {
		return fallback
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return fallback
	}
	if name := stem + ext; name != base {
		return name
	}
	return stem + ".ascii" + ext
}
