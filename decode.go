package asciimage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Stdin is the path that makes Open and ReadInput read standard input.
const Stdin = "-"

// InputError reports an image that could not be opened or decoded.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return "input " + e.Path + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() error { return e.Err }

// Open reads and decodes the image at path. path may also be Stdin or an
// http(s) URL.
func Open(path string) (image.Image, error) {
	if path != Stdin && !IsURL(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, &InputError{Path: path, Err: err}
		}
		defer f.Close()
		return decode(path, f)
	}

	// Neither source is seekable, and the EXIF pass needs to rewind.
	b, err := ReadInput(path)
	if err != nil {
		return nil, err
	}
	return decode(path, bytes.NewReader(b))
}

// IsURL reports whether path names a remote image.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ReadInput returns the undecoded bytes named by path: standard input, an
// http(s) URL or a file.
func ReadInput(path string) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	switch {
	case path == Stdin:
		b, err = io.ReadAll(os.Stdin)
	case IsURL(path):
		b, err = fetch(path)
	default:
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return b, nil
}

func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Decode decodes an image from r, honoring its EXIF orientation if present.
func Decode(r io.ReadSeeker) (image.Image, error) {
	return decode("", r)
}

func decode(path string, r io.ReadSeeker) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return orient(img, exifOrientation(r)), nil
}

// exifOrientation returns the EXIF orientation tag, or 1 (upright) if the
// stream has none.
func exifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err == nil && x != nil {
		tag, err := x.Get(exif.Orientation)
		if err == nil && tag != nil && tag.Count != 0 {
			if i, err := tag.Int(0); err == nil {
				return i
			}
		}
	}
	return 1
}

// orient undoes the camera rotation described by an EXIF orientation tag.
func orient(img image.Image, o int) image.Image {
	switch o {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
