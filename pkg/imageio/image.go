// Package imageio implements the PNG-backed Image collaborator the spec
// treats as an external supplier, scoped to the single round-trip this
// library actually needs: an 8-bit grayscale image backing the occupancy
// grid PNG conversion (spec §4.4, §6).
package imageio

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// ErrMalformed covers an image file or buffer that failed to decode.
var ErrMalformed = errors.New("imageio: malformed image")

// Image is a minimal grayscale pixel supplier/sink, standing in for the
// spec's general Image abstraction (rows/cols/pixel, load/save) restricted
// to the GRAY colour space this library exercises.
type Image struct {
	gray *image.Gray
}

// NewGray allocates a cols x rows all-zero grayscale image.
func NewGray(cols, rows int) *Image {
	return &Image{gray: image.NewGray(image.Rect(0, 0, cols, rows))}
}

func (img *Image) Rows() int { return img.gray.Bounds().Dy() }
func (img *Image) Cols() int { return img.gray.Bounds().Dx() }

// Pixel returns the gray channel value at (row, col).
func (img *Image) Pixel(row, col int) uint8 {
	return img.gray.GrayAt(col, row).Y
}

// SetPixel writes the gray channel value at (row, col).
func (img *Image) SetPixel(row, col int, v uint8) {
	img.gray.SetGray(col, row, color.Gray{Y: v})
}

// Save encodes img as a PNG to w.
func Save(w io.Writer, img *Image) error {
	return png.Encode(w, img.gray)
}

// SaveToFile encodes img as a PNG at path.
func SaveToFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Save(f, img)
}

// Load decodes a grayscale PNG from r. Non-gray source images are
// converted channel-wise to gray.
func Load(r io.Reader) (*Image, error) {
	decoded, err := png.Decode(r)
	if err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	bounds := decoded.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, decoded.At(x, y))
		}
	}
	return &Image{gray: gray}, nil
}

// LoadFromFile decodes a grayscale PNG at path.
func LoadFromFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
