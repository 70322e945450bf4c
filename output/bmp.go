package output

import (
	"image/png"
	"io"

	"golang.org/x/image/bmp"

	"github.com/ByLCY/inkline/raster"
)

// BMP writes 24-bit uncompressed bitmaps (bottom-up rows, per the format).
type BMP struct{}

// Encode implements Encoder. The canvas image is opaque, which makes the
// bmp encoder pick 24 bits per pixel.
func (BMP) Encode(w io.Writer, c *raster.Canvas) error {
	return bmp.Encode(w, c.ToImage())
}

// PNG writes lossless PNG files.
type PNG struct{}

// Encode implements Encoder.
func (PNG) Encode(w io.Writer, c *raster.Canvas) error {
	return png.Encode(w, c.ToImage())
}
