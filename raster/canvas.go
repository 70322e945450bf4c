// Package raster provides the pixel buffers all drawing targets.
//
// Every write is bounds-checked: coordinates outside [0,width)×[0,height)
// are silently dropped, never an error.
package raster

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// RGB is a 24-bit color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
)

// Gray returns the gray color with all channels set to v.
func Gray(v uint8) RGB { return RGB{v, v, v} }

// ParseHex parses "#rgb" or "#rrggbb".
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("无效的颜色 %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("无效的颜色 %q: %w", s, err)
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Surface is anything a text block can be drawn onto.
type Surface interface {
	Width() int
	Height() int
	Set(x, y int, c RGB)
}

// Canvas is a width × height grid of RGB pixels, 3 bytes per pixel.
type Canvas struct {
	width  int
	height int
	pix    []uint8
}

var _ Surface = (*Canvas)(nil)

// New creates a canvas with the given dimensions. Negative sizes clamp to 0.
func New(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int { return c.width }

// Height returns the height of the canvas.
func (c *Canvas) Height() int { return c.height }

// Pix returns the raw pixel data, row-major, RGB.
func (c *Canvas) Pix() []uint8 { return c.pix }

// Fill sets every pixel to col.
func (c *Canvas) Fill(col RGB) {
	for i := 0; i < len(c.pix); i += 3 {
		c.pix[i+0] = col.R
		c.pix[i+1] = col.G
		c.pix[i+2] = col.B
	}
}

// Set writes a single pixel; out-of-bounds writes are dropped.
func (c *Canvas) Set(x, y int, col RGB) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := (y*c.width + x) * 3
	c.pix[i+0] = col.R
	c.pix[i+1] = col.G
	c.pix[i+2] = col.B
}

// At returns the pixel at (x, y) and whether it lies inside the canvas.
func (c *Canvas) At(x, y int) (RGB, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return RGB{}, false
	}
	i := (y*c.width + x) * 3
	return RGB{c.pix[i], c.pix[i+1], c.pix[i+2]}, true
}

// ToImage converts the canvas to an opaque image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for i, j := 0, 0; i < len(c.pix); i, j = i+3, j+4 {
		img.Pix[j+0] = c.pix[i+0]
		img.Pix[j+1] = c.pix[i+1]
		img.Pix[j+2] = c.pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}
