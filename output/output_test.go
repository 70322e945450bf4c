package output

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/ByLCY/inkline/raster"
)

func sampleCanvas() *raster.Canvas {
	c := raster.New(5, 3)
	c.Fill(raster.White)
	c.Set(0, 0, raster.Black)
	c.Set(4, 2, raster.Gray(128))
	c.Set(2, 1, raster.RGB{R: 200, G: 10, B: 60})
	return c
}

func TestBMPHeaderAndRoundTrip(t *testing.T) {
	c := sampleCanvas()
	var buf bytes.Buffer
	require.NoError(t, BMP{}.Encode(&buf, c))

	data := buf.Bytes()
	require.Greater(t, len(data), 54)
	assert.Equal(t, "BM", string(data[:2]))
	assert.Equal(t, uint16(24), binary.LittleEndian.Uint16(data[28:30]), "bits per pixel")
	assert.Equal(t, int32(5), int32(binary.LittleEndian.Uint32(data[18:22])))
	assert.Equal(t, int32(3), int32(binary.LittleEndian.Uint32(data[22:26])))

	img, err := bmp.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 5, img.Bounds().Dx())
	require.Equal(t, 3, img.Bounds().Dy())
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			want, _ := c.At(x, y)
			r, g, b, _ := img.At(x, y).RGBA()
			assert.Equal(t, want, raster.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}, "pixel (%d,%d)", x, y)
		}
	}
}

func TestPNGRoundTrip(t *testing.T) {
	c := sampleCanvas()
	var buf bytes.Buffer
	require.NoError(t, PNG{}.Encode(&buf, c))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := img.At(2, 1).RGBA()
	assert.Equal(t, raster.RGB{R: 200, G: 10, B: 60}, raster.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
}

func TestPDFEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF{}.Encode(&buf, sampleCanvas()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestForPath(t *testing.T) {
	cases := map[string]Encoder{
		"output.bmp": BMP{},
		"OUT.BMP":    BMP{},
		"output":     BMP{},
		"a/b.png":    PNG{},
		"page.pdf":   PDF{DPI: DefaultDPI},
	}
	for path, want := range cases {
		enc, err := ForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, enc, path)
	}
	_, err := ForPath("anim.gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "output.bmp")
	require.NoError(t, WriteFile(path, sampleCanvas()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BM", string(data[:2]))

	err = WriteFile(filepath.Join(t.TempDir(), "x.jpeg"), sampleCanvas())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
