package output

import (
	"fmt"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/inkline/raster"
)

// DefaultDPI is the resolution used to size PDF pages.
const DefaultDPI = 96.0

// PDF places the raster as a single full-page image via github.com/tdewolff/canvas.
type PDF struct {
	DPI float64
}

// Encode implements Encoder.
func (p PDF) Encode(w io.Writer, c *raster.Canvas) error {
	dpi := p.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	dpmm := dpi / 25.4
	// 页面尺寸以毫米为单位
	width := float64(c.Width()) / dpmm
	height := float64(c.Height()) / dpmm

	page := canvas.New(width, height)
	ctx := canvas.NewContext(page)
	ctx.DrawImage(0, 0, c.ToImage(), canvas.DPMM(dpmm))

	writer := pdf.New(w, width, height, nil)
	page.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}
