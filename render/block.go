package render

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/inkline/glyph"
	"github.com/ByLCY/inkline/layout"
	"github.com/ByLCY/inkline/raster"
)

// PlanBlock 计算一个区域内每一行的基线与水平位置。
//
// 首行基线为 region.Anchor（非零时）或 padding + ascent，此后每行（含空行）
// 下移 region.LineHeight。行宽取最后一个字形之后的笔位置。
func PlanBlock(face *glyph.Face, lines []string, region layout.TextRegion, canvasWidth, padding int) layout.BlockPlan {
	block := layout.BlockPlan{
		Region: region.Name,
		Offset: region.Offset,
		Lines:  make([]layout.LinePlan, 0, len(lines)),
	}
	baseline := region.Anchor
	if baseline == 0 {
		baseline = float64(padding) + face.Ascent()
	}
	for _, text := range lines {
		width := 0.0
		if text != "" {
			width = face.Measure(text)
		}
		block.Lines = append(block.Lines, layout.LinePlan{
			Text:     text,
			X:        lineX(region.Align, float64(canvasWidth), width, float64(padding)),
			Baseline: baseline,
			Width:    width,
		})
		baseline += region.LineHeight
	}
	return block
}

// lineX positions a line of width w; each line is placed independently.
func lineX(align layout.Align, canvasWidth, w, padding float64) float64 {
	switch align {
	case layout.AlignLeft:
		return padding
	case layout.AlignRight:
		return canvasWidth - padding - w
	default:
		return (canvasWidth - w) / 2
	}
}

// DrawBlock 把已排好的行绘制到 dst 上。
//
// 覆盖率转换为灰度 255 - round(c*255)，三个通道相同；覆盖率为 0 的像素不写。
// 每次写入都先平移区域偏移，超出画布的写入由 Surface 丢弃。
func DrawBlock(dst raster.Surface, face *glyph.Face, block layout.BlockPlan) {
	for _, line := range block.Lines {
		if line.Text == "" {
			continue
		}
		run := face.Layout(line.Text)
		origin := fixed.Point26_6{X: glyph.Fixed(line.X), Y: glyph.Fixed(line.Baseline)}
		for _, g := range run.Glyphs {
			cov, ok := face.Rasterize(g, origin)
			if !ok {
				continue
			}
			drawCoverage(dst, cov, block.Offset)
		}
	}
}

func drawCoverage(dst raster.Surface, cov glyph.Coverage, off layout.Offset) {
	b := cov.Bounds
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := cov.Values[(y-b.Min.Y)*b.Dx()+(x-b.Min.X)]
			if c <= 0 {
				continue
			}
			dst.Set(x+off.DX, y+off.DY, raster.Gray(Shade(c)))
		}
	}
}

// Shade maps coverage in [0,1] to a gray level: 0 → 255 (background),
// 1 → 0 (full ink). Out-of-range coverage is clamped.
func Shade(coverage float64) uint8 {
	coverage = math.Max(0, math.Min(1, coverage))
	return 255 - uint8(math.Round(coverage*255))
}
