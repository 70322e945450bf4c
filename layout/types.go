package layout

// 该文件定义渲染配置与布局结果，供配置加载、渲染与调试 JSON 共用。

import "github.com/ByLCY/inkline/raster"

// RenderConfig 描述一次渲染的画布与区域，渲染期间不可变。
type RenderConfig struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"` // 0 表示按内容自动计算
	Padding    int          `json:"padding"`
	Background raster.RGB   `json:"background"`
	Regions    []TextRegion `json:"regions"`
}

// TextRegion 是一个独立定位与缩放的文本块（正文、叠加层等）。
// 多个区域可以在画布上重叠，后绘制的区域覆盖先绘制的像素。
type TextRegion struct {
	Name       string   `json:"name"`
	Font       string   `json:"font"`
	Scale      float64  `json:"scale"`      // 字号（px，每 em 像素数）
	LineHeight float64  `json:"lineHeight"` // 行距（px）
	Offset     Offset   `json:"offset"`
	Anchor     float64  `json:"anchor,omitempty"`   // 首行基线 y；0 表示 padding + ascent
	MaxWidth   float64  `json:"maxWidth,omitempty"` // 折行宽度；0 表示画布宽度
	Align      Align    `json:"align"`
	Wrap       WrapMode `json:"wrap"`
}

// Offset is a pixel translation applied to every write of a region.
type Offset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// WrapWidth returns the wrap budget of the region on a canvas of the given width.
func (r TextRegion) WrapWidth(canvasWidth int) float64 {
	if r.MaxWidth > 0 {
		return r.MaxWidth
	}
	return float64(canvasWidth)
}

// Plan 记录布局计算的结果：画布尺寸以及每个区域每一行的位置。
type Plan struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Blocks []BlockPlan `json:"blocks"`
}

// BlockPlan 是单个区域排版后的行集合。
type BlockPlan struct {
	Region string     `json:"region"`
	Offset Offset     `json:"offset"`
	Lines  []LinePlan `json:"lines"`
}

// LinePlan 表示一行文本的绘制位置（像素，未叠加区域偏移）。
type LinePlan struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Baseline float64 `json:"baseline"`
	Width    float64 `json:"width"`
}

// ContentHeight is the canvas height a block of n lines needs:
// n line advances plus padding above and below.
func ContentHeight(lines int, lineHeight float64, padding int) int {
	return int(float64(lines)*lineHeight) + 2*padding
}
