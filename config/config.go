// Package config builds the render configuration from defaults, layout
// files (DSL or TOML) and the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/inkline/dsl"
	"github.com/ByLCY/inkline/glyph"
	"github.com/ByLCY/inkline/layout"
	"github.com/ByLCY/inkline/raster"
	"github.com/ByLCY/inkline/source"
)

// Default canvas and body text settings.
const (
	DefaultWidth      = 900
	DefaultPadding    = 10
	DefaultSize       = 18.0
	DefaultLineHeight = 20.0
	DefaultInput      = "input.txt"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvFont   = "INKLINE_FONT"
	EnvEngine = "INKLINE_ENGINE"
)

// ErrInvalidLayout wraps every validation failure.
var ErrInvalidLayout = errors.New("config: invalid layout")

// Region is a text region plus where its text comes from.
type Region struct {
	layout.TextRegion
	Source   string `json:"source"`             // file:path | text:literal | env:NAME | weather
	Template string `json:"template,omitempty"` // ${path} template applied to fetched data
}

// Layout 是完整的渲染配置：画布参数、字体引擎与各区域的数据来源。
type Layout struct {
	Name       string     `json:"name"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Padding    int        `json:"padding"`
	Background raster.RGB `json:"background"`
	Engine     string     `json:"engine,omitempty"`
	Regions    []Region   `json:"regions"`
}

// Default returns the single-region body layout:
// a 900px wide canvas, body text at 18px with 20px lines, auto height.
func Default() Layout {
	return Layout{
		Name:       "default",
		Width:      DefaultWidth,
		Padding:    DefaultPadding,
		Background: raster.White,
		Regions: []Region{{
			TextRegion: layout.TextRegion{
				Name:       "body",
				Scale:      DefaultSize,
				LineHeight: DefaultLineHeight,
			},
			Source: "file:" + DefaultInput,
		}},
	}
}

// DefaultLineHeightFor scales DefaultLineHeight with the font size (20px per 18px).
func DefaultLineHeightFor(scale float64) float64 {
	return math.Round(scale * DefaultLineHeight / DefaultSize)
}

// RenderConfig converts the layout to the immutable render input.
func (l Layout) RenderConfig() layout.RenderConfig {
	cfg := layout.RenderConfig{
		Width:      l.Width,
		Height:     l.Height,
		Padding:    l.Padding,
		Background: l.Background,
	}
	for _, r := range l.Regions {
		cfg.Regions = append(cfg.Regions, r.TextRegion)
	}
	return cfg
}

// Validate 检查布局是否可渲染。
func (l Layout) Validate() error {
	if l.Width <= 0 {
		return fmt.Errorf("%w: width 必须为正数，实际 %d", ErrInvalidLayout, l.Width)
	}
	if l.Height < 0 {
		return fmt.Errorf("%w: height 不能为负数，实际 %d", ErrInvalidLayout, l.Height)
	}
	if l.Padding < 0 {
		return fmt.Errorf("%w: padding 不能为负数，实际 %d", ErrInvalidLayout, l.Padding)
	}
	if _, err := glyph.ParseEngine(l.Engine); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if len(l.Regions) == 0 {
		return fmt.Errorf("%w: 至少需要一个 region", ErrInvalidLayout)
	}
	seen := map[string]bool{}
	for _, r := range l.Regions {
		if r.Name == "" {
			return fmt.Errorf("%w: region 缺少名称", ErrInvalidLayout)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: region %s 重复定义", ErrInvalidLayout, r.Name)
		}
		seen[r.Name] = true
		if r.Scale <= 0 {
			return fmt.Errorf("%w: region %s 的 size 必须为正数", ErrInvalidLayout, r.Name)
		}
		if r.LineHeight <= 0 {
			return fmt.Errorf("%w: region %s 的 line-height 必须为正数", ErrInvalidLayout, r.Name)
		}
		if r.MaxWidth < 0 {
			return fmt.Errorf("%w: region %s 的 max-width 不能为负数", ErrInvalidLayout, r.Name)
		}
		if _, err := source.ParseRef(r.Source); err != nil {
			return fmt.Errorf("%w: region %s: %v", ErrInvalidLayout, r.Name, err)
		}
	}
	return nil
}

// ApplyEnv fills the engine and region fonts from INKLINE_ENGINE and
// INKLINE_FONT where the layout leaves them empty.
func ApplyEnv(l *Layout, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if l.Engine == "" {
		l.Engine = getenv(EnvEngine)
	}
	if font := getenv(EnvFont); font != "" {
		for i := range l.Regions {
			if l.Regions[i].Font == "" {
				l.Regions[i].Font = font
			}
		}
	}
}

// Load 读取布局文件：.toml 按 TOML 解析，其余按布局 DSL 解析。
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("无法读取布局文件 %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		l, err := ParseTOML(data)
		if err != nil {
			return Layout{}, fmt.Errorf("解析 TOML 布局 %s 失败: %w", path, err)
		}
		return l, nil
	}
	doc, err := dsl.ParseString(string(data))
	if err != nil {
		return Layout{}, fmt.Errorf("解析布局 DSL %s 失败: %w", path, err)
	}
	l, err := FromDSL(doc)
	if err != nil {
		return Layout{}, fmt.Errorf("布局 %s 无效: %w", path, err)
	}
	return l, nil
}

// canvasDefaults is the starting point for layout files: default canvas
// settings and no regions.
func canvasDefaults() Layout {
	l := Default()
	l.Regions = nil
	return l
}

// fillRegionDefaults applies size and line-height defaults to a parsed region.
func fillRegionDefaults(r *Region) {
	if r.Scale == 0 {
		r.Scale = DefaultSize
	}
	if r.LineHeight == 0 {
		r.LineHeight = DefaultLineHeightFor(r.Scale)
	}
}
