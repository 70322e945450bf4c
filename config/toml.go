package config

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/ByLCY/inkline/layout"
	"github.com/ByLCY/inkline/raster"
)

type tomlLayout struct {
	Name       string       `toml:"name"`
	Width      *int         `toml:"width"`
	Height     *int         `toml:"height"`
	Padding    *int         `toml:"padding"`
	Background string       `toml:"background"`
	Engine     string       `toml:"engine"`
	Regions    []tomlRegion `toml:"region"`
}

type tomlRegion struct {
	Name       string `toml:"name"`
	Source     string `toml:"source"`
	Template   string `toml:"template"`
	Font       string `toml:"font"`
	Size       any    `toml:"size"`
	LineHeight any    `toml:"line_height"`
	Offset     []int  `toml:"offset"`
	Anchor     any    `toml:"anchor"`
	MaxWidth   any    `toml:"max_width"`
	Align      string `toml:"align"`
	Wrap       string `toml:"wrap"`
}

// ParseTOML 解析 TOML 格式的布局，字段与布局 DSL 一一对应。未知字段会报错。
func ParseTOML(data []byte) (Layout, error) {
	var t tomlLayout
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return Layout{}, err
	}

	l := canvasDefaults()
	l.Name = t.Name
	l.Engine = t.Engine
	if t.Width != nil {
		l.Width = *t.Width
	}
	if t.Height != nil {
		l.Height = *t.Height
	}
	if t.Padding != nil {
		l.Padding = *t.Padding
	}
	if t.Background != "" {
		bg, err := raster.ParseHex(t.Background)
		if err != nil {
			return Layout{}, err
		}
		l.Background = bg
	}

	for _, tr := range t.Regions {
		r, err := tr.region()
		if err != nil {
			return Layout{}, fmt.Errorf("region %s: %w", tr.Name, err)
		}
		l.Regions = append(l.Regions, r)
	}
	return l, nil
}

func (tr tomlRegion) region() (Region, error) {
	r := Region{
		TextRegion: layout.TextRegion{Name: tr.Name, Font: tr.Font},
		Source:     tr.Source,
		Template:   tr.Template,
	}
	var err error
	if r.Scale, err = anyPX(tr.Size); err != nil {
		return Region{}, fmt.Errorf("size: %w", err)
	}
	if r.LineHeight, err = anyPX(tr.LineHeight); err != nil {
		return Region{}, fmt.Errorf("line_height: %w", err)
	}
	if r.Anchor, err = anyPX(tr.Anchor); err != nil {
		return Region{}, fmt.Errorf("anchor: %w", err)
	}
	if r.MaxWidth, err = anyPX(tr.MaxWidth); err != nil {
		return Region{}, fmt.Errorf("max_width: %w", err)
	}
	switch len(tr.Offset) {
	case 0:
	case 2:
		r.Offset = layout.Offset{DX: tr.Offset[0], DY: tr.Offset[1]}
	default:
		return Region{}, fmt.Errorf("offset 需要两个值 [dx, dy]，实际 %d 个", len(tr.Offset))
	}
	if r.Align, err = layout.ParseAlign(tr.Align); err != nil {
		return Region{}, err
	}
	if r.Wrap, err = layout.ParseWrapMode(tr.Wrap); err != nil {
		return Region{}, err
	}
	fillRegionDefaults(&r)
	return r, nil
}

// anyPX accepts a TOML number (pixels) or a length string such as "72pt".
func anyPX(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		return lengthPX(n)
	default:
		return 0, fmt.Errorf("不支持的长度值 %s", strconv.Quote(fmt.Sprint(v)))
	}
}
