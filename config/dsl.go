package config

import (
	"fmt"
	"math"

	"github.com/ByLCY/inkline/dsl"
	"github.com/ByLCY/inkline/layout"
	"github.com/ByLCY/inkline/raster"
)

// FromDSL 将布局 DSL 的 AST 转换为 Layout；未知属性会报错并给出位置。
func FromDSL(doc *dsl.Document) (Layout, error) {
	if doc == nil {
		return Layout{}, fmt.Errorf("%w: 文档为空", ErrInvalidLayout)
	}
	l := canvasDefaults()
	l.Name = doc.Name

	for _, a := range doc.Properties() {
		if err := applyCanvasProperty(&l, a); err != nil {
			return Layout{}, fmt.Errorf("%s: %w", a.Pos, err)
		}
	}
	for _, rd := range doc.Regions() {
		r := Region{TextRegion: layout.TextRegion{Name: rd.Name}}
		for _, a := range rd.Entries {
			if err := applyRegionProperty(&r, a); err != nil {
				return Layout{}, fmt.Errorf("%s: region %s: %w", a.Pos, rd.Name, err)
			}
		}
		fillRegionDefaults(&r)
		l.Regions = append(l.Regions, r)
	}
	return l, nil
}

func applyCanvasProperty(l *Layout, a *dsl.Assignment) error {
	var err error
	switch a.Key {
	case "width":
		l.Width, err = pixels(a.Text())
	case "height":
		l.Height, err = pixels(a.Text())
	case "padding":
		l.Padding, err = pixels(a.Text())
	case "background":
		l.Background, err = raster.ParseHex(a.Text())
	case "engine":
		l.Engine = a.Text()
	default:
		err = fmt.Errorf("未知属性 %s", a.Key)
	}
	return err
}

func applyRegionProperty(r *Region, a *dsl.Assignment) error {
	var err error
	switch a.Key {
	case "source":
		r.Source = a.Text()
	case "template":
		r.Template = a.Text()
	case "font":
		r.Font = a.Text()
	case "size":
		r.Scale, err = lengthPX(a.Text())
	case "line-height":
		r.LineHeight, err = lengthPX(a.Text())
	case "anchor":
		r.Anchor, err = lengthPX(a.Text())
	case "max-width":
		r.MaxWidth, err = lengthPX(a.Text())
	case "offset":
		r.Offset, err = parseOffset(a.Values)
	case "align":
		r.Align, err = layout.ParseAlign(a.Text())
	case "wrap":
		r.Wrap, err = layout.ParseWrapMode(a.Text())
	default:
		err = fmt.Errorf("未知属性 %s", a.Key)
	}
	return err
}

func parseOffset(values []*dsl.Value) (layout.Offset, error) {
	if len(values) != 2 {
		return layout.Offset{}, fmt.Errorf("offset 需要两个值 (dx dy)，实际 %d 个", len(values))
	}
	dx, err := pixels(values[0].Text())
	if err != nil {
		return layout.Offset{}, err
	}
	dy, err := pixels(values[1].Text())
	if err != nil {
		return layout.Offset{}, err
	}
	return layout.Offset{DX: dx, DY: dy}, nil
}

func lengthPX(v string) (float64, error) {
	l, err := layout.ParseLength(v)
	if err != nil {
		return 0, err
	}
	return l.ToPX(), nil
}

// pixels parses an integral pixel length; pt values are rounded.
func pixels(v string) (int, error) {
	px, err := lengthPX(v)
	if err != nil {
		return 0, err
	}
	return int(math.Round(px)), nil
}
