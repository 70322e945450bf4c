package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/inkline/dsl"
	"github.com/ByLCY/inkline/layout"
	"github.com/ByLCY/inkline/raster"
)

const sampleDSL = `
layout card {
  width: 640
  padding: 12
  background: #fafafa
  engine: freetype

  region body {
    source: "file:input.txt"
    size: 13.5pt
    align: left
    max-width: 400
  }

  region overlay {
    source: "weather"
    template: "${main.temp:%.1f}°C"
    font: gomono
    size: 96
    offset: 0 300
    wrap: none
  }
}
`

const sampleTOML = `
name = "card"
width = 640
padding = 12
background = "#fafafa"
engine = "freetype"

[[region]]
name = "body"
source = "file:input.txt"
size = "13.5pt"
align = "left"
max_width = 400

[[region]]
name = "overlay"
source = "weather"
template = "${main.temp:%.1f}°C"
font = "gomono"
size = 96
offset = [0, 300]
wrap = "none"
`

func TestDefault(t *testing.T) {
	l := Default()
	require.NoError(t, l.Validate())
	assert.Equal(t, 900, l.Width)
	assert.Equal(t, 0, l.Height)
	assert.Equal(t, 10, l.Padding)
	assert.Equal(t, raster.White, l.Background)
	require.Len(t, l.Regions, 1)
	assert.Equal(t, 18.0, l.Regions[0].Scale)
	assert.Equal(t, 20.0, l.Regions[0].LineHeight)
	assert.Equal(t, layout.AlignCenter, l.Regions[0].Align)
}

func TestDefaultLineHeightFor(t *testing.T) {
	assert.Equal(t, 20.0, DefaultLineHeightFor(18))
	assert.Equal(t, 107.0, DefaultLineHeightFor(96))
}

func TestFromDSL(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	require.NoError(t, err)
	l, err := FromDSL(doc)
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	assert.Equal(t, "card", l.Name)
	assert.Equal(t, 640, l.Width)
	assert.Equal(t, 12, l.Padding)
	assert.Equal(t, raster.RGB{R: 0xfa, G: 0xfa, B: 0xfa}, l.Background)
	assert.Equal(t, "freetype", l.Engine)
	require.Len(t, l.Regions, 2)

	body := l.Regions[0]
	assert.InDelta(t, 18, body.Scale, 1e-9)
	assert.Equal(t, 20.0, body.LineHeight)
	assert.Equal(t, layout.AlignLeft, body.Align)
	assert.Equal(t, 400.0, body.MaxWidth)

	overlay := l.Regions[1]
	assert.Equal(t, "weather", overlay.Source)
	assert.Equal(t, "${main.temp:%.1f}°C", overlay.Template)
	assert.Equal(t, layout.Offset{DX: 0, DY: 300}, overlay.Offset)
	assert.Equal(t, layout.WrapNone, overlay.Wrap)
	assert.Equal(t, 107.0, overlay.LineHeight)
}

func TestTOMLMatchesDSL(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	require.NoError(t, err)
	fromDSL, err := FromDSL(doc)
	require.NoError(t, err)

	fromTOML, err := ParseTOML([]byte(sampleTOML))
	require.NoError(t, err)
	assert.Equal(t, fromDSL, fromTOML)
}

func TestParseTOMLRejectsUnknownFields(t *testing.T) {
	_, err := ParseTOML([]byte("width = 10\ncolour = \"red\"\n"))
	assert.Error(t, err)

	_, err = ParseTOML([]byte("[[region]]\nname = \"a\"\noffset = [1]\n"))
	assert.Error(t, err)
}

func TestFromDSLErrors(t *testing.T) {
	cases := []string{
		"layout a { colour: red }",
		"layout a { region r { size: big } }",
		"layout a { region r { offset: 10 } }",
		"layout a { region r { align: justify } }",
		"layout a { background: #zzz }",
	}
	for _, in := range cases {
		doc, err := dsl.ParseString(in)
		if err != nil {
			continue // 语法错误同样可接受
		}
		_, err = FromDSL(doc)
		assert.Error(t, err, in)
	}
}

func TestValidate(t *testing.T) {
	mutate := map[string]func(*Layout){
		"zero width":       func(l *Layout) { l.Width = 0 },
		"negative height":  func(l *Layout) { l.Height = -1 },
		"negative padding": func(l *Layout) { l.Padding = -1 },
		"bad engine":       func(l *Layout) { l.Engine = "cairo" },
		"no regions":       func(l *Layout) { l.Regions = nil },
		"empty name":       func(l *Layout) { l.Regions[0].Name = "" },
		"zero size":        func(l *Layout) { l.Regions[0].Scale = 0 },
		"zero line height": func(l *Layout) { l.Regions[0].LineHeight = 0 },
		"negative width":   func(l *Layout) { l.Regions[0].MaxWidth = -5 },
		"empty source":     func(l *Layout) { l.Regions[0].Source = "" },
		"duplicate name": func(l *Layout) {
			l.Regions = append(l.Regions, l.Regions[0])
		},
	}
	for name, fn := range mutate {
		l := Default()
		fn(&l)
		assert.ErrorIs(t, l.Validate(), ErrInvalidLayout, name)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvFont: "gomono", EnvEngine: "freetype"}
	getenv := func(k string) string { return env[k] }

	l := Default()
	l.Regions = append(l.Regions, Region{
		TextRegion: layout.TextRegion{Name: "fixed", Font: "latinmodern", Scale: 10, LineHeight: 11},
		Source:     "text:x",
	})
	ApplyEnv(&l, getenv)
	assert.Equal(t, "freetype", l.Engine)
	assert.Equal(t, "gomono", l.Regions[0].Font)
	assert.Equal(t, "latinmodern", l.Regions[1].Font)

	l = Default()
	l.Engine = "opentype"
	ApplyEnv(&l, getenv)
	assert.Equal(t, "opentype", l.Engine)
}

func TestRenderConfig(t *testing.T) {
	l := Default()
	l.Height = 120
	cfg := l.RenderConfig()
	assert.Equal(t, 900, cfg.Width)
	assert.Equal(t, 120, cfg.Height)
	require.Len(t, cfg.Regions, 1)
	assert.Equal(t, "body", cfg.Regions[0].Name)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	dslPath := filepath.Join(dir, "card.inkline")
	tomlPath := filepath.Join(dir, "card.TOML")
	require.NoError(t, os.WriteFile(dslPath, []byte(sampleDSL), 0o644))
	require.NoError(t, os.WriteFile(tomlPath, []byte(sampleTOML), 0o644))

	a, err := Load(dslPath)
	require.NoError(t, err)
	b, err := Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = Load(filepath.Join(dir, "missing.inkline"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.inkline")
	require.NoError(t, os.WriteFile(bad, []byte("layout x { nope: 1 }"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}
