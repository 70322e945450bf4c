// Package glyph adapts external font rasterizers to the text pipeline.
//
// A Font is parsed once and is safe for concurrent use. A Face is a font
// at one size; it reuses internal buffers and must not be shared between
// goroutines.
package glyph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Sentinel errors for the glyph package.
var (
	// ErrInvalidFont is returned when font data cannot be parsed.
	ErrInvalidFont = errors.New("glyph: invalid font data")

	// ErrInvalidSize is returned for non-positive face sizes.
	ErrInvalidSize = errors.New("glyph: size must be positive")
)

// Engine selects the rasterization backend.
type Engine uint8

const (
	// EngineOpenType uses golang.org/x/image/font/opentype.
	EngineOpenType Engine = iota
	// EngineFreeType uses github.com/golang/freetype/truetype.
	EngineFreeType
)

func (e Engine) String() string {
	switch e {
	case EngineFreeType:
		return "freetype"
	default:
		return "opentype"
	}
}

// ParseEngine parses "opentype" or "freetype". Empty selects opentype.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "opentype", "sfnt", "x/image":
		return EngineOpenType, nil
	case "freetype", "truetype":
		return EngineFreeType, nil
	default:
		return EngineOpenType, fmt.Errorf("glyph: unknown engine %q", s)
	}
}

// Font is parsed outline data bound to an engine.
type Font struct {
	engine Engine
	ot     *opentype.Font
	tt     *truetype.Font
}

// Parse parses TTF/OTF data with the given engine.
func Parse(data []byte, engine Engine) (*Font, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidFont)
	}
	switch engine {
	case EngineFreeType:
		tt, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
		}
		return &Font{engine: engine, tt: tt}, nil
	default:
		ot, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
		}
		return &Font{engine: EngineOpenType, ot: ot}, nil
	}
}

// Engine returns the backend the font was parsed with.
func (f *Font) Engine() Engine { return f.engine }

// Face returns a face at size pixels per em (72 DPI, unhinted so glyphs
// can be positioned at sub-pixel offsets).
func (f *Font) Face(size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSize, size)
	}
	if f.tt != nil {
		face := truetype.NewFace(f.tt, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		return &Face{face: face, size: size}, nil
	}
	face, err := opentype.NewFace(f.ot, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: create face: %w", err)
	}
	return &Face{face: face, size: size}, nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// Fixed converts a pixel coordinate to 26.6 fixed point, rounding to the
// nearest 1/64 pixel.
func Fixed(v float64) fixed.Int26_6 {
	if v < 0 {
		return -fixed.Int26_6(-v*64 + 0.5)
	}
	return fixed.Int26_6(v*64 + 0.5)
}
