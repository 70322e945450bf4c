package glyph

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face is a font at one size.
type Face struct {
	face font.Face
	size float64
}

// Glyph is one rune positioned on a line. Pen is the x position of the
// glyph origin relative to the start of the line.
type Glyph struct {
	Rune rune
	Pen  fixed.Int26_6
}

// Run is the left-to-right layout of one line.
type Run struct {
	Glyphs  []Glyph
	Advance fixed.Int26_6 // pen position after the last glyph
}

// Width returns the run's advance in pixels.
func (r Run) Width() float64 { return fixedToFloat64(r.Advance) }

// Coverage is the anti-aliasing mask of one glyph in pixel space.
// Values are row-major over Bounds, each in [0,1].
type Coverage struct {
	Bounds image.Rectangle
	Values []float64
}

// At returns the coverage at absolute pixel (x, y), 0 outside Bounds.
func (c Coverage) At(x, y int) float64 {
	if !(image.Point{X: x, Y: y}).In(c.Bounds) {
		return 0
	}
	return c.Values[(y-c.Bounds.Min.Y)*c.Bounds.Dx()+(x-c.Bounds.Min.X)]
}

// Size returns the face size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Ascent returns the distance from the baseline to the top of the face.
func (f *Face) Ascent() float64 { return fixedToFloat64(f.face.Metrics().Ascent) }

// Layout positions every rune of line in input order using glyph advances
// only (no kerning). Runes the font lacks still appear and advance by
// whatever the engine reports, or by zero.
func (f *Face) Layout(line string) Run {
	var run Run
	var pen fixed.Int26_6
	for _, r := range line {
		run.Glyphs = append(run.Glyphs, Glyph{Rune: r, Pen: pen})
		if adv, ok := f.face.GlyphAdvance(r); ok {
			pen += adv
		}
	}
	run.Advance = pen
	return run
}

// Measure returns the advance width of s in pixels.
func (f *Face) Measure(s string) float64 {
	return f.Layout(s).Width()
}

// Rasterize returns the coverage of g drawn with its line origin at origin
// (baseline, 26.6 pixels). Bounds are absolute pixel coordinates. It
// returns false for glyphs with no ink, such as spaces.
func (f *Face) Rasterize(g Glyph, origin fixed.Point26_6) (Coverage, bool) {
	dot := fixed.Point26_6{X: origin.X + g.Pen, Y: origin.Y}
	dr, mask, maskp, _, ok := f.face.Glyph(dot, g.Rune)
	if !ok || dr.Empty() || mask == nil {
		return Coverage{}, false
	}

	cov := Coverage{
		Bounds: dr,
		Values: make([]float64, dr.Dx()*dr.Dy()),
	}
	// 引擎会在下次调用时复用 mask，这里必须拷贝出来。
	if alpha, isAlpha := mask.(*image.Alpha); isAlpha {
		for y := 0; y < dr.Dy(); y++ {
			for x := 0; x < dr.Dx(); x++ {
				a := alpha.AlphaAt(maskp.X+x, maskp.Y+y).A
				cov.Values[y*dr.Dx()+x] = float64(a) / 0xff
			}
		}
		return cov, true
	}
	for y := 0; y < dr.Dy(); y++ {
		for x := 0; x < dr.Dx(); x++ {
			_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			cov.Values[y*dr.Dx()+x] = float64(a) / 0xffff
		}
	}
	return cov, true
}

// Close releases the engine face.
func (f *Face) Close() error {
	return f.face.Close()
}
