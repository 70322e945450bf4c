package raster

// Layer is a private drawing buffer that remembers which pixels were
// written, so it can be merged onto a shared canvas without touching the
// pixels it never drew.
type Layer struct {
	*Canvas
	written []bool
}

var _ Surface = (*Layer)(nil)

// NewLayer creates an empty layer of the given size.
func NewLayer(width, height int) *Layer {
	c := New(width, height)
	return &Layer{Canvas: c, written: make([]bool, c.width*c.height)}
}

// Set writes a pixel and marks it as written; out-of-bounds writes are dropped.
func (l *Layer) Set(x, y int, col RGB) {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return
	}
	l.Canvas.Set(x, y, col)
	l.written[y*l.width+x] = true
}

// Written reports whether (x, y) was written.
func (l *Layer) Written(x, y int) bool {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return false
	}
	return l.written[y*l.width+x]
}

// MergeInto copies every written pixel onto dst at the same coordinates.
func (l *Layer) MergeInto(dst Surface) {
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			if !l.written[y*l.width+x] {
				continue
			}
			c, _ := l.At(x, y)
			dst.Set(x, y, c)
		}
	}
}
