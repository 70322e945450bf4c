package fonts

import (
	"fmt"
	"sync"

	"github.com/ByLCY/inkline/glyph"
)

// Registry parses each named font once and hands out the shared *glyph.Font.
type Registry struct {
	engine glyph.Engine

	mu    sync.Mutex
	cache map[string]*glyph.Font
	blobs map[string][]byte // injected by name, take precedence over Load
}

// NewRegistry creates a registry parsing fonts with the given engine.
func NewRegistry(engine glyph.Engine) *Registry {
	return &Registry{
		engine: engine,
		cache:  map[string]*glyph.Font{},
		blobs:  map[string][]byte{},
	}
}

// Add injects font data under name, replacing any earlier entry.
func (r *Registry) Add(name string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[name] = data
	delete(r.cache, name)
}

// Font returns the parsed font for name; empty selects Default.
func (r *Registry) Font(name string) (*glyph.Font, error) {
	if name == "" {
		name = Default
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.cache[name]; ok {
		return f, nil
	}
	data, ok := r.blobs[name]
	if !ok {
		var err error
		data, err = Load(name)
		if err != nil {
			return nil, err
		}
	}
	f, err := glyph.Parse(data, r.engine)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
	}
	r.cache[name] = f
	return f, nil
}
