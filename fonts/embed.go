package fonts

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default is the font used when a region names none.
const Default = "goregular"

// ErrUnknownFont is returned for built-in names that do not exist.
var ErrUnknownFont = errors.New("fonts: unknown built-in font")

var builtin = map[string][]byte{
	"goregular":   goregular.TTF,
	"gomono":      gomono.TTF,
	"latinmodern": lmroman10regular.TTF,
}

// Builtins returns the sorted names of the built-in fonts.
func Builtins() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name refers to a built-in font.
func IsBuiltin(name string) bool {
	_, ok := builtin[trimBuiltin(name)]
	return ok
}

// Load 返回字体的字节数据。name 可写为内置名称（"goregular"）、
// "builtin:goregular" / "built-in:goregular"，或字体文件路径。
func Load(name string) ([]byte, error) {
	key := trimBuiltin(name)
	if key == "" {
		key = Default
	}
	if data, ok := builtin[key]; ok {
		return data, nil
	}
	if hasBuiltinPrefix(name) || !strings.ContainsAny(name, `./\`) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFont, key)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", name, err)
	}
	return data, nil
}

func trimBuiltin(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "built-in:")
	name = strings.TrimPrefix(name, "builtin:")
	return strings.ToLower(name)
}

func hasBuiltinPrefix(name string) bool {
	name = strings.TrimSpace(name)
	return strings.HasPrefix(name, "builtin:") || strings.HasPrefix(name, "built-in:")
}
