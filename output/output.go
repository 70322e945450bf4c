// Package output serializes finished canvases to image files.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/inkline/raster"
)

// ErrUnknownFormat is returned for output paths with an unsupported extension.
var ErrUnknownFormat = errors.New("output: unknown image format")

// Encoder 将画布编码为最终文件格式，例如 BMP、PNG 或 PDF。
type Encoder interface {
	Encode(w io.Writer, c *raster.Canvas) error
}

// ForPath 根据扩展名选择编码器；无扩展名时使用 BMP。
func ForPath(path string) (Encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".bmp":
		return BMP{}, nil
	case ".png":
		return PNG{}, nil
	case ".pdf":
		return PDF{DPI: DefaultDPI}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
}

// WriteFile encodes c with the encoder matching path and writes it,
// creating parent directories as needed.
func WriteFile(path string, c *raster.Canvas) error {
	enc, err := ForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, c); err != nil {
		return fmt.Errorf("编码图像失败: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入图像文件 %s 失败: %w", path, err)
	}
	return nil
}
