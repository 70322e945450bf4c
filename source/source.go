// Package source reads the body text handed to the render pipeline.
package source

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Read 读取 UTF-8 文本：去除 BOM（若存在）并做 NFC 规范化，使组合字符
// 映射为单个预组合字形。
func Read(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, transform.Chain(dec, norm.NFC)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFile reads and normalizes the text file at path.
func ReadFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("无法打开文本文件 %s: %w", path, err)
	}
	defer file.Close()

	text, err := Read(file)
	if err != nil {
		return "", fmt.Errorf("读取文本文件 %s 失败: %w", path, err)
	}
	return text, nil
}
