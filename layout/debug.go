package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDebugJSON 将布局结果（每个区域每一行的位置与宽度）输出为 JSON，
// 便于核对折行与居中。必要时创建父目录；plan 为 nil 时不做任何事。
func WriteDebugJSON(plan *Plan, path string) error {
	if plan == nil {
		return nil
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化布局失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
