package layout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Measurer 负责测量一行文本在目标字体与字号下的前进宽度（px）。
type Measurer interface {
	Measure(s string) float64
}

// Align 控制行在画布内的水平位置；零值为居中。
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// ParseAlign 解析 left/center/right（大小写不敏感，start/end 为别名）。
func ParseAlign(v string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "center", "centre", "middle":
		return AlignCenter, nil
	case "left", "start":
		return AlignLeft, nil
	case "right", "end":
		return AlignRight, nil
	default:
		return AlignCenter, fmt.Errorf("未知的对齐方式 %q", v)
	}
}

func (a Align) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

// WrapMode 指定折行策略；零值为按单词贪心折行。
type WrapMode int

const (
	// WrapWord packs whole words onto lines up to the width budget.
	WrapWord WrapMode = iota
	// WrapNone only breaks at explicit newlines.
	WrapNone
)

func (m WrapMode) String() string {
	if m == WrapNone {
		return "none"
	}
	return "word"
}

// ParseWrapMode 解析 word/none（normal/auto/nowrap 等为别名）。
func ParseWrapMode(v string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "word", "normal", "auto":
		return WrapWord, nil
	case "none", "nowrap", "no-wrap":
		return WrapNone, nil
	default:
		return WrapWord, fmt.Errorf("未知的折行方式 %q", v)
	}
}

func (m WrapMode) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }
