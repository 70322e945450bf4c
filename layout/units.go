package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe lengths for sizes and offsets in layout files.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitPX Unit = iota // pixels, the default
	UnitPT             // points
)

// Conversion constants between pt and px at 96 DPI.
const (
	PtToPx = 96.0 / 72.0
	PxToPt = 1.0 / PtToPx
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPT:
		return "pt"
	default:
		return "px"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToPX converts this length to pixels.
func (l Length) ToPX() float64 {
	if l.Unit == UnitPT {
		return l.Value * PtToPx
	}
	return l.Value
}

// ToPT converts this length to points.
func (l Length) ToPT() float64 {
	if l.Unit == UnitPT {
		return l.Value
	}
	return l.Value * PxToPt
}

// ParseLength parses "18", "18px" or "13.5pt". A bare number is pixels.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitPX
	num := v
	switch {
	case strings.HasSuffix(v, "px"):
		num = strings.TrimSpace(strings.TrimSuffix(v, "px"))
	case strings.HasSuffix(v, "pt"):
		unit = UnitPT
		num = strings.TrimSpace(strings.TrimSuffix(v, "pt"))
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
