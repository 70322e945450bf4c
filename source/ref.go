package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ByLCY/inkline/binding"
	"github.com/ByLCY/inkline/weather"
)

// Kind identifies where a region's text comes from.
type Kind int

const (
	KindFile Kind = iota
	KindText
	KindEnv
	KindWeather
)

// DefaultWeatherTemplate renders the rounded temperature.
const DefaultWeatherTemplate = "${main.temp}°"

// Ref is a parsed source string: "file:path", "text:literal", "env:NAME"
// or "weather". A bare string without a known prefix is a file path.
type Ref struct {
	Kind  Kind
	Value string
}

// ParseRef 解析区域的数据来源描述。
func ParseRef(s string) (Ref, error) {
	kind, value, found := strings.Cut(s, ":")
	if !found {
		switch {
		case strings.TrimSpace(s) == "weather":
			return Ref{Kind: KindWeather}, nil
		case strings.TrimSpace(s) == "":
			return Ref{}, fmt.Errorf("数据来源为空")
		default:
			return Ref{Kind: KindFile, Value: s}, nil
		}
	}
	switch kind {
	case "file":
		if value == "" {
			return Ref{}, fmt.Errorf("file 来源缺少路径")
		}
		return Ref{Kind: KindFile, Value: value}, nil
	case "text":
		return Ref{Kind: KindText, Value: value}, nil
	case "env":
		if value == "" {
			return Ref{}, fmt.Errorf("env 来源缺少变量名")
		}
		return Ref{Kind: KindEnv, Value: value}, nil
	case "weather":
		return Ref{Kind: KindWeather, Value: value}, nil
	default:
		// 形如 C:\path 的路径
		return Ref{Kind: KindFile, Value: s}, nil
	}
}

// WeatherFetcher fetches the data weather regions interpolate.
type WeatherFetcher interface {
	Fetch(ctx context.Context) (map[string]any, error)
}

var _ WeatherFetcher = (*weather.Client)(nil)

// Resolver turns source refs into plain strings for the render pipeline.
// Weather data is fetched at most once per Resolver.
type Resolver struct {
	Weather WeatherFetcher
	Getenv  func(string) string

	weatherData map[string]any
}

// Resolve returns the text for ref, applying template to fetched data.
// A non-empty template also applies to env and text sources, with the
// resolved value available as ${value}.
func (r *Resolver) Resolve(ctx context.Context, ref Ref, template string) (string, error) {
	switch ref.Kind {
	case KindText:
		return applyTemplate(template, ref.Value), nil
	case KindEnv:
		getenv := r.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		return applyTemplate(template, getenv(ref.Value)), nil
	case KindWeather:
		data, err := r.fetchWeather(ctx)
		if err != nil {
			return "", err
		}
		if template == "" {
			template = DefaultWeatherTemplate
		}
		return binding.Interpolate(template, data), nil
	default:
		text, err := ReadFile(ref.Value)
		if err != nil {
			return "", err
		}
		return applyTemplate(template, text), nil
	}
}

func (r *Resolver) fetchWeather(ctx context.Context) (map[string]any, error) {
	if r.weatherData != nil {
		return r.weatherData, nil
	}
	if r.Weather == nil {
		return nil, fmt.Errorf("未配置天气数据来源")
	}
	data, err := r.Weather.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取天气数据失败: %w", err)
	}
	r.weatherData = data
	return data, nil
}

func applyTemplate(template, value string) string {
	if template == "" {
		return value
	}
	return binding.Interpolate(template, map[string]any{"value": value})
}
