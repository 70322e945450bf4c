package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ByLCY/inkline/config"
	"github.com/ByLCY/inkline/fonts"
	"github.com/ByLCY/inkline/glyph"
	"github.com/ByLCY/inkline/layout"
	"github.com/ByLCY/inkline/output"
	"github.com/ByLCY/inkline/render"
	"github.com/ByLCY/inkline/source"
	"github.com/ByLCY/inkline/weather"
)

// options 汇总命令行参数；set 记录用户显式给出的参数名。
type options struct {
	input         string
	output        string
	layoutPath    string
	debugPath     string
	width         int
	height        int
	padding       int
	lineHeight    float64
	size          float64
	font          string
	engine        string
	overlay       string
	overlaySize   float64
	overlayOffset string
	parallel      bool
	watch         bool
	timeout       time.Duration

	set map[string]bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "in", config.DefaultInput, "正文文本文件路径")
	flag.StringVar(&opts.output, "out", "output.bmp", "图像输出路径（.bmp/.png/.pdf）")
	flag.StringVar(&opts.layoutPath, "layout", "", "布局文件（.inkline DSL 或 .toml）")
	flag.StringVar(&opts.debugPath, "debug", "", "布局调试 JSON 输出路径")
	flag.IntVar(&opts.width, "width", config.DefaultWidth, "画布宽度（px）")
	flag.IntVar(&opts.height, "height", 0, "画布高度（px），0 表示按内容自动计算")
	flag.IntVar(&opts.padding, "padding", config.DefaultPadding, "上下边距（px）")
	flag.Float64Var(&opts.lineHeight, "line-height", config.DefaultLineHeight, "正文行距（px）")
	flag.Float64Var(&opts.size, "size", config.DefaultSize, "正文字号（px）")
	flag.StringVar(&opts.font, "font", "", "正文字体："+strings.Join(fonts.Builtins(), "/")+" 或字体文件路径")
	flag.StringVar(&opts.engine, "engine", "", "字形光栅化引擎：opentype/freetype")
	flag.StringVar(&opts.overlay, "overlay", "", "叠加层来源：weather、text:...、env:NAME 或 file:path")
	flag.Float64Var(&opts.overlaySize, "overlay-size", 96, "叠加层字号（px）")
	flag.StringVar(&opts.overlayOffset, "overlay-offset", "0,300", "叠加层偏移 dx,dy（px）")
	flag.BoolVar(&opts.parallel, "parallel", false, "并行绘制各区域")
	flag.BoolVar(&opts.watch, "watch", false, "输入文件变化时重新渲染")
	flag.DurationVar(&opts.timeout, "timeout", 10*time.Second, "外部数据请求超时")
	verbose := flag.Bool("verbose", false, "verbose logging")
	flag.Parse()

	opts.set = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	var err error
	var l *zap.Logger
	if *verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := renderOnce(ctx, opts, l); err != nil {
		if !opts.watch {
			l.Fatal("render", zap.Error(err))
		}
		l.Error("render", zap.Error(err))
	}
	if opts.watch {
		if err := watch(ctx, opts, l); err != nil {
			l.Fatal("watch", zap.Error(err))
		}
	}
}

// renderOnce 串联配置、数据来源、排版渲染与输出。
func renderOnce(ctx context.Context, opts options, l *zap.Logger) error {
	lay, err := buildLayout(opts, os.Getenv)
	if err != nil {
		return err
	}
	texts, err := resolveTexts(ctx, lay, opts.timeout)
	if err != nil {
		return err
	}

	engine, err := glyph.ParseEngine(lay.Engine)
	if err != nil {
		return err
	}
	r := render.New(fonts.NewRegistry(engine),
		render.WithLogger(l),
		render.WithParallel(opts.parallel))
	canvas, plan, err := r.Render(lay.RenderConfig(), texts)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}

	if opts.debugPath != "" {
		if err := writeDebug(plan, opts.debugPath); err != nil {
			return err
		}
	}
	if err := output.WriteFile(opts.output, canvas); err != nil {
		return err
	}
	l.Info("rendered",
		zap.String("layout", lay.Name),
		zap.Int("width", canvas.Width()),
		zap.Int("height", canvas.Height()),
		zap.Int("regions", len(plan.Blocks)),
		zap.String("engine", engine.String()),
		zap.String("path", opts.output))
	return nil
}

// buildLayout 按优先级合并：默认值 < 布局文件 < 显式命令行参数 < 环境变量（仅填充空缺）。
func buildLayout(opts options, getenv func(string) string) (config.Layout, error) {
	var lay config.Layout
	if opts.layoutPath != "" {
		var err error
		lay, err = config.Load(opts.layoutPath)
		if err != nil {
			return config.Layout{}, err
		}
	} else {
		lay = config.Default()
		lay.Regions[0].Source = "file:" + opts.input
		lay.Regions[0].Scale = opts.size
		lay.Regions[0].LineHeight = opts.lineHeight
		lay.Width = opts.width
		lay.Height = opts.height
		lay.Padding = opts.padding
	}

	if opts.set["width"] {
		lay.Width = opts.width
	}
	if opts.set["height"] {
		lay.Height = opts.height
	}
	if opts.set["padding"] {
		lay.Padding = opts.padding
	}
	if opts.set["engine"] {
		lay.Engine = opts.engine
	}
	if len(lay.Regions) > 0 {
		body := &lay.Regions[0]
		if opts.set["in"] {
			body.Source = "file:" + opts.input
		}
		if opts.set["size"] {
			body.Scale = opts.size
		}
		if opts.set["line-height"] {
			body.LineHeight = opts.lineHeight
		}
		if opts.font != "" {
			body.Font = opts.font
		}
	}

	if opts.overlay != "" {
		off, err := parseOffset(opts.overlayOffset)
		if err != nil {
			return config.Layout{}, err
		}
		lay.Regions = append(lay.Regions, config.Region{
			TextRegion: layout.TextRegion{
				Name:       "overlay",
				Font:       opts.font,
				Scale:      opts.overlaySize,
				LineHeight: config.DefaultLineHeightFor(opts.overlaySize),
				Offset:     off,
				Wrap:       layout.WrapNone,
			},
			Source: opts.overlay,
		})
	}

	config.ApplyEnv(&lay, getenv)
	if err := lay.Validate(); err != nil {
		return config.Layout{}, err
	}
	return lay, nil
}

func resolveTexts(ctx context.Context, lay config.Layout, timeout time.Duration) ([]string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	resolver := &source.Resolver{Weather: weather.FromEnv()}
	texts := make([]string, len(lay.Regions))
	for i, r := range lay.Regions {
		ref, err := source.ParseRef(r.Source)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", r.Name, err)
		}
		texts[i], err = resolver.Resolve(ctx, ref, r.Template)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", r.Name, err)
		}
	}
	return texts, nil
}

func parseOffset(v string) (layout.Offset, error) {
	dx, dy, ok := strings.Cut(v, ",")
	if !ok {
		return layout.Offset{}, fmt.Errorf("偏移格式应为 dx,dy：%q", v)
	}
	x, err := strconv.Atoi(strings.TrimSpace(dx))
	if err != nil {
		return layout.Offset{}, fmt.Errorf("无法解析偏移 %q: %w", v, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(dy))
	if err != nil {
		return layout.Offset{}, fmt.Errorf("无法解析偏移 %q: %w", v, err)
	}
	return layout.Offset{DX: x, DY: y}, nil
}

func writeDebug(plan *layout.Plan, debugPath string) error {
	if err := layout.WriteDebugJSON(plan, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
