// Package render lays out text regions and composites them onto a canvas.
package render

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/inkline/glyph"
	"github.com/ByLCY/inkline/layout"
	"github.com/ByLCY/inkline/raster"
)

// FontSet resolves region font names to parsed fonts.
type FontSet interface {
	Font(name string) (*glyph.Font, error)
}

// Job pairs a region with the text drawn into it.
type Job struct {
	Region layout.TextRegion
	Text   string
}

// Renderer runs the wrap → layout → draw pipeline for a sequence of jobs.
type Renderer struct {
	fonts    FontSet
	logger   *zap.Logger
	parallel bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger; nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l == nil {
			l = zap.NewNop()
		}
		r.logger = l
	}
}

// WithParallel draws each job into a private layer concurrently and merges
// the layers in job order afterwards.
func WithParallel(on bool) Option {
	return func(r *Renderer) { r.parallel = on }
}

// New creates a renderer resolving fonts through fonts.
func New(fonts FontSet, opts ...Option) *Renderer {
	r := &Renderer{fonts: fonts, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Jobs pairs cfg.Regions with texts by index.
func Jobs(cfg layout.RenderConfig, texts []string) ([]Job, error) {
	if len(texts) != len(cfg.Regions) {
		return nil, fmt.Errorf("区域数量 %d 与文本数量 %d 不一致", len(cfg.Regions), len(texts))
	}
	jobs := make([]Job, len(texts))
	for i, region := range cfg.Regions {
		jobs[i] = Job{Region: region, Text: texts[i]}
	}
	return jobs, nil
}

// Render 按 cfg 渲染 texts（与 cfg.Regions 一一对应），返回画布与布局结果。
func (r *Renderer) Render(cfg layout.RenderConfig, texts []string) (*raster.Canvas, *layout.Plan, error) {
	jobs, err := Jobs(cfg, texts)
	if err != nil {
		return nil, nil, err
	}
	plan, err := r.Plan(cfg, jobs)
	if err != nil {
		return nil, nil, err
	}
	canvas := raster.New(plan.Width, plan.Height)
	canvas.Fill(cfg.Background)
	if err := r.Compose(canvas, plan, jobs); err != nil {
		return nil, nil, err
	}
	return canvas, plan, nil
}

// Plan wraps and positions every job. A zero cfg.Height is resolved to the
// tallest block's content height.
func (r *Renderer) Plan(cfg layout.RenderConfig, jobs []Job) (*layout.Plan, error) {
	plan := &layout.Plan{Width: cfg.Width, Height: cfg.Height}
	autoHeight := 0
	for _, job := range jobs {
		face, err := r.face(job.Region)
		if err != nil {
			return nil, err
		}
		lines := layout.Wrap(job.Text, job.Region.WrapWidth(cfg.Width), face, job.Region.Wrap)
		block := PlanBlock(face, lines, job.Region, cfg.Width, cfg.Padding)
		_ = face.Close()

		plan.Blocks = append(plan.Blocks, block)
		autoHeight = max(autoHeight, layout.ContentHeight(len(lines), job.Region.LineHeight, cfg.Padding))
		r.logger.Debug("planned region",
			zap.String("region", job.Region.Name),
			zap.Int("lines", len(lines)),
			zap.Float64("scale", job.Region.Scale))
	}
	if plan.Height <= 0 {
		plan.Height = max(autoHeight, 2*cfg.Padding)
	}
	return plan, nil
}

// Compose draws the planned jobs onto canvas in order; later jobs overwrite
// earlier ones where they overlap.
func (r *Renderer) Compose(canvas *raster.Canvas, plan *layout.Plan, jobs []Job) error {
	if len(plan.Blocks) != len(jobs) {
		return fmt.Errorf("布局块数量 %d 与任务数量 %d 不一致", len(plan.Blocks), len(jobs))
	}
	if r.parallel && len(jobs) > 1 {
		return r.composeParallel(canvas, plan, jobs)
	}
	for i, job := range jobs {
		if err := r.drawJob(canvas, job, plan.Blocks[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) composeParallel(canvas *raster.Canvas, plan *layout.Plan, jobs []Job) error {
	layers := make([]*raster.Layer, len(jobs))
	var g errgroup.Group
	for i, job := range jobs {
		g.Go(func() error {
			layer := raster.NewLayer(canvas.Width(), canvas.Height())
			if err := r.drawJob(layer, job, plan.Blocks[i]); err != nil {
				return err
			}
			layers[i] = layer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, layer := range layers {
		layer.MergeInto(canvas)
	}
	return nil
}

func (r *Renderer) drawJob(dst raster.Surface, job Job, block layout.BlockPlan) error {
	face, err := r.face(job.Region)
	if err != nil {
		return err
	}
	defer face.Close()
	DrawBlock(dst, face, block)
	r.logger.Debug("drew region", zap.String("region", job.Region.Name), zap.Int("lines", len(block.Lines)))
	return nil
}

func (r *Renderer) face(region layout.TextRegion) (*glyph.Face, error) {
	font, err := r.fonts.Font(region.Font)
	if err != nil {
		return nil, fmt.Errorf("区域 %s 加载字体失败: %w", region.Name, err)
	}
	face, err := font.Face(region.Scale)
	if err != nil {
		return nil, fmt.Errorf("区域 %s 创建字体面失败: %w", region.Name, err)
	}
	return face, nil
}
