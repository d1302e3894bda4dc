package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/ceilplan/pkg/lighting"
	"github.com/matzehuels/ceilplan/pkg/render"
	"github.com/matzehuels/ceilplan/pkg/render/dot"
	"github.com/matzehuels/ceilplan/pkg/render/plan"
)

// Render generates output artifacts in the requested formats. Image
// formats come from the plan or the wiring map depending on opts.View;
// "json" and "dot" are the same for both views.
func Render(ctx context.Context, l lighting.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r := renderer{layout: l, opts: opts}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := r.render(ctx, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderer shares the intermediate SVG and DOT between formats of one run.
type renderer struct {
	layout lighting.Layout
	opts   Options
	svg    []byte
	dot    string
}

func (r *renderer) render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return MarshalLayout(r.layout)
	case FormatDOT:
		return []byte(r.dotSource()), nil
	case FormatSVG:
		return r.image(ctx)
	case FormatPNG, FormatPDF:
		if r.opts.IsMap() && format == FormatPNG {
			return dot.RenderPNG(ctx, r.dotSource(), r.opts.PNGScale)
		}
		if r.opts.IsMap() {
			return dot.RenderPDF(ctx, r.dotSource())
		}
		svg, err := r.image(ctx)
		if err != nil {
			return nil, err
		}
		return render.ConvertContext(ctx, svg, format, r.opts.PNGScale)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func (r *renderer) image(ctx context.Context) ([]byte, error) {
	if r.svg != nil {
		return r.svg, nil
	}
	if r.opts.IsMap() {
		svg, err := dot.RenderSVG(ctx, r.dotSource())
		if err != nil {
			return nil, err
		}
		r.svg = svg
		return svg, nil
	}
	r.svg = plan.RenderSVG(r.layout, r.svgOptions()...)
	return r.svg, nil
}

func (r *renderer) dotSource() string {
	if r.dot == "" {
		r.dot = dot.ToDOT(r.layout, dot.Options{Detailed: r.opts.Detailed, Wiring: r.opts.Wiring})
	}
	return r.dot
}

func (r *renderer) svgOptions() []plan.SVGOption {
	opts := []plan.SVGOption{plan.WithScale(r.opts.Scale)}
	if r.opts.Labels {
		opts = append(opts, plan.WithLabels())
	}
	if r.opts.Coves {
		opts = append(opts, plan.WithCoveLights())
	}
	return opts
}
