package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/lighting"
	"github.com/matzehuels/ceilplan/pkg/render"
)

// Options configures wiring map rendering.
type Options struct {
	// Detailed adds each fixture's coordinates to its label.
	Detailed bool
	// Wiring chains the fixtures of each layer in placement order, one
	// circuit per layer.
	Wiring bool
}

var layerColors = map[string]string{
	lighting.LayerPlain:      "#8B5CF6",
	lighting.LayerPeripheral: "#0EA5E9",
	lighting.LayerIsland:     "#F97316",
}

// ToDOT converts a layout to a Graphviz graph for the neato engine. Every
// fixture becomes a node pinned at its room position (one inch per foot,
// y pointing down), and the room outline is drawn from four pinned corner
// points. The result can be rendered with [RenderSVG], [RenderPDF] or
// [RenderPNG].
func ToDOT(l lighting.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#FEF7CD\", fixedsize=true, width=0.45, fontsize=9];\n")
	buf.WriteString("\n")

	room := l.Config.Room
	corners := [][2]float64{{0, 0}, {room.Width, 0}, {room.Width, room.Length}, {0, room.Length}}
	for i, c := range corners {
		fmt.Fprintf(&buf, "  corner%d [shape=point, width=0.05, pos=%q];\n", i, pos(c[0], c[1]))
	}
	for i := range corners {
		fmt.Fprintf(&buf, "  corner%d -- corner%d [color=\"#8A898C\", penwidth=2];\n", i, (i+1)%len(corners))
	}
	buf.WriteString("\n")

	n := 0
	for _, layer := range segments(l) {
		color := layerColors[layer.name]
		var prev string
		for _, p := range layer.positions {
			n++
			id := fmt.Sprintf("f%d", n)
			label := strconv.Itoa(n)
			if opts.Detailed {
				label = fmt.Sprintf("%d\n%.1f,%.1f", n, p.X, p.Y)
			}
			fmt.Fprintf(&buf, "  %s [label=%q, color=%q, pos=%q, tooltip=%q];\n", id, label, color, pos(p.X, p.Y), layer.name)
			if opts.Wiring && prev != "" {
				fmt.Fprintf(&buf, "  %s -- %s [color=%q, style=dashed];\n", prev, id, color)
			}
			prev = id
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// pos formats a pinned neato position. Graphviz puts the origin at the
// bottom left, so y is negated.
func pos(x, y float64) string {
	return strings.Join([]string{strconv.FormatFloat(x, 'f', 2, 64), strconv.FormatFloat(-y, 'f', 2, 64)}, ",") + "!"
}

type segment struct {
	name      string
	positions []ceiling.Position
}

// segments splits the concatenated positions back into layers using the
// per-layer counts of the summary, which follow the same order.
func segments(l lighting.Layout) []segment {
	var out []segment
	rest := l.Positions
	for _, s := range l.Summary.Layers {
		k := min(s.Placed, len(rest))
		out = append(out, segment{name: s.Layer, positions: rest[:k]})
		rest = rest[k:]
	}
	if len(rest) > 0 {
		out = append(out, segment{positions: rest})
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg header with one whose viewBox
// starts at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ConvertContext(ctx, svg, render.FormatPDF, 1)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ConvertContext(ctx, svg, render.FormatPNG, scale)
}
