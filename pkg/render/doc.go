// Package render turns calculated lighting layouts into visual outputs.
//
// # Overview
//
// Two renderers live in subpackages:
//
//   - [plan]: a scaled top-down ceiling plan as SVG, plus a JSON export
//   - [dot]: a Graphviz wiring map with fixtures pinned at their room
//     coordinates
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). Both renderers use them.
//
//	svg := plan.RenderSVG(layout, plan.WithLabels())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [ConvertContext] does the same but stops the conversion when its
// context is cancelled.
//
// [plan]: github.com/matzehuels/ceilplan/pkg/render/plan
// [dot]: github.com/matzehuels/ceilplan/pkg/render/dot
package render
