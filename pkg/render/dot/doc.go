// Package dot renders lighting layouts as Graphviz wiring maps.
//
// [ToDOT] emits an undirected graph for the neato engine in which every
// fixture is a node pinned to its position in the room, colored by the
// ceiling layer it belongs to. With [Options.Wiring] set, the fixtures of
// each layer are chained in placement order, which reads as one lighting
// circuit per layer.
//
//	dot := dot.ToDOT(layout, dot.Options{Wiring: true})
//	svg, err := dot.RenderSVG(ctx, dot)
//
// Rendering uses the WebAssembly build of Graphviz bundled with
// go-graphviz, so no system installation is needed for SVG. PDF and PNG
// go through rsvg-convert.
package dot
