// Package plan renders calculated ceiling layouts as floor plans.
//
// # SVG Output
//
// [RenderSVG] draws a top-down plan of a [lighting.Layout]: the room, the
// ceiling elements (peripheral band, plain rectangle, island), optional
// cove channels, one filled circle per fixture and optional dimension
// labels. Coordinates are scaled from feet to pixels, 30 px/ft by default.
//
//	svg := plan.RenderSVG(layout,
//	    plan.WithScale(40),
//	    plan.WithLabels(),
//	    plan.WithCoveLights(),
//	)
//
// PNG and PDF output go through [render.ToPNG] and [render.ToPDF].
//
// # JSON Output
//
// [RenderJSON] writes the layout document consumed by external tools and
// published over MQTT. [ParseJSON] reads it back.
//
// [render.ToPNG]: github.com/matzehuels/ceilplan/pkg/render.ToPNG
// [render.ToPDF]: github.com/matzehuels/ceilplan/pkg/render.ToPDF
package plan
