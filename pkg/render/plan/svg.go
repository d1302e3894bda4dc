package plan

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/lighting"
)

// DefaultScale is the number of pixels per foot.
const DefaultScale = 30.0

const (
	margin = 40.0

	// Cove channels are drawn as thin strips just off the ceiling edge.
	coveWidth  = 0.1
	coveOffset = 0.05
)

const (
	colorRoomFill       = "#F1F0FB"
	colorRoomStroke     = "#8A898C"
	colorCeilingFill    = "#E5DEFF"
	colorCeilingStroke  = "#8B5CF6"
	colorOpenArea       = "#F6F3FF"
	colorCoveStroke     = "#FFCC00"
	colorFixtureFill    = "#FEF7CD"
	colorFixtureStroke  = "#F97316"
	colorRoomLabel      = "#333333"
	colorDimensionLabel = "#555555"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	labels bool
	coves  bool
	buf    bytes.Buffer
}

// WithScale sets the pixels-per-foot factor. Non-positive values are ignored.
func WithScale(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.scale = px
		}
	}
}

// WithLabels draws room and ceiling dimension labels.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithCoveLights draws the cove channels enabled in the design.
func WithCoveLights() SVGOption { return func(r *svgRenderer) { r.coves = true } }

// RenderSVG draws a top-down plan of l: the room, its ceiling elements in
// the order peripheral, plain, island, then cove channels, then one circle
// per fixture, then labels.
func RenderSVG(l lighting.Layout, opts ...SVGOption) []byte {
	r := &svgRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(r)
	}

	room := l.Config.Room
	w := math.Max(1, room.Width*r.scale)
	h := math.Max(1, room.Length*r.scale)
	fw, fh := w+2*margin, h+2*margin

	fmt.Fprintf(&r.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		fw, fh, fw, fh)
	fmt.Fprintf(&r.buf, `  <g transform="translate(%.1f %.1f)">`+"\n", margin, margin)

	fmt.Fprintf(&r.buf, `    <rect class="room" x="0" y="0" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		w, h, colorRoomFill, colorRoomStroke)

	plain, peripheral, island := l.Config.Layers()
	if peripheral != nil {
		r.peripheral(*peripheral, room)
	}
	if plain != nil {
		r.plain(*plain)
	}
	if island != nil {
		r.island(*island)
	}

	if r.coves {
		if peripheral != nil {
			r.peripheralCoves(*peripheral, room)
		}
		if plain != nil {
			r.rectCoves(plain.Cove, plain.LeftOffset, plain.TopOffset, plain.Width, plain.Length, 0)
		}
		if island != nil {
			r.islandCoves(*island)
		}
	}

	for _, p := range l.Positions {
		fmt.Fprintf(&r.buf, `    <circle class="fixture" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			p.X*r.scale, p.Y*r.scale, math.Max(1, p.Radius*r.scale), colorFixtureFill, colorFixtureStroke)
	}

	if r.labels {
		r.roomLabels(room)
		if peripheral != nil {
			r.bandLabels(*peripheral, room)
		}
		if plain != nil {
			r.sizeLabels(plain.LeftOffset, plain.TopOffset, plain.Width, plain.Length)
		}
		if island != nil {
			r.islandLabels(*island)
		}
	}

	r.buf.WriteString("  </g>\n</svg>\n")
	return r.buf.Bytes()
}

func (r *svgRenderer) px(v float64) float64 { return v * r.scale }

func (r *svgRenderer) rect(class string, x, y, w, h float64, fill, stroke string, strokeWidth float64) {
	fmt.Fprintf(&r.buf, `    <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`,
		class, r.px(x), r.px(y), r.px(math.Max(0, w)), r.px(math.Max(0, h)), fill)
	if stroke != "" {
		fmt.Fprintf(&r.buf, ` stroke="%s" stroke-width="%g"`, stroke, strokeWidth)
	}
	r.buf.WriteString("/>\n")
}

func (r *svgRenderer) line(class string, x1, y1, x2, y2 float64, stroke string, strokeWidth float64) {
	fmt.Fprintf(&r.buf, `    <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		class, r.px(x1), r.px(y1), r.px(x2), r.px(y2), stroke, strokeWidth)
}

func (r *svgRenderer) plain(p ceiling.Plain) {
	r.rect("ceiling plain", p.LeftOffset, p.TopOffset, p.Width, p.Length, colorCeilingFill, colorCeilingStroke, 2)
}

// peripheral fills the open area, then the enabled strips, then outlines
// the room and the inner edge of each strip. An inner edge runs through to
// the wall where the neighbouring side is disabled.
func (r *svgRenderer) peripheral(p ceiling.Peripheral, room ceiling.Room) {
	W, L, b := room.Width, room.Length, p.Width
	s := p.Sides

	r.rect("open-area", 0, 0, W, L, colorOpenArea, "", 0)
	if s.Top {
		r.rect("ceiling band", 0, 0, W, b, colorCeilingFill, "", 0)
	}
	if s.Right {
		r.rect("ceiling band", W-b, 0, b, L, colorCeilingFill, "", 0)
	}
	if s.Bottom {
		r.rect("ceiling band", 0, L-b, W, b, colorCeilingFill, "", 0)
	}
	if s.Left {
		r.rect("ceiling band", 0, 0, b, L, colorCeilingFill, "", 0)
	}
	r.rect("band-outline", 0, 0, W, L, "none", colorCeilingStroke, 2)

	from := func(on bool) float64 {
		if on {
			return b
		}
		return 0
	}
	if s.Top {
		r.line("band-edge", from(s.Left), b, W-from(s.Right), b, colorCeilingStroke, 2)
	}
	if s.Bottom {
		r.line("band-edge", from(s.Left), L-b, W-from(s.Right), L-b, colorCeilingStroke, 2)
	}
	if s.Left {
		r.line("band-edge", b, from(s.Top), b, L-from(s.Bottom), colorCeilingStroke, 2)
	}
	if s.Right {
		r.line("band-edge", W-b, from(s.Top), W-b, L-from(s.Bottom), colorCeilingStroke, 2)
	}
}

func (r *svgRenderer) island(i ceiling.Island) {
	cw := lighting.CutoutWidth(i)
	switch i.Shape.Family() {
	case ceiling.FamilyRectangle:
		if i.Width <= 0 || i.Length <= 0 {
			return
		}
		if !i.Shape.IsCutout() {
			r.rect("ceiling island", i.LeftOffset, i.TopOffset, i.Width, i.Length, colorCeilingFill, colorCeilingStroke, 2)
			return
		}
		x, y, w, l := r.px(i.LeftOffset), r.px(i.TopOffset), r.px(i.Width), r.px(i.Length)
		c := r.px(cw)
		fmt.Fprintf(&r.buf, `    <path class="ceiling island" d="M%.2f %.2fh%.2fv%.2fh%.2fZ M%.2f %.2fh%.2fv%.2fh%.2fZ" fill="%s" fill-rule="evenodd" stroke="%s" stroke-width="2"/>`+"\n",
			x, y, w, l, -w,
			x+c, y+c, w-2*c, l-2*c, -(w - 2*c),
			colorCeilingFill, colorCeilingStroke)
	case ceiling.FamilyCircle:
		if i.Radius <= 0 {
			return
		}
		r.ellipse(i.LeftOffset+i.Radius, i.TopOffset+i.Radius, i.Radius, i.Radius, i.Shape.IsCutout(), cw)
	case ceiling.FamilyOval:
		rx, ry := i.Radii()
		if rx <= 0 || ry <= 0 {
			return
		}
		r.ellipse(i.LeftOffset+rx, i.TopOffset+ry, rx, ry, i.Shape.IsCutout(), cw)
	}
}

// ellipse draws a filled ellipse, optionally with a concentric opening cw
// inside its edge.
func (r *svgRenderer) ellipse(cx, cy, rx, ry float64, cutout bool, cw float64) {
	if !cutout {
		fmt.Fprintf(&r.buf, `    <ellipse class="ceiling island" cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			r.px(cx), r.px(cy), r.px(rx), r.px(ry), colorCeilingFill, colorCeilingStroke)
		return
	}
	irx, iry := math.Max(0, rx-cw), math.Max(0, ry-cw)
	fmt.Fprintf(&r.buf, `    <path class="ceiling island" d="%s %s" fill="%s" fill-rule="evenodd" stroke="%s" stroke-width="2"/>`+"\n",
		r.ellipsePath(cx, cy, rx, ry), r.ellipsePath(cx, cy, irx, iry), colorCeilingFill, colorCeilingStroke)
}

func (r *svgRenderer) ellipsePath(cx, cy, rx, ry float64) string {
	x, y, a, b := r.px(cx-rx), r.px(cy), r.px(rx), r.px(ry)
	return fmt.Sprintf("M%.2f %.2fa%.2f %.2f 0 1 0 %.2f 0a%.2f %.2f 0 1 0 %.2f 0Z", x, y, a, b, 2*a, a, b, -2*a)
}

func (r *svgRenderer) coveStroke() float64 { return r.px(coveWidth) }

func (r *svgRenderer) coveRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	fmt.Fprintf(&r.buf, `    <rect class="cove" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		r.px(x), r.px(y), r.px(w), r.px(h), colorCoveStroke, r.coveStroke())
}

func (r *svgRenderer) coveEllipse(cx, cy, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	fmt.Fprintf(&r.buf, `    <ellipse class="cove" cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		r.px(cx), r.px(cy), r.px(rx), r.px(ry), colorCoveStroke, r.coveStroke())
}

// rectCoves outlines a rectangle just outside its edge (outer) and just
// inside an edge inset by inset (inner). The inset is the ring width for
// cutouts, so the inner cove runs around the opening.
func (r *svgRenderer) rectCoves(c ceiling.Cove, x, y, w, h, inset float64) {
	d := coveOffset + coveWidth/2
	if c.HasCove(ceiling.CoveOuter) {
		r.coveRect(x-d, y-d, w+2*d, h+2*d)
	}
	if c.HasCove(ceiling.CoveInner) {
		e := inset + d
		r.coveRect(x+e, y+e, w-2*e, h-2*e)
	}
}

func (r *svgRenderer) peripheralCoves(p ceiling.Peripheral, room ceiling.Room) {
	W, L, s := room.Width, room.Length, p.Sides
	d := coveOffset + coveWidth/2
	stroke := r.coveStroke()
	if p.HasCove(ceiling.CoveOuter) {
		if s.Top {
			r.line("cove", 0, d, W, d, colorCoveStroke, stroke)
		}
		if s.Bottom {
			r.line("cove", 0, L-d, W, L-d, colorCoveStroke, stroke)
		}
		if s.Left {
			r.line("cove", d, 0, d, L, colorCoveStroke, stroke)
		}
		if s.Right {
			r.line("cove", W-d, 0, W-d, L, colorCoveStroke, stroke)
		}
	}
	if p.HasCove(ceiling.CoveInner) {
		e := p.Width + coveWidth/2
		if s.Top {
			r.line("cove", p.Width, e, W-p.Width, e, colorCoveStroke, stroke)
		}
		if s.Bottom {
			r.line("cove", p.Width, L-e, W-p.Width, L-e, colorCoveStroke, stroke)
		}
		if s.Left {
			r.line("cove", e, p.Width, e, L-p.Width, colorCoveStroke, stroke)
		}
		if s.Right {
			r.line("cove", W-e, p.Width, W-e, L-p.Width, colorCoveStroke, stroke)
		}
	}
}

func (r *svgRenderer) islandCoves(i ceiling.Island) {
	var inset float64
	if i.Shape.IsCutout() {
		inset = lighting.CutoutWidth(i)
	}
	d := coveOffset + coveWidth/2

	switch i.Shape.Family() {
	case ceiling.FamilyRectangle:
		r.rectCoves(i.Cove, i.LeftOffset, i.TopOffset, i.Width, i.Length, inset)
	case ceiling.FamilyCircle, ceiling.FamilyOval:
		rx, ry := i.Radius, i.Radius
		if i.Shape.Family() == ceiling.FamilyOval {
			rx, ry = i.Radii()
		}
		cx, cy := i.LeftOffset+rx, i.TopOffset+ry
		if i.HasCove(ceiling.CoveOuter) {
			r.coveEllipse(cx, cy, rx+d, ry+d)
		}
		if i.HasCove(ceiling.CoveInner) {
			if inset > 0 {
				r.coveEllipse(cx, cy, rx-inset-d, ry-inset-d)
			} else {
				r.coveEllipse(cx, cy, rx-d, ry-d)
			}
		}
	}
}

func (r *svgRenderer) text(x, y float64, color, weight string, size int, rotate bool, s string) {
	transform := ""
	if rotate {
		transform = fmt.Sprintf(` transform="rotate(-90 %.2f %.2f)"`, x, y)
	}
	fmt.Fprintf(&r.buf, `    <text x="%.2f" y="%.2f" fill="%s" font-family="Arial, sans-serif" font-size="%d" font-weight="%s" text-anchor="middle" dominant-baseline="middle"%s>%s</text>`+"\n",
		x, y, color, size, weight, transform, s)
}

func (r *svgRenderer) roomLabels(room ceiling.Room) {
	w, h := r.px(room.Width), r.px(room.Length)
	r.text(w/2, -margin/2, colorRoomLabel, "bold", 14, false, fmt.Sprintf("Room width: %.1fft", room.Width))
	r.text(-margin/2, h/2, colorRoomLabel, "bold", 14, true, fmt.Sprintf("Room length: %.1fft", room.Length))
}

func (r *svgRenderer) sizeLabels(x, y, w, l float64) {
	r.text(r.px(x+w/2), r.px(y)+12, colorDimensionLabel, "normal", 12, false, fmt.Sprintf("%.1fft wide", w))
	r.text(r.px(x)+12, r.px(y+l/2), colorDimensionLabel, "normal", 12, true, fmt.Sprintf("%.1fft long", l))
}

func (r *svgRenderer) bandLabels(p ceiling.Peripheral, room ceiling.Room) {
	label := fmt.Sprintf("%.1fft", p.Width)
	W, L, b := room.Width, room.Length, p.Width
	if p.Sides.Top {
		r.text(r.px(W/2), r.px(b/2), colorDimensionLabel, "normal", 12, false, label)
	}
	if p.Sides.Bottom {
		r.text(r.px(W/2), r.px(L-b/2), colorDimensionLabel, "normal", 12, false, label)
	}
	if p.Sides.Left {
		r.text(r.px(b/2), r.px(L/2), colorDimensionLabel, "normal", 12, true, label)
	}
	if p.Sides.Right {
		r.text(r.px(W-b/2), r.px(L/2), colorDimensionLabel, "normal", 12, true, label)
	}
}

func (r *svgRenderer) islandLabels(i ceiling.Island) {
	switch i.Shape.Family() {
	case ceiling.FamilyRectangle:
		r.sizeLabels(i.LeftOffset, i.TopOffset, i.Width, i.Length)
	case ceiling.FamilyCircle, ceiling.FamilyOval:
		w, l := i.Bounds()
		r.text(r.px(i.LeftOffset+w/2), r.px(i.TopOffset+l)+14, colorDimensionLabel, "normal", 12, false, fmt.Sprintf("%.1fft × %.1fft", w, l))
	}
}
