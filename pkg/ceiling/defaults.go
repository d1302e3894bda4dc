package ceiling

import "math"

// Default design values used when a ceiling type is first selected.
const (
	DefaultRoomWidth  = 12.0
	DefaultRoomLength = 15.0
	DefaultRoomHeight = 9.0

	// DefaultCutoutWidth is the ring thickness of a new cutout island.
	DefaultCutoutWidth = 0.5

	plainScale      = 0.8
	plainOffset     = 0.1
	islandScale     = 0.4
	islandOffset    = 0.3
	bandScale       = 0.15
	maxDefaultBand  = 2.0
	circleLights    = 7
	circularCutouts = 5
)

// DefaultRoom returns the room a new design starts from.
func DefaultRoom() Room {
	return Room{Width: DefaultRoomWidth, Length: DefaultRoomLength, Height: DefaultRoomHeight}
}

// DefaultPlain returns a plain ceiling covering 80% of the room, centered.
func DefaultPlain(r Room) Plain {
	return Plain{
		Width:      r.Width * plainScale,
		Length:     r.Length * plainScale,
		LeftOffset: r.Width * plainOffset,
		TopOffset:  r.Length * plainOffset,
	}
}

// DefaultPeripheral returns a band on all four sides, at most 2 ft wide.
func DefaultPeripheral(r Room) Peripheral {
	return Peripheral{
		Width: math.Min(maxDefaultBand, math.Min(r.Width, r.Length)*bandScale),
		Sides: AllSides,
	}
}

// DefaultIsland returns a rectangular island covering 40% of the room, centered.
func DefaultIsland(r Room) Island {
	return Island{
		Shape:      ShapeRectangle,
		Width:      r.Width * islandScale,
		Length:     r.Length * islandScale,
		LeftOffset: r.Width * islandOffset,
		TopOffset:  r.Length * islandOffset,
	}
}

// DefaultCombined enables a plain ceiling inside a peripheral band and
// prepares, but does not enable, an island.
func DefaultCombined(r Room) Combined {
	plain := DefaultPlain(r)
	peripheral := DefaultPeripheral(r)
	island := DefaultIsland(r)
	return Combined{
		UsePlain:      true,
		UsePeripheral: true,
		Plain:         &plain,
		Peripheral:    &peripheral,
		Island:        &island,
	}
}

// NewConfig builds a complete default design of type t for room r.
func NewConfig(r Room, t Type) Config {
	cfg := Config{Room: r, Type: t}
	switch t {
	case TypePlain:
		p := DefaultPlain(r)
		cfg.Plain = &p
	case TypePeripheral:
		p := DefaultPeripheral(r)
		cfg.Peripheral = &p
	case TypeIsland:
		i := DefaultIsland(r)
		cfg.Island = &i
	case TypeCombined:
		c := DefaultCombined(r)
		cfg.Combined = &c
	}
	return cfg
}

// WithShape returns a copy of i converted to shape s. The bounding box is
// kept centered where it was: circles take the inscribed radius, ovals
// take half the width and length, and cutouts get the default ring width.
// Circular shapes also get a preset light count.
func (i Island) WithShape(s Shape) Island {
	out := i
	out.Shape = s
	switch s.Family() {
	case FamilyCircle:
		w, l := i.Bounds()
		r := math.Min(w, l) / 2
		out.Radius = r
		out.LeftOffset = i.LeftOffset + w/2 - r
		out.TopOffset = i.TopOffset + l/2 - r
		out.LightCount = circleLights
		if s.IsCutout() {
			out.LightCount = circularCutouts
		}
	case FamilyOval:
		w, l := i.Bounds()
		out.RadiusX = w / 2
		out.RadiusY = l / 2
	case FamilyRectangle:
		if w, l := i.Bounds(); i.Shape.Family() != FamilyRectangle {
			out.Width, out.Length = w, l
		}
	}
	if s.IsCutout() && out.CutoutWidth == 0 {
		out.CutoutWidth = DefaultCutoutWidth
	}
	return out
}

// Rescale adapts the proportional parts of c to a new room, the way the
// designer does when room dimensions change: plain and island ceilings
// keep their proportions and the band width follows the room.
func (c Config) Rescale(r Room) Config {
	out := c
	out.Room = r
	if c.Type == TypePlain && c.Plain != nil {
		p := *c.Plain
		d := DefaultPlain(r)
		p.Width, p.Length, p.LeftOffset, p.TopOffset = d.Width, d.Length, d.LeftOffset, d.TopOffset
		out.Plain = &p
	}
	if c.Type == TypeCombined && c.Combined != nil {
		cc := *c.Combined
		if cc.Plain != nil {
			p := *cc.Plain
			d := DefaultPlain(r)
			p.Width, p.Length, p.LeftOffset, p.TopOffset = d.Width, d.Length, d.LeftOffset, d.TopOffset
			cc.Plain = &p
		}
		if cc.Island != nil {
			i := *cc.Island
			d := DefaultIsland(r)
			i.Width, i.Length, i.LeftOffset, i.TopOffset = d.Width, d.Length, d.LeftOffset, d.TopOffset
			cc.Island = &i
		}
		if cc.Peripheral != nil {
			p := *cc.Peripheral
			p.Width = DefaultPeripheral(r).Width
			cc.Peripheral = &p
		}
		out.Combined = &cc
	}
	return out
}
