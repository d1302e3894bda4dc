// Package ceiling defines the room and false-ceiling data model.
//
// A [Config] describes a room and one ceiling layout: a [Plain] inset
// rectangle, a [Peripheral] border band, an [Island] shape, or a
// [Combined] stack of the three. All dimensions are in feet and all
// coordinates are room-local with the origin at the room's top-left corner.
//
// Values are plain structs with no behavior beyond defaults and
// validation; the fixture calculator lives in package lighting.
//
// JSON field names follow the configuration objects of the browser
// designer (camelCase), while TOML and YAML design files use snake_case:
//
//	[room]
//	width = 12.0
//	length = 15.0
//	height = 9.0
//
//	type = "plain"
//
//	[plain]
//	width = 9.6
//	length = 12.0
//	left_offset = 1.2
//	top_offset = 1.5
package ceiling

import "fmt"

// Type selects the ceiling archetype.
type Type string

const (
	TypePlain      Type = "plain"
	TypePeripheral Type = "peripheral"
	TypeIsland     Type = "island"
	TypeCombined   Type = "combined"
)

// Types lists all ceiling types in display order.
var Types = []Type{TypePlain, TypePeripheral, TypeIsland, TypeCombined}

// ParseType converts a string to a Type.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown ceiling type %q (must be one of: plain, peripheral, island, combined)", s)
}

// CovePosition places a cove light channel along a ceiling edge.
type CovePosition string

const (
	CoveInner CovePosition = "inner"
	CoveOuter CovePosition = "outer"
)

// Kind distinguishes calculated fixtures from renderer-synthesized cove lights.
type Kind string

const (
	KindRegular Kind = "regular"
	KindCove    Kind = "cove"
)

// Room holds the room dimensions. Height is informational only.
type Room struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Length float64 `json:"length" toml:"length" yaml:"length"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Cove configures cove lighting for a ceiling element. It only affects
// rendering, never the fixture count.
type Cove struct {
	CoveLight     bool           `json:"coveLight,omitempty" toml:"cove_light,omitempty" yaml:"cove_light,omitempty"`
	CovePositions []CovePosition `json:"coveLightPositions,omitempty" toml:"cove_positions,omitempty" yaml:"cove_positions,omitempty"`
}

// HasCove reports whether cove lighting is enabled at position p.
func (c Cove) HasCove(p CovePosition) bool {
	if !c.CoveLight {
		return false
	}
	for _, cp := range c.CovePositions {
		if cp == p {
			return true
		}
	}
	return false
}

// Plain is a single flat rectangle inset from the room's edges.
// LightCount of zero selects the automatic fixture count.
type Plain struct {
	Width      float64 `json:"width" toml:"width" yaml:"width"`
	Length     float64 `json:"length" toml:"length" yaml:"length"`
	LeftOffset float64 `json:"leftOffset" toml:"left_offset" yaml:"left_offset"`
	TopOffset  float64 `json:"topOffset" toml:"top_offset" yaml:"top_offset"`
	LightCount int     `json:"lightCount,omitempty" toml:"light_count,omitempty" yaml:"light_count,omitempty"`
	Cove       `toml:"cove,omitempty" yaml:",inline"`
}

// Sides enables the individual edges of a band or ring.
type Sides struct {
	Top    bool `json:"top" toml:"top" yaml:"top"`
	Right  bool `json:"right" toml:"right" yaml:"right"`
	Bottom bool `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   bool `json:"left" toml:"left" yaml:"left"`
}

// AllSides has every edge enabled.
var AllSides = Sides{Top: true, Right: true, Bottom: true, Left: true}

// Count returns the number of enabled sides.
func (s Sides) Count() int {
	n := 0
	for _, on := range []bool{s.Top, s.Right, s.Bottom, s.Left} {
		if on {
			n++
		}
	}
	return n
}

// Peripheral is a border band of constant width along enabled room edges.
type Peripheral struct {
	Width      float64 `json:"width" toml:"width" yaml:"width"`
	Sides      Sides   `json:"sides" toml:"sides" yaml:"sides"`
	LightCount int     `json:"lightCount,omitempty" toml:"light_count,omitempty" yaml:"light_count,omitempty"`
	Cove       `toml:"cove,omitempty" yaml:",inline"`
}

// Island is a free-standing ceiling shape. Which dimension fields apply
// depends on Shape: rectangles use Width and Length, circles use Radius,
// ovals use RadiusX and RadiusY (falling back to Width/2 and Length/2).
// Offsets are the origin of the shape's bounding box.
type Island struct {
	Shape       Shape   `json:"shape" toml:"shape" yaml:"shape"`
	Width       float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Length      float64 `json:"length,omitempty" toml:"length,omitempty" yaml:"length,omitempty"`
	Radius      float64 `json:"radius,omitempty" toml:"radius,omitempty" yaml:"radius,omitempty"`
	RadiusX     float64 `json:"radiusX,omitempty" toml:"radius_x,omitempty" yaml:"radius_x,omitempty"`
	RadiusY     float64 `json:"radiusY,omitempty" toml:"radius_y,omitempty" yaml:"radius_y,omitempty"`
	LeftOffset  float64 `json:"leftOffset" toml:"left_offset" yaml:"left_offset"`
	TopOffset   float64 `json:"topOffset" toml:"top_offset" yaml:"top_offset"`
	CutoutWidth float64 `json:"cutoutWidth,omitempty" toml:"cutout_width,omitempty" yaml:"cutout_width,omitempty"`
	// Sides selects the ring edges of a rectangular cutout. Nil means all four.
	Sides      *Sides `json:"sides,omitempty" toml:"sides,omitempty" yaml:"sides,omitempty"`
	LightCount int    `json:"lightCount,omitempty" toml:"light_count,omitempty" yaml:"light_count,omitempty"`
	Cove       `toml:"cove,omitempty" yaml:",inline"`
}

// EnabledSides returns the cutout ring sides, defaulting to all four.
func (i Island) EnabledSides() Sides {
	if i.Sides == nil {
		return AllSides
	}
	return *i.Sides
}

// Radii returns the effective oval radii.
func (i Island) Radii() (rx, ry float64) {
	rx, ry = i.RadiusX, i.RadiusY
	if rx == 0 {
		rx = i.Width / 2
	}
	if ry == 0 {
		if i.Length != 0 {
			ry = i.Length / 2
		} else {
			ry = i.Width / 2
		}
	}
	return rx, ry
}

// Bounds returns the island's bounding box size.
func (i Island) Bounds() (w, l float64) {
	switch i.Shape.Family() {
	case FamilyCircle:
		return 2 * i.Radius, 2 * i.Radius
	case FamilyOval:
		rx, ry := i.Radii()
		return 2 * rx, 2 * ry
	default:
		return i.Width, i.Length
	}
}

// Combined layers plain, peripheral and island ceilings.
type Combined struct {
	UsePlain      bool        `json:"usePlain" toml:"use_plain" yaml:"use_plain"`
	UsePeripheral bool        `json:"usePeripheral" toml:"use_peripheral" yaml:"use_peripheral"`
	UseIsland     bool        `json:"useIsland" toml:"use_island" yaml:"use_island"`
	Plain         *Plain      `json:"plainConfig,omitempty" toml:"plain,omitempty" yaml:"plain,omitempty"`
	Peripheral    *Peripheral `json:"peripheralConfig,omitempty" toml:"peripheral,omitempty" yaml:"peripheral,omitempty"`
	Island        *Island     `json:"islandConfig,omitempty" toml:"island,omitempty" yaml:"island,omitempty"`
}

// Config is a complete ceiling design.
type Config struct {
	Room       Room        `json:"roomDimensions" toml:"room" yaml:"room"`
	Type       Type        `json:"ceilingType" toml:"type" yaml:"type"`
	Plain      *Plain      `json:"plainConfig,omitempty" toml:"plain,omitempty" yaml:"plain,omitempty"`
	Peripheral *Peripheral `json:"peripheralConfig,omitempty" toml:"peripheral,omitempty" yaml:"peripheral,omitempty"`
	Island     *Island     `json:"islandConfig,omitempty" toml:"island,omitempty" yaml:"island,omitempty"`
	Combined   *Combined   `json:"combinedConfig,omitempty" toml:"combined,omitempty" yaml:"combined,omitempty"`
}

// Layers returns the ceiling elements that are active for c, in the fixed
// order plain, peripheral, island. Missing sub-configs are omitted.
func (c Config) Layers() (plain *Plain, peripheral *Peripheral, island *Island) {
	switch c.Type {
	case TypePlain:
		return c.Plain, nil, nil
	case TypePeripheral:
		return nil, c.Peripheral, nil
	case TypeIsland:
		return nil, nil, c.Island
	case TypeCombined:
		if c.Combined == nil {
			return nil, nil, nil
		}
		if c.Combined.UsePlain {
			plain = c.Combined.Plain
		}
		if c.Combined.UsePeripheral {
			peripheral = c.Combined.Peripheral
		}
		if c.Combined.UseIsland {
			island = c.Combined.Island
		}
		return plain, peripheral, island
	}
	return nil, nil, nil
}

// Position is a single light in room-local feet.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Kind   Kind    `json:"type"`
}
