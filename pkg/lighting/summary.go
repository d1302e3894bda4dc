package lighting

import "github.com/matzehuels/ceilplan/pkg/ceiling"

// Layer names used in summaries.
const (
	LayerPlain      = "plain"
	LayerPeripheral = "peripheral"
	LayerIsland     = "island"
)

// LayerSummary describes the fixtures planned for one ceiling element.
type LayerSummary struct {
	Layer string `json:"layer"`
	// Requested is the explicit light count, or the planner's own target
	// when the count is automatic.
	Requested int `json:"requested"`
	// Placed is the number of positions actually emitted.
	Placed int                    `json:"placed"`
	Shape  ceiling.Shape          `json:"shape,omitempty"`
	Grid   *Grid                  `json:"grid,omitempty"`
	Sides  *SideCounts            `json:"sides,omitempty"`
	Coves  []ceiling.CovePosition `json:"coves,omitempty"`
}

// Summary is the per-layer breakdown of a layout.
type Summary struct {
	Layers []LayerSummary `json:"layers"`
	Total  int            `json:"total"`
}

// Layout is a calculated design: the positions from [Calculate] together
// with their [Summary].
type Layout struct {
	Config    ceiling.Config     `json:"config"`
	Positions []ceiling.Position `json:"positions"`
	Summary   Summary            `json:"summary"`
}

// Plan runs [Calculate] and [Summarize] on cfg.
func Plan(cfg ceiling.Config) Layout {
	return Layout{Config: cfg, Positions: Calculate(cfg), Summary: Summarize(cfg)}
}

// Summarize reports, per active layer, how many fixtures were requested
// and placed, along with layout details and enabled cove positions.
func Summarize(cfg ceiling.Config) Summary {
	var s Summary
	plain, peripheral, island := cfg.Layers()

	if plain != nil {
		placed := len(Plain(*plain))
		g := PlainGrid(*plain)
		s.add(LayerSummary{
			Layer:     LayerPlain,
			Requested: requested(plain.LightCount, placed),
			Placed:    placed,
			Grid:      &g,
			Coves:     coves(plain.Cove),
		})
	}
	if peripheral != nil {
		placed := len(Peripheral(*peripheral, cfg.Room.Width, cfg.Room.Length))
		s.add(LayerSummary{
			Layer:     LayerPeripheral,
			Requested: requested(peripheral.LightCount, placed),
			Placed:    placed,
			Sides:     PeripheralCounts(*peripheral, cfg.Room.Width, cfg.Room.Length),
			Coves:     coves(peripheral.Cove),
		})
	}
	if island != nil {
		ls := LayerSummary{
			Layer:     LayerIsland,
			Requested: TargetCount(*island),
			Placed:    len(Island(*island)),
			Shape:     island.Shape,
			Coves:     coves(island.Cove),
		}
		switch island.Shape {
		case ceiling.ShapeRectangle:
			g := IslandGrid(island.Width, island.Length, ls.Requested)
			ls.Grid = &g
		case ceiling.ShapeRectangularCutout:
			ls.Sides = CutoutCounts(*island)
		}
		s.add(ls)
	}
	return s
}

func (s *Summary) add(l LayerSummary) {
	s.Layers = append(s.Layers, l)
	s.Total += l.Placed
}

func requested(explicit, placed int) int {
	if explicit > 0 {
		return explicit
	}
	return placed
}

func coves(c ceiling.Cove) []ceiling.CovePosition {
	var out []ceiling.CovePosition
	for _, p := range []ceiling.CovePosition{ceiling.CoveInner, ceiling.CoveOuter} {
		if c.HasCove(p) {
			out = append(out, p)
		}
	}
	return out
}
