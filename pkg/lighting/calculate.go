// Package lighting computes where light fixtures go on a false ceiling.
//
// [Calculate] is the entry point. It dispatches a [ceiling.Config] to the
// planner for each active ceiling element and concatenates the results in
// the fixed order plain, peripheral, island:
//
//   - [Plain] lays out a grid inside an inset rectangle, keeping
//     [MinWallDistance] clearance and spacing fixtures between
//     [MinLightSpacing] and [MaxLightSpacing].
//   - [Peripheral] distributes fixtures along the enabled sides of a
//     border band, on the band's midline.
//   - [Island] handles rectangles, circles and ovals, solid or with a
//     central cutout.
//
// All planners are pure functions: the same input always yields the same
// positions in the same order, and no input makes them fail. Invalid or
// degenerate geometry produces an empty list or a single centered fixture;
// use [ceiling.Config.Validate] to reject bad input up front.
//
// Coordinates are room-local feet with the origin at the room's top-left
// corner. Cove lights are a rendering concern and are never emitted here.
package lighting

import "github.com/matzehuels/ceilplan/pkg/ceiling"

// Calculate returns the fixture positions for cfg.
func Calculate(cfg ceiling.Config) []ceiling.Position {
	var out []ceiling.Position
	plain, peripheral, island := cfg.Layers()
	if plain != nil {
		out = append(out, Plain(*plain)...)
	}
	if peripheral != nil {
		out = append(out, Peripheral(*peripheral, cfg.Room.Width, cfg.Room.Length)...)
	}
	if island != nil {
		out = append(out, Island(*island)...)
	}
	return out
}

func fixture(x, y, radius float64) ceiling.Position {
	return ceiling.Position{X: x, Y: y, Radius: radius, Kind: ceiling.KindRegular}
}
