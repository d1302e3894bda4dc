package plan

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/lighting"
)

// Units is the length unit of every coordinate in a layout document.
const Units = "ft"

type jsonOutput struct {
	Units     string             `json:"units"`
	Room      ceiling.Room       `json:"room"`
	Type      ceiling.Type       `json:"type"`
	Count     int                `json:"count"`
	Positions []ceiling.Position `json:"positions"`
	Summary   lighting.Summary   `json:"summary"`
	Design    ceiling.Config     `json:"design"`
}

// RenderJSON encodes l as an indented layout document: the room, every
// fixture position, the per-layer summary and the design it came from.
func RenderJSON(l lighting.Layout) ([]byte, error) {
	positions := l.Positions
	if positions == nil {
		positions = []ceiling.Position{}
	}
	out := jsonOutput{
		Units:     Units,
		Room:      l.Config.Room,
		Type:      l.Config.Type,
		Count:     len(positions),
		Positions: positions,
		Summary:   l.Summary,
		Design:    l.Config,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseJSON decodes a document produced by [RenderJSON] back into a layout.
func ParseJSON(data []byte) (lighting.Layout, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return lighting.Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return lighting.Layout{Config: in.Design, Positions: in.Positions, Summary: in.Summary}, nil
}
