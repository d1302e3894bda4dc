package pipeline

import (
	"github.com/matzehuels/ceilplan/pkg/cache"
	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/lighting"
	"github.com/matzehuels/ceilplan/pkg/render/plan"
)

// GenerateLayout validates cfg and calculates its fixture layout.
func GenerateLayout(cfg ceiling.Config) (lighting.Layout, error) {
	if err := cfg.Validate(); err != nil {
		return lighting.Layout{}, err
	}
	return lighting.Plan(cfg), nil
}

// MarshalLayout serializes a layout as the JSON document also served as
// the "json" artifact.
func MarshalLayout(l lighting.Layout) ([]byte, error) {
	return plan.RenderJSON(l)
}

// UnmarshalLayout reads a layout written by [MarshalLayout].
func UnmarshalLayout(data []byte) (lighting.Layout, error) {
	return plan.ParseJSON(data)
}

// DesignHash hashes a design for layout cache keys.
func DesignHash(cfg ceiling.Config) (string, error) {
	return cache.HashJSON(cfg)
}
