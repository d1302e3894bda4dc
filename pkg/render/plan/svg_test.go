package plan

import (
	"strings"
	"testing"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/lighting"
)

func layoutFor(t *testing.T, cfg ceiling.Config) lighting.Layout {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test design: %v", err)
	}
	return lighting.Plan(cfg)
}

func TestRenderSVGFixtures(t *testing.T) {
	for _, typ := range ceiling.Types {
		t.Run(string(typ), func(t *testing.T) {
			l := layoutFor(t, ceiling.NewConfig(ceiling.DefaultRoom(), typ))
			svg := string(RenderSVG(l))

			if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
				t.Fatal("output is not a complete svg document")
			}
			if got := strings.Count(svg, `class="fixture"`); got != len(l.Positions) {
				t.Errorf("fixtures = %d, want %d", got, len(l.Positions))
			}
			if strings.Contains(svg, `class="cove"`) {
				t.Error("coves drawn without WithCoveLights")
			}
		})
	}
}

func TestRenderSVGScale(t *testing.T) {
	l := layoutFor(t, ceiling.NewConfig(ceiling.DefaultRoom(), ceiling.TypePlain))

	svg := string(RenderSVG(l))
	if !strings.Contains(svg, `viewBox="0 0 440.0 530.0"`) {
		t.Errorf("default scale viewBox missing:\n%s", svg[:120])
	}

	svg = string(RenderSVG(l, WithScale(10)))
	if !strings.Contains(svg, `viewBox="0 0 200.0 230.0"`) {
		t.Errorf("scaled viewBox missing:\n%s", svg[:120])
	}
	// First fixture of the default plain layout is at (3.2, 3.5) ft.
	if !strings.Contains(svg, `cx="32.00" cy="35.00" r="3.00"`) {
		t.Error("fixture not scaled to pixels")
	}

	if got := string(RenderSVG(l, WithScale(-1))); !strings.Contains(got, `viewBox="0 0 440.0 530.0"`) {
		t.Error("non-positive scale should be ignored")
	}
}

func TestRenderSVGDrawOrder(t *testing.T) {
	cfg := ceiling.NewConfig(ceiling.DefaultRoom(), ceiling.TypeCombined)
	cfg.Combined.UseIsland = true
	cfg.Combined.Plain.CoveLight = true
	cfg.Combined.Plain.CovePositions = []ceiling.CovePosition{ceiling.CoveOuter}
	svg := string(RenderSVG(layoutFor(t, cfg), WithCoveLights(), WithLabels()))

	order := []string{`class="room"`, `class="ceiling band"`, `class="ceiling plain"`, `class="ceiling island"`, `class="cove"`, `class="fixture"`, `<text`}
	last := -1
	for _, marker := range order {
		i := strings.Index(svg, marker)
		if i < 0 {
			t.Fatalf("%s missing", marker)
		}
		if i < last {
			t.Errorf("%s drawn out of order", marker)
		}
		last = i
	}
}

func TestRenderSVGCoves(t *testing.T) {
	both := []ceiling.CovePosition{ceiling.CoveInner, ceiling.CoveOuter}
	room := ceiling.DefaultRoom()

	tests := []struct {
		name  string
		cfg   func() ceiling.Config
		coves int
	}{
		{
			name: "PlainBoth",
			cfg: func() ceiling.Config {
				cfg := ceiling.NewConfig(room, ceiling.TypePlain)
				cfg.Plain.Cove = ceiling.Cove{CoveLight: true, CovePositions: both}
				return cfg
			},
			coves: 2,
		},
		{
			name: "PeripheralOuterThreeSides",
			cfg: func() ceiling.Config {
				cfg := ceiling.NewConfig(room, ceiling.TypePeripheral)
				cfg.Peripheral.Sides.Left = false
				cfg.Peripheral.Cove = ceiling.Cove{CoveLight: true, CovePositions: []ceiling.CovePosition{ceiling.CoveOuter}}
				return cfg
			},
			coves: 3,
		},
		{
			name: "PeripheralBoth",
			cfg: func() ceiling.Config {
				cfg := ceiling.NewConfig(room, ceiling.TypePeripheral)
				cfg.Peripheral.Cove = ceiling.Cove{CoveLight: true, CovePositions: both}
				return cfg
			},
			coves: 8,
		},
		{
			name: "CircularCutoutBoth",
			cfg: func() ceiling.Config {
				cfg := ceiling.NewConfig(room, ceiling.TypeIsland)
				island := cfg.Island.WithShape(ceiling.ShapeCircularCutout)
				island.Cove = ceiling.Cove{CoveLight: true, CovePositions: both}
				cfg.Island = &island
				return cfg
			},
			coves: 2,
		},
		{
			name: "Disabled",
			cfg: func() ceiling.Config {
				cfg := ceiling.NewConfig(room, ceiling.TypePlain)
				cfg.Plain.CovePositions = both
				return cfg
			},
			coves: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(layoutFor(t, tt.cfg()), WithCoveLights()))
			if got := strings.Count(svg, `class="cove"`); got != tt.coves {
				t.Errorf("coves = %d, want %d", got, tt.coves)
			}
		})
	}
}

func TestRenderSVGLabels(t *testing.T) {
	l := layoutFor(t, ceiling.NewConfig(ceiling.DefaultRoom(), ceiling.TypePlain))
	if strings.Contains(string(RenderSVG(l)), "Room width") {
		t.Error("labels drawn without WithLabels")
	}
	svg := string(RenderSVG(l, WithLabels()))
	for _, want := range []string{"Room width: 12.0ft", "Room length: 15.0ft", "9.6ft wide", "12.0ft long"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing label %q", want)
		}
	}
}

func TestRenderSVGIslandShapes(t *testing.T) {
	for _, shape := range ceiling.Shapes {
		t.Run(string(shape), func(t *testing.T) {
			cfg := ceiling.NewConfig(ceiling.DefaultRoom(), ceiling.TypeIsland)
			island := cfg.Island.WithShape(shape)
			cfg.Island = &island
			svg := string(RenderSVG(layoutFor(t, cfg)))
			if !strings.Contains(svg, `class="ceiling island"`) {
				t.Error("island not drawn")
			}
			if shape.IsCutout() && !strings.Contains(svg, `fill-rule="evenodd"`) {
				t.Error("cutout drawn without an opening")
			}
		})
	}
}
