package dot

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/lighting"
)

func plan(typ ceiling.Type) lighting.Layout {
	return lighting.Plan(ceiling.NewConfig(ceiling.DefaultRoom(), typ))
}

func TestToDOTNodes(t *testing.T) {
	for _, typ := range ceiling.Types {
		t.Run(string(typ), func(t *testing.T) {
			l := plan(typ)
			dot := ToDOT(l, Options{})

			if !strings.HasPrefix(dot, "graph G {") || !strings.HasSuffix(dot, "}\n") {
				t.Fatal("not a complete DOT graph")
			}
			if !strings.Contains(dot, "layout=neato;") {
				t.Error("missing neato layout")
			}
			if got := strings.Count(dot, "tooltip="); got != len(l.Positions) {
				t.Errorf("fixture nodes = %d, want %d", got, len(l.Positions))
			}
			if got := strings.Count(dot, "shape=point"); got != 4 {
				t.Errorf("corner nodes = %d, want 4", got)
			}
			if strings.Contains(dot, "style=dashed") {
				t.Error("wiring drawn without Options.Wiring")
			}
		})
	}
}

func TestToDOTPinned(t *testing.T) {
	dot := ToDOT(plan(ceiling.TypePlain), Options{})

	if !strings.Contains(dot, `corner2 [shape=point, width=0.05, pos="12.00,-15.00!"]`) {
		t.Error("room corner not pinned")
	}
	if !strings.Contains(dot, `f1 [label="1", color="#8B5CF6", pos="3.20,-3.50!", tooltip="plain"]`) {
		t.Errorf("first fixture not pinned:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(plan(ceiling.TypePlain), Options{Detailed: true})
	if !strings.Contains(dot, `label="1\n3.2,3.5"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTWiring(t *testing.T) {
	l := plan(ceiling.TypeCombined)
	dot := ToDOT(l, Options{Wiring: true})

	want := 0
	for _, s := range l.Summary.Layers {
		if s.Placed > 0 {
			want += s.Placed - 1
		}
	}
	if got := strings.Count(dot, "style=dashed"); got != want {
		t.Errorf("wiring edges = %d, want %d", got, want)
	}
	// Circuits never cross layers.
	first := l.Summary.Layers[0].Placed
	edge := "f" + strconv.Itoa(first) + " -- f" + strconv.Itoa(first+1) + " "
	if strings.Contains(dot, edge) {
		t.Errorf("wiring crosses layers: %s", edge)
	}
}

func TestSegments(t *testing.T) {
	l := plan(ceiling.TypeCombined)
	segs := segments(l)
	if len(segs) != len(l.Summary.Layers) {
		t.Fatalf("segments = %d, want %d", len(segs), len(l.Summary.Layers))
	}
	total := 0
	for i, s := range segs {
		if s.name != l.Summary.Layers[i].Layer {
			t.Errorf("segment %d = %q, want %q", i, s.name, l.Summary.Layers[i].Layer)
		}
		total += len(s.positions)
	}
	if total != len(l.Positions) {
		t.Errorf("positions covered = %d, want %d", total, len(l.Positions))
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(plan(ceiling.TypePlain), Options{Wiring: true}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not svg")
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "graph {"); err == nil {
		t.Error("expected parse error")
	}
}
