package lighting

import (
	"math"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
)

// Plain places fixtures on a grid inside the plain ceiling rectangle.
//
// The grid spans the rectangle's interior after [MinWallDistance]
// clearance. If the interior collapses, a single fixture is placed at the
// rectangle's center. With an explicit LightCount exactly that many
// fixtures are returned.
func Plain(p ceiling.Plain) []ceiling.Position {
	effW, effL := plainInterior(p)
	if effW <= 0 || effL <= 0 {
		return []ceiling.Position{
			fixture(p.LeftOffset+p.Width/2, p.TopOffset+p.Length/2, PlainFixtureRadius),
		}
	}

	g := PlainGrid(p)
	xs := gridAxis(p.LeftOffset, p.Width, effW, g.Cols)
	ys := gridAxis(p.TopOffset, p.Length, effL, g.Rows)

	var mask [][]bool
	if p.LightCount > 0 && g.Cells() > p.LightCount {
		mask = thin(g, p.LightCount)
	}

	out := make([]ceiling.Position, 0, g.Cells())
	for r, y := range ys {
		for c, x := range xs {
			if mask != nil && !mask[r][c] {
				continue
			}
			out = append(out, fixture(x, y, PlainFixtureRadius))
		}
	}
	return out
}

// PlainGrid returns the lattice [Plain] lays out for p before any
// thinning. A collapsed interior yields a 1×1 grid.
func PlainGrid(p ceiling.Plain) Grid {
	w, l := p.Width, p.Length
	effW, effL := plainInterior(p)
	if effW <= 0 || effL <= 0 {
		return Grid{Rows: 1, Cols: 1}
	}

	if n := p.LightCount; n > 0 {
		if isSquare(w, l) {
			return squareGrid(n)
		}
		if n == 1 {
			return Grid{Rows: 1, Cols: 1}
		}
		aspect := l / w
		var start Grid
		if l > w {
			start.Rows = int(math.Ceil(math.Sqrt(float64(n) * aspect)))
			start.Cols = ceilDiv(n, start.Rows)
		} else {
			start.Cols = int(math.Ceil(math.Sqrt(float64(n) / aspect)))
			start.Rows = ceilDiv(n, start.Cols)
		}
		return SearchGrid(orient(start, w, l), n, w, l)
	}

	maxCols := int(math.Floor(effW/MinLightSpacing)) + 1
	maxRows := int(math.Floor(effL/MinLightSpacing)) + 1
	minCols := int(math.Ceil(effW/MaxLightSpacing)) + 1
	minRows := int(math.Ceil(effL/MaxLightSpacing)) + 1

	if isSquare(w, l) {
		n := max(2, min(maxRows, minRows))
		return Grid{Rows: n, Cols: n}
	}

	aspect := l / w
	var g Grid
	if l > w {
		g.Rows = max(2, minRows)
		g.Cols = max(1, min(maxCols, round(float64(g.Rows)/aspect)))
	} else {
		g.Cols = max(2, minCols)
		g.Rows = max(1, min(maxRows, round(float64(g.Cols)*aspect)))
	}
	return orient(g, w, l)
}

// squareGrid returns the smallest square lattice covering n, dropping one
// row when the square overshoots n by more than [MaxOvershoot].
func squareGrid(n int) Grid {
	side := int(math.Ceil(math.Sqrt(float64(n))))
	g := Grid{Rows: side, Cols: side}
	if float64(g.Cells()) > float64(n)*MaxOvershoot {
		if g.Rows > 1 {
			g.Rows--
		} else if g.Cols > 1 {
			g.Cols--
		}
	}
	return g
}

func plainInterior(p ceiling.Plain) (effW, effL float64) {
	return math.Max(0, p.Width-2*MinWallDistance), math.Max(0, p.Length-2*MinWallDistance)
}

// gridAxis returns n evenly spaced coordinates across the interior of a
// span starting at offset. A single line is centered on the full span.
func gridAxis(offset, size, interior float64, n int) []float64 {
	if n == 1 {
		return []float64{offset + size/2}
	}
	step := interior / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + MinWallDistance + float64(i)*step
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
