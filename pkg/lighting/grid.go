package lighting

import "math"

// Grid is a rows×cols fixture lattice. Rows run along the length (y) axis
// and columns along the width (x) axis.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Cells returns the number of lattice points.
func (g Grid) Cells() int { return g.Rows * g.Cols }

// SearchGrid looks for the grid closest to target in the ±1 neighbourhood
// of start, for a rectangle of width w and length l.
//
// A candidate must cover the target (rows·cols ≥ target) and follow the
// rectangle's orientation: a longer rectangle never gets more columns than
// rows, a wider one never more rows than columns. Among candidates the
// smallest excess wins, then the cols/rows ratio closest to w/l, then
// enumeration order (rows ascending, then cols ascending). If nothing in
// the neighbourhood qualifies, start is returned unchanged.
func SearchGrid(start Grid, target int, w, l float64) Grid {
	best := start
	bestExcess := math.MaxInt
	bestSkew := math.Inf(1)
	found := false

	for r := max(1, start.Rows-1); r <= start.Rows+1; r++ {
		for c := max(1, start.Cols-1); c <= start.Cols+1; c++ {
			g := Grid{Rows: r, Cols: c}
			if g.Cells() < target || !followsOrientation(g, w, l) {
				continue
			}
			excess := g.Cells() - target
			skew := math.Abs(float64(c)/float64(r) - w/l)
			if excess < bestExcess || (excess == bestExcess && skew < bestSkew) {
				best, bestExcess, bestSkew, found = g, excess, skew, true
			}
		}
	}
	if !found {
		return start
	}
	return best
}

func followsOrientation(g Grid, w, l float64) bool {
	switch {
	case l > w:
		return g.Rows >= g.Cols
	case w > l:
		return g.Cols >= g.Rows
	}
	return true
}

// orient swaps rows and columns when needed so the longer side carries
// at least as many lines as the shorter one.
func orient(g Grid, w, l float64) Grid {
	if !followsOrientation(g, w, l) {
		return Grid{Rows: g.Cols, Cols: g.Rows}
	}
	return g
}

// thin marks which lattice points of g to keep so exactly keep remain.
// Points are dropped from the four corners first, then in a checkerboard
// sweep, then in row-major order.
func thin(g Grid, keep int) [][]bool {
	mask := make([][]bool, g.Rows)
	for r := range mask {
		mask[r] = make([]bool, g.Cols)
		for c := range mask[r] {
			mask[r][c] = true
		}
	}

	remove := g.Cells() - keep
	drop := func(r, c int) {
		if remove > 0 && mask[r][c] {
			mask[r][c] = false
			remove--
		}
	}

	last := Grid{Rows: g.Rows - 1, Cols: g.Cols - 1}
	for _, p := range [][2]int{{0, 0}, {0, last.Cols}, {last.Rows, 0}, {last.Rows, last.Cols}} {
		drop(p[0], p[1])
	}
	for r := 0; r < g.Rows && remove > 0; r++ {
		for c := r % 2; c < g.Cols && remove > 0; c += 2 {
			drop(r, c)
		}
	}
	for r := 0; r < g.Rows && remove > 0; r++ {
		for c := 0; c < g.Cols && remove > 0; c++ {
			drop(r, c)
		}
	}
	return mask
}
