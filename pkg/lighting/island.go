package lighting

import (
	"math"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
)

// Island places fixtures on a free-standing island. Solid shapes get a
// grid or a center-plus-ring pattern; cutout shapes only get fixtures on
// the ring around the opening. An unknown shape yields nothing.
func Island(i ceiling.Island) []ceiling.Position {
	switch i.Shape {
	case ceiling.ShapeRectangle:
		return islandRect(i)
	case ceiling.ShapeRectangularCutout:
		return rectCutout(i)
	case ceiling.ShapeCircle, ceiling.ShapeCircularCutout:
		return circle(i)
	case ceiling.ShapeOval, ceiling.ShapeOvalCutout:
		return oval(i)
	}
	return nil
}

// CutoutWidth returns the effective ring thickness of a cutout island.
func CutoutWidth(i ceiling.Island) float64 {
	cw := i.CutoutWidth
	if cw == 0 {
		cw = DefaultCutoutWidth
	}
	return math.Max(MinCutoutWidth, cw)
}

func islandRect(i ceiling.Island) []ceiling.Position {
	w, l := i.Width, i.Length
	if w <= 0 || l <= 0 {
		return nil
	}
	n := TargetCount(i)
	g := IslandGrid(w, l, n)

	out := make([]ceiling.Position, 0, n)
	for r := 1; r <= g.Rows; r++ {
		for c := 1; c <= g.Cols; c++ {
			if (r-1)*g.Cols+c > n {
				continue
			}
			x := i.LeftOffset + float64(c)*w/float64(g.Cols+1)
			y := i.TopOffset + float64(r)*l/float64(g.Rows+1)
			out = append(out, fixture(x, y, IslandFixtureRadius))
		}
	}
	return out
}

// IslandGrid returns the lattice used for a solid rectangular island of
// size w×l holding n fixtures. Square islands get the smallest covering
// square, one size smaller if that overshoots by more than [MaxOvershoot].
// Other islands derive rows from the aspect ratio and shed rows while the
// grid has more cells than needed, which settles on an exact factorization
// of n or a single row.
func IslandGrid(w, l float64, n int) Grid {
	if n <= 1 {
		return Grid{Rows: 1, Cols: 1}
	}
	if isSquare(w, l) {
		side := int(math.Ceil(math.Sqrt(float64(n))))
		if float64(side*side) > float64(n)*MaxOvershoot && side > 1 {
			side--
		}
		return Grid{Rows: side, Cols: side}
	}

	rows := max(1, round(math.Sqrt(float64(n)*l/w)))
	cols := ceilDiv(n, rows)
	for rows > 1 && rows*cols > n {
		rows--
		cols = ceilDiv(n, rows)
	}
	return Grid{Rows: rows, Cols: cols}
}

func rectCutout(i ceiling.Island) []ceiling.Position {
	w, l := i.Width, i.Length
	if w <= 0 || l <= 0 {
		return nil
	}
	counts := CutoutCounts(i)
	if counts == nil {
		return nil
	}

	cw := CutoutWidth(i)
	left, top := i.LeftOffset, i.TopOffset
	var out []ceiling.Position

	horizontal := func(n int, y float64) {
		if n == 1 {
			out = append(out, fixture(left+w/2, y, IslandFixtureRadius))
			return
		}
		step := (w - 2*cw) / float64(n-1)
		for k := 0; k < n; k++ {
			out = append(out, fixture(left+cw+float64(k)*step, y, IslandFixtureRadius))
		}
	}
	vertical := func(n int, x float64) {
		if n == 1 {
			out = append(out, fixture(x, top+l/2, IslandFixtureRadius))
			return
		}
		step := (l - 2*cw) / float64(n-1)
		for k := 0; k < n; k++ {
			out = append(out, fixture(x, top+cw+float64(k)*step, IslandFixtureRadius))
		}
	}

	if counts.Top > 0 {
		horizontal(counts.Top, top+cw/2)
	}
	if counts.Bottom > 0 {
		horizontal(counts.Bottom, top+l-cw/2)
	}
	if counts.Left > 0 {
		vertical(counts.Left, left+cw/2)
	}
	if counts.Right > 0 {
		vertical(counts.Right, left+w-cw/2)
	}
	return out
}

// CutoutCounts returns the per-side fixture counts on the ring of a
// rectangular cutout island, or nil when no side is enabled.
//
// Square islands split the count equally. Other islands favor the two
// long sides and trim the short ones, capping each side at one fixture
// per [InnerRingSpacing] of inner edge. The long/short split is computed
// for all four sides and disabled sides are dropped afterwards, so
// disabling a side never moves fixtures onto the others.
func CutoutCounts(i ceiling.Island) *SideCounts {
	edges := enabledEdges(i.EnabledSides())
	if len(edges) == 0 {
		return nil
	}
	n := TargetCount(i)
	if isSquare(i.Width, i.Length) {
		return splitEqual(n, edges).sides()
	}

	cw := CutoutWidth(i)
	innerW, innerL := i.Width-2*cw, i.Length-2*cw
	perimeter := 2*innerW + 2*innerL
	if perimeter <= 0 {
		return splitEqual(n, edges).sides()
	}
	wider := innerW > innerL
	longLen, shortLen := innerL, innerW
	if wider {
		longLen, shortLen = innerW, innerL
	}

	maxLong := int(math.Floor(longLen / InnerRingSpacing))
	maxShort := int(math.Floor(shortLen / InnerRingSpacing))
	long := max(1, min(maxLong, int(math.Floor(float64(n)*longLen/perimeter*longSideBias))))
	short := max(1, min(maxShort, int(math.Floor(float64(n)*shortLen/perimeter*shortSideBias))))

	if initial := 2*long + 2*short; initial > n {
		f := float64(n) / float64(initial)
		long = max(1, round(float64(long)*f))
		short = max(1, round(float64(short)*f))
	}

	var all edgeCounts
	if wider {
		all[edgeTop], all[edgeBottom], all[edgeLeft], all[edgeRight] = long, long, short, short
	} else {
		all[edgeTop], all[edgeBottom], all[edgeLeft], all[edgeRight] = short, short, long, long
	}
	var c edgeCounts
	for _, e := range edges {
		c[e] = all[e]
	}
	return c.sides()
}

// TargetCount returns the number of fixtures an island is planned for:
// the explicit LightCount when set, otherwise a count derived from the
// visible area. For circular cutouts the ring is sized from its
// circumference and may hold fewer fixtures than this target.
func TargetCount(i ceiling.Island) int {
	if i.LightCount > 0 {
		return i.LightCount
	}
	switch i.Shape {
	case ceiling.ShapeRectangle:
		return max(1, round(i.Width*i.Length/AreaPerLight))
	case ceiling.ShapeRectangularCutout:
		cw := CutoutWidth(i)
		visible := i.Width*i.Length - (i.Width-2*cw)*(i.Length-2*cw)
		return max(MinCutoutLights, round(visible/AreaPerLight))
	case ceiling.ShapeCircle:
		return max(1, round(math.Pi*i.Radius*i.Radius/CircleAreaPerLight))
	case ceiling.ShapeCircularCutout:
		inner := math.Max(0, i.Radius-CutoutWidth(i))
		visible := math.Pi * (i.Radius*i.Radius - inner*inner)
		return max(MinCircularCutoutLights, round(visible/CutoutAreaPerLight))
	case ceiling.ShapeOval:
		rx, ry := i.Radii()
		return max(1, round(math.Pi*rx*ry/AreaPerLight))
	case ceiling.ShapeOvalCutout:
		rx, ry := i.Radii()
		cw := CutoutWidth(i)
		visible := math.Pi*rx*ry - math.Pi*math.Max(0, rx-cw)*math.Max(0, ry-cw)
		return max(MinCutoutLights, round(visible/AreaPerLight))
	}
	return 0
}
