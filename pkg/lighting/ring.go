package lighting

import (
	"math"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
)

func circle(i ceiling.Island) []ceiling.Position {
	r := i.Radius
	if r <= 0 {
		return nil
	}
	cx, cy := i.LeftOffset+r, i.TopOffset+r

	if i.Shape.IsCutout() {
		mid := r - CutoutWidth(i)/2
		count := i.LightCount
		if count <= 0 {
			count = evenRingCount(2 * math.Pi * mid)
		}
		return ring(cx, cy, mid, mid, count)
	}

	n := TargetCount(i)
	out := []ceiling.Position{fixture(cx, cy, IslandFixtureRadius)}
	if n == 1 {
		return out
	}
	return append(out, ring(cx, cy, r*RingRadiusFactor, r*RingRadiusFactor, solidRingCount(i.LightCount, n, true))...)
}

func oval(i ceiling.Island) []ceiling.Position {
	rx, ry := i.Radii()
	if rx <= 0 || ry <= 0 {
		return nil
	}
	cx, cy := i.LeftOffset+rx, i.TopOffset+ry
	near := isSquare(rx, ry)

	if i.Shape.IsCutout() {
		cw := CutoutWidth(i)
		mrx, mry := rx-cw/2, ry-cw/2
		count := i.LightCount
		if count <= 0 {
			circumference := 2 * math.Pi * math.Sqrt(mrx*mry)
			if near {
				count = evenRingCount(circumference)
			} else {
				count = clampRing(round(circumference / 2))
			}
		}
		return ring(cx, cy, mrx, mry, count)
	}

	n := TargetCount(i)
	out := []ceiling.Position{fixture(cx, cy, IslandFixtureRadius)}
	if n == 1 {
		return out
	}
	return append(out, ring(cx, cy, rx*RingRadiusFactor, ry*RingRadiusFactor, solidRingCount(i.LightCount, n, near))...)
}

// solidRingCount sizes the outer ring around a center fixture. Explicit
// counts fill the ring up to [MaxRingLights]; automatic counts snap to a
// multiple of four when the outline is round.
func solidRingCount(explicit, n int, snap bool) int {
	if explicit > 0 || !snap {
		return min(n-1, MaxRingLights)
	}
	return clampRing((n - 1) / 4 * 4)
}

// evenRingCount returns an even fixture count for a ring of the given
// circumference, roughly one fixture per foot of arc, within the ring limits.
func evenRingCount(circumference float64) int {
	return clampRing(round(circumference) / 2 * 2)
}

func clampRing(n int) int {
	return min(MaxRingLights, max(MinRingLights, n))
}

// ring places count fixtures on an ellipse centered at (cx, cy), starting
// at angle zero (the +x axis) and advancing by 2π/count.
func ring(cx, cy, rx, ry float64, count int) []ceiling.Position {
	if count <= 0 {
		return nil
	}
	out := make([]ceiling.Position, count)
	step := 2 * math.Pi / float64(count)
	for k := range out {
		a := float64(k) * step
		out[k] = fixture(cx+math.Cos(a)*rx, cy+math.Sin(a)*ry, IslandFixtureRadius)
	}
	return out
}
