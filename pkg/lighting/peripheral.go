package lighting

import (
	"math"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
)

// Peripheral places fixtures along the enabled sides of a border band in
// a roomW×roomL room. Fixtures sit on the band's midline at interior
// divisions of each side, never in the corners.
func Peripheral(p ceiling.Peripheral, roomW, roomL float64) []ceiling.Position {
	counts := PeripheralCounts(p, roomW, roomL)
	if counts == nil {
		return nil
	}

	half := p.Width / 2
	var out []ceiling.Position
	for i := 1; i <= counts.Top; i++ {
		out = append(out, fixture(float64(i)*roomW/float64(counts.Top+1), half, PeripheralFixtureRadius))
	}
	for i := 1; i <= counts.Bottom; i++ {
		out = append(out, fixture(float64(i)*roomW/float64(counts.Bottom+1), roomL-half, PeripheralFixtureRadius))
	}
	for i := 1; i <= counts.Left; i++ {
		out = append(out, fixture(half, float64(i)*roomL/float64(counts.Left+1), PeripheralFixtureRadius))
	}
	for i := 1; i <= counts.Right; i++ {
		out = append(out, fixture(roomW-half, float64(i)*roomL/float64(counts.Right+1), PeripheralFixtureRadius))
	}
	return out
}

// SideCounts is a per-side fixture count.
type SideCounts struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Total returns the sum over all sides.
func (s SideCounts) Total() int { return s.Top + s.Right + s.Bottom + s.Left }

func (c edgeCounts) sides() *SideCounts {
	return &SideCounts{Top: c[edgeTop], Right: c[edgeRight], Bottom: c[edgeBottom], Left: c[edgeLeft]}
}

// PeripheralCounts returns how many fixtures [Peripheral] puts on each
// side, or nil when no side is enabled.
func PeripheralCounts(p ceiling.Peripheral, roomW, roomL float64) *SideCounts {
	edges := enabledEdges(p.Sides)
	var length edgeCounts64
	for _, e := range edges {
		if e == edgeTop || e == edgeBottom {
			length[e] = roomW
		} else {
			length[e] = roomL
		}
	}
	total := length[edgeTop] + length[edgeBottom] + length[edgeLeft] + length[edgeRight]
	if len(edges) == 0 || total <= 0 {
		return nil
	}

	square := isSquare(roomW, roomL)
	n := p.LightCount
	if n <= 0 {
		n = PeripheralDefaultCount(total)
		if square {
			n = n / len(edges) * len(edges)
		}
	}

	if square {
		return splitEqual(n, edges).sides()
	}
	return splitProportional(n, edges, length).sides()
}

// PeripheralDefaultCount is the automatic fixture count for an enabled
// perimeter of the given length: the sparsest spacing the envelope
// allows, capped by the densest.
func PeripheralDefaultCount(perimeter float64) int {
	maxLights := int(math.Floor(perimeter / MinLightSpacing))
	return min(maxLights, int(math.Ceil(perimeter/MaxLightSpacing)))
}
