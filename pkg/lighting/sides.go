package lighting

import (
	"sort"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
)

// edge identifies one side of a band or ring. The declaration order is
// the order used for tie-breaks, remainder distribution and emission.
type edge int

const (
	edgeTop edge = iota
	edgeBottom
	edgeLeft
	edgeRight
)

// edgeCounts holds a fixture count per edge.
type edgeCounts [4]int

// edgeCounts64 holds a length per edge.
type edgeCounts64 [4]float64

func (c edgeCounts) total() int {
	return c[edgeTop] + c[edgeBottom] + c[edgeLeft] + c[edgeRight]
}

// enabledEdges lists the enabled sides in top, bottom, left, right order.
func enabledEdges(s ceiling.Sides) []edge {
	var out []edge
	if s.Top {
		out = append(out, edgeTop)
	}
	if s.Bottom {
		out = append(out, edgeBottom)
	}
	if s.Left {
		out = append(out, edgeLeft)
	}
	if s.Right {
		out = append(out, edgeRight)
	}
	return out
}

// splitEqual gives every enabled edge n/len(edges) fixtures and hands the
// remainder out one at a time in edge order.
func splitEqual(n int, edges []edge) edgeCounts {
	var c edgeCounts
	if len(edges) == 0 {
		return c
	}
	per := n / len(edges)
	for _, e := range edges {
		c[e] = per
	}
	for i := 0; i < n-per*len(edges); i++ {
		c[edges[i%len(edges)]]++
	}
	return c
}

// splitProportional distributes n over the enabled edges in proportion to
// their lengths, then reconciles rounding one fixture at a time: surplus
// goes round-robin to edges by length descending, deficit is taken from
// whichever edge currently holds the most. Ties keep edge order.
func splitProportional(n int, edges []edge, length edgeCounts64) edgeCounts {
	var c edgeCounts
	var total float64
	for _, e := range edges {
		total += length[e]
	}
	if len(edges) == 0 || total <= 0 {
		return c
	}
	for _, e := range edges {
		c[e] = round(float64(n) * length[e] / total)
	}

	byLength := append([]edge(nil), edges...)
	sort.SliceStable(byLength, func(i, j int) bool { return length[byLength[i]] > length[byLength[j]] })
	for i := 0; c.total() < n; i++ {
		c[byLength[i%len(byLength)]]++
	}

	for c.total() > n {
		most := edges[0]
		for _, e := range edges[1:] {
			if c[e] > c[most] {
				most = e
			}
		}
		if c[most] == 0 {
			break
		}
		c[most]--
	}
	return c
}
