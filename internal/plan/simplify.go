package plan

import (
	"math"
	"sort"

	"papercut/internal/contour"
)

// simplifyClosed runs Douglas-Peucker over the closed polyline pts and
// returns the surviving vertex indices, ascending and unique. Indices are
// carried through the recursion so corners never need to be re-matched to the
// input points.
func simplifyClosed(pts []contour.Point, eps float64) []int {
	n := len(pts)
	if n < 3 {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	far, best := 0, -1.0
	for i := 1; i < n; i++ {
		if d := pts[i].Dist(pts[0]); d > best {
			far, best = i, d
		}
	}
	if best == 0 {
		return []int{0}
	}

	keep := map[int]struct{}{0: {}, far: {}}
	first := make([]int, 0, far+1)
	for i := 0; i <= far; i++ {
		first = append(first, i)
	}
	second := make([]int, 0, n-far+1)
	for i := far; i < n; i++ {
		second = append(second, i)
	}
	second = append(second, 0)

	douglasPeucker(pts, first, eps, keep)
	douglasPeucker(pts, second, eps, keep)

	out := make([]int, 0, len(keep))
	for i := range keep {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func douglasPeucker(pts []contour.Point, chain []int, eps float64, keep map[int]struct{}) {
	if len(chain) < 3 {
		return
	}
	a, b := pts[chain[0]], pts[chain[len(chain)-1]]
	split, best := 0, -1.0
	for k := 1; k < len(chain)-1; k++ {
		if d := lineDistance(pts[chain[k]], a, b); d > best {
			split, best = k, d
		}
	}
	if best <= eps {
		return
	}
	keep[chain[split]] = struct{}{}
	douglasPeucker(pts, chain[:split+1], eps, keep)
	douglasPeucker(pts, chain[split:], eps, keep)
}

// lineDistance is the distance from p to the line through a and b.
func lineDistance(p, a, b contour.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return p.Dist(a)
	}
	return math.Abs(dy*(p.X-a.X)-dx*(p.Y-a.Y)) / l
}
