package contour

import (
	"image"
	"math"
	"sort"
)

// Boundary is a traced closed outline. Boundaries are immutable once extracted.
type Boundary struct {
	// ID is 1-based in raster discovery order.
	ID int `json:"id"`
	// Parent is the ID of the enclosing boundary, 0 for top level.
	Parent int `json:"parent,omitempty"`
	// Depth is the containment depth, 0 for top level.
	Depth  int     `json:"depth"`
	Area   float64 `json:"area"`
	Points []Point `json:"points"`
}

// IsHole reports whether the boundary sits inside another one.
func (b *Boundary) IsHole() bool { return b.Parent != 0 }

// Perimeter is the closed arc length of the boundary.
func (b *Boundary) Perimeter() float64 { return ArcLength(b.Points, true) }

// Forest is the set of boundaries of one image plus their containment relation.
type Forest struct {
	Width, Height int
	Boundaries    []Boundary
}

// Len is the number of boundaries.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Boundaries)
}

// Get returns the boundary with the given ID or nil.
func (f *Forest) Get(id int) *Boundary {
	if id < 1 || id > f.Len() {
		return nil
	}
	return &f.Boundaries[id-1]
}

// Children returns the IDs of the boundaries directly inside id (0 for roots).
func (f *Forest) Children(id int) []int {
	var out []int
	for i := range f.Boundaries {
		if f.Boundaries[i].Parent == id {
			out = append(out, f.Boundaries[i].ID)
		}
	}
	return out
}

// Bounds is the bounding box of every point in the forest.
func (f *Forest) Bounds() (Rect, bool) {
	if f == nil {
		return Rect{}, false
	}
	var all []Point
	for i := range f.Boundaries {
		all = append(all, f.Boundaries[i].Points...)
	}
	return BoundingBox(all)
}

// InsideOut returns the boundaries in cutting order: deeper boundaries first,
// then grouped by parent, smaller area first, discovery order breaking ties.
// Every child therefore precedes its parent.
func (f *Forest) InsideOut() []*Boundary {
	out := make([]*Boundary, f.Len())
	for i := range out {
		out[i] = &f.Boundaries[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Depth != b.Depth {
			return a.Depth > b.Depth
		}
		if a.Parent != b.Parent {
			return a.Parent < b.Parent
		}
		if a.Area != b.Area {
			return a.Area < b.Area
		}
		return a.ID < b.ID
	})
	return out
}

// newForest assembles traced borders into a forest, optionally collapsing
// thin-edge twins first.
func newForest(borders []border, w, h int, collapseTwins bool) *Forest {
	removed := make([]bool, len(borders))
	if collapseTwins {
		for i, b := range borders {
			if b.hole && b.parent >= 0 && !borders[b.parent].hole && hugs(b.points, borders[b.parent].points) {
				removed[i] = true
			}
		}
	}

	ids := make([]int, len(borders))
	next := 0
	for i := range borders {
		if !removed[i] {
			next++
			ids[i] = next
		}
	}

	f := &Forest{Width: w, Height: h, Boundaries: make([]Boundary, 0, next)}
	for i, b := range borders {
		if removed[i] {
			continue
		}
		p := b.parent
		for p >= 0 && removed[p] {
			p = borders[p].parent
		}
		bd := Boundary{ID: ids[i], Points: b.points, Area: Area(b.points)}
		if p >= 0 {
			bd.Parent = ids[p]
			bd.Depth = f.Boundaries[bd.Parent-1].Depth + 1
		}
		f.Boundaries = append(f.Boundaries, bd)
	}
	return f
}

// hugs reports whether every point of inner lies within one pixel of outer.
func hugs(inner, outer []Point) bool {
	set := make(map[image.Point]struct{}, len(outer))
	for _, p := range outer {
		set[pixel(p)] = struct{}{}
	}
	for _, p := range inner {
		c := pixel(p)
		found := false
		for dy := -1; dy <= 1 && !found; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if _, ok := set[c.Add(image.Pt(dx, dy))]; ok {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func pixel(p Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}
