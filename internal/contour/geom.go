// Package contour extracts the containment forest of closed boundaries from a
// raster image: smoothing, adaptive Canny edges and Suzuki-Abe border following.
package contour

import "math"

// Point is a coordinate in image pixels (or canvas units once scaled).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist is the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Area is the absolute shoelace area of the closed polygon pts.
func Area(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var s float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		s += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(s) / 2
}

// ArcLength is the polyline length of pts, including the closing segment when closed.
func ArcLength(pts []Point, closed bool) float64 {
	var s float64
	for i := 1; i < len(pts); i++ {
		s += pts[i].Dist(pts[i-1])
	}
	if closed && len(pts) > 1 {
		s += pts[0].Dist(pts[len(pts)-1])
	}
	return s
}

// Rect is an axis aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// W is the box width.
func (r Rect) W() float64 { return r.MaxX - r.MinX }

// H is the box height.
func (r Rect) H() float64 { return r.MaxY - r.MinY }

// BoundingBox returns the box around pts; ok is false for an empty slice.
func BoundingBox(pts []Point) (r Rect, ok bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r = Rect{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r, true
}
