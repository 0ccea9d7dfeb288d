package plan

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papercut/internal/contour"
)

// rectBoundary walks the perimeter of a w x h rectangle clockwise from (x0, y0)
// one unit at a time, the way traced pixel borders look.
func rectBoundary(id, parent, depth int, x0, y0, w, h float64) contour.Boundary {
	var pts []contour.Point
	for x := 0.0; x < w; x++ {
		pts = append(pts, contour.Point{X: x0 + x, Y: y0})
	}
	for y := 0.0; y < h; y++ {
		pts = append(pts, contour.Point{X: x0 + w, Y: y0 + y})
	}
	for x := w; x > 0; x-- {
		pts = append(pts, contour.Point{X: x0 + x, Y: y0 + h})
	}
	for y := h; y > 0; y-- {
		pts = append(pts, contour.Point{X: x0, Y: y0 + y})
	}
	return contour.Boundary{ID: id, Parent: parent, Depth: depth, Points: pts, Area: contour.Area(pts)}
}

func TestHeading(t *testing.T) {
	cases := map[float64]Direction{
		0:     East,
		45:    Southeast,
		90:    South,
		180:   West,
		270:   North,
		22.5:  Southeast,
		67.5:  South,
		112.5: Southwest,
		157.5: West,
		202.5: Northwest,
		247.5: North,
		292.5: Northeast,
		337.5: East,
		22.49: East,
		-90:   North,
		360:   East,
		-45:   Northeast,
	}
	for deg, want := range cases {
		assert.Equal(t, want, Heading(deg), "angle %v", deg)
	}
}

func TestStrokeClassification(t *testing.T) {
	th := DefaultThresholds()

	var straight []contour.Point
	for x := 0.0; x <= 100; x += 5 {
		straight = append(straight, contour.Point{X: x, Y: 0})
	}
	s := newStroke(1, straight, th)
	assert.Equal(t, ShapeLine, s.Shape)
	assert.Equal(t, SizeLong, s.Size)
	assert.Equal(t, East, s.Direction)
	assert.InDelta(t, 100, s.Length, 1e-9)
	assert.InDelta(t, 100, s.Distance, 1e-9)

	var semi []contour.Point
	for i := 0; i <= 32; i++ {
		a := math.Pi * float64(i) / 32
		semi = append(semi, contour.Point{X: 10 * math.Cos(a), Y: 10 * math.Sin(a)})
	}
	c := newStroke(1, semi, th)
	assert.Equal(t, ShapeCurve, c.Shape)
	assert.Equal(t, West, c.Direction)
	assert.Equal(t, SizeMedium, c.Size)
	assert.GreaterOrEqual(t, c.Length, 1.1*c.Distance)

	short := newStroke(1, []contour.Point{{X: 0, Y: 0}, {X: 0, Y: -10}}, th)
	assert.Equal(t, SizeShort, short.Size)
	assert.Equal(t, North, short.Direction)
	assert.Equal(t, "Cut a short line heading north", short.Describe())
	assert.Equal(t, "Cut a curve heading west", c.Describe())
}

func TestSimplifyClosedKeepsRectangleCorners(t *testing.T) {
	b := rectBoundary(1, 0, 0, 0, 0, 10, 5)
	idx := simplifyClosed(b.Points, 0.005*b.Perimeter())
	assert.Equal(t, []int{0, 10, 15, 25}, idx)

	assert.Equal(t, []int{0, 1}, simplifyClosed([]contour.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, 1))
	assert.Equal(t, []int{0}, simplifyClosed([]contour.Point{{X: 2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 2}}, 1))
}

func TestStrokesOfRectangle(t *testing.T) {
	b := rectBoundary(3, 0, 0, 0, 0, 10, 5)
	strokes := NewPlanner(DefaultOptions(), nil).Strokes(&b)
	require.Len(t, strokes, 4)

	dirs := []Direction{East, South, West, North}
	lengths := []float64{10, 5, 10, 5}
	for i, s := range strokes {
		assert.Equal(t, 3, s.BoundaryID)
		assert.Equal(t, dirs[i], s.Direction)
		assert.Equal(t, ShapeLine, s.Shape)
		assert.InDelta(t, lengths[i], s.Length, 1e-9)
	}

	// The closing stroke wraps from the last corner back to the first point.
	last := strokes[3]
	assert.Equal(t, contour.Point{X: 0, Y: 5}, last.Start)
	assert.Equal(t, contour.Point{X: 0, Y: 0}, last.End)
	assert.Len(t, last.Points, 6)
}

func TestSpan(t *testing.T) {
	pts := []contour.Point{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4}}
	assert.Equal(t, pts[1:4], span(pts, 1, 3))
	assert.Equal(t, []contour.Point{{X: 3}, {X: 4}, {X: 0}, {X: 1}}, span(pts, 3, 1))
}

func nestedForest() *contour.Forest {
	return &contour.Forest{Boundaries: []contour.Boundary{
		rectBoundary(1, 0, 0, 0, 0, 60, 60),
		rectBoundary(2, 1, 1, 10, 10, 30, 30),
		rectBoundary(3, 2, 2, 15, 15, 10, 10),
		rectBoundary(4, 1, 1, 45, 45, 8, 8),
		rectBoundary(5, 0, 0, 80, 0, 12, 12),
	}}
}

func TestPlanPairsAndOrders(t *testing.T) {
	f := nestedForest()
	steps := NewPlanner(DefaultOptions(), nil).Plan(f)
	require.NotEmpty(t, steps)

	starts := map[int]int{}
	ends := map[int]int{}
	open := 0
	for i, s := range steps {
		assert.Equal(t, i+1, s.Index, "indices are contiguous and 1-based")
		switch s.Kind {
		case StepStart:
			require.Zero(t, open, "parts do not interleave")
			_, dup := starts[s.BoundaryID]
			assert.False(t, dup)
			starts[s.BoundaryID] = s.Index
			open = s.BoundaryID
		case StepDraw:
			assert.Equal(t, open, s.BoundaryID)
			require.NotNil(t, s.Stroke)
		case StepEnd:
			assert.Equal(t, open, s.BoundaryID)
			ends[s.BoundaryID] = s.Index
			open = 0
		}
	}
	assert.Len(t, starts, 5)
	assert.Len(t, ends, 5)

	for _, b := range f.Boundaries {
		if b.Parent != 0 {
			assert.Less(t, starts[b.ID], starts[b.Parent])
		}
	}

	assert.Equal(t, StepStart, steps[0].Kind)
	assert.Equal(t, 3, steps[0].BoundaryID)
	assert.Equal(t, "Start part 3", steps[0].Description)
	assert.Equal(t, StepEnd, steps[len(steps)-1].Kind)
	assert.Equal(t, 1, steps[len(steps)-1].BoundaryID)
}

func TestPlanSkipsSmallAndDegenerate(t *testing.T) {
	tiny := rectBoundary(2, 0, 0, 50, 50, 2, 2)
	dot := contour.Boundary{ID: 3, Points: []contour.Point{{X: 5, Y: 5}}}
	f := &contour.Forest{Boundaries: []contour.Boundary{rectBoundary(1, 0, 0, 0, 0, 10, 10), tiny, dot}}

	steps := NewPlanner(DefaultOptions(), nil).Plan(f)
	for _, s := range steps {
		assert.Equal(t, 1, s.BoundaryID)
	}
	assert.Equal(t, 6, len(steps), "start, four sides, end")

	opts := DefaultOptions()
	opts.MinArea = 0
	dotOnly := &contour.Forest{Boundaries: []contour.Boundary{dot}}
	assert.Empty(t, NewPlanner(opts, nil).Plan(dotOnly), "one corner means no markers either")

	assert.Empty(t, NewPlanner(DefaultOptions(), nil).Plan(&contour.Forest{}))
}

func TestSummarize(t *testing.T) {
	steps := NewPlanner(DefaultOptions(), nil).Plan(nestedForest())
	s := Summarize(steps)
	assert.Equal(t, 5, s.Parts)
	assert.Equal(t, 20, s.Strokes)
	assert.Equal(t, 20, s.Lines)
	assert.Zero(t, s.Curves)
	assert.InDelta(t, 4*(60+30+10+8+12), s.Length, 1e-6)
}

func TestPlanSquareImageEndToEnd(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(20, 20, 80, 80), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	f := contour.NewExtractor(contour.DefaultOptions(), nil).Extract(img)
	require.Equal(t, 1, f.Len())

	p := NewPlanner(DefaultOptions(), nil)
	assert.GreaterOrEqual(t, len(p.Corners(f.Get(1))), 4)

	steps := p.Plan(f)
	require.GreaterOrEqual(t, len(steps), 6)
	assert.Equal(t, StepStart, steps[0].Kind)
	assert.Equal(t, 1, steps[0].BoundaryID)
	assert.Equal(t, StepEnd, steps[len(steps)-1].Kind)
	assert.Equal(t, 1, steps[len(steps)-1].BoundaryID)
}
