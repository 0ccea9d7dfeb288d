// Package plan orders a boundary forest inside-out and splits each boundary
// into strokes a person (or a plotter) can follow.
package plan

import (
	"log/slog"

	"papercut/internal/contour"
	"papercut/internal/logging"
)

// Options tunes the planner.
type Options struct {
	// MinArea skips boundaries enclosing less than this many square pixels.
	MinArea float64 `yaml:"min_area" mapstructure:"min_area"`
	// Epsilon is the simplification tolerance as a fraction of the perimeter.
	Epsilon    float64    `yaml:"epsilon" mapstructure:"epsilon"`
	Thresholds Thresholds `yaml:"thresholds" mapstructure:"thresholds"`
}

// DefaultOptions returns the planner defaults.
func DefaultOptions() Options {
	return Options{MinArea: 7, Epsilon: 0.005, Thresholds: DefaultThresholds()}
}

// Planner turns forests into step sequences. It is stateless.
type Planner struct {
	opts   Options
	logger *slog.Logger
}

// NewPlanner creates a planner; a nil logger discards output.
func NewPlanner(opts Options, logger *slog.Logger) *Planner {
	return &Planner{opts: opts, logger: logging.OrNop(logger)}
}

// Plan returns the steps for f in inside-out order. Boundaries below the
// minimum area or with fewer than two corners contribute nothing.
func (p *Planner) Plan(f *contour.Forest) []Step {
	var steps []Step
	for _, b := range f.InsideOut() {
		if b.Area < p.opts.MinArea {
			continue
		}
		corners := p.Corners(b)
		if len(corners) < 2 {
			p.logger.Debug("boundary skipped", "id", b.ID, "corners", len(corners))
			continue
		}

		steps = append(steps, startStep(b.ID))
		for _, s := range p.strokes(b, corners) {
			steps = append(steps, drawStep(s))
		}
		steps = append(steps, endStep(b.ID))
	}

	for i := range steps {
		steps[i].Index = i + 1
	}
	p.logger.Info("plan built", "boundaries", f.Len(), "steps", len(steps))
	return steps
}

// Corners returns the indices into b.Points of its simplification vertices.
func (p *Planner) Corners(b *contour.Boundary) []int {
	return simplifyClosed(b.Points, p.opts.Epsilon*b.Perimeter())
}

// Strokes splits b into strokes between consecutive corners.
func (p *Planner) Strokes(b *contour.Boundary) []Stroke {
	corners := p.Corners(b)
	if len(corners) < 2 {
		return nil
	}
	return p.strokes(b, corners)
}

func (p *Planner) strokes(b *contour.Boundary, corners []int) []Stroke {
	out := make([]Stroke, 0, len(corners))
	for i, from := range corners {
		to := corners[(i+1)%len(corners)]
		pts := span(b.Points, from, to)
		if len(pts) < 2 {
			continue
		}
		out = append(out, newStroke(b.ID, pts, p.opts.Thresholds))
	}
	return out
}

// span copies pts[from..to] inclusive, wrapping through the end of the
// closed sequence when to < from.
func span(pts []contour.Point, from, to int) []contour.Point {
	if from < to {
		return append([]contour.Point(nil), pts[from:to+1]...)
	}
	out := make([]contour.Point, 0, len(pts)-from+to+1)
	out = append(out, pts[from:]...)
	return append(out, pts[:to+1]...)
}
