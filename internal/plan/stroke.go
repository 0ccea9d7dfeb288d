package plan

import (
	"math"

	"papercut/internal/contour"
)

// Shape tells straight cuts from curved ones.
type Shape string

const (
	ShapeLine  Shape = "line"
	ShapeCurve Shape = "curve"
)

// Size is the length class of a stroke; empty for medium strokes.
type Size string

const (
	SizeLong   Size = "long"
	SizeShort  Size = "short"
	SizeMedium Size = ""
)

// Direction is one of the eight compass headings in image space (y grows down).
type Direction string

const (
	East      Direction = "east"
	Southeast Direction = "southeast"
	South     Direction = "south"
	Southwest Direction = "southwest"
	West      Direction = "west"
	Northwest Direction = "northwest"
	North     Direction = "north"
	Northeast Direction = "northeast"
)

var compass = [8]Direction{East, Southeast, South, Southwest, West, Northwest, North, Northeast}

// Heading buckets an angle in degrees into 45 degree sectors centred on the
// compass points, so 0 is east and 90 is south.
func Heading(deg float64) Direction {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return compass[int(math.Floor((deg+22.5)/45))%8]
}

// Stroke is one continuous cut between two consecutive corners of a boundary.
type Stroke struct {
	BoundaryID int             `json:"contour_index"`
	Start      contour.Point   `json:"start_point"`
	End        contour.Point   `json:"end_point"`
	Points     []contour.Point `json:"path_pixels"`
	Length     float64         `json:"length"`
	Distance   float64         `json:"distance"`
	Shape      Shape           `json:"shape"`
	Size       Size            `json:"size"`
	Direction  Direction       `json:"direction"`
}

// Thresholds for stroke classification.
type Thresholds struct {
	CurveRatio float64 `yaml:"curve_ratio" mapstructure:"curve_ratio"`
	Long       float64 `yaml:"long" mapstructure:"long"`
	Short      float64 `yaml:"short" mapstructure:"short"`
}

// DefaultThresholds match paper-cut artwork at roughly 800px.
func DefaultThresholds() Thresholds {
	return Thresholds{CurveRatio: 1.1, Long: 80, Short: 30}
}

// newStroke measures and classifies the polyline pts (at least two points).
func newStroke(id int, pts []contour.Point, th Thresholds) Stroke {
	start, end := pts[0], pts[len(pts)-1]
	d := end.Sub(start)
	s := Stroke{
		BoundaryID: id,
		Start:      start,
		End:        end,
		Points:     pts,
		Length:     contour.ArcLength(pts, false),
		Distance:   math.Hypot(d.X, d.Y),
		Direction:  Heading(math.Atan2(d.Y, d.X) * 180 / math.Pi),
	}

	s.Shape = ShapeLine
	if s.Length >= th.CurveRatio*s.Distance {
		s.Shape = ShapeCurve
	}
	switch {
	case s.Length > th.Long:
		s.Size = SizeLong
	case s.Length < th.Short:
		s.Size = SizeShort
	default:
		s.Size = SizeMedium
	}
	return s
}

// Describe renders the stroke as an instruction, e.g. "Cut a long curve heading southeast".
func (s Stroke) Describe() string {
	noun := string(s.Shape)
	if s.Size != SizeMedium {
		noun = string(s.Size) + " " + noun
	}
	return "Cut a " + noun + " heading " + string(s.Direction)
}
