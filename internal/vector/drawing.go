// Package vector renders a boundary forest as a scaled, centred SVG drawing
// whose path order is the cutting order.
package vector

import (
	"log/slog"
	"strconv"
	"strings"

	"papercut/internal/contour"
	"papercut/internal/logging"
)

// Stroke colours for outer shapes and nested ones.
const (
	StrokeOuter = "black"
	StrokeHole  = "gray"
)

// Canvas is the fixed drawing area.
type Canvas struct {
	Width       float64 `yaml:"width" mapstructure:"width"`
	Height      float64 `yaml:"height" mapstructure:"height"`
	Padding     float64 `yaml:"padding" mapstructure:"padding"`
	StrokeWidth float64 `yaml:"stroke_width" mapstructure:"stroke_width"`
}

// DefaultCanvas is an 800x800 canvas with a 20 unit margin.
func DefaultCanvas() Canvas {
	return Canvas{Width: 800, Height: 800, Padding: 20, StrokeWidth: 2}
}

// Path is one closed outline in canvas coordinates. Points is empty for
// drawings parsed from SVG; Data is always set.
type Path struct {
	BoundaryID int             `json:"contour_index,omitempty"`
	Stroke     string          `json:"stroke"`
	Points     []contour.Point `json:"-"`
	Data       string          `json:"d"`
}

// Drawing is a vector rendering of a forest.
type Drawing struct {
	Canvas
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Paths   []Path  `json:"paths"`
}

// Emitter builds drawings for a canvas.
type Emitter struct {
	canvas Canvas
	logger *slog.Logger
}

// NewEmitter creates an emitter; a nil logger discards output.
func NewEmitter(c Canvas, logger *slog.Logger) *Emitter {
	return &Emitter{canvas: c, logger: logging.OrNop(logger)}
}

// Emit scales every boundary uniformly into the padded canvas, centres the
// result and emits the paths inside-out.
func (e *Emitter) Emit(f *contour.Forest) *Drawing {
	d := &Drawing{Canvas: e.canvas, Scale: 1}
	box, ok := f.Bounds()
	if !ok {
		return d
	}

	d.Scale = fitScale(box, e.canvas)
	d.OffsetX = (e.canvas.Width-box.W()*d.Scale)/2 - box.MinX*d.Scale
	d.OffsetY = (e.canvas.Height-box.H()*d.Scale)/2 - box.MinY*d.Scale

	for _, b := range f.InsideOut() {
		pts := make([]contour.Point, len(b.Points))
		for i, p := range b.Points {
			pts[i] = contour.Point{X: p.X*d.Scale + d.OffsetX, Y: p.Y*d.Scale + d.OffsetY}
		}
		stroke := StrokeOuter
		if b.IsHole() {
			stroke = StrokeHole
		}
		d.Paths = append(d.Paths, Path{BoundaryID: b.ID, Stroke: stroke, Points: pts, Data: PathData(pts)})
	}

	e.logger.Debug("drawing emitted", "paths", len(d.Paths), "scale", d.Scale)
	return d
}

func fitScale(box contour.Rect, c Canvas) float64 {
	w, h := box.W(), box.H()
	sx := (c.Width - 2*c.Padding) / w
	sy := (c.Height - 2*c.Padding) / h
	switch {
	case w == 0 && h == 0:
		return 1
	case w == 0:
		return sy
	case h == 0:
		return sx
	}
	return min(sx, sy)
}

// PathData formats a closed polyline as "M x,y L x,y ... Z" with one decimal.
func PathData(pts []contour.Point) string {
	if len(pts) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(strconv.FormatFloat(p.X, 'f', 1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(p.Y, 'f', 1, 64))
	}
	sb.WriteString(" Z")
	return sb.String()
}
