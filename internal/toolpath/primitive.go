// Package toolpath turns SVG path data into machine primitives and G-code.
package toolpath

import "fmt"

// Kind tags a primitive.
type Kind int

const (
	KindRapid Kind = iota
	KindDraw
	KindPen
	KindDwell
)

func (k Kind) String() string {
	switch k {
	case KindRapid:
		return "rapid"
	case KindDraw:
		return "draw"
	case KindPen:
		return "pen"
	case KindDwell:
		return "dwell"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Feeds are the feed rates in mm/min for rapid and drawing moves.
type Feeds struct {
	Rapid int `yaml:"rapid" mapstructure:"rapid"`
	Draw  int `yaml:"draw" mapstructure:"draw"`
}

// DefaultFeeds matches a small servo pen plotter.
func DefaultFeeds() Feeds { return Feeds{Rapid: 3000, Draw: 1000} }

// Primitive is one machine action.
type Primitive interface {
	Kind() Kind
	GCode(f Feeds) string
}

// RapidMove travels with the pen lifted.
type RapidMove struct{ X, Y float64 }

// DrawMove cuts a straight segment with the pen lowered.
type DrawMove struct{ X, Y float64 }

// PenSet moves the pen servo to Angle degrees.
type PenSet struct{ Angle int }

// Dwell pauses the machine.
type Dwell struct{ Millis int }

func (RapidMove) Kind() Kind { return KindRapid }
func (DrawMove) Kind() Kind  { return KindDraw }
func (PenSet) Kind() Kind    { return KindPen }
func (Dwell) Kind() Kind     { return KindDwell }

func (m RapidMove) GCode(f Feeds) string {
	return fmt.Sprintf("G0 X%.3f Y%.3f F%d", m.X, m.Y, f.Rapid)
}

func (m DrawMove) GCode(f Feeds) string {
	return fmt.Sprintf("G1 X%.3f Y%.3f F%d", m.X, m.Y, f.Draw)
}

func (p PenSet) GCode(Feeds) string { return fmt.Sprintf("M3 S%d", p.Angle) }

func (d Dwell) GCode(Feeds) string { return fmt.Sprintf("G4 P%d", d.Millis) }

// Transform maps canvas coordinates to machine millimetres as offset + p*scale.
// A zero Scale is treated as 1.
type Transform struct {
	Scale   float64 `yaml:"scale" mapstructure:"scale"`
	OffsetX float64 `yaml:"offset_x" mapstructure:"offset_x"`
	OffsetY float64 `yaml:"offset_y" mapstructure:"offset_y"`
}

// Identity leaves coordinates unchanged.
func Identity() Transform { return Transform{Scale: 1} }

// Apply maps the coordinates of a move; other primitives pass through.
func (t Transform) Apply(p Primitive) Primitive {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	switch m := p.(type) {
	case RapidMove:
		return RapidMove{X: t.OffsetX + m.X*s, Y: t.OffsetY + m.Y*s}
	case DrawMove:
		return DrawMove{X: t.OffsetX + m.X*s, Y: t.OffsetY + m.Y*s}
	}
	return p
}
