package toolpath

import (
	"fmt"
	"strings"
	"time"

	"papercut/internal/vector"
)

// Program builds a complete offline G-code program. Pen transitions are
// followed by a G4 dwell instead of a host-side pause.
type Program struct {
	Feeds       Feeds
	Pen         PenAngles
	PenDwell    time.Duration
	Transform   Transform
	CollapsePen bool
}

// DefaultProgram uses the default feeds and pen angles with a 200ms dwell.
func DefaultProgram() Program {
	return Program{
		Feeds:     DefaultFeeds(),
		Pen:       DefaultPenAngles(),
		PenDwell:  200 * time.Millisecond,
		Transform: Identity(),
	}
}

// Generate converts every path of d, in drawing order, into G-code. The
// program starts in mm with absolute positioning and ends with the pen up
// at the origin. Every move is preceded by its pen command; when PenDwell is
// set, a G4 dwell sits between the two and nothing else does.
func (p Program) Generate(d *vector.Drawing) (string, error) {
	var sb strings.Builder
	sb.WriteString("G21\nG90\n")

	pen := PenTracker{Angles: p.Pen, Collapse: p.CollapsePen}
	p.pen(&sb, pen.Lift())

	for i, path := range d.Paths {
		prims, err := Parse(path.Data)
		if err != nil {
			return "", fmt.Errorf("path %d: %w", i+1, err)
		}
		if len(prims) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("; part %d\n", path.BoundaryID))
		p.pen(&sb, pen.Lift())
		for _, prim := range prims {
			if set, ok := pen.Before(prim); ok {
				p.pen(&sb, set)
			}
			sb.WriteString(p.Transform.Apply(prim).GCode(p.Feeds))
			sb.WriteByte('\n')
		}
	}

	p.pen(&sb, pen.Lift())
	sb.WriteString("G0 X0 Y0\n")
	return sb.String(), nil
}

func (p Program) pen(sb *strings.Builder, set PenSet) {
	sb.WriteString(set.GCode(p.Feeds))
	sb.WriteByte('\n')
	if p.PenDwell > 0 {
		sb.WriteString(Dwell{Millis: int(p.PenDwell.Milliseconds())}.GCode(p.Feeds))
		sb.WriteByte('\n')
	}
}
