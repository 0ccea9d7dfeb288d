package toolpath

// PenAngles are the servo angles for the two pen positions.
type PenAngles struct {
	Up   int `yaml:"up" mapstructure:"up"`
	Down int `yaml:"down" mapstructure:"down"`
}

// DefaultPenAngles lifts at 90 degrees and lowers at 0.
func DefaultPenAngles() PenAngles { return PenAngles{Up: 90, Down: 0} }

// PenState is the last commanded pen position.
type PenState int

const (
	PenUnknown PenState = iota
	PenUp
	PenDown
)

func (s PenState) String() string {
	switch s {
	case PenUp:
		return "up"
	case PenDown:
		return "down"
	}
	return "unknown"
}

// PenTracker decides which pen transition precedes each move: up before a
// rapid move, down before a drawing move. Transitions are always emitted
// unless Collapse is set, in which case repeats of the current state are
// dropped.
type PenTracker struct {
	Angles   PenAngles
	Collapse bool
	state    PenState
}

// State is the last position handed out.
func (t *PenTracker) State() PenState { return t.state }

// Reset forgets the pen position.
func (t *PenTracker) Reset() { t.state = PenUnknown }

// Lift always returns a pen-up transition.
func (t *PenTracker) Lift() PenSet {
	t.state = PenUp
	return PenSet{Angle: t.Angles.Up}
}

// Before returns the transition required before p, if any.
func (t *PenTracker) Before(p Primitive) (PenSet, bool) {
	var want PenState
	switch p.Kind() {
	case KindRapid:
		want = PenUp
	case KindDraw:
		want = PenDown
	default:
		return PenSet{}, false
	}
	if t.Collapse && t.state == want {
		return PenSet{}, false
	}
	t.state = want
	if want == PenUp {
		return PenSet{Angle: t.Angles.Up}, true
	}
	return PenSet{Angle: t.Angles.Down}, true
}
