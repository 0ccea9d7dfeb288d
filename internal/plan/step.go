package plan

import "fmt"

// StepKind tags a Step.
type StepKind string

const (
	StepStart StepKind = "start"
	StepDraw  StepKind = "draw"
	StepEnd   StepKind = "end"
)

// Step is one unit of the cutting plan. Stroke is set for draw steps only.
type Step struct {
	Index       int      `json:"step"`
	Kind        StepKind `json:"type"`
	BoundaryID  int      `json:"contour_index"`
	Description string   `json:"description"`
	Stroke      *Stroke  `json:"stroke,omitempty"`
}

func startStep(id int) Step {
	return Step{Kind: StepStart, BoundaryID: id, Description: fmt.Sprintf("Start part %d", id)}
}

func drawStep(s Stroke) Step {
	return Step{Kind: StepDraw, BoundaryID: s.BoundaryID, Description: s.Describe(), Stroke: &s}
}

func endStep(id int) Step {
	return Step{Kind: StepEnd, BoundaryID: id, Description: fmt.Sprintf("Finish part %d", id)}
}

// Summary aggregates a plan for reports.
type Summary struct {
	Parts   int     `json:"parts"`
	Strokes int     `json:"strokes"`
	Lines   int     `json:"lines"`
	Curves  int     `json:"curves"`
	Length  float64 `json:"length"`
}

// Summarize counts parts and strokes in steps.
func Summarize(steps []Step) Summary {
	var s Summary
	for _, st := range steps {
		switch st.Kind {
		case StepStart:
			s.Parts++
		case StepDraw:
			s.Strokes++
			s.Length += st.Stroke.Length
			if st.Stroke.Shape == ShapeCurve {
				s.Curves++
			} else {
				s.Lines++
			}
		}
	}
	return s
}
