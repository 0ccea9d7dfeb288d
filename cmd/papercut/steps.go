package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"papercut/internal/analysis"
	"papercut/internal/plan"
)

// partColours follow the preview colours.
var partColours = []string{"#ff0000", "#006400", "#0000ff", "#800080", "#ffa500"}

func printSteps(w io.Writer, p termenv.Profile, res *analysis.Result) {
	for _, st := range res.Steps {
		label := fmt.Sprintf("%3d. %s", st.Index, st.Description)
		var s termenv.Style
		switch st.Kind {
		case plan.StepStart:
			s = p.String(label).Foreground(p.Color("#22c55e")).Bold()
		case plan.StepEnd:
			s = p.String(label).Foreground(p.Color("#ef4444"))
		default:
			c := partColours[(st.BoundaryID-1)%len(partColours)]
			s = p.String(label).Foreground(p.Color(c))
		}
		fmt.Fprintln(w, s)
	}

	sum := res.Summary
	fmt.Fprintf(w, "\n%d parts, %d strokes (%d lines, %d curves), %.0f px of cutting\n",
		sum.Parts, sum.Strokes, sum.Lines, sum.Curves, sum.Length)
}
