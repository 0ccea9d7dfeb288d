package analysis

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gg"

	"papercut/internal/contour"
	"papercut/internal/plan"
)

type rgb struct{ r, g, b float64 }

// partColours cycle per boundary ID.
var partColours = []rgb{
	{1, 0, 0},                     // red
	{0, 100.0 / 255, 0},           // green
	{0, 0, 1},                     // blue
	{128.0 / 255, 0, 128.0 / 255}, // purple
	{1, 165.0 / 255, 0},           // orange
}

const (
	previewLineWidth = 2
	markerRadius     = 6
)

func partColour(id int) rgb {
	n := len(partColours)
	return partColours[((id-1)%n+n)%n]
}

// Preview draws every stroke over a copy of src in its part colour, with a
// green dot where each part starts and a red dot where it ends, and returns
// the PNG encoding.
func Preview(src image.Image, steps []plan.Step) ([]byte, error) {
	base := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(base, base.Bounds(), src, src.Bounds().Min, draw.Src)

	dc := gg.NewContextForImage(base)
	defer dc.Close()

	dc.SetLineWidth(previewLineWidth)
	for _, st := range steps {
		if st.Kind != plan.StepDraw || len(st.Stroke.Points) < 2 {
			continue
		}
		c := partColour(st.BoundaryID)
		dc.SetRGB(c.r, c.g, c.b)
		dc.MoveTo(st.Stroke.Points[0].X, st.Stroke.Points[0].Y)
		for _, p := range st.Stroke.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("stroke part %d: %w", st.BoundaryID, err)
		}
	}

	for _, st := range steps {
		var (
			p  contour.Point
			ok bool
		)
		switch st.Kind {
		case plan.StepStart:
			p, ok = firstDraw(steps, st.BoundaryID)
			dc.SetRGB(0, 1, 0)
		case plan.StepEnd:
			p, ok = lastDraw(steps, st.BoundaryID)
			dc.SetRGB(1, 50.0/255, 50.0/255)
		}
		if !ok {
			continue
		}
		dc.DrawCircle(p.X, p.Y, markerRadius)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("marker for part %d: %w", st.BoundaryID, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

func firstDraw(steps []plan.Step, id int) (contour.Point, bool) {
	for _, st := range steps {
		if st.Kind == plan.StepDraw && st.BoundaryID == id {
			return st.Stroke.Start, true
		}
	}
	return contour.Point{}, false
}

func lastDraw(steps []plan.Step, id int) (contour.Point, bool) {
	for i := len(steps) - 1; i >= 0; i-- {
		if st := steps[i]; st.Kind == plan.StepDraw && st.BoundaryID == id {
			return st.Stroke.End, true
		}
	}
	return contour.Point{}, false
}
