package vector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papercut/internal/contour"
)

func square(id, parent, depth int, x0, y0, side float64) contour.Boundary {
	pts := []contour.Point{
		{X: x0, Y: y0}, {X: x0 + side, Y: y0}, {X: x0 + side, Y: y0 + side}, {X: x0, Y: y0 + side},
	}
	return contour.Boundary{ID: id, Parent: parent, Depth: depth, Points: pts, Area: side * side}
}

func nested() *contour.Forest {
	return &contour.Forest{
		Width:  40,
		Height: 40,
		Boundaries: []contour.Boundary{
			square(1, 0, 0, 10, 10, 10),
			square(2, 1, 1, 12, 12, 4),
		},
	}
}

func TestEmitScalesAndCentres(t *testing.T) {
	d := NewEmitter(DefaultCanvas(), nil).Emit(nested())
	require.Len(t, d.Paths, 2)

	assert.InDelta(t, 76.0, d.Scale, 1e-9)
	assert.InDelta(t, -740.0, d.OffsetX, 1e-9)
	assert.InDelta(t, -740.0, d.OffsetY, 1e-9)

	// inner shape first
	assert.Equal(t, 2, d.Paths[0].BoundaryID)
	assert.Equal(t, StrokeHole, d.Paths[0].Stroke)
	assert.Equal(t, 1, d.Paths[1].BoundaryID)
	assert.Equal(t, StrokeOuter, d.Paths[1].Stroke)

	assert.Equal(t, "M 20.0,20.0 L 780.0,20.0 L 780.0,780.0 L 20.0,780.0 Z", d.Paths[1].Data)
	assert.Equal(t, "M 172.0,172.0 L 476.0,172.0 L 476.0,476.0 L 172.0,476.0 Z", d.Paths[0].Data)
}

func TestEmitNonSquareBounds(t *testing.T) {
	f := &contour.Forest{Boundaries: []contour.Boundary{{
		ID:     1,
		Points: []contour.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 10}, {X: 0, Y: 10}},
		Area:   400,
	}}}
	d := NewEmitter(DefaultCanvas(), nil).Emit(f)
	require.Len(t, d.Paths, 1)
	assert.InDelta(t, 19.0, d.Scale, 1e-9)
	// vertically centred
	assert.Equal(t, "M 20.0,305.0 L 780.0,305.0 L 780.0,495.0 L 20.0,495.0 Z", d.Paths[0].Data)
}

func TestEmitDegenerateBounds(t *testing.T) {
	line := &contour.Forest{Boundaries: []contour.Boundary{{
		ID:     1,
		Points: []contour.Point{{X: 5, Y: 7}, {X: 15, Y: 7}},
	}}}
	d := NewEmitter(DefaultCanvas(), nil).Emit(line)
	assert.InDelta(t, 76.0, d.Scale, 1e-9)
	assert.Equal(t, "M 20.0,400.0 L 780.0,400.0 Z", d.Paths[0].Data)

	dot := &contour.Forest{Boundaries: []contour.Boundary{{ID: 1, Points: []contour.Point{{X: 3, Y: 3}}}}}
	d = NewEmitter(DefaultCanvas(), nil).Emit(dot)
	assert.Equal(t, 1.0, d.Scale)
	assert.Equal(t, "M 400.0,400.0 Z", d.Paths[0].Data)
}

func TestEmitEmptyForest(t *testing.T) {
	d := NewEmitter(DefaultCanvas(), nil).Emit(&contour.Forest{Width: 10, Height: 10})
	assert.Empty(t, d.Paths)
	assert.Equal(t, 800.0, d.Width)
}

func TestPathData(t *testing.T) {
	assert.Equal(t, "", PathData(nil))
	assert.Equal(t, "M 1.3,2.0 L 3.5,4.1 Z", PathData([]contour.Point{{X: 1.26, Y: 2}, {X: 3.46, Y: 4.07}}))
}

func TestMarshalParseSVG(t *testing.T) {
	d := NewEmitter(DefaultCanvas(), nil).Emit(nested())
	data, err := MarshalSVG(d)
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.Contains(t, s, `viewBox="0 0 800 800"`)
	assert.Contains(t, s, `fill="white"`)
	assert.Contains(t, s, `stroke="gray"`)
	assert.Less(t, strings.Index(s, `stroke="gray"`), strings.Index(s, `stroke="black"`))

	back, err := ParseSVG(data)
	require.NoError(t, err)
	assert.Equal(t, 800.0, back.Width)
	assert.Equal(t, 800.0, back.Height)
	assert.Equal(t, 2.0, back.StrokeWidth)
	require.Len(t, back.Paths, 2)
	for i := range d.Paths {
		assert.Equal(t, d.Paths[i].Data, back.Paths[i].Data)
		assert.Equal(t, d.Paths[i].Stroke, back.Paths[i].Stroke)
	}
}

func TestParseSVGForeignDocument(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" width="200px" height="100px">
  <g><path d=" M 0,0 L 10,10 Z " stroke="red"/></g>
  <path d="M 1,1 L 2,2"/>
</svg>`
	d, err := ParseSVG([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 200.0, d.Width)
	assert.Equal(t, 100.0, d.Height)
	require.Len(t, d.Paths, 2)
	assert.Equal(t, "M 0,0 L 10,10 Z", d.Paths[0].Data)
	assert.Equal(t, "red", d.Paths[0].Stroke)
	assert.Equal(t, StrokeOuter, d.Paths[1].Stroke)

	_, err = ParseSVG([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	assert.ErrorIs(t, err, ErrNoPaths)

	_, err = ParseSVG([]byte(`<svg><path`))
	assert.Error(t, err)
}

func TestRasterize(t *testing.T) {
	d := NewEmitter(DefaultCanvas(), nil).Emit(nested())
	img, err := Rasterize(d, 800, 800)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())

	// background stays white, the outer outline at x=20 is dark
	assert.Equal(t, uint8(255), img.RGBAAt(400, 400).R)
	assert.Less(t, img.RGBAAt(20, 400).R, uint8(100))
}
