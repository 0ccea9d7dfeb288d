package main

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papercut/internal/analysis"
	"papercut/internal/plan"
	"papercut/internal/vector"
)

func writeSquare(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(20, 20, 80, 80), image.NewUniform(color.Black), image.Point{}, draw.Src)

	path := filepath.Join(dir, "square.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestPrintSteps(t *testing.T) {
	stroke := plan.Stroke{BoundaryID: 1, Length: 42}
	res := &analysis.Result{
		Steps: []plan.Step{
			{Index: 1, Kind: plan.StepStart, BoundaryID: 1, Description: "Start part 1"},
			{Index: 2, Kind: plan.StepDraw, BoundaryID: 1, Description: "Cut a line heading east", Stroke: &stroke},
			{Index: 3, Kind: plan.StepEnd, BoundaryID: 1, Description: "Finish part 1"},
		},
		Summary: plan.Summary{Parts: 1, Strokes: 1, Lines: 1, Length: 42},
	}

	var buf bytes.Buffer
	printSteps(&buf, termenv.Ascii, res)
	assert.Equal(t, "  1. Start part 1\n  2. Cut a line heading east\n  3. Finish part 1\n\n1 parts, 1 strokes (1 lines, 0 curves), 42 px of cutting\n", buf.String())
}

func TestFitTransform(t *testing.T) {
	d := &vector.Drawing{Canvas: vector.Canvas{Width: 800, Height: 400}}
	tr := fitTransform(d, 100, 100, 5)
	assert.Equal(t, 0.125, tr.Scale)
	assert.Equal(t, 5.0, tr.OffsetX)
	assert.Equal(t, 5.0, tr.OffsetY)

	assert.Equal(t, 1.0, fitTransform(&vector.Drawing{}, 100, 100, 0).Scale)
}

func TestGCodeAndRenderCommands(t *testing.T) {
	dir := t.TempDir()
	input := writeSquare(t, dir)

	gcodePath := filepath.Join(dir, "square.gcode")
	out := run(t, "gcode", "--input", input, "--output", gcodePath, "--width", "80", "--height", "80")
	assert.Contains(t, out, "G-code successfully written")

	data, err := os.ReadFile(gcodePath)
	require.NoError(t, err)
	gcode := string(data)
	assert.True(t, strings.HasPrefix(gcode, "G21\nG90\n"))
	assert.True(t, strings.HasSuffix(gcode, "G0 X0 Y0\n"))
	assert.Contains(t, gcode, "G1 ")

	svgPath := filepath.Join(dir, "square.svg")
	run(t, "analyze", input, "--svg", svgPath)

	pngPath := filepath.Join(dir, "square-render.png")
	run(t, "render", svgPath, pngPath, "--size", "200")
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}
