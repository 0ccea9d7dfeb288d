package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// DecodeSVG rasterizes an SVG document at its view box size onto a white background.
func DecodeSVG(data []byte) (*image.RGBA, error) {
	svgIcon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	viewBoxW := svgIcon.ViewBox.W
	viewBoxH := svgIcon.ViewBox.H
	if viewBoxW < 1 || viewBoxH < 1 {
		return nil, fmt.Errorf("parse svg: view box %gx%g too small", viewBoxW, viewBoxH)
	}
	return RenderSVG(svgIcon, int(viewBoxW), int(viewBoxH)), nil
}

// RenderSVG draws a parsed icon scaled into a width x height white canvas.
func RenderSVG(svgIcon *oksvg.SvgIcon, width, height int) *image.RGBA {
	svgIcon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	svgIcon.Draw(raster, 1.0)
	return img
}
