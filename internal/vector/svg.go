package vector

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"

	"papercut/internal/imaging"
)

// ErrNoPaths is returned when an SVG document holds no path elements.
var ErrNoPaths = errors.New("svg has no paths")

type svgDoc struct {
	XMLName xml.Name  `xml:"svg"`
	Xmlns   string    `xml:"xmlns,attr"`
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	ViewBox string    `xml:"viewBox,attr"`
	Rect    svgRect   `xml:"rect"`
	Paths   []svgPath `xml:"path"`
}

type svgRect struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Fill   string `xml:"fill,attr"`
}

type svgPath struct {
	D           string `xml:"d,attr"`
	Stroke      string `xml:"stroke,attr"`
	Fill        string `xml:"fill,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// MarshalSVG writes d as a standalone SVG document on a white background.
func MarshalSVG(d *Drawing) ([]byte, error) {
	doc := svgDoc{
		Xmlns:   "http://www.w3.org/2000/svg",
		Width:   num(d.Width),
		Height:  num(d.Height),
		ViewBox: fmt.Sprintf("0 0 %s %s", num(d.Width), num(d.Height)),
		Rect:    svgRect{X: "0", Y: "0", Width: num(d.Width), Height: num(d.Height), Fill: "white"},
	}
	for _, p := range d.Paths {
		doc.Paths = append(doc.Paths, svgPath{D: p.Data, Stroke: p.Stroke, Fill: "none", StrokeWidth: num(d.StrokeWidth)})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode svg: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseSVG reads every path element of an SVG document in document order.
// Canvas size comes from the view box, falling back to width/height.
func ParseSVG(data []byte) (*Drawing, error) {
	d := &Drawing{Scale: 1}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse svg: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "svg":
			readCanvas(se.Attr, &d.Canvas)
		case "path":
			p := Path{Stroke: StrokeOuter}
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "d":
					p.Data = strings.TrimSpace(a.Value)
				case "stroke":
					p.Stroke = a.Value
				case "stroke-width":
					if v, err := strconv.ParseFloat(a.Value, 64); err == nil {
						d.StrokeWidth = v
					}
				}
			}
			if p.Data != "" {
				d.Paths = append(d.Paths, p)
			}
		}
	}
	if len(d.Paths) == 0 {
		return nil, ErrNoPaths
	}
	return d, nil
}

func readCanvas(attrs []xml.Attr, c *Canvas) {
	for _, a := range attrs {
		switch a.Name.Local {
		case "viewBox":
			f := strings.Fields(strings.ReplaceAll(a.Value, ",", " "))
			if len(f) == 4 {
				c.Width, _ = strconv.ParseFloat(f[2], 64)
				c.Height, _ = strconv.ParseFloat(f[3], 64)
			}
		case "width":
			if c.Width == 0 {
				c.Width, _ = strconv.ParseFloat(strings.TrimSuffix(a.Value, "px"), 64)
			}
		case "height":
			if c.Height == 0 {
				c.Height, _ = strconv.ParseFloat(strings.TrimSuffix(a.Value, "px"), 64)
			}
		}
	}
}

// Rasterize renders d into a width x height image.
func Rasterize(d *Drawing, width, height int) (*image.RGBA, error) {
	data, err := MarshalSVG(d)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("read drawing: %w", err)
	}
	return imaging.RenderSVG(icon, width, height), nil
}
