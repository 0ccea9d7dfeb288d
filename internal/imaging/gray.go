package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Gray converts to 8-bit luminance. Fully transparent pixels become white paper.
func Gray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			if a == 0 {
				dst.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: 255})
				continue
			}

			r = r * 0xffff / a
			g = g * 0xffff / a
			b = b * 0xffff / a

			dst.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: Luminance(uint8(r>>8), uint8(g>>8), uint8(b>>8))})
		}
	}
	return dst
}

// Luminance is the ITU-R 601 weighted average used across the pipeline.
func Luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

// Thumbnail shrinks img so neither side exceeds maxSide, keeping the aspect
// ratio. Smaller images are copied unchanged into an RGBA.
func Thumbnail(img image.Image, maxSide int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide > 0 && (w > maxSide || h > maxSide) {
		if w >= h {
			h = max(1, h*maxSide/w)
			w = maxSide
		} else {
			w = max(1, w*maxSide/h)
			h = maxSide
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
