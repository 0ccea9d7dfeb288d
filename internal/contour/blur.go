package contour

import "image"

// gaussian5 is the 5-tap binomial kernel, weights sum to 16.
var gaussian5 = [5]int{1, 4, 6, 4, 1}

// reflect101 mirrors an out of range index without repeating the edge pixel.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// blur applies a separable 5x5 Gaussian. The horizontal pass keeps full
// precision and the vertical pass rounds back to 8 bits.
func blur(src *image.Gray) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	tmp := make([]int, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			var s int
			for k, wt := range gaussian5 {
				s += wt * int(row[reflect101(x+k-2, w)])
			}
			tmp[y*w+x] = s
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var s int
			for k, wt := range gaussian5 {
				s += wt * tmp[reflect101(y+k-2, h)*w+x]
			}
			dst.Pix[y*dst.Stride+x] = uint8((s + 128) >> 8)
		}
	}
	return dst
}
