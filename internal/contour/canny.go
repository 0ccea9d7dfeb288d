package contour

import "image"

// tan22 is tan(22.5deg), the sector boundary used by non-maximum suppression.
const tan22 = 0.41421356237309503

// median of all pixel values; the mean of the two middle values for even counts.
func median(g *image.Gray) float64 {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	n := w * h
	if n == 0 {
		return 0
	}
	var hist [256]int
	for y := 0; y < h; y++ {
		for _, v := range g.Pix[y*g.Stride : y*g.Stride+w] {
			hist[v]++
		}
	}

	nth := func(k int) int {
		seen := 0
		for v, c := range hist {
			seen += c
			if seen > k {
				return v
			}
		}
		return 255
	}
	if n%2 == 1 {
		return float64(nth(n / 2))
	}
	return float64(nth(n/2-1)+nth(n/2)) / 2
}

// thresholds derives the Canny hysteresis pair from the median intensity.
func thresholds(v, lowRatio, highRatio float64) (low, high int) {
	low = int(clampf((1-lowRatio)*v, 0, 255))
	high = int(clampf((1+highRatio)*v, 0, 255))
	return low, high
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absi(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// canny returns a w*h edge mask (1 = edge). Gradients use 3x3 Sobel with
// replicated borders and the L1 magnitude.
func canny(g *image.Gray, low, high int) []uint8 {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	px := func(x, y int) int {
		return int(g.Pix[clampi(y, 0, h-1)*g.Stride+clampi(x, 0, w-1)])
	}

	dx := make([]int, w*h)
	dy := make([]int, w*h)
	mag := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := (px(x+1, y-1) + 2*px(x+1, y) + px(x+1, y+1)) - (px(x-1, y-1) + 2*px(x-1, y) + px(x-1, y+1))
			gy := (px(x-1, y+1) + 2*px(x, y+1) + px(x+1, y+1)) - (px(x-1, y-1) + 2*px(x, y-1) + px(x+1, y-1))
			i := y*w + x
			dx[i], dy[i] = gx, gy
			mag[i] = absi(gx) + absi(gy)
		}
	}
	m := func(x, y int) int {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	const (
		none = iota
		weak
		strong
	)
	state := make([]uint8, w*h)
	var stack []int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			v := mag[i]
			if v <= low {
				continue
			}
			xs, ys := float64(absi(dx[i])), float64(absi(dy[i]))
			tg22 := xs * tan22
			tg67 := tg22 + 2*xs

			var keep bool
			switch {
			case ys < tg22:
				keep = v > m(x-1, y) && v >= m(x+1, y)
			case ys > tg67:
				keep = v > m(x, y-1) && v >= m(x, y+1)
			default:
				s := 1
				if (dx[i] < 0) != (dy[i] < 0) {
					s = -1
				}
				keep = v > m(x-s, y-1) && v > m(x+s, y+1)
			}
			if !keep {
				continue
			}
			if v > high {
				state[i] = strong
				stack = append(stack, i)
			} else {
				state[i] = weak
			}
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for oy := -1; oy <= 1; oy++ {
			for ox := -1; ox <= 1; ox++ {
				nx, ny := x+ox, y+oy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				if j := ny*w + nx; state[j] == weak {
					state[j] = strong
					stack = append(stack, j)
				}
			}
		}
	}

	edges := make([]uint8, w*h)
	for i, s := range state {
		if s == strong {
			edges[i] = 1
		}
	}
	return edges
}
