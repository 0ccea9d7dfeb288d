package contour

// border is one traced border before the forest is assembled.
type border struct {
	points []Point
	hole   bool
	parent int // index into the border list, -1 for top level
}

// neighbours in clockwise order starting east, as (row, col) offsets with rows growing down.
var neighbours = [8][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

func neighbourIndex(dr, dc int) int {
	for i, n := range neighbours {
		if n[0] == dr && n[1] == dc {
			return i
		}
	}
	return -1
}

// traceBorders follows every outer and hole border of the binary mask
// (Suzuki & Abe, 8-connectivity) in raster discovery order. A parent border is
// always discovered before its children.
func traceBorders(mask []uint8, w, h int) []border {
	// Labelled image padded with a one pixel zero frame.
	pw := w + 2
	f := make([]int, pw*(h+2))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y*w+x] != 0 {
				f[(y+1)*pw+x+1] = 1
			}
		}
	}
	at := func(i, j int) int { return f[i*pw+j] }
	set := func(i, j, v int) { f[i*pw+j] = v }

	type info struct {
		hole   bool
		parent int // nbd of parent border, -1 for the frame
	}
	// NBD 1 is the frame, treated as a hole border.
	infos := map[int]info{1: {hole: true, parent: -1}}
	var borders []border
	nbd := 1

	for i := 1; i <= h; i++ {
		lnbd := 1
		for j := 1; j <= w; j++ {
			fij := at(i, j)
			var (
				si, sj int
				hole   bool
				start  bool
			)
			switch {
			case fij == 1 && at(i, j-1) == 0:
				nbd++
				si, sj, start = i, j-1, true
			case fij >= 1 && at(i, j+1) == 0:
				nbd++
				si, sj, hole, start = i, j+1, true, true
				if fij > 1 {
					lnbd = fij
				}
			}

			if start {
				prev := infos[lnbd]
				parent := lnbd
				if hole == prev.hole {
					parent = prev.parent
				}
				infos[nbd] = info{hole: hole, parent: parent}

				b := border{hole: hole, parent: -1}
				if parent > 1 {
					b.parent = parent - 2
				}
				b.points = follow(i, j, si, sj, nbd, at, set)
				borders = append(borders, b)
			}

			if v := at(i, j); v != 0 && v != 1 {
				lnbd = absi(v)
			}
		}
	}
	return borders
}

// follow traces one border starting at (i, j) with (si, sj) the zero pixel it
// was entered from, labelling pixels with nbd as it goes.
func follow(i, j, si, sj, nbd int, at func(int, int) int, set func(int, int, int)) []Point {
	d0 := neighbourIndex(si-i, sj-j)
	i1, j1 := -1, -1
	for t := 0; t < 8; t++ {
		n := neighbours[(d0+t)%8]
		if at(i+n[0], j+n[1]) != 0 {
			i1, j1 = i+n[0], j+n[1]
			break
		}
	}
	if i1 < 0 {
		set(i, j, -nbd)
		return []Point{{X: float64(j - 1), Y: float64(i - 1)}}
	}

	var pts []Point
	i2, j2 := i1, j1
	i3, j3 := i, j
	for {
		dprev := neighbourIndex(i2-i3, j2-j3)
		eastZero := false
		var i4, j4 int
		for t := 1; t <= 8; t++ {
			d := ((dprev-t)%8 + 8) % 8
			n := neighbours[d]
			if at(i3+n[0], j3+n[1]) != 0 {
				i4, j4 = i3+n[0], j3+n[1]
				break
			}
			if d == 0 {
				eastZero = true
			}
		}

		pts = append(pts, Point{X: float64(j3 - 1), Y: float64(i3 - 1)})
		if eastZero {
			set(i3, j3, -nbd)
		} else if at(i3, j3) == 1 {
			set(i3, j3, nbd)
		}

		if i4 == i && j4 == j && i3 == i1 && j3 == j1 {
			return pts
		}
		i2, j2 = i3, j3
		i3, j3 = i4, j4
	}
}
