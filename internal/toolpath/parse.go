package toolpath

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedPath is returned for path data with bad parameter counts or
// numbers outside a command.
var ErrMalformedPath = errors.New("malformed path data")

type point struct{ x, y float64 }

type parser struct {
	out         []Primitive
	cur, anchor point
}

// Parse translates SVG path data using M, L and Z (absolute and relative)
// into moves. Extra coordinate pairs after a moveto are implicit linetos.
// Other commands are ignored together with their parameters.
func Parse(data string) ([]Primitive, error) {
	var (
		p      parser
		cmd    byte
		cmdAt  int
		params []float64
	)
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case isNumberStart(c):
			n, w := scanNumber(data[i:])
			if w == 0 {
				return nil, fmt.Errorf("%w: bad number at offset %d", ErrMalformedPath, i)
			}
			if cmd == 0 {
				return nil, fmt.Errorf("%w: number before first command at offset %d", ErrMalformedPath, i)
			}
			params = append(params, n)
			i += w
		case isLetter(c):
			if err := p.apply(cmd, cmdAt, params); err != nil {
				return nil, err
			}
			cmd, cmdAt, params = c, i, params[:0]
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformedPath, c, i)
		}
	}
	if err := p.apply(cmd, cmdAt, params); err != nil {
		return nil, err
	}
	return p.out, nil
}

func (p *parser) apply(cmd byte, at int, params []float64) error {
	switch cmd {
	case 'M', 'm', 'L', 'l':
		if len(params) == 0 || len(params)%2 != 0 {
			return fmt.Errorf("%w: %c at offset %d takes coordinate pairs, got %d numbers", ErrMalformedPath, cmd, at, len(params))
		}
		rel := cmd == 'm' || cmd == 'l'
		for k := 0; k < len(params); k += 2 {
			x, y := params[k], params[k+1]
			if rel {
				x, y = p.cur.x+x, p.cur.y+y
			}
			p.cur = point{x, y}
			if k == 0 && (cmd == 'M' || cmd == 'm') {
				p.anchor = p.cur
				p.out = append(p.out, RapidMove{X: x, Y: y})
				continue
			}
			p.out = append(p.out, DrawMove{X: x, Y: y})
		}
	case 'Z', 'z':
		if len(params) != 0 {
			return fmt.Errorf("%w: %c at offset %d takes no parameters", ErrMalformedPath, cmd, at)
		}
		p.out = append(p.out, DrawMove{X: p.anchor.x, Y: p.anchor.y})
		p.cur = p.anchor
	}
	return nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z' && c != 'e') || (c >= 'A' && c <= 'Z' && c != 'E')
}

func isNumberStart(c byte) bool {
	return c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

// scanNumber reads one SVG number from the start of s and returns its value
// and width, or a zero width if s does not start with a number.
func scanNumber(s string) (float64, int) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, 0
	}
	return v, i
}
