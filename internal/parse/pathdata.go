package parse

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/gogpu/svgfx/geom"
)

var pathArgCount = map[byte]int{
	'M': 2, 'Z': 0, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7,
}

// PathData parses the d attribute of a path element.
//
// On malformed input the path built up to the offending command is
// returned together with the error, so callers can render the valid
// prefix.
func PathData(s string) (*geom.Path, error) {
	b := []byte(s)
	p := geom.NewPath()
	var f [7]float64
	var p0, p1, ctrl geom.Point
	prev := byte('z')
	started := false

	i := skipCommaWhitespace(b)
	for i < len(b) {
		cmd := prev
		repeat := true
		if c := b[i]; !(c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+') {
			cmd = c
			repeat = false
			i++
			i += skipCommaWhitespace(b[i:])
		} else if prev == 'z' || prev == 'Z' {
			return p, fmt.Errorf("parse: path data: number without command at position %d", i+1)
		}

		upper := cmd
		if 'a' <= cmd && cmd <= 'z' {
			upper -= 'a' - 'A'
		}
		argc, known := pathArgCount[upper]
		if !known {
			return p, fmt.Errorf("parse: path data: unknown command '%c' at position %d", cmd, i)
		}
		if !started && upper != 'M' {
			return p, fmt.Errorf("parse: path data: must start with moveto, got '%c'", cmd)
		}
		started = true

		for j := 0; j < argc; j++ {
			if upper == 'A' && (j == 3 || j == 4) {
				if i < len(b) && (b[i] == '0' || b[i] == '1') {
					f[j] = float64(b[i] - '0')
					i++
				} else {
					return p, fmt.Errorf("parse: path data: arc flag must be 0 or 1 at position %d", i+1)
				}
			} else {
				num, n := strconv.ParseFloat(b[i:])
				if n == 0 {
					if repeat && j == 0 {
						return p, fmt.Errorf("parse: path data: unexpected '%c' at position %d", b[i], i+1)
					}
					return p, fmt.Errorf("parse: path data: command '%c' needs %d numbers at position %d", cmd, argc, i+1)
				}
				f[j] = num
				i += n
			}
			i += skipCommaWhitespace(b[i:])
		}

		relative := cmd != upper
		rel := func(pt geom.Point) geom.Point {
			if relative {
				return pt.Add(p0)
			}
			return pt
		}

		switch upper {
		case 'M':
			p1 = rel(geom.Pt(f[0], f[1]))
			p.MoveTo(p1.X, p1.Y)
			// subsequent pairs are implicit linetos
			if relative {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			p.Close()
			p1 = p.StartPoint()
		case 'L':
			p1 = rel(geom.Pt(f[0], f[1]))
			p.LineTo(p1.X, p1.Y)
		case 'H':
			p1.X = f[0]
			if relative {
				p1.X += p0.X
			}
			p.LineTo(p1.X, p1.Y)
		case 'V':
			p1.Y = f[0]
			if relative {
				p1.Y += p0.Y
			}
			p.LineTo(p1.X, p1.Y)
		case 'C':
			c1 := rel(geom.Pt(f[0], f[1]))
			c2 := rel(geom.Pt(f[2], f[3]))
			p1 = rel(geom.Pt(f[4], f[5]))
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p1.X, p1.Y)
			ctrl = c2
		case 'S':
			c1 := p0
			if prev == 'C' || prev == 'c' || prev == 'S' || prev == 's' {
				c1 = p0.Mul(2).Sub(ctrl)
			}
			c2 := rel(geom.Pt(f[0], f[1]))
			p1 = rel(geom.Pt(f[2], f[3]))
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p1.X, p1.Y)
			ctrl = c2
		case 'Q':
			c := rel(geom.Pt(f[0], f[1]))
			p1 = rel(geom.Pt(f[2], f[3]))
			p.QuadraticTo(c.X, c.Y, p1.X, p1.Y)
			ctrl = c
		case 'T':
			c := p0
			if prev == 'Q' || prev == 'q' || prev == 'T' || prev == 't' {
				c = p0.Mul(2).Sub(ctrl)
			}
			p1 = rel(geom.Pt(f[0], f[1]))
			p.QuadraticTo(c.X, c.Y, p1.X, p1.Y)
			ctrl = c
		case 'A':
			p1 = rel(geom.Pt(f[5], f[6]))
			p.ArcTo(f[0], f[1], f[2], f[3] == 1, f[4] == 1, p1.X, p1.Y)
		}
		prev = cmd
		p0 = p1
	}
	return p, nil
}

// Points parses the points attribute of polyline and polygon. An odd
// trailing coordinate is dropped.
func Points(s string) []geom.Point {
	nums, _ := Numbers(s)
	pts := make([]geom.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, geom.Pt(nums[i], nums[i+1]))
	}
	return pts
}
