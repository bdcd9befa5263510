package parse

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/svgfx/geom"
)

// Transform parses an SVG transform list such as
// "translate(10 20) rotate(45, 5, 5) scale(2)". Transforms compose left to
// right: the rightmost transform is applied to points first.
func Transform(s string) (geom.Matrix, error) {
	m := geom.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return geom.Identity(), fmt.Errorf("parse: transform %q: missing '('", s)
		}
		closing := strings.IndexByte(rest, ')')
		if closing < open {
			return geom.Identity(), fmt.Errorf("parse: transform %q: missing ')'", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, ok := Numbers(rest[open+1 : closing])
		if !ok {
			return geom.Identity(), fmt.Errorf("parse: transform %q: bad arguments to %s", s, name)
		}
		t, err := transformFunc(name, args)
		if err != nil {
			return geom.Identity(), fmt.Errorf("parse: transform %q: %w", s, err)
		}
		m = m.Multiply(t)
		rest = strings.TrimLeft(rest[closing+1:], " \t\n\r,")
	}
	return m, nil
}

func transformFunc(name string, a []float64) (geom.Matrix, error) {
	argc := func(allowed ...int) error {
		for _, n := range allowed {
			if len(a) == n {
				return nil
			}
		}
		return fmt.Errorf("%s takes %v arguments, got %d", name, allowed, len(a))
	}
	switch name {
	case "matrix":
		if err := argc(6); err != nil {
			return geom.Matrix{}, err
		}
		return geom.FromSVG(a[0], a[1], a[2], a[3], a[4], a[5]), nil
	case "translate":
		if err := argc(1, 2); err != nil {
			return geom.Matrix{}, err
		}
		if len(a) == 1 {
			return geom.Translate(a[0], 0), nil
		}
		return geom.Translate(a[0], a[1]), nil
	case "scale":
		if err := argc(1, 2); err != nil {
			return geom.Matrix{}, err
		}
		if len(a) == 1 {
			return geom.Scale(a[0], a[0]), nil
		}
		return geom.Scale(a[0], a[1]), nil
	case "rotate":
		if err := argc(1, 3); err != nil {
			return geom.Matrix{}, err
		}
		r := geom.Rotate(a[0] * math.Pi / 180)
		if len(a) == 3 {
			return geom.Translate(a[1], a[2]).Multiply(r).Multiply(geom.Translate(-a[1], -a[2])), nil
		}
		return r, nil
	case "skewX":
		if err := argc(1); err != nil {
			return geom.Matrix{}, err
		}
		return geom.Skew(a[0]*math.Pi/180, 0), nil
	case "skewY":
		if err := argc(1); err != nil {
			return geom.Matrix{}, err
		}
		return geom.Skew(0, a[0]*math.Pi/180), nil
	}
	return geom.Matrix{}, fmt.Errorf("unknown transform %q", name)
}
