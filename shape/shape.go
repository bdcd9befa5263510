// Package shape converts basic shape and path elements into paths.
package shape

import (
	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/units"
)

// Context selects which property supplies the fill rule of a path.
type Context uint8

const (
	// Fill uses fill-rule.
	Fill Context = iota
	// Clip uses clip-rule, for shapes inside a clipPath.
	Clip
)

// IsShape reports whether tag names an element Build accepts.
func IsShape(tag string) bool {
	switch tag {
	case "rect", "circle", "ellipse", "line", "polyline", "polygon", "path":
		return true
	}
	return false
}

// Build returns the geometry of a shape element in its own user space.
// Degenerate geometry yields nil.
func Build(el *dom.Element, m units.Mapper, ctx Context) *geom.Path {
	var p *geom.Path
	switch el.Tag {
	case "rect":
		p = rect(el, m)
	case "circle":
		p = circle(el, m)
	case "ellipse":
		p = ellipse(el, m)
	case "line":
		p = line(el, m)
	case "polyline":
		p = poly(el, false)
	case "polygon":
		p = poly(el, true)
	case "path":
		p = pathData(el)
	}
	if p.IsEmpty() {
		return nil
	}
	p.FillRule = FillRule(el, ctx)
	return p
}

// FillRule returns the fill rule of el in the given context.
func FillRule(el *dom.Element, ctx Context) geom.FillRule {
	prop := "fill-rule"
	if ctx == Clip {
		prop = "clip-rule"
	}
	if el.Attr(prop) == "evenodd" {
		return geom.EvenOdd
	}
	return geom.NonZero
}

func length(el *dom.Element, m units.Mapper, name string, axis units.Axis) float64 {
	l := units.ParseLengthOr(el.Attr(name), units.Length{})
	return m.ToUser(l, axis)
}

// optLength resolves an attribute that may be "auto" or missing.
func optLength(el *dom.Element, m units.Mapper, name string, axis units.Axis) (float64, bool) {
	l, ok := units.ParseLength(el.Attr(name))
	if !ok {
		return 0, false
	}
	v := m.ToUser(l, axis)
	if v < 0 {
		return 0, false
	}
	return v, true
}

func rect(el *dom.Element, m units.Mapper) *geom.Path {
	x := length(el, m, "x", units.Horizontal)
	y := length(el, m, "y", units.Vertical)
	w := length(el, m, "width", units.Horizontal)
	h := length(el, m, "height", units.Vertical)
	if w <= 0 || h <= 0 {
		return nil
	}
	rx, okX := optLength(el, m, "rx", units.Horizontal)
	ry, okY := optLength(el, m, "ry", units.Vertical)
	switch {
	case okX && !okY:
		ry = rx
	case okY && !okX:
		rx = ry
	}
	rx = min(rx, w/2)
	ry = min(ry, h/2)

	p := geom.NewPath()
	if rx > 0 && ry > 0 {
		p.RoundedRectangle(x, y, w, h, rx, ry)
	} else {
		p.Rectangle(x, y, w, h)
	}
	return p
}

func circle(el *dom.Element, m units.Mapper) *geom.Path {
	cx := length(el, m, "cx", units.Horizontal)
	cy := length(el, m, "cy", units.Vertical)
	r := length(el, m, "r", units.Other)
	if r <= 0 {
		return nil
	}
	p := geom.NewPath()
	p.Ellipse(cx, cy, r, r)
	return p
}

func ellipse(el *dom.Element, m units.Mapper) *geom.Path {
	cx := length(el, m, "cx", units.Horizontal)
	cy := length(el, m, "cy", units.Vertical)
	rx, okX := optLength(el, m, "rx", units.Horizontal)
	ry, okY := optLength(el, m, "ry", units.Vertical)
	switch {
	case okX && !okY:
		ry = rx
	case okY && !okX:
		rx = ry
	}
	if rx <= 0 || ry <= 0 {
		return nil
	}
	p := geom.NewPath()
	p.Ellipse(cx, cy, rx, ry)
	return p
}

func line(el *dom.Element, m units.Mapper) *geom.Path {
	p := geom.NewPath()
	p.MoveTo(length(el, m, "x1", units.Horizontal), length(el, m, "y1", units.Vertical))
	p.LineTo(length(el, m, "x2", units.Horizontal), length(el, m, "y2", units.Vertical))
	return p
}

func poly(el *dom.Element, closed bool) *geom.Path {
	pts := parse.Points(el.Attr("points"))
	if len(pts) < 2 {
		return nil
	}
	p := geom.NewPath()
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	if closed {
		p.Close()
	}
	return p
}

func pathData(el *dom.Element) *geom.Path {
	// A malformed tail still renders the valid prefix.
	p, _ := parse.PathData(el.Attr("d"))
	if p.IsEmpty() {
		return nil
	}
	// A lone moveto draws nothing.
	for _, e := range p.Elements() {
		if _, ok := e.(geom.MoveTo); !ok {
			return p
		}
	}
	return nil
}
