package paintserver

import (
	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/units"
)

var unitRect = geom.NewRect(0, 0, 1, 1)

// gradient resolves a linearGradient or radialGradient element. Attributes
// and stops missing on the element are inherited through href.
func (r *Resolver) gradient(el *dom.Element, bounds geom.Rect, opacity float64) *paint.Paint {
	c := dom.HrefChain(el)
	stops := gradientStops(c, opacity)
	switch len(stops) {
	case 0:
		return nil
	case 1:
		return paint.NewPaint(stops[0].Color)
	}

	u := units.ParseUnits(attr(c, "gradientUnits"), units.ObjectBoundingBox)
	if u == units.ObjectBoundingBox && bounds.IsEmpty() {
		return nil
	}
	g := paint.Gradient{
		Stops:     stops,
		Extend:    spread(attr(c, "spreadMethod")),
		Transform: transform(c, "gradientTransform"),
		Linear:    el.Attr("color-interpolation") == "linearRGB",
	}
	if u == units.ObjectBoundingBox {
		g.Transform = geom.BoundingBoxMatrix(bounds).Multiply(g.Transform)
	}

	length := func(name, def string, axis units.Axis) float64 {
		l := units.ParseLengthOr(attr(c, name), units.ParseLengthOr(def, units.Length{}))
		return r.Mapper.Resolve(l, axis, u, unitRect, true)
	}

	p := paint.NewPaint(paint.Black)
	if el.Tag == "linearGradient" {
		p.Shader = &paint.LinearGradient{
			Gradient: g,
			Start:    geom.Pt(length("x1", "0%", units.Horizontal), length("y1", "0%", units.Vertical)),
			End:      geom.Pt(length("x2", "100%", units.Horizontal), length("y2", "0%", units.Vertical)),
		}
		return p
	}

	center := geom.Pt(length("cx", "50%", units.Horizontal), length("cy", "50%", units.Vertical))
	focus := center
	if v, ok := inherited(c, "fx"); ok {
		focus.X = r.Mapper.Resolve(units.ParseLengthOr(v, units.Length{}), units.Horizontal, u, unitRect, true)
	}
	if v, ok := inherited(c, "fy"); ok {
		focus.Y = r.Mapper.Resolve(units.ParseLengthOr(v, units.Length{}), units.Vertical, u, unitRect, true)
	}
	radius := length("r", "50%", units.Other)
	if radius <= 0 {
		// A zero radius paints the last stop.
		return paint.NewPaint(stops[len(stops)-1].Color)
	}
	p.Shader = &paint.RadialGradient{
		Gradient:    g,
		Center:      center,
		Radius:      radius,
		Focus:       focus,
		FocalRadius: max(length("fr", "0%", units.Other), 0),
	}
	return p
}

func attr(c []*dom.Element, name string) string {
	v, _ := inherited(c, name)
	return v
}

func spread(s string) paint.ExtendMode {
	switch s {
	case "reflect":
		return paint.ExtendReflect
	case "repeat":
		return paint.ExtendRepeat
	}
	return paint.ExtendPad
}

// gradientStops reads the stops of the first element of c that has
// any. Offsets are clamped to [0, 1] and made non-decreasing.
func gradientStops(c []*dom.Element, opacity float64) []paint.ColorStop {
	for _, el := range c {
		var stops []paint.ColorStop
		last := 0.0
		for _, child := range el.Children() {
			if child.Tag != "stop" {
				continue
			}
			// Offsets share the number-or-percentage form of opacities.
			offset := parse.Opacity(child.Attr("offset"), 0)
			offset = max(offset, last)
			last = offset

			col, ok := color(child, child.AttrOr("stop-color", "black"))
			if !ok {
				col = paint.Black
			}
			col.A *= parse.Opacity(child.Attr("stop-opacity"), 1) * opacity
			stops = append(stops, paint.ColorStop{Offset: offset, Color: col})
		}
		if len(stops) > 0 {
			return stops
		}
	}
	return nil
}
