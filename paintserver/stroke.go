package paintserver

import (
	"strings"
	"unicode"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/units"
)

// StrokeParams resolves the stroke geometry of el. It reports false when
// the stroke width is not positive.
func (r *Resolver) StrokeParams(el *dom.Element) (paint.Stroke, bool) {
	s := paint.DefaultStroke()
	if v := el.Attr("stroke-width"); v != "" {
		l, ok := units.ParseLength(v)
		if ok {
			s.Width = r.Mapper.ToUser(l, units.Other)
		}
	}
	if s.Width <= 0 {
		return s, false
	}

	switch el.Attr("stroke-linecap") {
	case "round":
		s.Cap = paint.LineCapRound
	case "square":
		s.Cap = paint.LineCapSquare
	}
	switch el.Attr("stroke-linejoin") {
	case "round":
		s.Join = paint.LineJoinRound
	case "bevel":
		s.Join = paint.LineJoinBevel
	}
	if f, ok := parse.Number(el.Attr("stroke-miterlimit")); ok && f >= 1 {
		s.MiterLimit = f
	}

	s.Dash = r.dashes(el.Attr("stroke-dasharray"))
	if s.Dash != nil {
		if l, ok := units.ParseLength(el.Attr("stroke-dashoffset")); ok {
			s.DashOffset = r.Mapper.ToUser(l, units.Other)
		}
	}
	return s, true
}

// dashes parses a dash array. An odd number of entries is repeated to
// make it even. Negative entries, or a sum of zero, yield a solid line.
func (r *Resolver) dashes(v string) []float64 {
	if v == "" || v == "none" {
		return nil
	}
	var dash []float64
	sum := 0.0
	for _, field := range splitList(v) {
		l, ok := units.ParseLength(field)
		if !ok {
			return nil
		}
		d := r.Mapper.ToUser(l, units.Other)
		if d < 0 {
			return nil
		}
		sum += d
		dash = append(dash, d)
	}
	if sum == 0 {
		return nil
	}
	if len(dash)%2 == 1 {
		dash = append(dash, dash...)
	}
	return dash
}

// splitList splits a comma and/or whitespace separated list.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
