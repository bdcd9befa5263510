// Package paintserver resolves the fill and stroke properties of an
// element into paints: solid colors, linear and radial gradients, and
// tiled patterns.
//
// References are followed with the element's document. A reference that
// does not resolve to a paint server uses the fallback color when one is
// declared; otherwise the paint is omitted. Fill and stroke are resolved
// independently.
package paintserver

import (
	"strings"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/units"
)

// PatternRecorder records the children of a pattern element.
//
// content holds the pattern children, tile is the tile rectangle in
// pattern space and m maps content coordinates into tile space. The
// returned picture is culled to tile. A nil result omits the paint.
type PatternRecorder func(content *dom.Element, tile geom.Rect, m geom.Matrix) paint.Picture

// Resolver resolves paint servers.
type Resolver struct {
	// Mapper resolves lengths in user space.
	Mapper units.Mapper
	// Patterns records pattern content. Patterns are omitted when nil.
	Patterns PatternRecorder
}

// Fill returns the fill paint of el, or nil when el is not filled.
// bounds is the geometry bounding box used by objectBoundingBox servers.
func (r *Resolver) Fill(el *dom.Element, bounds geom.Rect) *paint.Paint {
	p := r.resolve(el, el.AttrOr("fill", "black"), bounds, parse.Opacity(el.Attr("fill-opacity"), 1))
	if p != nil {
		p.Style = paint.StyleFill
	}
	return p
}

// Stroke returns the stroke paint of el, or nil when el is not stroked.
func (r *Resolver) Stroke(el *dom.Element, bounds geom.Rect) *paint.Paint {
	stroke, ok := r.StrokeParams(el)
	if !ok {
		return nil
	}
	p := r.resolve(el, el.AttrOr("stroke", "none"), bounds, parse.Opacity(el.Attr("stroke-opacity"), 1))
	if p != nil {
		p.Style = paint.StyleStroke
		p.Stroke = stroke
	}
	return p
}

func (r *Resolver) resolve(el *dom.Element, value string, bounds geom.Rect, opacity float64) *paint.Paint {
	value = strings.TrimSpace(value)
	ref, fallback, isURL := dom.ParseURL(value)
	if !isURL {
		return solid(el, value, opacity)
	}

	var server *dom.Element
	if doc := el.Document(); doc != nil {
		server = doc.Resolve(ref)
	}
	switch {
	case server == nil:
		slogger().Debug("paint server not found", "ref", ref, "fallback", fallback)
	case server.Tag == "linearGradient" || server.Tag == "radialGradient":
		return r.gradient(server, bounds, opacity)
	case server.Tag == "pattern":
		return r.pattern(server, bounds, opacity)
	default:
		slogger().Debug("unsupported paint server", "ref", ref, "tag", server.Tag)
	}
	if fallback == "" {
		return nil
	}
	return solid(el, fallback, opacity)
}

// solid returns a color paint for value, which may be none or
// currentColor.
func solid(el *dom.Element, value string, opacity float64) *paint.Paint {
	c, ok := color(el, value)
	if !ok {
		return nil
	}
	return paint.NewPaint(c.WithAlpha(c.A * opacity))
}

// color parses a color value of el. It reports false for none and for
// malformed values.
func color(el *dom.Element, value string) (paint.RGBA, bool) {
	switch value {
	case "", "none":
		return paint.RGBA{}, false
	case "currentColor", "currentcolor":
		value = el.AttrOr("color", "black")
	}
	c, ok := parse.ParseColor(value)
	if !ok {
		slogger().Debug("invalid color", "value", value, "tag", el.Tag)
		return paint.RGBA{}, false
	}
	return paint.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

// inherited returns the value of name from the first element of c that
// declares it.
func inherited(c []*dom.Element, name string) (string, bool) {
	for _, el := range c {
		if el.Has(name) {
			return el.Attr(name), true
		}
	}
	return "", false
}

// transform parses a transform attribute inherited through c.
func transform(c []*dom.Element, name string) geom.Matrix {
	v, ok := inherited(c, name)
	if !ok {
		return geom.Identity()
	}
	m, err := parse.Transform(v)
	if err != nil {
		slogger().Debug("invalid transform", "attr", name, "value", v, "err", err)
		return geom.Identity()
	}
	return m
}
