// Package filter evaluates SVG filter effects.
//
// A filter element and the filters it inherits from through href are
// resolved into a graph of paint.ImageFilter nodes. Each primitive
// becomes one node; inputs are wired by result name, by the standard
// input keywords, or implicitly to the previous primitive. Nodes carry
// the color space they were produced in and are converted on the way
// into primitives that operate in another space. The output is always
// sRGB.
//
// Evaluation only describes the work; executing the graph is up to the
// backend that plays back the drawing.
package filter

import (
	"github.com/gogpu/svgfx/assets"
	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/units"
)

// Source gives a filter access to the element it is applied to.
type Source interface {
	// SourceGraphic returns the element's own drawing, without the
	// filter.
	SourceGraphic() paint.Picture
	// BackgroundImage returns what was drawn below the element inside
	// the nearest enable-background container, or nil.
	BackgroundImage() paint.Picture
	// FillPaint and StrokePaint return the element's resolved paints,
	// or nil.
	FillPaint() *paint.Paint
	StrokePaint() *paint.Paint
}

// Images records the targets of feImage references.
type Images interface {
	// Element records el of the same document, drawn in the user space
	// of the filtered element.
	Element(el *dom.Element) paint.Picture
	// Document records a nested SVG document fitted into region.
	Document(a *assets.Asset, region geom.Rect, ar units.AspectRatio) paint.Picture
}

// Context holds what the evaluation of one element's filter needs.
type Context struct {
	// Element is the filtered element; its filter property names the
	// filter.
	Element *dom.Element
	Source  Source
	// Images and Assets serve feImage. Either may be nil.
	Images Images
	Assets *assets.Loader
	// Bounds is the element's object bounding box.
	Bounds geom.Rect
	Mapper units.Mapper
}

// Result is the outcome of a filter evaluation.
type Result struct {
	// Paint carries the composed image filter. It is nil when the filter
	// is omitted.
	Paint *paint.Paint
	// Region is the filter region; filtered content is clipped to it.
	Region geom.Rect
	// Drawable is false when the element must not be drawn at all.
	Drawable bool
}

// Filter attribute defaults.
var (
	defaultX      = units.Percentage(-10)
	defaultY      = units.Percentage(-10)
	defaultWidth  = units.Percentage(120)
	defaultHeight = units.Percentage(120)
)

// Evaluate resolves the filter of ctx.Element.
//
// A filter reference that does not resolve, or a filter chain without
// primitives or whose primitives all fail, makes the element not
// drawable. A filter region with no area omits the filter paint and
// leaves the element drawable.
func Evaluate(ctx Context) Result {
	value := ctx.Element.Attr("filter")
	ref, _, ok := dom.ParseURL(value)
	if !ok {
		if value != "" && value != "none" {
			slogger().Debug("unsupported filter value", "value", value)
		}
		return Result{Drawable: true}
	}
	var el *dom.Element
	if doc := ctx.Element.Document(); doc != nil {
		el = doc.Resolve(ref)
	}
	if el == nil || el.Tag != "filter" {
		slogger().Debug("filter not found", "ref", ref)
		return Result{}
	}

	chain := dom.HrefChain(el)
	primitives := children(chain)
	if len(primitives) == 0 {
		slogger().Debug("filter has no primitives", "ref", ref)
		return Result{}
	}

	length := func(name string, def units.Length) units.Length {
		v, ok := inherited(chain, name)
		if !ok {
			return def
		}
		return units.ParseLengthOr(v, def)
	}
	filterUnits, _ := inherited(chain, "filterUnits")
	primitiveUnits, _ := inherited(chain, "primitiveUnits")

	region, ok := ctx.Mapper.CalculateRect(
		length("x", defaultX), length("y", defaultY),
		length("width", defaultWidth), length("height", defaultHeight),
		units.ParseUnits(filterUnits, units.ObjectBoundingBox), ctx.Bounds)
	if !ok {
		slogger().Debug("empty filter region", "ref", ref)
		return Result{Drawable: true}
	}

	g := newGraph(ctx, region, units.ParseUnits(primitiveUnits, units.UserSpaceOnUse))
	for i, prim := range primitives {
		g.evaluate(prim, i == 0)
	}
	if g.last == nil {
		slogger().Debug("filter produced no result", "ref", ref)
		return Result{}
	}
	return Result{
		Paint:    paint.NewFilterPaint(g.convert(g.last, sRGB)),
		Region:   region,
		Drawable: true,
	}
}

// children returns the primitives of the first filter in chain that has
// any child elements.
func children(chain []*dom.Element) []*dom.Element {
	for _, el := range chain {
		if len(el.Children()) == 0 {
			continue
		}
		var out []*dom.Element
		for _, c := range el.Children() {
			if isPrimitive(c.Tag) {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

// inherited returns the value of name from the first element of chain
// that declares it.
func inherited(chain []*dom.Element, name string) (string, bool) {
	for _, el := range chain {
		if el.Has(name) {
			return el.Attr(name), true
		}
	}
	return "", false
}
