package filter

import (
	"strings"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/units"
)

// colorSpace is the color space a node's pixels are in.
type colorSpace uint8

const (
	sRGB colorSpace = iota
	linearRGB
)

func (c colorSpace) String() string {
	if c == linearRGB {
		return "linearRGB"
	}
	return "sRGB"
}

// primitiveSpace returns the color-interpolation-filters of el. The
// initial value is linearRGB; auto means sRGB.
func primitiveSpace(el *dom.Element) colorSpace {
	switch strings.TrimSpace(el.Attr("color-interpolation-filters")) {
	case "auto", "sRGB":
		return sRGB
	}
	return linearRGB
}

// Standard input names.
const (
	inSourceGraphic   = "SourceGraphic"
	inSourceAlpha     = "SourceAlpha"
	inBackgroundImage = "BackgroundImage"
	inBackgroundAlpha = "BackgroundAlpha"
	inFillPaint       = "FillPaint"
	inStrokePaint     = "StrokePaint"
)

func isStandardInput(name string) bool {
	switch name {
	case inSourceGraphic, inSourceAlpha, inBackgroundImage, inBackgroundAlpha, inFillPaint, inStrokePaint:
		return true
	}
	return false
}

// node is one evaluated primitive or standard input.
type node struct {
	name     string
	filter   paint.ImageFilter
	space    colorSpace
	region   geom.Rect
	standard bool
}

// graph is the state of one filter evaluation.
type graph struct {
	ctx   Context
	units units.Units
	// region is the filter region.
	region geom.Rect

	results  map[string]*node
	standard map[string]*node
	// last is the most recent node, the implicit input of a primitive
	// without an in attribute.
	last *node
}

func newGraph(ctx Context, region geom.Rect, primitiveUnits units.Units) *graph {
	return &graph{
		ctx:      ctx,
		units:    primitiveUnits,
		region:   region,
		results:  make(map[string]*node),
		standard: make(map[string]*node),
	}
}

// input resolves an in or in2 reference. first reports whether the
// primitive is the first of the filter. It returns false for a name
// that matches no earlier result.
func (g *graph) input(name string, first bool) (*node, bool) {
	name = strings.TrimSpace(name)
	switch {
	case name == "" && (first || g.last == nil):
		return g.standardInput(inSourceGraphic), true
	case name == "":
		return g.last, true
	case isStandardInput(name):
		return g.standardInput(name), true
	}
	n, ok := g.results[name]
	return n, ok
}

// standardInput materializes a standard input on first use.
func (g *graph) standardInput(name string) *node {
	if n, ok := g.standard[name]; ok {
		return n
	}
	var f paint.ImageFilter
	switch name {
	case inSourceGraphic:
		f = g.picture(g.ctx.Source.SourceGraphic())
	case inSourceAlpha:
		f = alphaOnly(g.standardInput(inSourceGraphic).filter)
	case inBackgroundImage:
		f = g.picture(g.ctx.Source.BackgroundImage())
	case inBackgroundAlpha:
		f = alphaOnly(g.standardInput(inBackgroundImage).filter)
	case inFillPaint:
		f = g.paintInput(g.ctx.Source.FillPaint())
	case inStrokePaint:
		f = g.paintInput(g.ctx.Source.StrokePaint())
	}
	n := &node{name: name, filter: f, space: sRGB, region: g.region, standard: true}
	g.standard[name] = n
	return n
}

func (g *graph) picture(p paint.Picture) paint.ImageFilter {
	if p == nil {
		return g.placeholder()
	}
	return &paint.PictureSource{Picture: p}
}

func (g *graph) paintInput(p *paint.Paint) paint.ImageFilter {
	if p == nil {
		return g.placeholder()
	}
	p = p.Clone()
	p.Style = paint.StyleFill
	return &paint.PaintSource{Paint: p, Crop: paint.CropTo(g.region)}
}

// placeholder stands in for a missing input: transparent black over the
// filter region.
func (g *graph) placeholder() paint.ImageFilter {
	return &paint.PaintSource{Paint: paint.NewPaint(paint.Transparent), Crop: paint.CropTo(g.region)}
}

func alphaOnly(f paint.ImageFilter) paint.ImageFilter {
	return &paint.ColorFilterImage{
		Filter: &paint.MatrixColorFilter{Matrix: paint.AlphaOnlyMatrix},
		Input:  f,
	}
}

// convert returns the filter of n in color space to.
func (g *graph) convert(n *node, to colorSpace) paint.ImageFilter {
	if n.space == to {
		return n.filter
	}
	var cf paint.ColorFilter = paint.SRGBToLinearGamma{}
	if to == sRGB {
		cf = paint.LinearToSRGBGamma{}
	}
	return &paint.ColorFilterImage{Filter: cf, Input: n.filter}
}

// defaultRegion is the subregion of a primitive that declares none. It
// is the filter region when there are no inputs or any input is
// standard, and the union of the input regions otherwise.
func (g *graph) defaultRegion(inputs []*node) geom.Rect {
	if len(inputs) == 0 {
		return g.region
	}
	r := inputs[0].region
	for _, in := range inputs {
		if in.standard {
			return g.region
		}
		r = r.Union(in.region)
	}
	return r
}

// subregion resolves the x, y, width and height of a primitive against
// the primitive units. Undeclared values come from def. It reports
// false when the width or height is not positive.
func (g *graph) subregion(el *dom.Element, def geom.Rect) (geom.Rect, bool) {
	r := def
	m, b := g.ctx.Mapper, g.ctx.Bounds
	if l, ok := units.ParseLength(el.Attr("x")); ok {
		r.X = m.Resolve(l, units.Horizontal, g.units, b, true)
	}
	if l, ok := units.ParseLength(el.Attr("y")); ok {
		r.Y = m.Resolve(l, units.Vertical, g.units, b, true)
	}
	if l, ok := units.ParseLength(el.Attr("width")); ok {
		r.W = m.Resolve(l, units.Horizontal, g.units, b, false)
	}
	if l, ok := units.ParseLength(el.Attr("height")); ok {
		r.H = m.Resolve(l, units.Vertical, g.units, b, false)
	}
	return r, r.W > 0 && r.H > 0
}

// number scales a primitive attribute value given in primitive units
// along axis.
func (g *graph) number(v float64, axis units.Axis) float64 {
	if g.units != units.ObjectBoundingBox {
		return v
	}
	switch axis {
	case units.Horizontal:
		return v * g.ctx.Bounds.W
	case units.Vertical:
		return v * g.ctx.Bounds.H
	}
	return v * (g.ctx.Bounds.W + g.ctx.Bounds.H) / 2
}

// evaluate adds the node of one primitive. Primitives whose inputs do not
// resolve, whose subregion is empty or whose attributes are unusable
// contribute nothing.
func (g *graph) evaluate(el *dom.Element, first bool) {
	names := inputNames(el)
	inputs := make([]*node, len(names))
	for i, name := range names {
		n, ok := g.input(name, first)
		if !ok {
			slogger().Debug("filter input not found", "primitive", el.Tag, "in", name)
			return
		}
		inputs[i] = n
	}

	def := g.defaultRegion(inputs)
	switch el.Tag {
	case "feFlood", "feImage", "feTile", "feTurbulence":
		def = g.region
	}
	region, ok := g.subregion(el, def)
	if !ok {
		slogger().Debug("empty primitive subregion", "primitive", el.Tag)
		return
	}

	p := &primitive{el: el, space: primitiveSpace(el), region: region, inputs: inputs}
	f, ok := g.build(p)
	if !ok {
		slogger().Debug("filter primitive dropped", "primitive", el.Tag)
		return
	}
	n := &node{name: el.Attr("result"), filter: f, space: p.space, region: region}
	if p.producesSRGB() {
		n.space = sRGB
	}
	if n.name != "" {
		g.results[n.name] = n
	}
	g.last = n
}
