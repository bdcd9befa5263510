package filter

import (
	"math"
	"strings"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/units"
)

// primitive is a filter primitive element with its resolved inputs.
type primitive struct {
	el     *dom.Element
	space  colorSpace
	region geom.Rect
	inputs []*node
}

func (p *primitive) crop() paint.Crop { return paint.CropTo(p.region) }

// producesSRGB reports whether the primitive generates its output
// directly in sRGB instead of in its color-interpolation-filters space.
func (p *primitive) producesSRGB() bool {
	switch p.el.Tag {
	case "feFlood", "feImage", "feTurbulence":
		return true
	}
	return false
}

func isPrimitive(tag string) bool {
	switch tag {
	case "feBlend", "feColorMatrix", "feComponentTransfer", "feComposite",
		"feConvolveMatrix", "feDiffuseLighting", "feDisplacementMap",
		"feDropShadow", "feFlood", "feGaussianBlur", "feImage", "feMerge",
		"feMorphology", "feOffset", "feSpecularLighting", "feTile",
		"feTurbulence":
		return true
	}
	return false
}

// inputNames returns the in references of a primitive in order.
func inputNames(el *dom.Element) []string {
	switch el.Tag {
	case "feFlood", "feImage", "feTurbulence":
		return nil
	case "feBlend", "feComposite", "feDisplacementMap":
		return []string{el.Attr("in"), el.Attr("in2")}
	case "feMerge":
		var names []string
		for _, c := range el.Children() {
			if c.Tag == "feMergeNode" {
				names = append(names, c.Attr("in"))
			}
		}
		return names
	}
	return []string{el.Attr("in")}
}

// in returns input i converted to the primitive's color space.
func (g *graph) in(p *primitive, i int) paint.ImageFilter {
	return g.convert(p.inputs[i], p.space)
}

// build creates the image filter of p. It reports false when the
// primitive's attributes do not describe a usable operation.
func (g *graph) build(p *primitive) (paint.ImageFilter, bool) {
	switch p.el.Tag {
	case "feBlend":
		return &paint.Blend{
			Mode:       paint.ParseBlendMode(p.el.Attr("mode")),
			Foreground: g.in(p, 0),
			Background: g.in(p, 1),
			Crop:       p.crop(),
		}, true
	case "feColorMatrix":
		return g.colorMatrix(p)
	case "feComponentTransfer":
		return g.componentTransfer(p)
	case "feComposite":
		return g.composite(p)
	case "feConvolveMatrix":
		return g.convolveMatrix(p)
	case "feDiffuseLighting", "feSpecularLighting":
		return g.lighting(p)
	case "feDisplacementMap":
		return g.displacementMap(p)
	case "feDropShadow":
		return g.dropShadow(p)
	case "feFlood":
		c := g.color(p, "flood-color", "black", "flood-opacity", sRGB)
		return &paint.PaintSource{Paint: paint.NewPaint(c), Crop: p.crop()}, true
	case "feGaussianBlur":
		return g.gaussianBlur(p)
	case "feImage":
		return g.image(p)
	case "feMerge":
		filters := make([]paint.ImageFilter, len(p.inputs))
		for i := range p.inputs {
			filters[i] = g.in(p, i)
		}
		return &paint.Merge{Filters: filters, Crop: p.crop()}, true
	case "feMorphology":
		return g.morphology(p)
	case "feOffset":
		dx, _ := parse.Number(p.el.Attr("dx"))
		dy, _ := parse.Number(p.el.Attr("dy"))
		return &paint.Offset{
			Dx:    g.number(dx, units.Horizontal),
			Dy:    g.number(dy, units.Vertical),
			Input: g.in(p, 0),
			Crop:  p.crop(),
		}, true
	case "feTile":
		return &paint.Tile{Src: p.inputs[0].region, Dst: p.region, Input: g.in(p, 0)}, true
	case "feTurbulence":
		return g.turbulence(p)
	}
	return nil, false
}

// color resolves a color and opacity attribute pair of a primitive into
// the given color space. def is the color used when colorAttr is absent.
func (g *graph) color(p *primitive, colorAttr, def, opacityAttr string, space colorSpace) paint.RGBA {
	v := strings.TrimSpace(p.el.AttrOr(colorAttr, def))
	if v == "currentColor" || v == "currentcolor" {
		v = p.el.AttrOr("color", "black")
	}
	c := paint.Black
	if pc, ok := parse.ParseColor(v); ok {
		c = paint.RGBA{R: pc.R, G: pc.G, B: pc.B, A: pc.A}
	}
	if opacityAttr != "" {
		c.A *= parse.Opacity(p.el.Attr(opacityAttr), 1)
	}
	if space == linearRGB {
		c = paint.SRGBToLinearColor(c)
	}
	return c
}

func (g *graph) colorMatrix(p *primitive) (paint.ImageFilter, bool) {
	values, ok := parse.Numbers(p.el.Attr("values"))
	if !ok {
		values = nil
	}
	m := paint.IdentityMatrix
	switch p.el.AttrOr("type", "matrix") {
	case "matrix":
		if len(values) == 20 {
			copy(m[:], values)
		}
	case "saturate":
		s := 1.0
		if len(values) == 1 {
			s = max(values[0], 0)
		}
		m = paint.SaturateMatrix(s)
	case "hueRotate":
		deg := 0.0
		if len(values) == 1 {
			deg = values[0]
		}
		m = paint.HueRotateMatrix(deg)
	case "luminanceToAlpha":
		m = paint.LuminanceToAlphaMatrix
	}
	return &paint.ColorFilterImage{
		Filter: &paint.MatrixColorFilter{Matrix: m},
		Input:  g.in(p, 0),
		Crop:   p.crop(),
	}, true
}

var compositeModes = map[string]paint.BlendMode{
	"over":    paint.BlendSourceOver,
	"in":      paint.BlendSourceIn,
	"out":     paint.BlendSourceOut,
	"atop":    paint.BlendSourceAtop,
	"xor":     paint.BlendXor,
	"lighter": paint.BlendPlus,
}

func (g *graph) composite(p *primitive) (paint.ImageFilter, bool) {
	op := p.el.AttrOr("operator", "over")
	if op == "arithmetic" {
		k := func(name string) float64 {
			v, _ := parse.Number(p.el.Attr(name))
			return v
		}
		return &paint.Arithmetic{
			K1: k("k1"), K2: k("k2"), K3: k("k3"), K4: k("k4"),
			EnforcePremul: true,
			Foreground:    g.in(p, 0),
			Background:    g.in(p, 1),
			Crop:          p.crop(),
		}, true
	}
	mode, ok := compositeModes[op]
	if !ok {
		mode = paint.BlendSourceOver
	}
	return &paint.Blend{Mode: mode, Foreground: g.in(p, 0), Background: g.in(p, 1), Crop: p.crop()}, true
}

func (g *graph) convolveMatrix(p *primitive) (paint.ImageFilter, bool) {
	el := p.el
	ox, oy := 3, 3
	if v := el.Attr("order"); v != "" {
		a, b, ok := parse.NumberPair(v)
		if !ok || a < 1 || b < 1 || a != math.Trunc(a) || b != math.Trunc(b) {
			return nil, false
		}
		ox, oy = int(a), int(b)
	}
	kernel, ok := parse.Numbers(el.Attr("kernelMatrix"))
	if !ok || len(kernel) != ox*oy {
		return nil, false
	}

	divisor, ok := parse.Number(el.Attr("divisor"))
	if !ok || divisor == 0 {
		divisor = 0
		for _, k := range kernel {
			divisor += k
		}
		if divisor == 0 {
			divisor = 1
		}
	}

	tx, ty := ox/2, oy/2
	if v, ok := parse.Integer(el.Attr("targetX")); ok {
		tx = v
	}
	if v, ok := parse.Integer(el.Attr("targetY")); ok {
		ty = v
	}
	if tx < 0 || tx >= ox || ty < 0 || ty >= oy {
		return nil, false
	}

	// The kernel is applied rotated by 180 degrees.
	flipped := make([]float64, len(kernel))
	for i, k := range kernel {
		flipped[len(kernel)-1-i] = k
	}
	bias, _ := parse.Number(el.Attr("bias"))

	tile := paint.TileClamp
	switch el.Attr("edgeMode") {
	case "wrap":
		tile = paint.TileRepeat
	case "none":
		tile = paint.TileDecal
	}
	return &paint.MatrixConvolution{
		Width:         ox,
		Height:        oy,
		Kernel:        flipped,
		Gain:          1 / divisor,
		Bias:          bias,
		TargetX:       tx,
		TargetY:       ty,
		Tile:          tile,
		ConvolveAlpha: el.Attr("preserveAlpha") != "true",
		Input:         g.in(p, 0),
		Crop:          p.crop(),
	}, true
}

var channels = map[string]paint.Channel{
	"R": paint.ChannelR,
	"G": paint.ChannelG,
	"B": paint.ChannelB,
	"A": paint.ChannelA,
}

func (g *graph) displacementMap(p *primitive) (paint.ImageFilter, bool) {
	channel := func(name string) paint.Channel {
		if c, ok := channels[p.el.Attr(name)]; ok {
			return c
		}
		return paint.ChannelA
	}
	scale, _ := parse.Number(p.el.Attr("scale"))
	return &paint.DisplacementMap{
		XChannel:     channel("xChannelSelector"),
		YChannel:     channel("yChannelSelector"),
		Scale:        g.number(scale, units.Horizontal),
		Color:        g.in(p, 0),
		Displacement: g.in(p, 1),
		Crop:         p.crop(),
	}, true
}

// deviation parses a stdDeviation-like pair scaled to primitive units.
// It reports false for negative values.
func (g *graph) deviation(v string) (x, y float64, ok bool) {
	if v == "" {
		return 0, 0, true
	}
	x, y, ok = parse.NumberPair(v)
	if !ok || x < 0 || y < 0 {
		return 0, 0, false
	}
	return g.number(x, units.Horizontal), g.number(y, units.Vertical), true
}

// gaussianBlur passes its input through when no axis has a positive
// deviation.
func (g *graph) gaussianBlur(p *primitive) (paint.ImageFilter, bool) {
	sx, sy, ok := g.deviation(p.el.Attr("stdDeviation"))
	in := g.in(p, 0)
	if !ok || (sx <= 0 && sy <= 0) {
		return in, true
	}
	return &paint.Blur{SigmaX: sx, SigmaY: sy, Tile: paint.TileDecal, Input: in, Crop: p.crop()}, true
}

func (g *graph) morphology(p *primitive) (paint.ImageFilter, bool) {
	rx, ry, ok := g.deviation(p.el.Attr("radius"))
	in := g.in(p, 0)
	if !ok || rx <= 0 || ry <= 0 {
		return in, true
	}
	op := paint.Erode
	if p.el.Attr("operator") == "dilate" {
		op = paint.Dilate
	}
	return &paint.Morphology{Op: op, RadiusX: rx, RadiusY: ry, Input: in, Crop: p.crop()}, true
}

// dropShadow composes feDropShadow from existing operations: the input
// alpha is colored with the flood color, blurred, offset, and merged
// below the input.
func (g *graph) dropShadow(p *primitive) (paint.ImageFilter, bool) {
	el := p.el
	sx, sy, _ := g.deviation(el.AttrOr("stdDeviation", "2"))
	dx, ok := parse.Number(el.AttrOr("dx", "2"))
	if !ok {
		dx = 2
	}
	dy, ok := parse.Number(el.AttrOr("dy", "2"))
	if !ok {
		dy = 2
	}

	c := g.color(p, "flood-color", "black", "flood-opacity", p.space)
	in := g.in(p, 0)
	var shadow paint.ImageFilter = &paint.ColorFilterImage{
		Filter: &paint.MatrixColorFilter{Matrix: [20]float64{
			0, 0, 0, 0, c.R,
			0, 0, 0, 0, c.G,
			0, 0, 0, 0, c.B,
			0, 0, 0, c.A, 0,
		}},
		Input: in,
	}
	if sx > 0 || sy > 0 {
		shadow = &paint.Blur{SigmaX: sx, SigmaY: sy, Tile: paint.TileDecal, Input: shadow}
	}
	shadow = &paint.Offset{
		Dx:    g.number(dx, units.Horizontal),
		Dy:    g.number(dy, units.Vertical),
		Input: shadow,
	}
	return &paint.Merge{Filters: []paint.ImageFilter{shadow, in}, Crop: p.crop()}, true
}

func (g *graph) turbulence(p *primitive) (paint.ImageFilter, bool) {
	el := p.el
	fx, fy := 0.0, 0.0
	if v := el.Attr("baseFrequency"); v != "" {
		var ok bool
		fx, fy, ok = parse.NumberPair(v)
		if !ok || fx < 0 || fy < 0 {
			return nil, false
		}
	}
	octaves := 1
	if v, ok := parse.Integer(el.Attr("numOctaves")); ok {
		octaves = max(v, 0)
	}
	seed, _ := parse.Number(el.Attr("seed"))

	kind := paint.TurbulenceNoise
	if el.Attr("type") == "fractalNoise" {
		kind = paint.FractalNoise
	}
	if el.Attr("stitchTiles") == "stitch" {
		// Stitching is not supported; the noise is not made seamless.
		slogger().Debug("feTurbulence stitchTiles ignored")
	}

	shader := &paint.Turbulence{
		Kind:      kind,
		BaseFreqX: fx,
		BaseFreqY: fy,
		Octaves:   octaves,
		Seed:      math.Trunc(seed),
	}
	pt := paint.NewPaint(paint.Black)
	pt.Shader = shader
	return &paint.PaintSource{Paint: pt, Crop: p.crop()}, true
}

// image resolves feImage: a same-document element or an external
// raster or SVG document fitted into the subregion.
func (g *graph) image(p *primitive) (paint.ImageFilter, bool) {
	href := strings.TrimSpace(dom.Href(p.el))
	if href == "" {
		return nil, false
	}
	if strings.HasPrefix(href, "#") {
		if g.ctx.Images == nil {
			return nil, false
		}
		target := dom.ResolveHref(p.el)
		if target == nil {
			return nil, false
		}
		pic := g.ctx.Images.Element(target)
		if pic == nil {
			return nil, false
		}
		return &paint.PictureSource{Picture: pic, Crop: p.crop()}, true
	}

	if g.ctx.Assets == nil {
		return nil, false
	}
	a, err := g.ctx.Assets.Load(href)
	if err != nil {
		slogger().Warn("feImage not loaded", "href", href, "err", err)
		return nil, false
	}
	ar := units.ParseAspectRatio(p.el.Attr("preserveAspectRatio"))
	if a.Document != nil {
		if g.ctx.Images == nil {
			return nil, false
		}
		pic := g.ctx.Images.Document(a, p.region, ar)
		if pic == nil {
			return nil, false
		}
		return &paint.PictureSource{Picture: pic, Crop: p.crop()}, true
	}
	w, h := a.Size()
	src := geom.NewRect(0, 0, w, h)
	if src.IsEmpty() {
		return nil, false
	}
	dst := units.ViewBoxTransform(src, p.region, ar).MapRect(src)
	return &paint.ImageSource{Image: a.Image, Src: src, Dst: dst}, true
}
