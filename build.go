package svgfx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/svgfx/assets"
	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/paintserver"
	"github.com/gogpu/svgfx/recording"
	"github.com/gogpu/svgfx/shape"
	"github.com/gogpu/svgfx/units"
)

// ErrNotSVG is returned by Build when the root element is not an svg
// element.
var ErrNotSVG = errors.New("svgfx: root element is not svg")

// tree is the state shared by the drawables of one render tree.
type tree struct {
	opts   options
	root   *Drawable
	mapper units.Mapper
	// pool tracks the pictures recorded for the tree.
	pool *recording.ResourcePool
	// detached are drawables built for feImage and patterns, outside the
	// main tree.
	detached []*Drawable

	// Reference chains being built, to cut cycles through use, nested
	// documents, feImage targets and pattern content.
	uses      dom.Visited
	documents dom.Visited
	elements  dom.Visited
	patterns  dom.Visited
}

// Build builds the render tree of the svg element root for a viewport.
// Lengths in percent refer to the viewport; the root's width and height
// default to its full size.
//
// Elements that cannot be rendered are skipped; broken references,
// cycles and degenerate geometry are recovered from silently. The only
// failure is a root that is not an svg element.
func Build(root *dom.Element, viewport geom.Rect, opts ...Option) (*Drawable, error) {
	if root == nil {
		return nil, ErrNotSVG
	}
	if root.Tag != "svg" {
		return nil, fmt.Errorf("%w: <%s>", ErrNotSVG, root.Tag)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &tree{
		opts:      o,
		mapper:    units.NewMapper(viewport, o.fontSize),
		pool:      recording.NewResourcePool(),
		uses:      dom.Visited{},
		documents: dom.Visited{},
		elements:  dom.Visited{},
		patterns:  dom.Visited{},
	}
	if doc := root.Document(); doc != nil && doc.URI != "" {
		t.documents.Enter(doc.URI)
	}

	m := t.elementMapper(root, t.mapper)
	w := m.ToUser(units.ParseLengthOr(root.Attr("width"), units.Percentage(100)), units.Horizontal)
	h := m.ToUser(units.ParseLengthOr(root.Attr("height"), units.Percentage(100)), units.Vertical)
	rect := geom.NewRect(viewport.X, viewport.Y, w, h)

	d := t.viewport(root, nil, rect, viewBox(root), units.ParseAspectRatio(root.Attr("preserveAspectRatio")), m)
	if d == nil {
		Logger().Debug("empty root viewport", "width", w, "height", h)
		d = newDrawable(t, KindFragment, root, nil, m)
		d.drawable = false
	}
	t.root = d
	t.postProcess(d)
	return d, nil
}

func (t *tree) close() {
	for _, d := range t.detached {
		d.close()
	}
	t.detached = nil
	t.pool.Release()
}

// elementMapper applies a font-size declared on el.
func (t *tree) elementMapper(el *dom.Element, m units.Mapper) units.Mapper {
	if !el.Has("font-size") {
		return m
	}
	l, ok := units.ParseLength(el.Attr("font-size"))
	if !ok || l.Unit == units.Percent {
		return m
	}
	return m.WithFontSize(m.ToUser(l, units.Other))
}

// elementTransform parses the transform attribute of el.
func elementTransform(el *dom.Element) geom.Matrix {
	v := el.Attr("transform")
	if v == "" {
		return geom.Identity()
	}
	m, err := parse.Transform(v)
	if err != nil {
		Logger().Debug("invalid transform", "tag", el.Tag, "value", v, "err", err)
		return geom.Identity()
	}
	return m
}

func viewBox(el *dom.Element) *geom.Rect {
	vb, ok := units.ParseViewBox(el.Attr("viewBox"))
	if !ok {
		return nil
	}
	return &vb
}

// build returns the drawable of el, or nil when el is not rendered.
func (t *tree) build(el *dom.Element, parent *Drawable, m units.Mapper) *Drawable {
	if strings.TrimSpace(el.Attr("display")) == "none" {
		return nil
	}
	m = t.elementMapper(el, m)
	switch {
	case el.Tag == "svg":
		return t.nestedSVG(el, parent, m)
	case el.Tag == "g" || el.Tag == "a":
		return t.group(el, parent, m, false)
	case el.Tag == "switch":
		return t.group(el, parent, m, true)
	case el.Tag == "use":
		return t.use(el, parent, m)
	case el.Tag == "image":
		return t.image(el, parent, m)
	case shape.IsShape(el.Tag):
		return t.shape(el, parent, m)
	}
	return nil
}

// addChildren builds the children of d's element. With first only the
// first rendered child is kept.
func (t *tree) addChildren(d *Drawable, el *dom.Element, m units.Mapper, first bool) {
	for _, c := range el.Children() {
		child := t.build(c, d, m)
		if child == nil {
			continue
		}
		d.children = append(d.children, child)
		d.local = d.local.Union(child.Bounds())
		if first {
			return
		}
	}
}

func (t *tree) group(el *dom.Element, parent *Drawable, m units.Mapper, first bool) *Drawable {
	d := newDrawable(t, KindGroup, el, parent, m)
	d.transform = elementTransform(el)
	t.addChildren(d, el, m, first)
	return d
}

// viewport builds a fragment that maps vb, when set, into rect. Content
// outside rect is clipped unless overflow is visible.
func (t *tree) viewport(el *dom.Element, parent *Drawable, rect geom.Rect, vb *geom.Rect, ar units.AspectRatio, m units.Mapper) *Drawable {
	if rect.IsEmpty() {
		return nil
	}
	d := newDrawable(t, KindFragment, el, parent, m)
	d.transform = geom.Translate(rect.X, rect.Y)
	inner := m.WithViewport(geom.NewRect(0, 0, rect.W, rect.H))
	if vb != nil {
		if vb.IsEmpty() {
			return nil
		}
		d.transform = d.transform.Multiply(units.ViewBoxTransform(*vb, geom.NewRect(0, 0, rect.W, rect.H), ar))
		inner = m.WithViewport(*vb)
	}
	switch strings.TrimSpace(el.Attr("overflow")) {
	case "visible", "auto":
	default:
		d.overflow = &rect
	}
	d.mapper = inner
	t.addChildren(d, el, inner, false)
	return d
}

func (t *tree) nestedSVG(el *dom.Element, parent *Drawable, m units.Mapper) *Drawable {
	length := func(name string, def units.Length, axis units.Axis) float64 {
		return m.ToUser(units.ParseLengthOr(el.Attr(name), def), axis)
	}
	rect := geom.NewRect(
		length("x", units.Length{}, units.Horizontal),
		length("y", units.Length{}, units.Vertical),
		length("width", units.Percentage(100), units.Horizontal),
		length("height", units.Percentage(100), units.Vertical),
	)
	return t.viewport(el, parent, rect, viewBox(el), units.ParseAspectRatio(el.Attr("preserveAspectRatio")), m)
}

// use instantiates the element referenced by a use element. A symbol
// becomes a viewport sized by the use element.
func (t *tree) use(el *dom.Element, parent *Drawable, m units.Mapper) *Drawable {
	target := dom.ResolveHref(el)
	if target == nil {
		Logger().Debug("use target not found", "href", dom.Href(el))
		return nil
	}
	key := "#" + target.ID
	if useCycle(el, dom.Visited{}) || !t.uses.Enter(key) {
		Logger().Debug("use cycle", "href", key)
		return nil
	}
	defer t.uses.Leave(key)

	x := m.ToUser(units.ParseLengthOr(el.Attr("x"), units.Length{}), units.Horizontal)
	y := m.ToUser(units.ParseLengthOr(el.Attr("y"), units.Length{}), units.Vertical)
	d := newDrawable(t, KindUse, el, parent, m)
	d.transform = elementTransform(el).Multiply(geom.Translate(x, y))

	var child *Drawable
	if target.Tag == "symbol" {
		if strings.TrimSpace(target.Attr("display")) == "none" {
			return nil
		}
		tm := t.elementMapper(target, m)
		w := tm.ToUser(units.ParseLengthOr(el.AttrOr("width", target.Attr("width")), units.Percentage(100)), units.Horizontal)
		h := tm.ToUser(units.ParseLengthOr(el.AttrOr("height", target.Attr("height")), units.Percentage(100)), units.Vertical)
		child = t.viewport(target, d, geom.NewRect(0, 0, w, h), viewBox(target),
			units.ParseAspectRatio(target.Attr("preserveAspectRatio")), tm)
	} else {
		child = t.build(target, d, m)
	}
	if child == nil {
		return nil
	}
	d.children = []*Drawable{child}
	d.local = child.Bounds()
	return d
}

// useCycle reports whether expanding use element el leads back to an
// element on the current path. Only the references of use elements are
// followed; links, images and paint servers in the subtree do not
// instantiate anything.
func useCycle(el *dom.Element, visited dom.Visited) bool {
	target := dom.ResolveHref(el)
	if target == nil {
		return false
	}
	key := "#" + target.ID
	if !visited.Enter(key) {
		return true
	}
	defer visited.Leave(key)
	return !target.Walk(func(c *dom.Element) bool {
		return c.Tag != "use" || !useCycle(c, visited)
	})
}

func (t *tree) shape(el *dom.Element, parent *Drawable, m units.Mapper) *Drawable {
	path := shape.Build(el, m, shape.Fill)
	if path == nil {
		Logger().Debug("degenerate shape", "tag", el.Tag, "id", el.ID)
		return nil
	}
	d := newDrawable(t, KindShape, el, parent, m)
	d.transform = elementTransform(el)
	d.path = path
	d.local = path.Bounds()

	switch strings.TrimSpace(el.Attr("visibility")) {
	case "hidden", "collapse":
		return d
	}
	r := paintserver.Resolver{Mapper: m, Patterns: t.patternRecorder(m)}
	d.fill = r.Fill(el, d.local)
	d.stroke = r.Stroke(el, d.local)
	return d
}

// image builds a raster image or a nested svg document.
func (t *tree) image(el *dom.Element, parent *Drawable, m units.Mapper) *Drawable {
	href := strings.TrimSpace(dom.Href(el))
	if href == "" {
		return nil
	}
	a, err := t.opts.assets.Load(href)
	if err != nil {
		Logger().Warn("image not loaded", "href", href, "err", err)
		return nil
	}

	iw, ih := a.Size()
	if a.Document != nil {
		iw, ih = documentSize(a.Document, m)
	}
	length := func(name string, def float64, axis units.Axis) float64 {
		l, ok := units.ParseLength(el.Attr(name))
		if !ok {
			return def
		}
		return m.ToUser(l, axis)
	}
	rect := geom.NewRect(
		length("x", 0, units.Horizontal),
		length("y", 0, units.Vertical),
		length("width", iw, units.Horizontal),
		length("height", ih, units.Vertical),
	)
	if rect.IsEmpty() {
		return nil
	}
	ar := units.ParseAspectRatio(el.Attr("preserveAspectRatio"))

	d := newDrawable(t, KindImage, el, parent, m)
	d.transform = elementTransform(el)
	d.local = rect
	if a.Document != nil {
		child := t.document(a, d, rect, ar)
		if child == nil {
			return nil
		}
		d.children = []*Drawable{child}
		return d
	}

	src := geom.NewRect(0, 0, iw, ih)
	if src.IsEmpty() {
		return nil
	}
	d.img = a.Image
	d.imgSrc = src
	d.imgDst = units.ViewBoxTransform(src, rect, ar).MapRect(src)
	d.clipRect = &rect
	return d
}

// documentSize returns the declared size of a document's root element.
func documentSize(doc *dom.Document, m units.Mapper) (w, h float64) {
	if doc.Root == nil {
		return 0, 0
	}
	root := doc.Root
	if vb, ok := units.ParseViewBox(root.Attr("viewBox")); ok {
		m = m.WithViewport(vb)
		w, h = vb.W, vb.H
	}
	if l, ok := units.ParseLength(root.Attr("width")); ok && l.Unit != units.Percent {
		w = m.ToUser(l, units.Horizontal)
	}
	if l, ok := units.ParseLength(root.Attr("height")); ok && l.Unit != units.Percent {
		h = m.ToUser(l, units.Vertical)
	}
	return w, h
}

// document builds the root of a nested document into rect. Documents
// that are already being built are skipped.
func (t *tree) document(a *assets.Asset, parent *Drawable, rect geom.Rect, ar units.AspectRatio) *Drawable {
	root := a.Document.Root
	if root == nil || root.Tag != "svg" {
		return nil
	}
	if !t.documents.Enter(a.URI) {
		Logger().Debug("document cycle", "uri", a.URI)
		return nil
	}
	defer t.documents.Leave(a.URI)

	m := units.NewMapper(rect, t.opts.fontSize)
	vb := viewBox(root)
	if vb == nil {
		w, h := documentSize(a.Document, m)
		if w <= 0 || h <= 0 {
			w, h = rect.W, rect.H
		}
		vb = &geom.Rect{W: w, H: h}
	}
	d := t.viewport(root, parent, rect, vb, ar, t.elementMapper(root, m))
	if d != nil {
		t.postProcess(d)
	}
	return d
}
