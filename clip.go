package svgfx

import (
	"strings"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/shape"
	"github.com/gogpu/svgfx/units"
)

// Mask region defaults.
var (
	maskX      = units.Percentage(-10)
	maskY      = units.Percentage(-10)
	maskWidth  = units.Percentage(120)
	maskHeight = units.Percentage(120)
)

// referenced returns the element a url(#id) property of el points to,
// or nil when el does not declare one.
func referenced(el *dom.Element, prop string) (*dom.Element, string) {
	v := strings.TrimSpace(el.Attr(prop))
	if v == "" || v == "none" {
		return nil, ""
	}
	ref, _, ok := dom.ParseURL(v)
	if !ok {
		return nil, v
	}
	doc := el.Document()
	if doc == nil {
		return nil, ref
	}
	return doc.Resolve(ref), ref
}

// clipPath resolves the clip-path of el. It returns nil when el is not
// clipped, and for references that do not resolve or that lead back to
// themselves. bounds is the object bounding box of el.
func (t *tree) clipPath(el *dom.Element, bounds geom.Rect, m units.Mapper) *geom.ClipPath {
	if v := el.Attr("clip-path"); v == "" || v == "none" {
		return nil
	}
	if dom.HasRecursiveReference(el, "clip-path", dom.Visited{}) {
		Logger().Debug("clip-path cycle", "tag", el.Tag, "id", el.ID)
		return nil
	}
	return t.resolveClip(el, bounds, m)
}

// resolveClip builds the clip el references. The reference graph is known
// to be acyclic.
func (t *tree) resolveClip(el *dom.Element, bounds geom.Rect, m units.Mapper) *geom.ClipPath {
	cp, ref := referenced(el, "clip-path")
	if cp == nil || cp.Tag != "clipPath" {
		if ref != "" {
			Logger().Debug("clip-path not found", "ref", ref)
		}
		return nil
	}

	c := geom.NewClipPath()
	c.Transform = elementTransform(cp)
	if units.ParseUnits(cp.Attr("clipPathUnits"), units.UserSpaceOnUse) == units.ObjectBoundingBox {
		if bounds.IsEmpty() {
			return c
		}
		c.Transform = c.Transform.Multiply(geom.BoundingBoxMatrix(bounds))
	}
	for _, child := range cp.Children() {
		if pc, ok := t.clipChild(child, m); ok {
			c.Clips = append(c.Clips, pc)
		}
	}
	if cp.Has("clip-path") {
		c.Clip = t.resolveClip(cp, bounds, m)
	}
	return c
}

// clipChild returns the geometry one child of a clipPath contributes.
// Shapes contribute directly and use elements through the shape they
// reference.
func (t *tree) clipChild(el *dom.Element, m units.Mapper) (geom.PathClip, bool) {
	if !visible(el) {
		return geom.PathClip{}, false
	}
	target, transform := el, elementTransform(el)
	if el.Tag == "use" {
		target = dom.ResolveHref(el)
		if target == nil || !visible(target) {
			return geom.PathClip{}, false
		}
		x := m.ToUser(units.ParseLengthOr(el.Attr("x"), units.Length{}), units.Horizontal)
		y := m.ToUser(units.ParseLengthOr(el.Attr("y"), units.Length{}), units.Vertical)
		transform = transform.Multiply(geom.Translate(x, y)).Multiply(elementTransform(target))
	}
	if !shape.IsShape(target.Tag) {
		return geom.PathClip{}, false
	}
	path := shape.Build(target, m, shape.Clip)
	if path == nil {
		return geom.PathClip{}, false
	}
	pc := geom.PathClip{Path: path, Transform: transform}
	if el.Has("clip-path") {
		pc.Clip = t.resolveClip(el, path.Bounds(), m)
	}
	return pc, true
}

func visible(el *dom.Element) bool {
	if strings.TrimSpace(el.Attr("display")) == "none" {
		return false
	}
	switch strings.TrimSpace(el.Attr("visibility")) {
	case "hidden", "collapse":
		return false
	}
	return true
}

// mask resolves the mask of d. It returns nil when d is not masked, and
// for references that do not resolve or that lead back to themselves.
// It reports false when the mask hides d entirely.
func (t *tree) mask(el *dom.Element, d *Drawable) (*Drawable, bool) {
	if v := el.Attr("mask"); v == "" || v == "none" {
		return nil, true
	}
	if dom.HasRecursiveReference(el, "mask", dom.Visited{}) {
		Logger().Debug("mask cycle", "tag", el.Tag, "id", el.ID)
		return nil, true
	}
	return t.resolveMask(el, d)
}

// resolveMask builds the mask content el references, in the user space
// of d.
func (t *tree) resolveMask(el *dom.Element, d *Drawable) (*Drawable, bool) {
	me, ref := referenced(el, "mask")
	if me == nil || me.Tag != "mask" {
		if ref != "" {
			Logger().Debug("mask not found", "ref", ref)
		}
		return nil, true
	}

	bounds := d.local
	u := units.ParseUnits(me.Attr("maskUnits"), units.ObjectBoundingBox)
	cu := units.ParseUnits(me.Attr("maskContentUnits"), units.UserSpaceOnUse)
	if (u == units.ObjectBoundingBox || cu == units.ObjectBoundingBox) && bounds.IsEmpty() {
		return nil, false
	}
	length := func(name string, def units.Length) units.Length {
		return units.ParseLengthOr(me.Attr(name), def)
	}
	region, ok := d.mapper.CalculateRect(
		length("x", maskX), length("y", maskY),
		length("width", maskWidth), length("height", maskHeight),
		u, bounds)
	if !ok {
		return nil, false
	}

	md := newDrawable(t, KindMask, me, d, d.mapper)
	md.overflow = &region
	if cu == units.ObjectBoundingBox {
		md.transform = geom.BoundingBoxMatrix(bounds)
	}
	t.addChildren(md, me, d.mapper, false)
	for _, child := range md.children {
		t.postProcess(child)
	}
	md.processed = true

	if me.Has("mask") {
		nested, ok := t.resolveMask(me, d)
		if !ok {
			return nil, false
		}
		if nested != nil {
			md.setMask(nested)
		}
	}
	return md, true
}

// setMask attaches mask drawable m and the paints of its two layers.
func (d *Drawable) setMask(m *Drawable) {
	d.mask = m
	d.maskLayer = paint.NewMaskLayerPaint()
	d.maskPaint = maskPaint(m.el)
}

// maskPaint returns the layer paint that multiplies the masked content
// by the mask: by its luminance, or by its alpha for mask-type alpha.
func maskPaint(mask *dom.Element) *paint.Paint {
	p := paint.NewPaint(paint.Black)
	p.Blend = paint.BlendDestinationIn
	if strings.TrimSpace(mask.Attr("mask-type")) != "alpha" {
		p.ColorFilter = paint.LumaColorFilter{}
	}
	return p
}
