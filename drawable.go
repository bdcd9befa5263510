package svgfx

import (
	"image"
	"weak"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/recording"
	"github.com/gogpu/svgfx/units"
)

// Kind is the kind of a drawable. The set of kinds is closed.
type Kind uint8

const (
	// KindFragment establishes a viewport: svg elements, symbols
	// instantiated by use, and the roots of nested documents.
	KindFragment Kind = iota
	// KindGroup is a g, a or switch element.
	KindGroup
	// KindUse is a use element; its single child is the referenced content.
	KindUse
	// KindShape is a basic shape or path.
	KindShape
	// KindImage is a raster image or a nested document.
	KindImage
	// KindMask is the content of a mask element.
	KindMask
)

func (k Kind) String() string {
	switch k {
	case KindFragment:
		return "fragment"
	case KindGroup:
		return "group"
	case KindUse:
		return "use"
	case KindShape:
		return "shape"
	case KindImage:
		return "image"
	case KindMask:
		return "mask"
	}
	return "unknown"
}

// Attributes is a set of per-element rendering attributes. It selects
// what WithIgnore skips during resolution and what Draw leaves out.
type Attributes uint8

const (
	Opacity Attributes = 1 << iota
	Filter
	ClipPath
	Mask
)

// Drawable is one node of a render tree.
//
// A drawable holds the resolved rendering state of its element: the
// local transform, clips, mask, opacity and filter layers, and for
// leaves the geometry and paints or the image. Drawables own their
// children and the mask drawable; the parent is a weak reference.
//
// A render tree is built once by Build and is not safe for concurrent
// use.
type Drawable struct {
	kind     Kind
	el       *dom.Element
	tree     *tree
	parent   weak.Pointer[Drawable]
	children []*Drawable
	mapper   units.Mapper

	transform geom.Matrix
	// local is the object bounding box in the drawable's own user space.
	local geom.Rect

	// overflow clips before the transform, clipRect after it.
	overflow *geom.Rect
	clipRect *geom.Rect
	clip     *geom.ClipPath

	mask *Drawable
	// maskLayer isolates the masked content, maskPaint composites the
	// mask over it.
	maskLayer *paint.Paint
	maskPaint *paint.Paint
	opacity   *paint.Paint
	filter    *paint.Paint
	// filterRegion is the filter region in the drawable's user space.
	filterRegion geom.Rect

	drawable  bool
	processed bool

	path         *geom.Path
	fill, stroke *paint.Paint

	img            image.Image
	imgSrc, imgDst geom.Rect

	source, background *recording.Picture
}

func newDrawable(t *tree, kind Kind, el *dom.Element, parent *Drawable, m units.Mapper) *Drawable {
	d := &Drawable{
		kind:      kind,
		el:        el,
		tree:      t,
		mapper:    m,
		transform: geom.Identity(),
		drawable:  true,
	}
	if parent != nil {
		d.parent = weak.Make(parent)
	}
	return d
}

// Kind returns the kind of d.
func (d *Drawable) Kind() Kind { return d.kind }

// Element returns the element d was built from.
func (d *Drawable) Element() *dom.Element { return d.el }

// Children returns the child drawables in paint order.
func (d *Drawable) Children() []*Drawable { return d.children }

// Parent returns the parent drawable, or nil for a root.
func (d *Drawable) Parent() *Drawable { return d.parent.Value() }

// Transform returns the local transform.
func (d *Drawable) Transform() geom.Matrix { return d.transform }

// Bounds returns the bounding box of d in its parent's user space. It is
// empty when nothing in d has geometry.
func (d *Drawable) Bounds() geom.Rect {
	if d.local.IsEmpty() {
		return geom.Rect{}
	}
	return d.transform.MapRect(d.local)
}

// IsDrawable reports whether d is drawn at all. It is false when d's
// filter reference is broken or its mask hides it entirely.
func (d *Drawable) IsDrawable() bool { return d.drawable }

// ClipPath returns the resolved clip-path, or nil.
func (d *Drawable) ClipPath() *geom.ClipPath { return d.clip }

// Mask returns the mask content, or nil.
func (d *Drawable) Mask() *Drawable { return d.mask }

// OpacityPaint returns the layer paint applying the element's opacity,
// or nil when the element is opaque.
func (d *Drawable) OpacityPaint() *paint.Paint { return d.opacity }

// FilterPaint returns the layer paint carrying the element's filter, or
// nil. The filter output is clipped to FilterRegion.
func (d *Drawable) FilterPaint() *paint.Paint { return d.filter }

// FilterRegion returns the filter region in d's user space.
func (d *Drawable) FilterRegion() geom.Rect { return d.filterRegion }

// Draw plays d into c.
//
// Attributes in ignore are left out. When until is non-nil, the
// traversal stops as soon as it reaches until, which is not drawn; every
// save and layer opened up to that point is closed again.
func (d *Drawable) Draw(c recording.Canvas, ignore Attributes, until *Drawable) {
	d.draw(c, ignore, until)
}

// draw reports whether the traversal reached until.
func (d *Drawable) draw(c recording.Canvas, ignore Attributes, until *Drawable) bool {
	if d == until {
		return true
	}
	if !d.drawable {
		return false
	}

	base := c.Save()
	if d.overflow != nil {
		c.ClipRect(*d.overflow, true)
	}
	c.Concat(d.transform)
	if d.clipRect != nil {
		c.ClipRect(*d.clipRect, true)
	}
	if d.clip != nil && ignore&ClipPath == 0 {
		c.ClipPath(d.clip, true)
	}

	masked := d.mask != nil && ignore&Mask == 0
	if masked {
		c.SaveLayer(nil, d.maskLayer)
	}
	layers := c.SaveCount()
	if d.opacity != nil && ignore&Opacity == 0 {
		c.SaveLayer(nil, d.opacity)
	}
	if d.filter != nil && ignore&Filter == 0 {
		c.ClipRect(d.filterRegion, true)
		c.SaveLayer(&d.filterRegion, d.filter)
	}

	stopped := d.drawContent(c, ignore, until)

	recording.RestoreToCount(c, layers)
	if masked {
		c.SaveLayer(nil, d.maskPaint)
		d.mask.draw(c, 0, nil)
		c.Restore()
	}
	recording.RestoreToCount(c, base)
	return stopped
}

// drawContent draws the element itself: its geometry or image, then its
// children.
func (d *Drawable) drawContent(c recording.Canvas, ignore Attributes, until *Drawable) bool {
	switch d.kind {
	case KindShape:
		if d.fill != nil {
			c.DrawPath(d.path, d.fill)
		}
		if d.stroke != nil {
			c.DrawPath(d.path, d.stroke)
		}
	case KindImage:
		if d.img != nil {
			c.DrawImage(d.img, d.imgSrc, d.imgDst, nil)
		}
	}
	for _, child := range d.children {
		if child.draw(c, ignore, until) {
			return true
		}
	}
	return false
}

// Close releases the resources of the render tree. Called on the root
// returned by Build it also releases every picture the tree recorded;
// the tree must not be drawn afterwards.
func (d *Drawable) Close() {
	if d.tree != nil && d.tree.root == d {
		d.tree.close()
	}
	d.close()
}

func (d *Drawable) close() {
	for _, child := range d.children {
		child.close()
	}
	if d.mask != nil {
		d.mask.close()
	}
	d.children = nil
	d.mask, d.maskLayer, d.maskPaint = nil, nil, nil
	d.opacity, d.filter = nil, nil
	d.fill, d.stroke = nil, nil
	d.clip = nil
	d.img = nil
	d.source, d.background = nil, nil
}
