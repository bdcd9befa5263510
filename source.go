package svgfx

import (
	"strings"

	"github.com/gogpu/svgfx/assets"
	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/filter"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/paintserver"
	"github.com/gogpu/svgfx/recording"
	"github.com/gogpu/svgfx/units"
)

var (
	_ filter.Source = (*Drawable)(nil)
	_ filter.Images = (*tree)(nil)
)

// picture returns a lazy picture owned by the tree.
func (t *tree) picture(cull geom.Rect, record func(recording.Canvas)) *recording.Picture {
	pic := recording.NewLazyPicture(cull, record)
	t.pool.AddPicture(pic)
	return pic
}

// SourceGraphic returns the content of d, without its own clip, mask,
// opacity and filter, in d's user space. The picture is recorded on
// first use.
func (d *Drawable) SourceGraphic() paint.Picture {
	if d.source == nil {
		d.source = d.tree.picture(d.local, func(c recording.Canvas) {
			d.drawContent(c, 0, nil)
		})
	}
	return d.source
}

// BackgroundImage returns what is drawn below d inside its nearest
// ancestor with enable-background="new", in d's user space. It is nil
// when there is no such ancestor.
func (d *Drawable) BackgroundImage() paint.Picture {
	if d.background != nil {
		return d.background
	}
	container, clip, m, ok := d.backgroundContainer()
	if !ok {
		return nil
	}
	inv, ok := m.Invert()
	if !ok {
		return nil
	}
	d.background = d.tree.picture(d.local, func(c recording.Canvas) {
		c.Concat(inv)
		if clip != nil {
			c.ClipRect(*clip, true)
		}
		for _, child := range container.children {
			if child.draw(c, 0, d) {
				return
			}
		}
	})
	return d.background
}

// backgroundContainer finds the nearest ancestor that declares a new
// background. m maps d's user space into the ancestor's content space.
func (d *Drawable) backgroundContainer() (container *Drawable, clip *geom.Rect, m geom.Matrix, ok bool) {
	m = d.transform
	for p := d.Parent(); p != nil; p = p.Parent() {
		if clip, ok := enableBackground(p.el); ok {
			return p, clip, m, true
		}
		m = p.transform.Multiply(m)
	}
	return nil, nil, m, false
}

// enableBackground parses enable-background="new [x y w h]". Other
// values, including accumulate, do not start a new background.
func enableBackground(el *dom.Element) (*geom.Rect, bool) {
	fields := strings.Fields(el.Attr("enable-background"))
	if len(fields) == 0 || fields[0] != "new" {
		return nil, false
	}
	if len(fields) == 1 {
		return nil, true
	}
	v, ok := parse.Numbers(strings.Join(fields[1:], " "))
	if !ok || len(v) != 4 {
		return nil, true
	}
	r := geom.NewRect(v[0], v[1], v[2], v[3])
	if r.IsEmpty() {
		return nil, true
	}
	return &r, true
}

// FillPaint returns the fill of a shape, or nil.
func (d *Drawable) FillPaint() *paint.Paint { return d.fill }

// StrokePaint returns the stroke of a shape, or nil.
func (d *Drawable) StrokePaint() *paint.Paint { return d.stroke }

// Element records an element referenced by feImage, drawn in the user
// space of the filtered element. Elements already being recorded are
// skipped.
func (t *tree) Element(el *dom.Element) paint.Picture {
	key := "#" + el.ID
	if !t.elements.Enter(key) {
		Logger().Debug("feImage cycle", "ref", key)
		return nil
	}
	defer t.elements.Leave(key)

	d := t.build(el, nil, t.mapper)
	if d == nil {
		return nil
	}
	t.postProcess(d)
	t.detached = append(t.detached, d)
	return t.picture(d.Bounds(), func(c recording.Canvas) {
		d.draw(c, 0, nil)
	})
}

// Document records a nested document fitted into region.
func (t *tree) Document(a *assets.Asset, region geom.Rect, ar units.AspectRatio) paint.Picture {
	d := t.document(a, nil, region, ar)
	if d == nil {
		return nil
	}
	t.detached = append(t.detached, d)
	return t.picture(region, func(c recording.Canvas) {
		d.draw(c, 0, nil)
	})
}

// patternRecorder returns the callback recording pattern content for
// shapes resolved with m.
func (t *tree) patternRecorder(m units.Mapper) paintserver.PatternRecorder {
	return func(content *dom.Element, tile geom.Rect, cm geom.Matrix) paint.Picture {
		key := "#" + content.ID
		if !t.patterns.Enter(key) {
			Logger().Debug("pattern cycle", "ref", key)
			return nil
		}
		defer t.patterns.Leave(key)

		var children []*Drawable
		for _, c := range content.Children() {
			if d := t.build(c, nil, m); d != nil {
				t.postProcess(d)
				children = append(children, d)
			}
		}
		if len(children) == 0 {
			return nil
		}
		t.detached = append(t.detached, children...)
		return t.picture(tile, func(c recording.Canvas) {
			c.ClipRect(tile, true)
			c.Concat(cm)
			for _, d := range children {
				d.draw(c, 0, nil)
			}
		})
	}
}
