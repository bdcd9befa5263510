package paintserver

import (
	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/units"
)

// pattern resolves a pattern element into a picture shader. The content
// is recorded through the Patterns callback.
func (r *Resolver) pattern(el *dom.Element, bounds geom.Rect, opacity float64) *paint.Paint {
	if r.Patterns == nil {
		return nil
	}
	c := dom.HrefChain(el)
	u := units.ParseUnits(attr(c, "patternUnits"), units.ObjectBoundingBox)
	cu := units.ParseUnits(attr(c, "patternContentUnits"), units.UserSpaceOnUse)
	if (u == units.ObjectBoundingBox || cu == units.ObjectBoundingBox) && bounds.IsEmpty() {
		return nil
	}

	length := func(name string) units.Length {
		return units.ParseLengthOr(attr(c, name), units.Length{})
	}
	region, ok := r.Mapper.CalculateRect(length("x"), length("y"), length("width"), length("height"), u, bounds)
	if !ok {
		return nil
	}

	var content *dom.Element
	for _, e := range c {
		if len(e.Children()) > 0 {
			content = e
			break
		}
	}
	if content == nil {
		return nil
	}

	tile := geom.NewRect(0, 0, region.W, region.H)
	m := geom.Identity()
	if vb, ok := units.ParseViewBox(attr(c, "viewBox")); ok {
		m = units.ViewBoxTransform(vb, tile, units.ParseAspectRatio(attr(c, "preserveAspectRatio")))
	} else if cu == units.ObjectBoundingBox {
		m = geom.Scale(bounds.W, bounds.H)
	}

	pic := r.Patterns(content, tile, m)
	if pic == nil {
		return nil
	}
	p := paint.NewPaint(paint.Black.WithAlpha(opacity))
	p.Shader = &paint.PictureShader{
		Picture:   pic,
		Tile:      tile,
		Transform: transform(c, "patternTransform").Multiply(geom.Translate(region.X, region.Y)),
	}
	return p
}
