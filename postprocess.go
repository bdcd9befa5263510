package svgfx

import (
	"strings"

	"github.com/gogpu/svgfx/filter"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/paint"
)

// postProcess attaches the clip-path, mask, opacity and filter of each
// drawable, top-down. It runs once the tree exists, so that every
// drawable's bounds are known. Attributes ignored by WithIgnore are not
// resolved.
func (t *tree) postProcess(d *Drawable) {
	if d.processed {
		return
	}
	d.processed = true
	el, ignore := d.el, t.opts.ignore

	if ignore&ClipPath == 0 {
		d.clip = t.clipPath(el, d.local, d.mapper)
	}
	if ignore&Mask == 0 {
		mask, ok := t.mask(el, d)
		if !ok {
			d.drawable = false
		} else if mask != nil {
			d.setMask(mask)
		}
	}
	if ignore&Opacity == 0 {
		if o := parse.Opacity(el.Attr("opacity"), 1); o < 1 {
			d.opacity = paint.NewOpacityPaint(o)
		}
	}
	if ignore&Filter == 0 && d.kind != KindMask {
		if v := strings.TrimSpace(el.Attr("filter")); v != "" && v != "none" {
			res := filter.Evaluate(filter.Context{
				Element: el,
				Source:  d,
				Images:  t,
				Assets:  t.opts.assets,
				Bounds:  d.local,
				Mapper:  d.mapper,
			})
			if !res.Drawable {
				d.drawable = false
			}
			d.filter = res.Paint
			d.filterRegion = res.Region
		}
	}

	for _, child := range d.children {
		t.postProcess(child)
	}
}
