package recording

import (
	"image"

	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
)

// Canvas is the drawing surface the render tree draws into.
//
// Save and SaveLayer push state and return the save count before the
// push; Restore pops one level and is a no-op at depth zero. Clips
// intersect with the current clip under the current transform.
type Canvas interface {
	Save() int
	// SaveLayer begins an offscreen layer composited with p on Restore.
	// A nil bounds means unbounded; a nil paint means a plain layer.
	SaveLayer(bounds *geom.Rect, p *paint.Paint) int
	Restore()
	SaveCount() int

	Concat(m geom.Matrix)
	ClipRect(r geom.Rect, antiAlias bool)
	ClipPath(c *geom.ClipPath, antiAlias bool)

	DrawPath(path *geom.Path, p *paint.Paint)
	DrawImage(img image.Image, src, dst geom.Rect, p *paint.Paint)
	DrawPicture(pic *Picture)
}

// RestoreToCount restores c until its save count is count.
func RestoreToCount(c Canvas, count int) {
	for c.SaveCount() > count {
		c.Restore()
	}
}
