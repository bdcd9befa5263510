package recording

import (
	"math"

	"github.com/gogpu/svgfx/geom"
)

// Picture is an immutable list of drawing commands. It implements
// paint.Picture so that it can feed picture shaders and image filters.
type Picture struct {
	cull      geom.Rect
	commands  []Command
	resources *ResourcePool

	record    func(Canvas)
	recorded  bool
	recording bool
	released  bool
}

// NewLazyPicture returns a picture whose content is recorded by calling
// record the first time the picture is used. A picture that is used
// while its own recording is in progress is empty at that point.
func NewLazyPicture(cull geom.Rect, record func(Canvas)) *Picture {
	return &Picture{cull: cull, record: record}
}

// CullRect returns the bounds the picture's content is expected to lie in.
func (p *Picture) CullRect() geom.Rect {
	return p.cull
}

func (p *Picture) ensure() {
	if p.recorded || p.recording || p.released {
		return
	}
	p.recording = true
	rec := NewRecorder(p.cull)
	if p.record != nil {
		p.record(rec)
	}
	RestoreToCount(rec, 0)
	p.commands = rec.commands
	p.resources = rec.resources
	p.record = nil
	p.recording = false
	p.recorded = true
}

// Commands returns the recorded commands, recording them first if the
// picture is lazy.
func (p *Picture) Commands() []Command {
	p.ensure()
	return p.commands
}

// Resources returns the resources referenced by the commands.
func (p *Picture) Resources() *ResourcePool {
	p.ensure()
	if p.resources == nil {
		return NewResourcePool()
	}
	return p.resources
}

// IsRecorded reports whether the content has been recorded.
func (p *Picture) IsRecorded() bool {
	return p.recorded
}

// Playback replays the picture into c. Saves left open by the picture
// are restored.
func (p *Picture) Playback(c Canvas) {
	p.ensure()
	if p.released {
		return
	}
	base := c.SaveCount()
	res := p.resources
	for _, cmd := range p.commands {
		switch cmd := cmd.(type) {
		case SaveCommand:
			c.Save()
		case SaveLayerCommand:
			c.SaveLayer(cmd.Bounds, res.GetPaint(cmd.Paint))
		case RestoreCommand:
			if c.SaveCount() > base {
				c.Restore()
			}
		case ConcatCommand:
			c.Concat(cmd.Matrix)
		case ClipRectCommand:
			c.ClipRect(cmd.Rect, cmd.AntiAlias)
		case ClipPathCommand:
			c.ClipPath(res.GetClip(cmd.Clip), cmd.AntiAlias)
		case DrawPathCommand:
			c.DrawPath(res.GetPath(cmd.Path), res.GetPaint(cmd.Paint))
		case DrawImageCommand:
			c.DrawImage(res.GetImage(cmd.Image), cmd.Src, cmd.Dst, res.GetPaint(cmd.Paint))
		case DrawPictureCommand:
			c.DrawPicture(res.GetPicture(cmd.Picture))
		}
	}
	RestoreToCount(c, base)
}

// Render draws the picture on a backend sized to the cull rectangle.
func (p *Picture) Render(b Backend) error {
	w := int(math.Ceil(p.cull.Right()))
	h := int(math.Ceil(p.cull.Bottom()))
	if err := b.Begin(max(w, 0), max(h, 0)); err != nil {
		return err
	}
	p.Playback(b)
	return b.End()
}

// Release drops the recorded content. A released picture plays back
// nothing.
func (p *Picture) Release() {
	if p == nil {
		return
	}
	p.released = true
	p.record = nil
	p.commands = nil
	if p.resources != nil {
		p.resources.Clear()
		p.resources = nil
	}
}

// Released reports whether Release has been called.
func (p *Picture) Released() bool {
	return p.released
}
