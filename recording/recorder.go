package recording

import (
	"image"

	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
)

// Recorder captures drawing operations as commands.
// Use Finish to obtain an immutable Picture that can be replayed to
// other canvases and backends.
//
// Example:
//
//	rec := recording.NewRecorder(geom.NewRect(0, 0, 100, 100))
//	rec.Save()
//	rec.Concat(geom.Translate(10, 10))
//	rec.DrawPath(path, paint.NewPaint(paint.Black))
//	rec.Restore()
//	pic := rec.Finish()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	cull      geom.Rect
	commands  []Command
	resources *ResourcePool

	transform  geom.Matrix
	stateStack []geom.Matrix
}

// NewRecorder creates a Recorder whose pictures are culled to cull.
func NewRecorder(cull geom.Rect) *Recorder {
	return &Recorder{
		cull:       cull,
		commands:   make([]Command, 0, 64),
		resources:  NewResourcePool(),
		transform:  geom.Identity(),
		stateStack: make([]geom.Matrix, 0, 8),
	}
}

// Finish closes any open saves and returns the recorded picture.
// After calling Finish, the Recorder should not be used again.
func (r *Recorder) Finish() *Picture {
	RestoreToCount(r, 0)
	return &Picture{
		cull:      r.cull,
		commands:  r.commands,
		resources: r.resources,
		recorded:  true,
	}
}

// Commands returns the commands recorded so far.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Resources returns the resource pool of the recorder.
func (r *Recorder) Resources() *ResourcePool {
	return r.resources
}

// Transform returns the current total transformation matrix.
func (r *Recorder) Transform() geom.Matrix {
	return r.transform
}

// --------------------------------------------------------------------------
// State Management
// --------------------------------------------------------------------------

// Save saves the current transform and clip.
func (r *Recorder) Save() int {
	n := r.SaveCount()
	r.stateStack = append(r.stateStack, r.transform)
	r.commands = append(r.commands, SaveCommand{})
	return n
}

// SaveLayer saves state and begins a layer.
func (r *Recorder) SaveLayer(bounds *geom.Rect, p *paint.Paint) int {
	n := r.SaveCount()
	r.stateStack = append(r.stateStack, r.transform)
	var b *geom.Rect
	if bounds != nil {
		c := *bounds
		b = &c
	}
	r.commands = append(r.commands, SaveLayerCommand{Bounds: b, Paint: r.resources.AddPaint(p)})
	return n
}

// Restore restores the previously saved state.
// If the state stack is empty, this is a no-op.
func (r *Recorder) Restore() {
	if len(r.stateStack) == 0 {
		return
	}
	r.transform = r.stateStack[len(r.stateStack)-1]
	r.stateStack = r.stateStack[:len(r.stateStack)-1]
	r.commands = append(r.commands, RestoreCommand{})
}

// SaveCount returns the number of saves not yet restored.
func (r *Recorder) SaveCount() int {
	return len(r.stateStack)
}

// --------------------------------------------------------------------------
// Transform and Clip
// --------------------------------------------------------------------------

// Concat pre-multiplies the current transform by m.
func (r *Recorder) Concat(m geom.Matrix) {
	if m.IsIdentity() {
		return
	}
	r.transform = r.transform.Multiply(m)
	r.commands = append(r.commands, ConcatCommand{Matrix: m})
}

// ClipRect intersects the clip with rect.
func (r *Recorder) ClipRect(rect geom.Rect, antiAlias bool) {
	r.commands = append(r.commands, ClipRectCommand{Rect: rect, AntiAlias: antiAlias})
}

// ClipPath intersects the clip with c.
func (r *Recorder) ClipPath(c *geom.ClipPath, antiAlias bool) {
	if c == nil {
		return
	}
	r.commands = append(r.commands, ClipPathCommand{Clip: r.resources.AddClip(c), AntiAlias: antiAlias})
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// DrawPath records a fill or stroke of path with p.
func (r *Recorder) DrawPath(path *geom.Path, p *paint.Paint) {
	if path.IsEmpty() || p == nil {
		return
	}
	r.commands = append(r.commands, DrawPathCommand{
		Path:  r.resources.AddPath(path),
		Paint: r.resources.AddPaint(p),
	})
}

// DrawImage records drawing the src part of img into dst.
func (r *Recorder) DrawImage(img image.Image, src, dst geom.Rect, p *paint.Paint) {
	if img == nil {
		return
	}
	r.commands = append(r.commands, DrawImageCommand{
		Image: r.resources.AddImage(img),
		Src:   src,
		Dst:   dst,
		Paint: r.resources.AddPaint(p),
	})
}

// DrawPicture records replaying pic.
func (r *Recorder) DrawPicture(pic *Picture) {
	if pic == nil {
		return
	}
	r.commands = append(r.commands, DrawPictureCommand{Picture: r.resources.AddPicture(pic)})
}
