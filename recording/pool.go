package recording

import (
	"image"

	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
)

// ResourcePool stores resources referenced by recording commands.
// Resources are stored in slices indexed by their reference types.
// Paths, clips and paints are cloned on Add to keep recordings immutable.
//
// ResourcePool is not safe for concurrent use. If concurrent access is needed,
// external synchronization must be provided.
type ResourcePool struct {
	paths    []*geom.Path
	paints   []*paint.Paint
	clips    []*geom.ClipPath
	images   []image.Image
	pictures []*Picture
}

// NewResourcePool creates an empty resource pool with pre-allocated capacity.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:  make([]*geom.Path, 0, 16),
		paints: make([]*paint.Paint, 0, 16),
	}
}

// AddPath adds a path to the pool and returns its reference.
// The path is cloned to ensure immutability of the recording.
func (p *ResourcePool) AddPath(path *geom.Path) PathRef {
	if path != nil {
		path = path.Clone()
	}
	p.paths = append(p.paths, path)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PathRef(uint32(len(p.paths) - 1))
}

// GetPath returns the path for the given reference.
// Returns nil if the reference is invalid.
func (p *ResourcePool) GetPath(ref PathRef) *geom.Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// AddPaint adds a copy of pt and returns its reference. A nil paint
// yields InvalidRef.
func (p *ResourcePool) AddPaint(pt *paint.Paint) PaintRef {
	if pt == nil {
		return PaintRef(InvalidRef)
	}
	p.paints = append(p.paints, pt.Clone())
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PaintRef(uint32(len(p.paints) - 1))
}

// GetPaint returns the paint for the given reference.
// Returns nil if the reference is invalid.
func (p *ResourcePool) GetPaint(ref PaintRef) *paint.Paint {
	if !ref.IsValid() || int(ref) >= len(p.paints) {
		return nil
	}
	return p.paints[ref]
}

// AddClip adds a clip path and returns its reference.
func (p *ResourcePool) AddClip(c *geom.ClipPath) ClipRef {
	p.clips = append(p.clips, c)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ClipRef(uint32(len(p.clips) - 1))
}

// GetClip returns the clip for the given reference.
// Returns nil if the reference is invalid.
func (p *ResourcePool) GetClip(ref ClipRef) *geom.ClipPath {
	if int(ref) >= len(p.clips) {
		return nil
	}
	return p.clips[ref]
}

// AddImage adds an image to the pool and returns its reference.
// Images are stored directly as Go's image.Image is already immutable.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ImageRef(uint32(len(p.images) - 1))
}

// GetImage returns the image for the given reference.
// Returns nil if the reference is invalid.
func (p *ResourcePool) GetImage(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// AddPicture adds a picture and returns its reference. Pictures are
// shared, not copied.
func (p *ResourcePool) AddPicture(pic *Picture) PictureRef {
	p.pictures = append(p.pictures, pic)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PictureRef(uint32(len(p.pictures) - 1))
}

// GetPicture returns the picture for the given reference.
// Returns nil if the reference is invalid.
func (p *ResourcePool) GetPicture(ref PictureRef) *Picture {
	if int(ref) >= len(p.pictures) {
		return nil
	}
	return p.pictures[ref]
}

// PathCount returns the number of paths in the pool.
func (p *ResourcePool) PathCount() int { return len(p.paths) }

// PaintCount returns the number of paints in the pool.
func (p *ResourcePool) PaintCount() int { return len(p.paints) }

// PictureCount returns the number of pictures in the pool.
func (p *ResourcePool) PictureCount() int { return len(p.pictures) }

// Len returns the total number of resources in the pool.
func (p *ResourcePool) Len() int {
	return len(p.paths) + len(p.paints) + len(p.clips) + len(p.images) + len(p.pictures)
}

// Release releases every picture in the pool and removes all resources.
func (p *ResourcePool) Release() {
	for _, pic := range p.pictures {
		pic.Release()
	}
	p.Clear()
}

// Clear removes all resources from the pool.
// This does not release the underlying memory; use NewResourcePool for that.
func (p *ResourcePool) Clear() {
	clear(p.paths)
	clear(p.paints)
	clear(p.clips)
	clear(p.images)
	clear(p.pictures)
	p.paths = p.paths[:0]
	p.paints = p.paints[:0]
	p.clips = p.clips[:0]
	p.images = p.images[:0]
	p.pictures = p.pictures[:0]
}
