package geom

// PathClip is one geometry of a clip path: a path in the clip element's
// content space, its own transform, and an optional nested clip that is
// intersected with it.
type PathClip struct {
	Path      *Path
	Transform Matrix
	Clip      *ClipPath
}

// ClipPath describes the resolved clip-path of an element: the union of
// its path clips, transformed by Transform, intersected with Clip.
//
// A ClipPath with no path clips is still valid: it clips everything away.
type ClipPath struct {
	Clips     []PathClip
	Transform Matrix
	Clip      *ClipPath
}

// NewClipPath returns an empty clip with an identity transform.
func NewClipPath() *ClipPath {
	return &ClipPath{Transform: Identity()}
}

// IsEmpty reports whether no geometry contributes to the clip.
func (c *ClipPath) IsEmpty() bool {
	return c == nil || len(c.Clips) == 0
}

// Path flattens the union of the path clips into one path in the clip's
// parent coordinate space. Nested clips are not applied; backends that
// need exact intersections walk Clips and Clip themselves.
// An empty clip yields an empty path, which clips everything.
func (c *ClipPath) Path() *Path {
	out := NewPath()
	if c == nil {
		return out
	}
	for _, pc := range c.Clips {
		if pc.Path.IsEmpty() {
			continue
		}
		out.Append(pc.Path.Transform(c.Transform.Multiply(pc.Transform)))
		out.FillRule = pc.Path.FillRule
	}
	return out
}

// Depth returns the number of nested clip levels including c.
func (c *ClipPath) Depth() int {
	n := 0
	for cp := c; cp != nil; cp = cp.Clip {
		n++
	}
	return n
}
