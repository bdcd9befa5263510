// Package geom holds the geometry values shared by the render tree:
// affine matrices, rectangles, vector paths and clip-path descriptions.
//
// Paths use a closed set of elements (MoveTo, LineTo, QuadTo, CubicTo,
// Close). All values are plain data; nothing here talks to a backend.
package geom
