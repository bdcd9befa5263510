package units

import (
	"strings"

	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/internal/parse"
)

// Align is the alignment part of preserveAspectRatio.
type Align uint8

const (
	XMidYMid Align = iota
	AlignNone
	XMinYMin
	XMidYMin
	XMaxYMin
	XMinYMid
	XMaxYMid
	XMinYMax
	XMidYMax
	XMaxYMax
)

var alignNames = map[string]Align{
	"none":     AlignNone,
	"xMinYMin": XMinYMin,
	"xMidYMin": XMidYMin,
	"xMaxYMin": XMaxYMin,
	"xMinYMid": XMinYMid,
	"xMidYMid": XMidYMid,
	"xMaxYMid": XMaxYMid,
	"xMinYMax": XMinYMax,
	"xMidYMax": XMidYMax,
	"xMaxYMax": XMaxYMax,
}

// AspectRatio is a parsed preserveAspectRatio value.
type AspectRatio struct {
	Align Align
	Slice bool
}

// ParseAspectRatio parses "[defer] <align> [meet|slice]". Malformed
// values yield the default xMidYMid meet.
func ParseAspectRatio(s string) AspectRatio {
	fields := strings.Fields(s)
	if len(fields) > 0 && fields[0] == "defer" {
		fields = fields[1:]
	}
	var ar AspectRatio
	if len(fields) == 0 {
		return ar
	}
	align, ok := alignNames[fields[0]]
	if !ok {
		return AspectRatio{}
	}
	ar.Align = align
	if len(fields) > 1 {
		switch fields[1] {
		case "slice":
			ar.Slice = true
		case "meet":
		default:
			return AspectRatio{}
		}
	}
	return ar
}

// fractions returns the x and y alignment as 0, 0.5 or 1.
func (a Align) fractions() (fx, fy float64) {
	switch a {
	case XMinYMin, XMinYMid, XMinYMax:
		fx = 0
	case XMaxYMin, XMaxYMid, XMaxYMax:
		fx = 1
	default:
		fx = 0.5
	}
	switch a {
	case XMinYMin, XMidYMin, XMaxYMin:
		fy = 0
	case XMinYMax, XMidYMax, XMaxYMax:
		fy = 1
	default:
		fy = 0.5
	}
	return fx, fy
}

// ViewBoxTransform returns the transform that maps viewBox onto the
// viewport rectangle honoring ar. An empty viewBox yields the identity.
func ViewBoxTransform(viewBox, viewport geom.Rect, ar AspectRatio) geom.Matrix {
	if viewBox.IsEmpty() || viewport.IsEmpty() {
		return geom.Identity()
	}
	sx := viewport.W / viewBox.W
	sy := viewport.H / viewBox.H
	if ar.Align == AlignNone {
		return geom.Translate(viewport.X, viewport.Y).
			Multiply(geom.Scale(sx, sy)).
			Multiply(geom.Translate(-viewBox.X, -viewBox.Y))
	}
	s := min(sx, sy)
	if ar.Slice {
		s = max(sx, sy)
	}
	fx, fy := ar.Align.fractions()
	tx := viewport.X + (viewport.W-viewBox.W*s)*fx
	ty := viewport.Y + (viewport.H-viewBox.H*s)*fy
	return geom.Translate(tx, ty).
		Multiply(geom.Scale(s, s)).
		Multiply(geom.Translate(-viewBox.X, -viewBox.Y))
}

// ParseViewBox parses "minx miny width height". It reports false for
// malformed input or a non-positive size.
func ParseViewBox(s string) (geom.Rect, bool) {
	nums, ok := parse.Numbers(s)
	if !ok || len(nums) != 4 || nums[2] <= 0 || nums[3] <= 0 {
		return geom.Rect{}, false
	}
	return geom.Rect{X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}, true
}
