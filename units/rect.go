package units

import (
	"strings"

	"github.com/gogpu/svgfx/geom"
)

// Units is the coordinate system of gradient, pattern, filter, clip and
// mask geometry.
type Units uint8

const (
	UserSpaceOnUse Units = iota
	ObjectBoundingBox
)

func (u Units) String() string {
	if u == ObjectBoundingBox {
		return "objectBoundingBox"
	}
	return "userSpaceOnUse"
}

// ParseUnits parses a *Units attribute value, returning def when s is
// empty or unknown.
func ParseUnits(s string, def Units) Units {
	switch strings.TrimSpace(s) {
	case "userSpaceOnUse":
		return UserSpaceOnUse
	case "objectBoundingBox":
		return ObjectBoundingBox
	}
	return def
}

// Resolve converts a single length in the given units. In
// object-bounding-box mode a percentage contributes value/100 and any
// other length its bare number, as a fraction of the bounds along axis;
// offset selects whether the bounds origin is added.
func (m Mapper) Resolve(l Length, axis Axis, u Units, bounds geom.Rect, offset bool) float64 {
	if u == UserSpaceOnUse {
		return m.ToUser(l, axis)
	}
	f := l.Value
	if l.Unit == Percent {
		f /= 100
	}
	switch axis {
	case Horizontal:
		f *= bounds.W
		if offset {
			f += bounds.X
		}
	case Vertical:
		f *= bounds.H
		if offset {
			f += bounds.Y
		}
	default:
		f *= (bounds.W + bounds.H) / 2
	}
	return f
}

// CalculateRect resolves a rectangle given by four lengths. It reports
// false when the width or height is not positive.
func (m Mapper) CalculateRect(x, y, w, h Length, u Units, bounds geom.Rect) (geom.Rect, bool) {
	r := geom.Rect{
		X: m.Resolve(x, Horizontal, u, bounds, true),
		Y: m.Resolve(y, Vertical, u, bounds, true),
		W: m.Resolve(w, Horizontal, u, bounds, false),
		H: m.Resolve(h, Vertical, u, bounds, false),
	}
	if r.W <= 0 || r.H <= 0 {
		return r, false
	}
	return r, true
}
