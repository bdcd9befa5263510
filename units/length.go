// Package units maps SVG lengths to user-space values.
//
// Lengths are resolved against a viewport (for percentages), a font size
// (for em/ex) and, in object-bounding-box mode, against the bounds of the
// element being painted.
package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/internal/parse"
)

// Unit is the unit suffix of a Length.
type Unit uint8

const (
	None Unit = iota
	Px
	Pt
	Pc
	Mm
	Cm
	In
	Em
	Ex
	Percent
)

var unitSuffix = [...]string{
	None:    "",
	Px:      "px",
	Pt:      "pt",
	Pc:      "pc",
	Mm:      "mm",
	Cm:      "cm",
	In:      "in",
	Em:      "em",
	Ex:      "ex",
	Percent: "%",
}

// String returns the SVG suffix of the unit.
func (u Unit) String() string {
	if int(u) < len(unitSuffix) {
		return unitSuffix[u]
	}
	return fmt.Sprintf("Unit(%d)", u)
}

// Length is a number with a unit.
type Length struct {
	Value float64
	Unit  Unit
}

// Number returns a unitless length.
func Number(v float64) Length { return Length{Value: v} }

// Percentage returns a percentage length.
func Percentage(v float64) Length { return Length{Value: v, Unit: Percent} }

func (l Length) String() string {
	return fmt.Sprintf("%g%s", l.Value, l.Unit)
}

// ParseLength parses an SVG length such as "10", "2.5mm" or "50%".
func ParseLength(s string) (Length, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, false
	}
	for u := Percent; u > None; u-- {
		suffix := unitSuffix[u]
		if len(s) > len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
			num := s[:len(s)-len(suffix)]
			// The unit must follow the number directly.
			if strings.TrimSpace(num) != num {
				return Length{}, false
			}
			v, ok := parse.Number(num)
			if !ok {
				return Length{}, false
			}
			return Length{Value: v, Unit: u}, true
		}
	}
	v, ok := parse.Number(s)
	if !ok {
		return Length{}, false
	}
	return Length{Value: v}, true
}

// ParseLengthOr parses s, returning def when s is empty or malformed.
func ParseLengthOr(s string, def Length) Length {
	if l, ok := ParseLength(s); ok {
		return l
	}
	return def
}

// Axis selects the viewport dimension a percentage refers to.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
	// Other lengths, such as r, refer to the normalized diagonal.
	Other
)

const dpi = 96.0

// DefaultFontSize is used when no font-size is known.
const DefaultFontSize = 16.0

// Mapper converts lengths to user-space values.
type Mapper struct {
	// Viewport is the nearest viewport; percentages refer to its size.
	Viewport geom.Rect
	FontSize float64
}

// NewMapper returns a mapper for the given viewport.
func NewMapper(viewport geom.Rect, fontSize float64) Mapper {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return Mapper{Viewport: viewport, FontSize: fontSize}
}

// WithViewport returns a copy of m resolving percentages against r.
func (m Mapper) WithViewport(r geom.Rect) Mapper {
	m.Viewport = r
	return m
}

// WithFontSize returns a copy of m using the given font size.
func (m Mapper) WithFontSize(fontSize float64) Mapper {
	if fontSize > 0 {
		m.FontSize = fontSize
	}
	return m
}

// ToUser converts l to user units.
func (m Mapper) ToUser(l Length, axis Axis) float64 {
	switch l.Unit {
	case None, Px:
		return l.Value
	case Pt:
		return l.Value * dpi / 72
	case Pc:
		return l.Value * dpi / 6
	case Mm:
		return l.Value * dpi / 25.4
	case Cm:
		return l.Value * dpi / 2.54
	case In:
		return l.Value * dpi
	case Em:
		return l.Value * m.fontSize()
	case Ex:
		return l.Value * m.fontSize() / 2
	case Percent:
		var ref float64
		switch axis {
		case Horizontal:
			ref = m.Viewport.W
		case Vertical:
			ref = m.Viewport.H
		default:
			ref = math.Hypot(m.Viewport.W, m.Viewport.H) / math.Sqrt2
		}
		return l.Value / 100 * ref
	}
	return l.Value
}

func (m Mapper) fontSize() float64 {
	if m.FontSize > 0 {
		return m.FontSize
	}
	return DefaultFontSize
}
