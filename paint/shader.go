package paint

import (
	"math"
	"sort"

	"github.com/gogpu/svgfx/geom"
)

// Shader produces a color per point. The set of shaders is closed.
type Shader interface {
	// ColorAt returns the unpremultiplied color at (x, y) in the space
	// of the painted geometry.
	ColorAt(x, y float64) RGBA
	isShader()
}

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode uint8

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Gradient holds what linear and radial gradients share.
type Gradient struct {
	Stops  []ColorStop
	Extend ExtendMode
	// Transform maps gradient space to the painted geometry's space.
	Transform geom.Matrix
	// Linear interpolates stops in linear RGB instead of sRGB.
	Linear bool
}

// local maps a point into gradient space.
func (g *Gradient) local(x, y float64) (float64, float64, bool) {
	inv, ok := g.Transform.Invert()
	if !ok {
		return 0, 0, false
	}
	p := inv.TransformPoint(geom.Pt(x, y))
	return p.X, p.Y, true
}

// LinearGradient is a linear color transition between two points.
type LinearGradient struct {
	Gradient
	Start, End geom.Point
}

func (*LinearGradient) isShader() {}

// ColorAt returns the color at the given point.
func (g *LinearGradient) ColorAt(x, y float64) RGBA {
	x, y, ok := g.local(x, y)
	if !ok {
		return Transparent
	}
	// Handle zero-length gradient (start == end)
	dx := g.End.X - g.Start.X
	dy := g.End.Y - g.Start.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return lastStopColor(g.Stops)
	}

	// Project point onto the gradient line
	// t = dot(P - Start, End - Start) / |End - Start|^2
	t := ((x-g.Start.X)*dx + (y-g.Start.Y)*dy) / lengthSq
	return colorAtOffset(g.Stops, t, g.Extend, g.Linear)
}

// RadialGradient is a two-point conical gradient from a focal circle to
// an end circle.
type RadialGradient struct {
	Gradient
	Center      geom.Point
	Radius      float64
	Focus       geom.Point
	FocalRadius float64
}

func (*RadialGradient) isShader() {}

// ColorAt returns the color at the given point.
func (g *RadialGradient) ColorAt(x, y float64) RGBA {
	x, y, ok := g.local(x, y)
	if !ok {
		return Transparent
	}
	if g.Radius <= 0 {
		return lastStopColor(g.Stops)
	}
	t, ok := g.computeT(x, y)
	if !ok {
		return Transparent
	}
	return colorAtOffset(g.Stops, t, g.Extend, g.Linear)
}

// computeT solves for the largest t such that the point lies on the
// circle interpolated between the focal circle (t=0) and the end
// circle (t=1) with a non-negative radius.
func (g *RadialGradient) computeT(x, y float64) (float64, bool) {
	cdx := g.Center.X - g.Focus.X
	cdy := g.Center.Y - g.Focus.Y
	dr := g.Radius - g.FocalRadius
	px := x - g.Focus.X
	py := y - g.Focus.Y

	a := cdx*cdx + cdy*cdy - dr*dr
	b := px*cdx + py*cdy + g.FocalRadius*dr
	c := px*px + py*py - g.FocalRadius*g.FocalRadius

	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0, false
		}
		t := c / (2 * b)
		return t, g.FocalRadius+t*dr >= 0
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (b + sq) / a
	t2 := (b - sq) / a
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if g.FocalRadius+t1*dr >= 0 {
		return t1, true
	}
	if g.FocalRadius+t2*dr >= 0 {
		return t2, true
	}
	return 0, false
}

// PictureShader tiles a recorded picture, as pattern paint servers do.
type PictureShader struct {
	Picture Picture
	// Tile is the tile rectangle in pattern space.
	Tile geom.Rect
	// Transform maps pattern space to the painted geometry's space.
	Transform geom.Matrix
}

func (*PictureShader) isShader() {}

// ColorAt is not defined for recorded content; backends rasterize the
// picture. It returns transparent black.
func (*PictureShader) ColorAt(x, y float64) RGBA { return Transparent }

// NoiseKind selects the feTurbulence noise function.
type NoiseKind uint8

const (
	FractalNoise NoiseKind = iota
	TurbulenceNoise
)

// Turbulence is Perlin noise as defined by feTurbulence.
type Turbulence struct {
	Kind      NoiseKind
	BaseFreqX float64
	BaseFreqY float64
	Octaves   int
	Seed      float64
	// TileSize is empty unless tiles are stitched.
	TileSize geom.Rect
}

func (*Turbulence) isShader() {}

// ColorAt is evaluated by backends; it returns transparent black.
func (*Turbulence) ColorAt(x, y float64) RGBA { return Transparent }

// sortStops sorts color stops by offset, keeping the document order of
// equal offsets.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// applyExtendMode applies the extend mode to normalize t to [0, 1].
func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default: // ExtendPad
		t = clamp01(t)
	}
	return t
}

// interpolate blends two stop colors, optionally in linear RGB.
func interpolate(c1, c2 RGBA, t float64, linear bool) RGBA {
	if !linear {
		return c1.Lerp(c2, t)
	}
	l := SRGBToLinearColor(c1).Lerp(SRGBToLinearColor(c2), t)
	return LinearToSRGBColor(l)
}

// colorAtOffset returns the interpolated color at a given offset.
func colorAtOffset(stops []ColorStop, t float64, mode ExtendMode, linear bool) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	if len(stops) == 1 {
		return stops[0].Color
	}
	sorted := sortStops(stops)
	t = applyExtendMode(t, mode)

	// First stop whose offset exceeds t.
	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Offset > t
	})
	if idx == 0 {
		return sorted[0].Color
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1].Color
	}
	stop1 := sorted[idx-1]
	stop2 := sorted[idx]
	if stop2.Offset == stop1.Offset {
		return stop2.Color
	}
	localT := (t - stop1.Offset) / (stop2.Offset - stop1.Offset)
	return interpolate(stop1.Color, stop2.Color, localT, linear)
}

func lastStopColor(stops []ColorStop) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	return sortStops(stops)[len(stops)-1].Color
}
