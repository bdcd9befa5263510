package paint

import "github.com/gogpu/svgfx/geom"

// Style selects whether a paint fills or strokes geometry.
type Style uint8

const (
	StyleFill Style = iota
	StyleStroke
)

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Stroke holds stroke geometry parameters.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	// Dash is nil for a solid stroke.
	Dash       []float64
	DashOffset float64
}

// DefaultStroke returns the SVG initial stroke parameters.
func DefaultStroke() Stroke {
	return Stroke{Width: 1, MiterLimit: 4}
}

// Paint describes how to paint geometry or composite a layer.
//
// A paint carries either a solid Color or a Shader. With a shader only
// the alpha of Color is used, scaling the shader output. When used for a
// layer, ColorFilter and ImageFilter are applied to the layer content
// before it is blended back with Blend.
type Paint struct {
	Style     Style
	Color     RGBA
	Shader    Shader
	Stroke    Stroke
	Blend     BlendMode
	AntiAlias bool

	ColorFilter ColorFilter
	ImageFilter ImageFilter
}

// NewPaint returns an antialiased source-over fill paint of color c.
func NewPaint(c RGBA) *Paint {
	return &Paint{Color: c, Blend: BlendSourceOver, AntiAlias: true}
}

// NewOpacityPaint returns a layer paint that scales content alpha by a.
func NewOpacityPaint(a float64) *Paint {
	return &Paint{Color: RGBA{A: clamp01(a)}, Blend: BlendSourceOver, AntiAlias: true}
}

// NewMaskLayerPaint returns the paint of the layer holding masked
// content. The layer keeps its content premultiplied so a destination-in
// mask scales color and alpha together.
func NewMaskLayerPaint() *Paint {
	return &Paint{Color: Black, Blend: BlendSourceOver, AntiAlias: true}
}

// NewFilterPaint returns a layer paint applying f.
func NewFilterPaint(f ImageFilter) *Paint {
	return &Paint{Color: Black, Blend: BlendSourceOver, AntiAlias: true, ImageFilter: f}
}

// Clone returns a shallow copy of p with its own dash slice.
func (p *Paint) Clone() *Paint {
	if p == nil {
		return nil
	}
	c := *p
	if p.Stroke.Dash != nil {
		c.Stroke.Dash = append([]float64(nil), p.Stroke.Dash...)
	}
	return &c
}

// ColorAt returns the paint color at a point in the local space of the
// painted geometry.
func (p *Paint) ColorAt(pt geom.Point) RGBA {
	if p.Shader != nil {
		c := p.Shader.ColorAt(pt.X, pt.Y)
		c.A *= p.Color.A
		return c
	}
	return p.Color
}

// Picture is a recorded sequence of drawing commands. It is implemented
// by the recording package.
type Picture interface {
	CullRect() geom.Rect
}
