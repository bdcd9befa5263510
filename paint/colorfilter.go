package paint

import "math"

// ColorFilter transforms one color at a time. Filters operate on
// unpremultiplied colors. The set of color filters is closed.
type ColorFilter interface {
	Apply(c RGBA) RGBA
	isColorFilter()
}

// MatrixColorFilter applies a 4x5 color transformation matrix:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// Components and the bias column are in [0, 1]; results are clamped.
type MatrixColorFilter struct {
	Matrix [20]float64
}

func (*MatrixColorFilter) isColorFilter() {}

// IdentityMatrix is the 4x5 matrix that leaves colors unchanged.
var IdentityMatrix = [20]float64{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// Apply transforms c by the matrix.
func (f *MatrixColorFilter) Apply(c RGBA) RGBA {
	m := &f.Matrix
	row := func(i int) float64 {
		return clamp01(m[i]*c.R + m[i+1]*c.G + m[i+2]*c.B + m[i+3]*c.A + m[i+4])
	}
	return RGBA{R: row(0), G: row(5), B: row(10), A: row(15)}
}

// SaturateMatrix returns the feColorMatrix type="saturate" matrix.
func SaturateMatrix(s float64) [20]float64 {
	return [20]float64{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// HueRotateMatrix returns the feColorMatrix type="hueRotate" matrix for
// an angle in degrees.
func HueRotateMatrix(degrees float64) [20]float64 {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return [20]float64{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0, 0,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0, 0,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// LuminanceToAlphaMatrix is the feColorMatrix type="luminanceToAlpha"
// matrix.
var LuminanceToAlphaMatrix = [20]float64{
	0, 0, 0, 0, 0,
	0, 0, 0, 0, 0,
	0, 0, 0, 0, 0,
	0.2125, 0.7154, 0.0721, 0, 0,
}

// AlphaOnlyMatrix keeps alpha and zeroes the color channels, which
// derives SourceAlpha and BackgroundAlpha from their color inputs.
var AlphaOnlyMatrix = [20]float64{
	0, 0, 0, 0, 0,
	0, 0, 0, 0, 0,
	0, 0, 0, 0, 0,
	0, 0, 0, 1, 0,
}

// TableColorFilter maps each channel through a 256-entry lookup table.
// A nil table leaves its channel unchanged.
type TableColorFilter struct {
	A, R, G, B *[256]uint8
}

func (*TableColorFilter) isColorFilter() {}

// Apply looks up every channel.
func (f *TableColorFilter) Apply(c RGBA) RGBA {
	lookup := func(t *[256]uint8, v float64) float64 {
		if t == nil {
			return v
		}
		return float64(t[uint8(math.Round(clamp01(v)*255))]) / 255
	}
	return RGBA{R: lookup(f.R, c.R), G: lookup(f.G, c.G), B: lookup(f.B, c.B), A: lookup(f.A, c.A)}
}

// SRGBToLinearGamma converts color channels from sRGB to linear RGB.
type SRGBToLinearGamma struct{}

func (SRGBToLinearGamma) isColorFilter() {}

// Apply converts c.
func (SRGBToLinearGamma) Apply(c RGBA) RGBA { return SRGBToLinearColor(c) }

// LinearToSRGBGamma converts color channels from linear RGB to sRGB.
type LinearToSRGBGamma struct{}

func (LinearToSRGBGamma) isColorFilter() {}

// Apply converts c.
func (LinearToSRGBGamma) Apply(c RGBA) RGBA { return LinearToSRGBColor(c) }

// LumaColorFilter replaces a color by black with alpha equal to its
// luminance, scaled by its own alpha. Masks use it.
type LumaColorFilter struct{}

func (LumaColorFilter) isColorFilter() {}

// Apply computes the luminance alpha of c.
func (LumaColorFilter) Apply(c RGBA) RGBA {
	l := 0.2125*c.R + 0.7154*c.G + 0.0721*c.B
	return RGBA{A: clamp01(l * c.A)}
}
