package paint

import "math"

// BlendMode is a Porter-Duff compositing operator or a W3C blend mode.
type BlendMode uint8

const (
	// Porter-Duff modes (standard compositing operators)
	BlendClear           BlendMode = iota // Result: 0 (clear destination)
	BlendSource                           // Result: S (replace with source)
	BlendDestination                      // Result: D (keep destination)
	BlendSourceOver                       // Result: S + D*(1-Sa) [default]
	BlendDestinationOver                  // Result: S*(1-Da) + D
	BlendSourceIn                         // Result: S*Da
	BlendDestinationIn                    // Result: D*Sa
	BlendSourceOut                        // Result: S*(1-Da)
	BlendDestinationOut                   // Result: D*(1-Sa)
	BlendSourceAtop                       // Result: S*Da + D*(1-Sa)
	BlendDestinationAtop                  // Result: S*(1-Da) + D*Sa
	BlendXor                              // Result: S*(1-Da) + D*(1-Sa)
	BlendPlus                             // Result: S + D (clamped)
	BlendModulate                         // Result: S*D

	// Separable blend modes
	BlendMultiply   // Result: S * D
	BlendScreen     // Result: 1 - (1-S)*(1-D)
	BlendOverlay    // HardLight with swapped layers
	BlendDarken     // min(S, D)
	BlendLighten    // max(S, D)
	BlendColorDodge // D / (1 - S)
	BlendColorBurn  // 1 - (1 - D) / S
	BlendHardLight  // Multiply or Screen depending on source
	BlendSoftLight  // Soft version of HardLight
	BlendDifference // |S - D|
	BlendExclusion  // S + D - 2*S*D

	// Non-separable blend modes
	BlendHue        // Hue of source, saturation and luminosity of backdrop
	BlendSaturation // Saturation of source, hue and luminosity of backdrop
	BlendColor      // Hue and saturation of source, luminosity of backdrop
	BlendLuminosity // Luminosity of source, hue and saturation of backdrop
)

var blendNames = [...]string{
	"clear", "src", "dst", "src-over", "dst-over", "src-in", "dst-in",
	"src-out", "dst-out", "src-atop", "dst-atop", "xor", "plus", "modulate",
	"multiply", "screen", "overlay", "darken", "lighten", "color-dodge",
	"color-burn", "hard-light", "soft-light", "difference", "exclusion",
	"hue", "saturation", "color", "luminosity",
}

func (m BlendMode) String() string {
	if int(m) < len(blendNames) {
		return blendNames[m]
	}
	return "unknown"
}

// ParseBlendMode maps an feBlend mode or mix-blend-mode keyword to a
// blend mode. Unknown keywords map to BlendSourceOver ("normal").
func ParseBlendMode(s string) BlendMode {
	switch s {
	case "multiply":
		return BlendMultiply
	case "screen":
		return BlendScreen
	case "overlay":
		return BlendOverlay
	case "darken":
		return BlendDarken
	case "lighten":
		return BlendLighten
	case "color-dodge":
		return BlendColorDodge
	case "color-burn":
		return BlendColorBurn
	case "hard-light":
		return BlendHardLight
	case "soft-light":
		return BlendSoftLight
	case "difference":
		return BlendDifference
	case "exclusion":
		return BlendExclusion
	case "hue":
		return BlendHue
	case "saturation":
		return BlendSaturation
	case "color":
		return BlendColor
	case "luminosity":
		return BlendLuminosity
	}
	return BlendSourceOver
}

// Composite blends premultiplied src over premultiplied dst.
func Composite(mode BlendMode, src, dst RGBA) RGBA {
	sa, da := src.A, dst.A
	pd := func(fs, fd float64) RGBA {
		return RGBA{
			R: src.R*fs + dst.R*fd,
			G: src.G*fs + dst.G*fd,
			B: src.B*fs + dst.B*fd,
			A: sa*fs + da*fd,
		}
	}
	switch mode {
	case BlendClear:
		return RGBA{}
	case BlendSource:
		return src
	case BlendDestination:
		return dst
	case BlendSourceOver:
		return pd(1, 1-sa)
	case BlendDestinationOver:
		return pd(1-da, 1)
	case BlendSourceIn:
		return pd(da, 0)
	case BlendDestinationIn:
		return pd(0, sa)
	case BlendSourceOut:
		return pd(1-da, 0)
	case BlendDestinationOut:
		return pd(0, 1-sa)
	case BlendSourceAtop:
		return pd(da, 1-sa)
	case BlendDestinationAtop:
		return pd(1-da, sa)
	case BlendXor:
		return pd(1-da, 1-sa)
	case BlendPlus:
		return pd(1, 1).Clamp()
	case BlendModulate:
		return RGBA{R: src.R * dst.R, G: src.G * dst.G, B: src.B * dst.B, A: sa * da}
	case BlendHue, BlendSaturation, BlendColor, BlendLuminosity:
		return nonSeparable(mode, src, dst)
	}
	f := separableFunc(mode)
	s, d := src.Unpremultiply(), dst.Unpremultiply()
	mix := func(sc, dc, spc, dpc float64) float64 {
		return (1-sa)*dpc + (1-da)*spc + sa*da*f(sc, dc)
	}
	return RGBA{
		R: mix(s.R, d.R, src.R, dst.R),
		G: mix(s.G, d.G, src.G, dst.G),
		B: mix(s.B, d.B, src.B, dst.B),
		A: sa + da - sa*da,
	}
}

func separableFunc(mode BlendMode) func(s, d float64) float64 {
	switch mode {
	case BlendMultiply:
		return func(s, d float64) float64 { return s * d }
	case BlendScreen:
		return screen
	case BlendOverlay:
		return func(s, d float64) float64 { return hardLight(d, s) }
	case BlendDarken:
		return math.Min
	case BlendLighten:
		return math.Max
	case BlendColorDodge:
		return func(s, d float64) float64 {
			switch {
			case d == 0:
				return 0
			case s >= 1:
				return 1
			}
			return math.Min(1, d/(1-s))
		}
	case BlendColorBurn:
		return func(s, d float64) float64 {
			switch {
			case d >= 1:
				return 1
			case s <= 0:
				return 0
			}
			return 1 - math.Min(1, (1-d)/s)
		}
	case BlendHardLight:
		return hardLight
	case BlendSoftLight:
		return softLight
	case BlendDifference:
		return func(s, d float64) float64 { return math.Abs(s - d) }
	case BlendExclusion:
		return func(s, d float64) float64 { return s + d - 2*s*d }
	}
	return func(s, _ float64) float64 { return s }
}

func screen(s, d float64) float64 { return s + d - s*d }

func hardLight(s, d float64) float64 {
	if s <= 0.5 {
		return d * 2 * s
	}
	return screen(2*s-1, d)
}

func softLight(s, d float64) float64 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dd float64
	if d <= 0.25 {
		dd = ((16*d-12)*d + 4) * d
	} else {
		dd = math.Sqrt(d)
	}
	return d + (2*s-1)*(dd-d)
}

func lum(c RGBA) float64 { return 0.3*c.R + 0.59*c.G + 0.11*c.B }

func clipColor(c RGBA) RGBA {
	l := lum(c)
	n := min(c.R, c.G, c.B)
	x := max(c.R, c.G, c.B)
	if n < 0 {
		c.R = l + (c.R-l)*l/(l-n)
		c.G = l + (c.G-l)*l/(l-n)
		c.B = l + (c.B-l)*l/(l-n)
	}
	if x > 1 {
		c.R = l + (c.R-l)*(1-l)/(x-l)
		c.G = l + (c.G-l)*(1-l)/(x-l)
		c.B = l + (c.B-l)*(1-l)/(x-l)
	}
	return c
}

func setLum(c RGBA, l float64) RGBA {
	d := l - lum(c)
	return clipColor(RGBA{R: c.R + d, G: c.G + d, B: c.B + d, A: c.A})
}

func sat(c RGBA) float64 { return max(c.R, c.G, c.B) - min(c.R, c.G, c.B) }

func setSat(c RGBA, s float64) RGBA {
	ch := []*float64{&c.R, &c.G, &c.B}
	// sort pointers by value: min, mid, max
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			if *ch[j] < *ch[i] {
				ch[i], ch[j] = ch[j], ch[i]
			}
		}
	}
	cmin, cmid, cmax := ch[0], ch[1], ch[2]
	if *cmax > *cmin {
		*cmid = (*cmid - *cmin) * s / (*cmax - *cmin)
		*cmax = s
	} else {
		*cmid, *cmax = 0, 0
	}
	*cmin = 0
	return c
}

func nonSeparable(mode BlendMode, src, dst RGBA) RGBA {
	sa, da := src.A, dst.A
	s, d := src.Unpremultiply(), dst.Unpremultiply()
	var b RGBA
	switch mode {
	case BlendHue:
		b = setLum(setSat(s, sat(d)), lum(d))
	case BlendSaturation:
		b = setLum(setSat(d, sat(s)), lum(d))
	case BlendColor:
		b = setLum(s, lum(d))
	default:
		b = setLum(d, lum(s))
	}
	return RGBA{
		R: (1-sa)*dst.R + (1-da)*src.R + sa*da*b.R,
		G: (1-sa)*dst.G + (1-da)*src.G + sa*da*b.G,
		B: (1-sa)*dst.B + (1-da)*src.B + sa*da*b.B,
		A: sa + da - sa*da,
	}
}
