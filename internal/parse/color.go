package parse

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an unpremultiplied color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ParseColor parses a CSS color: a keyword, #rgb, #rgba, #rrggbb,
// #rrggbbaa, rgb()/rgba() with numbers or percentages, or hsl()/hsla().
// The keywords currentColor, inherit and none are not colors and must be
// handled by the caller.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, false
	}
	lower := strings.ToLower(s)
	switch {
	case lower == "transparent":
		return Color{}, true
	case strings.HasPrefix(lower, "#"):
		return parseHex(lower[1:])
	case strings.HasPrefix(lower, "rgb"):
		return parseRGBFunc(lower)
	case strings.HasPrefix(lower, "hsl"):
		return parseHSLFunc(lower)
	}
	if c, ok := colornames.Map[lower]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, true
	}
	return Color{}, false
}

func parseHex(h string) (Color, bool) {
	switch len(h) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range h {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		h = expanded.String()
	case 6, 8:
	default:
		return Color{}, false
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, true
}

// funcArgs splits "name(a, b c / d)" into its arguments.
func funcArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	inner := s[open+1 : len(s)-1]
	inner = strings.ReplaceAll(inner, "/", " ")
	inner = strings.ReplaceAll(inner, ",", " ")
	return strings.Fields(inner), true
}

// channel parses an rgb() channel: a number in [0, 255] or a percentage.
func channel(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		v, ok := Number(s[:len(s)-1])
		return clamp01(v / 100), ok
	}
	v, ok := Number(s)
	return clamp01(v / 255), ok
}

// alpha parses an alpha value: a number in [0, 1] or a percentage.
func alpha(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		v, ok := Number(s[:len(s)-1])
		return clamp01(v / 100), ok
	}
	v, ok := Number(s)
	return clamp01(v), ok
}

func parseRGBFunc(s string) (Color, bool) {
	args, ok := funcArgs(s)
	if !ok || len(args) < 3 || len(args) > 4 {
		return Color{}, false
	}
	var c Color
	var okR, okG, okB bool
	c.R, okR = channel(args[0])
	c.G, okG = channel(args[1])
	c.B, okB = channel(args[2])
	if !okR || !okG || !okB {
		return Color{}, false
	}
	c.A = 1
	if len(args) == 4 {
		if c.A, ok = alpha(args[3]); !ok {
			return Color{}, false
		}
	}
	return c, true
}

func parseHSLFunc(s string) (Color, bool) {
	args, ok := funcArgs(s)
	if !ok || len(args) < 3 || len(args) > 4 {
		return Color{}, false
	}
	h, okH := Number(strings.TrimSuffix(args[0], "deg"))
	sat, okS := alpha(args[1])
	l, okL := alpha(args[2])
	if !okH || !okS || !okL {
		return Color{}, false
	}
	c := hsl(h, sat, l)
	c.A = 1
	if len(args) == 4 {
		if c.A, ok = alpha(args[3]); !ok {
			return Color{}, false
		}
	}
	return c, true
}

// hsl converts hue (degrees), saturation and lightness to RGB.
func hsl(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360
	if s == 0 {
		return Color{R: l, G: l, B: l}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return Color{
		R: hueToRGB(p, q, h+1.0/3),
		G: hueToRGB(p, q, h),
		B: hueToRGB(p, q, h-1.0/3),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
