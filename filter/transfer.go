package filter

import (
	"math"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/paint"
)

// componentTransfer builds feComponentTransfer as per-channel lookup
// tables. The last feFunc element of each channel wins; channels without
// one, or with type identity, are left unchanged.
func (g *graph) componentTransfer(p *primitive) (paint.ImageFilter, bool) {
	f := &paint.TableColorFilter{}
	for _, c := range p.el.Children() {
		t := transferTable(c)
		switch c.Tag {
		case "feFuncR":
			f.R = t
		case "feFuncG":
			f.G = t
		case "feFuncB":
			f.B = t
		case "feFuncA":
			f.A = t
		}
	}
	return &paint.ColorFilterImage{Filter: f, Input: g.in(p, 0), Crop: p.crop()}, true
}

// transferTable returns the lookup table of one feFunc element, or nil
// for the identity.
func transferTable(el *dom.Element) *[256]uint8 {
	fn := transferFunc(el)
	if fn == nil {
		return nil
	}
	var t [256]uint8
	for i := range t {
		v := fn(float64(i) / 255)
		t[i] = uint8(math.Round(min(max(v, 0), 1) * 255))
	}
	return &t
}

// transferFunc returns the transfer function of an feFunc element.
func transferFunc(el *dom.Element) func(float64) float64 {
	number := func(name string, def float64) float64 {
		if v, ok := parse.Number(el.Attr(name)); ok {
			return v
		}
		return def
	}
	switch el.Attr("type") {
	case "table":
		values, _ := parse.Numbers(el.Attr("tableValues"))
		if len(values) == 0 {
			return nil
		}
		n := float64(len(values) - 1)
		return func(c float64) float64 {
			if n == 0 {
				return values[0]
			}
			k := int(math.Floor(c * n))
			if k >= len(values)-1 {
				return values[len(values)-1]
			}
			return values[k] + (c-float64(k)/n)*n*(values[k+1]-values[k])
		}
	case "discrete":
		values, _ := parse.Numbers(el.Attr("tableValues"))
		if len(values) == 0 {
			return nil
		}
		n := float64(len(values))
		return func(c float64) float64 {
			k := min(int(math.Floor(c*n)), len(values)-1)
			return values[k]
		}
	case "linear":
		slope := number("slope", 1)
		intercept := number("intercept", 0)
		return func(c float64) float64 { return slope*c + intercept }
	case "gamma":
		amplitude := number("amplitude", 1)
		exponent := number("exponent", 1)
		offset := number("offset", 0)
		return func(c float64) float64 { return amplitude*math.Pow(c, exponent) + offset }
	}
	return nil
}
