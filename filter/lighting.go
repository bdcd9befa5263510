package filter

import (
	"math"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/internal/parse"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/units"
)

// lighting builds feDiffuseLighting and feSpecularLighting. The light
// source is the first light element child; without one the primitive is
// dropped.
func (g *graph) lighting(p *primitive) (paint.ImageFilter, bool) {
	el := p.el
	number := func(name string, def float64) float64 {
		if v, ok := parse.Number(el.Attr(name)); ok {
			return v
		}
		return def
	}

	var light paint.Light
	for _, c := range el.Children() {
		if light = g.light(c); light != nil {
			break
		}
	}
	if light == nil {
		return nil, false
	}

	f := &paint.Lighting{
		Kind:         paint.Diffuse,
		Light:        light,
		Color:        g.color(p, "lighting-color", "white", "", p.space),
		SurfaceScale: number("surfaceScale", 1),
		Input:        g.in(p, 0),
		Crop:         p.crop(),
	}
	if el.Tag == "feSpecularLighting" {
		f.Kind = paint.Specular
		f.Constant = number("specularConstant", 1)
		f.Shininess = min(max(number("specularExponent", 1), 1), 128)
	} else {
		f.Constant = number("diffuseConstant", 1)
	}
	if f.Constant < 0 {
		return nil, false
	}
	return f, true
}

// light returns the light source described by el, or nil when el is not
// a light element.
func (g *graph) light(el *dom.Element) paint.Light {
	number := func(name string, def float64) float64 {
		if v, ok := parse.Number(el.Attr(name)); ok {
			return v
		}
		return def
	}
	switch el.Tag {
	case "feDistantLight":
		az := number("azimuth", 0) * math.Pi / 180
		elev := number("elevation", 0) * math.Pi / 180
		return paint.DistantLight{Direction: geom.Point3{
			X: math.Cos(az) * math.Cos(elev),
			Y: math.Sin(az) * math.Cos(elev),
			Z: math.Sin(elev),
		}}
	case "fePointLight":
		return paint.PointLight{Location: g.lightPoint(number("x", 0), number("y", 0), number("z", 0))}
	case "feSpotLight":
		cutoff := 90.0
		if v, ok := parse.Number(el.Attr("limitingConeAngle")); ok {
			cutoff = math.Abs(v)
		}
		return paint.SpotLight{
			Location:         g.lightPoint(number("x", 0), number("y", 0), number("z", 0)),
			Target:           g.lightPoint(number("pointsAtX", 0), number("pointsAtY", 0), number("pointsAtZ", 0)),
			SpecularExponent: number("specularExponent", 1),
			CutoffAngle:      cutoff,
		}
	}
	return nil
}

// lightPoint maps a light position given in primitive units to user
// space. In bounding box units z scales with the normalized diagonal.
func (g *graph) lightPoint(x, y, z float64) geom.Point3 {
	if g.units != units.ObjectBoundingBox {
		return geom.Point3{X: x, Y: y, Z: z}
	}
	b := g.ctx.Bounds
	return geom.Point3{
		X: b.X + x*b.W,
		Y: b.Y + y*b.H,
		Z: z * math.Sqrt((b.W*b.W+b.H*b.H)/2),
	}
}
