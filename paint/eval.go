package paint

// EvalColor evaluates f for a layer uniformly filled with src, returning
// the resulting unpremultiplied color. Picture sources and nil inputs
// evaluate to src. Spatial nodes that leave a uniform image unchanged
// (blur, morphology, offset, tile) pass their input through.
//
// It reports false when the graph contains a node whose result depends
// on more than the input color, such as lighting or convolution.
func EvalColor(f ImageFilter, src RGBA) (RGBA, bool) {
	memo := make(map[ImageFilter]RGBA)
	return evalColor(f, src, memo)
}

func evalColor(f ImageFilter, src RGBA, memo map[ImageFilter]RGBA) (RGBA, bool) {
	if f == nil {
		return src, true
	}
	if c, ok := memo[f]; ok {
		return c, true
	}
	var (
		out RGBA
		ok  = true
	)
	input := func(in ImageFilter) RGBA {
		if !ok {
			return RGBA{}
		}
		var c RGBA
		c, ok = evalColor(in, src, memo)
		return c
	}
	switch n := f.(type) {
	case *PictureSource:
		out = src
	case *PaintSource:
		if n.Paint == nil || n.Paint.Shader != nil {
			return RGBA{}, false
		}
		out = n.Paint.Color
	case *ColorFilterImage:
		out = n.Filter.Apply(input(n.Input))
	case *Blend:
		bg, fg := input(n.Background), input(n.Foreground)
		out = Composite(n.Mode, fg.Premultiply(), bg.Premultiply()).Unpremultiply()
	case *Arithmetic:
		i1, i2 := input(n.Foreground).Premultiply(), input(n.Background).Premultiply()
		k := func(a, b float64) float64 {
			return clamp01(n.K1*a*b + n.K2*a + n.K3*b + n.K4)
		}
		r := RGBA{R: k(i1.R, i2.R), G: k(i1.G, i2.G), B: k(i1.B, i2.B), A: k(i1.A, i2.A)}
		if n.EnforcePremul {
			r.R, r.G, r.B = min(r.R, r.A), min(r.G, r.A), min(r.B, r.A)
		}
		out = r.Unpremultiply()
	case *Merge:
		var acc RGBA
		for _, in := range n.Filters {
			acc = Composite(BlendSourceOver, input(in).Premultiply(), acc)
		}
		out = acc.Unpremultiply()
	case *Blur:
		out = input(n.Input)
	case *Morphology:
		out = input(n.Input)
	case *Offset:
		out = input(n.Input)
	case *Tile:
		out = input(n.Input)
	default:
		return RGBA{}, false
	}
	if !ok {
		return RGBA{}, false
	}
	memo[f] = out
	return out, true
}
