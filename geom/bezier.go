package geom

import "math"

func evalQuad(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
		Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
	}
}

func evalCubic(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// quadExtrema returns parameter values in (0, 1) where the derivative of
// the quadratic is zero on either axis.
func quadExtrema(p0, p1, p2 Point) []float64 {
	var result []float64
	d0 := p1.Sub(p0)
	d1 := p2.Sub(p1)
	dd := d1.Sub(d0)
	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	return result
}

// cubicExtrema returns up to four parameter values in (0, 1) where the
// derivative of the cubic is zero on either axis.
func cubicExtrema(p0, p1, p2, p3 Point) []float64 {
	result := make([]float64, 0, 4)
	d0 := p1.Sub(p0)
	d1 := p2.Sub(p1)
	d2 := p3.Sub(p2)

	result = appendUnitRoots(result, d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)
	result = appendUnitRoots(result, d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)
	return result
}

// appendUnitRoots appends the roots of a*t^2 + b*t + c inside (0, 1).
func appendUnitRoots(dst []float64, a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return dst
		}
		if t := -c / b; t > 0 && t < 1 {
			dst = append(dst, t)
		}
		return dst
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return dst
	}
	sq := math.Sqrt(disc)
	for _, t := range [2]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if t > 0 && t < 1 {
			dst = append(dst, t)
		}
	}
	return dst
}
