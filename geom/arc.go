package geom

import "math"

// ArcTo appends an SVG elliptical arc from the current point to (x, y).
// The arc is converted from endpoint to center parameterization and
// approximated with at most 90 degree cubic segments.
// Out-of-range radii are scaled up as required by SVG; a zero radius
// degrades to a straight line.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) {
	x0, y0 := p.current.X, p.current.Y
	if x0 == x && y0 == y {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(x, y)
		return
	}

	phi := rotation * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	dx2 := (x0 - x) / 2
	dy2 := (y0 - y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (x0+x)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y0+y)/2

	theta1 := vectorAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	delta := vectorAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	segments := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	step := delta / float64(segments)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	t := theta1
	for i := 0; i < segments; i++ {
		cos1, sin1 := math.Cos(t), math.Sin(t)
		cos2, sin2 := math.Cos(t+step), math.Sin(t+step)

		e1x := cos1 - alpha*sin1
		e1y := sin1 + alpha*cos1
		e2x := cos2 + alpha*sin2
		e2y := sin2 - alpha*cos2

		c1 := ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, e1x, e1y)
		c2 := ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, e2x, e2y)
		end := ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, cos2, sin2)
		if i == segments-1 {
			end = Pt(x, y)
		}
		p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
		t += step
	}
}

func ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, ux, uy float64) Point {
	x := rx * ux
	y := ry * uy
	return Point{
		X: cosPhi*x - sinPhi*y + cx,
		Y: sinPhi*x + cosPhi*y + cy,
	}
}

func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
