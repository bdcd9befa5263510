package geom

import (
	"math"
	"testing"
)

func rectApprox(a, b Rect, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol &&
		math.Abs(a.W-b.W) < tol && math.Abs(a.H-b.H) < tol
}

func TestPathBoundsTight(t *testing.T) {
	p := NewPath()
	p.Ellipse(50, 50, 10, 20)
	got := p.Bounds()
	want := NewRect(40, 30, 20, 40)
	if !rectApprox(got, want, 1e-6) {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestPathBoundsCurveExtrema(t *testing.T) {
	// The control point sits far above the curve; the tight box stops at
	// the curve's apex (y = 50).
	p := NewPath()
	p.MoveTo(0, 100)
	p.QuadraticTo(50, 0, 100, 100)
	got := p.Bounds()
	want := NewRect(0, 50, 100, 50)
	if !rectApprox(got, want, 1e-9) {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestPathBoundsEmpty(t *testing.T) {
	if got := NewPath().Bounds(); !got.IsEmpty() {
		t.Errorf("Bounds() of empty path = %+v, want empty", got)
	}
}

func TestArcTo(t *testing.T) {
	// Half circle of radius 50 from (0,50) to (100,50) sweeping upwards.
	p := NewPath()
	p.MoveTo(0, 50)
	p.ArcTo(50, 50, 0, false, true, 100, 50)
	got := p.Bounds()
	want := NewRect(0, 0, 100, 50)
	if !rectApprox(got, want, 1e-3) {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	if end := p.CurrentPoint(); end != Pt(100, 50) {
		t.Errorf("CurrentPoint() = %+v, want {100 50}", end)
	}
}

func TestArcToScalesRadii(t *testing.T) {
	// Radii too small for the endpoints are scaled up to a half circle.
	p := NewPath()
	p.MoveTo(0, 0)
	p.ArcTo(1, 1, 0, false, false, 20, 0)
	got := p.Bounds()
	if math.Abs(got.H-10) > 1e-3 {
		t.Errorf("Bounds().H = %v, want 10", got.H)
	}
}

func TestArcToZeroRadius(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.ArcTo(0, 10, 0, false, false, 20, 0)
	if _, ok := p.Elements()[1].(LineTo); !ok {
		t.Errorf("element = %T, want LineTo", p.Elements()[1])
	}
}

func TestRoundedRectangleBounds(t *testing.T) {
	p := NewPath()
	p.RoundedRectangle(10, 10, 80, 40, 5, 5)
	if got := p.Bounds(); !rectApprox(got, NewRect(10, 10, 80, 40), 1e-9) {
		t.Errorf("Bounds() = %+v, want {10 10 80 40}", got)
	}
}

func TestClipPathEmptyStillValid(t *testing.T) {
	cp := NewClipPath()
	if !cp.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
	if p := cp.Path(); p == nil || !p.IsEmpty() {
		t.Errorf("Path() = %v, want non-nil empty path", p)
	}
}

func TestClipPathFlatten(t *testing.T) {
	r := NewPath()
	r.Rectangle(0, 0, 1, 1)
	cp := &ClipPath{
		Clips:     []PathClip{{Path: r, Transform: Translate(1, 0)}},
		Transform: BoundingBoxMatrix(NewRect(10, 10, 100, 100)),
	}
	got := cp.Path().Bounds()
	if !rectApprox(got, NewRect(110, 10, 100, 100), 1e-9) {
		t.Errorf("Path().Bounds() = %+v, want {110 10 100 100}", got)
	}
	if cp.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", cp.Depth())
	}
}
