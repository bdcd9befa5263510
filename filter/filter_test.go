package filter

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/units"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

type fakePicture struct{ name string }

func (p *fakePicture) CullRect() geom.Rect { return geom.NewRect(0, 0, 100, 100) }

type fakeSource struct {
	graphic, background paint.Picture
	fill, stroke        *paint.Paint
}

func (s *fakeSource) SourceGraphic() paint.Picture   { return s.graphic }
func (s *fakeSource) BackgroundImage() paint.Picture { return s.background }
func (s *fakeSource) FillPaint() *paint.Paint        { return s.fill }
func (s *fakeSource) StrokePaint() *paint.Paint      { return s.stroke }

var bounds = geom.NewRect(0, 0, 100, 100)

// evaluate applies the filter url(#id) of a fresh element in doc.
func evaluate(t *testing.T, doc string, filter string, src *fakeSource) Result {
	t.Helper()
	d, err := dom.DecodeString(doc)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	el := d.ByID("target")
	if el == nil {
		t.Fatal("no target element")
	}
	el.SetAttr("filter", filter)
	if src == nil {
		src = &fakeSource{graphic: &fakePicture{name: "graphic"}}
	}
	return Evaluate(Context{
		Element: el,
		Source:  src,
		Bounds:  bounds,
		Mapper:  units.NewMapper(geom.NewRect(0, 0, 200, 200), 0),
	})
}

func svg(body string) string {
	return `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` +
		body + `<rect id="target" width="100" height="100"/></svg>`
}

// find returns the first node of type T reachable from f.
func find[T paint.ImageFilter](f paint.ImageFilter) (T, bool) {
	var (
		out   T
		found bool
	)
	paint.Walk(f, func(n paint.ImageFilter) {
		if v, ok := n.(T); ok && !found {
			out, found = v, true
		}
	})
	return out, found
}

func output(t *testing.T, r Result) paint.ImageFilter {
	t.Helper()
	if !r.Drawable || r.Paint == nil {
		t.Fatalf("Evaluate = %+v, want drawable with paint", r)
	}
	return r.Paint.ImageFilter
}

func TestResultChaining(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f" color-interpolation-filters="sRGB">
		<feFlood flood-color="red" result="a"/>
		<feOffset dx="5"/>
		<feGaussianBlur stdDeviation="2"/>
		<feMerge><feMergeNode in="a"/><feMergeNode/></feMerge>
	</filter>`), "url(#f)", nil)

	merge, ok := output(t, r).(*paint.Merge)
	if !ok {
		t.Fatalf("output = %s, want merge", paint.Name(output(t, r)))
	}
	if len(merge.Filters) != 2 {
		t.Fatalf("merge inputs = %d, want 2", len(merge.Filters))
	}
	flood, ok := merge.Filters[0].(*paint.PaintSource)
	if !ok {
		t.Fatalf("merge input 0 = %s, want paint", paint.Name(merge.Filters[0]))
	}
	if diff := cmp.Diff(paint.RGBA{R: 1, A: 1}, flood.Paint.Color, approx); diff != "" {
		t.Errorf("flood color mismatch (-want +got):\n%s", diff)
	}
	blur, ok := merge.Filters[1].(*paint.Blur)
	if !ok {
		t.Fatalf("merge input 1 = %s, want blur", paint.Name(merge.Filters[1]))
	}
	off, ok := blur.Input.(*paint.Offset)
	if !ok {
		t.Fatalf("blur input = %s, want offset", paint.Name(blur.Input))
	}
	if off.Input != merge.Filters[0] {
		t.Error("offset input is not the named flood result")
	}
}

func TestFilterRegion(t *testing.T) {
	tests := []struct {
		name    string
		filters string
		region  geom.Rect
		crop    geom.Rect
	}{
		{
			name:    "defaults",
			filters: `<filter id="f"><feFlood/></filter>`,
			region:  geom.NewRect(-10, -10, 120, 120),
			crop:    geom.NewRect(-10, -10, 120, 120),
		},
		{
			name: "inherited",
			filters: `<filter id="f" y="5" xlink:href="#b"/>
				<filter id="b" width="50" primitiveUnits="objectBoundingBox" href="#c"/>
				<filter id="c" x="0" filterUnits="userSpaceOnUse"><feFlood x="0.5"/></filter>`,
			region: geom.NewRect(0, 5, 50, 240),
			crop:   geom.NewRect(50, 5, 50, 240),
		},
		{
			name:    "primitive subregion",
			filters: `<filter id="f" filterUnits="userSpaceOnUse" x="0" y="0" width="100" height="100"><feFlood x="10" y="20" width="30" height="40"/></filter>`,
			region:  geom.NewRect(0, 0, 100, 100),
			crop:    geom.NewRect(10, 20, 30, 40),
		},
		{
			name:    "percent subregion",
			filters: `<filter id="f"><feFlood width="10%"/></filter>`,
			region:  geom.NewRect(-10, -10, 120, 120),
			crop:    geom.NewRect(-10, -10, 20, 120),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := evaluate(t, svg(tt.filters), "url(#f)", nil)
			if diff := cmp.Diff(tt.region, r.Region, approx); diff != "" {
				t.Errorf("Region mismatch (-want +got):\n%s", diff)
			}
			flood, ok := find[*paint.PaintSource](output(t, r))
			if !ok {
				t.Fatal("no flood node")
			}
			if flood.Crop.Rect == nil {
				t.Fatal("flood has no crop")
			}
			if diff := cmp.Diff(tt.crop, *flood.Crop.Rect, approx); diff != "" {
				t.Errorf("flood crop mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultSubregion(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f" filterUnits="userSpaceOnUse" x="0" y="0" width="100" height="100" color-interpolation-filters="sRGB">
		<feFlood x="0" y="0" width="10" height="10" result="a"/>
		<feFlood x="20" y="20" width="10" height="10" result="b"/>
		<feOffset in="a" result="one"/>
		<feBlend in="a" in2="b" result="two"/>
		<feBlend in="a" in2="SourceGraphic" result="three"/>
		<feMerge><feMergeNode in="one"/><feMergeNode in="two"/><feMergeNode in="three"/></feMerge>
	</filter>`), "url(#f)", nil)

	merge, ok := output(t, r).(*paint.Merge)
	if !ok || len(merge.Filters) != 3 {
		t.Fatalf("output = %s, want merge of 3", paint.Name(output(t, r)))
	}
	crop := func(f paint.ImageFilter) geom.Rect {
		switch n := f.(type) {
		case *paint.Offset:
			return *n.Crop.Rect
		case *paint.Blend:
			return *n.Crop.Rect
		}
		t.Fatalf("unexpected node %s", paint.Name(f))
		return geom.Rect{}
	}
	want := []geom.Rect{
		geom.NewRect(0, 0, 10, 10),
		geom.NewRect(0, 0, 30, 30),
		geom.NewRect(0, 0, 100, 100),
	}
	for i, w := range want {
		if diff := cmp.Diff(w, crop(merge.Filters[i]), approx); diff != "" {
			t.Errorf("input %d crop mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestNotDrawable(t *testing.T) {
	tests := []struct {
		name    string
		filters string
		filter  string
	}{
		{"missing", ``, "url(#f)"},
		{"not a filter", `<g id="f"/>`, "url(#f)"},
		{"no children", `<filter id="f"/>`, "url(#f)"},
		{"self reference", `<filter id="f" href="#f"/>`, "url(#f)"},
		{"cycle", `<filter id="f" href="#g"/><filter id="g" href="#f"/>`, "url(#f)"},
		{"only unknown children", `<filter id="f"><desc/></filter>`, "url(#f)"},
		{"all dropped", `<filter id="f"><feFlood width="0"/></filter>`, "url(#f)"},
		{"unresolved input", `<filter id="f"><feOffset in="nope"/></filter>`, "url(#f)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := evaluate(t, svg(tt.filters), tt.filter, nil)
			if r.Drawable || r.Paint != nil {
				t.Errorf("Evaluate = %+v, want not drawable", r)
			}
		})
	}
}

func TestDrawableWithoutPaint(t *testing.T) {
	tests := []struct {
		name    string
		filters string
		filter  string
	}{
		{"none", `<filter id="f"><feFlood/></filter>`, "none"},
		{"empty", `<filter id="f"><feFlood/></filter>`, ""},
		{"zero width region", `<filter id="f" width="0"><feFlood/></filter>`, "url(#f)"},
		{"negative height region", `<filter id="f" height="-1"><feFlood/></filter>`, "url(#f)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := evaluate(t, svg(tt.filters), tt.filter, nil)
			if !r.Drawable || r.Paint != nil {
				t.Errorf("Evaluate = %+v, want drawable without paint", r)
			}
		})
	}
}

func TestChildrenInheritedThroughHref(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f" href="#g"/><filter id="g" href="#g"><feFlood/></filter>`), "url(#f)", nil)
	if _, ok := find[*paint.PaintSource](output(t, r)); !ok {
		t.Error("inherited feFlood not evaluated")
	}
}

func TestDroppedPrimitiveResult(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f" color-interpolation-filters="sRGB">
		<feFlood width="0" result="z"/>
		<feOffset in="z"/>
		<feColorMatrix type="saturate" values="0.5"/>
	</filter>`), "url(#f)", nil)

	cm, ok := output(t, r).(*paint.ColorFilterImage)
	if !ok {
		t.Fatalf("output = %s, want color-filter", paint.Name(output(t, r)))
	}
	src, ok := cm.Input.(*paint.PictureSource)
	if !ok {
		t.Fatalf("input = %s, want picture", paint.Name(cm.Input))
	}
	if p := src.Picture.(*fakePicture); p.name != "graphic" {
		t.Errorf("input picture = %q, want graphic", p.name)
	}
	if _, ok := find[*paint.Offset](cm); ok {
		t.Error("offset of a dropped result is present")
	}
}

var colors = []paint.RGBA{
	{R: 0.5, G: 0.25, B: 0.75, A: 1},
	{R: 1, G: 0, B: 0.2, A: 0.5},
	{R: 0.01, G: 0.99, B: 0.5, A: 1},
}

func TestColorSpaceRoundTrip(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f">
		<feColorMatrix color-interpolation-filters="sRGB"/>
		<feColorMatrix color-interpolation-filters="linearRGB"/>
		<feColorMatrix color-interpolation-filters="sRGB"/>
	</filter>`), "url(#f)", nil)
	f := output(t, r)

	conversions := 0
	paint.Walk(f, func(n paint.ImageFilter) {
		if cf, ok := n.(*paint.ColorFilterImage); ok {
			switch cf.Filter.(type) {
			case paint.SRGBToLinearGamma, paint.LinearToSRGBGamma:
				conversions++
			}
		}
	})
	if conversions != 2 {
		t.Errorf("conversions = %d, want 2", conversions)
	}

	for _, c := range colors {
		got, ok := paint.EvalColor(f, c)
		if !ok {
			t.Fatalf("EvalColor(%v) not evaluable", c)
		}
		if diff := cmp.Diff(c, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("EvalColor(%v) mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestLinearOutputConverted(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f"><feFlood flood-color="#808080"/></filter>`), "url(#f)", nil)
	got, ok := paint.EvalColor(output(t, r), paint.Transparent)
	if !ok {
		t.Fatal("EvalColor not evaluable")
	}
	v := 128.0 / 255
	if diff := cmp.Diff(paint.RGBA{R: v, G: v, B: v, A: 1}, got, approx); diff != "" {
		t.Errorf("flood color mismatch (-want +got):\n%s", diff)
	}
}

func TestPassthrough(t *testing.T) {
	tests := []struct {
		name      string
		primitive string
	}{
		{"zero blur", `<feGaussianBlur stdDeviation="0"/>`},
		{"negative blur", `<feGaussianBlur stdDeviation="-2"/>`},
		{"no blur", `<feGaussianBlur/>`},
		{"zero radius", `<feMorphology radius="0 3"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := evaluate(t, svg(`<filter id="f">`+tt.primitive+`</filter>`), "url(#f)", nil)
			f := output(t, r)
			if _, ok := find[*paint.Blur](f); ok {
				t.Error("blur node present")
			}
			if _, ok := find[*paint.Morphology](f); ok {
				t.Error("morphology node present")
			}
			for _, c := range colors {
				got, _ := paint.EvalColor(f, c)
				if diff := cmp.Diff(c, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
					t.Errorf("EvalColor(%v) mismatch (-want +got):\n%s", c, diff)
				}
			}
		})
	}
}

func TestBlurObjectBoundingBox(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f" primitiveUnits="objectBoundingBox"><feGaussianBlur stdDeviation="0.1 0.05"/></filter>`), "url(#f)", nil)
	blur, ok := find[*paint.Blur](output(t, r))
	if !ok {
		t.Fatal("no blur node")
	}
	if blur.SigmaX != 10 || blur.SigmaY != 5 {
		t.Errorf("sigma = (%v, %v), want (10, 5)", blur.SigmaX, blur.SigmaY)
	}
}

func TestStandardInputs(t *testing.T) {
	fill := paint.NewPaint(paint.RGBA{G: 1, A: 1})
	fill.Style = paint.StyleStroke
	src := &fakeSource{graphic: &fakePicture{name: "graphic"}, fill: fill}

	r := evaluate(t, svg(`<filter id="f" color-interpolation-filters="sRGB">
		<feMerge>
			<feMergeNode in="SourceAlpha"/>
			<feMergeNode in="BackgroundImage"/>
			<feMergeNode in="FillPaint"/>
			<feMergeNode in="StrokePaint"/>
		</feMerge>
	</filter>`), "url(#f)", src)
	merge, ok := output(t, r).(*paint.Merge)
	if !ok || len(merge.Filters) != 4 {
		t.Fatalf("output = %s, want merge of 4", paint.Name(output(t, r)))
	}

	alpha, ok := merge.Filters[0].(*paint.ColorFilterImage)
	if !ok {
		t.Fatalf("SourceAlpha = %s, want color-filter", paint.Name(merge.Filters[0]))
	}
	if m, ok := alpha.Filter.(*paint.MatrixColorFilter); !ok || m.Matrix != paint.AlphaOnlyMatrix {
		t.Errorf("SourceAlpha filter = %#v, want alpha-only matrix", alpha.Filter)
	}
	if _, ok := alpha.Input.(*paint.PictureSource); !ok {
		t.Errorf("SourceAlpha input = %s, want picture", paint.Name(alpha.Input))
	}

	for i, want := range []paint.RGBA{paint.Transparent, {G: 1, A: 1}, paint.Transparent} {
		ps, ok := merge.Filters[i+1].(*paint.PaintSource)
		if !ok {
			t.Fatalf("input %d = %s, want paint", i+1, paint.Name(merge.Filters[i+1]))
		}
		if diff := cmp.Diff(want, ps.Paint.Color, approx); diff != "" {
			t.Errorf("input %d color mismatch (-want +got):\n%s", i+1, diff)
		}
		if ps.Paint.Style != paint.StyleFill {
			t.Errorf("input %d style = %v, want fill", i+1, ps.Paint.Style)
		}
		if diff := cmp.Diff(r.Region, *ps.Crop.Rect, approx); diff != "" {
			t.Errorf("input %d crop mismatch (-want +got):\n%s", i+1, diff)
		}
	}
	if fill.Style != paint.StyleStroke {
		t.Error("FillPaint input modified the source paint")
	}
}

func TestConvolveMatrix(t *testing.T) {
	tests := []struct {
		name      string
		primitive string
		want      *paint.MatrixConvolution
	}{
		{
			name:      "defaults",
			primitive: `<feConvolveMatrix kernelMatrix="1 2 3 4 5 6 7 8 9"/>`,
			want: &paint.MatrixConvolution{
				Width: 3, Height: 3,
				Kernel:        []float64{9, 8, 7, 6, 5, 4, 3, 2, 1},
				Gain:          1.0 / 45,
				TargetX:       1,
				TargetY:       1,
				Tile:          paint.TileClamp,
				ConvolveAlpha: true,
			},
		},
		{
			name:      "explicit",
			primitive: `<feConvolveMatrix order="2 1" kernelMatrix="1 -1" divisor="4" bias="0.5" targetX="0" edgeMode="wrap" preserveAlpha="true"/>`,
			want: &paint.MatrixConvolution{
				Width: 2, Height: 1,
				Kernel: []float64{-1, 1},
				Gain:   0.25,
				Bias:   0.5,
				Tile:   paint.TileRepeat,
			},
		},
		{
			name:      "zero sum",
			primitive: `<feConvolveMatrix order="2" kernelMatrix="1 -1 1 -1" edgeMode="none"/>`,
			want: &paint.MatrixConvolution{
				Width: 2, Height: 2,
				Kernel:        []float64{-1, 1, -1, 1},
				Gain:          1,
				TargetX:       1,
				TargetY:       1,
				Tile:          paint.TileDecal,
				ConvolveAlpha: true,
			},
		},
		{"target out of range", `<feConvolveMatrix kernelMatrix="1 2 3 4 5 6 7 8 9" targetX="3"/>`, nil},
		{"negative target", `<feConvolveMatrix kernelMatrix="1 2 3 4 5 6 7 8 9" targetY="-1"/>`, nil},
		{"short kernel", `<feConvolveMatrix kernelMatrix="1 2 3"/>`, nil},
		{"fractional order", `<feConvolveMatrix order="1.5" kernelMatrix="1"/>`, nil},
	}
	ignore := cmpopts.IgnoreFields(paint.MatrixConvolution{}, "Input", "Crop")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := evaluate(t, svg(`<filter id="f">`+tt.primitive+`</filter>`), "url(#f)", nil)
			if tt.want == nil {
				if r.Drawable {
					t.Errorf("Evaluate = %+v, want not drawable", r)
				}
				return
			}
			got, ok := find[*paint.MatrixConvolution](output(t, r))
			if !ok {
				t.Fatal("no convolution node")
			}
			if diff := cmp.Diff(tt.want, got, ignore, approx); diff != "" {
				t.Errorf("convolution mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDropShadow(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f" color-interpolation-filters="sRGB">
		<feDropShadow flood-color="blue" flood-opacity="0.5" dx="4"/>
	</filter>`), "url(#f)", nil)
	merge, ok := output(t, r).(*paint.Merge)
	if !ok || len(merge.Filters) != 2 {
		t.Fatalf("output = %s, want merge of 2", paint.Name(output(t, r)))
	}
	if _, ok := merge.Filters[1].(*paint.PictureSource); !ok {
		t.Errorf("top = %s, want source graphic", paint.Name(merge.Filters[1]))
	}
	off, ok := merge.Filters[0].(*paint.Offset)
	if !ok {
		t.Fatalf("shadow = %s, want offset", paint.Name(merge.Filters[0]))
	}
	if off.Dx != 4 || off.Dy != 2 {
		t.Errorf("offset = (%v, %v), want (4, 2)", off.Dx, off.Dy)
	}
	blur, ok := off.Input.(*paint.Blur)
	if !ok {
		t.Fatalf("offset input = %s, want blur", paint.Name(off.Input))
	}
	if blur.SigmaX != 2 || blur.SigmaY != 2 {
		t.Errorf("sigma = (%v, %v), want (2, 2)", blur.SigmaX, blur.SigmaY)
	}
	got, ok := paint.EvalColor(blur.Input, paint.RGBA{R: 1, A: 0.8})
	if !ok {
		t.Fatal("shadow color not evaluable")
	}
	if diff := cmp.Diff(paint.RGBA{B: 1, A: 0.4}, got, approx); diff != "" {
		t.Errorf("shadow color mismatch (-want +got):\n%s", diff)
	}
}

func TestComposite(t *testing.T) {
	tests := []struct {
		operator string
		mode     paint.BlendMode
	}{
		{"", paint.BlendSourceOver},
		{"in", paint.BlendSourceIn},
		{"out", paint.BlendSourceOut},
		{"atop", paint.BlendSourceAtop},
		{"xor", paint.BlendXor},
		{"lighter", paint.BlendPlus},
		{"bogus", paint.BlendSourceOver},
	}
	for _, tt := range tests {
		t.Run(tt.operator, func(t *testing.T) {
			r := evaluate(t, svg(`<filter id="f" color-interpolation-filters="sRGB"><feFlood result="fl"/>
				<feComposite in="SourceGraphic" in2="fl" operator="`+tt.operator+`"/></filter>`), "url(#f)", nil)
			b, ok := output(t, r).(*paint.Blend)
			if !ok {
				t.Fatalf("output = %s, want blend", paint.Name(output(t, r)))
			}
			if b.Mode != tt.mode {
				t.Errorf("mode = %v, want %v", b.Mode, tt.mode)
			}
			if _, ok := b.Foreground.(*paint.PictureSource); !ok {
				t.Errorf("foreground = %s, want picture", paint.Name(b.Foreground))
			}
			if _, ok := b.Background.(*paint.PaintSource); !ok {
				t.Errorf("background = %s, want paint", paint.Name(b.Background))
			}
		})
	}

	r := evaluate(t, svg(`<filter id="f" color-interpolation-filters="sRGB">
		<feComposite operator="arithmetic" k2="0.5" k3="0.5" in2="SourceGraphic"/></filter>`), "url(#f)", nil)
	a, ok := output(t, r).(*paint.Arithmetic)
	if !ok {
		t.Fatalf("output = %s, want arithmetic", paint.Name(output(t, r)))
	}
	if a.K1 != 0 || a.K2 != 0.5 || a.K3 != 0.5 || a.K4 != 0 || !a.EnforcePremul {
		t.Errorf("arithmetic = %+v", a)
	}
}

func TestTransferTable(t *testing.T) {
	tests := []struct {
		fn   string
		want map[int]uint8
	}{
		{`<feFuncR type="table" tableValues="0 1"/>`, map[int]uint8{0: 0, 128: 128, 255: 255}},
		{`<feFuncR type="table" tableValues="1 0"/>`, map[int]uint8{0: 255, 255: 0}},
		{`<feFuncR type="discrete" tableValues="0 1"/>`, map[int]uint8{0: 0, 100: 0, 200: 255, 255: 255}},
		{`<feFuncR type="linear" slope="0.5" intercept="0.25"/>`, map[int]uint8{0: 64, 255: 191}},
		{`<feFuncR type="gamma" exponent="2"/>`, map[int]uint8{0: 0, 128: 64, 255: 255}},
		{`<feFuncR type="linear" slope="2"/>`, map[int]uint8{200: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			d, err := dom.DecodeString(`<svg xmlns="http://www.w3.org/2000/svg">` + tt.fn + `</svg>`)
			if err != nil {
				t.Fatalf("DecodeString: %v", err)
			}
			table := transferTable(d.Root.Children()[0])
			if table == nil {
				t.Fatal("transferTable = nil")
			}
			for i, want := range tt.want {
				if table[i] != want {
					t.Errorf("table[%d] = %d, want %d", i, table[i], want)
				}
			}
		})
	}

	for _, fn := range []string{`<feFuncR/>`, `<feFuncR type="identity"/>`, `<feFuncR type="table"/>`} {
		d, err := dom.DecodeString(`<svg xmlns="http://www.w3.org/2000/svg">` + fn + `</svg>`)
		if err != nil {
			t.Fatalf("DecodeString: %v", err)
		}
		if table := transferTable(d.Root.Children()[0]); table != nil {
			t.Errorf("transferTable(%s) != nil", fn)
		}
	}
}

func TestLightSources(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   paint.Light
	}{
		{
			name:   "distant",
			filter: `<filter id="f"><feDiffuseLighting><feDistantLight azimuth="90" elevation="0"/></feDiffuseLighting></filter>`,
			want:   paint.DistantLight{Direction: geom.Point3{X: 0, Y: 1, Z: 0}},
		},
		{
			name:   "point",
			filter: `<filter id="f"><feDiffuseLighting><fePointLight x="10" y="20" z="30"/></feDiffuseLighting></filter>`,
			want:   paint.PointLight{Location: geom.Point3{X: 10, Y: 20, Z: 30}},
		},
		{
			name: "spot bounding box",
			filter: `<filter id="f" primitiveUnits="objectBoundingBox"><feSpecularLighting>
				<feSpotLight x="0.5" y="0.25" z="1" pointsAtX="1" limitingConeAngle="-30"/>
			</feSpecularLighting></filter>`,
			want: paint.SpotLight{
				Location:         geom.Point3{X: 50, Y: 25, Z: 100},
				Target:           geom.Point3{X: 100, Y: 0, Z: 0},
				SpecularExponent: 1,
				CutoffAngle:      30,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := evaluate(t, svg(tt.filter), "url(#f)", nil)
			l, ok := find[*paint.Lighting](output(t, r))
			if !ok {
				t.Fatal("no lighting node")
			}
			if diff := cmp.Diff(tt.want, l.Light, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("light mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLightingAttributes(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f" color-interpolation-filters="sRGB"><feSpecularLighting specularExponent="500" lighting-color="red">
		<feDistantLight/></feSpecularLighting></filter>`), "url(#f)", nil)
	l, ok := find[*paint.Lighting](output(t, r))
	if !ok {
		t.Fatal("no lighting node")
	}
	if l.Kind != paint.Specular || l.Shininess != 128 || l.Constant != 1 || l.SurfaceScale != 1 {
		t.Errorf("lighting = %+v", l)
	}
	if diff := cmp.Diff(paint.RGBA{R: 1, A: 1}, l.Color, approx); diff != "" {
		t.Errorf("color mismatch (-want +got):\n%s", diff)
	}

	for _, f := range []string{
		`<filter id="f"><feDiffuseLighting/></filter>`,
		`<filter id="f"><feDiffuseLighting diffuseConstant="-1"><feDistantLight/></feDiffuseLighting></filter>`,
	} {
		if r := evaluate(t, svg(f), "url(#f)", nil); r.Drawable {
			t.Errorf("Evaluate(%s) drawable, want dropped", f)
		}
	}
}

func TestTurbulence(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f"><feTurbulence type="fractalNoise" baseFrequency="0.05 0.1" numOctaves="3" seed="2.7" stitchTiles="stitch"/></filter>`), "url(#f)", nil)
	ps, ok := find[*paint.PaintSource](output(t, r))
	if !ok {
		t.Fatal("no paint node")
	}
	want := &paint.Turbulence{Kind: paint.FractalNoise, BaseFreqX: 0.05, BaseFreqY: 0.1, Octaves: 3, Seed: 2}
	if diff := cmp.Diff(paint.Shader(want), ps.Paint.Shader, approx); diff != "" {
		t.Errorf("turbulence mismatch (-want +got):\n%s", diff)
	}

	if r := evaluate(t, svg(`<filter id="f"><feTurbulence baseFrequency="-1"/></filter>`), "url(#f)", nil); r.Drawable {
		t.Error("negative baseFrequency drawable, want dropped")
	}
}

func TestDisplacementMapScale(t *testing.T) {
	r := evaluate(t, svg(`<filter id="f" primitiveUnits="objectBoundingBox">
		<feFlood result="map"/>
		<feDisplacementMap in="SourceGraphic" in2="map" scale="0.1" xChannelSelector="R"/>
	</filter>`), "url(#f)", nil)
	d, ok := find[*paint.DisplacementMap](output(t, r))
	if !ok {
		t.Fatal("no displacement node")
	}
	if math.Abs(d.Scale-10) > 1e-9 || d.XChannel != paint.ChannelR || d.YChannel != paint.ChannelA {
		t.Errorf("displacement = %+v", d)
	}
}
