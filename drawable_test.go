package svgfx

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/recording"
	"github.com/gogpu/svgfx/recording/backends/trace"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func decode(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.DecodeString(s)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	return doc
}

func build(t *testing.T, s string, opts ...Option) *Drawable {
	t.Helper()
	root, err := Build(decode(t, s).Root, geom.NewRect(0, 0, 100, 100), opts...)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(root.Close)
	return root
}

// byID returns the drawable of the element with the given id.
func byID(d *Drawable, id string) *Drawable {
	if d.el.ID == id {
		return d
	}
	for _, c := range d.children {
		if found := byID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func all(d *Drawable) []*Drawable {
	out := []*Drawable{d}
	for _, c := range d.children {
		out = append(out, all(c)...)
	}
	return out
}

func name(d *Drawable) string {
	if d == nil {
		return "nil"
	}
	return d.el.Tag + "#" + d.el.ID
}

func types(cmds []recording.Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Type().String()
	}
	return out
}

func record(d *Drawable, ignore Attributes, until *Drawable) *recording.Recorder {
	rec := recording.NewRecorder(geom.NewRect(0, 0, 100, 100))
	d.Draw(rec, ignore, until)
	return rec
}

const everything = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
	<clipPath id="c"><rect width="50" height="50"/></clipPath>
	<mask id="m"><rect width="100" height="100" fill="white"/></mask>
	<filter id="f"><feOffset dx="1"/></filter>
	<rect id="r" width="10" height="10" clip-path="url(#c)" mask="url(#m)" opacity="0.5" filter="url(#f)"/>
</svg>`

func TestDrawProtocol(t *testing.T) {
	root := build(t, everything)
	rec := record(root, 0, nil)

	want := []string{
		"Save", "ClipRect",
		"Save", "ClipPath", "SaveLayer", "SaveLayer", "ClipRect", "SaveLayer",
		"DrawPath",
		"Restore", "Restore",
		"SaveLayer",
		"Save", "ClipRect",
		"Save", "DrawPath", "Restore",
		"Restore",
		"Restore", "Restore", "Restore",
		"Restore",
	}
	cmds := rec.Commands()
	if diff := cmp.Diff(want, types(cmds)); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}

	res := rec.Resources()
	if p := res.GetPaint(cmds[4].(recording.SaveLayerCommand).Paint); p == nil || p.Blend != paint.BlendSourceOver || p.Color.A != 1 {
		t.Errorf("mask content layer paint = %+v, want opaque source-over", p)
	}
	if p := res.GetPaint(cmds[5].(recording.SaveLayerCommand).Paint); p == nil || p.Color.A != 0.5 {
		t.Errorf("opacity layer paint = %+v, want alpha 0.5", p)
	}
	if diff := cmp.Diff(geom.NewRect(-1, -1, 12, 12), cmds[6].(recording.ClipRectCommand).Rect, approx); diff != "" {
		t.Errorf("filter region mismatch (-want +got):\n%s", diff)
	}
	if p := res.GetPaint(cmds[7].(recording.SaveLayerCommand).Paint); p == nil || p.ImageFilter == nil {
		t.Errorf("filter layer paint = %+v, want image filter", p)
	}
	mp := res.GetPaint(cmds[11].(recording.SaveLayerCommand).Paint)
	if mp == nil || mp.Blend != paint.BlendDestinationIn {
		t.Fatalf("mask layer paint = %+v, want destination-in", mp)
	}
	if _, ok := mp.ColorFilter.(paint.LumaColorFilter); !ok {
		t.Errorf("mask color filter = %T, want LumaColorFilter", mp.ColorFilter)
	}
}

func TestDrawIgnore(t *testing.T) {
	tests := []struct {
		ignore Attributes
		want   []string
	}{
		{
			ignore: Mask | Opacity | Filter | ClipPath,
			want:   []string{"Save", "ClipRect", "Save", "DrawPath", "Restore", "Restore"},
		},
		{
			ignore: Mask | Filter,
			want:   []string{"Save", "ClipRect", "Save", "ClipPath", "SaveLayer", "DrawPath", "Restore", "Restore", "Restore"},
		},
	}
	for _, tt := range tests {
		root := build(t, everything)
		if diff := cmp.Diff(tt.want, types(record(root, tt.ignore, nil).Commands())); diff != "" {
			t.Errorf("Draw(ignore=%b) mismatch (-want +got):\n%s", tt.ignore, diff)
		}

		// Ignored at build time, the attributes are never resolved.
		root = build(t, everything, WithIgnore(tt.ignore))
		if diff := cmp.Diff(tt.want, types(record(root, 0, nil).Commands())); diff != "" {
			t.Errorf("WithIgnore(%b) mismatch (-want +got):\n%s", tt.ignore, diff)
		}
	}
}

const nested = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="100" height="100">
	<defs>
		<clipPath id="c"><circle cx="5" cy="5" r="5"/></clipPath>
		<mask id="m" maskContentUnits="objectBoundingBox"><rect width="1" height="1" fill="white" opacity="0.5"/></mask>
		<filter id="f"><feGaussianBlur stdDeviation="2"/><feBlend in2="BackgroundImage"/></filter>
		<rect id="proto" width="5" height="5"/>
	</defs>
	<g id="outer" enable-background="new" opacity="0.8" mask="url(#m)">
		<rect id="a" width="10" height="10" clip-path="url(#c)"/>
		<g id="inner" transform="translate(10 10)" filter="url(#f)" clip-path="url(#c)">
			<rect id="b" width="10" height="10" mask="url(#m)" opacity="0.3"/>
			<use id="u" xlink:href="#proto" x="3" filter="url(#f)"/>
		</g>
		<svg id="s" x="50" width="20" height="20" viewBox="0 0 10 10">
			<rect id="d" width="10" height="10" filter="url(#f)" mask="url(#m)"/>
		</svg>
	</g>
	<rect id="e" x="80" width="10" height="10" opacity="0.1"/>
</svg>`

func TestDrawBalanced(t *testing.T) {
	root := build(t, nested)
	targets := append([]*Drawable{nil}, all(root)...)

	for ignore := Attributes(0); ignore < 16; ignore++ {
		for _, until := range targets {
			rec := record(root, ignore, until)
			if n := rec.SaveCount(); n != 0 {
				t.Errorf("ignore=%04b until=%s: save count = %d, want 0", ignore, name(until), n)
			}
			saves, restores := 0, 0
			for _, c := range rec.Commands() {
				switch c.Type() {
				case recording.CmdSave, recording.CmdSaveLayer:
					saves++
				case recording.CmdRestore:
					restores++
				}
			}
			if saves != restores {
				t.Errorf("ignore=%04b until=%s: saves = %d, restores = %d", ignore, name(until), saves, restores)
			}

			b := trace.New()
			if err := b.Begin(100, 100); err != nil {
				t.Fatalf("Begin: %v", err)
			}
			root.Draw(b, ignore, until)
			if b.Saves != b.Restores || b.SaveCount() != 0 {
				t.Errorf("trace ignore=%04b until=%s: saves = %d, restores = %d", ignore, name(until), b.Saves, b.Restores)
			}
		}
	}
}

func TestDrawTruncation(t *testing.T) {
	root := build(t, `<svg xmlns="http://www.w3.org/2000/svg">
		<g>
			<rect id="a" width="10" height="10"/>
			<g><rect id="b" width="10" height="10"/><rect id="b2" width="10" height="10"/></g>
		</g>
		<rect id="c" width="10" height="10"/>
	</svg>`)

	tests := []struct {
		until string
		paths int
	}{
		{"", 4},
		{"a", 0},
		{"b", 1},
		{"b2", 2},
		{"c", 3},
	}
	for _, tt := range tests {
		var until *Drawable
		if tt.until != "" {
			until = byID(root, tt.until)
			if until == nil {
				t.Fatalf("no drawable %q", tt.until)
			}
		}
		paths := 0
		for _, c := range record(root, 0, until).Commands() {
			if c.Type() == recording.CmdDrawPath {
				paths++
			}
		}
		if paths != tt.paths {
			t.Errorf("Draw(until=%q) paths = %d, want %d", tt.until, paths, tt.paths)
		}
	}
}

const maskedGroup = `<svg xmlns="http://www.w3.org/2000/svg">
	<mask id="m"><rect width="100" height="100" fill="white"/></mask>
	<g id="bg" enable-background="new">
		<g mask="url(#m)">
			<rect id="a" width="10" height="10"/>
			<rect id="t" width="10" height="10"/>
		</g>
	</g>
</svg>`

// maskLayers counts the destination-in layers of cmds.
func maskLayers(cmds []recording.Command, res *recording.ResourcePool) int {
	n := 0
	for _, c := range cmds {
		sl, ok := c.(recording.SaveLayerCommand)
		if !ok {
			continue
		}
		if p := res.GetPaint(sl.Paint); p != nil && p.Blend == paint.BlendDestinationIn {
			n++
		}
	}
	return n
}

func TestDrawTruncationMasked(t *testing.T) {
	root := build(t, maskedGroup)
	rec := record(root, 0, byID(root, "t"))
	cmds := rec.Commands()
	if n := maskLayers(cmds, rec.Resources()); n != 1 {
		t.Errorf("mask layers = %d, want 1", n)
	}
	saves, restores := 0, 0
	for _, c := range cmds {
		switch c.Type() {
		case recording.CmdSave, recording.CmdSaveLayer:
			saves++
		case recording.CmdRestore:
			restores++
		}
	}
	if saves != restores {
		t.Errorf("saves = %d, restores = %d", saves, restores)
	}
}

func TestBuildNotSVG(t *testing.T) {
	doc := decode(t, `<g xmlns="http://www.w3.org/2000/svg"/>`)
	if _, err := Build(doc.Root, geom.NewRect(0, 0, 10, 10)); !errors.Is(err, ErrNotSVG) {
		t.Errorf("Build(<g>) error = %v, want ErrNotSVG", err)
	}
	if _, err := Build(nil, geom.NewRect(0, 0, 10, 10)); !errors.Is(err, ErrNotSVG) {
		t.Errorf("Build(nil) error = %v, want ErrNotSVG", err)
	}
}

func TestBuildKinds(t *testing.T) {
	root := build(t, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
		<symbol id="sym" viewBox="0 0 10 10"><rect id="symrect" width="10" height="10"/></symbol>
		<g id="g"><rect id="r" width="1" height="1"/><text>ignored</text><unknown/></g>
		<switch id="sw"><circle id="first" r="1"/><circle id="second" r="1"/></switch>
		<use id="u" xlink:href="#sym" width="20" height="20"/>
		<rect id="hidden" width="1" height="1" display="none"/>
		<rect id="degenerate" width="0" height="1"/>
		<a id="link"><path id="p" d="M0 0 L1 1"/></a>
	</svg>`)

	tests := []struct {
		id   string
		kind Kind
		n    int
	}{
		{"g", KindGroup, 1},
		{"sw", KindGroup, 1},
		{"first", KindShape, 0},
		{"u", KindUse, 1},
		{"sym", KindFragment, 1},
		{"symrect", KindShape, 0},
		{"link", KindGroup, 1},
	}
	for _, tt := range tests {
		d := byID(root, tt.id)
		if d == nil {
			t.Errorf("no drawable for %q", tt.id)
			continue
		}
		if d.Kind() != tt.kind || len(d.Children()) != tt.n {
			t.Errorf("%s: kind = %v with %d children, want %v with %d", tt.id, d.Kind(), len(d.Children()), tt.kind, tt.n)
		}
	}
	for _, id := range []string{"second", "hidden", "degenerate"} {
		if byID(root, id) != nil {
			t.Errorf("drawable for %q present", id)
		}
	}

	if p := byID(root, "symrect").Parent(); p == nil || p.Kind() != KindFragment {
		t.Errorf("symrect parent = %s, want the symbol fragment", name(p))
	}
	u := byID(root, "u")
	if diff := cmp.Diff(geom.NewRect(0, 0, 20, 20), u.Bounds(), approx); diff != "" {
		t.Errorf("use bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestUseCycle(t *testing.T) {
	root := build(t, `<svg xmlns="http://www.w3.org/2000/svg">
		<g id="g1"><rect width="1" height="1"/><use href="#g1"/></g>
		<use id="u" href="#g1"/>
	</svg>`)
	g := byID(root, "g1")
	if g == nil || len(g.Children()) != 1 {
		t.Fatalf("g1 = %s, want one child", name(g))
	}
	if byID(root, "u") != nil {
		t.Error("use of a cyclic group present")
	}
}

func TestUseBackLinks(t *testing.T) {
	root := build(t, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
		<linearGradient id="lg" xlink:href="#g1"/>
		<g id="g1">
			<a xlink:href="#g1"><rect width="1" height="1"/></a>
			<rect width="1" height="1" fill="url(#lg) red"/>
		</g>
		<use id="u" xlink:href="#g1" x="50"/>
		<use id="chain" xlink:href="#u"/>
	</svg>`)
	for _, id := range []string{"u", "chain"} {
		d := byID(root, id)
		if d == nil {
			t.Errorf("use %s dropped", id)
			continue
		}
		if len(d.Children()) != 1 {
			t.Errorf("use %s children = %d, want 1", id, len(d.Children()))
		}
	}
}

func TestBounds(t *testing.T) {
	root := build(t, `<svg xmlns="http://www.w3.org/2000/svg">
		<g id="g" transform="translate(10 20)">
			<rect width="10" height="10"/>
			<circle cx="30" cy="30" r="5" transform="scale(2)"/>
			<line x1="0" y1="0" x2="100" y2="0"/>
		</g>
	</svg>`)
	g := byID(root, "g")
	if diff := cmp.Diff(geom.NewRect(0, 0, 70, 70), g.local, approx); diff != "" {
		t.Errorf("local bounds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(geom.NewRect(10, 20, 70, 70), g.Bounds(), approx); diff != "" {
		t.Errorf("Bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestViewport(t *testing.T) {
	root := build(t, `<svg xmlns="http://www.w3.org/2000/svg" width="50" height="50" viewBox="0 0 10 10">
		<svg id="inner" x="2" y="2" width="4" height="4" overflow="visible"><rect id="r" width="50%" height="100%"/></svg>
	</svg>`)
	want := geom.Translate(0, 0).Multiply(geom.Scale(5, 5))
	if diff := cmp.Diff(want, root.Transform(), approx); diff != "" {
		t.Errorf("root transform mismatch (-want +got):\n%s", diff)
	}
	if root.overflow == nil || *root.overflow != geom.NewRect(0, 0, 50, 50) {
		t.Errorf("root overflow = %v, want (0,0,50,50)", root.overflow)
	}
	inner := byID(root, "inner")
	if inner.overflow != nil {
		t.Errorf("inner overflow = %v, want nil", inner.overflow)
	}
	if diff := cmp.Diff(geom.NewRect(0, 0, 2, 4), byID(root, "r").local, approx); diff != "" {
		t.Errorf("percent rect mismatch (-want +got):\n%s", diff)
	}
}

func TestNotDrawable(t *testing.T) {
	root := build(t, `<svg xmlns="http://www.w3.org/2000/svg">
		<filter id="empty"/>
		<rect id="broken" width="10" height="10" filter="url(#missing)"/>
		<rect id="empty-filter" width="10" height="10" filter="url(#empty)"/>
		<rect id="ok" width="10" height="10" filter="none"/>
	</svg>`)
	for id, want := range map[string]bool{"broken": false, "empty-filter": false, "ok": true} {
		if got := byID(root, id).IsDrawable(); got != want {
			t.Errorf("%s: IsDrawable() = %v, want %v", id, got, want)
		}
	}
	paths := 0
	for _, c := range record(root, 0, nil).Commands() {
		if c.Type() == recording.CmdDrawPath {
			paths++
		}
	}
	if paths != 1 {
		t.Errorf("paths = %d, want 1", paths)
	}
}

func TestClose(t *testing.T) {
	doc := decode(t, everything)
	root, err := Build(doc.Root, geom.NewRect(0, 0, 100, 100))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r := byID(root, "r")
	src, ok := r.SourceGraphic().(*recording.Picture)
	if !ok {
		t.Fatalf("SourceGraphic() = %T, want *recording.Picture", r.SourceGraphic())
	}
	var fromFilter paint.Picture
	paint.Walk(r.FilterPaint().ImageFilter, func(f paint.ImageFilter) {
		if ps, ok := f.(*paint.PictureSource); ok {
			fromFilter = ps.Picture
		}
	})
	if fromFilter != paint.Picture(src) {
		t.Error("filter source graphic is not the drawable's picture")
	}
	if src.IsRecorded() {
		t.Error("source graphic recorded before use")
	}
	if n := len(src.Commands()); n != 1 {
		t.Errorf("source graphic commands = %d, want 1", n)
	}

	pool := root.tree.pool
	if pool.PictureCount() == 0 {
		t.Fatal("no pictures tracked")
	}
	root.Close()
	if n := pool.Len(); n != 0 {
		t.Errorf("pool size after Close = %d, want 0", n)
	}
	if !src.Released() {
		t.Error("source graphic not released")
	}
	if r.FilterPaint() != nil || r.Mask() != nil || r.OpacityPaint() != nil || len(root.Children()) != 0 {
		t.Error("drawable state not released")
	}
}
