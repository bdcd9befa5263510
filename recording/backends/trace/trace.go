// Package trace provides a recording backend that writes a readable,
// indented log of the canvas operations it receives.
//
// The trace backend is useful to inspect the save/layer/clip structure a
// render tree produces, and to diff renderings in tests.
//
//	import _ "github.com/gogpu/svgfx/recording/backends/trace"
//
//	b, _ := recording.NewBackend("trace")
//	_ = pic.Render(b)
//	b.(recording.WriterBackend).WriteTo(os.Stdout)
package trace

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/paint"
	"github.com/gogpu/svgfx/recording"
)

func init() {
	recording.Register("trace", func() recording.Backend {
		return New()
	})
}

// Backend records canvas operations as text.
type Backend struct {
	buf           bytes.Buffer
	width, height int
	depth         int

	// Saves counts Save and SaveLayer calls, Restores the Restore calls
	// that popped a level.
	Saves, Restores int
	// Layers counts SaveLayer calls.
	Layers int
}

// New returns an empty trace backend.
func New() *Backend {
	return &Backend{}
}

// Ensure Backend implements the WriterBackend interface.
var _ recording.WriterBackend = (*Backend)(nil)

func (b *Backend) printf(format string, args ...any) {
	b.buf.WriteString(strings.Repeat("  ", b.depth))
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteByte('\n')
}

// Begin resets the backend.
func (b *Backend) Begin(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("trace: invalid size %dx%d", width, height)
	}
	b.buf.Reset()
	b.width, b.height = width, height
	b.depth = 0
	b.Saves, b.Restores, b.Layers = 0, 0, 0
	b.printf("begin %dx%d", width, height)
	return nil
}

// End closes open levels.
func (b *Backend) End() error {
	recording.RestoreToCount(b, 0)
	b.printf("end")
	return nil
}

// Save implements recording.Canvas.
func (b *Backend) Save() int {
	n := b.depth
	b.printf("save")
	b.depth++
	b.Saves++
	return n
}

// SaveLayer implements recording.Canvas.
func (b *Backend) SaveLayer(bounds *geom.Rect, p *paint.Paint) int {
	n := b.depth
	var sb strings.Builder
	sb.WriteString("save-layer")
	if bounds != nil {
		sb.WriteString(" bounds=" + rect(*bounds))
	}
	if p != nil {
		sb.WriteString(" " + describePaint(p))
	}
	b.printf("%s", sb.String())
	b.depth++
	b.Saves++
	b.Layers++
	return n
}

// Restore implements recording.Canvas.
func (b *Backend) Restore() {
	if b.depth == 0 {
		return
	}
	b.depth--
	b.Restores++
	b.printf("restore")
}

// SaveCount implements recording.Canvas.
func (b *Backend) SaveCount() int {
	return b.depth
}

// Concat implements recording.Canvas.
func (b *Backend) Concat(m geom.Matrix) {
	b.printf("concat [%g %g %g %g %g %g]", m.A, m.B, m.C, m.D, m.E, m.F)
}

// ClipRect implements recording.Canvas.
func (b *Backend) ClipRect(r geom.Rect, antiAlias bool) {
	b.printf("clip-rect %s%s", rect(r), aa(antiAlias))
}

// ClipPath implements recording.Canvas.
func (b *Backend) ClipPath(c *geom.ClipPath, antiAlias bool) {
	if c == nil {
		return
	}
	b.printf("clip-path clips=%d depth=%d bounds=%s%s", len(c.Clips), c.Depth(), rect(c.Path().Bounds()), aa(antiAlias))
}

// DrawPath implements recording.Canvas.
func (b *Backend) DrawPath(path *geom.Path, p *paint.Paint) {
	if path == nil || p == nil {
		return
	}
	b.printf("draw-path %s %s %s", rect(path.Bounds()), path.FillRule, describePaint(p))
}

// DrawImage implements recording.Canvas.
func (b *Backend) DrawImage(img image.Image, src, dst geom.Rect, p *paint.Paint) {
	if img == nil {
		return
	}
	sz := img.Bounds().Size()
	b.printf("draw-image %dx%d src=%s dst=%s", sz.X, sz.Y, rect(src), rect(dst))
}

// DrawPicture implements recording.Canvas by expanding pic inline.
func (b *Backend) DrawPicture(pic *recording.Picture) {
	if pic == nil {
		return
	}
	b.printf("picture cull=%s", rect(pic.CullRect()))
	b.depth++
	pic.Playback(b)
	b.depth--
}

// String returns the trace so far.
func (b *Backend) String() string {
	return b.buf.String()
}

// WriteTo writes the trace to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

func aa(on bool) string {
	if on {
		return " aa"
	}
	return ""
}

func rect(r geom.Rect) string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

func hex(c paint.RGBA) string {
	n := c.Color().(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x/%.3g", n.R, n.G, n.B, c.A)
}

func describePaint(p *paint.Paint) string {
	var sb strings.Builder
	if p.Style == paint.StyleStroke {
		fmt.Fprintf(&sb, "stroke(w=%g)", p.Stroke.Width)
	} else {
		sb.WriteString("fill")
	}
	switch s := p.Shader.(type) {
	case nil:
		sb.WriteString(" " + hex(p.Color))
	case *paint.LinearGradient:
		fmt.Fprintf(&sb, " linear-gradient(stops=%d)", len(s.Stops))
	case *paint.RadialGradient:
		fmt.Fprintf(&sb, " radial-gradient(stops=%d)", len(s.Stops))
	case *paint.PictureShader:
		fmt.Fprintf(&sb, " pattern(tile=%s)", rect(s.Tile))
	case *paint.Turbulence:
		fmt.Fprintf(&sb, " turbulence(octaves=%d)", s.Octaves)
	}
	if p.Blend != paint.BlendSourceOver {
		sb.WriteString(" blend=" + p.Blend.String())
	}
	if p.ColorFilter != nil {
		fmt.Fprintf(&sb, " color-filter=%T", p.ColorFilter)
	}
	if p.ImageFilter != nil {
		sb.WriteString(" filter=" + describeFilter(p.ImageFilter))
	}
	return sb.String()
}

func describeFilter(f paint.ImageFilter) string {
	if f == nil {
		return "source"
	}
	ins := f.Inputs()
	if len(ins) == 0 {
		return paint.Name(f)
	}
	parts := make([]string, len(ins))
	for i, in := range ins {
		parts[i] = describeFilter(in)
	}
	return paint.Name(f) + "(" + strings.Join(parts, ", ") + ")"
}
