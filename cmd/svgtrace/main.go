// Command svgtrace builds the render tree of an SVG file and prints the
// canvas operations it draws.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/assets"
	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/geom"
	"github.com/gogpu/svgfx/recording"

	_ "github.com/gogpu/svgfx/recording/backends/trace"
)

func main() {
	var (
		width   = flag.Float64("width", 512, "viewport width")
		height  = flag.Float64("height", 512, "viewport height")
		backend = flag.String("backend", "trace", "recording backend")
		output  = flag.String("output", "", "output file (default stdout)")
		verbose = flag.Bool("v", false, "log recovered errors")
	)
	var ignore svgfx.Attributes
	flag.Func("ignore", "skip an attribute: opacity, filter, clip-path or mask (repeatable)", func(s string) error {
		a, err := parseAttribute(s)
		ignore |= a
		return err
	})
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: svgtrace [flags] file.svg")
	}

	if *verbose {
		svgfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	name := flag.Arg(0)
	f, err := os.Open(name)
	if err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
	doc, err := dom.Decode(f)
	_ = f.Close()
	if err != nil {
		log.Fatalf("Failed to decode %s: %v", name, err)
	}
	doc.URI = filepath.Base(name)

	viewport := geom.NewRect(0, 0, *width, *height)
	root, err := svgfx.Build(doc.Root, viewport,
		svgfx.WithAssets(assets.NewLoader(os.DirFS(filepath.Dir(name)))),
		svgfx.WithIgnore(ignore))
	if err != nil {
		log.Fatalf("Failed to build %s: %v", name, err)
	}
	defer root.Close()

	rec := recording.NewRecorder(viewport)
	root.Draw(rec, 0, nil)
	pic := rec.Finish()

	b, err := recording.NewBackend(*backend)
	if err != nil {
		log.Fatalf("Backend %q: %v (available: %v)", *backend, err, recording.Backends())
	}
	if err := pic.Render(b); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	wb, ok := b.(recording.WriterBackend)
	if !ok {
		return
	}
	out := os.Stdout
	if *output != "" {
		out, err = os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *output, err)
		}
		defer out.Close()
	}
	if _, err := wb.WriteTo(out); err != nil {
		log.Fatalf("Failed to write: %v", err)
	}
}
