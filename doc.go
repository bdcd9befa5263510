// Package svgfx builds render trees from SVG documents and evaluates SVG
// filter effects.
//
// # Overview
//
// svgfx turns an attributed SVG element tree into an immutable tree of
// drawables. Each drawable carries the resolved rendering state of its
// element: transform, clips, mask, opacity, filter, and for leaves the
// geometry with its fill and stroke paints. Drawing a tree produces a
// sequence of canvas operations, not pixels; any backend that implements
// recording.Canvas can play it back.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/svgfx"
//		"github.com/gogpu/svgfx/dom"
//		"github.com/gogpu/svgfx/recording"
//		_ "github.com/gogpu/svgfx/recording/backends/trace"
//	)
//
//	doc, err := dom.Decode(f)
//	root, err := svgfx.Build(doc.Root, geom.NewRect(0, 0, 512, 512))
//	defer root.Close()
//
//	rec := recording.NewRecorder(geom.NewRect(0, 0, 512, 512))
//	root.Draw(rec, 0, nil)
//	pic := rec.Finish()
//
//	b, _ := recording.NewBackend("trace")
//	_ = pic.Render(b)
//
// # Draw Protocol
//
// Every drawable draws inside one save level. It clips to its overflow
// rectangle, applies its transform, clips to its clip rectangle and
// clip-path, and then opens a layer for each of mask, opacity and filter
// that is set. After the content, the filter and opacity layers are
// closed; a mask then draws its own content into a destination-in layer
// before the outer levels close. Truncated draws close every level they
// opened.
//
// # Filters
//
// Filters are evaluated by package filter into a graph of image filter
// descriptions attached to a layer paint. The drawable supplies the
// filter inputs: its own content, the background captured from the
// nearest enable-background container, and its fill and stroke paints.
// All pictures are recorded lazily and released by Close.
//
// # Packages
//
//   - geom: matrices, rectangles, paths and clip descriptions
//   - units: lengths, coordinate systems and viewBox mapping
//   - dom: the element tree, decoding and reference resolution
//   - shape: geometry of basic shapes and paths
//   - paint: paints, shaders, color filters and image filters
//   - paintserver: fill and stroke resolution
//   - filter: the filter effect graph
//   - recording: canvases, pictures and backends
//   - assets: images and nested documents
package svgfx
