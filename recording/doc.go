// Package recording captures drawing as typed commands and replays them
// to backends.
//
// # Architecture
//
// The system follows a Command Pattern with three main components:
//
//   - Canvas: the drawing surface of the render tree (save/restore, layers,
//     clips, transforms, path and image drawing, nested pictures)
//   - Recorder: a Canvas that captures operations as commands into a Picture
//   - Backend: a Canvas that renders commands to a specific output
//
// This design is inspired by Skia's SkPicture and Cairo's recording surface.
//
// # Pictures
//
// A Picture is an immutable command list with a cull rectangle. Pictures
// may be lazy: NewLazyPicture records its content the first time the
// picture is played back or inspected, which lets a picture capture
// state that is only complete after the picture itself was created.
//
// # Backend Registration
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to register it:
//
//	import _ "github.com/gogpu/svgfx/recording/backends/trace"
//
//	b, err := recording.NewBackend("trace")
//	if err != nil {
//	    // backend not registered
//	}
//	err = pic.Render(b)
//
// # Resource Management
//
// Paths, paints, clips, images and nested pictures referenced by commands
// are stored in a ResourcePool and referenced by typed handles. A pool is
// also used by render trees to track the pictures they own so that they
// can be released deterministically.
package recording
