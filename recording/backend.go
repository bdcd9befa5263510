package recording

import "io"

// Backend is the interface that all output backends must implement.
// A backend is a Canvas with a lifecycle: Begin before drawing, End
// after. Pictures are replayed into backends with Picture.Render.
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Handle all Canvas methods (even if no-op for some)
//  3. Manage own state stack for Save/SaveLayer/Restore
//  4. Expand nested pictures passed to DrawPicture, usually by calling
//     Picture.Playback on itself
type Backend interface {
	Canvas

	// Begin initializes the backend for rendering at the given dimensions.
	Begin(width, height int) error

	// End finalizes the rendering and prepares the output.
	End() error
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to the given writer.
	// This should only be called after End().
	WriteTo(w io.Writer) (int64, error)
}
