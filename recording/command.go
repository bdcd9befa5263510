package recording

import "github.com/gogpu/svgfx/geom"

// CommandType identifies the type of a command.
// Each command type corresponds to a specific drawing operation.
type CommandType uint8

const (
	// State commands
	CmdSave      CommandType = iota // Save current state
	CmdSaveLayer                    // Save state and begin an offscreen layer
	CmdRestore                      // Restore previous state
	CmdConcat                       // Concatenate a matrix to the transform
	CmdClipRect                     // Intersect the clip with a rectangle
	CmdClipPath                     // Intersect the clip with a clip path

	// Drawing commands
	CmdDrawPath    // Fill or stroke a path
	CmdDrawImage   // Draw an image
	CmdDrawPicture // Replay a nested picture
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSave:        "Save",
	CmdSaveLayer:   "SaveLayer",
	CmdRestore:     "Restore",
	CmdConcat:      "Concat",
	CmdClipRect:    "ClipRect",
	CmdClipPath:    "ClipPath",
	CmdDrawPath:    "DrawPath",
	CmdDrawImage:   "DrawImage",
	CmdDrawPicture: "DrawPicture",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// Reference Types
// --------------------------------------------------------------------------

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// PaintRef is a reference to a paint in the resource pool.
type PaintRef uint32

// ClipRef is a reference to a clip path in the resource pool.
type ClipRef uint32

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// PictureRef is a reference to a nested picture in the resource pool.
type PictureRef uint32

// InvalidRef is the sentinel value for an invalid reference.
// Use this to indicate that a reference does not point to a valid resource.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference points to a valid paint.
func (r PaintRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SaveCommand saves the current transform and clip.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// SaveLayerCommand saves state and redirects drawing to a layer that is
// composited with Paint on the matching restore.
type SaveLayerCommand struct {
	// Bounds optionally limits the layer.
	Bounds *geom.Rect
	// Paint is InvalidRef for a plain layer.
	Paint PaintRef
}

// Type implements Command.
func (SaveLayerCommand) Type() CommandType { return CmdSaveLayer }

// RestoreCommand restores the previously saved state.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// ConcatCommand pre-multiplies the current transform by Matrix.
type ConcatCommand struct {
	Matrix geom.Matrix
}

// Type implements Command.
func (ConcatCommand) Type() CommandType { return CmdConcat }

// ClipRectCommand intersects the clip with a rectangle.
type ClipRectCommand struct {
	Rect      geom.Rect
	AntiAlias bool
}

// Type implements Command.
func (ClipRectCommand) Type() CommandType { return CmdClipRect }

// ClipPathCommand intersects the clip with a clip path.
type ClipPathCommand struct {
	Clip      ClipRef
	AntiAlias bool
}

// Type implements Command.
func (ClipPathCommand) Type() CommandType { return CmdClipPath }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// DrawPathCommand fills or strokes a path, depending on the paint style.
type DrawPathCommand struct {
	Path  PathRef
	Paint PaintRef
}

// Type implements Command.
func (DrawPathCommand) Type() CommandType { return CmdDrawPath }

// DrawImageCommand draws the Src part of an image into Dst.
type DrawImageCommand struct {
	Image    ImageRef
	Src, Dst geom.Rect
	Paint    PaintRef
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// DrawPictureCommand replays a nested picture.
type DrawPictureCommand struct {
	Picture PictureRef
}

// Type implements Command.
func (DrawPictureCommand) Type() CommandType { return CmdDrawPicture }
