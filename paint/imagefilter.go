package paint

import (
	"image"

	"github.com/gogpu/svgfx/geom"
)

// ImageFilter is one node of an image filter graph. A nil input means
// the content of the layer the filter is applied to. Crop, when set,
// bounds the node's output.
type ImageFilter interface {
	// Inputs returns the node's inputs in order; entries may be nil.
	Inputs() []ImageFilter
	isImageFilter()
}

// Crop restricts the output of a filter node.
type Crop struct {
	Rect *geom.Rect
}

// CropTo returns a crop of r.
func CropTo(r geom.Rect) Crop { return Crop{Rect: &r} }

// Blend composites Foreground over Background with Mode.
type Blend struct {
	Mode                   BlendMode
	Background, Foreground ImageFilter
	Crop
}

// ColorFilterImage applies a color filter to its input.
type ColorFilterImage struct {
	Filter ColorFilter
	Input  ImageFilter
	Crop
}

// Arithmetic combines two inputs with k1*i1*i2 + k2*i1 + k3*i2 + k4
// on premultiplied colors, where i1 is Foreground and i2 Background.
type Arithmetic struct {
	K1, K2, K3, K4         float64
	EnforcePremul          bool
	Background, Foreground ImageFilter
	Crop
}

// TileMode decides how pixels outside the input are sampled.
type TileMode uint8

const (
	TileDecal TileMode = iota
	TileClamp
	TileRepeat
	TileMirror
)

// MatrixConvolution convolves the input with a kernel.
type MatrixConvolution struct {
	Width, Height int
	Kernel        []float64
	Gain, Bias    float64
	TargetX       int
	TargetY       int
	Tile          TileMode
	ConvolveAlpha bool
	Input         ImageFilter
	Crop
}

// LightingKind selects the lighting model.
type LightingKind uint8

const (
	Diffuse LightingKind = iota
	Specular
)

// Light is a light source for Lighting. The set is closed.
type Light interface {
	isLight()
}

// DistantLight shines from infinitely far away along Direction.
type DistantLight struct {
	Direction geom.Point3
}

// PointLight shines from Location in all directions.
type PointLight struct {
	Location geom.Point3
}

// SpotLight shines from Location towards Target.
type SpotLight struct {
	Location, Target geom.Point3
	SpecularExponent float64
	// CutoffAngle is in degrees.
	CutoffAngle float64
}

func (DistantLight) isLight() {}
func (PointLight) isLight()   {}
func (SpotLight) isLight()    {}

// Lighting lights the alpha channel of its input as a bump map.
type Lighting struct {
	Kind         LightingKind
	Light        Light
	Color        RGBA
	SurfaceScale float64
	// Constant is kd for diffuse and ks for specular lighting.
	Constant  float64
	Shininess float64
	Input     ImageFilter
	Crop
}

// Channel selects a color channel.
type Channel uint8

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

// DisplacementMap moves pixels of Color by the channels of Displacement.
type DisplacementMap struct {
	XChannel, YChannel  Channel
	Scale               float64
	Displacement, Color ImageFilter
	Crop
}

// Blur is a Gaussian blur.
type Blur struct {
	SigmaX, SigmaY float64
	Tile           TileMode
	Input          ImageFilter
	Crop
}

// ImageSource draws an image from Src into Dst.
type ImageSource struct {
	Image    image.Image
	Src, Dst geom.Rect
}

// PictureSource draws a recorded picture.
type PictureSource struct {
	Picture Picture
	Crop
}

// Merge composites its inputs in order with source-over.
type Merge struct {
	Filters []ImageFilter
	Crop
}

// MorphologyOp selects dilation or erosion.
type MorphologyOp uint8

const (
	Erode MorphologyOp = iota
	Dilate
)

// Morphology dilates or erodes its input.
type Morphology struct {
	Op               MorphologyOp
	RadiusX, RadiusY float64
	Input            ImageFilter
	Crop
}

// Offset translates its input.
type Offset struct {
	Dx, Dy float64
	Input  ImageFilter
	Crop
}

// Tile repeats the Src rectangle of its input across Dst.
type Tile struct {
	Src, Dst geom.Rect
	Input    ImageFilter
}

// PaintSource fills the crop rectangle with a paint.
type PaintSource struct {
	Paint *Paint
	Crop
}

func (f *Blend) Inputs() []ImageFilter             { return []ImageFilter{f.Background, f.Foreground} }
func (f *ColorFilterImage) Inputs() []ImageFilter  { return []ImageFilter{f.Input} }
func (f *Arithmetic) Inputs() []ImageFilter        { return []ImageFilter{f.Background, f.Foreground} }
func (f *MatrixConvolution) Inputs() []ImageFilter { return []ImageFilter{f.Input} }
func (f *Lighting) Inputs() []ImageFilter          { return []ImageFilter{f.Input} }
func (f *DisplacementMap) Inputs() []ImageFilter   { return []ImageFilter{f.Displacement, f.Color} }
func (f *Blur) Inputs() []ImageFilter              { return []ImageFilter{f.Input} }
func (f *ImageSource) Inputs() []ImageFilter       { return nil }
func (f *PictureSource) Inputs() []ImageFilter     { return nil }
func (f *Merge) Inputs() []ImageFilter             { return f.Filters }
func (f *Morphology) Inputs() []ImageFilter        { return []ImageFilter{f.Input} }
func (f *Offset) Inputs() []ImageFilter            { return []ImageFilter{f.Input} }
func (f *Tile) Inputs() []ImageFilter              { return []ImageFilter{f.Input} }
func (f *PaintSource) Inputs() []ImageFilter       { return nil }

func (*Blend) isImageFilter()             {}
func (*ColorFilterImage) isImageFilter()  {}
func (*Arithmetic) isImageFilter()        {}
func (*MatrixConvolution) isImageFilter() {}
func (*Lighting) isImageFilter()          {}
func (*DisplacementMap) isImageFilter()   {}
func (*Blur) isImageFilter()              {}
func (*ImageSource) isImageFilter()       {}
func (*PictureSource) isImageFilter()     {}
func (*Merge) isImageFilter()             {}
func (*Morphology) isImageFilter()        {}
func (*Offset) isImageFilter()            {}
func (*Tile) isImageFilter()              {}
func (*PaintSource) isImageFilter()       {}

// Name returns a short name for the kind of f.
func Name(f ImageFilter) string {
	switch f.(type) {
	case *Blend:
		return "blend"
	case *ColorFilterImage:
		return "color-filter"
	case *Arithmetic:
		return "arithmetic"
	case *MatrixConvolution:
		return "matrix-convolution"
	case *Lighting:
		return "lighting"
	case *DisplacementMap:
		return "displacement-map"
	case *Blur:
		return "blur"
	case *ImageSource:
		return "image"
	case *PictureSource:
		return "picture"
	case *Merge:
		return "merge"
	case *Morphology:
		return "morphology"
	case *Offset:
		return "offset"
	case *Tile:
		return "tile"
	case *PaintSource:
		return "paint"
	case nil:
		return "source"
	}
	return "unknown"
}

// Walk calls fn for f and every node reachable through its inputs,
// depth first. Nil inputs are skipped. Shared nodes are visited once.
func Walk(f ImageFilter, fn func(ImageFilter)) {
	seen := make(map[ImageFilter]bool)
	var visit func(ImageFilter)
	visit = func(n ImageFilter) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		fn(n)
		for _, in := range n.Inputs() {
			visit(in)
		}
	}
	visit(f)
}
