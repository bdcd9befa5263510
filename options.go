package svgfx

import (
	"github.com/gogpu/svgfx/assets"
	"github.com/gogpu/svgfx/units"
)

// Option configures Build.
//
// Example:
//
//	// Resolve images relative to a directory, without masks.
//	root, err := svgfx.Build(doc.Root, viewport,
//		svgfx.WithAssets(assets.NewLoader(os.DirFS("testdata"))),
//		svgfx.WithIgnore(svgfx.Mask))
type Option func(*options)

// options holds the configuration of one Build call.
type options struct {
	assets   *assets.Loader
	ignore   Attributes
	fontSize float64
}

// defaultOptions returns the default build options.
func defaultOptions() options {
	return options{
		assets:   assets.NewLoader(nil),
		fontSize: units.DefaultFontSize,
	}
}

// WithAssets sets the loader used for image references, feImage and
// nested documents. The default loader only serves data: URLs.
func WithAssets(l *assets.Loader) Option {
	return func(o *options) {
		if l != nil {
			o.assets = l
		}
	}
}

// WithIgnore skips the resolution of the given attributes: their clip
// paths, masks, opacity layers or filters are never built.
func WithIgnore(attrs Attributes) Option {
	return func(o *options) {
		o.ignore = attrs
	}
}

// WithFontSize sets the font size in pixels used for em and ex lengths
// of elements that do not declare a font-size.
func WithFontSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.fontSize = px
		}
	}
}
