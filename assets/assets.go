// Package assets loads the external resources an SVG document refers
// to: raster images and nested SVG documents, from a file system or
// from data: URLs.
//
// Raster formats are decoded with the image package. PNG, JPEG and GIF
// are supported, as well as BMP, TIFF and WebP from golang.org/x/image.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"
	"strings"

	// Registered raster decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tdewolff/parse/v2"

	"github.com/gogpu/svgfx/dom"
	"github.com/gogpu/svgfx/internal/cache"
)

// Loader errors.
var (
	// ErrNotFound is returned when a reference does not name a resource.
	ErrNotFound = errors.New("assets: not found")

	// ErrUnsupported is returned for resources that cannot be loaded,
	// such as remote URLs and unknown image formats.
	ErrUnsupported = errors.New("assets: unsupported resource")
)

// Asset is a loaded resource. Exactly one of Image and Document is set.
type Asset struct {
	// URI is the reference the asset was loaded from. Nested documents
	// use it to detect cycles.
	URI      string
	Image    image.Image
	Document *dom.Document
}

// Size returns the intrinsic size of a raster asset. It is zero for
// documents.
func (a *Asset) Size() (w, h float64) {
	if a.Image == nil {
		return 0, 0
	}
	b := a.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// DefaultCacheSize is the number of decoded assets a loader keeps.
const DefaultCacheSize = 64

// Loader loads assets and caches the most recently used ones by
// reference. It is safe for concurrent use.
type Loader struct {
	fsys  fs.FS
	cache *cache.Cache[string, *Asset]
}

// NewLoader returns a loader resolving file references in fsys. With a
// nil fsys only data: URLs can be loaded.
func NewLoader(fsys fs.FS) *Loader {
	return NewLoaderSize(fsys, DefaultCacheSize)
}

// NewLoaderSize is NewLoader keeping at most n decoded assets; 0 keeps
// all of them.
func NewLoaderSize(fsys fs.FS, n int) *Loader {
	return &Loader{fsys: fsys, cache: cache.New[string, *Asset](n)}
}

// Load returns the asset href refers to.
func (l *Loader) Load(href string) (*Asset, error) {
	href = strings.TrimSpace(href)
	if a, ok := l.cache.Get(href); ok {
		return a, nil
	}
	data, mediatype, err := l.read(href)
	if err != nil {
		return nil, err
	}
	a, err := decode(href, data, mediatype)
	if err != nil {
		return nil, err
	}
	l.cache.Set(href, a)
	return a, nil
}

func (l *Loader) read(href string) (data []byte, mediatype string, err error) {
	switch {
	case href == "":
		return nil, "", ErrNotFound
	case strings.HasPrefix(href, "data:"):
		mt, data, err := parse.DataURI([]byte(href))
		if err != nil {
			return nil, "", fmt.Errorf("assets: data URL: %w", err)
		}
		return data, string(mt), nil
	case strings.Contains(href, "://") && !strings.HasPrefix(href, "file://"):
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupported, href)
	}
	if l.fsys == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, href)
	}

	name := strings.TrimPrefix(href, "file://")
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	data, err = fs.ReadFile(l.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, href)
	}
	if err != nil {
		return nil, "", fmt.Errorf("assets: read %s: %w", name, err)
	}
	if strings.HasSuffix(strings.ToLower(name), ".svg") {
		mediatype = "image/svg+xml"
	}
	return data, mediatype, nil
}

func decode(uri string, data []byte, mediatype string) (*Asset, error) {
	if isSVG(data, mediatype) {
		doc, err := dom.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("assets: decode %s: %w", uri, err)
		}
		doc.URI = uri
		return &Asset{URI: uri, Document: doc}, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%w: unknown image format in %s", ErrUnsupported, uri)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", uri, err)
	}
	return &Asset{URI: uri, Image: img}, nil
}

// isSVG reports whether data is an SVG document, by media type or by a
// leading markup character.
func isSVG(data []byte, mediatype string) bool {
	if strings.HasPrefix(mediatype, "image/svg+xml") {
		return true
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	return len(data) > 0 && data[0] == '<'
}
