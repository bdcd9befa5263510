package dom

// inheritable lists the properties copied from parent to child when the
// child does not declare them.
var inheritable = map[string]bool{
	"clip-rule":                   true,
	"color":                       true,
	"color-interpolation":         true,
	"color-interpolation-filters": true,
	"cursor":                      true,
	"direction":                   true,
	"fill":                        true,
	"fill-opacity":                true,
	"fill-rule":                   true,
	"font-family":                 true,
	"font-size":                   true,
	"font-style":                  true,
	"font-weight":                 true,
	"image-rendering":             true,
	"marker-end":                  true,
	"marker-mid":                  true,
	"marker-start":                true,
	"shape-rendering":             true,
	"stroke":                      true,
	"stroke-dasharray":            true,
	"stroke-dashoffset":           true,
	"stroke-linecap":              true,
	"stroke-linejoin":             true,
	"stroke-miterlimit":           true,
	"stroke-opacity":              true,
	"stroke-width":                true,
	"visibility":                  true,
}

// Inheritable reports whether property name is inherited by default.
func Inheritable(name string) bool {
	return inheritable[name]
}

// cascade fills in inherited properties for e and its subtree. A
// declared value of "inherit" takes the parent's value.
func (e *Element) cascade() {
	if p := e.parent; p != nil {
		for name := range inheritable {
			if _, ok := e.attrs[name]; ok {
				continue
			}
			if v, ok := p.Lookup(name); ok {
				if e.inherited == nil {
					e.inherited = make(map[string]string)
				}
				e.inherited[name] = v
			}
		}
		for name, v := range e.attrs {
			if v == "inherit" {
				if pv, ok := p.Lookup(name); ok {
					e.attrs[name] = pv
				} else {
					delete(e.attrs, name)
				}
			}
		}
	}
	for _, c := range e.children {
		c.cascade()
	}
}
