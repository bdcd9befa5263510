// Package dom holds the attributed element tree the renderer consumes and
// resolves references between its elements.
package dom

// Element is one node of an SVG document.
//
// Attributes are stored after the presentation-attribute cascade: inline
// style declarations override attributes of the same name, and
// inheritable properties missing on an element are copied from its
// parent. Has reports only what the element itself declared.
type Element struct {
	Tag string
	ID  string

	attrs     map[string]string
	inherited map[string]string
	order     []string
	children  []*Element
	parent    *Element
	doc       *Document
}

// NewElement returns a detached element. attrs are name/value pairs.
func NewElement(tag string, attrs ...string) *Element {
	e := &Element{Tag: tag, attrs: make(map[string]string, len(attrs)/2)}
	for i := 0; i+1 < len(attrs); i += 2 {
		e.SetAttr(attrs[i], attrs[i+1])
	}
	return e
}

// SetAttr sets a declared attribute.
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	if _, ok := e.attrs[name]; !ok {
		e.order = append(e.order, name)
	}
	e.attrs[name] = value
	if name == "id" {
		e.ID = value
		if e.doc != nil && value != "" {
			if _, dup := e.doc.ids[value]; !dup {
				e.doc.ids[value] = e
			}
		}
	}
}

// Attr returns the value of an attribute, declared or inherited, or ""
// when it is absent.
func (e *Element) Attr(name string) string {
	if v, ok := e.attrs[name]; ok {
		return v
	}
	return e.inherited[name]
}

// AttrOr returns the attribute value, or def when it is absent or empty.
func (e *Element) AttrOr(name, def string) string {
	if v := e.Attr(name); v != "" {
		return v
	}
	return def
}

// Has reports whether the element itself declares name.
func (e *Element) Has(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// Lookup returns a declared or inherited attribute and whether it was found.
func (e *Element) Lookup(name string) (string, bool) {
	if v, ok := e.attrs[name]; ok {
		return v, true
	}
	v, ok := e.inherited[name]
	return v, ok
}

// AttrNames returns the declared attribute names in document order.
func (e *Element) AttrNames() []string {
	return e.order
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	return e.children
}

// Parent returns the parent element, or nil for the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Document returns the document the element belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

// AppendChild adds c as the last child of e.
func (e *Element) AppendChild(c *Element) {
	c.parent = e
	e.children = append(e.children, c)
	if e.doc != nil {
		e.doc.adopt(c)
	}
}

// Walk calls fn for e and every descendant in document order, stopping
// at the first false.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
