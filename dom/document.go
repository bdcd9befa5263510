package dom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// ErrNoRoot is returned when a document contains no element.
var ErrNoRoot = errors.New("dom: document has no root element")

const (
	xlinkNS = "http://www.w3.org/1999/xlink"
	xmlNS   = "http://www.w3.org/XML/1998/namespace"
)

// Document is a parsed element tree with an id index.
type Document struct {
	Root *Element
	// URI identifies the document; relative references in href
	// attributes are resolved against it.
	URI string
	// Styles holds the rules of the document's style elements, or nil.
	Styles *Stylesheet

	ids map[string]*Element
}

// NewDocument wraps root in a document and indexes its ids.
// The cascade is applied to the whole tree.
func NewDocument(root *Element) *Document {
	d := &Document{Root: root, ids: make(map[string]*Element)}
	d.adopt(root)
	root.cascade()
	return d
}

func (d *Document) adopt(e *Element) {
	e.Walk(func(el *Element) bool {
		el.doc = d
		if el.ID != "" {
			if _, dup := d.ids[el.ID]; !dup {
				d.ids[el.ID] = el
			}
		}
		return true
	})
}

// ByID returns the first element declaring id, or nil.
func (d *Document) ByID(id string) *Element {
	if d == nil {
		return nil
	}
	return d.ids[id]
}

// Decode reads an XML document. Attribute values are cascaded with the
// rules of style elements, inline style and inherited properties; other
// text content is discarded. Documents in legacy encodings are decoded
// through their declared charset.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.CharsetReader = charsetReader

	var (
		root, cur *Element
		css       strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dom: decode: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.SetAttr(attrName(a.Name), a.Value)
			}
			if cur == nil {
				if root != nil {
					return nil, fmt.Errorf("dom: decode: multiple root elements")
				}
				root = el
			} else {
				el.parent = cur
				cur.children = append(cur.children, el)
			}
			cur = el
		case xml.CharData:
			if cur != nil && isStylesheet(cur) {
				css.Write(t)
				css.WriteByte('\n')
			}
		case xml.EndElement:
			if cur != nil {
				cur = cur.parent
			}
		}
	}
	if root == nil {
		return nil, ErrNoRoot
	}

	// A stylesheet that does not parse is ignored.
	var sheet *Stylesheet
	if css.Len() > 0 {
		sheet, _ = ParseStylesheet(css.String())
	}
	root.Walk(func(el *Element) bool {
		el.applyStyles(sheet)
		return true
	})
	doc := NewDocument(root)
	doc.Styles = sheet
	return doc, nil
}

// DecodeString is Decode over a string.
func DecodeString(s string) (*Document, error) {
	return Decode(strings.NewReader(s))
}

func isStylesheet(el *Element) bool {
	if el.Tag != "style" {
		return false
	}
	t := strings.TrimSpace(el.attrs["type"])
	return t == "" || t == "text/css"
}

func attrName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case xlinkNS, "xlink":
		return "xlink:" + n.Local
	case xmlNS, "xml":
		return "xml:" + n.Local
	}
	return n.Local
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("dom: charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
