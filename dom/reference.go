package dom

import "strings"

// ParseURL splits a paint or reference value of the form
// "url(#id) [fallback]". It reports false when s is not a url() value.
func ParseURL(s string) (ref, fallback string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "url(") {
		return "", "", false
	}
	end := strings.IndexByte(s, ')')
	if end < 0 {
		return "", "", false
	}
	ref = strings.Trim(strings.TrimSpace(s[4:end]), `"'`)
	fallback = strings.TrimSpace(s[end+1:])
	return ref, fallback, true
}

// fragment returns the id of a same-document reference, accepting
// "#id", "url(#id)" and "doc.svg#id" forms. Only the fragment is used.
func fragment(ref string) string {
	if r, _, ok := ParseURL(ref); ok {
		ref = r
	}
	if i := strings.LastIndexByte(ref, '#'); i >= 0 {
		return ref[i+1:]
	}
	return ""
}

// Resolve returns the element a reference points to, or nil.
func (d *Document) Resolve(ref string) *Element {
	id := fragment(ref)
	if id == "" {
		return nil
	}
	return d.ByID(id)
}

// Href returns the href of e, preferring the plain attribute over
// xlink:href.
func Href(e *Element) string {
	if v := e.Attr("href"); v != "" {
		return v
	}
	return e.Attr("xlink:href")
}

// ResolveHref resolves the href of e within its document.
func ResolveHref(e *Element) *Element {
	h := Href(e)
	if h == "" || e.doc == nil {
		return nil
	}
	return e.doc.Resolve(h)
}

// ResolveAttr resolves a url(#id) reference stored in attribute name.
func ResolveAttr(e *Element, name string) *Element {
	v := e.Attr(name)
	if v == "" || v == "none" || e.doc == nil {
		return nil
	}
	return e.doc.Resolve(v)
}

// Visited is a set of reference URIs used to cut cycles while following
// references. A fresh set is created for every top-level resolution.
type Visited map[string]struct{}

// Enter records uri and reports whether it was not yet present.
func (v Visited) Enter(uri string) bool {
	if _, ok := v[uri]; ok {
		return false
	}
	v[uri] = struct{}{}
	return true
}

// Leave removes uri, so that sibling branches may visit it again.
func (v Visited) Leave(uri string) {
	delete(v, uri)
}

// Has reports whether uri has been entered.
func (v Visited) Has(uri string) bool {
	_, ok := v[uri]
	return ok
}

// HasRecursiveReference reports whether following attribute attr from
// e eventually leads back to an element already on the path. The
// referenced element and all of its descendants are followed. visited
// holds the URIs on the current path; pass a fresh set.
func HasRecursiveReference(e *Element, attr string, visited Visited) bool {
	uri := e.Attr(attr)
	if attr == "href" {
		uri = Href(e)
	}
	if uri == "" || uri == "none" || e.doc == nil {
		return false
	}
	target := e.doc.Resolve(uri)
	if target == nil {
		return false
	}
	key := "#" + fragment(uri)
	if !visited.Enter(key) {
		return true
	}
	defer visited.Leave(key)
	return !target.Walk(func(el *Element) bool {
		return !HasRecursiveReference(el, attr, visited)
	})
}

// HrefChain returns e followed by the elements it inherits from through
// href, in order. The walk stops at a broken link or at the first
// element already in the chain.
func HrefChain(e *Element) []*Element {
	visited := Visited{}
	if e.ID != "" {
		visited.Enter("#" + e.ID)
	}
	chain := []*Element{e}
	for cur := e; ; {
		next := ResolveHref(cur)
		if next == nil || !visited.Enter("#"+next.ID) {
			return chain
		}
		chain = append(chain, next)
		cur = next
	}
}
