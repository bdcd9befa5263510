package dom

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Stylesheet is the set of rules of a document's style elements, in
// document order.
type Stylesheet struct {
	rules []styleRule
}

type styleRule struct {
	sel   selector
	decls []*css.Declaration
	order int
}

// ParseStylesheet parses CSS text. At-rules and selectors other than
// type, class, id and universal compounds joined by descendant or child
// combinators are skipped.
func ParseStylesheet(text string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	if err := sheet.add(text); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *Stylesheet) add(text string) error {
	ss, err := parser.Parse(text)
	if err != nil {
		return err
	}
	for _, r := range ss.Rules {
		if r.Kind != css.QualifiedRule || len(r.Declarations) == 0 {
			continue
		}
		for _, raw := range r.Selectors {
			sel, ok := parseSelector(raw)
			if !ok {
				continue
			}
			s.rules = append(s.rules, styleRule{sel: sel, decls: r.Declarations, order: len(s.rules)})
		}
	}
	return nil
}

// Len returns the number of usable rules.
func (s *Stylesheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// matching returns the rules matching e in cascade order: by
// specificity, then by document order.
func (s *Stylesheet) matching(e *Element) []styleRule {
	if s == nil {
		return nil
	}
	var out []styleRule
	for _, r := range s.rules {
		if r.sel.match(e) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b styleRule) int {
		if c := slices.Compare(a.sel.spec[:], b.sel.spec[:]); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	return out
}

// compound is a run of simple selectors without combinators.
type compound struct {
	tag     string
	id      string
	classes []string
}

// selector is a chain of compounds; combinators[i] joins parts[i] and
// parts[i+1] and is ' ' or '>'.
type selector struct {
	parts       []compound
	combinators []byte
	spec        [3]int
}

func parseSelector(s string) (selector, bool) {
	var sel selector
	fields := strings.Fields(strings.ReplaceAll(s, ">", " > "))
	comb := byte(' ')
	for _, f := range fields {
		if f == ">" {
			if len(sel.parts) == 0 {
				return selector{}, false
			}
			comb = '>'
			continue
		}
		c, ok := parseCompound(f)
		if !ok {
			return selector{}, false
		}
		if len(sel.parts) > 0 {
			sel.combinators = append(sel.combinators, comb)
		}
		comb = ' '
		sel.parts = append(sel.parts, c)
		if c.id != "" {
			sel.spec[0]++
		}
		sel.spec[1] += len(c.classes)
		if c.tag != "" {
			sel.spec[2]++
		}
	}
	if len(sel.parts) == 0 || comb == '>' {
		return selector{}, false
	}
	return sel, true
}

func parseCompound(s string) (compound, bool) {
	if strings.ContainsAny(s, ":[+~") {
		return compound{}, false
	}
	var c compound
	i := strings.IndexAny(s, ".#")
	if i < 0 {
		i = len(s)
	}
	if tag := s[:i]; tag != "*" {
		c.tag = tag
	}
	for s = s[i:]; s != ""; {
		kind := s[0]
		s = s[1:]
		j := strings.IndexAny(s, ".#")
		if j < 0 {
			j = len(s)
		}
		name := s[:j]
		if name == "" {
			return compound{}, false
		}
		if kind == '#' {
			c.id = name
		} else {
			c.classes = append(c.classes, name)
		}
		s = s[j:]
	}
	return c, true
}

func (c compound) match(e *Element) bool {
	if c.tag != "" && c.tag != e.Tag {
		return false
	}
	if c.id != "" && c.id != e.ID {
		return false
	}
	if len(c.classes) > 0 {
		have := strings.Fields(e.attrs["class"])
		for _, cl := range c.classes {
			if !slices.Contains(have, cl) {
				return false
			}
		}
	}
	return true
}

func (s selector) match(e *Element) bool {
	return s.matchAt(len(s.parts)-1, e)
}

func (s selector) matchAt(i int, e *Element) bool {
	if !s.parts[i].match(e) {
		return false
	}
	if i == 0 {
		return true
	}
	if s.combinators[i-1] == '>' {
		return e.parent != nil && s.matchAt(i-1, e.parent)
	}
	for p := e.parent; p != nil; p = p.parent {
		if s.matchAt(i-1, p) {
			return true
		}
	}
	return false
}

// applyStyles applies the stylesheet and the inline style over the
// declared attributes: sheet rules, then inline declarations, then
// important sheet rules, then important inline declarations.
func (e *Element) applyStyles(sheet *Stylesheet) {
	rules := sheet.matching(e)
	var inline []*css.Declaration
	if style, ok := e.attrs["style"]; ok {
		inline = parseInline(style)
	}
	for _, important := range []bool{false, true} {
		for _, r := range rules {
			e.setDeclarations(r.decls, important)
		}
		e.setDeclarations(inline, important)
	}
}

func (e *Element) setDeclarations(decls []*css.Declaration, important bool) {
	for _, d := range decls {
		if d.Important != important {
			continue
		}
		name := strings.TrimSpace(d.Property)
		if name == "" || d.Value == "" {
			continue
		}
		e.SetAttr(name, strings.TrimSpace(d.Value))
	}
}

// parseInline parses the declarations of a style attribute. The parser
// only completes a declaration at ';' or '}', so the text is terminated
// first.
func parseInline(style string) []*css.Declaration {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil
	}
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, _ := parser.ParseDeclarations(style)
	return decls
}
