package dom

import (
	"fmt"
	"sort"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// Select returns every element whose tag matches tag, ignoring case, in
// document order. It returns nil when nothing matches.
func Select(doc *Document, tag string) []*Element {
	if doc == nil || doc.Root == nil {
		return nil
	}

	var matches []*Element
	Walk(doc.Root, func(n Node) bool {
		if el, ok := n.(*Element); ok && el.Is(tag) {
			matches = append(matches, el)
		}
		return true
	})
	return matches
}

// SelectCSS returns the elements matching a CSS selector, in document order.
func SelectCSS(doc *Document, selector string) ([]*Element, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	if doc == nil || doc.src == nil {
		return nil, nil
	}
	return doc.resolve(doc.src.FindMatcher(m).Nodes), nil
}

// SelectXPath returns the elements selected by an XPath expression, in
// document order. Non-element results such as text or attribute nodes are
// ignored.
func SelectXPath(doc *Document, expr string) ([]*Element, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, expr, err)
	}
	if doc == nil || doc.src == nil {
		return nil, nil
	}
	return doc.resolve(htmlquery.QuerySelectorAll(doc.src.Get(0), compiled)), nil
}

// resolve maps parser nodes back to model elements, dropping duplicates and
// nodes that have no element counterpart.
func (d *Document) resolve(nodes []*html.Node) []*Element {
	if len(nodes) == 0 {
		return nil
	}

	seen := make(map[*html.Node]struct{}, len(nodes))
	found := make([]position, 0, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if p, ok := d.index[n]; ok {
			found = append(found, p)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })

	matches := make([]*Element, len(found))
	for i, p := range found {
		matches[i] = p.el
	}
	return matches
}
