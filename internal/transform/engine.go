// Package transform rewrites the text of selected elements of a parsed
// document to upper or lower case, leaving markup and all other text alone.
package transform

import (
	"github.com/mrjoshuak/htmlcase/internal/casing"
	"github.com/mrjoshuak/htmlcase/internal/dom"
)

// DefaultTag is the element whose text is rewritten when no selector is
// given.
const DefaultTag = "p"

// Stats counts the work done by one transformation.
type Stats struct {
	Targets   int `json:"targets" yaml:"targets"`
	TextNodes int `json:"text_nodes" yaml:"text_nodes"`
}

// ApplyCase rewrites the text under every paragraph of doc in place.
func ApplyCase(doc *dom.Document, m *casing.Mapper) Stats {
	return ApplyCaseTo(dom.Select(doc, DefaultTag), m)
}

// ApplyCaseTo rewrites the text under each target, in order. A target nested
// inside another target is rewritten twice, which is harmless because case
// mapping is idempotent.
func ApplyCaseTo(targets []*dom.Element, m *casing.Mapper) Stats {
	stats := Stats{Targets: len(targets)}
	for _, el := range targets {
		stats.TextNodes += rewriteTextSubtree(el, m)
	}
	return stats
}

// rewriteTextSubtree maps every text node below el and returns how many it
// rewrote. Descendant elements keep their tags and attributes.
func rewriteTextSubtree(el *dom.Element, m *casing.Mapper) int {
	n := 0
	for _, child := range el.Children {
		switch c := child.(type) {
		case *dom.Text:
			c.Data = m.Map(c.Data)
			n++
		case *dom.Element:
			n += rewriteTextSubtree(c, m)
		}
	}
	return n
}
