// Package dom implements the document model used by the case transformer:
// a parsed HTML fragment held as a tree of element and text nodes, tag and
// selector lookups over that tree, and serialization back to markup.
package dom

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Errors returned by the document model.
var (
	ErrMalformedInput  = errors.New("input is not a valid UTF-8 byte sequence")
	ErrUnknownNode     = errors.New("node has no recognized variant")
	ErrInvalidSelector = errors.New("invalid selector")
)

// Node is a node of the document tree. It is implemented by *Element and
// *Text only.
type Node interface {
	isNode()
}

// Attribute is a single attribute of an element. Namespaced attributes keep
// their prefix in Key, e.g. "xlink:href".
type Attribute struct {
	Key string
	Val string
}

// Element is a tag with its attributes and ordered children.
type Element struct {
	Tag      string
	Attrs    []Attribute
	Children []Node
}

// Text holds raw, unescaped character data.
type Text struct {
	Data string
}

func (*Element) isNode() {}
func (*Text) isNode()    {}

// Is reports whether the element's tag matches tag, ignoring case.
func (e *Element) Is(tag string) bool {
	return e != nil && strings.EqualFold(e.Tag, tag)
}

// Attr returns the value of the attribute with the given key.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the value of an attribute, appending it when absent so the
// original attribute order is preserved.
func (e *Element) SetAttr(key, val string) {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Val = val
			return
		}
	}
	e.Attrs = append(e.Attrs, Attribute{Key: key, Val: val})
}

// Document owns a parsed tree rooted at the html element.
type Document struct {
	Root *Element

	// src is the tree produced by the HTML parser. It is kept only to run
	// CSS and XPath queries; matches are mapped back through index.
	src   *goquery.Document
	index map[*html.Node]position
}

// position ties a parser node to its model element and pre-order rank.
type position struct {
	el  *Element
	seq int
}

// Head returns the head element, or nil when the tree has none.
func (d *Document) Head() *Element {
	return d.child("head")
}

// Body returns the body element, or nil when the tree has none (for example
// when the input was a frameset document).
func (d *Document) Body() *Element {
	return d.child("body")
}

func (d *Document) child(tag string) *Element {
	if d == nil || d.Root == nil {
		return nil
	}
	for _, c := range d.Root.Children {
		if el, ok := c.(*Element); ok && el.Is(tag) {
			return el
		}
	}
	return nil
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if el, ok := n.(*Element); ok {
		for _, c := range el.Children {
			Walk(c, fn)
		}
	}
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n Node) string {
	var b strings.Builder
	Walk(n, func(c Node) bool {
		if t, ok := c.(*Text); ok {
			b.WriteString(t.Data)
		}
		return true
	})
	return b.String()
}
