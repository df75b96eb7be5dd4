package dom

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse builds a Document from an HTML fragment or full document.
//
// A bare fragment such as "<p>text</p>" is placed inside the implicit
// html/head/body skeleton, so its top-level nodes become the body's
// children. Unclosed and stray tags are recovered the way browsers recover
// them; only input that cannot be tokenized at all is rejected.
//
// Comments, doctypes and other non-element, non-text nodes are dropped.
func Parse(input string) (*Document, error) {
	if !utf8.ValidString(input) {
		return nil, ErrMalformedInput
	}

	src, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("building tree: %w", err)
	}

	doc := &Document{
		src:   src,
		index: make(map[*html.Node]position),
	}

	top := src.Get(0)
	if top == nil {
		return nil, fmt.Errorf("%w: empty tree", ErrMalformedInput)
	}
	for n := top.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		if root, ok := doc.build(n).(*Element); ok {
			doc.Root = root
			break
		}
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedInput)
	}

	return doc, nil
}

// build converts a parser node and its subtree into model nodes, recording
// every element in the index in pre-order.
func (d *Document) build(n *html.Node) Node {
	switch n.Type {
	case html.TextNode:
		return &Text{Data: n.Data}
	case html.ElementNode:
		el := &Element{Tag: n.Data}
		if len(n.Attr) > 0 {
			el.Attrs = make([]Attribute, 0, len(n.Attr))
		}
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			el.SetAttr(key, a.Val)
		}
		d.index[n] = position{el: el, seq: len(d.index)}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := d.build(c); child != nil {
				el.Children = append(el.Children, child)
			}
		}
		return el
	default:
		return nil
	}
}
