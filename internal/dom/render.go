package dom

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/atom"
)

// voidElements cannot have children or a closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:     true,
	atom.Base:     true,
	atom.Basefont: true,
	atom.Bgsound:  true,
	atom.Br:       true,
	atom.Col:      true,
	atom.Embed:    true,
	atom.Frame:    true,
	atom.Hr:       true,
	atom.Img:      true,
	atom.Input:    true,
	atom.Keygen:   true,
	atom.Link:     true,
	atom.Meta:     true,
	atom.Param:    true,
	atom.Source:   true,
	atom.Track:    true,
	atom.Wbr:      true,
}

// rawTextElements hold text that is written without escaping. noscript is
// included because the parser runs with scripting enabled and keeps its
// content as a single text node.
var rawTextElements = map[atom.Atom]bool{
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Noscript:  true,
	atom.Plaintext: true,
	atom.Script:    true,
	atom.Style:     true,
	atom.Xmp:       true,
}

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"\u00a0", "&nbsp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"\u00a0", "&nbsp;",
		`"`, "&quot;",
	)
)

func lookupTag(tag string) atom.Atom {
	return atom.Lookup([]byte(strings.ToLower(tag)))
}

// IsVoid reports whether tag names a void element.
func IsVoid(tag string) bool {
	return voidElements[lookupTag(tag)]
}

// SerializeChildren renders each node in order and concatenates the result.
func SerializeChildren(nodes []Node) (string, error) {
	var b strings.Builder
	w := bufio.NewWriter(&b)
	for _, n := range nodes {
		if err := render(w, n, false); err != nil {
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Render writes the markup of n to w.
func Render(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	if err := render(bw, n, false); err != nil {
		return err
	}
	return bw.Flush()
}

// String renders n, returning an empty string when n cannot be rendered.
func String(n Node) string {
	s, err := SerializeChildren([]Node{n})
	if err != nil {
		return ""
	}
	return s
}

// render writes n; literal is set when the parent is a raw text element.
func render(w *bufio.Writer, n Node, literal bool) error {
	switch n := n.(type) {
	case *Text:
		if n == nil {
			return fmt.Errorf("%w: nil text node", ErrUnknownNode)
		}
		if literal {
			_, err := w.WriteString(n.Data)
			return err
		}
		_, err := textEscaper.WriteString(w, n.Data)
		return err
	case *Element:
		if n == nil {
			return fmt.Errorf("%w: nil element", ErrUnknownNode)
		}
		return renderElement(w, n)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownNode, n)
	}
}

func renderElement(w *bufio.Writer, el *Element) error {
	w.WriteByte('<')
	w.WriteString(el.Tag)
	for _, a := range el.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Key)
		w.WriteString(`="`)
		if _, err := attrEscaper.WriteString(w, a.Val); err != nil {
			return err
		}
		w.WriteByte('"')
	}
	if err := w.WriteByte('>'); err != nil {
		return err
	}

	a := lookupTag(el.Tag)
	if voidElements[a] {
		return nil
	}

	literal := rawTextElements[a]
	for _, c := range el.Children {
		if err := render(w, c, literal); err != nil {
			return err
		}
	}

	w.WriteString("</")
	w.WriteString(el.Tag)
	return w.WriteByte('>')
}
