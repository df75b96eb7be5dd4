package transform

import (
	"strings"

	"github.com/mrjoshuak/htmlcase/internal/casing"
	"github.com/mrjoshuak/htmlcase/internal/dom"
)

// Options controls which elements are targeted and how text is mapped.
// Selector and XPath are mutually exclusive; when both are empty the
// paragraph elements are targeted.
type Options struct {
	Selector      string
	XPath         string
	Normalization casing.Normalization
}

// Result is the serialized fragment plus counters from the run.
type Result struct {
	HTML string `json:"html" yaml:"html"`
	Stats `yaml:",inline"`
}

// Transform parses html, rewrites the text of the targeted elements with the
// directive, and returns the body's children serialized back to markup.
func Transform(html string, d casing.Directive, opts Options) (*Result, error) {
	if strings.TrimSpace(html) == "" {
		return nil, WrapError(ErrEmptyInput, KindEmptyInput, "Transform", "")
	}
	if opts.Selector != "" && opts.XPath != "" {
		return nil, WrapError(ErrConflictingTarget, KindValidation, "Transform", "")
	}

	if !d.Valid() {
		return nil, WrapError(ErrInvalidDirective, KindValidation, "Transform", d.String())
	}
	m, err := casing.NewMapper(d, opts.Normalization)
	if err != nil {
		return nil, WrapError(err, KindValidation, "NewMapper", "")
	}

	doc, err := dom.Parse(html)
	if err != nil {
		return nil, WrapError(err, KindParse, "Parse", "failed to parse HTML")
	}

	body := doc.Body()
	if body == nil {
		return nil, WrapError(ErrBodyNotFound, KindBodyNotFound, "Transform", "")
	}

	var stats Stats
	if opts.Selector == "" && opts.XPath == "" {
		stats = ApplyCase(doc, m)
	} else {
		targets, err := selectTargets(doc, opts)
		if err != nil {
			return nil, err
		}
		stats = ApplyCaseTo(targets, m)
	}

	out, err := dom.SerializeChildren(body.Children)
	if err != nil {
		return nil, WrapError(err, KindSerialization, "SerializeChildren", "failed to render document")
	}

	return &Result{HTML: out, Stats: stats}, nil
}

// selectTargets resolves a custom CSS or XPath target set.
func selectTargets(doc *dom.Document, opts Options) ([]*dom.Element, error) {
	if opts.Selector != "" {
		targets, err := dom.SelectCSS(doc, opts.Selector)
		return targets, WrapError(err, KindSelector, "SelectCSS", "")
	}
	targets, err := dom.SelectXPath(doc, opts.XPath)
	return targets, WrapError(err, KindSelector, "SelectXPath", "")
}
