package htmlcase

import (
	"errors"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/mrjoshuak/htmlcase/internal/transform"
)

// ErrInputTooLarge is returned by TransformFromReader when the reader holds
// more bytes than the configured limit.
var ErrInputTooLarge = errors.New("input exceeds size limit")

// Transformer rewrites the case of targeted text in HTML fragments.
type Transformer interface {
	// Transform rewrites an HTML string
	Transform(html string, d Directive) (*Result, error)

	// TransformFromReader reads the whole of r and rewrites it
	TransformFromReader(r io.Reader, d Directive) (*Result, error)
}

// Option represents a function that modifies Options.
type Option func(*Options)

// WithSelector targets the elements matched by a CSS selector instead of
// paragraphs.
func WithSelector(css string) Option {
	return func(o *Options) {
		o.Selector = css
	}
}

// WithXPath targets the elements matched by an XPath expression instead of
// paragraphs. Setting both a selector and an XPath expression makes every
// call fail with ErrConflictingTarget.
func WithXPath(expr string) Option {
	return func(o *Options) {
		o.XPath = expr
	}
}

// WithNormalization applies a Unicode normalization form to rewritten text.
func WithNormalization(n Normalization) Option {
	return func(o *Options) {
		o.Normalization = n
	}
}

// WithMaxInputSize limits how many bytes TransformFromReader accepts.
func WithMaxInputSize(n int64) Option {
	return func(o *Options) {
		o.MaxInputSize = n
	}
}

type caseTransformer struct {
	options Options
}

// Transform rewrites html according to d and the transformer's options.
func (t *caseTransformer) Transform(html string, d Directive) (*Result, error) {
	return transform.Transform(html, d, transform.Options{
		Selector:      t.options.Selector,
		XPath:         t.options.XPath,
		Normalization: t.options.Normalization,
	})
}

// TransformFromReader reads the entire content from r, enforcing the
// configured size limit, and passes it to Transform.
func (t *caseTransformer) TransformFromReader(r io.Reader, d Directive) (*Result, error) {
	limit := t.options.MaxInputSize
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, transform.WrapError(ErrInputTooLarge, transform.KindValidation,
			"TransformFromReader", "limit is "+humanize.IBytes(uint64(limit)))
	}

	return t.Transform(string(data), d)
}

// New creates a Transformer with the provided options applied over
// DefaultOptions.
//
// Example:
//
//	t := htmlcase.New(
//	    htmlcase.WithXPath("//li"),
//	    htmlcase.WithMaxInputSize(64<<10),
//	)
func New(opts ...Option) Transformer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &caseTransformer{
		options: options,
	}
}

// Transform rewrites the paragraphs of html using the default options.
func Transform(html string, d Directive) (*Result, error) {
	return New().Transform(html, d)
}
