package htmlcase

import (
	"github.com/mrjoshuak/htmlcase/internal/casing"
	"github.com/mrjoshuak/htmlcase/internal/dom"
	"github.com/mrjoshuak/htmlcase/internal/transform"
)

// Directive selects the case mapping applied to paragraph text.
type Directive = casing.Directive

// Supported directives.
const (
	Uppercase = casing.Uppercase
	Lowercase = casing.Lowercase
)

// ParseDirective parses "uppercase" or "lowercase", ignoring case and
// surrounding whitespace.
func ParseDirective(s string) (Directive, error) {
	return casing.ParseDirective(s)
}

// Normalization is an optional Unicode normalization form applied to
// rewritten text after case mapping.
type Normalization = casing.Normalization

// Normalization forms.
const (
	NormalizeNone = casing.NormalizeNone
	NormalizeNFC  = casing.NormalizeNFC
	NormalizeNFD  = casing.NormalizeNFD
	NormalizeNFKC = casing.NormalizeNFKC
	NormalizeNFKD = casing.NormalizeNFKD
)

// ParseNormalization parses a normalization form name. "none" and the
// empty string both mean no normalization.
func ParseNormalization(s string) (Normalization, error) {
	return casing.ParseNormalization(s)
}

// Result is the transformed fragment together with counters describing
// how many elements and text nodes were rewritten.
type Result = transform.Result

// Stats holds the counters of a transformation.
type Stats = transform.Stats

// Error is the error type returned by transformations.
type Error = transform.Error

// Kind classifies an Error.
type Kind = transform.Kind

// Error kinds.
const (
	KindEmptyInput    = transform.KindEmptyInput
	KindParse         = transform.KindParse
	KindBodyNotFound  = transform.KindBodyNotFound
	KindSerialization = transform.KindSerialization
	KindSelector      = transform.KindSelector
	KindValidation    = transform.KindValidation
)

// Sentinel errors reachable with errors.Is.
var (
	ErrEmptyInput        = transform.ErrEmptyInput
	ErrBodyNotFound      = transform.ErrBodyNotFound
	ErrConflictingTarget = transform.ErrConflictingTarget
	ErrInvalidDirective  = transform.ErrInvalidDirective
	ErrMalformedInput    = dom.ErrMalformedInput
	ErrUnknownNode       = dom.ErrUnknownNode
	ErrInvalidSelector   = dom.ErrInvalidSelector
)

// IsEmptyInput reports whether err was caused by an empty or
// whitespace-only input.
func IsEmptyInput(err error) bool { return transform.IsEmptyInput(err) }

// IsParseError reports whether err was raised while parsing the input.
func IsParseError(err error) bool { return transform.IsParseError(err) }

// IsBodyNotFound reports whether the parsed document had no body element.
func IsBodyNotFound(err error) bool { return transform.IsBodyNotFound(err) }

// IsSerializationError reports whether err was raised while rendering the
// transformed tree.
func IsSerializationError(err error) bool { return transform.IsSerializationError(err) }

// Options configures a Transformer.
type Options struct {
	Selector      string        // CSS selector for target elements (default: p)
	XPath         string        // XPath expression for target elements
	Normalization Normalization // Unicode normalization of rewritten text
	MaxInputSize  int64         // Byte limit for TransformFromReader, <= 0 for none
}

// DefaultOptions returns the default options: paragraphs are targeted, no
// normalization is applied and reader input is limited to 1MB.
func DefaultOptions() Options {
	return Options{
		MaxInputSize: 1024 * 1024, // 1MB
	}
}
