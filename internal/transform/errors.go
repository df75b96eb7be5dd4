package transform

import (
	"errors"
	"fmt"
)

// Kind defines the category of a transform error.
type Kind string

// Error kinds
const (
	KindEmptyInput    Kind = "empty_input"
	KindParse         Kind = "parse"
	KindBodyNotFound  Kind = "body_not_found"
	KindSerialization Kind = "serialization"
	KindSelector      Kind = "selector"
	KindValidation    Kind = "validation"
)

// Sentinel errors raised by the engine itself
var (
	ErrEmptyInput        = errors.New("html input is empty")
	ErrBodyNotFound      = errors.New("document has no body element")
	ErrConflictingTarget = errors.New("selector and xpath are mutually exclusive")
	ErrInvalidDirective  = errors.New("invalid case directive")
)

// Error carries the kind of failure and the operation that raised it.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// Error renders as "[kind:op] msg: cause".
func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("[%s:%s] %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Msg, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps err with a kind and the name of the failing operation.
func WrapError(err error, kind Kind, op, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsEmptyInput returns true if the input was blank
func IsEmptyInput(err error) bool {
	return IsKind(err, KindEmptyInput)
}

// IsParseError returns true if the input could not be parsed
func IsParseError(err error) bool {
	return IsKind(err, KindParse)
}

// IsBodyNotFound returns true if the parsed document had no body
func IsBodyNotFound(err error) bool {
	return IsKind(err, KindBodyNotFound)
}

// IsSerializationError returns true if the tree could not be serialized
func IsSerializationError(err error) bool {
	return IsKind(err, KindSerialization)
}
