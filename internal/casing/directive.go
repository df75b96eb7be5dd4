// Package casing maps text to upper or lower case using full Unicode case
// mappings, independent of any locale.
package casing

import (
	"fmt"
	"strings"
)

// Directive selects the case applied to rewritten text.
type Directive int

// Directive values. The zero value is not a valid directive.
const (
	Uppercase Directive = iota + 1
	Lowercase
)

// String returns the wire name of the directive.
func (d Directive) String() string {
	switch d {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	default:
		return fmt.Sprintf("Directive(%d)", int(d))
	}
}

// Valid reports whether d is Uppercase or Lowercase.
func (d Directive) Valid() bool {
	return d == Uppercase || d == Lowercase
}

// ParseDirective parses "uppercase" or "lowercase", ignoring case and
// surrounding whitespace.
func ParseDirective(s string) (Directive, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uppercase":
		return Uppercase, nil
	case "lowercase":
		return Lowercase, nil
	default:
		return 0, fmt.Errorf("unknown transform %q: must be one of: uppercase, lowercase", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Directive) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid directive %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike ParseDirective
// it accepts only the exact lowercase names.
func (d *Directive) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "uppercase":
		*d = Uppercase
	case "lowercase":
		*d = Lowercase
	default:
		return fmt.Errorf("unknown transform %q: must be one of: uppercase, lowercase", s)
	}
	return nil
}
