package casing

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalization names a Unicode normalization form applied after case
// mapping. The empty value disables normalization.
type Normalization string

// Supported normalization forms.
const (
	NormalizeNone Normalization = ""
	NormalizeNFC  Normalization = "nfc"
	NormalizeNFD  Normalization = "nfd"
	NormalizeNFKC Normalization = "nfkc"
	NormalizeNFKD Normalization = "nfkd"
)

// ParseNormalization parses a normalization form name. "" and "none" both
// disable normalization.
func ParseNormalization(s string) (Normalization, error) {
	switch n := Normalization(strings.ToLower(strings.TrimSpace(s))); n {
	case "none", NormalizeNone:
		return NormalizeNone, nil
	case NormalizeNFC, NormalizeNFD, NormalizeNFKC, NormalizeNFKD:
		return n, nil
	default:
		return NormalizeNone, fmt.Errorf("unknown normalization %q: must be one of: none, nfc, nfd, nfkc, nfkd", s)
	}
}

func (n Normalization) form() (norm.Form, bool) {
	switch n {
	case NormalizeNFC:
		return norm.NFC, true
	case NormalizeNFD:
		return norm.NFD, true
	case NormalizeNFKC:
		return norm.NFKC, true
	case NormalizeNFKD:
		return norm.NFKD, true
	default:
		return 0, false
	}
}

// Mapper rewrites strings to the case selected by a Directive.
//
// A Mapper carries transformer state and must not be shared between
// goroutines; build one per transformation.
type Mapper struct {
	directive Directive
	caser     cases.Caser
	form      norm.Form
	normalize bool
}

// NewMapper returns a Mapper for d. Case mapping is locale-insensitive and
// uses full mappings, so "ß" uppercases to "SS" and a word-final sigma
// lowercases to "ς".
func NewMapper(d Directive, n Normalization) (*Mapper, error) {
	m := &Mapper{directive: d}
	switch d {
	case Uppercase:
		m.caser = cases.Upper(language.Und)
	case Lowercase:
		m.caser = cases.Lower(language.Und)
	default:
		return nil, fmt.Errorf("invalid directive %d", int(d))
	}

	parsed, err := ParseNormalization(string(n))
	if err != nil {
		return nil, err
	}
	m.form, m.normalize = parsed.form()
	return m, nil
}

// Directive returns the directive the mapper applies.
func (m *Mapper) Directive() Directive {
	return m.directive
}

// Map returns s in the mapper's case, normalized if requested.
func (m *Mapper) Map(s string) string {
	out := m.caser.String(s)
	if m.normalize {
		out = m.form.String(out)
	}
	return out
}
