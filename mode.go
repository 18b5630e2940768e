package fmtbuf

import (
	"github.com/zeebo/errs/v2"
)

// Mode controls where a writer is allowed to cut text that does not fit.
type Mode uint8

const (
	// CodePoints cuts on any code point boundary.
	CodePoints Mode = iota

	// Graphemes cuts on code point boundaries and also drops zero width
	// joiners left dangling at the cut. Other cluster rules, including
	// unterminated bidirectional marks, are not repaired.
	Graphemes
)

func (m Mode) String() string {
	switch m {
	case CodePoints:
		return "codepoints"
	case Graphemes:
		return "graphemes"
	default:
		return "unknown"
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "codepoints", "codepoint", "":
		return CodePoints, nil
	case "graphemes", "grapheme":
		return Graphemes, nil
	default:
		return 0, errs.Errorf("%q: %w", s, ErrMode)
	}
}
