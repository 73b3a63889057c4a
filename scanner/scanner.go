// Package scanner provides string- and comment-aware scanning of Luau
// source. It tracks double-quoted, single-quoted and backtick string
// literals, their escape sequences, long-bracket strings ([[...]],
// [==[...]==]), and -- comments in both line and long-bracket form, so
// callers can find literals in generated snippets without re-implementing
// lexing rules.
package scanner

import "strings"

// closingKind tracks which type of string delimiter was just closed.
type closingKind byte

const (
	noClosing       closingKind = iota
	closingDouble               // just closed a "..." string
	closingSingle               // just closed a '...' string
	closingBacktick             // just closed a `...` interpolated string
)

// CodeScanner iterates byte-by-byte over Luau source, tracking string
// literal boundaries, escape sequences and comments.
//
// InString() returns true for the entire string span including both
// opening and closing delimiters. Long brackets are reported the same way:
// their opener and closer belong to the string or comment they delimit.
type CodeScanner struct {
	src         string
	pos         int
	line        int
	inDbl       bool
	inSgl       bool
	inBt        bool
	inLine      bool   // -- comment, ends at newline
	longClose   string // closer of the open long bracket, e.g. "]==]"
	longComment bool   // open long bracket is a comment, not a string
	escaped     bool
	closing     closingKind
	skipUntil   int  // end of a long-bracket opener or closer being consumed
	skipComment bool // the bytes being skipped belong to a comment
}

// New creates a CodeScanner for the given source text.
// Call Next() to advance to the first byte.
func New(src string) *CodeScanner {
	return &CodeScanner{src: src, pos: -1, line: 1}
}

// Next advances to the next byte, updating string/comment/escape state.
// Returns the byte and true, or (0, false) at end of input.
func (s *CodeScanner) Next() (byte, bool) {
	s.closing = noClosing
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]
	if ch == '\n' {
		s.line++
	}

	switch {
	case s.pos < s.skipUntil:
		return ch, true
	case s.inLine:
		if ch == '\n' {
			s.inLine = false
		}
		return ch, true
	case s.longClose != "":
		if s.LookingAt(s.longClose) {
			s.skipUntil = s.pos + len(s.longClose)
			s.skipComment = s.longComment
			s.longClose = ""
		}
		return ch, true
	case s.escaped:
		s.escaped = false
		return ch, true
	}

	inStr := s.inDbl || s.inSgl || s.inBt
	if ch == '\\' && inStr {
		s.escaped = true
		return ch, true
	}
	if !inStr && ch == '-' && s.LookingAt("--") {
		if level, ok := s.longBracket(s.pos + 2); ok {
			s.openLong(level, s.pos+2, true)
		} else {
			s.inLine = true
		}
		return ch, true
	}
	if !inStr && ch == '[' {
		if level, ok := s.longBracket(s.pos); ok {
			s.openLong(level, s.pos, false)
			return ch, true
		}
	}

	if ch == '"' && !s.inSgl && !s.inBt {
		if s.inDbl {
			s.closing = closingDouble
		}
		s.inDbl = !s.inDbl
	} else if ch == '\'' && !s.inDbl && !s.inBt {
		if s.inSgl {
			s.closing = closingSingle
		}
		s.inSgl = !s.inSgl
	} else if ch == '`' && !s.inDbl && !s.inSgl {
		if s.inBt {
			s.closing = closingBacktick
		}
		s.inBt = !s.inBt
	}

	return ch, true
}

// longBracket reports whether a long-bracket opener ([, zero or more =,
// [) starts at offset at, and its level (the number of = signs).
func (s *CodeScanner) longBracket(at int) (int, bool) {
	if at >= len(s.src) || s.src[at] != '[' {
		return 0, false
	}
	level := 0
	for i := at + 1; i < len(s.src); i++ {
		switch s.src[i] {
		case '=':
			level++
		case '[':
			return level, true
		default:
			return 0, false
		}
	}
	return 0, false
}

// openLong enters a long bracket whose opener starts at offset at.
func (s *CodeScanner) openLong(level, at int, comment bool) {
	s.longClose = "]" + strings.Repeat("=", level) + "]"
	s.longComment = comment
	s.skipUntil = at + level + 2
	s.skipComment = comment
}

// InString reports whether the current position is inside a string literal,
// including both opening and closing delimiters.
func (s *CodeScanner) InString() bool {
	if s.inDbl || s.inSgl || s.inBt || s.closing != noClosing {
		return true
	}
	if s.longClose != "" && !s.longComment {
		return true
	}
	return s.pos < s.skipUntil && !s.skipComment
}

// InDoubleString reports whether the current position is inside a
// double-quoted string literal.
func (s *CodeScanner) InDoubleString() bool { return s.inDbl || s.closing == closingDouble }

// InComment reports whether the current position is inside a comment,
// including the -- opener.
func (s *CodeScanner) InComment() bool {
	if s.inLine || (s.longClose != "" && s.longComment) {
		return true
	}
	return s.pos < s.skipUntil && s.skipComment
}

// InCode reports whether the current position is outside all string
// literals and comments.
func (s *CodeScanner) InCode() bool { return !s.InString() && !s.InComment() }

// Pos returns the current byte offset (the position of the last byte
// returned by Next). Returns -1 before the first call to Next.
func (s *CodeScanner) Pos() int { return s.pos }

// Line returns the current 1-based line number.
func (s *CodeScanner) Line() int { return s.line }

// LookingAt checks if src[pos:] starts with the given prefix.
func (s *CodeScanner) LookingAt(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

// Literal is a double-quoted string literal found in source, delimiters
// included.
type Literal struct {
	Text  string
	Start int
	Line  int
}

// DoubleQuoted returns every double-quoted literal in src outside comments,
// in source order. An unterminated literal at end of input is dropped.
func DoubleQuoted(src string) []Literal {
	var lits []Literal
	start, line := -1, 0
	sc := New(src)
	for _, ok := sc.Next(); ok; _, ok = sc.Next() {
		if !sc.InDoubleString() {
			continue
		}
		if start < 0 {
			start, line = sc.Pos(), sc.Line()
			continue
		}
		if sc.closing == closingDouble {
			lits = append(lits, Literal{Text: src[start : sc.Pos()+1], Start: start, Line: line})
			start = -1
		}
	}
	return lits
}

// FindInCode returns the offset of the first occurrence of needle that
// starts outside strings and comments, or -1.
func FindInCode(src, needle string) int {
	sc := New(src)
	for _, ok := sc.Next(); ok; _, ok = sc.Next() {
		if sc.InCode() && sc.LookingAt(needle) {
			return sc.Pos()
		}
	}
	return -1
}
