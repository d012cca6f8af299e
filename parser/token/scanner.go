package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream.  The
// scanner tracks the line and column of every rune it consumes so emitted
// tokens carry accurate source locations.
type Scanner struct {
	file string
	buf  []byte

	start     int // byte offset where the current token starts
	startLine int
	startCol  int

	next int // byte offset of the rune following c
	line int // line of c
	col  int // column of c
	c    Rune

	readErr error
}

// NewScanner reads all of r and returns a Scanner positioned before the first
// rune.  A read error is reported by the first call to ScanRune.
func NewScanner(file string, r io.Reader) *Scanner {
	buf, err := io.ReadAll(r)
	s := &Scanner{
		file:    file,
		buf:     buf,
		readErr: err,
		line:    1,
		col:     0,
	}
	s.startLine = 1
	s.startCol = 1
	return s
}

// File returns the name of the file being scanned.
func (s *Scanner) File() string {
	return s.file
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col + 1
	if s.c.C == '\n' && s.c.N > 0 {
		s.startLine = s.line + 1
		s.startCol = 1
	}
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.buf[s.start:s.next])
}

// Rune returns the current unicode rune that is being scanned.
func (s *Scanner) Rune() rune {
	return s.c.C
}

// Peek returns the next rune to be scanned.  If an invalid utf-8 sequence or
// EOF prevents futher runes from being scanned Peek returns a false second
// value.
func (s *Scanner) Peek() (rune, bool) {
	if s.readErr != nil || s.next >= len(s.buf) {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	if (Rune{c, n}).IsRuneError() {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  At the end of input ScanRune returns io.EOF.
func (s *Scanner) ScanRune() error {
	if s.readErr != nil {
		return s.readErr
	}
	if s.next >= len(s.buf) {
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	r := Rune{c, n}
	if r.IsRuneError() {
		return fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", s.buf[s.next])
	}
	if s.c.C == '\n' && s.c.N > 0 {
		s.line++
		s.col = 0
	}
	s.c = r
	s.col++
	s.next += n
	return nil
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the current scanner position, the last
// rune of the current token.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.next - s.c.N,
		Line: s.line,
		Col:  s.col,
	}
}

// Rune contains a rune read by Scanner along with its encoded width.
type Rune struct {
	C rune
	N int
}

// IsRuneError returns true if Rune represents an invalid utf-8 sequence read
// by utf8.DecodeRune.
func (r Rune) IsRuneError() bool {
	return r.C == utf8.RuneError && r.N == 1
}
