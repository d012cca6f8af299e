package lexer

import (
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/opensdraw/lcad/parser/token"
)

// Error describes a malformed token stream.  After the lexer emits an ERROR
// token every subsequent call to NextToken returns the same error.
type Error struct {
	Source *token.Location
	Reason string
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Reason)
}

// Lexer converts source text into tokens.  Whitespace and line comments
// separate tokens but are never emitted.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	err *Error
}

// New returns a Lexer that reads runes from s.
func New(s *token.Scanner) *Lexer {
	return &Lexer{
		scanner: s,
	}
}

// Err returns the error that terminated the token stream, if any.
func (lex *Lexer) Err() *Error {
	return lex.err
}

// NextToken scans and returns the next token.  At the end of input an EOF
// token is returned.
func (lex *Lexer) NextToken() *token.Token {
	if lex.err != nil {
		return &token.Token{Type: token.ERROR, Text: lex.err.Reason, Source: lex.err.Source}
	}
	for {
		err := lex.skipWhitespace()
		if err != nil {
			return lex.emitError(err)
		}
		if lex.peekRune() != ';' {
			break
		}
		err = lex.skipComment()
		if err != nil {
			return lex.emitError(err)
		}
	}
	err := lex.readChar()
	if err != nil {
		return lex.emitError(err)
	}
	switch lex.ch {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case '"':
		return lex.readString()
	default:
		return lex.readAtom()
	}
}

func (lex *Lexer) readString() *token.Token {
	for {
		c, ok := lex.scanner.Peek()
		if !ok {
			err := lex.readChar()
			if err == nil || err == io.EOF {
				return lex.errorf("unterminated string literal")
			}
			return lex.emitError(err)
		}
		switch c {
		case '\n':
			return lex.errorf("unterminated string literal")
		case '"':
			err := lex.readChar()
			if err != nil {
				return lex.emitError(err)
			}
			return lex.scanner.EmitToken(token.STRING)
		case '\\':
			// The escape sequence is validated by the parser.
			err := lex.readChar()
			if err != nil {
				return lex.emitError(err)
			}
		}
		err := lex.readChar()
		if err != nil {
			if err == io.EOF {
				return lex.errorf("unterminated string literal")
			}
			return lex.emitError(err)
		}
	}
}

func (lex *Lexer) readAtom() *token.Token {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !isAtomRune(c) {
			break
		}
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err)
		}
	}
	return lex.scanner.EmitToken(classifyAtom(lex.scanner.Text()))
}

// classifyAtom decides whether the text of an atom is an integer, a floating
// point number or a symbol.  The parser is responsible for range checks.
func classifyAtom(text string) token.Type {
	digits := text
	if len(digits) > 1 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if digits == "" || !(isDigit(rune(digits[0])) || (digits[0] == '.' && len(digits) > 1 && isDigit(rune(digits[1])))) {
		return token.SYMBOL
	}
	allDigits := true
	for _, c := range digits {
		if !isDigit(c) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return token.INT
	}
	_, err := strconv.ParseFloat(text, 64)
	if err == nil {
		return token.FLOAT
	}
	return token.SYMBOL
}

func (lex *Lexer) skipComment() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || c == '\n' {
			break
		}
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !unicode.IsSpace(c) {
			break
		}
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) emitError(err error) *token.Token {
	if err == io.EOF {
		return lex.scanner.EmitToken(token.EOF)
	}
	return lex.fail(err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.fail(fmt.Sprintf(format, v...))
}

func (lex *Lexer) fail(reason string) *token.Token {
	lex.err = &Error{
		Source: lex.scanner.LocStart(),
		Reason: reason,
	}
	lex.scanner.Ignore()
	return &token.Token{Type: token.ERROR, Text: reason, Source: lex.err.Source}
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	if err != nil {
		return err
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isAtomRune(c rune) bool {
	switch c {
	case '(', ')', '"', ';':
		return false
	}
	return !unicode.IsSpace(c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
