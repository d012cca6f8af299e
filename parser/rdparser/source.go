package rdparser

import (
	"github.com/opensdraw/lcad/parser/lexer"
	"github.com/opensdraw/lcad/parser/token"
)

// TokenSource buffers one token of lookahead over a Lexer.
type TokenSource struct {
	lex   *lexer.Lexer
	Token *token.Token
	Peek  *token.Token
}

// NewTokenSource initializes and returns a new TokenSource that scans tokens
// from scanner.
func NewTokenSource(scanner *token.Scanner) *TokenSource {
	s := &TokenSource{
		lex: lexer.New(scanner),
	}
	s.scan()
	return s
}

// Err returns the error that terminated the token stream, if any.
func (s *TokenSource) Err() *lexer.Error {
	return s.lex.Err()
}

// AcceptType advances past the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek.Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Scan advances to the next token.  Scan returns false without advancing
// past the end of input.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek
		return false
	}
	s.scan()
	return true
}

// IsEOF returns true if there are no more tokens.
func (s *TokenSource) IsEOF() bool {
	return s.Peek.Type == token.EOF
}

func (s *TokenSource) scan() {
	s.Token = s.Peek
	s.Peek = s.lex.NextToken()
}
