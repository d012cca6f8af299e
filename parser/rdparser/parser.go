package rdparser

import (
	"io"
	"strconv"

	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]lisp.Node, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// Parser is a recursive-descent parser producing lisp syntax trees.
type Parser struct {
	src *TokenSource
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return &Parser{
		src: NewTokenSource(scanner),
	}
}

// ParseProgram parses top-level forms until the end of input.
func (p *Parser) ParseProgram() ([]lisp.Node, error) {
	var forms []lisp.Node
	for !p.src.IsEOF() {
		node, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		forms = append(forms, node)
	}
	return forms, nil
}

// ParseExpression parses a single form.
func (p *Parser) ParseExpression() (lisp.Node, error) {
	switch p.src.Peek.Type {
	case token.INT:
		return p.ParseLiteralInt()
	case token.FLOAT:
		return p.ParseLiteralFloat()
	case token.STRING:
		return p.ParseLiteralString()
	case token.SYMBOL:
		return p.ParseSymbol()
	case token.PAREN_L:
		return p.ParseSExpression()
	case token.PAREN_R:
		p.src.Scan()
		return nil, p.errorf("unmatched-syntax", "unmatched %s", p.src.Token.Text)
	case token.ERROR:
		p.src.Scan()
		return nil, p.lexError()
	case token.EOF:
		p.src.Scan()
		return nil, p.errorf("unexpected-eof", "unexpected end of input")
	default:
		p.src.Scan()
		return nil, p.errorf("unexpected-token", "unexpected %s", p.src.Token.Type)
	}
}

func (p *Parser) ParseLiteralInt() (lisp.Node, error) {
	if !p.src.AcceptType(token.INT) {
		return nil, p.errorf("parse-error", "invalid integer literal: %v", p.src.Peek.Type)
	}
	text := p.src.Token.Text
	x, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.errorf("integer-overflow-error", "integer literal overflows int: %v", text)
	}
	return lisp.LiteralAtom(text, lisp.Int(x), p.src.Token.Source), nil
}

func (p *Parser) ParseLiteralFloat() (lisp.Node, error) {
	if !p.src.AcceptType(token.FLOAT) {
		return nil, p.errorf("parse-error", "invalid float literal: %v", p.src.Peek.Type)
	}
	text := p.src.Token.Text
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("invalid-float", "invalid floating point literal: %v", text)
	}
	return lisp.LiteralAtom(text, lisp.Float(x), p.src.Token.Source), nil
}

func (p *Parser) ParseLiteralString() (lisp.Node, error) {
	if !p.src.AcceptType(token.STRING) {
		return nil, p.errorf("parse-error", "invalid string literal: %v", p.src.Peek.Type)
	}
	text := p.src.Token.Text
	s, err := strconv.Unquote(text)
	if err != nil {
		return nil, p.errorf("invalid-string", "invalid string literal: %v", text)
	}
	return lisp.LiteralAtom(text, lisp.String(s), p.src.Token.Source), nil
}

func (p *Parser) ParseSymbol() (lisp.Node, error) {
	if !p.src.AcceptType(token.SYMBOL) {
		return nil, p.errorf("parse-error", "invalid symbol: %v", p.src.Peek.Type)
	}
	return lisp.SymbolAtom(p.src.Token.Text, p.src.Token.Source), nil
}

// ParseSExpression parses a parenthesized list of forms.  The resulting node
// is located at its opening parenthesis.
func (p *Parser) ParseSExpression() (lisp.Node, error) {
	if !p.src.AcceptType(token.PAREN_L) {
		return nil, p.errorf("parse-error", "invalid expression: %v", p.src.Peek.Type)
	}
	open := p.src.Token
	var cells []lisp.Node
	for {
		if p.src.IsEOF() {
			err := lisp.ErrorConditionf(lisp.ParseError, "unexpected-eof", "unmatched %s", open.Text)
			err.Source = open.Source
			return nil, err
		}
		if p.src.AcceptType(token.PAREN_R) {
			break
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
	return lisp.NewSExpr(cells, open.Source), nil
}

func (p *Parser) lexError() error {
	lerr := p.src.Err()
	err := lisp.ErrorConditionf(lisp.LexError, "scan-error", "%s", p.src.Token.Text)
	err.Source = p.src.Token.Source
	if lerr != nil {
		err.Message = lerr.Reason
		err.Source = lerr.Source
		err.Cause = lerr
	}
	return err
}

func (p *Parser) errorf(condition string, format string, v ...interface{}) error {
	err := lisp.ErrorConditionf(lisp.ParseError, condition, format, v...)
	err.Source = p.src.Token.Source
	return err
}
