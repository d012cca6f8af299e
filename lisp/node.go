package lisp

import (
	"bytes"

	"github.com/opensdraw/lcad/parser/token"
)

// Node is a node in the abstract syntax tree produced by a Reader.  The only
// implementations are *Atom and *SExpr.  Nodes are immutable once
// constructed so the same tree can be evaluated any number of times.
type Node interface {
	Source() *token.Location
	String() string
	node()
}

// Atom is a leaf of the syntax tree: a literal number or string, or a symbol.
type Atom struct {
	text   string
	lit    Value
	source *token.Location
}

// SymbolAtom returns an Atom naming the symbol name.
func SymbolAtom(name string, source *token.Location) *Atom {
	return &Atom{text: name, source: source}
}

// LiteralAtom returns an Atom which evaluates to v.  The text is the source
// representation of the literal.
func LiteralAtom(text string, v Value, source *token.Location) *Atom {
	return &Atom{text: text, lit: v, source: source}
}

func (a *Atom) node() {}

// Source returns the location of the atom's first character.
func (a *Atom) Source() *token.Location {
	return a.source
}

// Text returns the atom's source text.
func (a *Atom) Text() string {
	return a.text
}

func (a *Atom) String() string {
	return a.text
}

// IsSymbol returns true if a is a symbol rather than a literal.
func (a *Atom) IsSymbol() bool {
	return a.lit == nil
}

// IsKeyword returns true if a is a keyword symbol such as :color.
func (a *Atom) IsKeyword() bool {
	return a.IsSymbol() && len(a.text) > 1 && a.text[0] == KeywordPrefix
}

// Keyword returns the keyword name without its prefix.  Keyword returns an
// empty string if a is not a keyword.
func (a *Atom) Keyword() string {
	if !a.IsKeyword() {
		return ""
	}
	return a.text[1:]
}

// Literal returns the value of a literal atom or nil for a symbol.
func (a *Atom) Literal() Value {
	return a.lit
}

// SExpr is a parenthesized list of nodes.
type SExpr struct {
	cells  []Node
	source *token.Location
}

// NewSExpr returns an SExpr containing cells.  The slice is copied.
func NewSExpr(cells []Node, source *token.Location) *SExpr {
	cp := make([]Node, len(cells))
	copy(cp, cells)
	return &SExpr{cells: cp, source: source}
}

func (s *SExpr) node() {}

// Source returns the location of the opening parenthesis.
func (s *SExpr) Source() *token.Location {
	return s.source
}

// Len returns the number of child nodes.
func (s *SExpr) Len() int {
	return len(s.cells)
}

// At returns the i-th child node.
func (s *SExpr) At(i int) Node {
	return s.cells[i]
}

// Cells returns a copy of the child nodes.
func (s *SExpr) Cells() []Node {
	cp := make([]Node, len(s.cells))
	copy(cp, s.cells)
	return cp
}

// Rest returns a copy of the child nodes following the first n.
func (s *SExpr) Rest(n int) []Node {
	if n >= len(s.cells) {
		return nil
	}
	cp := make([]Node, len(s.cells)-n)
	copy(cp, s.cells[n:])
	return cp
}

// Head returns the symbol name at the head of s, if s begins with a symbol.
func (s *SExpr) Head() (string, bool) {
	if len(s.cells) == 0 {
		return "", false
	}
	a, ok := s.cells[0].(*Atom)
	if !ok || !a.IsSymbol() {
		return "", false
	}
	return a.text, true
}

func (s *SExpr) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, c := range s.cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(")")
	return buf.String()
}
