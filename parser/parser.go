/*
Package parser reads lcad source text into syntax trees.

	program := <expr>*
	expr    := '(' <expr>* ')' | <number> | <string> | <symbol>
	number  := /[+-]?[0-9]+/ | /[+-]?[0-9]*\.?[0-9]+([eE][+-]?[0-9]+)?/
	string  := '"' ( /[^"\\\n]/ | '\' <any> )* '"'
	symbol  := /[^[:space:]()";]+/
	comment := ';' <any rune but newline>*

Parsing is performed by the recursive-descent parser in package rdparser.
*/
package parser

import (
	"os"
	"strings"

	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/parser/rdparser"
)

// NewReader returns a lisp.Reader which parses source streams.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// ParseString parses the forms in source.  The name is used in source
// locations.
func ParseString(name, source string) ([]lisp.Node, error) {
	return NewReader().Read(name, strings.NewReader(source))
}

// ParseFile parses the forms in the file at path.
func ParseFile(path string) ([]lisp.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewReader().Read(path, f)
}
