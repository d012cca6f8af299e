package libstring

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/opensdraw/lcad/lisp"
)

// LoadPackage adds the string functions to reg.
func LoadPackage(reg *lisp.Registry) error {
	for _, fn := range builtins {
		reg.Define(fn)
	}
	return nil
}

var builtins = []*lisp.Builtin{
	lisp.NewBuiltin("format", lisp.AtLeast(1), builtinFormat),
	lisp.NewBuiltin("to-string", lisp.Fixed(1), builtinToString),
	lisp.NewBuiltin("string-upcase", lisp.Fixed(1), stringMap("string-upcase", strings.ToUpper)),
	lisp.NewBuiltin("string-downcase", lisp.Fixed(1), stringMap("string-downcase", strings.ToLower)),
	lisp.NewBuiltin("string-trim", lisp.Fixed(1), stringMap("string-trim", strings.TrimSpace)),
	lisp.NewBuiltin("string-join", lisp.Fixed(2), builtinJoin),
	lisp.NewBuiltin("string-split", lisp.Fixed(2), builtinSplit),
	lisp.NewBuiltin("string-repeat", lisp.Fixed(2), builtinRepeat),
}

// builtinFormat substitutes the text of successive values for each {} in
// the format string.  Literal braces are written {{ and }}.
func builtinFormat(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	format := args[0]
	fvals := args[1:]
	if format.Type() != lisp.LString {
		return nil, lisp.Errorf(lisp.TypeError, "format: first argument is not a string: %v", format)
	}
	parts, err := parseFormatString(string(format.(lisp.String)))
	if err != nil {
		return nil, lisp.Errorf(lisp.RuntimeError, "format: %v", err)
	}
	var buf bytes.Buffer
	anonIndex := 0
	for _, p := range parts {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") && len(p) > 1 {
			p = strings.Join(strings.Fields(p), "")
			if p != "{}" {
				return nil, lisp.Errorf(lisp.RuntimeError, "format: formatting directives must be empty")
			}
			if anonIndex >= len(fvals) {
				return nil, lisp.Errorf(lisp.RuntimeError, "format: too many formatting directives for supplied values")
			}
			buf.WriteString(lisp.Display(fvals[anonIndex]))
			anonIndex++
		} else {
			buf.WriteString(p)
		}
	}
	if anonIndex < len(fvals) {
		return nil, lisp.Errorf(lisp.RuntimeError, "format: %d values supplied for %d formatting directives", len(fvals), anonIndex)
	}
	return lisp.String(buf.String()), nil
}

func parseFormatString(f string) ([]string, error) {
	var s []string
	tokens := tokenizeFormatString(f)
	for len(tokens) > 0 {
		tok := tokens[0]
		if tok.typ == formatText {
			s = append(s, tok.text)
			tokens = tokens[1:]
			continue
		}
		if tok.typ == formatClose {
			if len(tokens) < 2 || tokens[1].typ != formatClose {
				return nil, fmt.Errorf("unexpected closing brace '}' outside of formatting directive")
			}
			s = append(s, "}")
			tokens = tokens[2:]
			continue
		}
		if len(tokens) < 2 {
			return nil, fmt.Errorf("unclosed formatting directive")
		}
		switch tokens[1].typ {
		case formatOpen:
			s = append(s, "{")
			tokens = tokens[2:]
		case formatClose:
			s = append(s, "{}")
			tokens = tokens[2:]
		case formatText:
			if len(tokens) < 3 {
				return nil, fmt.Errorf("unclosed formatting directive")
			}
			if tokens[2].typ != formatClose {
				return nil, fmt.Errorf("invalid formatting directive")
			}
			s = append(s, "{"+tokens[1].text+"}")
			tokens = tokens[3:]
		}
	}
	return s, nil
}

func tokenizeFormatString(f string) []formatToken {
	var tokens []formatToken
	for {
		i := strings.IndexAny(f, "{}")
		if i < 0 {
			if f != "" {
				tokens = append(tokens, formatToken{formatText, f})
			}
			return tokens
		}
		if i > 0 {
			tokens = append(tokens, formatToken{formatText, f[:i]})
			f = f[i:]
		}
		if f[0] == '{' {
			tokens = append(tokens, formatToken{formatOpen, "{"})
		} else {
			tokens = append(tokens, formatToken{formatClose, "}"})
		}
		f = f[1:]
	}
}

type formatTokenType uint

const (
	formatText formatTokenType = iota
	formatOpen
	formatClose
)

type formatToken struct {
	typ  formatTokenType
	text string
}

func builtinToString(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	return lisp.String(lisp.Display(args[0])), nil
}

func stringArg(name string, v lisp.Value) (string, error) {
	s, ok := v.(lisp.String)
	if !ok {
		return "", lisp.Errorf(lisp.TypeError, "%s: not a string: %v", name, v)
	}
	return string(s), nil
}

func stringMap(name string, fn func(string) string) lisp.BuiltinFunc {
	return func(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
		s, err := stringArg(name, args[0])
		if err != nil {
			return nil, err
		}
		return lisp.String(fn(s)), nil
	}
}

// builtinJoin concatenates the text of the elements of a list with a
// separator.
func builtinJoin(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	lis, ok := args[0].(*lisp.List)
	if !ok {
		return nil, lisp.Errorf(lisp.TypeError, "string-join: not a list: %v", args[0])
	}
	sep, err := stringArg("string-join", args[1])
	if err != nil {
		return nil, err
	}
	elems := make([]string, lis.Len())
	for i, v := range lis.Cells {
		elems[i] = lisp.Display(v)
	}
	return lisp.String(strings.Join(elems, sep)), nil
}

func builtinSplit(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	s, err := stringArg("string-split", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := stringArg("string-split", args[1])
	if err != nil {
		return nil, err
	}
	fields := strings.Split(s, sep)
	cells := make([]lisp.Value, len(fields))
	for i, f := range fields {
		cells[i] = lisp.String(f)
	}
	return lisp.NewList(cells...), nil
}

func builtinRepeat(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	s, err := stringArg("string-repeat", args[0])
	if err != nil {
		return nil, err
	}
	n, ok := args[1].(lisp.Int)
	if !ok || n < 0 {
		return nil, lisp.Errorf(lisp.TypeError, "string-repeat: count is not a non-negative integer: %v", args[1])
	}
	return lisp.String(strings.Repeat(s, int(n))), nil
}
