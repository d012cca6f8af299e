package lisp

import (
	"sort"
	"strconv"
	"strings"
)

// Variadic is the Max of a Signature which accepts any number of trailing
// positional arguments.
const Variadic = -1

// Keyword is a named parameter of a function.  Builtins supply a Default
// value.  Closures supply an Expr that is evaluated in the call frame each
// time the keyword is omitted.
type Keyword struct {
	Name    string
	Default Value
	Expr    Node
}

// Signature describes the arguments a callable accepts.
type Signature struct {
	Min      int
	Max      int
	Keywords []Keyword
}

// Fixed returns a Signature accepting exactly n positional arguments.
func Fixed(n int) *Signature {
	return &Signature{Min: n, Max: n}
}

// Range returns a Signature accepting between min and max positional
// arguments.
func Range(min, max int) *Signature {
	return &Signature{Min: min, Max: max}
}

// AtLeast returns a variadic Signature requiring min positional arguments.
func AtLeast(min int) *Signature {
	return &Signature{Min: min, Max: Variadic}
}

// WithKeywords returns a copy of s accepting the given keyword parameters.
func (s *Signature) WithKeywords(kw ...Keyword) *Signature {
	cp := *s
	cp.Keywords = append(append([]Keyword(nil), s.Keywords...), kw...)
	return &cp
}

// Keyword returns the keyword parameter called name.
func (s *Signature) Keyword(name string) (*Keyword, bool) {
	for i := range s.Keywords {
		if s.Keywords[i].Name == name {
			return &s.Keywords[i], true
		}
	}
	return nil, false
}

// Expected describes the positional arity of s, e.g. "2", "at least 1" or
// "1 to 3".
func (s *Signature) Expected() string {
	switch {
	case s.Max == Variadic:
		return "at least " + strconv.Itoa(s.Min)
	case s.Min == s.Max:
		return strconv.Itoa(s.Min)
	default:
		return strconv.Itoa(s.Min) + " to " + strconv.Itoa(s.Max)
	}
}

// CheckArity returns an ArityError if n positional arguments do not satisfy
// s.
func (s *Signature) CheckArity(name string, n int) error {
	if n >= s.Min && (s.Max == Variadic || n <= s.Max) {
		return nil
	}
	err := ErrorConditionf(ArityError, "arity-error",
		"%s: expected %s argument%s, got %d", name, s.Expected(), plural(s.Min, s.Max), n)
	err.Expected = s.Expected()
	err.Actual = n
	return err
}

// CheckKeywords returns a TypeError if kw contains a name s does not
// recognize.  Unknown names are reported in sorted order.
func (s *Signature) CheckKeywords(name string, kw map[string]Value) error {
	var unknown []string
	for k := range kw {
		if _, ok := s.Keyword(k); !ok {
			unknown = append(unknown, string(KeywordPrefix)+k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return ErrorConditionf(TypeError, "unknown-keyword",
		"%s: unknown keyword argument: %s", name, strings.Join(unknown, " "))
}

func (s *Signature) String() string {
	var buf strings.Builder
	buf.WriteString(s.Expected())
	for _, kw := range s.Keywords {
		buf.WriteString(" ")
		buf.WriteByte(KeywordPrefix)
		buf.WriteString(kw.Name)
	}
	return buf.String()
}

func plural(min, max int) string {
	if max == 1 || (min == 1 && max == Variadic) {
		return ""
	}
	return "s"
}
