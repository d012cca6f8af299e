package lisp

import (
	"bytes"
	"math"
	"strconv"

	"github.com/opensdraw/lcad/model"
)

// LValType is the variant tag of a Value.
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LNil
	LBool
	LInt
	LFloat
	LString
	LList
	LFun
	LPart
	LMatrix
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LNil:     "nil",
	LBool:    "boolean",
	LInt:     "int",
	LFloat:   "float",
	LString:  "string",
	LList:    "list",
	LFun:     "function",
	LPart:    "part",
	LMatrix:  "matrix",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// Value is a runtime value.  The set of implementations is closed: Nil, Bool,
// Int, Float, String, *List, *Matrix, *Closure, *Builtin, *SpecialOp and
// *PartHandle.
type Value interface {
	Type() LValType
	String() string
	isValue()
}

// Nil is the absent value.
type Nil struct{}

// Bool is a boolean value.  The symbol t is bound to Bool(true).
type Bool bool

// Int is an integer number.
type Int int64

// Float is a floating point number.
type Float float64

// String is a string value.
type String string

// List is an ordered, mutable container of values.
type List struct {
	Cells []Value
}

// PartHandle is an opaque reference to a part emitted into the model.
type PartHandle struct {
	Part *model.Part
}

// Matrix is a 4x4 transformation matrix.  Arithmetic on matrices is
// pointwise except that a matrix multiplied by a matrix or a vector is a
// matrix product.
type Matrix struct {
	M model.Matrix
}

// NewList returns a List containing the given values.
func NewList(v ...Value) *List {
	cells := make([]Value, len(v))
	copy(cells, v)
	return &List{Cells: cells}
}

func (Nil) isValue()         {}
func (Bool) isValue()        {}
func (Int) isValue()         {}
func (Float) isValue()       {}
func (String) isValue()      {}
func (*List) isValue()       {}
func (*PartHandle) isValue() {}
func (*Matrix) isValue()     {}

func (Nil) Type() LValType         { return LNil }
func (Bool) Type() LValType        { return LBool }
func (Int) Type() LValType         { return LInt }
func (Float) Type() LValType       { return LFloat }
func (String) Type() LValType      { return LString }
func (*List) Type() LValType       { return LList }
func (*PartHandle) Type() LValType { return LPart }
func (*Matrix) Type() LValType     { return LMatrix }

func (Nil) String() string {
	return "nil"
}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (x Int) String() string {
	return strconv.FormatInt(int64(x), 10)
}

func (x Float) String() string {
	f := float64(x)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String returns the quoted representation of s.  Use Display to obtain the
// raw text.
func (s String) String() string {
	return strconv.Quote(string(s))
}

// Len returns the number of elements in the list.
func (l *List) Len() int {
	return len(l.Cells)
}

func (l *List) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, c := range l.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(")")
	return buf.String()
}

func (p *PartHandle) String() string {
	if p.Part == nil {
		return "<part>"
	}
	return "<" + p.Part.String() + ">"
}

// String returns the LDraw coefficients of the matrix, x y z a b c d e f g
// h i.
func (m *Matrix) String() string {
	var buf bytes.Buffer
	buf.WriteString("<matrix")
	for _, c := range m.M.LDraw() {
		buf.WriteString(" ")
		buf.WriteString(Float(c).String())
	}
	buf.WriteString(">")
	return buf.String()
}

// IsVector returns true if v is a non-empty list of numbers.
func IsVector(v Value) bool {
	lis, ok := v.(*List)
	if !ok || len(lis.Cells) == 0 {
		return false
	}
	for _, c := range lis.Cells {
		if !IsNumeric(c) {
			return false
		}
	}
	return true
}

// Display returns the text of v as written by print: strings are not quoted.
func Display(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return v.String()
}

// IsNil returns true if v is Nil (or a nil interface).
func IsNil(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Nil)
	return ok
}

// True reports the truthiness of v.  Nil, false, numeric zero and the empty
// list are false.  All other values are true.
func True(v Value) bool {
	switch v := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(v)
	case Int:
		return v != 0
	case Float:
		return v != 0
	case *List:
		return len(v.Cells) != 0
	default:
		return true
	}
}

// Boolean converts a Go bool into a Value.
func Boolean(b bool) Value {
	return Bool(b)
}

// IsNumeric returns true if v is an Int or a Float.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	}
	return false
}

// ToFloat returns the numeric value of v as a float64.
func ToFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case Int:
		return float64(v), true
	case Float:
		return float64(v), true
	}
	return 0, false
}

// Equal compares two values by variant and content.  Numbers compare
// numerically across Int and Float.  Functions are only equal to themselves.
func Equal(a, b Value) bool {
	if IsNumeric(a) && IsNumeric(b) {
		if x, ok := a.(Int); ok {
			if y, ok := b.(Int); ok {
				return x == y
			}
		}
		x, _ := ToFloat(a)
		y, _ := ToFloat(b)
		return x == y
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case Nil:
		return true
	case Bool:
		return a == b.(Bool)
	case String:
		return a == b.(String)
	case *List:
		bl := b.(*List)
		if len(a.Cells) != len(bl.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], bl.Cells[i]) {
				return false
			}
		}
		return true
	case *PartHandle:
		return a.Part == b.(*PartHandle).Part
	case *Matrix:
		return a.M == b.(*Matrix).M
	}
	return a == b
}
