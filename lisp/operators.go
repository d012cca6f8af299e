package lisp

import (
	"math"

	"github.com/opensdraw/lcad/model"
)

// numOp applies an arithmetic operator to two numbers.  Integer operands
// produce an integer result and any float operand promotes the result to a
// float.
func numOp(name string, a, b Value, ints func(x, y int64) (int64, error), floats func(x, y float64) float64) (Value, error) {
	if !IsNumeric(a) {
		return nil, Errorf(TypeError, "%s: not a number: %v", name, a)
	}
	if !IsNumeric(b) {
		return nil, Errorf(TypeError, "%s: not a number: %v", name, b)
	}
	x, xint := a.(Int)
	y, yint := b.(Int)
	if xint && yint && ints != nil {
		z, err := ints(int64(x), int64(y))
		if err != nil {
			return nil, err
		}
		return Int(z), nil
	}
	fx, _ := ToFloat(a)
	fy, _ := ToFloat(b)
	return Float(floats(fx, fy)), nil
}

// arith applies the scalar operator op to a and b.  Vectors (lists of
// numbers) of equal length combine element by element, as do matrices, and a
// number combines with every element of a vector or matrix.
func arith(name string, a, b Value, op func(a, b Value) (Value, error)) (Value, error) {
	switch a := a.(type) {
	case *List:
		return arithList(name, a.Cells, b, false, op)
	case *Matrix:
		return arithMatrix(name, a, b, false, op)
	}
	switch b := b.(type) {
	case *List:
		return arithList(name, b.Cells, a, true, op)
	case *Matrix:
		return arithMatrix(name, b, a, true, op)
	}
	return op(a, b)
}

// arithList combines the elements of a vector with other.  When swapped is
// true the vector is the right operand.
func arithList(name string, cells []Value, other Value, swapped bool, op func(a, b Value) (Value, error)) (Value, error) {
	var ocells []Value
	switch o := other.(type) {
	case *List:
		if len(o.Cells) != len(cells) {
			return nil, Errorf(TypeError, "%s: vector lengths differ: %d and %d", name, len(cells), len(o.Cells))
		}
		ocells = o.Cells
	case Int, Float:
	default:
		return nil, Errorf(TypeError, "%s: not a number or vector: %v", name, other)
	}
	out := make([]Value, len(cells))
	for i, x := range cells {
		y := other
		if ocells != nil {
			y = ocells[i]
		}
		var err error
		if swapped {
			out[i], err = op(y, x)
		} else {
			out[i], err = op(x, y)
		}
		if err != nil {
			return nil, err
		}
	}
	return &List{Cells: out}, nil
}

// arithMatrix combines the elements of m with other, a matrix or a number.
func arithMatrix(name string, m *Matrix, other Value, swapped bool, op func(a, b Value) (Value, error)) (Value, error) {
	om, isMatrix := other.(*Matrix)
	if !isMatrix && !IsNumeric(other) {
		return nil, Errorf(TypeError, "%s: not a number or matrix: %v", name, other)
	}
	var out model.Matrix
	for i := range out {
		for j := range out[i] {
			x := Value(Float(m.M[i][j]))
			y := other
			if isMatrix {
				y = Float(om.M[i][j])
			}
			var v Value
			var err error
			if swapped {
				v, err = op(y, x)
			} else {
				v, err = op(x, y)
			}
			if err != nil {
				return nil, err
			}
			out[i][j], _ = ToFloat(v)
		}
	}
	return &Matrix{M: out}, nil
}

func addNum(a, b Value) (Value, error) {
	return arith("+", a, b, func(a, b Value) (Value, error) {
		return numOp("+", a, b,
			func(x, y int64) (int64, error) { return x + y, nil },
			func(x, y float64) float64 { return x + y })
	})
}

func subNum(a, b Value) (Value, error) {
	return arith("-", a, b, func(a, b Value) (Value, error) {
		return numOp("-", a, b,
			func(x, y int64) (int64, error) { return x - y, nil },
			func(x, y float64) float64 { return x - y })
	})
}

// mulNum multiplies a by b.  A matrix on the left of a matrix or a vector is
// a matrix product, every other combination is pointwise.
func mulNum(a, b Value) (Value, error) {
	if m, ok := a.(*Matrix); ok {
		switch b := b.(type) {
		case *Matrix:
			return &Matrix{M: m.M.Mul(b.M)}, nil
		case *List:
			return applyMatrix(m, b)
		}
	}
	return arith("*", a, b, func(a, b Value) (Value, error) {
		return numOp("*", a, b,
			func(x, y int64) (int64, error) { return x * y, nil },
			func(x, y float64) float64 { return x * y })
	})
}

// applyMatrix transforms a position (x y z) or a homogeneous vector
// (x y z w) by m.
func applyMatrix(m *Matrix, v *List) (Value, error) {
	n := len(v.Cells)
	if (n != 3 && n != 4) || !IsVector(v) {
		return nil, Errorf(TypeError, "*: expected a vector of 3 or 4 numbers: %v", v)
	}
	var x [4]float64
	x[3] = 1
	for i, c := range v.Cells {
		x[i], _ = ToFloat(c)
	}
	out := make([]Value, n)
	for i := range out {
		var sum float64
		for j := 0; j < 4; j++ {
			sum += m.M[i][j] * x[j]
		}
		out[i] = Float(sum)
	}
	return &List{Cells: out}, nil
}

// divNum divides a by b pointwise.
func divNum(a, b Value) (Value, error) {
	return arith("/", a, b, divScalar)
}

// divScalar divides a by b.  The quotient of two integers is an integer only
// when the division is exact.
func divScalar(a, b Value) (Value, error) {
	if y, ok := ToFloat(b); ok && y == 0 {
		return nil, ErrorConditionf(RuntimeError, "division-by-zero", "/: division by zero")
	}
	if x, ok := a.(Int); ok {
		if y, ok := b.(Int); ok && x%y == 0 {
			return x / y, nil
		}
	}
	return numOp("/", a, b, nil, func(x, y float64) float64 { return x / y })
}

// modNum returns the remainder of a divided by b.  The remainder has the
// sign of the divisor, so (% -1 3) is 2.
func modNum(a, b Value) (Value, error) {
	if y, ok := ToFloat(b); ok && y == 0 {
		return nil, ErrorConditionf(RuntimeError, "division-by-zero", "%%: division by zero")
	}
	return numOp("%", a, b,
		func(x, y int64) (int64, error) {
			r := x % y
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return r, nil
		},
		func(x, y float64) float64 {
			r := math.Mod(x, y)
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return r
		})
}

// compareNum returns -1, 0 or 1 as a is less than, equal to or greater than
// b.
func compareNum(name string, a, b Value) (int, error) {
	if !IsNumeric(a) {
		return 0, Errorf(TypeError, "%s: not a number: %v", name, a)
	}
	if !IsNumeric(b) {
		return 0, Errorf(TypeError, "%s: not a number: %v", name, b)
	}
	if x, ok := a.(Int); ok {
		if y, ok := b.(Int); ok {
			switch {
			case x < y:
				return -1, nil
			case x > y:
				return 1, nil
			}
			return 0, nil
		}
	}
	x, _ := ToFloat(a)
	y, _ := ToFloat(b)
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	}
	return 0, nil
}

// ToInt converts an integral number into an int.
func ToInt(v Value) (int, bool) {
	switch v := v.(type) {
	case Int:
		return int(v), true
	case Float:
		if math.Trunc(float64(v)) == float64(v) {
			return int(v), true
		}
	}
	return 0, false
}
