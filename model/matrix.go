package model

import "math"

// Matrix is a 4x4 homogeneous transformation matrix in row-major order.
type Matrix [4][4]float64

// Vector is a position in model coordinates.
type Vector [3]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	var m Matrix
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// Mul returns the product m*n.
func (m Matrix) Mul(n Matrix) Matrix {
	var p Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * n[k][j]
			}
			p[i][j] = sum
		}
	}
	return p
}

// Apply transforms the position v by m.
func (m Matrix) Apply(v Vector) Vector {
	var out Vector
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2] + m[i][3]
	}
	return out
}

// Translation returns a matrix translating by (x, y, z).
func Translation(x, y, z float64) Matrix {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Rotation returns the matrix Rx*Ry*Rz for angles in degrees, so rotation
// about z is applied first.
func Rotation(ax, ay, az float64) Matrix {
	ax, ay, az = radians(ax), radians(ay), radians(az)
	rx := Identity()
	rx[1][1] = math.Cos(ax)
	rx[1][2] = -math.Sin(ax)
	rx[2][1] = math.Sin(ax)
	rx[2][2] = math.Cos(ax)
	ry := Identity()
	ry[0][0] = math.Cos(ay)
	ry[0][2] = -math.Sin(ay)
	ry[2][0] = math.Sin(ay)
	ry[2][2] = math.Cos(ay)
	rz := Identity()
	rz[0][0] = math.Cos(az)
	rz[0][1] = -math.Sin(az)
	rz[1][0] = math.Sin(az)
	rz[1][1] = math.Cos(az)
	return rx.Mul(ry.Mul(rz))
}

// Scale returns a matrix scaling each axis independently.
func Scale(sx, sy, sz float64) Matrix {
	m := Identity()
	m[0][0] = sx
	m[1][1] = sy
	m[2][2] = sz
	return m
}

// Mirror returns a matrix reflecting through the planes normal to the
// selected axes.
func Mirror(x, y, z bool) Matrix {
	sign := func(b bool) float64 {
		if b {
			return -1
		}
		return 1
	}
	return Scale(sign(x), sign(y), sign(z))
}

// ldrawOrder maps the coefficients "x y z a b c d e f g h i" of an LDraw
// line onto matrix cells.
var ldrawOrder = [12][2]int{
	{0, 3}, {1, 3}, {2, 3},
	{0, 0}, {0, 1}, {0, 2},
	{1, 0}, {1, 1}, {1, 2},
	{2, 0}, {2, 1}, {2, 2},
}

// FromLDraw returns the matrix described by the twelve LDraw coefficients
// x y z a b c d e f g h i.
func FromLDraw(c [12]float64) Matrix {
	m := Identity()
	for i, cell := range ldrawOrder {
		m[cell[0]][cell[1]] = c[i]
	}
	return m
}

// LDraw returns the twelve LDraw coefficients of m.
func (m Matrix) LDraw() [12]float64 {
	var c [12]float64
	for i, cell := range ldrawOrder {
		c[i] = m[cell[0]][cell[1]]
	}
	return c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
