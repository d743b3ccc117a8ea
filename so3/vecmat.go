// Package so3 implements closed-form exponential and logarithm maps between
// the Lie algebra so(3) and the rotation group SO(3), together with the
// analytic Jacobians needed to linearize rotations on the manifold tangent
// space (Gauss-Newton style optimization). All operations are pure functions
// over small value types and are generic over the floating-point scalar, so
// float32 and float64 run the identical formulas.
package so3

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Vec3 is a 3-vector over a floating-point scalar. Its method set mirrors
// r3.Vector so the float64 instantiation converts losslessly (see interop.go).
type Vec3[T constraints.Float] struct {
	X, Y, Z T
}

// Add returns the standard vector sum of v and ov.
func (v Vec3[T]) Add(ov Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X + ov.X, v.Y + ov.Y, v.Z + ov.Z}
}

// Sub returns the standard vector difference of v and ov.
func (v Vec3[T]) Sub(ov Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X - ov.X, v.Y - ov.Y, v.Z - ov.Z}
}

// Mul returns the standard scalar product of v and m.
func (v Vec3[T]) Mul(m T) Vec3[T] {
	return Vec3[T]{m * v.X, m * v.Y, m * v.Z}
}

// Dot returns the standard dot product of v and ov.
func (v Vec3[T]) Dot(ov Vec3[T]) T {
	return v.X*ov.X + v.Y*ov.Y + v.Z*ov.Z
}

// Cross returns the standard cross product of v and ov.
func (v Vec3[T]) Cross(ov Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v.Y*ov.Z - v.Z*ov.Y,
		v.Z*ov.X - v.X*ov.Z,
		v.X*ov.Y - v.Y*ov.X,
	}
}

// Norm returns the vector's Euclidean norm.
func (v Vec3[T]) Norm() T {
	return T(math.Sqrt(float64(v.Norm2())))
}

// Norm2 returns the vector's squared Euclidean norm.
func (v Vec3[T]) Norm2() T {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Mat3 is a 3×3 matrix in row-major order.
type Mat3[T constraints.Float] [3][3]T

// Identity3 returns the 3×3 identity matrix.
func Identity3[T constraints.Float]() Mat3[T] {
	return Mat3[T]{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Add returns the entrywise sum of m and om.
func (m Mat3[T]) Add(om Mat3[T]) Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + om[i][j]
		}
	}
	return out
}

// Scale returns m with every entry multiplied by s.
func (m Mat3[T]) Scale(s T) Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = s * m[i][j]
		}
	}
	return out
}

// Mul returns the matrix product m·om.
func (m Mat3[T]) Mul(om Mat3[T]) Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*om[0][j] + m[i][1]*om[1][j] + m[i][2]*om[2][j]
		}
	}
	return out
}

// MulVec returns the matrix-vector product m·v.
func (m Mat3[T]) MulVec(v Vec3[T]) Vec3[T] {
	return Vec3[T]{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the matrix transpose of m.
func (m Mat3[T]) Transpose() Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Trace returns the sum of the diagonal entries of m.
func (m Mat3[T]) Trace() T {
	return m[0][0] + m[1][1] + m[2][2]
}

// Mat4 is a 4×4 matrix in row-major order.
type Mat4[T constraints.Float] [4][4]T

// MulVec4 returns the matrix-vector product m·v.
func (m Mat4[T]) MulVec4(v [4]T) [4]T {
	var out [4]T
	for i := 0; i < 4; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2] + m[i][3]*v[3]
	}
	return out
}

// Mat4x3 is a 4×3 matrix in row-major order, used for the derivative of a
// quaternion with respect to a tangent vector.
type Mat4x3[T constraints.Float] [4][3]T

// Mat9x3 is a 9×3 matrix in row-major order, used for the derivative of a
// vectorized (column-major) rotation matrix with respect to a tangent vector.
type Mat9x3[T constraints.Float] [9][3]T

// Block returns the 3×3 block spanning rows 3i..3i+2, which is the derivative
// of column i of the rotation matrix.
func (m Mat9x3[T]) Block(i int) Mat3[T] {
	var out Mat3[T]
	for r := 0; r < 3; r++ {
		out[r] = m[3*i+r]
	}
	return out
}
