package so3

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Quat is a quaternion with scalar part W and vector part (X, Y, Z). Rotation
// quaternions are kept at unit norm; the algebraic operations below are exact
// for general quaternions as well.
type Quat[T constraints.Float] struct {
	W, X, Y, Z T
}

// QuatIdentity returns the identity rotation.
func QuatIdentity[T constraints.Float]() Quat[T] {
	return Quat[T]{W: 1}
}

// Mul returns the Hamilton product q·oq.
func (q Quat[T]) Mul(oq Quat[T]) Quat[T] {
	return Quat[T]{
		W: q.W*oq.W - q.X*oq.X - q.Y*oq.Y - q.Z*oq.Z,
		X: q.W*oq.X + q.X*oq.W + q.Y*oq.Z - q.Z*oq.Y,
		Y: q.W*oq.Y - q.X*oq.Z + q.Y*oq.W + q.Z*oq.X,
		Z: q.W*oq.Z + q.X*oq.Y - q.Y*oq.X + q.Z*oq.W,
	}
}

// Conj returns the quaternion conjugate, which inverts a unit rotation.
func (q Quat[T]) Conj() Quat[T] {
	return Quat[T]{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Norm returns the quaternion's Euclidean norm.
func (q Quat[T]) Norm() T {
	return T(math.Sqrt(float64(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)))
}

// Normalize returns q scaled to unit norm. The zero quaternion is returned
// unchanged.
func (q Quat[T]) Normalize() Quat[T] {
	n := q.Norm()
	if n == 0 {
		return q
	}
	return Quat[T]{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Vec4 returns the quaternion components in [w, x, y, z] order, the component
// order used by all derivative matrices in this package.
func (q Quat[T]) Vec4() [4]T {
	return [4]T{q.W, q.X, q.Y, q.Z}
}

// RotationMatrix converts a unit quaternion to the equivalent 3×3 rotation
// matrix.
func (q Quat[T]) RotationMatrix() Mat3[T] {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return Mat3[T]{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

// QuaternionMulMatrix returns the left-multiplication operator matrix of q:
// for any quaternion p, QuaternionMulMatrix(q).MulVec4(p.Vec4()) equals
// (q.Mul(p)).Vec4(). The identity is exact for general, not only unit,
// quaternions.
func QuaternionMulMatrix[T constraints.Float](q Quat[T]) Mat4[T] {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return Mat4[T]{
		{w, -x, -y, -z},
		{x, w, -z, y},
		{y, z, w, -x},
		{z, -y, x, w},
	}
}
