package so3

import "golang.org/x/exp/constraints"

// Skew3 returns the skew-symmetric cross-product operator matrix of v, the
// matrix M with M·x = v×x for every x. It satisfies M·v = 0 and M + Mᵀ = 0.
func Skew3[T constraints.Float](v Vec3[T]) Mat3[T] {
	return Mat3[T]{
		{0, -v.Z, v.Y},
		{v.Z, 0, -v.X},
		{-v.Y, v.X, 0},
	}
}

// Vex3 inverts Skew3, reading the generating vector off the skew part of m.
// For a matrix that is not exactly skew-symmetric this returns the generator
// of (m - mᵀ)/2.
func Vex3[T constraints.Float](m Mat3[T]) Vec3[T] {
	return Vec3[T]{
		(m[2][1] - m[1][2]) / 2,
		(m[0][2] - m[2][0]) / 2,
		(m[1][0] - m[0][1]) / 2,
	}
}
