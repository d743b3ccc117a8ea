package so3

import (
	"math"

	"golang.org/x/exp/constraints"
)

// smallAngle2 is the squared-angle threshold below which the closed-form
// trigonometric coefficients are replaced by their Maclaurin series. The
// series are carried far enough that both branches agree to double precision
// at the crossover, so there is no visible jump.
const smallAngle2 = 1e-4

// quatExpCoeffs returns, for a squared rotation angle t2 = θ²,
//
//	c = cos(θ/2)
//	k = sin(θ/2) / θ
//	m = (θ·cos(θ/2)/2 - sin(θ/2)) / θ³   (the radial derivative of k)
//
// k and m are the 0/0-prone coefficients of the exponential map and its
// derivative; below smallAngle2 they are evaluated by series instead.
func quatExpCoeffs(t2 float64) (c, k, m float64) {
	if t2 < smallAngle2 {
		t4 := t2 * t2
		c = 1 - t2/8 + t4/384
		k = 0.5 - t2/48 + t4/3840
		m = -1.0/24 + t2/960 - 13*t4/645120
		return c, k, m
	}
	t := math.Sqrt(t2)
	s2, c2 := math.Sincos(t / 2)
	c = c2
	k = s2 / t
	m = (t*c2/2 - s2) / (t2 * t)
	return c, k, m
}

// QuaternionExp is the exponential map of SO(3): it converts the tangent
// vector w, whose direction is the rotation axis and whose norm is the
// rotation angle in radians, to the equivalent unit quaternion
// [cos(θ/2), sin(θ/2)·w/θ]. The zero vector maps to the identity rotation
// exactly, and accuracy is preserved for angles many orders of magnitude
// below the square root of machine epsilon.
func QuaternionExp[T constraints.Float](w Vec3[T]) Quat[T] {
	wx, wy, wz := float64(w.X), float64(w.Y), float64(w.Z)
	c, k, _ := quatExpCoeffs(wx*wx + wy*wy + wz*wz)
	return Quat[T]{W: T(c), X: T(k * wx), Y: T(k * wy), Z: T(k * wz)}
}

// QuaternionExpDerivative returns QuaternionExp(w) together with the 4×3
// Jacobian ∂[w, x, y, z]/∂w of the quaternion components with respect to the
// tangent vector. The same series/closed-form crossover as QuaternionExp
// keeps the Jacobian continuous and accurate through zero.
func QuaternionExpDerivative[T constraints.Float](w Vec3[T]) (Quat[T], Mat4x3[T]) {
	wx, wy, wz := float64(w.X), float64(w.Y), float64(w.Z)
	c, k, m := quatExpCoeffs(wx*wx + wy*wy + wz*wz)

	q := Quat[T]{W: T(c), X: T(k * wx), Y: T(k * wy), Z: T(k * wz)}

	// Scalar row: ∂cos(θ/2)/∂w = -(k/2)·wᵀ.
	// Vector rows: ∂(k·w)/∂w = k·I + m·w·wᵀ.
	var j Mat4x3[T]
	j[0] = [3]T{T(-0.5 * k * wx), T(-0.5 * k * wy), T(-0.5 * k * wz)}
	j[1] = [3]T{T(k + m*wx*wx), T(m * wx * wy), T(m * wx * wz)}
	j[2] = [3]T{T(m * wy * wx), T(k + m*wy*wy), T(m * wy * wz)}
	j[3] = [3]T{T(m * wz * wx), T(m * wz * wy), T(k + m*wz*wz)}
	return q, j
}
