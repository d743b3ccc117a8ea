package so3

import (
	"math"

	"golang.org/x/exp/constraints"
)

// so3JacobianCoeffs returns, for a squared rotation angle t2 = θ², the
// coefficients of the SO(3) Jacobian and its inverse,
//
//	a = (1 - cos θ) / θ²
//	b = (θ - sin θ) / θ³
//	e = 1/θ² - cot(θ/2)/(2θ)
//
// each of which is a finite combination of individually singular terms and is
// evaluated by series below smallAngle2.
func so3JacobianCoeffs(t2 float64) (a, b, e float64) {
	if t2 < smallAngle2 {
		t4 := t2 * t2
		a = 0.5 - t2/24 + t4/720
		b = 1.0/6 - t2/120 + t4/5040
		e = 1.0/12 + t2/720 + t4/30240
		return a, b, e
	}
	t := math.Sqrt(t2)
	s, c := math.Sincos(t)
	a = (1 - c) / t2
	b = (t - s) / (t2 * t)
	s2, c2 := math.Sincos(t / 2)
	e = 1/t2 - c2/(2*t*s2)
	return a, b, e
}

// SO3Jacobian returns the Jacobian of SO(3) at the tangent vector w. With
// right true it is the right Jacobian Jr, satisfying
//
//	Exp(w + δ) ≈ Exp(w)·Exp(Jr·δ)
//
// for small δ; with right false it is the left Jacobian Jl = Jrᵀ, satisfying
// Exp(w + δ) ≈ Exp(Jl·δ)·Exp(w). The closed form is a trigonometric weighting
// of I, Skew3(w) and Skew3(w)², with series coefficients taking over near
// zero where the 1/θ² terms are individually singular.
func SO3Jacobian[T constraints.Float](w Vec3[T], right bool) Mat3[T] {
	a, b, _ := so3JacobianCoeffs(float64(w.Norm2()))
	if right {
		a = -a
	}
	k := Skew3(w)
	return Identity3[T]().Add(k.Scale(T(a))).Add(k.Mul(k).Scale(T(b)))
}

// SO3JacobianInverse returns the analytic inverse of SO3Jacobian, valid for
// ‖w‖ < 2π. The retraction derivative composes this with the forward
// Jacobian.
func SO3JacobianInverse[T constraints.Float](w Vec3[T], right bool) Mat3[T] {
	_, _, e := so3JacobianCoeffs(float64(w.Norm2()))
	half := T(0.5)
	if !right {
		half = -half
	}
	k := Skew3(w)
	return Identity3[T]().Add(k.Scale(half)).Add(k.Mul(k).Scale(T(e)))
}

// SO3ExpMatrixDerivative returns the 9×3 derivative of the vectorized
// (column-major) rotation matrix QuaternionExp(w).RotationMatrix() with
// respect to w. It chains the exact polynomial derivative ∂vec(R)/∂q through
// QuaternionExpDerivative, so the only numerically delicate branch is the one
// already handled there. At w = 0 the three 3×3 blocks reduce exactly to the
// negated so(3) generators, Skew3(-e_x), Skew3(-e_y), Skew3(-e_z).
func SO3ExpMatrixDerivative[T constraints.Float](w Vec3[T]) Mat9x3[T] {
	q, qDw := QuaternionExpDerivative(w)
	qw, qx, qy, qz := float64(q.W), float64(q.X), float64(q.Y), float64(q.Z)

	// ∂vec(R)/∂[w, x, y, z] for the quadratic quaternion-to-matrix formula.
	// Rows follow column-major vec(R) order: r00, r10, r20, r01, r11, r21,
	// r02, r12, r22. Exact for all q; no branches.
	rDq := [9][4]float64{
		{0, 0, -4 * qy, -4 * qz},
		{2 * qz, 2 * qy, 2 * qx, 2 * qw},
		{-2 * qy, 2 * qz, -2 * qw, 2 * qx},
		{-2 * qz, 2 * qy, 2 * qx, -2 * qw},
		{0, -4 * qx, 0, -4 * qz},
		{2 * qx, 2 * qw, 2 * qz, 2 * qy},
		{2 * qy, 2 * qz, 2 * qw, 2 * qx},
		{-2 * qx, -2 * qw, 2 * qz, 2 * qy},
		{0, -4 * qx, -4 * qy, 0},
	}

	var out Mat9x3[T]
	for r := 0; r < 9; r++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += rDq[r][k] * float64(qDw[k][j])
			}
			out[r][j] = T(sum)
		}
	}
	return out
}

// SO3RetractDerivative returns the 3×3 derivative, with respect to w, of the
// retraction
//
//	w ↦ RotationLog(r.Mul(QuaternionExp(w)))
//
// evaluated at the given w with r held fixed. Writing v for the composed
// tangent vector, a perturbation δ enters through the right Jacobian at w and
// leaves through the inverse right Jacobian at v, so the derivative is
// SO3JacobianInverse(v)·SO3Jacobian(w). Valid while the composed rotation
// angle stays below π; exact (the identity matrix) at r identity, w zero.
func SO3RetractDerivative[T constraints.Float](r Quat[T], w Vec3[T]) Mat3[T] {
	v := RotationLog(r.Mul(QuaternionExp(w)))
	return SO3JacobianInverse(v, true).Mul(SO3Jacobian(w, true))
}
