package so3

import (
	"math"

	"golang.org/x/exp/constraints"
)

// nearPiAngle is the band below θ = π inside which the matrix logarithm
// recovers the rotation axis from the symmetric part of R instead of the skew
// part, which vanishes as θ approaches π.
const nearPiAngle = 1e-3

// RotationLog is the logarithm map of SO(3) for a unit quaternion: the
// inverse of QuaternionExp, returning the tangent vector whose norm is the
// rotation angle in [0, π]. Since q and -q represent the same rotation, the
// quaternion is first canonicalized to non-negative scalar part, so the
// result is deterministic regardless of which sign was supplied. The identity
// rotation maps to the exact zero vector.
func RotationLog[T constraints.Float](q Quat[T]) Vec3[T] {
	qw := float64(q.W)
	qx, qy, qz := float64(q.X), float64(q.Y), float64(q.Z)
	if qw < 0 {
		qw, qx, qy, qz = -qw, -qx, -qy, -qz
	}
	n2 := qx*qx + qy*qy + qz*qz

	// scale = θ / sin(θ/2) = 2·atan2(n, qw)/n where n = sin(θ/2).
	var scale float64
	if n2 < smallAngle2/4 {
		// atan series in n/qw; exact zero vector for the identity.
		w2 := qw * qw
		scale = (2 / qw) * (1 - n2/(3*w2) + n2*n2/(5*w2*w2))
	} else {
		n := math.Sqrt(n2)
		scale = 2 * math.Atan2(n, qw) / n
	}
	return Vec3[T]{T(scale * qx), T(scale * qy), T(scale * qz)}
}

// RotationLogMatrix is the logarithm map of SO(3) for a 3×3 rotation matrix.
// The angle comes from the trace, θ = arccos((tr(R)-1)/2), and the axis from
// the skew part (R - Rᵀ)/2. Both degenerate regimes are special-cased: near
// θ = 0 the skew part is rescaled by the θ/sin(θ) series, and near θ = π,
// where the skew part vanishes and carries no axis information, the axis is
// recovered from the symmetric part R + I via its dominant diagonal entry.
// At exactly θ = π, where the axis sign is inherently ambiguous, the
// representative with a positive dominant component is returned.
func RotationLogMatrix[T constraints.Float](m Mat3[T]) Vec3[T] {
	tr := float64(m.Trace())
	c := (tr - 1) / 2
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	theta := math.Acos(c)

	// Generator of the skew part; equals sin(θ)·axis for a true rotation.
	sx := (float64(m[2][1]) - float64(m[1][2])) / 2
	sy := (float64(m[0][2]) - float64(m[2][0])) / 2
	sz := (float64(m[1][0]) - float64(m[0][1])) / 2

	if theta > math.Pi-nearPiAngle {
		// acos amplifies trace rounding by 1/sin(θ); recover the angle from
		// the skew norm instead, which stays accurate as sin(θ) vanishes.
		n := math.Sqrt(sx*sx + sy*sy + sz*sz)
		theta = math.Atan2(n, c)
		return logMatrixNearPi[T](m, theta, c, sx, sy, sz)
	}

	// w = θ/sin(θ) · vex((R - Rᵀ)/2), with the series taking over where
	// sin(θ) underflows the closed form's accuracy.
	var scale float64
	if theta*theta < smallAngle2 {
		t2 := theta * theta
		scale = 1 + t2/6 + 7*t2*t2/360
	} else {
		scale = theta / math.Sin(theta)
	}
	return Vec3[T]{T(scale * sx), T(scale * sy), T(scale * sz)}
}

// logMatrixNearPi recovers θ·axis from the symmetric part of m when the skew
// part has lost the axis. With R = c·I + s·K + (1-c)·a·aᵀ, the diagonal gives
// aᵢ² = (Rᵢᵢ - c)/(1 - c) and the symmetric off-diagonals give the remaining
// components relative to the dominant one.
func logMatrixNearPi[T constraints.Float](m Mat3[T], theta, c, sx, sy, sz float64) Vec3[T] {
	d0, d1, d2 := float64(m[0][0]), float64(m[1][1]), float64(m[2][2])
	pivot := 0
	if d1 > d0 {
		pivot = 1
	}
	if d2 > d0 && d2 > d1 {
		pivot = 2
	}

	oneMinusC := 1 - c
	var a [3]float64
	diag := [3]float64{d0, d1, d2}
	ap2 := (diag[pivot] - c) / oneMinusC
	if ap2 < 0 {
		ap2 = 0
	}
	a[pivot] = math.Sqrt(ap2)
	for j := 0; j < 3; j++ {
		if j == pivot {
			continue
		}
		a[j] = (float64(m[pivot][j]) + float64(m[j][pivot])) / (2 * oneMinusC * a[pivot])
	}

	// Align with the skew part while it still has a usable sign; at exactly
	// π the pivot-positive representative stands.
	if dot := a[0]*sx + a[1]*sy + a[2]*sz; dot < 0 {
		a[0], a[1], a[2] = -a[0], -a[1], -a[2]
	}

	n := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	scale := theta / n
	return Vec3[T]{T(scale * a[0]), T(scale * a[1]), T(scale * a[2])}
}
