package so3

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/pipigenius/geometry-utils/numderiv"
)

// Tolerance ladder used across the suite. Double-precision formulas are held
// to pico/nano, single precision to micro/sub-milli.
const (
	tolPico  = 1e-12
	tolNano  = 1e-9
	tolMicro = 1e-6
	tolMilli = 1e-3
)

// span returns start, start+step, ... up to but excluding stop.
func span(start, stop, step float64) []float64 {
	var out []float64
	for x := start; x < stop; x += step {
		out = append(out, x)
	}
	return out
}

func vec3[T constraints.Float](x, y, z float64) Vec3[T] {
	return Vec3[T]{T(x), T(y), T(z)}
}

func maxDiffVec3[T constraints.Float](a, b Vec3[T]) float64 {
	d := math.Abs(float64(a.X - b.X))
	d = math.Max(d, math.Abs(float64(a.Y-b.Y)))
	return math.Max(d, math.Abs(float64(a.Z-b.Z)))
}

func maxDiffMat3[T constraints.Float](a, b Mat3[T]) float64 {
	var d float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d = math.Max(d, math.Abs(float64(a[i][j]-b[i][j])))
		}
	}
	return d
}

func maxDiffMat4x3[T constraints.Float](a, b Mat4x3[T]) float64 {
	var d float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			d = math.Max(d, math.Abs(float64(a[i][j]-b[i][j])))
		}
	}
	return d
}

func maxDiffMat9x3[T constraints.Float](a, b Mat9x3[T]) float64 {
	var d float64
	for i := 0; i < 9; i++ {
		for j := 0; j < 3; j++ {
			d = math.Max(d, math.Abs(float64(a[i][j]-b[i][j])))
		}
	}
	return d
}

func mat3ToF64[T constraints.Float](m Mat3[T]) Mat3[float64] {
	var out Mat3[float64]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = float64(m[i][j])
		}
	}
	return out
}

// expMatrixSeries evaluates the matrix exponential of k by a truncated power
// series, an independent double-precision reference for the exponential map.
func expMatrixSeries(k Mat3[float64], terms int) Mat3[float64] {
	sum := Identity3[float64]()
	term := Identity3[float64]()
	for n := 1; n <= terms; n++ {
		term = term.Mul(k).Scale(1 / float64(n))
		sum = sum.Add(term)
	}
	return sum
}

// numJacobianVec3 is the central-difference Jacobian of a Vec3-valued map.
func numJacobianVec3[T constraints.Float](x Vec3[T], f func(Vec3[T]) Vec3[T]) Mat3[T] {
	rows := numderiv.Jacobian([]T{x.X, x.Y, x.Z}, func(in []T) []T {
		v := f(Vec3[T]{in[0], in[1], in[2]})
		return []T{v.X, v.Y, v.Z}
	})
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		copy(out[i][:], rows[i])
	}
	return out
}

// numJacobianQuat is the central-difference Jacobian of a quaternion-valued
// map, rows in [w, x, y, z] order.
func numJacobianQuat[T constraints.Float](x Vec3[T], f func(Vec3[T]) Quat[T]) Mat4x3[T] {
	rows := numderiv.Jacobian([]T{x.X, x.Y, x.Z}, func(in []T) []T {
		q := f(Vec3[T]{in[0], in[1], in[2]})
		return []T{q.W, q.X, q.Y, q.Z}
	})
	var out Mat4x3[T]
	for i := 0; i < 4; i++ {
		copy(out[i][:], rows[i])
	}
	return out
}

// vecMat3 flattens a rotation matrix column-major, matching the row order of
// Mat9x3.
func vecMat3[T constraints.Float](m Mat3[T]) []T {
	out := make([]T, 9)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			out[3*j+i] = m[i][j]
		}
	}
	return out
}

// numJacobianMat3 is the central-difference Jacobian of a vectorized
// rotation-matrix-valued map.
func numJacobianMat3[T constraints.Float](x Vec3[T], f func(Vec3[T]) Mat3[T]) Mat9x3[T] {
	rows := numderiv.Jacobian([]T{x.X, x.Y, x.Z}, func(in []T) []T {
		return vecMat3(f(Vec3[T]{in[0], in[1], in[2]}))
	})
	var out Mat9x3[T]
	for i := 0; i < 9; i++ {
		copy(out[i][:], rows[i])
	}
	return out
}
