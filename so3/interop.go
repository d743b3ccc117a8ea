package so3

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// Bridges between the float64 instantiation of the kernel types and the
// ecosystem types callers already hold: gonum quat.Number and mat.Dense,
// r3.Vector, and mgl64.Quat.

// orthoTolerance bounds how far RᵀR may drift from the identity (and det(R)
// from one) before NewRotationMatrixFromDense rejects the input.
const orthoTolerance = 1e-8

// FromQuatNumber converts a gonum quaternion.
func FromQuatNumber(n quat.Number) Quat[float64] {
	return Quat[float64]{W: n.Real, X: n.Imag, Y: n.Jmag, Z: n.Kmag}
}

// QuatNumber converts to a gonum quaternion.
func QuatNumber(q Quat[float64]) quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

// FromR3Vector converts an r3.Vector.
func FromR3Vector(v r3.Vector) Vec3[float64] {
	return Vec3[float64]{X: v.X, Y: v.Y, Z: v.Z}
}

// R3Vector converts to an r3.Vector.
func R3Vector(v Vec3[float64]) r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// FromMglQuat converts an mgl64 quaternion.
func FromMglQuat(q mgl64.Quat) Quat[float64] {
	return Quat[float64]{W: q.W, X: q.V.X(), Y: q.V.Y(), Z: q.V.Z()}
}

// MglQuat converts to an mgl64 quaternion.
func MglQuat(q Quat[float64]) mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

// Mat3Dense converts to a gonum 3×3 dense matrix.
func Mat3Dense(m Mat3[float64]) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

// NewRotationMatrixFromDense builds a Mat3 from a gonum matrix, validating
// that the input is a rotation: 3×3, orthonormal within orthoTolerance, and
// of determinant one. This is the only erroring boundary in the package; the
// kernel operations themselves never fail for finite input.
func NewRotationMatrixFromDense(d mat.Matrix) (Mat3[float64], error) {
	rows, cols := d.Dims()
	if rows != 3 || cols != 3 {
		return Mat3[float64]{}, errors.Errorf("expected a 3x3 matrix, got %dx%d", rows, cols)
	}
	var m Mat3[float64]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = d.At(i, j)
		}
	}
	gram := m.Transpose().Mul(m)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(gram[i][j]-want) > orthoTolerance {
				return Mat3[float64]{}, errors.Errorf("matrix is not orthonormal: (RᵀR)[%d][%d] = %v", i, j, gram[i][j])
			}
		}
	}
	if det := mat.Det(d); math.Abs(det-1) > orthoTolerance {
		return Mat3[float64]{}, errors.Errorf("matrix is not a proper rotation: det = %v", det)
	}
	return m, nil
}
