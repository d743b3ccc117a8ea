// Package numderiv computes numerical Jacobians by symmetric central
// differences. It exists to validate analytic derivative formulas in tests;
// it makes no attempt at higher-order extrapolation.
package numderiv

import (
	"math"

	"golang.org/x/exp/constraints"
)

// epsilon returns the machine epsilon of the scalar type T.
func epsilon[T constraints.Float]() float64 {
	var one T = 1
	if _, ok := any(one).(float32); ok {
		return 1.1920929e-7
	}
	return 2.220446049250313e-16
}

// Jacobian returns the central-difference Jacobian of f at x, with one row
// per output of f and one column per entry of x. The step for column i is
// cbrt(ε)·max(1, |xᵢ|), the usual bias/roundoff balance for first-order
// central differences; the actually realized step x₊ - x₋ is used as the
// divisor. f must not retain the slice it is handed.
func Jacobian[T constraints.Float](x []T, f func([]T) []T) [][]T {
	y := f(x)
	out := make([][]T, len(y))
	for r := range out {
		out[r] = make([]T, len(x))
	}

	step := math.Cbrt(epsilon[T]())
	probe := make([]T, len(x))
	for i := range x {
		h := T(step * math.Max(1, math.Abs(float64(x[i]))))

		copy(probe, x)
		probe[i] = x[i] + h
		hi := probe[i]
		fp := f(probe)

		copy(probe, x)
		probe[i] = x[i] - h
		lo := probe[i]
		fm := f(probe)

		span := float64(hi) - float64(lo)
		for r := range out {
			out[r][i] = T((float64(fp[r]) - float64(fm[r])) / span)
		}
	}
	return out
}
