package utils

import "golang.org/x/exp/constraints"

func Abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Max returns the largest value, or the zero value for no values.
func Max[T constraints.Ordered](values ...T) T {
	var m T
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Mean returns the integer mean of values truncated toward zero, or the zero
// value for no values.
func Mean[T constraints.Integer](values ...T) T {
	if len(values) == 0 {
		return 0
	}
	var sum T
	for _, v := range values {
		sum += v
	}
	return sum / T(len(values))
}
