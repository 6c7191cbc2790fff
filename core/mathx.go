package core

import "golang.org/x/exp/constraints"

// Saturate pins v to the closed range [lo, hi]; lo must not exceed hi.
// The DAC quantizer and parameter limits share it.
func Saturate[T constraints.Integer](v, lo, hi T) T {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// InRange reports whether lo <= v <= hi
func InRange[T constraints.Integer](v, lo, hi T) bool {
	return lo <= v && v <= hi
}
