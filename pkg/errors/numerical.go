package errors

import (
	"math"
)

// ClampUnitOpen clamps v into the open interval (0, 1) using the nearest
// representable values: math.SmallestNonzeroFloat64 at the bottom and the
// largest float64 below 1 at the top. Used to keep log((1-e)/e) finite when a
// weak learner's weighted error is exactly 0 or 1.
func ClampUnitOpen(v float64) float64 {
	if v <= 0 {
		return math.SmallestNonzeroFloat64
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}

// CheckNumericalStability returns an error if values contain NaN or Inf.
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64, iteration int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, iteration)
	}
	return nil
}

// SafeDivide performs division with protection against division by zero.
// Returns 0 if the denominator is zero or close to zero.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}

// StabilizeExp computes exp with protection against overflow by clipping the
// exponent to the float64-safe range.
func StabilizeExp(value float64) float64 {
	const maxExp = 700.0 // exp(700) is close to the maximum float64
	if value > maxExp {
		return math.Exp(maxExp)
	}
	if value < -maxExp {
		return 0
	}
	return math.Exp(value)
}
