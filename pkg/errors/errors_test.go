package errors

import (
	"math"
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("AdaBoostClassifier", "Predict")
	if err == nil {
		t.Fatal("expected an error")
	}

	var notFitted *NotFittedError
	if !As(err, &notFitted) {
		t.Fatalf("expected a NotFittedError through the stack wrapper, got %v", err)
	}
	if notFitted.ModelName != "AdaBoostClassifier" || notFitted.Method != "Predict" {
		t.Errorf("unexpected fields: %+v", notFitted)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 3, 2, 1)

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatalf("expected a DimensionError, got %v", err)
	}
	if dimErr.Expected != 3 || dimErr.Got != 2 || dimErr.Axis != 1 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("numClasses", "must be at least 2", 1)

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if valErr.ParamName != "numClasses" {
		t.Errorf("unexpected param name: %s", valErr.ParamName)
	}
}

func TestEmptyDataSentinel(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "Fit")
	if !Is(wrapped, ErrEmptyData) {
		t.Error("wrapped sentinel must still match via Is")
	}
}

func TestWarn_HandlerCapture(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(w error) {})

	warning := NewWorseThanChanceWarning(2, 0.8, 2)
	Warn(warning)

	if captured == nil {
		t.Fatal("expected the handler to receive the warning")
	}
	var wtc *WorseThanChanceWarning
	if !As(captured, &wtc) {
		t.Fatalf("expected a WorseThanChanceWarning, got %v", captured)
	}
	if wtc.Round != 2 || wtc.TotalError != 0.8 || wtc.NumClasses != 2 {
		t.Errorf("unexpected fields: %+v", wtc)
	}
}

func TestWarn_ZerologSinkPrecedence(t *testing.T) {
	var handlerHit, sinkHit bool
	SetWarningHandler(func(w error) { handlerHit = true })
	SetZerologWarnFunc(func(w error) { sinkHit = true })
	defer func() {
		SetWarningHandler(func(w error) {})
		SetZerologWarnFunc(nil)
	}()

	Warn(NewDegenerateSplitWarning(0, 1.5))

	if !sinkHit {
		t.Error("expected the zerolog sink to receive the warning")
	}
	if handlerHit {
		t.Error("plain handler must not run when a sink is installed")
	}
}

func TestClampUnitOpen(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, math.SmallestNonzeroFloat64},
		{-0.5, math.SmallestNonzeroFloat64},
		{1, math.Nextafter(1, 0)},
		{1.5, math.Nextafter(1, 0)},
		{0.3, 0.3},
	}
	for _, tc := range cases {
		if got := ClampUnitOpen(tc.in); got != tc.want {
			t.Errorf("ClampUnitOpen(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}

	// The clamped values must keep the confidence formula finite.
	low := ClampUnitOpen(0)
	high := ClampUnitOpen(1)
	if v := math.Log10((1 - low) / low); math.IsInf(v, 0) || math.IsNaN(v) {
		t.Errorf("log of the lower clamp is not finite: %v", v)
	}
	if v := math.Log10((1 - high) / high); math.IsInf(v, 0) || math.IsNaN(v) {
		t.Errorf("log of the upper clamp is not finite: %v", v)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("update", []float64{0.1, 0.9}, 3); err != nil {
		t.Errorf("finite values must pass: %v", err)
	}

	err := CheckNumericalStability("update", []float64{0.1, math.NaN()}, 3)
	if err == nil {
		t.Fatal("expected an error for NaN")
	}
	var instability *NumericalInstabilityError
	if !As(err, &instability) {
		t.Fatalf("expected a NumericalInstabilityError, got %v", err)
	}
	if instability.Iteration != 3 {
		t.Errorf("unexpected iteration: %d", instability.Iteration)
	}

	if err := CheckScalar("confidence", math.Inf(1), 0); err == nil {
		t.Error("expected an error for Inf")
	}
	if err := CheckScalar("confidence", 0.5, 0); err != nil {
		t.Errorf("finite scalar must pass: %v", err)
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(1, 0); got != 0 {
		t.Errorf("division by zero must return 0, got %v", got)
	}
	if got := SafeDivide(6, 3); got != 2 {
		t.Errorf("SafeDivide(6, 3) = %v, want 2", got)
	}
}

func TestStabilizeExp(t *testing.T) {
	if got := StabilizeExp(1000); math.IsInf(got, 0) {
		t.Error("large exponent must not overflow to Inf")
	}
	if got := StabilizeExp(-1000); got != 0 {
		t.Errorf("large negative exponent must return 0, got %v", got)
	}
	if got := StabilizeExp(1); got != math.E {
		t.Errorf("StabilizeExp(1) = %v, want e", got)
	}
}
