// Package errors provides structured error handling and a scikit-learn style
// warning system for samboost. Errors carry stack traces via cockroachdb/errors
// and marshal themselves into zerolog events for structured logging.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("samboost-Warning: %v\n", w)
	}
	// zerolog sink, injected lazily to avoid a circular import with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the library-wide warning handler. Use this to
// silence or redirect warnings such as WorseThanChanceWarning:
//
//	errors.SetWarningHandler(func(w error) {})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. pkg/log calls this
// during provider construction; the indirection avoids a circular import.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. The zerolog sink takes precedence when installed,
// otherwise the plain handler runs.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Boosting warnings
//
// ===========================================================================

// WorseThanChanceWarning is emitted when a boosting round produces a stump
// whose weighted error exceeds the random-guessing rate (numClasses-1)/numClasses.
// Its confidence is negative, so the round decreases the weight of the points it
// misclassified. The update is applied as-is; the warning only surfaces it.
type WorseThanChanceWarning struct {
	Round      int
	TotalError float64
	NumClasses int
}

func (w *WorseThanChanceWarning) Error() string {
	return fmt.Sprintf("boosting round %d trained a stump with weighted error %.6f, worse than chance for %d classes; its vote weight is negative",
		w.Round, w.TotalError, w.NumClasses)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *WorseThanChanceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("round", w.Round).
		Float64("total_error", w.TotalError).
		Int("num_classes", w.NumClasses).
		Str("type", "WorseThanChanceWarning")
}

// NewWorseThanChanceWarning creates a new WorseThanChanceWarning.
func NewWorseThanChanceWarning(round int, totalError float64, numClasses int) *WorseThanChanceWarning {
	return &WorseThanChanceWarning{Round: round, TotalError: totalError, NumClasses: numClasses}
}

// DegenerateSplitWarning is emitted when the best split found does not improve
// on the majority-class baseline, so the stump separates nothing.
type DegenerateSplitWarning struct {
	Dimension int
	Threshold float64
}

func (w *DegenerateSplitWarning) Error() string {
	return fmt.Sprintf("split on dimension %d at %.6g does not improve on the majority-class baseline", w.Dimension, w.Threshold)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *DegenerateSplitWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("dimension", w.Dimension).
		Float64("threshold", w.Threshold).
		Str("type", "DegenerateSplitWarning")
}

// NewDegenerateSplitWarning creates a new DegenerateSplitWarning.
func NewDegenerateSplitWarning(dimension int, threshold float64) *DegenerateSplitWarning {
	return &DegenerateSplitWarning{Dimension: dimension, Threshold: threshold}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when Predict, DecisionFunction or Score is called
// on an estimator before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("samboost: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports a mismatch between an expected and an actual size:
// ragged feature rows, weight or label vectors of the wrong length, or a
// prediction sample whose dimension differs from the training data.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows/samples, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("samboost: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError reports an invalid parameter value: a negative sample
// weight, a label outside [0, numClasses), an out-of-range sample index.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("samboost: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError reports an argument that is structurally unusable, typically a
// nil or empty matrix or slice.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("samboost: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NumericalInstabilityError reports NaN or Inf values produced by a numeric
// operation, with the offending values for debugging.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Iteration int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("samboost: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a
// stack trace attached.
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when a training set has no samples.
	ErrEmptyData = New("empty data")
)
