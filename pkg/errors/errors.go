// Package errors provides the error types used across combustion.
//
// It wraps github.com/cockroachdb/errors so that every error carries a stack
// trace (printed with %+v) while staying compatible with the standard
// errors.Is / errors.As machinery.
//
// Callers distinguish failure kinds with the sentinel errors:
//
//   - ErrInvalidInput: an empty or absent dataset, sample, or confusion matrix
//   - ErrMissingLabel: training data without a label column
//   - ErrMalformedRow: a row rejected by strict normalization
//
// Example:
//
//	if errors.Is(err, scigoErrors.ErrMissingLabel) {
//	    // ask the user for a labeled file
//	}
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors.
var (
	// ErrInvalidInput is returned for empty or absent inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingLabel is returned when training data lacks the label column.
	ErrMissingLabel = errors.New("missing label column")

	// ErrMalformedRow is returned by strict normalization for non-numeric feature values.
	ErrMalformedRow = errors.New("malformed row")

	// ErrEmptyData is returned when a matrix or vector has no elements.
	ErrEmptyData = errors.New("empty data")

	// ErrNotFitted is returned when a model is used before Fit.
	ErrNotFitted = errors.New("model not fitted")

	// ErrNotImplemented marks functionality that is not available.
	ErrNotImplemented = errors.New("not implemented")
)

// New, Newf, Wrap, Wrapf, Is, As and Unwrap re-export cockroachdb/errors so
// packages only need a single errors import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ModelError is a failure inside a named operation, optionally caused by a sentinel.
type ModelError struct {
	Op      string
	Message string
	Err     error
}

// NewModelError creates a ModelError with a stack trace attached.
func NewModelError(op, message string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Message: message, Err: err})
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("combustion: %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("combustion: %s: %s", e.Op, e.Message)
}

func (e *ModelError) Unwrap() error { return e.Err }

// ValueError reports an argument with an unacceptable value.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError. It matches ErrInvalidInput.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Is makes every ValueError match ErrInvalidInput.
func (e *ValueError) Is(target error) bool { return target == ErrInvalidInput }

// ValidationError reports a named parameter that failed validation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

// NewValidationError creates a ValidationError. It matches ErrInvalidInput.
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.ParamName, e.Value, e.Reason)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// DimensionError reports mismatched matrix or vector sizes.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch on axis %d: expected %d, got %d", e.Op, e.Axis, e.Expected, e.Got)
}

// Is makes every DimensionError match ErrInvalidInput.
func (e *DimensionError) Is(target error) bool { return target == ErrInvalidInput }

// NotFittedError reports a model method called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: %s called before Fit", e.ModelName, e.Method)
}

// Is makes every NotFittedError match ErrNotFitted.
func (e *NotFittedError) Is(target error) bool { return target == ErrNotFitted }

// ConvergenceWarning reports an optimizer that stopped before converging.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

// NewConvergenceWarning creates a ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

func (w *ConvergenceWarning) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
}
