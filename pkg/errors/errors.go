// Package errors defines the error taxonomy shared by every olsfit package.
//
// Failures fall into five kinds, each represented by a sentinel that callers
// match with errors.Is:
//
//   - ErrInvalidArgument: nil, empty or malformed input
//   - ErrDimensionMismatch: incompatible matrix or vector shapes
//   - ErrNotSquare: inversion requested on a non-square matrix
//   - ErrSingularMatrix: a pivot fell below tolerance during elimination
//   - ErrInvalidResult: a statistic evaluated to NaN or ±Inf
//
// Richer typed errors (DimensionError, ValueError, SingularMatrixError, ...)
// carry the operation name and offending values and always unwrap to their
// kind sentinel, so both errors.Is and errors.As work through any amount of
// wrapping:
//
//	inv, err := matrix.Invert(m)
//	if errors.Is(err, errors.ErrSingularMatrix) {
//		// collinear features
//	}
//
// The package is built on github.com/cockroachdb/errors; New, Newf, Wrap and
// Wrapf attach stack traces that are visible with the %+v verb.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidArgument reports nil, empty or malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch reports incompatible operand shapes.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrNotSquare reports an inversion attempted on a non-square matrix.
	ErrNotSquare = errors.New("matrix is not square")

	// ErrSingularMatrix reports a matrix with no numerically stable inverse.
	ErrSingularMatrix = errors.New("singular matrix")

	// ErrInvalidResult reports a NaN or infinite statistic.
	ErrInvalidResult = errors.New("invalid result")

	// ErrEmptyData reports empty input. It is also an ErrInvalidArgument.
	ErrEmptyData error = &kindError{msg: "empty data", kind: ErrInvalidArgument}

	// ErrNotFitted reports use of a model before Fit succeeded. It is also an
	// ErrInvalidArgument.
	ErrNotFitted error = &kindError{msg: "model not fitted", kind: ErrInvalidArgument}
)

// New, Newf, Wrap, Wrapf, Is, As and Unwrap are re-exported so callers need a
// single errors import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// kindError is a sentinel that also belongs to a broader kind.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// WithKind classifies err under kind, typically one of the sentinels above.
// Is(result, kind) holds and the message and cause chain of err are kept.
func WithKind(err, kind error) error {
	if err == nil {
		return nil
	}
	return &kindedError{cause: err, kind: kind}
}

type kindedError struct {
	cause error
	kind  error
}

func (e *kindedError) Error() string        { return e.cause.Error() }
func (e *kindedError) Unwrap() error        { return e.cause }
func (e *kindedError) Is(target error) bool { return target == e.kind }

// DimensionError reports a shape mismatch along one axis.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 = rows, 1 = columns
}

func (e *DimensionError) Error() string {
	axis := "rows"
	if e.Axis == 1 {
		axis = "columns"
	}
	return fmt.Sprintf("olsfit: %s: dimension mismatch in %s: expected %d, got %d", e.Op, axis, e.Expected, e.Got)
}

// Unwrap returns ErrDimensionMismatch.
func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

// ValueError reports an argument with an unusable value.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("olsfit: %s: %s", e.Op, e.Message)
}

// Unwrap returns ErrInvalidArgument.
func (e *ValueError) Unwrap() error { return ErrInvalidArgument }

// NewValueError creates a ValueError.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

// NotFittedError reports a model method called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("olsfit: %s: this %s instance is not fitted yet. Call Fit before %s",
		e.ModelName, e.ModelName, e.Method)
}

// Unwrap returns ErrNotFitted.
func (e *NotFittedError) Unwrap() error { return ErrNotFitted }

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

// ModelError wraps a lower-level cause with the operation that observed it.
type ModelError struct {
	Op      string
	Message string
	Err     error
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("olsfit: %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("olsfit: %s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// NewModelError creates a ModelError.
func NewModelError(op, message string, err error) *ModelError {
	return &ModelError{Op: op, Message: message, Err: err}
}

// ValidationError reports an invalid parameter or configuration value.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("olsfit: invalid %s (%v): %s", e.ParamName, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidArgument.
func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// NewValidationError creates a ValidationError.
func NewValidationError(param, reason string, value interface{}) *ValidationError {
	return &ValidationError{ParamName: param, Reason: reason, Value: value}
}

// SingularMatrixError reports the elimination step at which a pivot collapsed.
type SingularMatrixError struct {
	Op    string
	Pivot int
	Value float64
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("olsfit: %s: matrix is singular: pivot %d has magnitude %g", e.Op, e.Pivot, e.Value)
}

// Unwrap returns ErrSingularMatrix.
func (e *SingularMatrixError) Unwrap() error { return ErrSingularMatrix }

// NewSingularMatrixError creates a SingularMatrixError.
func NewSingularMatrixError(op string, pivot int, value float64) *SingularMatrixError {
	return &SingularMatrixError{Op: op, Pivot: pivot, Value: value}
}

// NonFiniteError reports a statistic that evaluated to NaN or ±Inf.
type NonFiniteError struct {
	Op    string
	Name  string
	Value float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("olsfit: %s: %s is not finite (%v)", e.Op, e.Name, e.Value)
}

// Unwrap returns ErrInvalidResult.
func (e *NonFiniteError) Unwrap() error { return ErrInvalidResult }
