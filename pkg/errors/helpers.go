package errors

import (
	"math"
	"sync"

	"github.com/cockroachdb/errors"
)

// Recover converts a panic raised inside op into an error stored in *err.
// It must be called directly via defer:
//
//	func (lr *LinearRegression) Fit(X [][]float64, y []float64) (err error) {
//		defer errors.Recover(&err, "LinearRegression.Fit")
//		...
//	}
func Recover(err *error, op string) {
	if r := recover(); r != nil {
		var cause error
		if e, ok := r.(error); ok {
			cause = errors.WithStack(e)
		} else {
			cause = errors.Newf("%v", r)
		}
		*err = NewModelError(op, "panic recovered", cause)
	}
}

// CheckScalar returns a NonFiniteError when v is NaN or ±Inf.
func CheckScalar(op, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &NonFiniteError{Op: op, Name: name, Value: v}
	}
	return nil
}

var (
	warnMu         sync.RWMutex
	defaultHandler = func(error) {}
	warnHandler    func(error)
)

// SetDefaultWarningHandler sets the handler Warn falls back to when no
// override is installed. Package log registers one that writes through the
// configured logger provider; until then warnings are dropped.
func SetDefaultWarningHandler(h func(error)) {
	warnMu.Lock()
	defer warnMu.Unlock()
	if h == nil {
		h = func(error) {}
	}
	defaultHandler = h
}

// SetWarningHandler replaces the function invoked by Warn. Passing nil
// restores the default handler.
func SetWarningHandler(h func(error)) {
	warnMu.Lock()
	defer warnMu.Unlock()
	warnHandler = h
}

// Warn reports a non-fatal condition. Nil errors are ignored.
func Warn(err error) {
	if err == nil {
		return
	}
	warnMu.RLock()
	h := warnHandler
	if h == nil {
		h = defaultHandler
	}
	warnMu.RUnlock()
	h(err)
}
