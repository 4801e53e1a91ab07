package linear

import (
	"github.com/ezoic/olsfit/core/matrix"
	"github.com/ezoic/olsfit/pkg/log"
)

// PredictMode selects how Predict pairs features with coefficients.
type PredictMode int

const (
	// PredictFull computes β[0] + Σ_{j=1}^{len(β)-1} x[j-1]·β[j].
	PredictFull PredictMode = iota

	// PredictTruncated stops the sum at j = len(x)-1, so the last feature
	// never contributes. It reproduces scores produced by older tooling that
	// shipped with this loop bound and exists only for parity checks.
	PredictTruncated
)

func (m PredictMode) String() string {
	switch m {
	case PredictFull:
		return "full"
	case PredictTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithLogger replaces the default "linear" logger.
func WithLogger(logger log.Logger) Option {
	return func(lr *LinearRegression) {
		lr.logger = logger
	}
}

// WithTolerance sets the pivot tolerance used when inverting XᵀX.
// The default is matrix.DefaultTolerance.
func WithTolerance(tol float64) Option {
	return func(lr *LinearRegression) {
		lr.tol = tol
	}
}

// WithPredictMode selects the Predict pairing rule. The default is PredictFull.
func WithPredictMode(mode PredictMode) Option {
	return func(lr *LinearRegression) {
		lr.mode = mode
	}
}

func defaultOptions(lr *LinearRegression) {
	lr.tol = matrix.DefaultTolerance
	lr.mode = PredictFull
	lr.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "LinearRegression",
		log.ComponentKey, "linear",
	)
}
