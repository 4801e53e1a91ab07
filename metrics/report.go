package metrics

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/ezoic/olsfit/pkg/errors"
	"github.com/ezoic/olsfit/pkg/log"
)

// RegressionMetrics is an immutable record of fit-quality statistics
// computed once from (yTrue, yPred, numFeatures).
type RegressionMetrics struct {
	rSquared         float64
	adjustedRSquared float64
	mse              float64
	rmse             float64
	mae              float64
	rse              float64
	mean             float64

	n           int
	numFeatures int
}

// NewRegressionMetrics computes every statistic for the given predictions.
//
// Degenerate inputs do not fail here: a constant yTrue makes R² NaN or -Inf,
// n == numFeatures+1 makes adjusted R² infinite, and MSE < numFeatures+1 makes
// RSE NaN. Each non-finite statistic is reported through errors.Warn and by
// Validate.
//
// Parameters:
//   - yTrue: observed responses
//   - yPred: model predictions, same length as yTrue
//   - numFeatures: number of predictors, excluding the intercept
//
// Errors:
//   - ErrInvalidArgument: a vector is nil or empty, or numFeatures < 0
//   - ErrDimensionMismatch: len(yTrue) != len(yPred)
func NewRegressionMetrics(yTrue, yPred []float64, numFeatures int) (*RegressionMetrics, error) {
	const op = "NewRegressionMetrics"
	if err := validatePair(op, yTrue, yPred); err != nil {
		return nil, err
	}
	if err := validateFeatures(numFeatures); err != nil {
		return nil, err
	}

	n := len(yTrue)
	mean, _ := Mean(yTrue)
	mse, _ := MSE(yTrue, yPred)
	mae, _ := MAE(yTrue, yPred)

	res := residuals(yTrue, yPred)
	rSquared := 1 - floats.Dot(res, res)/sumSquares(yTrue, mean)

	m := &RegressionMetrics{
		rSquared:         rSquared,
		adjustedRSquared: adjustR2(rSquared, n, numFeatures),
		mse:              mse,
		rmse:             math.Sqrt(mse),
		mae:              mae,
		rse:              rseFromMSE(mse, numFeatures),
		mean:             mean,
		n:                n,
		numFeatures:      numFeatures,
	}

	for _, s := range m.stats() {
		errors.Warn(errors.CheckScalar(op, s.name, s.value))
	}
	log.GetLoggerWithName("metrics").Debug("Metrics computed",
		log.OperationKey, log.OperationEvaluate,
		log.PhaseKey, log.PhaseEvaluation,
		log.SamplesKey, n,
		log.FeaturesKey, numFeatures,
	)
	return m, nil
}

type namedStat struct {
	name  string
	label string
	value float64
}

// stats lists the statistics in report order.
func (m *RegressionMetrics) stats() []namedStat {
	return []namedStat{
		{"r_squared", "R²:", m.rSquared},
		{"adjusted_r_squared", "Adjusted R²:", m.adjustedRSquared},
		{"mse", "MSE:", m.mse},
		{"rmse", "RMSE:", m.rmse},
		{"mae", "MAE:", m.mae},
		{"rse", "RSE:", m.rse},
		{"mean", "Mean:", m.mean},
	}
}

// RSquared returns 1 - SSres/SStot.
func (m *RegressionMetrics) RSquared() float64 { return m.rSquared }

// AdjustedRSquared returns 1 - (1-R²)(n-1)/(n-numFeatures-1).
func (m *RegressionMetrics) AdjustedRSquared() float64 { return m.adjustedRSquared }

// MSE returns the mean squared error.
func (m *RegressionMetrics) MSE() float64 { return m.mse }

// RMSE returns sqrt(MSE).
func (m *RegressionMetrics) RMSE() float64 { return m.rmse }

// MAE returns the mean absolute error.
func (m *RegressionMetrics) MAE() float64 { return m.mae }

// RSE returns sqrt(MSE - numFeatures - 1).
func (m *RegressionMetrics) RSE() float64 { return m.rse }

// Mean returns the mean of yTrue.
func (m *RegressionMetrics) Mean() float64 { return m.mean }

// N returns the number of samples.
func (m *RegressionMetrics) N() int { return m.n }

// NumFeatures returns the feature count the record was built with.
func (m *RegressionMetrics) NumFeatures() int { return m.numFeatures }

// Validate returns an ErrInvalidResult error naming the first non-finite
// statistic, or nil.
func (m *RegressionMetrics) Validate() error {
	for _, s := range m.stats() {
		if err := errors.CheckScalar("RegressionMetrics", s.name, s.value); err != nil {
			return err
		}
	}
	return nil
}

// PrintReport writes a header and one line per statistic (R², adjusted R²,
// MSE, RMSE, MAE, RSE) with four decimals.
func (m *RegressionMetrics) PrintReport(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "=== Regression Metrics ==="); err != nil {
		return err
	}
	for _, s := range m.stats() {
		if s.name == "mean" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-15s%.4f\n", s.label, s.value); err != nil {
			return err
		}
	}
	return nil
}

// Value is a statistic that encodes NaN and ±Inf as JSON null.
type Value float64

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Report is the serializable form of RegressionMetrics.
type Report struct {
	RSquared         Value `json:"r_squared"`
	AdjustedRSquared Value `json:"adjusted_r_squared"`
	MSE              Value `json:"mse"`
	RMSE             Value `json:"rmse"`
	MAE              Value `json:"mae"`
	RSE              Value `json:"rse"`
	Mean             Value `json:"mean"`
	N                int   `json:"n"`
	NumFeatures      int   `json:"num_features"`
}

// Report returns the record as a Report.
func (m *RegressionMetrics) Report() Report {
	return Report{
		RSquared:         Value(m.rSquared),
		AdjustedRSquared: Value(m.adjustedRSquared),
		MSE:              Value(m.mse),
		RMSE:             Value(m.rmse),
		MAE:              Value(m.mae),
		RSE:              Value(m.rse),
		Mean:             Value(m.mean),
		N:                m.n,
		NumFeatures:      m.numFeatures,
	}
}
