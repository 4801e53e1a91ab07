// Package metrics provides fit-quality statistics for regression models.
//
// Free functions compute a single statistic from true and predicted values:
//
//   - MSE, RMSE, MAE: error magnitude
//   - R2Score, AdjustedR2Score: explained variance, the latter penalized by
//     feature count
//   - RSE, Mean, MAPE, ExplainedVarianceScore
//
// RegressionMetrics computes all of the report statistics at once and keeps
// them as an immutable record:
//
//	m, err := metrics.NewRegressionMetrics(yTrue, yPred, numFeatures)
//	if err != nil {
//		log.Fatal(err)
//	}
//	m.PrintReport(os.Stdout)
//
// Free functions fail with errors.ErrInvalidResult on degenerate input
// (constant yTrue, zero degrees of freedom). The record instead keeps the
// IEEE NaN/±Inf values and reports them through Validate.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/olsfit/pkg/errors"
)

func validatePair(op string, yTrue, yPred []float64) error {
	if yTrue == nil || yPred == nil {
		return errors.NewValueError(op, "nil vector")
	}
	if len(yTrue) == 0 {
		return errors.NewModelError(op, "empty vector", errors.ErrEmptyData)
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred), 0)
	}
	return nil
}

func validateFeatures(numFeatures int) error {
	if numFeatures < 0 {
		return errors.NewValidationError("numFeatures", "must be non-negative", numFeatures)
	}
	return nil
}

// residuals returns yTrue - yPred.
func residuals(yTrue, yPred []float64) []float64 {
	res := make([]float64, len(yTrue))
	floats.SubTo(res, yTrue, yPred)
	return res
}

// sumSquares returns Σ (v_i - center)².
func sumSquares(values []float64, center float64) float64 {
	var ss float64
	for _, v := range values {
		d := v - center
		ss += d * d
	}
	return ss
}

// Mean returns (1/n) Σ values_i.
func Mean(values []float64) (float64, error) {
	if values == nil {
		return 0, errors.NewValueError("Mean", "nil vector")
	}
	if len(values) == 0 {
		return 0, errors.NewModelError("Mean", "empty vector", errors.ErrEmptyData)
	}
	return stat.Mean(values, nil), nil
}

// MSE calculates the Mean Squared Error (1/n) Σ (yTrue_i - yPred_i)².
//
// Errors:
//   - ErrInvalidArgument: nil or empty input
//   - ErrDimensionMismatch: yTrue and yPred have different lengths
//
// Example:
//
//	mse, err := metrics.MSE([]float64{1, 2}, []float64{1.5, 2})
//	// mse == 0.125
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("MSE", yTrue, yPred); err != nil {
		return 0, err
	}
	res := residuals(yTrue, yPred)
	return floats.Dot(res, res) / float64(len(res)), nil
}

// RMSE calculates the square root of MSE, in the units of y.
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the Mean Absolute Error (1/n) Σ |yTrue_i - yPred_i|.
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	res := residuals(yTrue, yPred)
	return floats.Norm(res, 1) / float64(len(res)), nil
}

// RSE calculates sqrt(MSE - numFeatures - 1).
//
// The formula subtracts numFeatures+1 from the MSE; it is not the textbook
// sqrt(SSres / (n - p - 1)) and must stay that way for report compatibility.
// The radicand is negative whenever MSE < numFeatures + 1, which yields
// ErrInvalidResult.
func RSE(yTrue, yPred []float64, numFeatures int) (float64, error) {
	if err := validateFeatures(numFeatures); err != nil {
		return 0, err
	}
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	rse := rseFromMSE(mse, numFeatures)
	if err := errors.CheckScalar("RSE", "rse", rse); err != nil {
		return 0, err
	}
	return rse, nil
}

func rseFromMSE(mse float64, numFeatures int) float64 {
	return math.Sqrt(mse - float64(numFeatures) - 1)
}

// R2Score calculates the coefficient of determination 1 - SSres/SStot.
//
// R² is at most 1; 0 means no better than predicting the mean and negative
// values mean worse than the mean.
//
// Errors:
//   - ErrInvalidArgument: nil or empty input
//   - ErrDimensionMismatch: yTrue and yPred have different lengths
//   - ErrInvalidResult: all yTrue values are identical (SStot == 0)
//
// Example:
//
//	r2, err := metrics.R2Score(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("R² Score: %.4f\n", r2)
func R2Score(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	mean := stat.Mean(yTrue, nil)
	res := residuals(yTrue, yPred)
	ssRes := floats.Dot(res, res)
	ssTot := sumSquares(yTrue, mean)

	if ssTot == 0 {
		return 0, errors.NewModelError("R2Score", "total sum of squares is zero (no variance in yTrue)",
			errors.ErrInvalidResult)
	}
	return 1 - ssRes/ssTot, nil
}

// AdjustedR2Score calculates 1 - (1-R²)(n-1)/(n-numFeatures-1).
//
// Errors additionally include ErrInvalidResult when n == numFeatures+1.
func AdjustedR2Score(yTrue, yPred []float64, numFeatures int) (float64, error) {
	if err := validateFeatures(numFeatures); err != nil {
		return 0, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	n := len(yTrue)
	if n-numFeatures-1 == 0 {
		return 0, errors.NewModelError("AdjustedR2Score", "zero residual degrees of freedom",
			errors.ErrInvalidResult)
	}
	return adjustR2(r2, n, numFeatures), nil
}

func adjustR2(r2 float64, n, numFeatures int) float64 {
	return 1 - (1-r2)*float64(n-1)/float64(n-numFeatures-1)
}

// MAPE calculates the Mean Absolute Percentage Error over the samples whose
// true value is non-zero, as a percentage.
func MAPE(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("MAPE", yTrue, yPred); err != nil {
		return 0, err
	}

	var sum float64
	validCount := 0
	for i, t := range yTrue {
		if t != 0 {
			sum += math.Abs(t-yPred[i]) / math.Abs(t)
			validCount++
		}
	}

	if validCount == 0 {
		return 0, errors.NewModelError("MAPE", "all yTrue values are zero", errors.ErrInvalidResult)
	}
	return sum / float64(validCount) * 100, nil
}

// ExplainedVarianceScore calculates 1 - Var(yTrue - yPred) / Var(yTrue).
// Unlike R² it ignores a constant offset in the predictions.
func ExplainedVarianceScore(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("ExplainedVarianceScore", yTrue, yPred); err != nil {
		return 0, err
	}

	res := residuals(yTrue, yPred)
	_, varTrue := stat.PopMeanVariance(yTrue, nil)
	_, varRes := stat.PopMeanVariance(res, nil)

	if varTrue == 0 {
		return 0, errors.NewModelError("ExplainedVarianceScore", "no variance in yTrue", errors.ErrInvalidResult)
	}
	return 1 - varRes/varTrue, nil
}
