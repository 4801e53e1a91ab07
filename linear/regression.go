// Package linear provides ordinary least squares linear regression.
//
// LinearRegression solves the normal equations
//
//	β̂ = (XᵀX)⁻¹ Xᵀ y
//
// with the dense primitives of core/matrix: transpose, products and
// Gauss-Jordan inversion with partial pivoting. The design matrix is used
// as-is, so callers that want an intercept prepend a column of ones
// (preprocessing.AddIntercept does this). Coefficient 0 is then the intercept
// and Predict supplies the leading 1 implicitly.
//
// Example usage:
//
//	X := preprocessing.AddIntercept(features)
//	lr := linear.NewLinearRegression()
//	if err := lr.Fit(X, y); err != nil {
//		log.Fatal(err)
//	}
//	yHat, err := lr.Predict([]float64{3.5, 1.0})
//
// Rank-deficient designs (collinear columns, fewer rows than columns) fail
// with errors.ErrSingularMatrix; there is no regularization.
package linear

import (
	"io"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/olsfit/core/matrix"
	"github.com/ezoic/olsfit/core/model"
	"github.com/ezoic/olsfit/metrics"
	"github.com/ezoic/olsfit/pkg/errors"
	"github.com/ezoic/olsfit/pkg/log"
)

const modelName = "LinearRegression"

// LinearRegression is an ordinary least squares model fitted through the
// normal equations. The zero value is not usable; call NewLinearRegression.
type LinearRegression struct {
	state *model.StateManager

	mu   sync.RWMutex
	coef []float64 // β̂; nil until a Fit succeeds

	tol    float64
	mode   PredictMode
	logger log.Logger
}

var (
	_ model.Regressor      = (*LinearRegression)(nil)
	_ model.BatchPredictor = (*LinearRegression)(nil)
)

// NewLinearRegression creates an unfitted model.
//
// Example:
//
//	lr := linear.NewLinearRegression(linear.WithTolerance(1e-12))
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		state: model.NewStateManager(),
	}
	defaultOptions(lr)
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit estimates the coefficient vector from the design matrix X and the
// response y.
//
// The pipeline is Xᵀ → XᵀX → (XᵀX)⁻¹ → (XᵀX)⁻¹Xᵀ → (XᵀX)⁻¹Xᵀy. Column 0 of X
// is treated like any other column. On failure the previously fitted
// coefficients, if any, are left untouched.
//
// Parameters:
//   - X: design matrix of shape (n_samples, n_columns)
//   - y: response vector of length n_samples
//
// Returns:
//   - error: nil if training succeeds
//
// Errors:
//   - ErrInvalidArgument: X is nil, empty or ragged, or y is nil
//   - ErrDimensionMismatch: len(y) != n_samples
//   - ErrSingularMatrix: XᵀX is not invertible (collinear columns or more
//     columns than samples)
func (lr *LinearRegression) Fit(X [][]float64, y []float64) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c, err := matrix.Dims(X)
	if err != nil {
		return err
	}
	if y == nil {
		return errors.NewValueError("LinearRegression.Fit", "nil response vector")
	}
	if len(y) != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, len(y), 0)
	}

	lr.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	coef, err := lr.solve(X, y)
	if err != nil {
		lr.logger.Warn("Training failed",
			log.OperationKey, log.OperationFit,
			log.ErrorKey, err.Error(),
		)
		return err
	}

	lr.mu.Lock()
	lr.coef = coef
	lr.mu.Unlock()

	lr.state.SetFitted()
	lr.state.SetDimensions(c, r)

	lr.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	return nil
}

// solve runs the normal equations. Errors from core/matrix are returned as-is.
func (lr *LinearRegression) solve(X [][]float64, y []float64) ([]float64, error) {
	xt, err := matrix.Transpose(X)
	if err != nil {
		return nil, err
	}

	xtx, err := matrix.Multiply(xt, X)
	if err != nil {
		return nil, err
	}

	xtxInv, err := matrix.InvertTol(xtx, lr.tol)
	if err != nil {
		return nil, err
	}

	xtxInvXt, err := matrix.Multiply(xtxInv, xt)
	if err != nil {
		return nil, err
	}

	return matrix.MultiplyVector(xtxInvXt, y)
}

// FitDense is Fit for gonum inputs.
func (lr *LinearRegression) FitDense(X mat.Matrix, y mat.Vector) error {
	if X == nil || y == nil {
		return errors.NewValueError("LinearRegression.FitDense", "nil input")
	}
	yv := make([]float64, y.Len())
	for i := range yv {
		yv[i] = y.AtVec(i)
	}
	return lr.Fit(matrix.FromDense(X), yv)
}

// Predict returns the prediction for one observation.
//
// x holds the features without the leading intercept entry, so
// len(x) must equal len(Coefficients())-1. With PredictFull the result is
// β[0] + Σ_{j=1}^{len(β)-1} x[j-1]·β[j]; PredictTruncated omits the last term.
//
// Errors:
//   - ErrNotFitted: Fit has not succeeded yet
//   - ErrInvalidArgument: x is nil
//   - ErrDimensionMismatch: len(x) != len(Coefficients())-1
func (lr *LinearRegression) Predict(x []float64) (float64, error) {
	lr.mu.RLock()
	coef := lr.coef
	lr.mu.RUnlock()

	if coef == nil {
		return 0, errors.NewNotFittedError(modelName, "Predict")
	}
	if x == nil {
		return 0, errors.NewValueError("LinearRegression.Predict", "nil feature vector")
	}
	if len(x) != len(coef)-1 {
		return 0, errors.NewDimensionError("LinearRegression.Predict", len(coef)-1, len(x), 1)
	}

	upper := len(coef) - 1
	if lr.mode == PredictTruncated {
		upper = len(x) - 1
	}

	pred := coef[0]
	for j := 1; j <= upper; j++ {
		pred += x[j-1] * coef[j]
	}
	return pred, nil
}

// PredictBatch predicts every row of X. Rows exclude the intercept column.
func (lr *LinearRegression) PredictBatch(X [][]float64) ([]float64, error) {
	if len(X) == 0 {
		return nil, errors.NewModelError("LinearRegression.PredictBatch", "no rows", errors.ErrEmptyData)
	}

	lr.logger.Debug("Prediction started",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.SamplesKey, len(X),
	)

	preds := make([]float64, len(X))
	for i, row := range X {
		p, err := lr.Predict(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		preds[i] = p
	}

	lr.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, len(preds),
	)

	return preds, nil
}

// PredictDense is PredictBatch for gonum inputs.
func (lr *LinearRegression) PredictDense(X mat.Matrix) (*mat.VecDense, error) {
	if X == nil {
		return nil, errors.NewValueError("LinearRegression.PredictDense", "nil input")
	}
	preds, err := lr.PredictBatch(matrix.FromDense(X))
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(len(preds), preds), nil
}

// Score returns the coefficient of determination R² of the predictions for
// X against y.
func (lr *LinearRegression) Score(X [][]float64, y []float64) (float64, error) {
	if !lr.state.IsFitted() {
		return 0, errors.NewNotFittedError(modelName, "Score")
	}
	preds, err := lr.PredictBatch(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, preds)
}

// Coefficients returns a copy of β̂ and whether the model is fitted.
func (lr *LinearRegression) Coefficients() ([]float64, bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	if lr.coef == nil {
		return nil, false
	}
	return append([]float64(nil), lr.coef...), true
}

// Intercept returns β̂[0], or 0 when unfitted.
func (lr *LinearRegression) Intercept() float64 {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	if lr.coef == nil {
		return 0
	}
	return lr.coef[0]
}

// NFeatures returns the number of design-matrix columns seen by Fit.
func (lr *LinearRegression) NFeatures() int {
	n, _ := lr.state.Dimensions()
	return n
}

// IsFitted returns whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// Params returns the model's configuration and fitted state.
func (lr *LinearRegression) Params() map[string]interface{} {
	return map[string]interface{}{
		"tolerance":    lr.tol,
		"predict_mode": lr.mode.String(),
		"n_features":   lr.NFeatures(),
		"fitted":       lr.IsFitted(),
	}
}

func (lr *LinearRegression) params(op string) (*model.LinearRegressionParams, error) {
	coef, ok := lr.Coefficients()
	if !ok {
		return nil, errors.NewNotFittedError(modelName, op)
	}
	return &model.LinearRegressionParams{
		Coefficients: coef,
		NFeatures:    len(coef),
		Checksum:     model.Checksum(coef),
	}, nil
}

func (lr *LinearRegression) load(doc *model.Document) error {
	params, err := model.LoadLinearRegressionParams(doc)
	if err != nil {
		return err
	}

	lr.mu.Lock()
	lr.coef = params.Coefficients
	lr.mu.Unlock()

	lr.state.SetFitted()
	// sample count is not persisted
	lr.state.SetDimensions(params.NFeatures, 0)

	lr.logger.Info("Model loaded",
		log.OperationKey, log.OperationLoad,
		log.PhaseKey, log.PhaseIO,
		log.FeaturesKey, params.NFeatures,
	)
	return nil
}

// Export writes the fitted coefficients as a JSON model document.
func (lr *LinearRegression) Export(w io.Writer) (err error) {
	defer errors.Recover(&err, "LinearRegression.Export")
	params, err := lr.params("Export")
	if err != nil {
		return err
	}
	return model.Export(w, modelName, params)
}

// Import replaces the model's coefficients with those read from r.
func (lr *LinearRegression) Import(r io.Reader) (err error) {
	defer errors.Recover(&err, "LinearRegression.Import")
	doc, err := model.LoadFromReader(r)
	if err != nil {
		return errors.Wrap(err, "failed to load model document")
	}
	return lr.load(doc)
}

// SaveFile writes the model to filename, gzip-compressed when the name ends
// in ".gz".
func (lr *LinearRegression) SaveFile(filename string) error {
	params, err := lr.params("SaveFile")
	if err != nil {
		return err
	}
	if err := model.SaveFile(filename, modelName, params); err != nil {
		return err
	}
	lr.logger.Info("Model saved",
		log.OperationKey, log.OperationSave,
		log.PhaseKey, log.PhaseIO,
		"path", filename,
	)
	return nil
}

// LoadFile replaces the model's coefficients with those stored in filename.
func (lr *LinearRegression) LoadFile(filename string) error {
	doc, err := model.LoadFile(filename)
	if err != nil {
		return err
	}
	return lr.load(doc)
}
