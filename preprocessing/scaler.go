// Package preprocessing prepares feature matrices for fitting.
//
// This package provides:
//
//   - AddIntercept: prepends the column of ones that gives a linear model its
//     intercept coefficient
//   - StandardScaler: removes the column mean and scales to unit variance
//   - MinMaxScaler: maps each column onto a fixed range
//
// Scalers follow the Fit / Transform / FitTransform / InverseTransform
// pattern and operate on feature columns only, so scale first and add the
// intercept afterwards:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	scaled, err := scaler.FitTransform(features)
//	if err != nil {
//		log.Fatal(err)
//	}
//	X := preprocessing.AddIntercept(scaled)
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/olsfit/core/matrix"
	"github.com/ezoic/olsfit/core/model"
	"github.com/ezoic/olsfit/pkg/errors"
)

// Columns whose spread is below this are treated as constant and get scale 1.
const constantTol = 1e-8

// Scaler is implemented by every column scaler in this package.
type Scaler interface {
	Fit(X [][]float64) error
	Transform(X [][]float64) ([][]float64, error)
	FitTransform(X [][]float64) ([][]float64, error)
	InverseTransform(X [][]float64) ([][]float64, error)
}

var (
	_ Scaler = (*StandardScaler)(nil)
	_ Scaler = (*MinMaxScaler)(nil)
)

// column returns a copy of column j of X.
func column(X [][]float64, j int) []float64 {
	col := make([]float64, len(X))
	for i, row := range X {
		col[i] = row[j]
	}
	return col
}

// apply maps f over every element of X into a new matrix of the same shape.
func apply(X [][]float64, f func(j int, v float64) float64) [][]float64 {
	out := matrix.New(len(X), len(X[0]))
	for i, row := range X {
		for j, v := range row {
			out[i][j] = f(j, v)
		}
	}
	return out
}

// checkShape validates X against the fitted column count.
func checkShape(op string, state *model.StateManager, name string, X [][]float64) error {
	if !state.IsFitted() {
		return errors.NewNotFittedError(name, op)
	}
	_, c, err := matrix.Dims(X)
	if err != nil {
		return err
	}
	if nFeatures, _ := state.Dimensions(); c != nFeatures {
		return errors.NewDimensionError(name+"."+op, nFeatures, c, 1)
	}
	return nil
}

// StandardScaler standardizes each column to zero mean and unit variance
// using the population standard deviation.
type StandardScaler struct {
	state *model.StateManager

	// Mean is the per-column mean, or zeros when WithMean is false.
	Mean []float64

	// Scale is the per-column standard deviation, or ones when WithStd is
	// false. Constant columns get 1.
	Scale []float64

	WithMean bool
	WithStd  bool
}

// NewStandardScaler creates a new StandardScaler.
//
// Parameters:
//   - withMean: subtract the column mean
//   - withStd: divide by the column standard deviation
//
// Example:
//
//	// Scale only (keep original mean)
//	scaler := preprocessing.NewStandardScaler(false, true)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault creates a scaler that centers and scales.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit computes the column statistics of X.
//
// Errors:
//   - ErrInvalidArgument: X is nil, empty or ragged
func (s *StandardScaler) Fit(X [][]float64) (err error) {
	defer errors.Recover(&err, "StandardScaler.Fit")
	r, c, err := matrix.Dims(X)
	if err != nil {
		return err
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	for j := 0; j < c; j++ {
		m, variance := stat.PopMeanVariance(column(X, j), nil)
		if s.WithMean {
			mean[j] = m
		}
		scale[j] = 1
		if s.WithStd {
			if sd := math.Sqrt(variance); sd >= constantTol {
				scale[j] = sd
			}
		}
	}

	s.Mean = mean
	s.Scale = scale
	s.state.SetFitted()
	s.state.SetDimensions(c, r)
	return nil
}

// Transform returns (X - Mean) / Scale. X is not modified.
//
// Errors:
//   - ErrNotFitted: Fit has not succeeded yet
//   - ErrDimensionMismatch: X has a different column count than the fit data
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if err := checkShape("Transform", s.state, "StandardScaler", X); err != nil {
		return nil, err
	}
	return apply(X, func(j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}), nil
}

// FitTransform is Fit followed by Transform on the same data.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform returns X*Scale + Mean.
func (s *StandardScaler) InverseTransform(X [][]float64) ([][]float64, error) {
	if err := checkShape("InverseTransform", s.state, "StandardScaler", X); err != nil {
		return nil, err
	}
	return apply(X, func(j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}), nil
}

// IsFitted reports whether Fit has succeeded.
func (s *StandardScaler) IsFitted() bool { return s.state.IsFitted() }

// GetParams returns the scaler configuration.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	n, _ := s.state.Dimensions()
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, n)
}

// MinMaxScaler maps each column linearly onto FeatureRange.
type MinMaxScaler struct {
	state *model.StateManager

	// DataMin and DataMax are the per-column extremes seen by Fit.
	DataMin []float64
	DataMax []float64

	// Scale is DataMax - DataMin, or 1 for constant columns.
	Scale []float64

	// FeatureRange is the target [min, max].
	FeatureRange [2]float64
}

// NewMinMaxScaler creates a new MinMaxScaler for the target range.
//
// Example:
//
//	scaler := preprocessing.NewMinMaxScaler([2]float64{-1.0, 1.0})
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		state:        model.NewStateManager(),
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault creates a scaler onto [0, 1].
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit records the column extremes of X.
//
// Errors:
//   - ErrInvalidArgument: X is nil, empty or ragged, or FeatureRange is not
//     increasing
func (m *MinMaxScaler) Fit(X [][]float64) (err error) {
	defer errors.Recover(&err, "MinMaxScaler.Fit")
	if !(m.FeatureRange[0] < m.FeatureRange[1]) {
		return errors.NewValidationError("feature_range", "min must be less than max", m.FeatureRange)
	}
	r, c, err := matrix.Dims(X)
	if err != nil {
		return err
	}

	dataMin := make([]float64, c)
	dataMax := make([]float64, c)
	scale := make([]float64, c)
	for j := 0; j < c; j++ {
		col := column(X, j)
		dataMin[j] = floats.Min(col)
		dataMax[j] = floats.Max(col)
		scale[j] = dataMax[j] - dataMin[j]
		if math.Abs(scale[j]) < constantTol {
			scale[j] = 1
		}
	}

	m.DataMin = dataMin
	m.DataMax = dataMax
	m.Scale = scale
	m.state.SetFitted()
	m.state.SetDimensions(c, r)
	return nil
}

// Transform returns (X - DataMin) / Scale mapped onto FeatureRange.
func (m *MinMaxScaler) Transform(X [][]float64) ([][]float64, error) {
	if err := checkShape("Transform", m.state, "MinMaxScaler", X); err != nil {
		return nil, err
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return apply(X, func(j int, v float64) float64 {
		return (v-m.DataMin[j])/m.Scale[j]*width + m.FeatureRange[0]
	}), nil
}

// FitTransform is Fit followed by Transform on the same data.
func (m *MinMaxScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform maps values in FeatureRange back to the original scale.
func (m *MinMaxScaler) InverseTransform(X [][]float64) ([][]float64, error) {
	if err := checkShape("InverseTransform", m.state, "MinMaxScaler", X); err != nil {
		return nil, err
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return apply(X, func(j int, v float64) float64 {
		return (v-m.FeatureRange[0])/width*m.Scale[j] + m.DataMin[j]
	}), nil
}

// IsFitted reports whether Fit has succeeded.
func (m *MinMaxScaler) IsFitted() bool { return m.state.IsFitted() }

func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": m.FeatureRange,
	}
}

func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	n, _ := m.state.Dimensions()
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], n)
}
