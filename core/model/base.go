// Package model provides the abstractions shared by olsfit regression models.
//
// This package defines:
//
//   - Regressor: the Fit/Predict contract every model variant implements
//   - StateManager: explicit fitted/unfitted tracking with recorded dimensions
//   - Model persistence: versioned, checksummed JSON documents for fitted
//     coefficients, optionally gzip-compressed
//
// Model variants compose a StateManager rather than inheriting behavior:
//
//	type MyModel struct {
//		state *model.StateManager
//		coef  []float64
//	}
//
//	func (m *MyModel) Fit(X [][]float64, y []float64) error {
//		// training logic
//		m.state.SetFitted()
//		return nil
//	}
package model

import "sync"

// Regressor is implemented by every regression model.
//
// Fit consumes a design matrix X (rows = observations) and a response vector
// y and replaces the model's coefficients only when it succeeds. Predict maps
// one feature vector to a scalar and fails with ErrNotFitted before a
// successful Fit.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(x []float64) (float64, error)
}

// BatchPredictor is implemented by models that can score a whole matrix.
type BatchPredictor interface {
	PredictBatch(X [][]float64) ([]float64, error)
}

// EstimatorState represents the learning state of a model
type EstimatorState int

const (
	// NotFitted indicates the model is not yet trained
	NotFitted EstimatorState = iota
	// Fitted indicates the model has been trained
	Fitted
)

func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// StateManager tracks whether a model is fitted and the shape it was fitted
// on. It is safe for concurrent use.
type StateManager struct {
	mu        sync.RWMutex
	state     EstimatorState
	nFeatures int
	nSamples  int
}

// NewStateManager returns a manager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether SetFitted has been called since the last Reset.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Fitted
}

// State returns the current state.
func (s *StateManager) State() EstimatorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Fitted
}

// SetDimensions records the training shape. nSamples is 0 when unknown,
// e.g. after loading from disk.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Dimensions returns the recorded training shape.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// Reset returns the manager to NotFitted and clears dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = NotFitted
	s.nFeatures = 0
	s.nSamples = 0
}
