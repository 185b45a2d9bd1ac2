// Package model provides the estimator state shared by combustion's models.
//
// Models embed a *StateManager by composition and call SetFitted at the end of
// a successful Fit; prediction methods guard with RequireFitted:
//
//	type LogisticRegression struct {
//		state *model.StateManager
//		// model-specific fields
//	}
//
//	func (lr *LogisticRegression) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
//		if err := lr.state.RequireFitted("LogisticRegression", "PredictProba"); err != nil {
//			return nil, err
//		}
//		...
//	}
package model

import (
	"sync"

	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

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
	return "not fitted"
}

// StateManager tracks whether an estimator has been fitted.
type StateManager struct {
	mu    sync.RWMutex
	state EstimatorState
}

// NewStateManager returns a StateManager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{state: NotFitted}
}

// IsFitted reports whether SetFitted has been called since the last Reset.
func (m *StateManager) IsFitted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == Fitted
}

// SetFitted marks the estimator as trained.
func (m *StateManager) SetFitted() {
	m.mu.Lock()
	m.state = Fitted
	m.mu.Unlock()
}

// Reset returns the estimator to NotFitted.
func (m *StateManager) Reset() {
	m.mu.Lock()
	m.state = NotFitted
	m.mu.Unlock()
}

// State returns the current state.
func (m *StateManager) State() EstimatorState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// RequireFitted returns a NotFittedError unless the estimator is fitted.
func (m *StateManager) RequireFitted(modelName, method string) error {
	if !m.IsFitted() {
		return scigoErrors.NewNotFittedError(modelName, method)
	}
	return nil
}
