// Package preprocessing turns raw composition rows into model inputs.
//
// This package provides:
//
//   - Normalize / NormalizeAll: raw CSV rows to canonical feature vectors,
//     including oxide-to-element conversion
//   - NormalizeStrict: the same conversion, rejecting non-numeric values
//   - StandardScaler: standardizes features to zero mean and unit variance
//     before they reach the logistic regression
//
// Example usage:
//
//	ds := preprocessing.NormalizeAll(rows)
//	scaler := preprocessing.NewStandardScaler()
//	Xs, err := scaler.FitTransform(ds.Matrix())
//	if err != nil {
//		log.Fatal(err)
//	}
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/combustion/core/model"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// StandardScaler standardizes each column to mean 0 and standard deviation 1.
// Constant columns keep a scale of 1 so they map to 0 instead of NaN.
type StandardScaler struct {
	state *model.StateManager

	// Mean is the per-feature mean learned by Fit.
	Mean []float64

	// Scale is the per-feature population standard deviation learned by Fit.
	Scale []float64

	// NFeatures is the number of columns seen by Fit.
	NFeatures int
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{state: model.NewStateManager()}
}

// Fit computes the column statistics of X.
//
// Errors:
//   - ErrEmptyData: if X has no rows or columns
func (s *StandardScaler) Fit(X mat.Matrix) (err error) {
	defer scigoErrors.Recover(&err, "StandardScaler.Fit")
	if X == nil {
		return scigoErrors.NewModelError("StandardScaler.Fit", "nil data", scigoErrors.ErrEmptyData)
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return scigoErrors.NewModelError("StandardScaler.Fit", "empty data", scigoErrors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, variance := stat.PopMeanVariance(col, nil)
		s.Mean[j] = mean
		std := 0.0
		if variance > 0 {
			std = math.Sqrt(variance)
		}
		if std < 1e-12 {
			std = 1.0
		}
		s.Scale[j] = std
	}

	s.state.SetFitted()
	return nil
}

// Transform standardizes X with the statistics learned by Fit.
func (s *StandardScaler) Transform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer scigoErrors.Recover(&err, "StandardScaler.Transform")
	if err := s.state.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, scigoErrors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, X)
	return out, nil
}

// FitTransform fits the scaler on X and returns X standardized.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// TransformRow standardizes a single sample.
func (s *StandardScaler) TransformRow(x []float64) ([]float64, error) {
	if err := s.state.RequireFitted("StandardScaler", "TransformRow"); err != nil {
		return nil, err
	}
	if len(x) != s.NFeatures {
		return nil, scigoErrors.NewDimensionError("StandardScaler.TransformRow", s.NFeatures, len(x), 0)
	}
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

// IsFitted reports whether Fit has completed.
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

// String returns a short description of the scaler.
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return "StandardScaler(fitted=false)"
	}
	return fmt.Sprintf("StandardScaler(fitted=true, n_features=%d)", s.NFeatures)
}
