package metrics_test

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/combustion/metrics"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

func TestAUC(t *testing.T) {
	tests := []struct {
		name   string
		yTrue  []float64
		yScore []float64
		want   float64
	}{
		{"perfect", []float64{0, 0, 1, 1}, []float64{0.1, 0.2, 0.8, 0.9}, 1.0},
		{"inverted", []float64{0, 0, 1, 1}, []float64{0.9, 0.8, 0.2, 0.1}, 0.0},
		{"one swap", []float64{0, 0, 1, 1}, []float64{0.1, 0.4, 0.35, 0.8}, 0.75},
		{"all tied", []float64{0, 1, 0, 1}, []float64{0.5, 0.5, 0.5, 0.5}, 0.5},
		{"single class", []float64{1, 1, 1}, []float64{0.2, 0.5, 0.9}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.yTrue)
			got, err := metrics.AUC(mat.NewVecDense(n, tt.yTrue), mat.NewVecDense(n, tt.yScore))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestROCCurve(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
	yScore := mat.NewVecDense(4, []float64{0.1, 0.4, 0.35, 0.8})

	points, err := metrics.ROCCurve(yTrue, yScore)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []metrics.ROCPoint{
		{FPR: 0, TPR: 0},
		{FPR: 0, TPR: 0.5, Threshold: 0.8},
		{FPR: 0.5, TPR: 0.5, Threshold: 0.4},
		{FPR: 0.5, TPR: 1, Threshold: 0.35},
		{FPR: 1, TPR: 1, Threshold: 0.1},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d: %+v", len(want), len(points), points)
	}
	if !math.IsInf(points[0].Threshold, 1) {
		t.Errorf("first threshold should be +Inf, got %f", points[0].Threshold)
	}
	for i := 1; i < len(want); i++ {
		if points[i] != want[i] {
			t.Errorf("point %d: expected %+v, got %+v", i, want[i], points[i])
		}
	}
	for i := 1; i < len(points); i++ {
		if points[i].FPR < points[i-1].FPR || points[i].TPR < points[i-1].TPR {
			t.Errorf("curve is not monotone at %d", i)
		}
	}
}

func TestROCCurve_Errors(t *testing.T) {
	if _, err := metrics.ROCCurve(mat.NewVecDense(2, []float64{0, 1}), mat.NewVecDense(1, []float64{0.3})); !errors.Is(err, scigoErrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for length mismatch, got %v", err)
	}
	if _, err := metrics.AUC(nil, nil); !errors.Is(err, scigoErrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil, got %v", err)
	}
}

func TestAreaUnder(t *testing.T) {
	if got := metrics.AreaUnder(nil); got != 0 {
		t.Errorf("expected 0 for empty curve, got %f", got)
	}
	diagonal := []metrics.ROCPoint{{FPR: 0, TPR: 0}, {FPR: 1, TPR: 1}}
	if got := metrics.AreaUnder(diagonal); got != 0.5 {
		t.Errorf("expected 0.5 for diagonal, got %f", got)
	}
}
