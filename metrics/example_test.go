package metrics_test

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/combustion/metrics"
)

// ExampleComputeMetrics derives the report from a confusion matrix
func ExampleComputeMetrics() {
	cm := metrics.ConfusionMatrix{TP: 8, FN: 2, TN: 85, FP: 5}

	m, err := metrics.ComputeMetrics(cm, 100, 0.95)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("Accuracy: %.2f\n", m.Accuracy)
	fmt.Printf("Precision: %.4f\n", m.Precision)
	fmt.Printf("Recall: %.2f\n", m.Recall)
	fmt.Printf("F1: %.4f\n", m.F1)

	// Output:
	// Accuracy: 0.93
	// Precision: 0.6154
	// Recall: 0.80
	// F1: 0.6957
}

// ExampleAUC demonstrates AUC calculation
func ExampleAUC() {
	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
	yScore := mat.NewVecDense(4, []float64{0.1, 0.4, 0.35, 0.8})

	auc, err := metrics.AUC(yTrue, yScore)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("AUC: %.2f\n", auc)

	// Output: AUC: 0.75
}

// ExampleConfusionFromScores thresholds probabilities at the decision threshold
func ExampleConfusionFromScores() {
	yTrue := mat.NewVecDense(5, []float64{1, 1, 0, 0, 0})
	yScore := mat.NewVecDense(5, []float64{0.9, 0.2, 0.3, 0.1, 0.05})

	cm, err := metrics.ConfusionFromScores(yTrue, yScore, 0.3)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Println(cm)

	// Output: [[TN=2 FP=1] [FN=1 TP=1]]
}
