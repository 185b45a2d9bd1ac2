package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// ConfusionMatrix holds binary classification outcomes against ground truth.
type ConfusionMatrix struct {
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TP int `json:"tp"`
}

// Total returns TP+TN+FP+FN.
func (c ConfusionMatrix) Total() int {
	return c.TP + c.TN + c.FP + c.FN
}

// String formats the matrix as a 2×2 grid with actual classes as rows.
func (c ConfusionMatrix) String() string {
	return fmt.Sprintf("[[TN=%d FP=%d] [FN=%d TP=%d]]", c.TN, c.FP, c.FN, c.TP)
}

// ModelMetrics is the evaluation report of a trained classifier.
// All ratios lie in [0, 1]; formatting as percentages is left to the caller.
type ModelMetrics struct {
	Accuracy        float64         `json:"accuracy"`
	Precision       float64         `json:"precision"`
	Recall          float64         `json:"recall"`
	F1              float64         `json:"f1"`
	ConfusionMatrix ConfusionMatrix `json:"confusionMatrix"`
	AUC             float64         `json:"auc"`
	TotalSamples    int             `json:"totalSamples"`

	// ROC is set when the evaluator produced per-sample scores.
	ROC []ROCPoint `json:"roc,omitempty"`
}

// ComputeMetrics derives accuracy, precision, recall and F1 from a confusion
// matrix and reports them together with the classifier's AUC.
//
// Precision, recall and F1 are defined as 0 when their denominator is 0.
//
// Errors (all match ErrInvalidInput):
//   - totalSamples is 0 or negative
//   - any count is negative
//   - the counts do not sum to totalSamples
//   - auc is outside [0, 1]
//
// Example:
//
//	cm := metrics.ConfusionMatrix{TP: 8, FN: 2, TN: 85, FP: 5}
//	m, err := metrics.ComputeMetrics(cm, 100, 0.95)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%.2f\n", m.Accuracy) // 0.93
func ComputeMetrics(cm ConfusionMatrix, totalSamples int, auc float64) (*ModelMetrics, error) {
	if totalSamples <= 0 {
		return nil, scigoErrors.NewValueError(
			"ComputeMetrics",
			fmt.Sprintf("totalSamples must be positive, got %d", totalSamples),
		)
	}
	if cm.TP < 0 || cm.TN < 0 || cm.FP < 0 || cm.FN < 0 {
		return nil, scigoErrors.NewValidationError(
			"confusion",
			"counts must be non-negative",
			cm,
		)
	}
	if cm.Total() != totalSamples {
		return nil, scigoErrors.NewValidationError(
			"confusion",
			fmt.Sprintf("counts sum to %d, expected %d", cm.Total(), totalSamples),
			cm,
		)
	}
	if !(auc >= 0 && auc <= 1) {
		return nil, scigoErrors.NewValidationError("auc", "must lie in [0, 1]", auc)
	}

	precision := ratio(cm.TP, cm.TP+cm.FP)
	recall := ratio(cm.TP, cm.TP+cm.FN)
	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return &ModelMetrics{
		Accuracy:        ratio(cm.TP+cm.TN, totalSamples),
		Precision:       precision,
		Recall:          recall,
		F1:              f1,
		ConfusionMatrix: cm,
		AUC:             auc,
		TotalSamples:    totalSamples,
	}, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// ConfusionFromPredictions counts outcomes of binary predictions.
// Both vectors must have the same non-zero length and contain only 0 and 1.
func ConfusionFromPredictions(yTrue, yPred *mat.VecDense) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if err := checkBinaryPair("ConfusionFromPredictions", yTrue, yPred); err != nil {
		return cm, err
	}
	for i := 0; i < yTrue.Len(); i++ {
		p := yPred.AtVec(i)
		if p != 0 && p != 1 {
			return cm, scigoErrors.NewValidationError(
				"yPred",
				fmt.Sprintf("must contain only binary values (0 or 1), found %f at index %d", p, i),
				p,
			)
		}
		switch {
		case yTrue.AtVec(i) == 1 && p == 1:
			cm.TP++
		case yTrue.AtVec(i) == 1:
			cm.FN++
		case p == 1:
			cm.FP++
		default:
			cm.TN++
		}
	}
	return cm, nil
}

// ConfusionFromScores thresholds scores (score >= threshold is positive) and
// counts the outcomes.
func ConfusionFromScores(yTrue, yScore *mat.VecDense, threshold float64) (ConfusionMatrix, error) {
	if err := checkBinaryPair("ConfusionFromScores", yTrue, yScore); err != nil {
		return ConfusionMatrix{}, err
	}
	yPred := mat.NewVecDense(yScore.Len(), nil)
	for i := 0; i < yScore.Len(); i++ {
		if yScore.AtVec(i) >= threshold {
			yPred.SetVec(i, 1)
		}
	}
	return ConfusionFromPredictions(yTrue, yPred)
}

// checkBinaryPair validates lengths and that yTrue is binary.
func checkBinaryPair(op string, yTrue, other *mat.VecDense) error {
	if yTrue == nil || other == nil {
		return scigoErrors.NewValueError(op, "input vectors cannot be nil")
	}
	n := yTrue.Len()
	if n == 0 {
		return scigoErrors.NewValueError(op, "input vectors cannot be empty")
	}
	if n != other.Len() {
		return scigoErrors.NewDimensionError(op, n, other.Len(), 0)
	}
	for i := 0; i < n; i++ {
		val := yTrue.AtVec(i)
		if val != 0.0 && val != 1.0 {
			return scigoErrors.NewValidationError(
				"yTrue",
				fmt.Sprintf("must contain only binary values (0 or 1), found %f at index %d", val, i),
				val,
			)
		}
	}
	return nil
}
