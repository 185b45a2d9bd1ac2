// Package metrics evaluates binary combustibility classifiers.
//
// ComputeMetrics turns a confusion matrix into the ModelMetrics report
// (accuracy, precision, recall, F1) and carries the classifier's AUC. The
// package never inspects samples, only labels, predictions and scores.
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ROCPoint is one point of a ROC curve.
type ROCPoint struct {
	FPR       float64 `json:"fpr"`
	TPR       float64 `json:"tpr"`
	Threshold float64 `json:"threshold"`
}

// ROCCurve computes the ROC curve of scores against binary labels.
//
// Points start at (0, 0) and end at (1, 1). Samples with equal scores are
// grouped into a single step. When yTrue contains only one class the curve is
// the diagonal.
func ROCCurve(yTrue, yScore *mat.VecDense) ([]ROCPoint, error) {
	if err := checkBinaryPair("ROCCurve", yTrue, yScore); err != nil {
		return nil, err
	}
	n := yTrue.Len()

	type pair struct {
		score float64
		label float64
	}
	pairs := make([]pair, n)
	totalPos, totalNeg := 0.0, 0.0
	for i := 0; i < n; i++ {
		pairs[i] = pair{score: yScore.AtVec(i), label: yTrue.AtVec(i)}
		if pairs[i].label == 1 {
			totalPos++
		} else {
			totalNeg++
		}
	}

	if totalPos == 0 || totalNeg == 0 {
		return []ROCPoint{
			{FPR: 0, TPR: 0, Threshold: math.Inf(1)},
			{FPR: 1, TPR: 1, Threshold: math.Inf(-1)},
		}, nil
	}

	// Sort pairs by score in descending order
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	points := []ROCPoint{{FPR: 0, TPR: 0, Threshold: math.Inf(1)}}
	tp, fp := 0.0, 0.0
	for i, p := range pairs {
		if p.label == 1 {
			tp++
		} else {
			fp++
		}
		// emit once per distinct score
		if i == n-1 || pairs[i+1].score != p.score {
			points = append(points, ROCPoint{
				FPR:       fp / totalNeg,
				TPR:       tp / totalPos,
				Threshold: p.score,
			})
		}
	}
	return points, nil
}

// AUC calculates the Area Under the ROC Curve for binary classification.
//
// The AUC is the probability that a randomly chosen positive sample is scored
// above a randomly chosen negative one:
//   - 0.5 indicates random guessing
//   - 1.0 indicates perfect classification
//
// When yTrue holds a single class AUC is undefined and 0.5 is returned.
//
// Example:
//
//	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
//	yScore := mat.NewVecDense(4, []float64{0.1, 0.4, 0.35, 0.8})
//	auc, err := metrics.AUC(yTrue, yScore)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("AUC: %.2f\n", auc) // AUC: 0.75
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	points, err := ROCCurve(yTrue, yScore)
	if err != nil {
		return 0, err
	}
	return AreaUnder(points), nil
}

// AreaUnder integrates a ROC curve with the trapezoidal rule.
func AreaUnder(points []ROCPoint) float64 {
	auc := 0.0
	for i := 1; i < len(points); i++ {
		// Trapezoid area = (x2 - x1) * (y1 + y2) / 2
		width := points[i].FPR - points[i-1].FPR
		height := (points[i].TPR + points[i-1].TPR) / 2
		auc += width * height
	}
	return auc
}
