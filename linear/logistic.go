// Package linear provides the linear classifier behind combustion's trained
// scoring and evaluation strategies.
package linear

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/ezoic/combustion/core/model"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
	"github.com/ezoic/combustion/pkg/log"
)

const (
	epsilonSmall       = 1e-15
	regularizationHalf = 0.5
)

// LogisticRegression is an L2-regularized binary logistic regression fitted
// with L-BFGS. Labels must be 0 or 1 and both classes must be present.
type LogisticRegression struct {
	state  *model.StateManager
	logger log.Logger

	// Hyperparameters
	C            float64 // Inverse regularization strength as in sklearn; <= 0 disables the penalty
	MaxIter      int     // Maximum L-BFGS major iterations
	Tol          float64 // Gradient norm threshold
	FitIntercept bool

	// Model parameters
	coef      []float64
	intercept float64
	nIter     int
}

// Option configures a LogisticRegression.
type Option func(*LogisticRegression)

// WithC sets the inverse regularization strength.
func WithC(c float64) Option {
	return func(lr *LogisticRegression) { lr.C = c }
}

// WithMaxIter sets the maximum number of iterations.
func WithMaxIter(n int) Option {
	return func(lr *LogisticRegression) { lr.MaxIter = n }
}

// WithTol sets the gradient tolerance.
func WithTol(tol float64) Option {
	return func(lr *LogisticRegression) { lr.Tol = tol }
}

// NewLogisticRegression creates an unfitted classifier.
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		logger:       log.GetLoggerWithName("LogisticRegression"),
		C:            1.0,
		MaxIter:      100,
		Tol:          1e-4,
		FitIntercept: true,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// stableSigmoid computes sigmoid(z) without overflow.
func stableSigmoid(z float64) float64 {
	if z >= 0 {
		ez := math.Exp(-z)
		return 1.0 / (1.0 + ez)
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}

// clampProbability keeps p away from 0 and 1 to avoid log(0).
func clampProbability(p float64) float64 {
	if p < epsilonSmall {
		return epsilonSmall
	}
	if p > 1-epsilonSmall {
		return 1 - epsilonSmall
	}
	return p
}

// Fit trains the model on X (n×d) and binary labels y (length n).
func (lr *LogisticRegression) Fit(X mat.Matrix, y *mat.VecDense) (err error) {
	defer scigoErrors.Recover(&err, "LogisticRegression.Fit")
	if X == nil || y == nil {
		return scigoErrors.NewValueError("LogisticRegression.Fit", "inputs cannot be nil")
	}
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return scigoErrors.NewModelError("LogisticRegression.Fit", "empty data", scigoErrors.ErrEmptyData)
	}
	if y.Len() != nSamples {
		return scigoErrors.NewDimensionError("LogisticRegression.Fit", nSamples, y.Len(), 0)
	}

	positives := 0
	for i := 0; i < nSamples; i++ {
		switch y.AtVec(i) {
		case 1:
			positives++
		case 0:
		default:
			return scigoErrors.NewValidationError(
				"y",
				fmt.Sprintf("must contain only binary values (0 or 1), found %f at index %d", y.AtVec(i), i),
				y.AtVec(i),
			)
		}
	}
	if positives == 0 || positives == nSamples {
		return scigoErrors.NewValueError("LogisticRegression.Fit", "both classes must be present")
	}

	pDim := nFeatures
	if lr.FitIntercept {
		pDim++
	}
	xD := mat.DenseCopyOf(X)
	// The loss is averaged over samples, so the penalty is scaled by 1/n to
	// keep C comparable with sklearn's summed objective.
	invN := 1.0 / float64(nSamples)
	lambda := 0.0
	if lr.C > 0 {
		lambda = invN / lr.C
	}

	linear := func(theta []float64, i int) float64 {
		z := 0.0
		if lr.FitIntercept {
			z = theta[nFeatures]
		}
		for j := 0; j < nFeatures; j++ {
			z += theta[j] * xD.At(i, j)
		}
		return z
	}

	prob := optimize.Problem{
		Func: func(theta []float64) float64 {
			loss := 0.0
			for i := 0; i < nSamples; i++ {
				p := clampProbability(stableSigmoid(linear(theta, i)))
				yi := y.AtVec(i)
				loss += -yi*math.Log(p) - (1.0-yi)*math.Log(1.0-p)
			}
			loss *= invN
			if lambda > 0 {
				reg := 0.0
				for j := 0; j < nFeatures; j++ {
					reg += theta[j] * theta[j]
				}
				loss += regularizationHalf * lambda * reg
			}
			return loss
		},
		Grad: func(grad, theta []float64) {
			for j := range grad {
				grad[j] = 0
			}
			for i := 0; i < nSamples; i++ {
				diff := stableSigmoid(linear(theta, i)) - y.AtVec(i)
				for j := 0; j < nFeatures; j++ {
					grad[j] += diff * xD.At(i, j)
				}
				if lr.FitIntercept {
					grad[nFeatures] += diff
				}
			}
			for j := range grad {
				grad[j] *= invN
			}
			if lambda > 0 {
				for j := 0; j < nFeatures; j++ {
					grad[j] += lambda * theta[j]
				}
			}
		},
	}

	settings := optimize.Settings{
		GradientThreshold: lr.Tol,
		MajorIterations:   lr.MaxIter,
	}
	result, err := optimize.Minimize(prob, make([]float64, pDim), &settings, &optimize.LBFGS{})
	if result == nil {
		return scigoErrors.Wrap(err, "lbfgs optimization failed")
	}
	if err != nil {
		// The last iterate is still usable after a line-search stall.
		lr.logger.Debug("L-BFGS stopped early", "status", result.Status.String(), "error", err.Error())
	}
	if result.Status == optimize.IterationLimit {
		scigoErrors.Warn(scigoErrors.NewConvergenceWarning("LogisticRegression", result.Stats.MajorIterations, "maximum number of iterations reached"))
	}

	for j, v := range result.X {
		if cerr := scigoErrors.CheckScalar("coefficient", v, result.Stats.MajorIterations); cerr != nil {
			return scigoErrors.Wrapf(cerr, "coefficient %d", j)
		}
	}

	lr.coef = append([]float64(nil), result.X[:nFeatures]...)
	lr.intercept = 0
	if lr.FitIntercept {
		lr.intercept = result.X[nFeatures]
	}
	lr.nIter = result.Stats.MajorIterations
	lr.state.SetFitted()
	return nil
}

// PredictProbaRow returns P(y=1 | x) for one sample.
func (lr *LogisticRegression) PredictProbaRow(x []float64) (float64, error) {
	if err := lr.state.RequireFitted("LogisticRegression", "PredictProbaRow"); err != nil {
		return 0, err
	}
	if len(x) != len(lr.coef) {
		return 0, scigoErrors.NewDimensionError("LogisticRegression.PredictProbaRow", len(lr.coef), len(x), 0)
	}
	z := lr.intercept
	for j, w := range lr.coef {
		z += w * x[j]
	}
	return stableSigmoid(z), nil
}

// PredictProba returns P(y=1 | x) for every row of X.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	if err := lr.state.RequireFitted("LogisticRegression", "PredictProba"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != len(lr.coef) {
		return nil, scigoErrors.NewDimensionError("LogisticRegression.PredictProba", len(lr.coef), c, 1)
	}
	out := mat.NewVecDense(r, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		p, err := lr.PredictProbaRow(row)
		if err != nil {
			return nil, err
		}
		out.SetVec(i, p)
	}
	return out, nil
}

// Coef returns a copy of the fitted weights.
func (lr *LogisticRegression) Coef() []float64 {
	return append([]float64(nil), lr.coef...)
}

// Intercept returns the fitted bias term.
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept
}

// NIter returns the number of L-BFGS iterations used by the last Fit.
func (lr *LogisticRegression) NIter() int {
	return lr.nIter
}

// IsFitted reports whether Fit has completed.
func (lr *LogisticRegression) IsFitted() bool {
	return lr.state.IsFitted()
}
