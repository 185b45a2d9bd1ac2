package classifier

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/combustion/core/feature"
	"github.com/ezoic/combustion/linear"
	"github.com/ezoic/combustion/metrics"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
	"github.com/ezoic/combustion/pkg/log"
	"github.com/ezoic/combustion/preprocessing"
)

// DefaultMinContribution is the smallest |weight × standardized value| that a
// TrainedModelScorer reports as a factor.
const DefaultMinContribution = 0.5

// fittedModel is a scaler and logistic regression fitted together.
type fittedModel struct {
	scaler *preprocessing.StandardScaler
	lr     *linear.LogisticRegression
}

func fitModel(ds feature.Dataset, c float64) (*fittedModel, error) {
	scaler := preprocessing.NewStandardScaler()
	Xs, err := scaler.FitTransform(ds.Matrix())
	if err != nil {
		return nil, err
	}
	lr := linear.NewLogisticRegression(linear.WithC(c))
	if err := lr.Fit(Xs, ds.Labels()); err != nil {
		return nil, err
	}
	return &fittedModel{scaler: scaler, lr: lr}, nil
}

// TrainedModelScorer fits a logistic regression on the reference dataset for
// every call and scores the sample with it. The explanation lists, in
// canonical element order, every feature whose contribution to the logit is
// at least MinContribution in magnitude.
type TrainedModelScorer struct {
	C               float64
	MinContribution float64
	Language        Language
	logger          log.Logger
}

// NewTrainedModelScorer returns a scorer with C=1 and DefaultMinContribution.
func NewTrainedModelScorer(lang Language) *TrainedModelScorer {
	return &TrainedModelScorer{
		C:               1.0,
		MinContribution: DefaultMinContribution,
		Language:        lang,
		logger:          log.GetLoggerWithName("classifier.trained"),
	}
}

// Score fits the model on reference and scores sample.
//
// Errors (match ErrInvalidInput): nil sample, empty reference, unlabeled
// reference or a reference with a single class.
func (t *TrainedModelScorer) Score(sample *feature.Vector, reference feature.Dataset) (*Score, error) {
	if err := checkScoreInputs("TrainedModelScorer.Score", sample, reference); err != nil {
		return nil, err
	}
	if !reference.Labeled() {
		return nil, scigoErrors.NewValueError("TrainedModelScorer.Score", "reference dataset must be labeled")
	}

	m, err := fitModel(reference, t.C)
	if err != nil {
		return nil, scigoErrors.Wrap(err, "failed to fit reference model")
	}
	z, err := m.scaler.TransformRow(sample.Values[:])
	if err != nil {
		return nil, err
	}
	probability, err := m.lr.PredictProbaRow(z)
	if err != nil {
		return nil, err
	}
	probability = clamp01(probability)
	result := Decide(probability)

	b := book(t.Language)
	coef := m.lr.Coef()
	var factors []Factor
	var descriptions []string
	for _, e := range feature.Elements() {
		contribution := coef[e] * z[e]
		if math.Abs(contribution) < t.MinContribution {
			continue
		}
		value := sample.Get(e)
		factors = append(factors, Factor{Name: e.String(), Element: e, Value: value, Weight: contribution})
		direction := b.raises
		if contribution < 0 {
			direction = b.lowers
		}
		descriptions = append(descriptions, fmt.Sprintf("%s: %.2f%% (%s)", e, value, direction))
	}

	t.logger.Debug("Scored sample",
		"probability", probability,
		"result", result,
		"factors", len(factors),
		"iterations", m.lr.NIter(),
	)

	return &Score{
		Probability: probability,
		Result:      result,
		Explanation: explain(t.Language, result, descriptions),
		Factors:     factors,
	}, nil
}

// TrainedModelEvaluator estimates logistic regression performance with
// stratified k-fold cross-validation. Every sample is scored exactly once by
// a model that did not see it, so the confusion matrix covers the whole
// dataset. Folds whose training part holds a single class predict that
// part's positive rate.
type TrainedModelEvaluator struct {
	Folds int
	C     float64
	Seed  uint64

	logger log.Logger
}

// NewTrainedModelEvaluator returns an evaluator with the given fold count and seed.
func NewTrainedModelEvaluator(folds int, seed uint64) *TrainedModelEvaluator {
	return &TrainedModelEvaluator{
		Folds:  folds,
		C:      1.0,
		Seed:   seed,
		logger: log.GetLoggerWithName("classifier.evaluator"),
	}
}

// Evaluate runs cross-validation on ds. Labels must be 0 or 1.
func (t *TrainedModelEvaluator) Evaluate(ds feature.Dataset) (*Evaluation, error) {
	n := len(ds)
	if n == 0 {
		return nil, scigoErrors.NewValueError("TrainedModelEvaluator.Evaluate", "dataset cannot be empty")
	}
	if t.Folds < 2 {
		return nil, scigoErrors.NewValidationError("folds", "must be at least 2", t.Folds)
	}
	k := t.Folds
	if k > n {
		k = n
	}

	yTrue := ds.Labels()
	folds := t.assignFolds(ds, k)
	scores := mat.NewVecDense(n, nil)

	for fold := 0; fold < k; fold++ {
		var train feature.Dataset
		var test []int
		for i := range ds {
			if folds[i] == fold {
				test = append(test, i)
			} else {
				train = append(train, ds[i])
			}
		}
		if len(test) == 0 {
			continue
		}

		predict, err := t.foldPredictor(train)
		if err != nil {
			return nil, scigoErrors.Wrapf(err, "fold %d", fold)
		}
		for _, i := range test {
			p, err := predict(&ds[i])
			if err != nil {
				return nil, scigoErrors.Wrapf(err, "fold %d", fold)
			}
			scores.SetVec(i, p)
		}
	}

	cm, err := metrics.ConfusionFromScores(yTrue, scores, DecisionThreshold)
	if err != nil {
		return nil, err
	}
	roc, err := metrics.ROCCurve(yTrue, scores)
	if err != nil {
		return nil, err
	}
	auc := metrics.AreaUnder(roc)

	t.logger.Debug("Cross-validation finished", "folds", k, "samples", n, "auc", auc)
	return &Evaluation{Confusion: cm, AUC: auc, ROC: roc}, nil
}

// foldPredictor fits on train, or falls back to the class prior when train
// has fewer than two classes.
func (t *TrainedModelEvaluator) foldPredictor(train feature.Dataset) (func(*feature.Vector) (float64, error), error) {
	positives := train.CountLabel(Combustible)
	if positives == 0 || positives == len(train) {
		prior := 0.5
		if len(train) > 0 {
			prior = float64(positives) / float64(len(train))
		}
		return func(*feature.Vector) (float64, error) { return prior, nil }, nil
	}

	m, err := fitModel(train, t.C)
	if err != nil {
		return nil, err
	}
	return func(v *feature.Vector) (float64, error) {
		z, err := m.scaler.TransformRow(v.Values[:])
		if err != nil {
			return 0, err
		}
		return m.lr.PredictProbaRow(z)
	}, nil
}

// assignFolds shuffles each class with the seeded source and deals samples
// round-robin so that every fold keeps the class balance.
func (t *TrainedModelEvaluator) assignFolds(ds feature.Dataset, k int) []int {
	rng := rand.New(rand.NewPCG(t.Seed, t.Seed^0x9e3779b97f4a7c15))
	var pos, neg []int
	for i := range ds {
		if ds[i].Label != nil && *ds[i].Label == Combustible {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}
	rng.Shuffle(len(pos), func(a, b int) { pos[a], pos[b] = pos[b], pos[a] })
	rng.Shuffle(len(neg), func(a, b int) { neg[a], neg[b] = neg[b], neg[a] })

	folds := make([]int, len(ds))
	next := 0
	for _, idx := range append(pos, neg...) {
		folds[idx] = next % k
		next++
	}
	return folds
}
