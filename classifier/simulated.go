package classifier

import (
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ezoic/combustion/core/feature"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// Ranges of the simulated classifier quality.
var (
	simulatedRecall      = [2]float64{0.90, 0.99}
	simulatedSpecificity = [2]float64{0.92, 0.99}
	simulatedAUC         = [2]float64{0.94, 0.99}
)

// SimulatedEvaluator stands in for a trained model: it draws recall,
// specificity and AUC uniformly from fixed high-quality ranges and derives a
// confusion matrix consistent with the dataset's class balance.
//
// Draws come from a seeded source, so two evaluators with the same seed
// produce the same sequence of evaluations.
type SimulatedEvaluator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedEvaluator returns an evaluator seeded with seed.
func NewSimulatedEvaluator(seed uint64) *SimulatedEvaluator {
	return &SimulatedEvaluator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Evaluate splits ds by label (1 is combustible, anything else is not) and
// simulates the classifier outcome for each class.
func (s *SimulatedEvaluator) Evaluate(ds feature.Dataset) (*Evaluation, error) {
	if len(ds) == 0 {
		return nil, scigoErrors.NewValueError("SimulatedEvaluator.Evaluate", "dataset cannot be empty")
	}
	positives := ds.CountLabel(Combustible)
	negatives := len(ds) - positives

	s.mu.Lock()
	recall := s.draw(simulatedRecall)
	specificity := s.draw(simulatedSpecificity)
	auc := s.draw(simulatedAUC)
	s.mu.Unlock()

	tp := int(math.Round(float64(positives) * recall))
	tn := int(math.Round(float64(negatives) * specificity))

	eval := &Evaluation{AUC: auc}
	eval.Confusion.TP = tp
	eval.Confusion.FN = positives - tp
	eval.Confusion.TN = tn
	eval.Confusion.FP = negatives - tn
	return eval, nil
}

func (s *SimulatedEvaluator) draw(bounds [2]float64) float64 {
	u := distuv.Uniform{Min: bounds[0], Max: bounds[1], Src: s.rng}
	return u.Rand()
}
