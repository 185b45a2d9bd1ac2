// Package classifier holds the interchangeable scoring and evaluation
// strategies of combustion.
//
// A Scorer turns one normalized sample plus the reference (training) dataset
// into a probability, a class and a textual rationale. An Evaluator estimates
// how well the classifier performs on a labeled dataset and returns the
// confusion matrix and AUC that metrics.ComputeMetrics turns into a report.
//
// Two variants exist for each:
//
//   - HeuristicScorer / SimulatedEvaluator: rule-based scoring against
//     reference means and a seeded simulation of classifier quality
//   - TrainedModelScorer / TrainedModelEvaluator: an L2 logistic regression
//     fitted on the reference data, evaluated with stratified k-fold
//     cross-validation
package classifier

import (
	"fmt"
	"strings"

	"github.com/ezoic/combustion/core/feature"
	"github.com/ezoic/combustion/metrics"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// DecisionThreshold is the probability at or above which a sample is
// classified as combustible.
const DecisionThreshold = 0.3

// Classes.
const (
	NonCombustible = 0
	Combustible    = 1
)

// Decide applies DecisionThreshold. The boundary is inclusive.
func Decide(probability float64) int {
	if probability >= DecisionThreshold {
		return Combustible
	}
	return NonCombustible
}

// Factor is one contribution to a score that the explanation mentions.
type Factor struct {
	Name    string          `json:"name"`
	Element feature.Element `json:"element"`
	Value   float64         `json:"value"`
	Weight  float64         `json:"weight"`
}

// Score is the output of a Scorer.
type Score struct {
	Probability float64  `json:"probability"`
	Result      int      `json:"result"`
	Explanation string   `json:"explanation"`
	Factors     []Factor `json:"factors,omitempty"`
}

// Scorer computes a prediction for sample relative to reference.
type Scorer interface {
	Score(sample *feature.Vector, reference feature.Dataset) (*Score, error)
}

// Evaluation is an Evaluator's estimate of classifier performance.
type Evaluation struct {
	Confusion metrics.ConfusionMatrix
	AUC       float64
	// ROC is nil for evaluators without per-sample scores.
	ROC []metrics.ROCPoint
}

// Evaluator estimates classifier performance on a labeled dataset.
// Labels must be 0 or 1. The confusion counts must sum to len(ds).
type Evaluator interface {
	Evaluate(ds feature.Dataset) (*Evaluation, error)
}

// Language selects the wording of explanations.
type Language string

// Supported explanation languages.
const (
	LangEN Language = "en"
	LangRU Language = "ru"
)

// ParseLanguage maps a language code to a Language.
func ParseLanguage(code string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case LangEN, "":
		return LangEN, nil
	case LangRU:
		return LangRU, nil
	default:
		return "", scigoErrors.NewValidationError("language", "supported languages are en and ru", code)
	}
}

type phrasebook struct {
	combustible    string
	nonCombustible string
	headline       string // %s = class name
	factors        string // %s = joined factor descriptions
	noAnomalies    string
	raises         string
	lowers         string
}

var phrasebooks = map[Language]phrasebook{
	LangEN: {
		combustible:    "Combustible",
		nonCombustible: "Non-combustible",
		headline:       "The material is classified as '%s' based on the analysis of its elemental composition. ",
		factors:        "Key factors behind the decision: %s.",
		noAnomalies:    "The elemental composition shows no notable deviations from the reference samples.",
		raises:         "raises the likelihood of combustion",
		lowers:         "lowers the likelihood of combustion",
	},
	LangRU: {
		combustible:    "Горючий",
		nonCombustible: "Негорючий",
		headline:       "Материал классифицирован как '%s' на основе анализа его элементного состава. ",
		factors:        "Ключевые факторы, повлиявшие на решение: %s.",
		noAnomalies:    "Элементный состав не показал явных отклонений, указывающих на аномальную горючесть, и соответствует профилю негорючих материалов.",
		raises:         "повышает вероятность горючести",
		lowers:         "снижает вероятность горючести",
	},
}

func book(lang Language) phrasebook {
	if b, ok := phrasebooks[lang]; ok {
		return b
	}
	return phrasebooks[LangEN]
}

// explain builds the explanation text from the class and the ordered factor descriptions.
func explain(lang Language, result int, descriptions []string) string {
	b := book(lang)
	class := b.nonCombustible
	if result == Combustible {
		class = b.combustible
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, b.headline, class)
	if len(descriptions) > 0 {
		fmt.Fprintf(&sb, b.factors, strings.Join(descriptions, ", "))
	} else {
		sb.WriteString(b.noAnomalies)
	}
	return sb.String()
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func checkScoreInputs(op string, sample *feature.Vector, reference feature.Dataset) error {
	if sample == nil {
		return scigoErrors.NewValueError(op, "sample cannot be nil")
	}
	if len(reference) == 0 {
		return scigoErrors.NewValueError(op, "reference dataset cannot be empty")
	}
	return nil
}
