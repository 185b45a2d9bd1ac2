package classifier

import (
	"fmt"

	"github.com/ezoic/combustion/core/feature"
	"github.com/ezoic/combustion/pkg/log"
)

// BaseProbability is the heuristic score before any rule fires.
//
// With DecisionThreshold at 0.3 a sample that triggers no rule is classified
// as combustible.
const BaseProbability = 0.4

// Reference holds per-element statistics of the reference dataset.
type Reference struct {
	Means [feature.NumElements]float64
}

// Mean returns the reference mean of element e.
func (r *Reference) Mean(e feature.Element) float64 {
	return r.Means[e]
}

// NewReference computes the element means of ds. ds must not be empty.
func NewReference(ds feature.Dataset) *Reference {
	ref := &Reference{}
	for _, e := range feature.Elements() {
		ref.Means[e] = ds.Mean(e)
	}
	return ref
}

// Rule is one weighted indicator of the heuristic policy.
type Rule struct {
	// Name identifies the rule in factors and logs.
	Name string
	// Element is the feature the rule measures.
	Element feature.Element
	// Weight is added to the score when the rule fires.
	Weight float64
	// Fires reports whether the rule applies to value given the reference.
	Fires func(value float64, ref *Reference) bool
	// Describe holds a format string per language with one %.2f verb for value.
	Describe map[Language]string
}

func (r Rule) describe(lang Language, value float64) string {
	format, ok := r.Describe[lang]
	if !ok {
		format = r.Describe[LangEN]
	}
	if format == "" {
		return fmt.Sprintf("%s (%s: %.2f%%)", r.Name, r.Element, value)
	}
	return fmt.Sprintf(format, value)
}

// DefaultRules returns the composition rules in evaluation order:
// high titanium, low calcium, high calcium, iron, magnesium.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "high_titanium",
			Element: feature.Ti,
			Weight:  0.4,
			Fires: func(ti float64, ref *Reference) bool {
				avg := ref.Mean(feature.Ti)
				return ti > avg*1.2 && avg > 0
			},
			Describe: map[Language]string{
				LangEN: "high titanium content (Ti: %.2f%%), a strong indicator of combustibility",
				LangRU: "высокое содержание титана (Ti: %.2f%%), который является сильным индикатором горючести",
			},
		},
		{
			Name:    "low_calcium",
			Element: feature.Ca,
			Weight:  0.2,
			Fires: func(ca float64, ref *Reference) bool {
				avg := ref.Mean(feature.Ca)
				return ca < avg*0.8 && avg > 0
			},
			Describe: map[Language]string{
				LangEN: "reduced calcium content (Ca: %.2f%%), typical of combustible materials",
				LangRU: "пониженное содержание кальция (Ca: %.2f%%), характерное для горючих материалов",
			},
		},
		{
			// Never fires together with low_calcium: the two ranges are disjoint.
			Name:    "high_calcium",
			Element: feature.Ca,
			Weight:  -0.3,
			Fires: func(ca float64, ref *Reference) bool {
				avg := ref.Mean(feature.Ca)
				if ca < avg*0.8 && avg > 0 {
					return false
				}
				return ca > avg*1.2
			},
			Describe: map[Language]string{
				LangEN: "elevated calcium content (Ca: %.2f%%), which favours non-combustibility",
				LangRU: "повышенное содержание кальция (Ca: %.2f%%), способствующего негорючести",
			},
		},
		{
			Name:    "iron_present",
			Element: feature.Fe,
			Weight:  -0.2,
			Fires:   func(fe float64, _ *Reference) bool { return fe > 0.5 },
			Describe: map[Language]string{
				LangEN: "presence of iron (Fe: %.2f%%)",
				LangRU: "наличие железа (Fe: %.2f%%)",
			},
		},
		{
			Name:    "magnesium_present",
			Element: feature.Mg,
			Weight:  -0.2,
			Fires:   func(mg float64, _ *Reference) bool { return mg > 0.5 },
			Describe: map[Language]string{
				LangEN: "presence of magnesium (Mg: %.2f%%)",
				LangRU: "присутствие магния (Mg: %.2f%%)",
			},
		},
	}
}

// HeuristicScorer scores samples with weighted indicator rules evaluated
// against the reference means. Reference statistics are recomputed on every
// call; the scorer keeps no state between calls.
type HeuristicScorer struct {
	rules    []Rule
	base     float64
	language Language
	logger   log.Logger
}

// HeuristicOption configures a HeuristicScorer.
type HeuristicOption func(*HeuristicScorer)

// WithRules replaces the rule policy.
func WithRules(rules []Rule) HeuristicOption {
	return func(h *HeuristicScorer) { h.rules = rules }
}

// WithBaseProbability replaces BaseProbability.
func WithBaseProbability(p float64) HeuristicOption {
	return func(h *HeuristicScorer) { h.base = p }
}

// WithLanguage selects the explanation language.
func WithLanguage(lang Language) HeuristicOption {
	return func(h *HeuristicScorer) { h.language = lang }
}

// NewHeuristicScorer returns a scorer using DefaultRules.
func NewHeuristicScorer(opts ...HeuristicOption) *HeuristicScorer {
	h := &HeuristicScorer{
		rules:    DefaultRules(),
		base:     BaseProbability,
		language: LangEN,
		logger:   log.GetLoggerWithName("classifier.heuristic"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Score evaluates every rule in order. Each rule that fires adds its weight
// and appears in the explanation, in the same order, with its measured value.
// The probability is the base plus the summed weights, clamped to [0, 1].
//
// Errors (match ErrInvalidInput): nil sample, empty reference.
func (h *HeuristicScorer) Score(sample *feature.Vector, reference feature.Dataset) (*Score, error) {
	if err := checkScoreInputs("HeuristicScorer.Score", sample, reference); err != nil {
		return nil, err
	}
	ref := NewReference(reference)

	score := 0.0
	var factors []Factor
	var descriptions []string
	for _, rule := range h.rules {
		value := sample.Get(rule.Element)
		if !rule.Fires(value, ref) {
			continue
		}
		score += rule.Weight
		factors = append(factors, Factor{
			Name:    rule.Name,
			Element: rule.Element,
			Value:   value,
			Weight:  rule.Weight,
		})
		descriptions = append(descriptions, rule.describe(h.language, value))
	}

	probability := clamp01(h.base + score)
	result := Decide(probability)

	h.logger.Debug("Scored sample",
		"probability", probability,
		"result", result,
		"rules_fired", len(factors),
	)

	return &Score{
		Probability: probability,
		Result:      result,
		Explanation: explain(h.language, result, descriptions),
		Factors:     factors,
	}, nil
}
