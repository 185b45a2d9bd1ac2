package service

import (
	"github.com/ezoic/combustion/classifier"
	"github.com/ezoic/combustion/config"
)

// NewEvaluator returns the evaluator selected by cfg.
func NewEvaluator(cfg config.Config) classifier.Evaluator {
	if cfg.Evaluator == config.EvaluatorTrained {
		return classifier.NewTrainedModelEvaluator(cfg.Folds, cfg.Seed)
	}
	return classifier.NewSimulatedEvaluator(cfg.Seed)
}

// NewScorer returns the scorer selected by cfg.
func NewScorer(cfg config.Config) (classifier.Scorer, error) {
	lang, err := classifier.ParseLanguage(cfg.Language)
	if err != nil {
		return nil, err
	}
	if cfg.Scorer == config.ScorerTrained {
		return classifier.NewTrainedModelScorer(lang), nil
	}
	return classifier.NewHeuristicScorer(classifier.WithLanguage(lang)), nil
}

// FromConfig builds both orchestrators from a validated config.
func FromConfig(cfg config.Config) (*Trainer, *Predictor, error) {
	scorer, err := NewScorer(cfg)
	if err != nil {
		return nil, nil, err
	}
	trainer := NewTrainer(NewEvaluator(cfg), WithTrainingDelay(cfg.TrainingDelay))
	predictor := NewPredictor(scorer, WithPredictionDelay(cfg.PredictionDelay))
	return trainer, predictor, nil
}
