// Package service drives the combustibility pipeline end to end.
//
// Trainer normalizes a labeled dataset, asks a classifier.Evaluator how the
// classifier performs on it and reports metrics.ModelMetrics. Predictor
// normalizes one sample plus the training set and asks a classifier.Scorer
// for a Prediction.
//
// Both validate their input synchronously in Start and return a typed error
// before any background work begins. Valid requests run on a goroutine and
// resolve a Future exactly once:
//
//	trainer := service.NewTrainer(classifier.NewSimulatedEvaluator(42))
//	report, err := trainer.Train(rows)
//	if errors.Is(err, scigoErrors.ErrMissingLabel) {
//	    // ask for a labeled file
//	}
package service

import (
	"fmt"
	"time"

	"github.com/ezoic/combustion/classifier"
	"github.com/ezoic/combustion/core/feature"
	"github.com/ezoic/combustion/metrics"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
	"github.com/ezoic/combustion/pkg/log"
	"github.com/ezoic/combustion/preprocessing"
)

// Trainer is the training orchestrator.
type Trainer struct {
	evaluator classifier.Evaluator
	delay     time.Duration
	logger    log.Logger
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithTrainingDelay makes every training task take at least d.
func WithTrainingDelay(d time.Duration) TrainerOption {
	return func(t *Trainer) { t.delay = d }
}

// WithTrainerLogger replaces the trainer's logger.
func WithTrainerLogger(l log.Logger) TrainerOption {
	return func(t *Trainer) { t.logger = l }
}

// NewTrainer returns a Trainer backed by evaluator.
func NewTrainer(evaluator classifier.Evaluator, opts ...TrainerOption) *Trainer {
	t := &Trainer{
		evaluator: evaluator,
		logger:    log.GetLoggerWithName("service.trainer"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start validates rows and launches training.
//
// Errors:
//   - ErrInvalidInput: rows is empty, or a label is not 0 or 1
//   - ErrMissingLabel: the first normalized row has no label (the dataset is
//     assumed homogeneous, so later rows are not checked for presence)
func (t *Trainer) Start(rows []feature.RawRow) (*Future[*metrics.ModelMetrics], error) {
	if len(rows) == 0 {
		return nil, scigoErrors.NewModelError("Trainer.Start", "training data is empty", scigoErrors.ErrInvalidInput)
	}
	ds := preprocessing.NormalizeAll(rows)
	if !ds[0].HasLabel() {
		return nil, scigoErrors.NewModelError("Trainer.Start", "training data has no 'label' column", scigoErrors.ErrMissingLabel)
	}
	for i := range ds {
		if ds[i].Label == nil {
			continue
		}
		if l := *ds[i].Label; l != classifier.NonCombustible && l != classifier.Combustible {
			return nil, scigoErrors.NewValidationError(
				"label",
				fmt.Sprintf("must be 0 or 1, found %v in row %d", l, i+1),
				l,
			)
		}
	}

	t.logger.Info("Training started",
		"samples", len(ds),
		"combustible", ds.CountLabel(classifier.Combustible),
	)
	return runAsync("Trainer.train", func() (*metrics.ModelMetrics, error) {
		return t.train(ds)
	}), nil
}

// Train runs Start and waits for the result.
func (t *Trainer) Train(rows []feature.RawRow) (*metrics.ModelMetrics, error) {
	f, err := t.Start(rows)
	if err != nil {
		return nil, err
	}
	return f.Wait()
}

func (t *Trainer) train(ds feature.Dataset) (*metrics.ModelMetrics, error) {
	began := time.Now()

	eval, err := t.evaluator.Evaluate(ds)
	if err != nil {
		t.logger.Error("Evaluation failed", "error", err.Error())
		return nil, scigoErrors.Wrap(err, "classifier evaluation failed")
	}
	report, err := metrics.ComputeMetrics(eval.Confusion, len(ds), eval.AUC)
	if err != nil {
		return nil, scigoErrors.Wrap(err, "metric computation failed")
	}
	report.ROC = eval.ROC

	if remaining := t.delay - time.Since(began); remaining > 0 {
		time.Sleep(remaining)
	}

	t.logger.Info("Training completed",
		"accuracy", report.Accuracy,
		"f1", report.F1,
		"auc", report.AUC,
		"elapsed", time.Since(began).String(),
	)
	return report, nil
}
