package service

import (
	"time"

	"github.com/ezoic/combustion/classifier"
	"github.com/ezoic/combustion/core/feature"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
	"github.com/ezoic/combustion/pkg/log"
	"github.com/ezoic/combustion/preprocessing"
)

// Prediction is the report for one sample. InputData is the normalized
// sample, so it always uses canonical element names and converted values.
type Prediction struct {
	Result      int                 `json:"result"`
	Probability float64             `json:"probability"`
	Explanation string              `json:"explanation"`
	InputData   feature.Vector      `json:"inputData"`
	Factors     []classifier.Factor `json:"factors,omitempty"`
}

// Predictor is the prediction orchestrator.
type Predictor struct {
	scorer classifier.Scorer
	delay  time.Duration
	logger log.Logger
}

// PredictorOption configures a Predictor.
type PredictorOption func(*Predictor)

// WithPredictionDelay makes every prediction task take at least d.
func WithPredictionDelay(d time.Duration) PredictorOption {
	return func(p *Predictor) { p.delay = d }
}

// WithPredictorLogger replaces the predictor's logger.
func WithPredictorLogger(l log.Logger) PredictorOption {
	return func(p *Predictor) { p.logger = l }
}

// NewPredictor returns a Predictor backed by scorer.
func NewPredictor(scorer classifier.Scorer, opts ...PredictorOption) *Predictor {
	p := &Predictor{
		scorer: scorer,
		logger: log.GetLoggerWithName("service.predictor"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start validates the inputs and launches the prediction.
//
// Errors (match ErrInvalidInput): sample is nil, training is empty.
func (p *Predictor) Start(sample feature.RawRow, training []feature.RawRow) (*Future[*Prediction], error) {
	if sample == nil {
		return nil, scigoErrors.NewModelError("Predictor.Start", "no sample to predict", scigoErrors.ErrInvalidInput)
	}
	if len(training) == 0 {
		return nil, scigoErrors.NewModelError("Predictor.Start", "reference training data is empty", scigoErrors.ErrInvalidInput)
	}

	vec := preprocessing.Normalize(sample)
	reference := preprocessing.NormalizeAll(training)

	p.logger.Info("Prediction started", "reference_samples", len(reference))
	return runAsync("Predictor.predict", func() (*Prediction, error) {
		return p.predict(vec, reference)
	}), nil
}

// Predict runs Start and waits for the result.
func (p *Predictor) Predict(sample feature.RawRow, training []feature.RawRow) (*Prediction, error) {
	f, err := p.Start(sample, training)
	if err != nil {
		return nil, err
	}
	return f.Wait()
}

func (p *Predictor) predict(sample feature.Vector, reference feature.Dataset) (*Prediction, error) {
	began := time.Now()

	score, err := p.scorer.Score(&sample, reference)
	if err != nil {
		p.logger.Error("Scoring failed", "error", err.Error())
		return nil, scigoErrors.Wrap(err, "scoring failed")
	}

	if remaining := p.delay - time.Since(began); remaining > 0 {
		time.Sleep(remaining)
	}

	p.logger.Info("Prediction completed",
		"result", score.Result,
		"probability", score.Probability,
	)
	return &Prediction{
		Result:      score.Result,
		Probability: score.Probability,
		Explanation: score.Explanation,
		InputData:   sample,
		Factors:     score.Factors,
	}, nil
}
