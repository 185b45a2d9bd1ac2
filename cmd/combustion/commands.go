package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezoic/combustion/classifier"
	"github.com/ezoic/combustion/config"
	"github.com/ezoic/combustion/core/feature"
	"github.com/ezoic/combustion/ingest"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
	"github.com/ezoic/combustion/pkg/log"
	"github.com/ezoic/combustion/preprocessing"
	"github.com/ezoic/combustion/report"
	"github.com/ezoic/combustion/service"
)

// Exit codes per error kind.
const (
	exitFailure      = 1
	exitInvalidInput = 2
	exitMissingLabel = 3
)

func exitCode(err error) int {
	switch {
	case scigoErrors.Is(err, scigoErrors.ErrMissingLabel):
		return exitMissingLabel
	case scigoErrors.Is(err, scigoErrors.ErrInvalidInput), scigoErrors.Is(err, scigoErrors.ErrMalformedRow):
		return exitInvalidInput
	default:
		return exitFailure
	}
}

type options struct {
	configPath string
	dataPath   string
	samplePath string
	rocPath    string
	asJSON     bool
	noDelay    bool
	strict     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "combustion",
		Short:         "Classify material combustibility from elemental composition",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&opts.dataPath, "data", "", "labeled training CSV")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print raw JSON instead of a text report")
	root.PersistentFlags().BoolVar(&opts.noDelay, "no-delay", false, "skip the configured task delays")
	root.PersistentFlags().BoolVar(&opts.strict, "strict", false, "reject rows with non-numeric composition values")
	_ = root.MarkPersistentFlagRequired("data")

	train := &cobra.Command{
		Use:   "train",
		Short: "Train on --data and report evaluation metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrain(cmd, opts)
		},
	}
	train.Flags().StringVar(&opts.rocPath, "roc-plot", "", "write the ROC curve to this image file (trained evaluator only)")

	predict := &cobra.Command{
		Use:   "predict",
		Short: "Classify the single row in --sample against --data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, opts)
		},
	}
	predict.Flags().StringVar(&opts.samplePath, "sample", "", "one-row sample CSV")
	_ = predict.MarkFlagRequired("sample")

	root.AddCommand(train, predict)
	return root
}

func setup(opts *options) (config.Config, classifier.Language, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, classifier.LangEN, err
	}
	if opts.noDelay {
		cfg.TrainingDelay, cfg.PredictionDelay = 0, 0
	}
	log.SetupLogger(cfg.LogLevel)
	lang, err := classifier.ParseLanguage(cfg.Language)
	return cfg, lang, err
}

func runTrain(cmd *cobra.Command, opts *options) error {
	cfg, lang, err := setup(opts)
	if err != nil {
		return err
	}
	rows, err := readRows(opts.dataPath, opts.strict)
	if err != nil {
		return userError(err, lang)
	}
	trainer, _, err := service.FromConfig(cfg)
	if err != nil {
		return err
	}
	m, err := trainer.Train(rows)
	if err != nil {
		return userError(err, lang)
	}

	if opts.rocPath != "" {
		if len(m.ROC) == 0 {
			log.GetLoggerWithName("cli").Warn("No ROC curve available; use the trained evaluator", "evaluator", cfg.Evaluator)
		} else if err := report.SaveROCPlot(m.ROC, m.AUC, opts.rocPath); err != nil {
			return err
		}
	}

	if opts.asJSON {
		return report.WriteJSON(cmd.OutOrStdout(), m)
	}
	return report.WriteMetrics(cmd.OutOrStdout(), m, lang)
}

func runPredict(cmd *cobra.Command, opts *options) error {
	cfg, lang, err := setup(opts)
	if err != nil {
		return err
	}
	rows, err := readRows(opts.dataPath, opts.strict)
	if err != nil {
		return userError(err, lang)
	}
	sample, err := ingest.ParseSampleFile(opts.samplePath)
	if err != nil {
		return userError(err, lang)
	}
	if opts.strict {
		if _, err := preprocessing.NormalizeStrict(sample); err != nil {
			return userError(err, lang)
		}
	}
	_, predictor, err := service.FromConfig(cfg)
	if err != nil {
		return err
	}
	p, err := predictor.Predict(sample, rows)
	if err != nil {
		return userError(err, lang)
	}

	if opts.asJSON {
		return report.WriteJSON(cmd.OutOrStdout(), p)
	}
	return report.WritePrediction(cmd.OutOrStdout(), p, lang)
}

// readRows parses path and, in strict mode, checks every row with NormalizeStrict.
func readRows(path string, strict bool) ([]feature.RawRow, error) {
	rows, err := ingest.ParseFile(path)
	if err != nil || !strict {
		return rows, err
	}
	for i, row := range rows {
		if _, err := preprocessing.NormalizeStrict(row); err != nil {
			return nil, scigoErrors.Wrapf(err, "row %d", i+1)
		}
	}
	return rows, nil
}

// userError prefixes err with its localized message, keeping the chain for exit codes.
func userError(err error, lang classifier.Language) error {
	return fmt.Errorf("%s: %w", report.ErrorMessage(err, lang), err)
}
