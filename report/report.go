// Package report renders training and prediction results for people.
//
// The core packages emit raw ratios in [0, 1]; this package turns them into
// percentages, lays out the confusion matrix and maps error kinds to
// localized messages.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ezoic/combustion/classifier"
	"github.com/ezoic/combustion/core/feature"
	"github.com/ezoic/combustion/metrics"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
	"github.com/ezoic/combustion/service"
)

type labels struct {
	metrics     string
	accuracy    string
	precision   string
	recall      string
	f1          string
	auc         string
	samples     string
	confusion   string
	predicted   string
	actual      string
	prediction  string
	probability string
	composition string
	classes     [2]string
}

var catalog = map[classifier.Language]labels{
	classifier.LangEN: {
		metrics:     "Model evaluation",
		accuracy:    "Accuracy",
		precision:   "Precision",
		recall:      "Recall",
		f1:          "F1 score",
		auc:         "AUC",
		samples:     "Samples",
		confusion:   "Confusion matrix",
		predicted:   "predicted",
		actual:      "actual",
		prediction:  "Prediction",
		probability: "Probability of combustion",
		composition: "Normalized composition, %",
		classes:     [2]string{"Non-combustible", "Combustible"},
	},
	classifier.LangRU: {
		metrics:     "Оценка модели",
		accuracy:    "Точность (accuracy)",
		precision:   "Точность (precision)",
		recall:      "Полнота",
		f1:          "F1-мера",
		auc:         "AUC",
		samples:     "Образцов",
		confusion:   "Матрица ошибок",
		predicted:   "прогноз",
		actual:      "факт",
		prediction:  "Прогноз",
		probability: "Вероятность горючести",
		composition: "Нормализованный состав, %",
		classes:     [2]string{"Негорючий", "Горючий"},
	},
}

func labelsFor(lang classifier.Language) labels {
	if l, ok := catalog[lang]; ok {
		return l
	}
	return catalog[classifier.LangEN]
}

func pct(x float64) string {
	return fmt.Sprintf("%.1f%%", x*100)
}

// WriteMetrics prints a metrics report.
func WriteMetrics(w io.Writer, m *metrics.ModelMetrics, lang classifier.Language) error {
	l := labelsFor(lang)
	cm := m.ConfusionMatrix
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s: %d)\n", l.metrics, l.samples, m.TotalSamples)
	fmt.Fprintf(&sb, "  %-22s %s\n", l.accuracy, pct(m.Accuracy))
	fmt.Fprintf(&sb, "  %-22s %s\n", l.precision, pct(m.Precision))
	fmt.Fprintf(&sb, "  %-22s %s\n", l.recall, pct(m.Recall))
	fmt.Fprintf(&sb, "  %-22s %s\n", l.f1, pct(m.F1))
	fmt.Fprintf(&sb, "  %-22s %.3f\n", l.auc, m.AUC)
	fmt.Fprintf(&sb, "%s (%s \\ %s)\n", l.confusion, l.actual, l.predicted)
	fmt.Fprintf(&sb, "  %-16s %8d %8d\n", l.classes[0], cm.TN, cm.FP)
	fmt.Fprintf(&sb, "  %-16s %8d %8d\n", l.classes[1], cm.FN, cm.TP)
	_, err := io.WriteString(w, sb.String())
	return err
}

// WritePrediction prints a prediction report with the non-zero normalized
// composition sorted by content.
func WritePrediction(w io.Writer, p *service.Prediction, lang classifier.Language) error {
	l := labelsFor(lang)
	var sb strings.Builder
	class := l.classes[0]
	if p.Result == classifier.Combustible {
		class = l.classes[1]
	}
	fmt.Fprintf(&sb, "%s: %s\n", l.prediction, class)
	fmt.Fprintf(&sb, "%s: %s\n", l.probability, pct(p.Probability))
	fmt.Fprintf(&sb, "%s\n", p.Explanation)

	type entry struct {
		e feature.Element
		v float64
	}
	var entries []entry
	for _, e := range feature.Elements() {
		if v := p.InputData.Get(e); v != 0 {
			entries = append(entries, entry{e, v})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].v > entries[j].v })
	if len(entries) > 0 {
		fmt.Fprintf(&sb, "%s\n", l.composition)
		for _, en := range entries {
			fmt.Fprintf(&sb, "  %-3s %8.2f\n", en.e, en.v)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ErrorMessage maps an error to a user-facing message by kind. The message
// does not repeat the error text.
func ErrorMessage(err error, lang classifier.Language) string {
	ru := lang == classifier.LangRU
	switch {
	case err == nil:
		return ""
	case scigoErrors.Is(err, scigoErrors.ErrMissingLabel):
		if ru {
			return "В обучающих данных отсутствует обязательная колонка 'label'."
		}
		return "The training data has no 'label' column."
	case scigoErrors.Is(err, scigoErrors.ErrMalformedRow):
		if ru {
			return "Файл содержит нечисловые значения в колонках состава."
		}
		return "The file contains non-numeric values in composition columns."
	case scigoErrors.Is(err, scigoErrors.ErrInvalidInput):
		if ru {
			return "Некорректные или пустые входные данные."
		}
		return "Invalid or empty input."
	default:
		if ru {
			return "Не удалось выполнить операцию."
		}
		return "Operation failed."
	}
}
