package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ezoic/combustion/metrics"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// NewROCPlot builds a ROC chart with the chance diagonal for reference.
func NewROCPlot(points []metrics.ROCPoint, auc float64) (*plot.Plot, error) {
	if len(points) < 2 {
		return nil, scigoErrors.NewValueError("NewROCPlot", "a ROC curve needs at least two points")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("ROC curve (AUC = %.3f)", auc)
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.FPR
		xys[i].Y = pt.TPR
	}
	curve, err := plotter.NewLine(xys)
	if err != nil {
		return nil, scigoErrors.Wrap(err, "failed to build ROC line")
	}
	curve.Width = vg.Points(2)
	p.Add(curve)
	p.Legend.Add("model", curve)

	chance, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return nil, scigoErrors.Wrap(err, "failed to build chance line")
	}
	chance.Color = color.Gray{Y: 128}
	chance.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(chance)
	p.Legend.Add("chance", chance)
	p.Legend.Left = false
	p.Legend.Top = false

	return p, nil
}

// SaveROCPlot renders the ROC chart to path. The format follows the file
// extension (png, svg, pdf, ...).
func SaveROCPlot(points []metrics.ROCPoint, auc float64, path string) error {
	p, err := NewROCPlot(points, auc)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return scigoErrors.Wrapf(err, "failed to save ROC plot to %s", path)
	}
	return nil
}
