package metrics

import (
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

// SavePredictionPlot は予測値と実測値の散布図をPNGとして保存する。
// 対角線（y = x）上に点が並ぶほど予測が正確であることを示す。
func SavePredictionPlot(yTrue, yPred *mat.VecDense, path string) error {
	n := yTrue.Len()
	if n == 0 {
		return errors.NewValueError("SavePredictionPlot", "empty vector")
	}

	if yPred.Len() != n {
		return errors.NewDimensionError("SavePredictionPlot", n, yPred.Len(), 0)
	}

	p := plot.New()
	p.Title.Text = "Predicted vs Actual"
	p.X.Label.Text = "Actual"
	p.Y.Label.Text = "Predicted"

	pts := make(plotter.XYs, n)
	lo := yTrue.AtVec(0)
	hi := yTrue.AtVec(0)
	for i := 0; i < n; i++ {
		actual := yTrue.AtVec(i)
		predicted := yPred.AtVec(i)

		pts[i].X = actual
		pts[i].Y = predicted

		if actual < lo {
			lo = actual
		}
		if actual > hi {
			hi = actual
		}
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "failed to build scatter")
	}
	s.Color = color.RGBA{B: 255, A: 255}
	p.Add(s)

	// 理想的な予測を表す対角線
	line, err := plotter.NewLine(plotter.XYs{
		{X: lo, Y: lo},
		{X: hi, Y: hi},
	})
	if err != nil {
		return errors.Wrap(err, "failed to build identity line")
	}
	line.Color = color.RGBA{R: 255, A: 255}
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrap(err, "failed to save plot")
	}

	return nil
}
