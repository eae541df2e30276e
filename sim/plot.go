package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewTrialPlot creates new plot of a reconstructed trial for state column col.
// truth and est store one stacked state per row: truth holds simulated states and
// est holds the states reconstructed by the filter.
// It returns error if the plot fails to be created. This can be due to either of the following conditions:
// * either of the supplied data matrices is nil
// * the supplied matrices differ in size or col is out of their range
// * gonum plot fails to be created
func NewTrialPlot(truth, est *mat.Dense, col int) (*plot.Plot, error) {
	if truth == nil || est == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	rt, ct := truth.Dims()
	re, ce := est.Dims()
	if rt != re || ct != ce {
		return nil, fmt.Errorf("invalid data dimensions: [%d x %d] != [%d x %d]", rt, ct, re, ce)
	}

	if col < 0 || col >= ct {
		return nil, fmt.Errorf("invalid state column: %d", col)
	}

	p := plot.New()

	p.Title.Text = fmt.Sprintf("Reconstruction of state %d", col)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Value"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// Make a line plotter for simulated data
	truthLine, err := plotter.NewLine(makePoints(truth, col))
	if err != nil {
		return nil, fmt.Errorf("failed to create line: %w", err)
	}
	truthLine.LineStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthLine.LineStyle.Width = vg.Points(1)

	p.Add(truthLine)
	p.Legend.Add("truth", truthLine)

	// Make a scatter plotter for filter data
	estScatter, err := plotter.NewScatter(makePoints(est, col))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %w", err)
	}
	estScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	estScatter.Shape = draw.CrossGlyph{}
	estScatter.GlyphStyle.Radius = vg.Points(2)

	p.Add(estScatter)
	p.Legend.Add("reconstructed", estScatter)

	return p, nil
}

func makePoints(m *mat.Dense, col int) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = float64(i)
		pts[i].Y = m.At(i, col)
	}

	return pts
}
