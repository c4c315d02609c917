/*
 * polyplot.go, part of gopolymer
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package polyplot draws the results of a persistence-length analysis.

package polyplot

import (
	"fmt"
	"image/color"

	polymer "github.com/rmera/gopolymer"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Correlation saves to filename (format given by its extension, e.g. .png or
// .pdf) a plot of the bond autocorrelation curve C(n) vs the lag n, with,
// if fit is not nil, the fitted exponential decay overlaid as a line.
func Correlation(curve *polymer.CorrelationCurve, fit *polymer.FitResult, filename string) error {
	if curve == nil || curve.Len() == 0 {
		return fmt.Errorf("polyplot.Correlation: given an empty curve")
	}
	p := plot.New()
	p.Title.Text = "Bond-vector autocorrelation"
	p.X.Label.Text = "lag (bonds)"
	p.Y.Label.Text = "C(n)"
	p.Add(plotter.NewGrid())
	pts := make(plotter.XYs, curve.Len())
	for i := range pts {
		pts[i].X = float64(curve.Lags[i])
		pts[i].Y = curve.C[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(s)
	p.Legend.Add("C(n)", s)
	if fit != nil {
		fpts := make(plotter.XYs, len(fit.Lags))
		for i := range fpts {
			fpts[i].X = float64(fit.Lags[i])
			fpts[i].Y = fit.Fitted[i]
		}
		l, err := plotter.NewLine(fpts)
		if err != nil {
			return err
		}
		l.LineStyle.Color = color.RGBA{B: 255, A: 255}
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("exp(-n*%.3g/%.3g)", fit.Lb, fit.Lp), l)
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}
