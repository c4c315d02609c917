/*
 * fit.go, part of gopolymer
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

package polymer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// How many mean bond lengths the fitted persistence length may reach before
// we declare that the correlation simply does not decay (a rigid chain, or
// data too poor to tell it from one).
const rigidBound = 1e9

// Bound on the optimizer's work. The problem has a single unknown, so
// anything that hasn't converged by here never will.
const fitMaxIterations = 300

// FitResult is the outcome of fitting the exponential decay model
// C(n) = exp(-n*lB/lP) to a correlation curve. Lp and Lb are in the same
// length units as the input coordinates. Fitted holds the model evaluated
// at each lag of the curve the fit was given (including the lags that were
// excluded from the fit itself), for plotting against the raw data, and RMS
// is the root-mean-square residual over the points actually fitted.
// A FitResult is never modified after being produced.
type FitResult struct {
	Lp     float64
	Lb     float64
	Lags   []int
	Fitted []float64
	RMS    float64
}

func (F *FitResult) String() string {
	return fmt.Sprintf("persistence length: %.4f, mean bond length: %.4f (RMS residual %.2e)", F.Lp, F.Lb, F.RMS)
}

// Fit obtains the persistence length from a correlation curve by nonlinear
// least squares on the exponential form C(n) = exp(-n*lb/lP), with lb, the
// mean bond length, a fixed scale measured directly from the data, never a
// free parameter. Fitting the exponential directly, instead of linearizing
// with a logarithm, keeps the noisy tail usable: at large lags C(n) dips to
// and below zero, where log(C) is not even defined.
// Only lags with a finite, positive C(n) enter the fit; non-positive values
// are excluded, not errors. If fewer than 2 usable points remain, Fit
// returns an insufficient-data error. If the optimizer fails to converge to
// a finite, positive lP within its iteration budget, or the data does not
// decay at all (e.g. a perfectly straight chain), Fit returns a
// fit-diverged error.
func Fit(curve *CorrelationCurve, lb float64) (*FitResult, error) {
	if curve == nil || curve.Len() == 0 {
		return nil, newError(kindEmptyInput, EmptyInput+": no correlation curve", "Fit")
	}
	if lb <= 0 || math.IsNaN(lb) || math.IsInf(lb, 0) {
		return nil, newError(kindEmptyInput, fmt.Sprintf("%s: mean bond length %v is not a usable length", EmptyInput, lb), "Fit")
	}
	//x is the separation in length units, y the observed correlation.
	x := make([]float64, 0, curve.Len())
	y := make([]float64, 0, curve.Len())
	decays := false
	for i, c := range curve.C {
		if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			continue
		}
		if curve.Lags[i] > 0 && c < 1-1e-9 {
			decays = true
		}
		x = append(x, float64(curve.Lags[i])*lb)
		y = append(y, c)
	}
	if len(x) < 2 {
		return nil, newError(kindInsufficientData, fmt.Sprintf("%s: only %d usable points in the curve", InsufficientData, len(x)), "Fit")
	}
	if !decays {
		return nil, newError(kindFitDiverged, FitDiverged+": the correlation does not decay (rigid chain?)", "Fit")
	}
	lp, ssr, err := fitDecay(x, y, lb)
	if err != nil {
		return nil, errDecorate(err, "Fit")
	}
	ret := &FitResult{
		Lp:     lp,
		Lb:     lb,
		Lags:   append([]int{}, curve.Lags...),
		Fitted: make([]float64, curve.Len()),
		RMS:    math.Sqrt(ssr / float64(len(x))),
	}
	for i, n := range ret.Lags {
		ret.Fitted[i] = math.Exp(-float64(n) * lb / lp)
	}
	return ret, nil
}

// fitDecay minimizes sum_i (exp(-x_i/lP)-y_i)^2 over lP>0. The positivity
// constraint is enforced by optimizing t=log(lP) instead, which also evens
// out the scale of the parameter.
func fitDecay(x, y []float64, lb float64) (lp, ssr float64, err error) {
	problem := optimize.Problem{
		Func: func(t []float64) float64 {
			lp := math.Exp(t[0])
			var f float64
			for i, xi := range x {
				r := math.Exp(-xi/lp) - y[i]
				f += r * r
			}
			return f
		},
		Grad: func(grad, t []float64) {
			lp := math.Exp(t[0])
			var g float64
			for i, xi := range x {
				m := math.Exp(-xi / lp)
				//d(m)/d(t) = m*x/lp^2 * d(lp)/d(t) = m*x/lp
				g += 2 * (m - y[i]) * m * xi / lp
			}
			grad[0] = g
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   fitMaxIterations,
		GradientThreshold: 1e-12,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-15,
			Iterations: 50,
		},
	}
	result, err := optimize.Minimize(problem, []float64{math.Log(initialGuess(x, y, lb))}, settings, &optimize.BFGS{})
	if err != nil {
		return 0, 0, newError(kindFitDiverged, fmt.Sprintf("%s: %v", FitDiverged, err), "fitDecay")
	}
	if result.Status == optimize.IterationLimit || result.Status == optimize.Failure {
		return 0, 0, newError(kindFitDiverged, fmt.Sprintf("%s: optimizer stopped with status %v", FitDiverged, result.Status), "fitDecay")
	}
	lp = math.Exp(result.X[0])
	if math.IsNaN(lp) || math.IsInf(lp, 0) || lp <= 0 || lp > rigidBound*lb {
		return 0, 0, newError(kindFitDiverged, fmt.Sprintf("%s: fitted value %v is not a usable length", FitDiverged, lp), "fitDecay")
	}
	return lp, result.F, nil
}

// initialGuess log-linearizes the first decaying point to start the
// optimizer in the right ballpark. Crude, but only a starting point.
func initialGuess(x, y []float64, lb float64) float64 {
	for i, yi := range y {
		if x[i] > 0 && yi < 1 {
			return -x[i] / math.Log(yi)
		}
	}
	return lb //uncorrelated-chain scale, shouldn't be reached
}
