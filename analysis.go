/*
 * analysis.go, part of gopolymer
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
	"runtime"

	v3 "github.com/rmera/gopolymer/v3"
)

// Options collects the tunables of an Analysis.
type Options struct {
	cpus    int
	skip    int
	skipbad bool
}

// DefaultOptions returns an Options with the default options: serial
// folding (which is bit-reproducible), every frame read, and any degenerate
// bond aborting the frame.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = 1
	ret.skip = 1
	ret.skipbad = false
	return ret
}

// Cpus returns the number of goroutines used to fold the chains of each
// frame, and sets it, if a valid value is given. Numbers over 1 buy speed on
// many-chain systems at the cost of bit-for-bit reproducibility of the sums
// (the physics is unaffected; only float addition order changes). Give 0 to
// use all logical CPUs.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 {
		if cpus[0] > 0 {
			o.cpus = cpus[0]
		} else if cpus[0] == 0 {
			o.cpus = runtime.NumCPU()
		}
	}
	return ret
}

// Skip returns how many frames make one read (i.e. 3 means every third
// frame is folded, the rest are discarded), and sets it, if a valid value
// is given.
func (o *Options) Skip(skip ...int) int {
	ret := o.skip
	if len(skip) > 0 && skip[0] > 0 {
		o.skip = skip[0]
	}
	return ret
}

// SkipDegenerate returns whether chains containing a zero-length bond are
// silently dropped from the frame (true) or abort the frame with a
// degenerate-bond error (false, the default), and sets the policy, if given.
func (o *Options) SkipDegenerate(skip ...bool) bool {
	ret := o.skipbad
	if len(skip) > 0 {
		o.skipbad = skip[0]
	}
	return ret
}

type analysisState int

const (
	stateInitialized analysisState = iota
	stateAccumulating
	stateFitted
)

func (s analysisState) String() string {
	switch s {
	case stateInitialized:
		return "Initialized"
	case stateAccumulating:
		return "Accumulating"
	default:
		return "Fitted"
	}
}

// Analysis estimates the persistence length of the polymer chains delivered
// by a ChainSource, pooling the bond-vector orientational autocorrelation
// over every chain of every frame and then fitting the exponential decay
// model (see Fit).
//
// An Analysis moves through three states: freshly built (no frames read),
// accumulating (one or more frames folded, more still welcome) and fitted.
// Fitting is terminal: once Fit has succeeded the result is frozen, further
// frames are refused, and repeated Fit calls return the cached result. This
// keeps a result from ever mixing statistics accumulated before and after
// it was computed; to re-run with more data, build a new Analysis.
type Analysis struct {
	source ChainSource
	o      *Options
	stats  *LagStatistics
	state  analysisState
	frames int
	result *FitResult
}

// NewAnalysis prepares an analysis of the chains delivered by source.
func NewAnalysis(source ChainSource, options ...*Options) (*Analysis, error) {
	if source == nil {
		return nil, newError(kindEmptyInput, EmptyInput+": nil chain source", "NewAnalysis")
	}
	o := DefaultOptions()
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	}
	return &Analysis{source: source, o: o, stats: NewLagStatistics()}, nil
}

// FramesRead returns the number of frames folded so far.
func (A *Analysis) FramesRead() int {
	return A.frames
}

// Next reads the next frame from the source and folds every chain in it
// into the running statistics. On normal exhaustion of the source it
// returns the source's LastFrameError untouched, so callers can filter it
// with a type switch. Next is not valid once the analysis has been fitted.
func (A *Analysis) Next() error {
	return A.next(true)
}

func (A *Analysis) next(fold bool) error {
	if A.state == stateFitted {
		return newError(kindState, WrongState+": cannot read frames after fitting", "Analysis.Next")
	}
	chains, err := A.source.Next()
	if err != nil {
		if _, ok := err.(LastFrameError); ok {
			return err
		}
		return errDecorate(err, fmt.Sprintf("Analysis.Next: reading frame %d", A.frames))
	}
	if !fold {
		return nil
	}
	if len(chains) == 0 {
		return newError(kindEmptyInput, EmptyInput+": frame with no chains", "Analysis.Next")
	}
	if err := A.foldFrame(chains); err != nil {
		return errDecorate(err, fmt.Sprintf("Analysis.Next: folding frame %d", A.frames))
	}
	A.state = stateAccumulating
	A.frames++
	return nil
}

// ReadAll drains the source, folding every o.Skip()-th frame, until the
// source reports its last frame. Any other error stops the reading and is
// returned.
func (A *Analysis) ReadAll() error {
	for i := 0; ; i++ {
		err := A.next(i%A.o.skip == 0)
		if err != nil {
			if _, ok := err.(LastFrameError); ok {
				return nil
			}
			return errDecorate(err, "Analysis.ReadAll")
		}
	}
}

// foldFrame folds all the chains of one frame, serially or with o.cpus
// workers, each folding into its own accumulator, merged at the end in
// worker order (so results for a given cpus value are deterministic).
// The partials only merge into the running statistics if the whole frame
// folded cleanly, so an errored frame leaves them untouched and the caller
// is free to skip it and keep reading.
func (A *Analysis) foldFrame(chains []*v3.Matrix) error {
	cpus := A.o.cpus
	if cpus > len(chains) {
		cpus = len(chains)
	}
	if cpus <= 1 {
		partial := NewLagStatistics()
		if err := foldChains(partial, chains, A.o.skipbad); err != nil {
			return err
		}
		A.stats.Merge(partial)
		return nil
	}
	partials := make([]*LagStatistics, cpus)
	errs := make([]error, cpus)
	done := make(chan int)
	for w := 0; w < cpus; w++ {
		go func(w int) {
			partials[w] = NewLagStatistics()
			//chains are dealt round-robin so uneven chain lengths spread out
			var mine []*v3.Matrix
			for i := w; i < len(chains); i += cpus {
				mine = append(mine, chains[i])
			}
			errs[w] = foldChains(partials[w], mine, A.o.skipbad)
			done <- w
		}(w)
	}
	for range partials {
		<-done
	}
	for w := 0; w < cpus; w++ {
		if errs[w] != nil {
			return errs[w]
		}
	}
	for _, partial := range partials {
		A.stats.Merge(partial)
	}
	return nil
}

func foldChains(stats *LagStatistics, chains []*v3.Matrix, skipbad bool) error {
	for i, chain := range chains {
		bonds, norms, err := BondVectors(chain)
		if err != nil {
			if skipbad && IsDegenerateBond(err) {
				continue
			}
			return errDecorate(err, fmt.Sprintf("foldChains: chain %d", i))
		}
		if err := stats.Fold(bonds, norms); err != nil {
			return errDecorate(err, fmt.Sprintf("foldChains: chain %d", i))
		}
	}
	return nil
}

// Curve finalizes and returns the correlation curve pooled so far. At least
// one frame must have been folded. The curve is a snapshot: reading further
// frames does not alter curves already returned.
func (A *Analysis) Curve() (*CorrelationCurve, error) {
	if A.state == stateInitialized {
		return nil, newError(kindState, WrongState+": no frames accumulated yet", "Analysis.Curve")
	}
	curve, err := A.stats.Curve()
	if err != nil {
		return nil, errDecorate(err, "Analysis.Curve")
	}
	return curve, nil
}

// MeanBondLength returns the mean bond length over everything folded so far.
func (A *Analysis) MeanBondLength() (float64, error) {
	if A.state == stateInitialized {
		return 0, newError(kindState, WrongState+": no frames accumulated yet", "Analysis.MeanBondLength")
	}
	lb, err := A.stats.MeanBondLength()
	if err != nil {
		return 0, errDecorate(err, "Analysis.MeanBondLength")
	}
	return lb, nil
}

// Fit runs the persistence-length fit on the statistics accumulated so far
// and freezes the analysis. Calling Fit again just returns the same result.
// Fitting before any frame has been folded is a state error. If the fit
// itself fails (insufficient data, divergence) the analysis stays in the
// accumulating state, so more frames can be read and the fit retried.
func (A *Analysis) Fit() (*FitResult, error) {
	if A.state == stateFitted {
		return A.result, nil
	}
	if A.state == stateInitialized || A.frames == 0 {
		return nil, newError(kindState, WrongState+": fit attempted with no frames accumulated", "Analysis.Fit")
	}
	lb, err := A.stats.MeanBondLength()
	if err != nil {
		return nil, errDecorate(err, "Analysis.Fit")
	}
	curve, err := A.stats.Curve()
	if err != nil {
		return nil, errDecorate(err, "Analysis.Fit")
	}
	result, err := Fit(curve, lb)
	if err != nil {
		return nil, errDecorate(err, "Analysis.Fit")
	}
	A.result = result
	A.state = stateFitted
	return A.result, nil
}
