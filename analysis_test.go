/*
 * analysis_test.go, part of gopolymer
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
	"math/rand"
	"testing"

	v3 "github.com/rmera/gopolymer/v3"
)

//wormlikeFrames builds frames of independent worm-like chain conformations
//with the given target statistics.
func wormlikeFrames(frames, chains, bonds int, lb, lp float64, rnd *rand.Rand) [][]*v3.Matrix {
	ret := make([][]*v3.Matrix, frames)
	for i := range ret {
		frame := make([]*v3.Matrix, chains)
		for j := range frame {
			frame[j] = WormlikeChain(bonds, lb, lp, rnd)
		}
		ret[i] = frame
	}
	return ret
}

func wormlikeFit(Te *testing.T, frames int, seed int64, opts *Options) *FitResult {
	const (
		chains = 10
		bonds  = 60
		lb     = 1.0
		lp     = 20.0
	)
	rnd := rand.New(rand.NewSource(seed))
	src := NewFrameSource(wormlikeFrames(frames, chains, bonds, lb, lp, rnd)...)
	anal, err := NewAnalysis(src, opts)
	if err != nil {
		Te.Fatal(err)
	}
	if err := anal.ReadAll(); err != nil {
		Te.Fatal(err)
	}
	if anal.FramesRead() != frames {
		Te.Errorf("read %d frames, expected %d", anal.FramesRead(), frames)
	}
	res, err := anal.Fit()
	if err != nil {
		Te.Fatal(err)
	}
	return res
}

func TestWormlikeRecovery(Te *testing.T) {
	const target = 20.0
	res := wormlikeFit(Te, 100, 3, nil)
	fmt.Println("worm-like chain fit:", res)
	if math.Abs(res.Lp-target)/target > 0.1 {
		Te.Errorf("fitted lP %v, target %v", res.Lp, target)
	}
	if math.Abs(res.Lb-1.0) > 1e-9 {
		Te.Errorf("mean bond length %v, generated with 1.0", res.Lb)
	}
}

func TestConvergenceWithSampleSize(Te *testing.T) {
	//more pooled frames, tighter recovery
	const target = 20.0
	small := wormlikeFit(Te, 5, 4, nil)
	large := wormlikeFit(Te, 150, 4, nil)
	errSmall := math.Abs(small.Lp-target) / target
	errLarge := math.Abs(large.Lp-target) / target
	fmt.Printf("relative error with 5 frames: %.3f, with 150 frames: %.3f\n", errSmall, errLarge)
	if errSmall > 0.5 {
		Te.Errorf("5 frames: error %v beyond even the loose tolerance", errSmall)
	}
	if errLarge > 0.07 {
		Te.Errorf("150 frames: error %v, should be tight by now", errLarge)
	}
}

func TestUncorrelatedChains(Te *testing.T) {
	//freely-jointed chains decorrelate within one bond, so the fitted lP
	//has to come out on the scale of a single bond length
	const lb = 2.0
	rnd := rand.New(rand.NewSource(5))
	frames := make([][]*v3.Matrix, 20)
	for i := range frames {
		frame := make([]*v3.Matrix, 50)
		for j := range frame {
			frame[j] = RandomChain(40, lb, rnd)
		}
		frames[i] = frame
	}
	anal, err := NewAnalysis(NewFrameSource(frames...))
	if err != nil {
		Te.Fatal(err)
	}
	if err := anal.ReadAll(); err != nil {
		Te.Fatal(err)
	}
	res, err := anal.Fit()
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("freely-jointed chain fit:", res)
	if res.Lp <= 0 || res.Lp > 5*lb {
		Te.Errorf("uncorrelated chains: lP %v is not on the order of the bond length %v", res.Lp, lb)
	}
}

func TestStraightChainAnalysis(Te *testing.T) {
	frame := []*v3.Matrix{StraightChain(20, 1.0)}
	anal, err := NewAnalysis(NewFrameSource(frame))
	if err != nil {
		Te.Fatal(err)
	}
	if err := anal.ReadAll(); err != nil {
		Te.Fatal(err)
	}
	curve, err := anal.Curve()
	if err != nil {
		Te.Fatal(err)
	}
	for i, c := range curve.C {
		if c != 1 {
			Te.Errorf("straight chain: C(%d) = %v", curve.Lags[i], c)
		}
	}
	_, err = anal.Fit()
	if err == nil || !IsFitDiverged(err) {
		Te.Errorf("straight chain: expected a graceful fit-diverged error, got %v", err)
	}
	//a failed fit leaves the analysis accumulating, so more frames are welcome
	if err := anal.Next(); err == nil || !isLastFrame(err) {
		Te.Errorf("expected the source to be exhausted, got %v", err)
	}
}

func isLastFrame(err error) bool {
	_, ok := err.(LastFrameError)
	return ok
}

func TestStateMachine(Te *testing.T) {
	rnd := rand.New(rand.NewSource(6))
	frame := []*v3.Matrix{StraightChain(5, 1.0)}
	for i := 0; i < 10; i++ {
		frame = append(frame, WormlikeChain(30, 1.0, 4.0, rnd))
	}
	anal, err := NewAnalysis(NewFrameSource(frame, frame))
	if err != nil {
		Te.Fatal(err)
	}
	//fitting with no frames accumulated is a state error
	if _, err := anal.Fit(); err == nil || !IsWrongState(err) {
		Te.Errorf("fit on a fresh analysis: expected a state error, got %v", err)
	}
	if _, err := anal.Curve(); err == nil || !IsWrongState(err) {
		Te.Errorf("curve on a fresh analysis: expected a state error, got %v", err)
	}
	if err := anal.Next(); err != nil {
		Te.Fatal(err)
	}
	if err := anal.Next(); err != nil {
		Te.Fatal(err)
	}
	res, err := anal.Fit()
	if err != nil {
		Te.Fatal(err)
	}
	//the second fit returns the cached result, not a recomputation
	res2, err := anal.Fit()
	if err != nil {
		Te.Fatal(err)
	}
	if res != res2 {
		Te.Error("second Fit call did not return the cached result")
	}
	//and the fitted state is terminal
	if err := anal.Next(); err == nil || !IsWrongState(err) {
		Te.Errorf("Next after Fit: expected a state error, got %v", err)
	}
	//reading the curve is still fine, though
	if _, err := anal.Curve(); err != nil {
		Te.Errorf("Curve after Fit: %v", err)
	}
}

func TestEmptyFrame(Te *testing.T) {
	anal, err := NewAnalysis(NewFrameSource([]*v3.Matrix{}))
	if err != nil {
		Te.Fatal(err)
	}
	if err := anal.Next(); err == nil || !IsEmptyInput(err) {
		Te.Errorf("empty frame: expected an empty-input error, got %v", err)
	}
	if _, err := NewAnalysis(nil); err == nil || !IsEmptyInput(err) {
		Te.Errorf("nil source: expected an empty-input error, got %v", err)
	}
}

func TestDegeneratePolicy(Te *testing.T) {
	bad, _ := v3.NewMatrix([]float64{0, 0, 0, 0, 0, 0, 1, 0, 0})
	good := StraightChain(4, 1.0)
	frame := []*v3.Matrix{bad, good}
	//default policy: the degenerate chain aborts the frame
	anal, _ := NewAnalysis(NewFrameSource(frame))
	err := anal.Next()
	if err == nil || !IsDegenerateBond(err) {
		Te.Errorf("expected a degenerate-bond error, got %v", err)
	}
	//skip policy: the bad chain is dropped, the good one still counts
	o := DefaultOptions()
	o.SkipDegenerate(true)
	anal, _ = NewAnalysis(NewFrameSource(frame), o)
	if err := anal.Next(); err != nil {
		Te.Fatal(err)
	}
	curve, err := anal.Curve()
	if err != nil {
		Te.Fatal(err)
	}
	if curve.Counts[0] != 4 { //only the good chain's 4 bonds
		Te.Errorf("lag-0 count %d, expected the good chain's 4", curve.Counts[0])
	}
}

func TestConcurrentMatchesSerial(Te *testing.T) {
	serial := wormlikeFit(Te, 20, 7, nil)
	o := DefaultOptions()
	o.Cpus(4)
	conc := wormlikeFit(Te, 20, 7, o)
	fmt.Printf("serial lP: %v, 4-goroutine lP: %v\n", serial.Lp, conc.Lp)
	//only float addition order differs between the two
	if math.Abs(serial.Lp-conc.Lp)/serial.Lp > 1e-6 {
		Te.Errorf("concurrent folding drifted from serial: %v vs %v", conc.Lp, serial.Lp)
	}
	if math.Abs(serial.Lb-conc.Lb) > 1e-9 {
		Te.Errorf("concurrent mean bond length drifted: %v vs %v", conc.Lb, serial.Lb)
	}
}

func TestSkipOption(Te *testing.T) {
	const frames = 9
	rnd := rand.New(rand.NewSource(8))
	src := NewFrameSource(wormlikeFrames(frames, 2, 10, 1.0, 5.0, rnd)...)
	o := DefaultOptions()
	o.Skip(3)
	anal, err := NewAnalysis(src, o)
	if err != nil {
		Te.Fatal(err)
	}
	if err := anal.ReadAll(); err != nil {
		Te.Fatal(err)
	}
	if anal.FramesRead() != 3 {
		Te.Errorf("with skip 3 over %d frames, %d frames folded, expected 3", frames, anal.FramesRead())
	}
}

func TestOptions(Te *testing.T) {
	o := DefaultOptions()
	if o.Cpus() != 1 || o.Skip() != 1 || o.SkipDegenerate() {
		Te.Error("wrong defaults")
	}
	old := o.Cpus(3)
	if old != 1 || o.Cpus() != 3 {
		Te.Error("Cpus does not set/return properly")
	}
	o.Cpus(-1) //invalid, ignored
	if o.Cpus() != 3 {
		Te.Error("negative cpus should be ignored")
	}
	o.Cpus(0) //0 means all logical CPUs
	if o.Cpus() < 1 {
		Te.Error("cpus 0 should mean all logical CPUs")
	}
}
