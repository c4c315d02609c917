/*
 * lag.go, part of gopolymer
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
	v3 "github.com/rmera/gopolymer/v3"
	"gonum.org/v1/gonum/floats"
)

type lagBin struct {
	sum   float64
	count int
}

// LagStatistics holds the running sums of bond-vector dot products, keyed by
// the separation (lag) in bonds between the two vectors, pooled over every
// chain and frame folded into it so far, plus the running sum of bond
// lengths. It is the only state that survives from one frame to the next:
// no raw coordinates or bond vectors are retained, so an analysis can span
// an unbounded number of frames. Its lag domain grows at the upper end the
// first time a longer chain is seen and never shrinks.
// A LagStatistics is not safe for concurrent use; for parallel folding, give
// each goroutine its own and combine them with Merge.
type LagStatistics struct {
	bins      []lagBin
	bondSum   float64
	bondCount int
}

// NewLagStatistics returns an empty accumulator.
func NewLagStatistics() *LagStatistics {
	return &LagStatistics{}
}

// Fold adds to the running statistics the correlations of one chain's unit
// bond vectors, as produced by BondVectors: for every pair of bonds n apart,
// their dot product goes into the sum for lag n. A chain with m bonds thus
// contributes m-n pairs at lag n, for every n up to m-1. Fold must be called
// once per chain per frame; all chains and frames pool into the same lags.
// The bond norms go into the running mean bond length.
func (L *LagStatistics) Fold(bonds *v3.Matrix, norms []float64) error {
	if bonds == nil || bonds.NVecs() == 0 {
		return newError(kindEmptyInput, EmptyInput+": no bond vectors to fold", "LagStatistics.Fold")
	}
	m := bonds.NVecs()
	if len(norms) != m {
		panic("gopolymer: Fold: bond vectors and norms have different lengths")
	}
	if m > len(L.bins) {
		L.bins = append(L.bins, make([]lagBin, m-len(L.bins))...)
	}
	for n := 0; n < m; n++ {
		bin := &L.bins[n]
		for i := 0; i+n < m; i++ {
			bin.sum += floats.Dot(bonds.RawRowView(i), bonds.RawRowView(i+n))
			bin.count++
		}
	}
	L.bondSum += floats.Sum(norms)
	L.bondCount += m
	return nil
}

// Merge adds the statistics accumulated in B to the receiver, lag by lag.
// Folding two disjoint sets of chains into separate accumulators and merging
// them is equivalent to folding everything into one, so Merge can combine
// partial results computed concurrently or on separate trajectory pieces.
// B is not modified.
func (L *LagStatistics) Merge(B *LagStatistics) {
	if len(B.bins) > len(L.bins) {
		L.bins = append(L.bins, make([]lagBin, len(B.bins)-len(L.bins))...)
	}
	for n, bin := range B.bins {
		L.bins[n].sum += bin.sum
		L.bins[n].count += bin.count
	}
	L.bondSum += B.bondSum
	L.bondCount += B.bondCount
}

// MaxLag returns the largest lag seen so far, or -1 if nothing has been
// folded yet.
func (L *LagStatistics) MaxLag() int {
	return len(L.bins) - 1
}

// MeanBondLength returns the mean of all the bond lengths folded so far.
func (L *LagStatistics) MeanBondLength() (float64, error) {
	if L.bondCount == 0 {
		return 0, newError(kindInsufficientData, InsufficientData+": no bonds accumulated", "LagStatistics.MeanBondLength")
	}
	return L.bondSum / float64(L.bondCount), nil
}

// CorrelationCurve is the finalized bond-vector orientational autocorrelation
// function: for each lag in Lags, C holds the mean cosine of the angle
// between bond vectors that many bonds apart, and Counts holds the number of
// pairs that went into that mean. Lags with no data at all are simply absent
// (zero correlation and "no data" are different things). The counts decay at
// large lags, where only the longest chains contribute; downstream consumers
// can weigh the tail accordingly.
type CorrelationCurve struct {
	Lags   []int
	C      []float64
	Counts []int
}

// Len returns the number of lags in the curve.
func (C *CorrelationCurve) Len() int {
	return len(C.Lags)
}

// Curve finalizes the running statistics into a CorrelationCurve. It is a
// pure read: the accumulator is left untouched and can keep folding frames
// afterwards. C(0) is 1 by construction (every unit vector is perfectly
// correlated with itself) and is pinned to exactly that, so it carries no
// floating point noise even in degenerate single-chain cases.
func (L *LagStatistics) Curve() (*CorrelationCurve, error) {
	if len(L.bins) == 0 {
		return nil, newError(kindInsufficientData, InsufficientData+": nothing accumulated", "LagStatistics.Curve")
	}
	ret := &CorrelationCurve{
		Lags:   make([]int, 0, len(L.bins)),
		C:      make([]float64, 0, len(L.bins)),
		Counts: make([]int, 0, len(L.bins)),
	}
	for n, bin := range L.bins {
		if bin.count == 0 {
			continue
		}
		c := bin.sum / float64(bin.count)
		if n == 0 {
			c = 1
		}
		ret.Lags = append(ret.Lags, n)
		ret.C = append(ret.C, c)
		ret.Counts = append(ret.Counts, bin.count)
	}
	return ret, nil
}
