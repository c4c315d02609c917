/*
 * synth.go, part of gopolymer
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

//Generators of synthetic chains with known statistics, for validating an
//analysis pipeline (and for this library's own tests).

package polymer

import (
	"math"
	"math/rand"

	v3 "github.com/rmera/gopolymer/v3"
)

// WormlikeChain builds a chain of bonds+1 atoms with bond length lb whose
// bond-vector autocorrelation decays, on average, as exp(-n*lb/lp): a
// freely-rotating chain where each bond keeps an angle of constant cosine
// exp(-lb/lp) with the previous one and a uniformly random azimuth around
// it. Useful as ground truth: analyzing many such chains must recover lp.
func WormlikeChain(bonds int, lb, lp float64, rnd *rand.Rand) *v3.Matrix {
	cost := math.Exp(-lb / lp)
	sint := math.Sqrt(1 - cost*cost)
	chain := v3.Zeros(bonds + 1)
	dir := randomUnit(rnd)
	for i := 0; i < bonds; i++ {
		prev := chain.VecView(i)
		next := chain.VecView(i + 1)
		for j := 0; j < 3; j++ {
			next.Set(0, j, prev.At(0, j)+lb*dir[j])
		}
		dir = turn(dir, cost, sint, 2*math.Pi*rnd.Float64())
	}
	return chain
}

// RandomChain builds a chain of bonds+1 atoms with bond length lb and
// completely uncorrelated bond directions (a freely-jointed chain), so its
// C(n) vanishes for every n>0, within noise.
func RandomChain(bonds int, lb float64, rnd *rand.Rand) *v3.Matrix {
	chain := v3.Zeros(bonds + 1)
	for i := 0; i < bonds; i++ {
		prev := chain.VecView(i)
		next := chain.VecView(i + 1)
		dir := randomUnit(rnd)
		for j := 0; j < 3; j++ {
			next.Set(0, j, prev.At(0, j)+lb*dir[j])
		}
	}
	return chain
}

// StraightChain builds a perfectly straight chain of bonds+1 atoms with bond
// length lb along the x axis. Its C(n) is exactly 1 at every lag.
func StraightChain(bonds int, lb float64) *v3.Matrix {
	chain := v3.Zeros(bonds + 1)
	for i := 0; i <= bonds; i++ {
		chain.Set(i, 0, float64(i)*lb)
	}
	return chain
}

//randomUnit returns a unit vector uniformly distributed on the sphere
//(Marsaglia-style: uniform z, uniform azimuth).
func randomUnit(rnd *rand.Rand) [3]float64 {
	z := 2*rnd.Float64() - 1
	phi := 2 * math.Pi * rnd.Float64()
	s := math.Sqrt(1 - z*z)
	return [3]float64{s * math.Cos(phi), s * math.Sin(phi), z}
}

//turn returns a unit vector at constant polar angle (given by its cosine and
//sine) from dir, with azimuth phi around it.
func turn(dir [3]float64, cost, sint, phi float64) [3]float64 {
	//an orthonormal basis {e1, e2} of the plane normal to dir
	var e1 [3]float64
	if math.Abs(dir[0]) < 0.9 {
		e1 = cross([3]float64{1, 0, 0}, dir)
	} else {
		e1 = cross([3]float64{0, 1, 0}, dir)
	}
	e1 = normalize(e1)
	e2 := cross(dir, e1)
	var ret [3]float64
	for j := 0; j < 3; j++ {
		ret[j] = cost*dir[j] + sint*(math.Cos(phi)*e1[j]+math.Sin(phi)*e2[j])
	}
	return normalize(ret) //just cleans up the floating point dust
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(a [3]float64) [3]float64 {
	n := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	return [3]float64{a[0] / n, a[1] / n, a[2] / n}
}
