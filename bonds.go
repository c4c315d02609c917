/*
 * bonds.go, part of gopolymer
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

	v3 "github.com/rmera/gopolymer/v3"
)

// BondVectors obtains the unit bond vectors for one chain, i.e. the
// normalized differences between each pair of consecutive backbone
// coordinates. It returns a matrix with one unit vector per row (one row
// less than the chain) and a slice with the pre-normalization norm of each
// bond, in the same order. The chain needs at least 2 atoms.
// If two consecutive atoms coincide, the corresponding bond has no defined
// direction and a degenerate-bond error is returned; whether that means
// dropping the chain or giving up the whole analysis is for the caller to
// decide (see Options.SkipDegenerate).
// BondVectors does not modify the chain, and the returned matrix shares no
// data with it.
func BondVectors(chain *v3.Matrix) (*v3.Matrix, []float64, error) {
	if chain == nil {
		return nil, nil, newError(kindEmptyInput, EmptyInput+": nil chain", "BondVectors")
	}
	atoms := chain.NVecs()
	if atoms < 2 {
		return nil, nil, newError(kindEmptyInput, fmt.Sprintf("%s: a chain needs at least 2 atoms, got %d", EmptyInput, atoms), "BondVectors")
	}
	bonds := v3.Zeros(atoms - 1)
	norms := make([]float64, atoms-1)
	for i := 0; i < atoms-1; i++ {
		b := bonds.VecView(i)
		b.Sub(chain.VecView(i+1), chain.VecView(i))
		norm := b.Unit(b)
		if norm == 0 {
			return nil, nil, newError(kindDegenerateBond, fmt.Sprintf("%s between atoms %d and %d", DegenerateBond, i, i+1), "BondVectors")
		}
		norms[i] = norm
	}
	return bonds, norms, nil
}
