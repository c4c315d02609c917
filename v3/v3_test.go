/*
 * v3_test.go, part of gopolymer
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

package v3

import (
	"fmt"
	"math"
	"testing"
)

func TestUnit(Te *testing.T) {
	row, err := NewMatrix([]float64{2, 2, 3})
	if err != nil {
		Te.Error(err)
	}
	fmt.Println("Original vector", row)
	norm := row.Unit(row)
	fmt.Println("Unitarized", row, "norm was", norm)
	want := math.Sqrt(4 + 4 + 9)
	if math.Abs(norm-want) > 1e-12 {
		Te.Errorf("wrong norm: got %v, want %v", norm, want)
	}
	if math.Abs(row.Norm(0)-1) > 1e-12 {
		Te.Errorf("unit vector norm is %v, not 1", row.Norm(0))
	}
}

func TestUnitZero(Te *testing.T) {
	zero := Zeros(1)
	dst := Zeros(1)
	norm := dst.Unit(zero)
	if norm != 0 {
		Te.Errorf("norm of the zero vector reported as %v", norm)
	}
}

func TestAngleAndDot(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 2, 0})
	if d := x.Dot(y); d != 0 {
		Te.Errorf("orthogonal vectors with dot product %v", d)
	}
	a := Angle(x, y)
	if math.Abs(a-math.Pi/2) > 1e-12 {
		Te.Errorf("angle between x and y axes: %v rad", a)
	}
}

func TestVecOps(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Error(err)
	}
	row, _ := NewMatrix([]float64{10, 20, 30})
	B := Zeros(2)
	B.AddVec(A, row)
	B.SubVec(B, row)
	for i := 0; i < A.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(B.At(i, j)-A.At(i, j)) > 1e-12 {
				Te.Errorf("add/sub roundtrip mismatch at %d,%d", i, j)
			}
		}
	}
	v := A.VecView(1)
	v.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("VecView does not share data with the original")
	}
}

func TestNewMatrixBadLength(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("expected an error for a slice of length 4")
	}
}
