/*
 * errors.go, part of gopolymer
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

import "fmt"

//The messages used for the errors of the package.
const (
	DegenerateBond   = "Degenerate (zero-length) bond"
	InsufficientData = "Not enough usable points"
	FitDiverged      = "The persistence-length fit did not converge"
	EmptyInput       = "Empty frame, chain set or chain"
	WrongState       = "Call not valid in the current state of the analysis"
)

type errKind int

const (
	kindDegenerateBond errKind = iota + 1
	kindInsufficientData
	kindFitDiverged
	kindEmptyInput
	kindState
)

//CError (for "concrete error") implements the Error interface of the package.
//All errors returned by gopolymer functions are of this type, so they can be
//told apart with the Is* predicates below without string matching.
type CError struct {
	message string
	kind    errKind
	deco    []string
}

func (err *CError) Error() string {
	return fmt.Sprintf("gopolymer error: %s", err.message)
}

//Decorate adds new information to the error, in place, and returns the
//current decoration trail.
func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func newError(kind errKind, message, caller string) *CError {
	return &CError{message: message, kind: kind, deco: []string{caller}}
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

func kindOf(err error) errKind {
	e, ok := err.(*CError)
	if !ok {
		return 0
	}
	return e.kind
}

//IsDegenerateBond returns whether err reports a zero-length bond.
func IsDegenerateBond(err error) bool { return kindOf(err) == kindDegenerateBond }

//IsInsufficientData returns whether err reports too few usable points for the fit.
func IsInsufficientData(err error) bool { return kindOf(err) == kindInsufficientData }

//IsFitDiverged returns whether err reports a non-converged fit.
func IsFitDiverged(err error) bool { return kindOf(err) == kindFitDiverged }

//IsEmptyInput returns whether err reports an empty frame, chain set or chain.
func IsEmptyInput(err error) bool { return kindOf(err) == kindEmptyInput }

//IsWrongState returns whether err reports a call that is not valid in the
//current state of the analysis.
func IsWrongState(err error) bool { return kindOf(err) == kindState }
