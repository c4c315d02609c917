/*
 * interfaces.go, part of gopolymer
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

import v3 "github.com/rmera/gopolymer/v3"

// ChainSource is the interface for anything that can produce, frame by frame,
// the ordered backbone coordinates of the polymer chains under analysis.
// Topology/trajectory reading and atom selection live behind this interface;
// the analysis itself never deals with files.
//
// The source is responsible for the ordering of the atoms within each chain
// (backbone connectivity order); the analysis trusts it and does not re-sort.
// It is also the caller's responsibility that the i-th chain of every frame
// is the same polymer molecule throughout the run, as the pooled statistics
// are only physically meaningful under that assumption.
type ChainSource interface {

	//Is the source ready to be read?
	Readable() bool

	//Next returns the chains of the next frame, one coordinate matrix per
	//chain, each with the backbone atoms in connectivity order. On normal
	//exhaustion of the source it returns an error satisfying LastFrameError.
	Next() ([]*v3.Matrix, error)
}

//Errors

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// Each Decorate call appends the name of the caller (plus, optionally,
// extra information) to the trail, and returns the current trail.
type Error interface {
	Error() string
	Decorate(string) []string
}

// SourceError is the interface for errors produced by chain sources.
type SourceError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors
// (i.e. last frame) so they can be filtered in a typeswitch that looks for
// this interface.
type LastFrameError interface {
	SourceError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other SourceError's
}
