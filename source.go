/*
 * source.go, part of gopolymer
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

// FrameSource is a ChainSource over frames already in memory; mostly useful
// for small systems, tests, and as the bridge for callers that do their own
// trajectory reading. The given chains are used as-is, not copied.
type FrameSource struct {
	frames  [][]*v3.Matrix
	current int
}

// NewFrameSource returns a source that will deliver the given frames, in
// order, one per Next call.
func NewFrameSource(frames ...[]*v3.Matrix) *FrameSource {
	return &FrameSource{frames: frames}
}

// Readable returns whether there are frames left to deliver.
func (F *FrameSource) Readable() bool {
	return F.current < len(F.frames)
}

// Next returns the chains of the next frame, or a LastFrameError when all
// frames have been delivered.
func (F *FrameSource) Next() ([]*v3.Matrix, error) {
	if F.current >= len(F.frames) {
		return nil, newlastFrameError("NewFrameSource")
	}
	ret := F.frames[F.current]
	F.current++
	return ret, nil
}

//lastFrameError implements LastFrameError for in-memory sources.
type lastFrameError struct {
	deco []string
}

//NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return "" }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "memory" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(caller string) *lastFrameError {
	return &lastFrameError{deco: []string{caller}}
}
