/*
 * doc.go, part of gopolymer
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

/*
Package polymer estimates the persistence length of linear polymer chains
from molecular-simulation coordinates.

For each chain of each frame, the ordered backbone coordinates are turned
into unit bond vectors, and the dot products between every pair of bond
vectors n bonds apart are pooled, over all chains and all frames, into a
running per-lag accumulator. The normalized result is the bond-vector
orientational autocorrelation function C(n): the mean cosine of the angle
between bond vectors separated by n bonds. For a worm-like chain it decays
as

	C(n) = exp(-n*lB/lP)

where lB is the mean bond length, measured directly from the data, and lP
the persistence length, obtained here by nonlinear least squares on the
exponential form (package fit entry point: Fit). Chains of different
lengths, and any number of frames, pool into the same statistics; only the
per-lag running sums are kept between frames, so trajectories of any length
can be processed in constant memory.

Coordinates come in through the ChainSource interface, which hides
trajectory reading and atom selection; the scf subpackage provides a
file-backed implementation and FrameSource an in-memory one. An Analysis
drives the whole thing:

	src, _ := scf.NewReader("traj.scf")
	anal, _ := polymer.NewAnalysis(src)
	if err := anal.ReadAll(); err != nil {
		//...
	}
	res, err := anal.Fit()

Two caveats the library cannot check for the caller: the atoms within each
chain must come in backbone connectivity order, and the i-th chain of every
frame must be the same molecule throughout the run.

All lengths are in whatever unit the input coordinates use.
*/
package polymer
