/*
 * scf.go, part of gopolymer
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
Package scf reads and writes the "simple chain format", a compressed
plain-text format for per-frame polymer chain coordinates. An scf file is a
compressed stream of lines: an optional key=value header closed by a "**"
line, then, for each frame, one "x y z" line per atom, a "-" line closing
each chain and a "*" line closing the frame. Chains may differ in length
between each other and, in principle, between frames (though analyses that
pool statistics across frames expect them not to).

Compression is zstd, or gzip for file names ending in 'z' other than "...zst"
(e.g. traj.scf.gz). The scf Reader implements polymer.ChainSource, so it can
feed an analysis directly.
*/
package scf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/gopolymer/v3"
)

const (
	chainMark = "-"
	frameMark = "*"
	headerEnd = "**"
)

//Write!

// Writer writes chain coordinates to an scf file, one frame per WFrame call.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	filename  string
	writeable bool
}

// NewWriter creates the file name and writes the given header to it (nil is
// fine for no header). The compression is chosen from the file name as
// described in the package documentation.
func NewWriter(name string, header map[string]string) (*Writer, error) {
	W := new(Writer)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	if gzipName(name) {
		W.h = gzip.NewWriter(W.f)
	} else {
		W.h, err = zstd.NewWriter(W.f)
		if err != nil {
			W.f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
		}
	}
	W.filename = name
	W.writeable = true
	for k, v := range header {
		fmt.Fprintf(W.h, "%s=%v\n", k, v)
	}
	fmt.Fprintln(W.h, headerEnd)
	return W, nil
}

// WFrame writes one frame: every chain given, in order, each closed by a
// chain mark, and a final frame mark. Coordinates are written with enough
// digits to round-trip exactly.
func (W *Writer) WFrame(chains []*v3.Matrix) error {
	if !W.writeable {
		return Error{NotWriteable, W.filename, []string{"WFrame"}, true}
	}
	if len(chains) == 0 {
		return Error{NoChains, W.filename, []string{"WFrame"}, true}
	}
	for _, chain := range chains {
		if chain == nil {
			return Error{NoChains + " (nil chain)", W.filename, []string{"WFrame"}, true}
		}
		for i := 0; i < chain.NVecs(); i++ {
			fmt.Fprintf(W.h, "%s %s %s\n",
				strconv.FormatFloat(chain.At(i, 0), 'g', -1, 64),
				strconv.FormatFloat(chain.At(i, 1), 'g', -1, 64),
				strconv.FormatFloat(chain.At(i, 2), 'g', -1, 64))
		}
		fmt.Fprintln(W.h, chainMark)
	}
	fmt.Fprintln(W.h, frameMark)
	return nil
}

// Close flushes and closes the file. The Writer can not be used after this
// call.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

//Read!

// Reader reads frames of chain coordinates from an scf file. It implements
// polymer.ChainSource.
type Reader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	filename string
	readable bool
}

//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

// NewReader opens the scf file name and consumes its header, which is
// returned as a map (empty if the file has none).
func NewReader(name string) (*Reader, map[string]string, error) {
	R := new(Reader)
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewReader"}, true}
	}
	if gzipName(name) {
		R.z, err = gzip.NewReader(bufio.NewReader(R.f))
	} else {
		var d *zstd.Decoder
		d, err = zstd.NewReader(bufio.NewReader(R.f))
		if err == nil {
			R.z = zstdql{d.Close, d}
		}
	}
	if err != nil {
		R.f.Close()
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewReader"}, true}
	}
	R.h = bufio.NewReader(R.z)
	header := make(map[string]string)
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			R.Close()
			return nil, nil, Error{WrongFormat + ": missing header terminator: " + err.Error(), name, []string{"NewReader"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if str == headerEnd {
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			R.Close()
			return nil, nil, Error{WrongFormat + ": malformed header line: " + str, name, []string{"NewReader"}, true}
		}
		header[kv[0]] = kv[1]
	}
	R.readable = true
	return R, header, nil
}

// Readable returns true if it is possible to call Next on the Reader.
func (R *Reader) Readable() bool {
	return R.readable
}

// Next returns the chains of the next frame. When the trajectory ends
// (cleanly, at a frame boundary) it closes the file and returns an error
// satisfying polymer.LastFrameError; anything else wrong with the file gets
// a regular, critical error.
func (R *Reader) Next() ([]*v3.Matrix, error) {
	if !R.readable {
		return nil, Error{NotReadable, R.filename, []string{"Next"}, true}
	}
	var chains []*v3.Matrix
	var coords []float64
	firstline := true
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			if err == io.EOF && firstline && str == "" {
				//nothing bad happened, the trajectory just ended.
				R.Close()
				return nil, newlastFrameError(R.filename, "Next")
			}
			R.Close()
			return nil, Error{WrongFormat + ": frame cut short: " + err.Error(), R.filename, []string{"Next"}, true}
		}
		firstline = false
		str = strings.TrimSpace(str)
		switch str {
		case frameMark:
			if len(coords) != 0 {
				R.Close()
				return nil, Error{WrongFormat + ": frame mark inside a chain", R.filename, []string{"Next"}, true}
			}
			return chains, nil
		case chainMark:
			chain, err := v3.NewMatrix(coords)
			if err != nil || len(coords) == 0 {
				R.Close()
				return nil, Error{WrongFormat + ": empty or ill-formed chain", R.filename, []string{"Next"}, true}
			}
			chains = append(chains, chain)
			coords = nil
		default:
			fields := strings.Fields(str)
			if len(fields) != 3 {
				R.Close()
				return nil, Error{fmt.Sprintf("%s: expected 3 coordinates, got %d in line %q", WrongFormat, len(fields), str), R.filename, []string{"Next"}, true}
			}
			for _, v := range fields {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					R.Close()
					return nil, Error{WrongFormat + ": can't parse coordinate: " + err.Error(), R.filename, []string{"Next"}, true}
				}
				coords = append(coords, f)
			}
		}
	}
}

// Close closes the Reader. It can not be used after this call.
func (R *Reader) Close() {
	if R == nil || !R.readable && R.f == nil {
		return
	}
	if R.z != nil {
		R.z.Close()
	}
	if R.f != nil {
		R.f.Close()
	}
	R.readable = false
}

func gzipName(name string) bool {
	l := strings.ToLower(name)
	return strings.HasSuffix(l, "z") && !strings.HasSuffix(l, "zst")
}
