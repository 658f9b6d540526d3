// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dict

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

// ErrInvalidData indicates that serialized dictionary data is corrupt or was
// written by an unsupported format version.
var ErrInvalidData = errors.New("invalid dictionary data")

const (
	serMagic   = "SKKD"
	serVersion = uint16(1)

	// maxStringLen is the maximum length of a serialized candidate.
	maxStringLen = 1 << 16

	// maxDepth is the maximum serialized trie depth.
	maxDepth = 1 << 12
)

// Encode writes the gzip compressed binary form of d to w.
func Encode(w io.Writer, d *Dict) error {
	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("creating gzip writer: %w", err)
	}
	if err := Marshal(zw, d); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("writing dictionary: %w", err)
	}
	return nil
}

// Decode reads a dictionary written by Encode.
func Decode(r io.Reader) (*Dict, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	defer zr.Close()
	return Unmarshal(zr)
}

// Marshal writes the uncompressed binary form of d to w.
//
// The format is a header of the magic "SKKD" and a big-endian uint16 format
// version followed by the root node. Each node is written as:
//  1. The number of candidate lists, then for each list in marker order: the
//     marker, the number of candidates and each candidate as a length
//     prefixed UTF-8 string.
//  2. The number of children, then for each child in rune order: the rune and
//     the child node.
//
// All integers after the header are unsigned varints.
func Marshal(w io.Writer, d *Dict) error {
	bw := bufio.NewWriter(w)
	e := encoder{w: bw}

	e.write([]byte(serMagic))
	var v [2]byte
	binary.BigEndian.PutUint16(v[:], serVersion)
	e.write(v[:])
	e.node(d.root)

	if e.err != nil {
		return fmt.Errorf("writing dictionary: %w", e.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing dictionary: %w", err)
	}
	return nil
}

// Unmarshal reads a dictionary written by Marshal. Any data following the
// dictionary is an error.
func Unmarshal(r io.Reader) (*Dict, error) {
	dec := decoder{r: bufio.NewReader(r)}

	var hdr [len(serMagic) + 2]byte
	if _, err := io.ReadFull(dec.r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrInvalidData, err)
	}
	if string(hdr[:len(serMagic)]) != serMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidData)
	}
	if v := binary.BigEndian.Uint16(hdr[len(serMagic):]); v != serVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidData, v)
	}

	d := New()
	if err := dec.node(d, d.root, 0); err != nil {
		return nil, err
	}
	if _, err := dec.r.ReadByte(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidData)
	}
	return d, nil
}

type encoder struct {
	w   *bufio.Writer
	buf [binary.MaxVarintLen64]byte
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) uvarint(x uint64) {
	n := binary.PutUvarint(e.buf[:], x)
	e.write(e.buf[:n])
}

func (e *encoder) node(n *node) {
	e.uvarint(uint64(len(n.candidates)))
	for _, m := range slices.Sorted(maps.Keys(n.candidates)) {
		cands := n.candidates[m]
		e.uvarint(uint64(m))
		e.uvarint(uint64(len(cands)))
		for _, c := range cands {
			e.uvarint(uint64(len(c)))
			e.write([]byte(c))
		}
	}

	e.uvarint(uint64(len(n.children)))
	for _, c := range slices.Sorted(maps.Keys(n.children)) {
		e.uvarint(uint64(c))
		e.node(n.children[c])
	}
}

type decoder struct {
	r *bufio.Reader
}

func (dec *decoder) uvarint() (uint64, error) {
	x, err := binary.ReadUvarint(dec.r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	return x, nil
}

// key reads a rune key. Keys must be strictly increasing after prev.
func (dec *decoder) key(prev rune, first bool) (rune, error) {
	x, err := dec.uvarint()
	if err != nil {
		return 0, err
	}
	if x > utf8.MaxRune || !utf8.ValidRune(rune(x)) {
		return 0, fmt.Errorf("%w: invalid rune %#x", ErrInvalidData, x)
	}
	c := rune(x)
	if !first && c <= prev {
		return 0, fmt.Errorf("%w: keys out of order", ErrInvalidData)
	}
	return c, nil
}

func (dec *decoder) str() (string, error) {
	l, err := dec.uvarint()
	if err != nil {
		return "", err
	}
	if l == 0 || l > maxStringLen {
		return "", fmt.Errorf("%w: invalid string length %d", ErrInvalidData, l)
	}
	b := make([]byte, l)
	if _, err := io.ReadFull(dec.r, b); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrInvalidData)
	}
	return string(b), nil
}

func (dec *decoder) node(d *Dict, n *node, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: trie too deep", ErrInvalidData)
	}

	numLists, err := dec.uvarint()
	if err != nil {
		return err
	}
	var prev rune
	for i := uint64(0); i < numLists; i++ {
		c, err := dec.key(prev, i == 0)
		if err != nil {
			return err
		}
		prev = c
		m := Marker(c)
		if m != NoMarker && !isASCIILetter(c) {
			return fmt.Errorf("%w: invalid marker %q", ErrInvalidData, c)
		}

		numCands, err := dec.uvarint()
		if err != nil {
			return err
		}
		if numCands == 0 {
			return fmt.Errorf("%w: empty candidate list", ErrInvalidData)
		}
		var cands []string
		for j := uint64(0); j < numCands; j++ {
			s, err := dec.str()
			if err != nil {
				return err
			}
			cands = append(cands, s)
		}

		if n.candidates == nil {
			n.candidates = map[Marker][]string{}
		}
		n.candidates[m] = cands
		d.entries++
	}

	numChildren, err := dec.uvarint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < numChildren; i++ {
		c, err := dec.key(prev, i == 0)
		if err != nil {
			return err
		}
		prev = c
		if err := dec.node(d, n.child(c), depth+1); err != nil {
			return err
		}
	}
	return nil
}
