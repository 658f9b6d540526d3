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

// Package dict implements an in-memory SKK dictionary.
//
// The dictionary is a trie keyed by reading characters. Each node may hold
// candidate lists keyed by an inflection (okurigana) marker, the trailing ASCII
// letter of an okuri-ari reading such as "わたr".
package dict

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ianlewis/go-skkdict/jisyo"
)

// Marker is an inflection marker. It is the trailing ASCII letter of a
// reading. NoMarker is the base form.
type Marker rune

// NoMarker marks the base (okuri-nasi) form.
const NoMarker Marker = 0

// String returns the marker letter, or the empty string for NoMarker.
func (m Marker) String() string {
	if m == NoMarker {
		return ""
	}
	return string(rune(m))
}

// node is a trie node. A node is owned by its parent.
type node struct {
	children   map[rune]*node
	candidates map[Marker][]string
}

// child returns the child for c, creating it if needed.
func (n *node) child(c rune) *node {
	if n.children == nil {
		n.children = map[rune]*node{}
	}
	ch, ok := n.children[c]
	if !ok {
		ch = &node{}
		n.children[c] = ch
	}
	return ch
}

// Dict is an SKK dictionary. A Dict is built once and is safe for concurrent
// lookups after the build returns. Insert must not be called on a Dict that
// is shared with readers.
type Dict struct {
	root    *node
	entries int
}

// New returns a new empty Dict.
func New() *Dict {
	return &Dict{root: &node{}}
}

// Build builds a new Dict from the given lines. The first malformed line
// aborts the build and no Dict is returned.
func Build(lines []string) (*Dict, error) {
	d := New()
	for i, line := range lines {
		if err := d.Insert(line); err != nil {
			return nil, withLineNo(err, i+1)
		}
	}
	return d, nil
}

// BuildFrom builds a new Dict from the lines read by s. The scanner is not
// closed.
func BuildFrom(s *jisyo.Scanner) (*Dict, error) {
	d := New()
	for s.Scan() {
		if err := d.Insert(s.Line()); err != nil {
			return nil, withLineNo(err, s.LineNo())
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading jisyo: %w", err)
	}
	return d, nil
}

// Insert parses line and adds its candidates to the dictionary. Comment and
// blank lines are ignored. Candidates for a reading that is already present
// are appended to the existing list.
func (d *Dict) Insert(line string) error {
	e, err := jisyo.Parse(line)
	if err != nil {
		//nolint:wrapcheck // *jisyo.EntryError is returned as is.
		return err
	}
	if e == nil {
		return nil
	}

	path, m := splitMarker(e.Reading)
	if len(path) == 0 {
		// A bare marker can never be looked up.
		return &jisyo.EntryError{Line: line}
	}

	n := d.root
	for _, c := range path {
		n = n.child(c)
	}
	if n.candidates == nil {
		n.candidates = map[Marker][]string{}
	}
	cands, ok := n.candidates[m]
	if !ok {
		d.entries++
	}
	n.candidates[m] = append(cands, e.Candidates...)
	return nil
}

// Lookup returns the candidates for the reading and marker. The reading must
// not include the marker. Only exact matches are returned. The returned slice
// is shared with the Dict and must not be modified.
func (d *Dict) Lookup(reading []rune, m Marker) ([]string, bool) {
	if len(reading) == 0 {
		return nil, false
	}
	n := d.root
	for _, c := range reading {
		n = n.children[c]
		if n == nil {
			return nil, false
		}
	}
	cands, ok := n.candidates[m]
	if !ok {
		return nil, false
	}
	return slices.Clip(cands), true
}

// LookupKey looks up a reading as it appears in a jisyo file, e.g. "わたr".
// A trailing ASCII letter is used as the marker.
func (d *Dict) LookupKey(key string) ([]string, bool) {
	return d.Lookup(SplitKey(key))
}

// SplitKey splits a jisyo reading such as "わたr" into the reading and its
// inflection marker.
func SplitKey(key string) ([]rune, Marker) {
	return splitMarker([]rune(key))
}

// Entries returns the number of candidate lists in the dictionary.
func (d *Dict) Entries() int {
	return d.entries
}

// splitMarker splits a trailing ASCII letter off the reading.
func splitMarker(reading []rune) ([]rune, Marker) {
	if len(reading) == 0 {
		return reading, NoMarker
	}
	last := reading[len(reading)-1]
	if isASCIILetter(last) {
		return reading[:len(reading)-1], Marker(last)
	}
	return reading, NoMarker
}

func isASCIILetter(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// withLineNo records the line number on entry errors.
func withLineNo(err error, lineNo int) error {
	var entryErr *jisyo.EntryError
	if errors.As(err, &entryErr) && entryErr.LineNo == 0 {
		entryErr.LineNo = lineNo
	}
	return err
}
