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

package jisyo

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrMalformedEntry indicates that a line could not be parsed into an entry.
var ErrMalformedEntry = errors.New("malformed entry")

const (
	commentPrefix  = ";;"
	candidateDelim = "/"
	annotationSep  = ";"
)

// EntryError is returned for a line that is not a valid entry. It wraps
// ErrMalformedEntry.
type EntryError struct {
	// Line is the offending line.
	Line string

	// LineNo is the 1-based line number, or zero if unknown.
	LineNo int
}

// Error implements [error.Error].
func (e *EntryError) Error() string {
	if e.LineNo > 0 {
		return fmt.Sprintf("line %d: %v: %q", e.LineNo, ErrMalformedEntry, e.Line)
	}
	return fmt.Sprintf("%v: %q", ErrMalformedEntry, e.Line)
}

// Unwrap returns ErrMalformedEntry.
func (e *EntryError) Unwrap() error {
	return ErrMalformedEntry
}

// Entry is a single parsed dictionary line.
type Entry struct {
	// Reading is the entry's reading, one rune per character, including any
	// trailing inflection marker.
	Reading []rune

	// Candidates are the conversion candidates in file order.
	Candidates []string
}

// Parse parses a single decoded line. Comment and blank lines return a nil
// Entry and a nil error. Lines that are neither return an *EntryError.
func Parse(line string) (*Entry, error) {
	if strings.HasPrefix(line, commentPrefix) {
		return nil, nil
	}
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}

	i := strings.IndexFunc(line, unicode.IsSpace)
	if i <= 0 {
		return nil, &EntryError{Line: line}
	}
	key := line[:i]
	cands := strings.TrimFunc(line[i:], unicode.IsSpace)

	if len(cands) < 2 ||
		!strings.HasPrefix(cands, candidateDelim) ||
		!strings.HasSuffix(cands, candidateDelim) {
		return nil, &EntryError{Line: line}
	}

	e := &Entry{
		Reading: []rune(key),
	}
	for _, field := range strings.Split(cands, candidateDelim) {
		// Drop the annotation, if any.
		if j := strings.Index(field, annotationSep); j >= 0 {
			field = field[:j]
		}
		if field == "" {
			continue
		}
		if strings.TrimSpace(field) == "" {
			return nil, &EntryError{Line: line}
		}
		e.Candidates = append(e.Candidates, field)
	}

	if len(e.Reading) == 0 || len(e.Candidates) == 0 {
		return nil, &EntryError{Line: line}
	}
	return e, nil
}
