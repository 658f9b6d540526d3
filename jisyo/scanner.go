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
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// maxLineSize is the longest line the Scanner accepts. Large jisyo files
// contain lines with hundreds of candidates.
const maxLineSize = 1 << 20

// ScannerOptions are options for scanning a jisyo file.
type ScannerOptions struct {
	// Encoding is the text encoding of the file. Lines are decoded to UTF-8
	// before they are returned.
	Encoding encoding.Encoding
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{
	Encoding: japanese.EUCJP,
}

// Scanner scans a jisyo file line by line.
type Scanner struct {
	r      io.ReadCloser
	s      *bufio.Scanner
	lineNo int
}

// NewScanner returns a new Scanner that reads decoded lines from r. The
// Scanner assumes ownership of the reader and should be closed with the Close
// method.
func NewScanner(r io.ReadCloser, options *ScannerOptions) *Scanner {
	if options == nil {
		options = DefaultScannerOptions
	}
	enc := options.Encoding
	if enc == nil {
		enc = DefaultScannerOptions.Encoding
	}

	s := &Scanner{
		r: r,
		s: bufio.NewScanner(transform.NewReader(r, enc.NewDecoder())),
	}
	s.s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}

// Scan advances to the next line. It returns false if the scan stops either
// by reaching the end of the file or an error.
func (s *Scanner) Scan() bool {
	if s.s.Scan() {
		s.lineNo++
		return true
	}
	return false
}

// Line returns the most recent line with its terminator stripped.
func (s *Scanner) Line() string {
	return strings.TrimSuffix(s.s.Text(), "\r")
}

// LineNo returns the 1-based number of the most recent line.
func (s *Scanner) LineNo() int {
	return s.lineNo
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Close closes the underlying reader.
func (s *Scanner) Close() error {
	err := s.r.Close()
	if err != nil {
		return fmt.Errorf("closing jisyo file: %w", err)
	}
	return nil
}
