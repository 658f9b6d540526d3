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
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

func TestScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		options  *ScannerOptions
		expected []string
	}{
		{
			name:     "empty",
			text:     "",
			expected: nil,
		},
		{
			name: "euc-jp",
			text: ";; okuri-ari entries.\nわたr /渡/亘/\nあいて /相手/\n",
			expected: []string{
				";; okuri-ari entries.",
				"わたr /渡/亘/",
				"あいて /相手/",
			},
		},
		{
			name: "crlf without trailing newline",
			text: "わたr /渡/\r\nあいて /相手/",
			expected: []string{
				"わたr /渡/",
				"あいて /相手/",
			},
		},
		{
			name:    "utf-8",
			text:    "かんじ /漢字/\n",
			options: &ScannerOptions{Encoding: unicode.UTF8},
			expected: []string{
				"かんじ /漢字/",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			text := test.text
			if test.options == nil {
				var err error
				text, err = japanese.EUCJP.NewEncoder().String(test.text)
				if err != nil {
					t.Fatalf("encoding: %v", err)
				}
			}

			s := NewScanner(io.NopCloser(strings.NewReader(text)), test.options)
			defer s.Close()

			var lines []string
			for s.Scan() {
				lines = append(lines, s.Line())
				if want, got := len(lines), s.LineNo(); want != got {
					t.Fatalf("LineNo; want: %d, got: %d", want, got)
				}
			}
			if err := s.Err(); err != nil {
				t.Fatalf("Err: %v", err)
			}
			if diff := cmp.Diff(test.expected, lines); diff != "" {
				t.Fatalf("lines (-want, +got):\n%s", diff)
			}
		})
	}
}
