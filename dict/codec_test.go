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

package dict_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"

	"github.com/ianlewis/go-skkdict/dict"
)

var testQueries = []query{
	{[]rune("あいて"), dict.NoMarker},
	{[]rune("あいて"), 'l'},
	{[]rune("わた"), 's'},
	{[]rune("わた"), 'r'},
	{[]rune("わた"), dict.NoMarker},
	{[]rune("わずら"), 'w'},
	{[]rune("わずら"), 'u'},
	{[]rune("わす"), 'r'},
	{[]rune("わざわ"), 'i'},
	{[]rune("よわ"), 's'},
	{[]rune("よわ"), 'r'},
	{[]rune("わ"), dict.NoMarker},
	{nil, dict.NoMarker},
}

func lookupAll(d *dict.Dict) [][]string {
	var results [][]string
	for _, q := range testQueries {
		r, _ := d.Lookup(q.reading, q.marker)
		results = append(results, r)
	}
	return results
}

func TestEncode_roundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
	}{
		{
			name:  "empty",
			lines: nil,
		},
		{
			name:  "entries",
			lines: testLines,
		},
		{
			name:  "annotations and ascii",
			lines: []string{"かんじ /漢字;kanji/感じ/", "Cyrillic /А/Б/В/", "わたr /畔/"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			d, err := dict.Build(test.lines)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			var buf bytes.Buffer
			if err := dict.Encode(&buf, d); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			got, err := dict.Decode(&buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}

			if diff := cmp.Diff(lookupAll(d), lookupAll(got)); diff != "" {
				t.Fatalf("Lookup (-want, +got):\n%s", diff)
			}
			if want, got := d.Entries(), got.Entries(); want != got {
				t.Fatalf("Entries; want: %d, got: %d", want, got)
			}
		})
	}
}

func TestMarshal_deterministic(t *testing.T) {
	t.Parallel()

	var want bytes.Buffer
	d, err := dict.Build(testLines)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := dict.Marshal(&want, d); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	for range 5 {
		d, err := dict.Build(testLines)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		var got bytes.Buffer
		if err := dict.Marshal(&got, d); err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(want.Bytes(), got.Bytes()) {
			t.Fatalf("Marshal: output differs between builds")
		}
	}
}

func marshalTest(t *testing.T) []byte {
	t.Helper()

	d, err := dict.Build(testLines)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := dict.Marshal(&buf, d); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return buf.Bytes()
}

func TestUnmarshal_invalid(t *testing.T) {
	t.Parallel()

	valid := marshalTest(t)

	tests := []struct {
		name string
		data func() []byte
	}{
		{
			name: "empty",
			data: func() []byte { return nil },
		},
		{
			name: "bad magic",
			data: func() []byte {
				b := bytes.Clone(valid)
				b[0] = 'X'
				return b
			},
		},
		{
			name: "unsupported version",
			data: func() []byte {
				b := bytes.Clone(valid)
				b[5] = 2
				return b
			},
		},
		{
			name: "truncated",
			data: func() []byte {
				return bytes.Clone(valid[:len(valid)-3])
			},
		},
		{
			name: "trailing data",
			data: func() []byte {
				return append(bytes.Clone(valid), 0)
			},
		},
		{
			name: "header only",
			data: func() []byte {
				return bytes.Clone(valid[:6])
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			d, err := dict.Unmarshal(bytes.NewReader(test.data()))
			if !errors.Is(err, dict.ErrInvalidData) {
				t.Fatalf("Unmarshal: expected %v, got %v", dict.ErrInvalidData, err)
			}
			if d != nil {
				t.Fatalf("Unmarshal: expected nil Dict on error")
			}
		})
	}
}

func TestDecode_invalid(t *testing.T) {
	t.Parallel()

	valid := marshalTest(t)

	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{
			name: "not gzip",
			data: func(*testing.T) []byte { return valid },
		},
		{
			name: "corrupt payload",
			data: func(t *testing.T) []byte {
				t.Helper()
				b := bytes.Clone(valid)
				b[0] = 'X'
				var buf bytes.Buffer
				zw := gzip.NewWriter(&buf)
				if _, err := zw.Write(b); err != nil {
					t.Fatalf("Write: %v", err)
				}
				if err := zw.Close(); err != nil {
					t.Fatalf("Close: %v", err)
				}
				return buf.Bytes()
			},
		},
		{
			name: "truncated gzip",
			data: func(t *testing.T) []byte {
				t.Helper()
				d, err := dict.Build(testLines)
				if err != nil {
					t.Fatalf("Build: %v", err)
				}
				var buf bytes.Buffer
				if err := dict.Encode(&buf, d); err != nil {
					t.Fatalf("Encode: %v", err)
				}
				return buf.Bytes()[:buf.Len()/2]
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := dict.Decode(bytes.NewReader(test.data(t)))
			if !errors.Is(err, dict.ErrInvalidData) {
				t.Fatalf("Decode: expected %v, got %v", dict.ErrInvalidData, err)
			}
		})
	}
}
