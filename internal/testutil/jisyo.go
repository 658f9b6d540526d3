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

package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/japanese"
)

// Compression is the compression applied to a test jisyo file.
type Compression int

const (
	// None writes the jisyo file uncompressed.
	None Compression = iota

	// Gzip compresses the jisyo file with gzip.
	Gzip

	// DictZip compresses the jisyo file with dictzip.
	DictZip
)

// WriteJisyoOptions are options for WriteJisyo.
type WriteJisyoOptions struct {
	// Compression is the compression applied to the file.
	Compression Compression
}

// GetCompression returns the compression or None if o is nil.
func (o *WriteJisyoOptions) GetCompression() Compression {
	if o == nil {
		return None
	}
	return o.Compression
}

// MakeJisyo returns the EUC-JP encoded contents of a jisyo file with the
// given lines.
func MakeJisyo(t *testing.T, lines []string) []byte {
	t.Helper()

	var text string
	if len(lines) > 0 {
		text = strings.Join(lines, "\n") + "\n"
	}
	b, err := japanese.EUCJP.NewEncoder().String(text)
	if err != nil {
		t.Fatalf("encoding jisyo: %v", err)
	}
	return []byte(b)
}

// WriteJisyo writes a jisyo file with the given lines to path.
func WriteJisyo(t *testing.T, path string, lines []string, opts *WriteJisyoOptions) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	b := MakeJisyo(t, lines)

	switch opts.GetCompression() {
	case Gzip:
		z := gzip.NewWriter(f)
		if _, err := z.Write(b); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	case DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(b); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		if _, err := f.Write(b); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

// WriteFile writes raw bytes to path.
func WriteFile(t *testing.T, path string, b []byte) {
	t.Helper()

	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
}
