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

package skkdict

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"

	"github.com/ianlewis/go-skkdict/dict"
	"github.com/ianlewis/go-skkdict/jisyo"
)

// ErrNotFound indicates that neither the dictionary nor any of its sibling
// files exist.
var ErrNotFound = errors.New("dictionary not found")

const cacheExt = ".ser.gz"

// cacheMode is the permission of written caches. CreateTemp creates files
// readable only by the owner.
const cacheMode fs.FileMode = 0o644

// compressedExts are the compressed source extensions in order of
// precedence. Dictzip files are gzip compatible.
var compressedExts = []string{".gz", ".dz"}

// Source is the kind of file a dictionary was loaded from.
type Source string

const (
	// SourceCache is a serialized dictionary cache.
	SourceCache Source = "cache"

	// SourceCompressed is a compressed jisyo file.
	SourceCompressed Source = "compressed"

	// SourceRaw is an uncompressed jisyo file.
	SourceRaw Source = "raw"
)

// Options are options for loading a dictionary.
type Options struct {
	// Logger receives load progress and cache warnings.
	Logger *zap.Logger

	// Encoding is the text encoding of jisyo files.
	Encoding encoding.Encoding

	// NoCache disables writing the serialized cache after parsing a jisyo
	// file. An existing cache is still read.
	NoCache bool
}

// DefaultOptions is the default options for Load.
var DefaultOptions = &Options{
	Encoding: japanese.EUCJP,
}

func (o *Options) logger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *Options) encoding() encoding.Encoding {
	if o == nil || o.Encoding == nil {
		return DefaultOptions.Encoding
	}
	return o.Encoding
}

// CachePath returns the path of the serialized cache for the jisyo file at
// path.
func CachePath(path string) string {
	return path + cacheExt
}

// CompressedPaths returns the paths of the compressed jisyo files for path in
// order of precedence.
func CompressedPaths(path string) []string {
	paths := make([]string, 0, len(compressedExts))
	for _, ext := range compressedExts {
		paths = append(paths, path+ext)
	}
	return paths
}

// Load loads the dictionary for the jisyo file at path. Files are tried in
// order:
//  1. The serialized cache (path + ".ser.gz").
//  2. A compressed jisyo file (path + ".gz" or path + ".dz").
//  3. The jisyo file itself.
//
// After parsing a jisyo file the cache is written so later loads skip
// parsing. The cache is never checked for freshness; remove it to pick up
// changes to the jisyo file. An unreadable cache is ignored in favor of the
// jisyo file.
func Load(path string, opts *Options) (*dict.Dict, error) {
	log := opts.logger()
	start := time.Now()

	cachePath := CachePath(path)
	d, cacheErr := loadCache(cachePath)
	if cacheErr == nil {
		logLoaded(log, cachePath, SourceCache, d, start)
		return d, nil
	}
	if errors.Is(cacheErr, fs.ErrNotExist) {
		cacheErr = nil
	} else {
		log.Warn("ignoring dictionary cache",
			zap.String("path", cachePath),
			zap.Error(cacheErr),
		)
	}

	d, src, srcPath, err := loadJisyo(path, opts.encoding())
	if err != nil {
		if errors.Is(err, ErrNotFound) && cacheErr != nil {
			return nil, cacheErr
		}
		return nil, err
	}
	logLoaded(log, srcPath, src, d, start)

	if opts == nil || !opts.NoCache {
		if err := writeCache(cachePath, d); err != nil {
			log.Warn("writing dictionary cache",
				zap.String("path", cachePath),
				zap.Error(err),
			)
		} else {
			log.Debug("wrote dictionary cache", zap.String("path", cachePath))
		}
	}

	return d, nil
}

func logLoaded(log *zap.Logger, path string, src Source, d *dict.Dict, start time.Time) {
	log.Info("loaded dictionary",
		zap.String("path", path),
		zap.String("source", string(src)),
		zap.Int("entries", d.Entries()),
		zap.Duration("duration", time.Since(start)),
	)
}

func loadCache(path string) (*dict.Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	defer f.Close()

	d, err := dict.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return d, nil
}

// loadJisyo parses the first jisyo file found for path.
func loadJisyo(path string, enc encoding.Encoding) (*dict.Dict, Source, string, error) {
	for _, p := range CompressedPaths(path) {
		d, err := parseFile(p, true, enc)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return d, SourceCompressed, p, err
	}

	d, err := parseFile(path, false, enc)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", "", fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	return d, SourceRaw, path, err
}

func parseFile(path string, compressed bool, enc encoding.Encoding) (*dict.Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening jisyo: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	s := jisyo.NewScanner(io.NopCloser(r), &jisyo.ScannerOptions{
		Encoding: enc,
	})
	d, err := dict.BuildFrom(s)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return d, nil
}

// writeCache writes the serialized cache via a temporary file so that
// readers never observe a partial cache.
func writeCache(path string, d *dict.Dict) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating cache: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := dict.Encode(tmp, d); err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := tmp.Chmod(cacheMode); err != nil {
		return fmt.Errorf("setting cache mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming cache: %w", err)
	}
	return nil
}
