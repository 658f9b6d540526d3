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

// Package agent builds SKK dictionaries in the background and serves
// paginated lookups against the most recently built one.
package agent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ianlewis/go-skkdict"
	"github.com/ianlewis/go-skkdict/dict"
)

// ErrPathMalformed indicates that a dictionary path is not usable.
var ErrPathMalformed = errors.New("malformed path")

// BuildResult is the result of starting a build.
type BuildResult int

const (
	// Success indicates that the build was started.
	Success BuildResult = iota

	// FileNotFound indicates that the path does not name a regular file.
	FileNotFound

	// PathMalformed indicates that the path could not be interpreted.
	PathMalformed
)

// String implements [fmt.Stringer.String].
func (r BuildResult) String() string {
	switch r {
	case Success:
		return "Success"
	case FileNotFound:
		return "FileNotFound"
	case PathMalformed:
		return "PathMalformed"
	default:
		return fmt.Sprintf("BuildResult(%d)", int(r))
	}
}

// Options are options for an Agent.
type Options struct {
	// Logger receives build results.
	Logger *zap.Logger

	// Load are the options passed to [skkdict.Load].
	Load *skkdict.Options
}

// Agent owns the current dictionary and the results of the last lookup.
type Agent struct {
	handle   skkdict.Handle
	loadOpts skkdict.Options
	log      *zap.Logger

	group singleflight.Group
	wg    sync.WaitGroup

	mu      sync.Mutex
	results []string
	err     error
}

// New returns a new Agent with no dictionary installed.
func New(opts *Options) *Agent {
	a := &Agent{
		log: zap.NewNop(),
	}
	if opts != nil {
		if opts.Logger != nil {
			a.log = opts.Logger
		}
		if opts.Load != nil {
			a.loadOpts = *opts.Load
		}
	}
	if a.loadOpts.Logger == nil {
		a.loadOpts.Logger = a.log
	}
	return a
}

// Handle returns the agent's dictionary handle.
func (a *Agent) Handle() *skkdict.Handle {
	return &a.handle
}

// Build starts loading the dictionary at path in the background and returns
// immediately. A leading "~" in path is expanded to the home directory. The
// jisyo file itself may be missing when its cache or a compressed copy
// exists. When
// the load succeeds the new dictionary replaces the current one; on failure
// the current dictionary is kept. Builds of the same path that overlap are
// run once.
func (a *Agent) Build(path string) BuildResult {
	p, err := ExpandPath(path)
	if err != nil {
		a.log.Warn("rejecting dictionary path", zap.String("path", path), zap.Error(err))
		return PathMalformed
	}

	if !loadable(p) {
		return FileNotFound
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		//nolint:errcheck // errors are logged by build.
		a.group.Do(p, func() (any, error) {
			return nil, a.build(p)
		})
	}()
	return Success
}

func (a *Agent) build(path string) error {
	d, err := skkdict.Load(path, &a.loadOpts)

	a.mu.Lock()
	a.err = err
	a.mu.Unlock()

	if err != nil {
		a.log.Error("building dictionary", zap.String("path", path), zap.Error(err))
		return err
	}
	a.handle.Swap(d)
	a.log.Info("installed dictionary", zap.String("path", path))
	return nil
}

// loadable reports whether path or one of the sibling files read by
// [skkdict.Load] is a regular file.
func loadable(path string) bool {
	paths := append([]string{path, skkdict.CachePath(path)}, skkdict.CompressedPaths(path)...)
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return true
		}
	}
	return false
}

// Wait blocks until all started builds have finished.
func (a *Agent) Wait() {
	a.wg.Wait()
}

// Err returns the error from the most recently finished build, or nil if it
// succeeded.
func (a *Agent) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Lookup looks up the reading in the current dictionary, stores the
// candidates as the current results and returns their number.
func (a *Agent) Lookup(reading []rune, m dict.Marker) int {
	cands, _ := a.handle.Lookup(reading, m)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = cands
	return len(cands)
}

// Results returns at most n of the current results starting at offset.
func (a *Agent) Results(offset, n int) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if offset < 0 || n <= 0 || offset >= len(a.results) {
		return nil
	}
	end := min(offset+n, len(a.results))
	return slices.Clone(a.results[offset:end])
}

// ExpandPath expands a leading "~" to the current user's home directory and
// cleans the path.
func ExpandPath(path string) (string, error) {
	if path == "" || strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("%w: %q", ErrPathMalformed, path)
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrPathMalformed, err)
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Clean(path), nil
}
