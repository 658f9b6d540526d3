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
	"sync/atomic"

	"github.com/ianlewis/go-skkdict/dict"
)

// Handle holds the current dictionary. Installing a new dictionary is an
// atomic swap; lookups already running keep using the dictionary they
// started with. The zero value is an empty Handle.
type Handle struct {
	d atomic.Pointer[dict.Dict]
}

// NewHandle returns a Handle holding d.
func NewHandle(d *dict.Dict) *Handle {
	h := &Handle{}
	h.d.Store(d)
	return h
}

// Load returns the current dictionary or nil if none is installed.
func (h *Handle) Load() *dict.Dict {
	return h.d.Load()
}

// Swap installs d and returns the previous dictionary.
func (h *Handle) Swap(d *dict.Dict) *dict.Dict {
	return h.d.Swap(d)
}

// Lookup looks up the reading in the current dictionary. It reports not found
// if no dictionary is installed.
func (h *Handle) Lookup(reading []rune, m dict.Marker) ([]string, bool) {
	d := h.d.Load()
	if d == nil {
		return nil, false
	}
	return d.Lookup(reading, m)
}
