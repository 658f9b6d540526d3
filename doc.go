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

// Package skkdict implements loading SKK dictionaries in pure Go.
//
// An SKK dictionary (jisyo) maps readings to conversion candidates and is
// distributed as a large EUC-JP encoded text file. Parsing such a file takes
// much longer than looking up a word, so Load caches the parsed dictionary
// next to the jisyo file:
//  1. An optional serialized cache (SKK-JISYO.L.ser.gz) holding the built
//     dictionary in a compact binary form.
//  2. An optional compressed jisyo file (SKK-JISYO.L.gz or SKK-JISYO.L.dz).
//  3. The jisyo file itself (SKK-JISYO.L).
//
// More info on the jisyo format can be found at this URL:
// https://github.com/skk-dev/dict
package skkdict
