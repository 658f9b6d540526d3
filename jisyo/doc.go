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

// Package jisyo implements reading SKK dictionary (jisyo) files.
//
// A jisyo file is line oriented text. Each line holds one entry made of two
// whitespace separated parts:
//  1. The reading: phonetic characters, optionally followed by a single ASCII
//     letter marking the inflected (okurigana) form.
//  2. The candidates: a '/' delimited list of conversion candidates, e.g.
//     "/漢字/感じ/". A candidate may carry an annotation introduced by ';'.
//
// Lines beginning with ";;" are comments. Jisyo files are usually encoded in
// EUC-JP and must be decoded before parsing.
package jisyo
