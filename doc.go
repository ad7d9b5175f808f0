// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package jmdict implements converting JMdict dictionaries into SQLite
// databases in pure Go.
//
// The conversion happens in several steps:
//  1. Entries are read from the JMdict XML document. The document can be
//     compressed using gzip (.gz) or the dictzip format (.dz).
//  2. Each entry becomes a record keyed by its first kanji form, or its
//     first unrestricted reading for kana-only words. The record holds the
//     entry's surface forms, frequency tags and the entry rendered as HTML.
//  3. Records with the same key are merged.
//  4. Every merged record is copied to each of its other surface forms so
//     that words can be looked up by any spelling. Records landing on a
//     surface form that is already present are merged again.
//  5. The result is written to a new SQLite database. Records from entries
//     without a sequence number are not written.
//
// More info on the JMdict format can be found at this URL:
// https://www.edrdg.org/jmdict/jmdict_dtd_h.html
package jmdict
