// Copyright 2026 Ian Lewis
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

// Package entry implements reading entries from JMdict XML documents.
//
// A JMdict document is a single root element containing a flat list of
// <entry> elements. Each entry comes in four parts:
//  1. The sequence number (<ent_seq>) identifying the entry.
//  2. Zero or more kanji elements (<k_ele>), each holding a written form
//     (<keb>) and its priority/frequency tags (<ke_pri>).
//  3. Zero or more reading elements (<r_ele>), each holding a kana reading
//     (<reb>) and optionally a list of the kanji forms it is restricted to
//     (<re_restr>).
//  4. One or more sense elements (<sense>) with part-of-speech, field,
//     misc, dialect and gloss lists.
//
// The document's internal DTD subset declares the abbreviations used for
// the part-of-speech, misc, field and dialect values as entities (e.g.
// &n;). The Scanner reads those declarations and expands the references.
package entry
