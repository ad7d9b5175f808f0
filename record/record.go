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

// Package record implements the flat dictionary records built from JMdict
// entries.
package record

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ianlewis/go-jmdict/entry"
	"github.com/ianlewis/go-jmdict/markup"
)

// ErrMalformedEntry indicates that an entry has neither a kanji form nor an
// unrestricted reading and so has no surface form to be looked up by.
var ErrMalformedEntry = errors.New("malformed entry")

// Record is a flat dictionary record. Records extracted from a single entry
// are merged with other records sharing a surface form.
type Record struct {
	// Primary is the surface form the record was extracted for: the first
	// kanji form, or the first unrestricted reading for kana-only words.
	Primary string

	// Forms are the surface forms of the record in document order.
	Forms []string

	// Details is the rendered HTML of every entry merged into the record.
	Details string

	// Freq are the frequency tags of every entry merged into the record.
	Freq []string

	// Seq is the sequence number of the first entry merged into the record.
	// Records with an empty Seq are not written out.
	Seq string
}

// Extract builds a record from a JMdict entry. The renderer r is used to
// render the entry's details. A nil renderer uses the default renderer.
func Extract(e *entry.Entry, r *markup.Renderer) (*Record, error) {
	if r == nil {
		r = &markup.Renderer{}
	}

	rec := &Record{
		Seq: e.Seq,
	}

	for _, k := range e.Kanji {
		if rec.Primary == "" {
			rec.Primary = k.Text
		}
		rec.Forms = append(rec.Forms, k.Text)
		rec.Freq = append(rec.Freq, k.Pri...)
	}

	for _, rd := range e.Readings {
		if rd.Restricted() {
			continue
		}
		// Kana-only words are keyed by their first reading.
		if len(rec.Forms) == 0 {
			rec.Forms = []string{rd.Text}
		}
		if rec.Primary == "" {
			rec.Primary = rd.Text
		}
	}

	if rec.Primary == "" {
		return nil, fmt.Errorf("%w: seq %q", ErrMalformedEntry, e.Seq)
	}

	rec.Details = r.Entry(e)

	return rec, nil
}

// Valid returns true if the record can be written out.
func (r *Record) Valid() bool {
	return r.Seq != ""
}

// Merge appends the details and frequency tags of o to r. The surface forms
// and sequence number of r are left unchanged.
func (r *Record) Merge(o *Record) {
	r.Details += o.Details
	r.Freq = append(r.Freq, o.Freq...)
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	return &Record{
		Primary: r.Primary,
		Forms:   slices.Clone(r.Forms),
		Details: r.Details,
		Freq:    slices.Clone(r.Freq),
		Seq:     r.Seq,
	}
}

// Words returns the surface forms joined by spaces.
func (r *Record) Words() string {
	return strings.Join(r.Forms, " ")
}

// Frequency returns the frequency tags joined by spaces.
func (r *Record) Frequency() string {
	return strings.Join(r.Freq, " ")
}
