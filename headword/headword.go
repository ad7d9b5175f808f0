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

// Package headword groups dictionary records by surface form.
//
// Grouping happens in two phases. The Aggregator folds records into a Table
// keyed by each record's primary surface form. Expand then fans every record
// of that table out to each of its surface forms so that a word can be found
// by any of its spellings. Both phases merge records that land on the same
// key by concatenating their details and frequency tags.
package headword

import (
	"iter"

	"github.com/ianlewis/go-jmdict/internal/index"
	"github.com/ianlewis/go-jmdict/record"
)

// Table is an immutable mapping from surface form to record. Iteration is in
// first-insertion order.
type Table struct {
	arena *index.Arena[*record.Record]
}

// Len returns the number of keys in the table.
func (t *Table) Len() int {
	return t.arena.Len()
}

// Get returns the record stored under key. The returned record must not be
// modified.
func (t *Table) Get(key string) (*record.Record, bool) {
	return t.arena.Get(key)
}

// Keys returns the table's keys in insertion order.
func (t *Table) Keys() []string {
	return t.arena.Keys()
}

// All iterates over the table in insertion order. The records must not be
// modified.
func (t *Table) All() iter.Seq2[string, *record.Record] {
	return t.arena.All()
}

// Aggregator groups records by their primary surface form.
type Aggregator struct {
	arena *index.Arena[*record.Record]
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		arena: index.NewArena[*record.Record](0),
	}
}

// Add adds a record. The first record for a primary surface form is stored
// as-is. Later records are merged into it in arrival order. Records without a
// sequence number are kept so that they take part in alias expansion.
func (a *Aggregator) Add(r *record.Record) {
	if existing, ok := a.arena.Get(r.Primary); ok {
		existing.Merge(r)
		return
	}
	a.arena.Insert(r.Primary, r.Clone())
}

// Len returns the number of distinct primary surface forms added so far.
func (a *Aggregator) Len() int {
	return a.arena.Len()
}

// Table returns a snapshot of the aggregated records. Records added after
// Table is called are not visible in the snapshot.
func (a *Aggregator) Table() *Table {
	snapshot := index.NewArena[*record.Record](a.arena.Len())
	for k, r := range a.arena.All() {
		snapshot.Insert(k, r.Clone())
	}
	return &Table{arena: snapshot}
}

// Expand returns a new table with an entry for every surface form of every
// record in t. The input table is not modified.
//
// The result starts out as a copy of t. Then for each key and record of t,
// in order, and each surface form of the record:
//   - a surface form without an entry gets a copy of the record;
//   - a surface form with an entry other than the record's own key has the
//     record merged into it;
//   - the record's own key is left alone.
func Expand(t *Table) *Table {
	out := index.NewArena[*record.Record](t.Len())
	for key, r := range t.All() {
		out.Insert(key, r.Clone())
	}

	for key, r := range t.All() {
		for _, form := range r.Forms {
			existing, ok := out.Get(form)
			switch {
			case !ok:
				out.Insert(form, r.Clone())
			case form != key:
				existing.Merge(r)
			}
		}
	}
	return &Table{arena: out}
}
