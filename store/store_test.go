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

package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-jmdict/headword"
	"github.com/ianlewis/go-jmdict/record"
	"github.com/ianlewis/go-jmdict/store"
)

func testTable() *headword.Table {
	a := headword.NewAggregator()
	a.Add(&record.Record{
		Primary: "食べる",
		Forms:   []string{"食べる", "喰べる"},
		Details: "<div>to eat</div>\n",
		Freq:    []string{"ichi1", "news1"},
		Seq:     "1358280",
	})
	a.Add(&record.Record{
		Primary: "猫",
		Forms:   []string{"猫"},
		Details: "<div>cat</div>\n",
	})
	return headword.Expand(a.Table())
}

func testOptions() *store.Options {
	return &store.Options{
		License: "test license",
		Now: func() time.Time {
			return time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
		},
	}
}

// dirNames returns the names of the files in dir.
func dirNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// TestWriter tests writing and reading back a store.
func TestWriter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "jmdict.sqlite")

	w, err := store.Create(ctx, path, testOptions())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat: store visible before commit: %v", err)
	}

	counts, err := w.WriteEntries(ctx, testTable())
	if err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	if diff := cmp.Diff(store.Counts{Converted: 2, NotConverted: 1}, counts); diff != "" {
		t.Fatalf("WriteEntries (-want, +got):\n%s", diff)
	}

	if err := w.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if diff := cmp.Diff([]string{"jmdict.sqlite"}, dirNames(t, dir)); diff != "" {
		t.Fatalf("ReadDir (-want, +got):\n%s", diff)
	}

	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	rows, err := s.Lookup(ctx, "喰べる")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	expected := []*store.Row{
		{
			Key:     "喰べる",
			Words:   "食べる 喰べる",
			Details: "<div>to eat</div>\n",
			Freq:    "ichi1 news1",
		},
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Fatalf("Lookup (-want, +got):\n%s", diff)
	}

	rows, err = s.Lookup(ctx, "猫")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("Lookup: unexpected rows for record without sequence: %v", rows)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if want, got := 2, n; want != got {
		t.Fatalf("Count; want: %d, got: %d", want, got)
	}

	meta, err := s.Meta(ctx)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	expectedMeta := []*store.MetaRow{
		{Key: store.MetaCreated, Value: "2026-10-16"},
		{Key: store.MetaID},
		{Key: store.MetaLicense, Value: "test license"},
	}
	if diff := cmp.Diff(expectedMeta, meta, cmpopts.IgnoreFields(store.MetaRow{}, "Value")); diff != "" {
		t.Fatalf("Meta (-want, +got):\n%s", diff)
	}
	if want, got := "2026-10-16", meta[0].Value; want != got {
		t.Fatalf("%s; want: %q, got: %q", store.MetaCreated, want, got)
	}
	if want, got := "test license", meta[2].Value; want != got {
		t.Fatalf("%s; want: %q, got: %q", store.MetaLicense, want, got)
	}
	if meta[1].Value == "" {
		t.Fatalf("%s: empty", store.MetaID)
	}
}

// TestCreate_exists tests that an existing destination is never overwritten.
func TestCreate_exists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "jmdict.sqlite")
	if err := os.WriteFile(path, []byte("hoge"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := store.Create(context.Background(), path, nil); !errors.Is(err, store.ErrExists) {
		t.Fatalf("Create: want %v, got %v", store.ErrExists, err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want, got := "hoge", string(b); want != got {
		t.Fatalf("destination modified; want: %q, got: %q", want, got)
	}
	if diff := cmp.Diff([]string{"jmdict.sqlite"}, dirNames(t, dir)); diff != "" {
		t.Fatalf("ReadDir (-want, +got):\n%s", diff)
	}
}

// TestWriter_Abort tests that aborting leaves nothing behind.
func TestWriter_Abort(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "jmdict.sqlite")

	w, err := store.Create(ctx, path, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.WriteEntries(ctx, testTable()); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	if err := w.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}

	if names := dirNames(t, dir); len(names) != 0 {
		t.Fatalf("ReadDir: unexpected files %v", names)
	}
	if err := w.Commit(); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("Commit: want %v, got %v", store.ErrClosed, err)
	}
}

// TestWriter_Commit_raced tests that Commit does not replace a destination
// created after Create.
func TestWriter_Commit_raced(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "jmdict.sqlite")

	w, err := store.Create(ctx, path, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := os.WriteFile(path, []byte("hoge"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := w.Commit(); !errors.Is(err, store.ErrExists) {
		t.Fatalf("Commit: want %v, got %v", store.ErrExists, err)
	}
	if diff := cmp.Diff([]string{"jmdict.sqlite"}, dirNames(t, dir)); diff != "" {
		t.Fatalf("ReadDir (-want, +got):\n%s", diff)
	}
}

// TestOpen_notFound tests opening a missing store.
func TestOpen_notFound(t *testing.T) {
	t.Parallel()

	_, err := store.Open(filepath.Join(t.TempDir(), "missing.sqlite"))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Open: want %v, got %v", store.ErrNotFound, err)
	}
}
