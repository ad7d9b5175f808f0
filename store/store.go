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

// Package store implements the SQLite dictionary store.
//
// A store has two tables. The meta table holds key/value metadata about the
// store. The entry table holds one row per surface form:
//
//	word_first  the surface form the row is looked up by
//	words       the space separated surface forms of the merged entries
//	details     the rendered HTML of the merged entries
//	freq        the space separated frequency tags of the merged entries
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ianlewis/go-jmdict/headword"
)

// DefaultLicense is the license of the JMdict data.
const DefaultLicense = "CC-BY-SA 3.0 Unported"

// Metadata keys.
const (
	MetaLicense = "license"
	MetaCreated = "database date of creation"
	MetaID      = "database id"
)

// progressInterval is the number of rows between progress log messages.
const progressInterval = 50000

const schema = `
CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT);
CREATE TABLE entry (word_first TEXT, words TEXT, details TEXT, freq TEXT);
CREATE INDEX entry_word_first ON entry (word_first);
`

// Options are options for creating a store.
type Options struct {
	// License is the value of the license metadata row. Defaults to
	// DefaultLicense.
	License string

	// Now returns the creation time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives progress messages. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o *Options) license() string {
	if o == nil || o.License == "" {
		return DefaultLicense
	}
	return o.License
}

func (o *Options) now() time.Time {
	if o == nil || o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Counts are the number of rows written and skipped by WriteEntries.
type Counts struct {
	// Converted is the number of rows written.
	Converted int

	// NotConverted is the number of entries without a sequence number that
	// were skipped.
	NotConverted int
}

// Writer writes a new store. The store is built in a temporary file next to
// the destination and only appears at the destination on Commit.
type Writer struct {
	db      *sql.DB
	path    string
	tmpPath string
	logger  *slog.Logger
	done    bool
}

// Create creates a new store that will be written to path. It returns an
// error wrapping ErrExists if path already exists.
func Create(ctx context.Context, path string, opts *Options) (*Writer, error) {
	if err := checkNotExists(path); err != nil {
		return nil, wrapError("create", path, err)
	}

	tmpPath := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	// The temporary database is removed on failure.
	dsn := tmpPath + "?_pragma=journal_mode(MEMORY)&_pragma=synchronous(OFF)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, wrapError("create", path, fmt.Errorf("opening database: %w", err))
	}
	db.SetMaxOpenConns(1)

	w := &Writer{
		db:      db,
		path:    path,
		tmpPath: tmpPath,
		logger:  opts.logger(),
	}

	if err := w.init(ctx, opts); err != nil {
		_ = w.Abort()
		return nil, wrapError("create", path, err)
	}

	w.logger.Debug("store created", "path", path, "tmp", tmpPath)

	return w, nil
}

func (w *Writer) init(ctx context.Context, opts *Options) error {
	if _, err := w.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	meta := [][2]string{
		{MetaLicense, opts.license()},
		{MetaCreated, opts.now().Format(time.DateOnly)},
		{MetaID, uuid.NewString()},
	}
	for _, kv := range meta {
		if err := w.setMeta(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// SetMeta sets a metadata row.
func (w *Writer) SetMeta(ctx context.Context, key, value string) error {
	if w.done {
		return wrapError("set meta", w.path, ErrClosed)
	}
	return wrapError("set meta", w.path, w.setMeta(ctx, key, value))
}

func (w *Writer) setMeta(ctx context.Context, key, value string) error {
	_, err := w.db.ExecContext(ctx, "INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("writing meta %q: %w", key, err)
	}
	return nil
}

// WriteEntries writes one row per key of t. Records without a sequence
// number are counted as not converted and are not written.
func (w *Writer) WriteEntries(ctx context.Context, t *headword.Table) (Counts, error) {
	var c Counts
	if w.done {
		return c, wrapError("write entries", w.path, ErrClosed)
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return c, wrapError("write entries", w.path, fmt.Errorf("beginning transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO entry (word_first, words, details, freq) VALUES (?, ?, ?, ?)")
	if err != nil {
		return c, wrapError("write entries", w.path, fmt.Errorf("preparing statement: %w", err))
	}
	defer stmt.Close()

	for key, r := range t.All() {
		if !r.Valid() {
			c.NotConverted++
			continue
		}
		if _, err := stmt.ExecContext(ctx, key, r.Words(), r.Details, r.Frequency()); err != nil {
			return c, wrapError("write entries", w.path, fmt.Errorf("inserting %q: %w", key, err))
		}
		c.Converted++
		if c.Converted%progressInterval == 0 {
			w.logger.Info("writing entries", "written", c.Converted, "total", t.Len())
		}
	}

	if err := tx.Commit(); err != nil {
		return c, wrapError("write entries", w.path, fmt.Errorf("committing transaction: %w", err))
	}

	return c, nil
}

// Commit closes the database and moves it to its destination. It fails if
// the destination was created in the meantime.
func (w *Writer) Commit() error {
	if w.done {
		return wrapError("commit", w.path, ErrClosed)
	}
	w.done = true

	if err := w.db.Close(); err != nil {
		_ = os.Remove(w.tmpPath)
		return wrapError("commit", w.path, fmt.Errorf("closing database: %w", err))
	}

	if err := checkNotExists(w.path); err != nil {
		_ = os.Remove(w.tmpPath)
		return wrapError("commit", w.path, err)
	}

	if err := os.Rename(w.tmpPath, w.path); err != nil {
		_ = os.Remove(w.tmpPath)
		return wrapError("commit", w.path, err)
	}

	w.logger.Debug("store committed", "path", w.path)

	return nil
}

// Abort closes the database and removes it. Nothing is left at the
// destination.
func (w *Writer) Abort() error {
	if w.done {
		return nil
	}
	w.done = true

	closeErr := w.db.Close()
	removeErr := os.Remove(w.tmpPath)
	if errors.Is(removeErr, fs.ErrNotExist) {
		removeErr = nil
	}

	w.logger.Debug("store aborted", "path", w.path)

	return wrapError("abort", w.path, errors.Join(closeErr, removeErr))
}

// Close aborts the store if it was not committed.
func (w *Writer) Close() error {
	return w.Abort()
}

// checkNotExists returns an error wrapping ErrExists if path exists.
func checkNotExists(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return ErrExists
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("checking destination: %w", err)
	}
}
