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

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Row is a row of the entry table.
type Row struct {
	Key     string
	Words   string
	Details string
	Freq    string
}

// MetaRow is a row of the meta table.
type MetaRow struct {
	Key   string
	Value string
}

// Store is a read-only store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens an existing store for reading.
func Open(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		return nil, wrapError("open", path, err)
	}
	if info.IsDir() {
		return nil, wrapError("open", path, fmt.Errorf("%w: is a directory", ErrNotFound))
	}

	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)")
	if err != nil {
		return nil, wrapError("open", path, err)
	}

	return &Store{
		db:   db,
		path: path,
	}, nil
}

// Lookup returns the rows stored under key.
func (s *Store) Lookup(ctx context.Context, key string) ([]*Row, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT word_first, words, details, freq FROM entry WHERE word_first = ? ORDER BY rowid", key)
	if err != nil {
		return nil, wrapError("lookup", s.path, err)
	}
	defer rows.Close()

	var result []*Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Key, &r.Words, &r.Details, &r.Freq); err != nil {
			return nil, wrapError("lookup", s.path, err)
		}
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("lookup", s.path, err)
	}

	return result, nil
}

// Meta returns the metadata rows ordered by key.
func (s *Store) Meta(ctx context.Context) ([]*MetaRow, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM meta ORDER BY key")
	if err != nil {
		return nil, wrapError("meta", s.path, err)
	}
	defer rows.Close()

	var result []*MetaRow
	for rows.Next() {
		var m MetaRow
		if err := rows.Scan(&m.Key, &m.Value); err != nil {
			return nil, wrapError("meta", s.path, err)
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("meta", s.path, err)
	}

	return result, nil
}

// Count returns the number of rows in the entry table.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entry").Scan(&n); err != nil {
		return 0, wrapError("count", s.path, err)
	}
	return n, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return wrapError("close", s.path, s.db.Close())
}
