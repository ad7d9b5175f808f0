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

package jmdict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ianlewis/go-jmdict/entry"
	"github.com/ianlewis/go-jmdict/headword"
	"github.com/ianlewis/go-jmdict/markup"
	"github.com/ianlewis/go-jmdict/record"
	"github.com/ianlewis/go-jmdict/store"
)

var (
	// ErrInputNotFound indicates that the source document does not exist or
	// is not a regular file.
	ErrInputNotFound = errors.New("input file not found")

	// ErrOutputExists indicates that the destination already exists.
	ErrOutputExists = errors.New("output file already exists")
)

// progressInterval is the number of entries between progress messages and
// cancellation checks.
const progressInterval = 10000

// Options are options for Convert.
type Options struct {
	// License is the license metadata of the store. Defaults to
	// store.DefaultLicense.
	License string

	// GlossLanguages restricts glosses to the given languages. An empty list
	// keeps all glosses.
	GlossLanguages []string

	// Entities are entity definitions used in addition to the ones declared
	// by the document.
	Entities map[string]string

	// EscapeHTML enables HTML escaping of the text in entry details.
	EscapeHTML bool

	// Now returns the creation time of the store. Defaults to time.Now.
	Now func() time.Time

	// Logger receives progress messages. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions are the default options for Convert.
var DefaultOptions = &Options{}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Result reports the outcome of a conversion.
type Result struct {
	// Entries is the number of entries read from the document.
	Entries int

	// Malformed is the number of entries without a kanji form or an
	// unrestricted reading.
	Malformed int

	// Headwords is the number of distinct primary surface forms.
	Headwords int

	// Converted is the number of rows written to the store.
	Converted int

	// NotConverted is the number of rows and entries that could not be
	// converted. It includes Malformed.
	NotConverted int
}

// Convert converts the JMdict document at input into a new store at output.
//
// It fails with ErrInputNotFound if input does not exist and with
// ErrOutputExists if output exists. Nothing is written in either case. On any
// other failure, including cancellation of ctx, no store is left at output.
func Convert(ctx context.Context, input, output string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	logger := opts.logger()

	if err := checkInput(input); err != nil {
		return nil, err
	}
	if err := checkOutput(output); err != nil {
		return nil, err
	}

	table, res, err := build(ctx, input, opts, logger)
	if err != nil {
		return nil, err
	}

	w, err := store.Create(ctx, output, &store.Options{
		License: opts.License,
		Now:     opts.Now,
		Logger:  logger,
	})
	if err != nil {
		if errors.Is(err, store.ErrExists) {
			return nil, fmt.Errorf("%w: %w", ErrOutputExists, err)
		}
		return nil, err
	}
	defer w.Close()

	logger.Info("writing store", "path", output, "keys", table.Len())

	counts, err := w.WriteEntries(ctx, table)
	if err != nil {
		return nil, err
	}
	if err := w.Commit(); err != nil {
		if errors.Is(err, store.ErrExists) {
			return nil, fmt.Errorf("%w: %w", ErrOutputExists, err)
		}
		return nil, err
	}

	res.Converted = counts.Converted
	res.NotConverted = counts.NotConverted + res.Malformed

	return res, nil
}

// build reads the document and returns the expanded table.
func build(ctx context.Context, input string, opts *Options, logger *slog.Logger) (*headword.Table, *Result, error) {
	r, err := openSource(input)
	if err != nil {
		return nil, nil, err
	}

	s, err := entry.NewScanner(r, &entry.ScannerOptions{
		GlossLanguages: opts.GlossLanguages,
		Entities:       opts.Entities,
	})
	if err != nil {
		r.Close()
		return nil, nil, fmt.Errorf("error reading %q: %w", input, err)
	}
	defer s.Close()

	logger.Info("reading entries", "path", input)

	res := &Result{}
	renderer := &markup.Renderer{Escape: opts.EscapeHTML}
	agg := headword.NewAggregator()
	for s.Scan() {
		res.Entries++
		if res.Entries%progressInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			logger.Info("reading entries", "read", res.Entries, "offset", s.Offset())
		}

		rec, err := record.Extract(s.Entry(), renderer)
		if err != nil {
			res.Malformed++
			logger.Warn("skipping entry", "error", err)
			continue
		}
		agg.Add(rec)
	}
	if err := s.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading %q: %w", input, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	res.Headwords = agg.Len()
	logger.Info("expanding aliases", "entries", res.Entries, "headwords", res.Headwords, "malformed", res.Malformed)

	return headword.Expand(agg.Table()), res, nil
}
