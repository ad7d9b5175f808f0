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

package jmdict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-jmdict/internal/testutil"
	"github.com/ianlewis/go-jmdict/store"
)

const (
	entryA = `<entry>
<ent_seq>1</ent_seq>
<k_ele><keb>食べる</keb><ke_pri>ichi1</ke_pri></k_ele>
<k_ele><keb>喰べる</keb></k_ele>
<r_ele><reb>たべる</reb></r_ele>
<sense><pos>&v1;</pos><gloss>to eat</gloss></sense>
</entry>`

	entryB = `<entry>
<ent_seq>2</ent_seq>
<k_ele><keb>喰べる</keb><ke_pri>news1</ke_pri></k_ele>
<r_ele><reb>たべる</reb></r_ele>
<sense><gloss>to devour (slang)</gloss></sense>
</entry>`

	entryKana = `<entry>
<ent_seq>3</ent_seq>
<r_ele><reb>から</reb><re_restr>空</re_restr></r_ele>
<r_ele><reb>ああ</reb></r_ele>
<sense><misc>&uk;</misc><gloss>ah!</gloss></sense>
</entry>`

	entryMalformed = `<entry>
<ent_seq>4</ent_seq>
<sense><gloss>nothing</gloss></sense>
</entry>`

	entryNoSeq = `<entry>
<k_ele><keb>猫</keb></k_ele>
<r_ele><reb>ねこ</reb></r_ele>
<sense><gloss>cat</gloss></sense>
</entry>`
)

func testOptions() *Options {
	return &Options{
		Now: func() time.Time {
			return time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func lookup(t *testing.T, path, key string) []*store.Row {
	t.Helper()

	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	rows, err := s.Lookup(context.Background(), key)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	return rows
}

// TestConvert tests Convert with plain and compressed documents.
func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *testutil.MakeDocumentOptions
	}{
		{
			name: "xml",
		},
		{
			name: "gzip",
			opts: &testutil.MakeDocumentOptions{Gzip: true},
		},
		{
			name: "dictzip",
			opts: &testutil.MakeDocumentOptions{DictZip: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			doc := testutil.MakeDocument(entryA, entryB, entryKana, entryMalformed, entryNoSeq)
			input := testutil.MakeTempDocument(t, dir, doc, test.opts)
			output := filepath.Join(dir, "jmdict.sqlite")

			res, err := Convert(context.Background(), input, output, testOptions())
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}

			expected := &Result{
				Entries:   5,
				Malformed: 1,
				Headwords: 4,
				// 食べる, 喰べる, ああ
				Converted: 3,
				// 猫 and the malformed entry.
				NotConverted: 2,
			}
			if diff := cmp.Diff(expected, res); diff != "" {
				t.Fatalf("Convert (-want, +got):\n%s", diff)
			}

			rows := lookup(t, output, "喰べる")
			if len(rows) != 1 {
				t.Fatalf("Lookup(喰べる): want 1 row, got %d", len(rows))
			}
			if !strings.Contains(rows[0].Details, "to eat") || !strings.Contains(rows[0].Details, "to devour (slang)") {
				t.Fatalf("Lookup(喰べる): unexpected details %q", rows[0].Details)
			}
			if want, got := "喰べる", rows[0].Words; want != got {
				t.Fatalf("Lookup(喰べる) words; want: %q, got: %q", want, got)
			}
			if want, got := "news1 ichi1", rows[0].Freq; want != got {
				t.Fatalf("Lookup(喰べる) freq; want: %q, got: %q", want, got)
			}

			rows = lookup(t, output, "食べる")
			if len(rows) != 1 {
				t.Fatalf("Lookup(食べる): want 1 row, got %d", len(rows))
			}
			if strings.Contains(rows[0].Details, "to devour") {
				t.Fatalf("Lookup(食べる): unexpected details %q", rows[0].Details)
			}
			if want, got := "食べる 喰べる", rows[0].Words; want != got {
				t.Fatalf("Lookup(食べる) words; want: %q, got: %q", want, got)
			}
			if !strings.Contains(rows[0].Details, "<div>Ichidan verb</div>") {
				t.Fatalf("Lookup(食べる): entity not expanded in %q", rows[0].Details)
			}

			rows = lookup(t, output, "ああ")
			if len(rows) != 1 {
				t.Fatalf("Lookup(ああ): want 1 row, got %d", len(rows))
			}
			if strings.Contains(rows[0].Details, "から") {
				t.Fatalf("Lookup(ああ): restricted reading rendered in %q", rows[0].Details)
			}

			for _, key := range []string{"たべる", "から", "猫", "ねこ"} {
				if rows := lookup(t, output, key); len(rows) != 0 {
					t.Fatalf("Lookup(%s): unexpected rows %v", key, rows)
				}
			}
		})
	}
}

// TestConvert_glossLanguages tests filtering glosses by language.
func TestConvert_glossLanguages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := testutil.MakeDocument(`<entry>
<ent_seq>1</ent_seq>
<k_ele><keb>猫</keb></k_ele>
<sense><gloss>cat</gloss><gloss xml:lang="ger">Katze</gloss></sense>
</entry>`)
	input := testutil.MakeTempDocument(t, dir, doc, nil)
	output := filepath.Join(dir, "jmdict.sqlite")

	opts := testOptions()
	opts.GlossLanguages = []string{"ger"}
	if _, err := Convert(context.Background(), input, output, opts); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	rows := lookup(t, output, "猫")
	if len(rows) != 1 {
		t.Fatalf("Lookup: want 1 row, got %d", len(rows))
	}
	if !strings.Contains(rows[0].Details, "<li>Katze</li>") || strings.Contains(rows[0].Details, "<li>cat</li>") {
		t.Fatalf("Lookup: unexpected details %q", rows[0].Details)
	}
}

// TestConvert_outputExists tests that a second run against the same output
// fails and leaves the first store untouched.
func TestConvert_outputExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := testutil.MakeTempDocument(t, dir, testutil.MakeDocument(entryA), nil)
	output := filepath.Join(dir, "jmdict.sqlite")

	if _, err := Convert(context.Background(), input, output, testOptions()); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	before, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	_, err = Convert(context.Background(), input, output, testOptions())
	if !errors.Is(err, ErrOutputExists) {
		t.Fatalf("Convert: want %v, got %v", ErrOutputExists, err)
	}

	after, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !cmp.Equal(before, after) {
		t.Fatal("output modified by second run")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if want, got := 2, len(entries); want != got {
		t.Fatalf("ReadDir; want %d files, got %d", want, got)
	}
}

// TestConvert_inputNotFound tests that a missing input fails before the
// output is created.
func TestConvert_inputNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, "jmdict.sqlite")

	_, err := Convert(context.Background(), filepath.Join(dir, "missing.xml"), output, testOptions())
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("Convert: want %v, got %v", ErrInputNotFound, err)
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat: output created: %v", err)
	}

	_, err = Convert(context.Background(), dir, output, testOptions())
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("Convert(dir): want %v, got %v", ErrInputNotFound, err)
	}
}

// TestConvert_syntaxError tests that a broken document leaves no output.
func TestConvert_syntaxError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := testutil.MakeTempDocument(t, dir, []byte("<JMdict><entry></sense></JMdict>"), nil)
	output := filepath.Join(dir, "jmdict.sqlite")

	if _, err := Convert(context.Background(), input, output, testOptions()); err == nil {
		t.Fatal("Convert: expected failure")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if want, got := 1, len(entries); want != got {
		t.Fatalf("ReadDir; want %d files, got %d", want, got)
	}
}

// TestConvert_canceled tests that a canceled run leaves no output.
func TestConvert_canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := testutil.MakeTempDocument(t, dir, testutil.MakeDocument(entryA, entryB), nil)
	output := filepath.Join(dir, "jmdict.sqlite")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Convert(ctx, input, output, testOptions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Convert: want %v, got %v", context.Canceled, err)
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat: output created: %v", err)
	}
}
