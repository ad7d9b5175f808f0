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

package testutil

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// Entities are the entities declared by MakeDocument.
var Entities = map[string]string{
	"n":    "noun (common) (futsuumeishi)",
	"v1":   "Ichidan verb",
	"vt":   "transitive verb",
	"uk":   "word usually written using kana alone",
	"food": "food, cooking",
	"ksb":  "Kansai-ben",
}

// MakeDocument creates a JMdict document from raw <entry> elements. The
// document declares Entities in its DOCTYPE.
func MakeDocument(entries ...string) []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<!DOCTYPE JMdict [\n")
	b.WriteString("<!ELEMENT JMdict (entry*)>\n")
	for _, name := range slices.Sorted(maps.Keys(Entities)) {
		fmt.Fprintf(&b, "<!ENTITY %s %q>\n", name, Entities[name])
	}
	b.WriteString("]>\n")
	b.WriteString("<JMdict>\n")
	for _, e := range entries {
		b.WriteString(e)
		b.WriteString("\n")
	}
	b.WriteString("</JMdict>\n")
	return b.Bytes()
}

// MakeDocumentOptions are options for MakeTempDocument.
type MakeDocumentOptions struct {
	// Ext is the file extension. Defaults to '.xml.gz' if Gzip is true,
	// '.xml.dz' if DictZip is true and '.xml' otherwise.
	Ext string

	// Gzip indicates that the document should be compressed with gzip.
	Gzip bool

	// DictZip indicates that the document should be compressed with DictZip.
	DictZip bool
}

// GetExt returns the file extension.
func (o *MakeDocumentOptions) GetExt() string {
	if o != nil {
		if o.Ext != "" {
			return o.Ext
		}
		if o.Gzip {
			return ".xml.gz"
		}
		if o.DictZip {
			return ".xml.dz"
		}
	}
	return ".xml"
}

// MakeTempDocument writes doc to a new file in dir and returns its path.
func MakeTempDocument(t *testing.T, dir string, doc []byte, opts *MakeDocumentOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeDocumentOptions{}
	}

	path := filepath.Join(dir, "JMdict"+opts.GetExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var w io.WriteCloser
	switch {
	case opts.Gzip:
		w = gzip.NewWriter(f)
	case opts.DictZip:
		w, err = dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
	}

	if w == nil {
		if _, err := f.Write(doc); err != nil {
			t.Fatal(err)
		}
		return path
	}

	if _, err := w.Write(doc); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
