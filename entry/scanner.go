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

package entry

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
)

// ErrSyntax indicates that the document is not well-formed.
var ErrSyntax = errors.New("jmdict syntax error")

// entityDecl matches general entity declarations in the internal DTD subset.
// Parameter entities (<!ENTITY % name ...>) are not matched.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%]+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// entryElement is the name of the element the Scanner decodes.
const entryElement = "entry"

// ScannerOptions are options for scanning a JMdict document.
type ScannerOptions struct {
	// GlossLanguages restricts the glosses kept in each sense to the given
	// languages (e.g. "eng", "ger"). An empty list keeps all glosses.
	GlossLanguages []string

	// Entities are additional entity definitions. Definitions in the
	// document's DOCTYPE take precedence.
	Entities map[string]string
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{}

// Scanner scans a JMdict document from start to end one entry at a time.
type Scanner struct {
	r     io.ReadCloser
	d     *xml.Decoder
	langs []string

	entry *Entry
	err   error
}

// NewScanner returns a new Scanner that reads entries from r. The Scanner
// assumes ownership of the reader and should be closed with the Close method.
func NewScanner(r io.ReadCloser, options *ScannerOptions) (*Scanner, error) {
	if options == nil {
		options = DefaultScannerOptions
	}

	d := xml.NewDecoder(bufio.NewReader(r))
	d.Entity = map[string]string{}
	maps.Copy(d.Entity, options.Entities)

	return &Scanner{
		r:     r,
		d:     d,
		langs: slices.Clone(options.GlossLanguages),
	}, nil
}

// Scan advances the Scanner to the next entry. It returns false when the scan
// stops, either by reaching the end of the document or an error.
func (s *Scanner) Scan() bool {
	s.entry = nil
	if s.err != nil {
		return false
	}

	for {
		tok, err := s.d.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("%w: %w", ErrSyntax, err)
			}
			return false
		}

		switch t := tok.(type) {
		case xml.Directive:
			s.directive(t)
		case xml.StartElement:
			if t.Name.Local != entryElement {
				continue
			}
			var e Entry
			if err := s.d.DecodeElement(&e, &t); err != nil {
				s.err = fmt.Errorf("%w: %w", ErrSyntax, err)
				return false
			}
			s.filterGlosses(&e)
			s.entry = &e
			return true
		}
	}
}

// Entry returns the entry read by the last call to Scan.
func (s *Scanner) Entry() *Entry {
	return s.entry
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

// Offset returns the input byte offset of the decoder.
func (s *Scanner) Offset() int64 {
	return s.d.InputOffset()
}

// Close closes the underlying reader.
func (s *Scanner) Close() error {
	if err := s.r.Close(); err != nil {
		return fmt.Errorf("closing jmdict document: %w", err)
	}
	return nil
}

// directive registers the entities declared in a DOCTYPE directive.
func (s *Scanner) directive(d xml.Directive) {
	if !bytes.HasPrefix(d, []byte("DOCTYPE")) {
		return
	}
	for _, m := range entityDecl.FindAllSubmatch(d, -1) {
		value := m[2]
		if m[3] != nil {
			value = m[3]
		}
		s.d.Entity[string(m[1])] = string(value)
	}
}

func (s *Scanner) filterGlosses(e *Entry) {
	if len(s.langs) == 0 {
		return
	}
	for _, sense := range e.Senses {
		sense.Gloss = slices.DeleteFunc(sense.Gloss, func(g *Gloss) bool {
			return !slices.Contains(s.langs, g.Language())
		})
	}
}
