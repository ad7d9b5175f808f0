// Copyright 2025 Ian Lewis
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

// Package folding normalizes user queries so that they match the surface
// forms stored in a dictionary.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Query folds a lookup query. The query is converted to NFC, which is the
// form JMdict uses (e.g. "か" followed by a combining voiced sound mark
// becomes "が"), leading and trailing whitespace is removed and internal
// whitespace spans, including ideographic spaces, become a single ASCII
// space.
func Query(q string) string {
	folded, _, err := transform.String(NewQueryFolder(), q)
	if err != nil {
		// The transformers never fail on valid or invalid UTF-8 input.
		return q
	}
	return folded
}

// NewQueryFolder returns the [transform.Transformer] used by Query.
func NewQueryFolder() transform.Transformer {
	return transform.Chain(norm.NFC, &SpaceFolder{})
}

// SpaceFolder trims whitespace from the input and replaces internal
// whitespace spans with a single ASCII space.
type SpaceFolder struct {
	// started is true once a non-whitespace rune has been emitted.
	started bool

	// pending is true if whitespace was seen since the last emitted rune.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (f *SpaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(c) {
			nSrc += size
			f.pending = f.started
			continue
		}

		n := utf8.RuneLen(c)
		if f.pending {
			n++
		}
		if nDst+n > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if f.pending {
			dst[nDst] = ' '
			nDst++
			f.pending = false
		}
		// c may be utf8.RuneError, whose encoding is longer than size.
		nDst += utf8.EncodeRune(dst[nDst:], c)
		nSrc += size
		f.started = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *SpaceFolder) Reset() {
	*f = SpaceFolder{}
}
