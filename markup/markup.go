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

// Package markup renders JMdict entries as HTML fragments.
//
// The fragment for one entry lists the entry's kanji forms, a separator,
// the unrestricted readings and then one block per sense:
//
//	<div class="jmdict-entry">
//	    <div class="word">食べる</div>
//	    <div class="sep"></div>
//	    <div class="reading">たべる</div>
//	    <div class="sense">
//	        <div class="misc">
//	        </div>
//	        ...
//	        <ol class="gloss">
//	            <li>to eat</li>
//	        </ol>
//	    </div>
//	</div>
package markup

import (
	"html"
	"strings"

	"github.com/ianlewis/go-jmdict/entry"
)

const indent = "    "

// Renderer renders entries as HTML fragments.
type Renderer struct {
	// Escape enables HTML escaping of literal text. Literals are inserted
	// as-is when Escape is false.
	Escape bool
}

// Entry renders a whole entry.
func (r *Renderer) Entry(e *entry.Entry) string {
	var b strings.Builder
	r.WriteEntry(&b, e)
	return b.String()
}

// WriteEntry renders a whole entry to b.
func (r *Renderer) WriteEntry(b *strings.Builder, e *entry.Entry) {
	b.WriteString(`<div class="jmdict-entry">` + "\n")

	for _, k := range e.Kanji {
		r.Word(b, k)
	}

	for i, rd := range e.Readings {
		// The separator precedes the first reading element whether or not
		// that reading is rendered.
		if i == 0 {
			r.Separator(b)
		}
		r.Reading(b, rd)
	}

	for _, s := range e.Senses {
		r.Sense(b, s)
	}

	b.WriteString("</div>\n")
}

// Word renders a kanji element.
func (r *Renderer) Word(b *strings.Builder, k *entry.Kanji) {
	r.line(b, 1, `<div class="word">`, k.Text, `</div>`)
}

// Separator renders the block between the kanji forms and the readings.
func (r *Renderer) Separator(b *strings.Builder) {
	b.WriteString(indent + `<div class="sep"></div>` + "\n")
}

// Reading renders a reading element. Restricted readings render nothing.
func (r *Renderer) Reading(b *strings.Builder, rd *entry.Reading) {
	if rd.Restricted() {
		return
	}
	r.line(b, 1, `<div class="reading">`, rd.Text, `</div>`)
}

// Sense renders a sense element. Every list container is rendered, even when
// it has no items.
func (r *Renderer) Sense(b *strings.Builder, s *entry.Sense) {
	b.WriteString(indent + `<div class="sense">` + "\n")

	r.list(b, `<div class="misc">`, `</div>`, "<span>", "</span>", s.Misc)
	r.list(b, `<div class="field">`, `</div>`, "<span>", "</span>", s.Field)
	r.list(b, `<div class="dial">`, `</div>`, "<span>", "</span>", s.Dial)
	r.list(b, `<div class="pos">`, `</div>`, "<div>", "</div>", s.Pos)

	glosses := make([]string, 0, len(s.Gloss))
	for _, g := range s.Gloss {
		glosses = append(glosses, g.Text)
	}
	r.list(b, `<ol class="gloss">`, `</ol>`, "<li>", "</li>", glosses)

	b.WriteString(indent + "</div>\n")
}

// list renders a tagged group of items nested in a sense.
func (r *Renderer) list(b *strings.Builder, open, closing, itemOpen, itemClose string, items []string) {
	b.WriteString(strings.Repeat(indent, 2) + open + "\n")
	for _, item := range items {
		r.line(b, 3, itemOpen, item, itemClose)
	}
	b.WriteString(strings.Repeat(indent, 2) + closing + "\n")
}

func (r *Renderer) line(b *strings.Builder, depth int, open, text, closing string) {
	b.WriteString(strings.Repeat(indent, depth))
	b.WriteString(open)
	b.WriteString(r.text(text))
	b.WriteString(closing)
	b.WriteString("\n")
}

func (r *Renderer) text(s string) string {
	if r.Escape {
		return html.EscapeString(s)
	}
	return s
}
