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

// DefaultGlossLang is the language of a gloss without an xml:lang attribute.
const DefaultGlossLang = "eng"

// Entry is a single JMdict <entry> element.
type Entry struct {
	// Seq is the entry sequence number. It is empty if the entry has no
	// <ent_seq> element or the element is empty.
	Seq string `xml:"ent_seq"`

	// Kanji are the entry's kanji elements in document order.
	Kanji []*Kanji `xml:"k_ele"`

	// Readings are the entry's reading elements in document order.
	Readings []*Reading `xml:"r_ele"`

	// Senses are the entry's sense elements in document order.
	Senses []*Sense `xml:"sense"`
}

// Kanji is a <k_ele> element.
type Kanji struct {
	// Text is the written form (<keb>).
	Text string `xml:"keb"`

	// Pri are the priority or frequency tags (<ke_pri>), e.g. "news1".
	Pri []string `xml:"ke_pri"`
}

// Reading is a <r_ele> element.
type Reading struct {
	// Text is the kana reading (<reb>).
	Text string `xml:"reb"`

	// Restr lists the kanji forms the reading applies to (<re_restr>). An
	// empty list means the reading applies to all of the entry's kanji.
	Restr []string `xml:"re_restr"`
}

// Restricted returns true if the reading only applies to some of the
// entry's kanji forms.
func (r *Reading) Restricted() bool {
	return len(r.Restr) > 0
}

// Sense is a <sense> element.
type Sense struct {
	Pos   []string `xml:"pos"`
	Field []string `xml:"field"`
	Misc  []string `xml:"misc"`
	Dial  []string `xml:"dial"`
	Gloss []*Gloss `xml:"gloss"`
}

// Gloss is a <gloss> element.
type Gloss struct {
	// Lang is the xml:lang attribute of the gloss. It is empty for English
	// glosses in most JMdict releases.
	Lang string `xml:"lang,attr"`

	// Text is the gloss text.
	Text string `xml:",chardata"`
}

// Language returns the gloss language, defaulting to DefaultGlossLang.
func (g *Gloss) Language() string {
	if g.Lang == "" {
		return DefaultGlossLang
	}
	return g.Lang
}
