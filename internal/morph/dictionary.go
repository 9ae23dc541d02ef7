package morph

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PartOfSpeech is the grammatical category of a lexicon entry.
type PartOfSpeech string

const (
	POSNoun         PartOfSpeech = "noun"
	POSVerb         PartOfSpeech = "verb"
	POSAdjective    PartOfSpeech = "adjective"
	POSAdverb       PartOfSpeech = "adverb"
	POSPronoun      PartOfSpeech = "pronoun"
	POSPreposition  PartOfSpeech = "preposition"
	POSConjunction  PartOfSpeech = "conjunction"
	POSInterjection PartOfSpeech = "interjection"
	POSNumeral      PartOfSpeech = "numeral"
	POSAbbreviation PartOfSpeech = "abbreviation"
)

// Substantive reports whether words of this category count as substantives.
func (p PartOfSpeech) Substantive() bool {
	switch p {
	case POSNoun, POSVerb, POSAdjective, POSAdverb:
		return true
	default:
		return false
	}
}

func (p PartOfSpeech) valid() bool {
	switch p {
	case POSNoun, POSVerb, POSAdjective, POSAdverb, POSPronoun, POSPreposition,
		POSConjunction, POSInterjection, POSNumeral, POSAbbreviation:
		return true
	default:
		return false
	}
}

// Entry is one lemma of an in-process lexicon and the forms it covers.
type Entry struct {
	Stem  string       `yaml:"stem"`
	POS   PartOfSpeech `yaml:"pos"`
	Forms []string     `yaml:"forms"`
}

// Dictionary resolves words from an in-memory form index. Unknown words
// resolve to the zero Resolution without error.
type Dictionary struct {
	forms map[string]Resolution
}

// NewDictionary indexes entries. When several entries list the same form,
// the first one wins.
func NewDictionary(entries []Entry) (*Dictionary, error) {
	d := &Dictionary{forms: make(map[string]Resolution)}
	for i, e := range entries {
		stem := strings.ToLower(strings.TrimSpace(e.Stem))
		if stem == "" {
			return nil, fmt.Errorf("lexicon entry %d: stem is required", i+1)
		}
		pos := PartOfSpeech(strings.ToLower(strings.TrimSpace(string(e.POS))))
		if !pos.valid() {
			return nil, fmt.Errorf("lexicon entry %d (%s): unknown part of speech %q", i+1, stem, e.POS)
		}
		res := Resolution{Stem: stem, Substantive: pos.Substantive()}
		d.add(stem, res)
		for _, form := range e.Forms {
			d.add(strings.ToLower(strings.TrimSpace(form)), res)
		}
	}
	return d, nil
}

// LoadDictionary reads a YAML lexicon:
//
//	entries:
//	  - stem: rex
//	    pos: noun
//	    forms: [regis, regi, regem, rege, reges, regum, regibus]
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	var doc struct {
		Entries []Entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	return NewDictionary(doc.Entries)
}

func (d *Dictionary) add(form string, res Resolution) {
	if form == "" {
		return
	}
	if _, ok := d.forms[form]; ok {
		return
	}
	d.forms[form] = res
}

// Resolve looks word up in the form index.
func (d *Dictionary) Resolve(_ context.Context, word string) (Resolution, error) {
	return d.forms[word], nil
}

// Len returns the number of indexed forms.
func (d *Dictionary) Len() int {
	return len(d.forms)
}
