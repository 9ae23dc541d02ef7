// Package model defines the text model: word, word length, stem and
// sentence length frequency tables built from Latin prose.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// TextModel holds the frequency tables of one text or author.
//
// Tables only ever grow: ingestion adds occurrences and never removes keys.
// A TextModel must not be mutated while another goroutine reads it.
type TextModel struct {
	name string

	// Words maps a lowercase word form to its occurrences.
	Words map[string]int
	// WordLengths maps a word length in characters to its occurrences.
	WordLengths map[int]int
	// Stems maps a resolved stem to its occurrences, substantives only.
	Stems map[string]int
	// SentenceLengths maps a sentence length in words to its occurrences.
	SentenceLengths map[int]int
}

// New creates an empty model.
func New(name string) *TextModel {
	return &TextModel{
		name:            name,
		Words:           map[string]int{},
		WordLengths:     map[int]int{},
		Stems:           map[string]int{},
		SentenceLengths: map[int]int{},
	}
}

// Name returns the identifying label given at construction.
func (m *TextModel) Name() string {
	return m.name
}

// TotalWords returns the number of word occurrences processed.
func (m *TextModel) TotalWords() int {
	return sumValues(m.Words)
}

// TotalStems returns the number of substantive occurrences recorded.
func (m *TextModel) TotalStems() int {
	return sumValues(m.Stems)
}

// TotalSentences returns the number of sentences processed.
func (m *TextModel) TotalSentences() int {
	return sumValues(m.SentenceLengths)
}

// Merge adds every count of other to m.
func (m *TextModel) Merge(other *TextModel) {
	mergeCounts(m.Words, other.Words)
	mergeCounts(m.WordLengths, other.WordLengths)
	mergeCounts(m.Stems, other.Stems)
	mergeCounts(m.SentenceLengths, other.SentenceLengths)
}

// Clone returns a deep copy of m under a new name.
func (m *TextModel) Clone(name string) *TextModel {
	c := New(name)
	c.Merge(m)
	return c
}

// String summarizes the model by name and table sizes.
func (m *TextModel) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "text model name: %s\n", m.name)
	fmt.Fprintf(&b, "number of words: %d\n", len(m.Words))
	fmt.Fprintf(&b, "number of word lengths: %d\n", len(m.WordLengths))
	fmt.Fprintf(&b, "number of sentence lengths: %d\n", len(m.SentenceLengths))
	fmt.Fprintf(&b, "number of stems: %d\n", len(m.Stems))
	return b.String()
}

// SortedLengths returns the keys of a length table in ascending order.
func SortedLengths(table map[int]int) []int {
	keys := make([]int, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sumValues[K comparable](table map[K]int) int {
	total := 0
	for _, v := range table {
		total += v
	}
	return total
}

func mergeCounts[K comparable](dst, src map[K]int) {
	for k, v := range src {
		dst[k] += v
	}
}
