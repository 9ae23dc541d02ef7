// Package normalize turns raw Latin prose into one lowercase,
// punctuation-free sentence per line.
//
// Only a fixed ASCII punctuation set is removed. Diacritics and any other
// non-ASCII letters pass through untouched.
package normalize

import (
	"regexp"
	"strings"
)

// Punctuation is the set of characters stripped from normalized text.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// terminatorRun matches a maximal run of sentence terminators plus any
// whitespace that follows it.
var terminatorRun = regexp.MustCompile(`(?:\.|!|\?|--)+\s*`)

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Text normalizes raw text: newlines become spaces, each run of sentence
// terminators becomes a line break, punctuation is removed and the result
// is lowercased.
func Text(raw string) string {
	s := newlineReplacer.Replace(raw)
	s = terminatorRun.ReplaceAllString(s, "\n")
	s = StripPunctuation(s)
	return strings.ToLower(s)
}

// StripPunctuation removes every character of Punctuation from s.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}, s)
}

// Lines splits normalized text into its non-empty lines.
func Lines(normalized string) []string {
	parts := strings.Split(normalized, "\n")
	lines := make([]string, 0, len(parts))
	for _, line := range parts {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Sentences normalizes raw text and returns the tokens of every non-empty
// line. A line holding only whitespace yields an empty token slice: it is
// still a sentence, just one without words.
func Sentences(raw string) [][]string {
	lines := Lines(Text(raw))
	sentences := make([][]string, 0, len(lines))
	for _, line := range lines {
		sentences = append(sentences, strings.Fields(line))
	}
	return sentences
}
