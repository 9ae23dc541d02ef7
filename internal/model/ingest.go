package model

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/latintextid/internal/morph"
	"github.com/verte-zerg/latintextid/internal/normalize"
)

// IngestStats reports what one ingestion call processed.
type IngestStats struct {
	Words          int
	Substantive    int
	NonSubstantive int
	Unknown        int
	Sentences      int
	// Lookups is the number of distinct words sent to the resolver.
	Lookups int
}

// String renders the diagnostic summary line.
func (s IngestStats) String() string {
	return fmt.Sprintf("%d words processed in total, %d substantive, %d non-substantive, %d unknown",
		s.Words, s.Substantive, s.NonSubstantive, s.Unknown)
}

// AddText normalizes raw, resolves every word through r and adds the
// counts to m. Resolutions are memoized for the duration of the call.
//
// The call is all or nothing: when r fails, m is left untouched and the
// error is returned.
func (m *TextModel) AddText(ctx context.Context, raw string, r morph.Resolver) (IngestStats, error) {
	var st IngestStats
	delta := New(m.name)
	memo := morph.NewMemo(r)

	for _, sentence := range normalize.Sentences(raw) {
		for _, word := range sentence {
			if word == "" {
				continue
			}
			delta.Words[word]++
			delta.WordLengths[utf8.RuneCountInString(word)]++
			st.Words++

			res, err := memo.Resolve(ctx, word)
			if err != nil {
				return IngestStats{}, fmt.Errorf("failed to resolve %q: %w", word, err)
			}
			switch {
			case !res.Known():
				st.Unknown++
			case res.Substantive:
				delta.Stems[res.Stem]++
				st.Substantive++
			default:
				st.NonSubstantive++
			}
		}
		delta.SentenceLengths[len(sentence)]++
		st.Sentences++
	}

	m.Merge(delta)
	st.Lookups = memo.Lookups()
	return st, nil
}

// AddTextFromFile reads the file at path and passes its content to AddText.
func (m *TextModel) AddTextFromFile(ctx context.Context, path string, r morph.Resolver) (IngestStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return IngestStats{}, fmt.Errorf("failed to read text: %w", err)
	}
	return m.AddText(ctx, strings.Trim(string(data), "\n"), r)
}
