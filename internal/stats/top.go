// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/latintextid/internal/model"
)

// StemCount is one ranked stem.
type StemCount struct {
	Stem  string
	Count int
}

// TopStems returns the n most frequent stems of m, by count descending and
// then by stem ascending.
func TopStems(m *model.TextModel, n int) []StemCount {
	if n <= 0 || len(m.Stems) == 0 {
		return nil
	}
	items := make([]StemCount, 0, len(m.Stems))
	for stem, count := range m.Stems {
		items = append(items, StemCount{Stem: stem, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Stem < items[j].Stem
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
