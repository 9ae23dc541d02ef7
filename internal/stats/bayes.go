package stats

import (
	"math"
	"sort"

	"github.com/verte-zerg/latintextid/internal/model"
)

// CommonStems lists function-word stems skipped when a Bayes score is
// asked to ignore common vocabulary.
var CommonStems = []string{"sum", "possum", "eo", "ad", "non", "ne", "cum", "res", "omnis"}

// CommonStemSet returns CommonStems as a lookup set.
func CommonStemSet() map[string]struct{} {
	return StemSet(CommonStems)
}

// StemSet builds a lookup set from a list of stems.
func StemSet(stems []string) map[string]struct{} {
	set := make(map[string]struct{}, len(stems))
	for _, s := range stems {
		set[s] = struct{}{}
	}
	return set
}

// BayesScore returns the log2 likelihood of the stems of m1 under the stem
// distribution of m2. When ignoreCommon is set, CommonStems are skipped.
func BayesScore(m1, m2 *model.TextModel, ignoreCommon bool) float64 {
	var ignore map[string]struct{}
	if ignoreCommon {
		ignore = CommonStemSet()
	}
	return BayesScoreIgnoring(m1, m2, ignore)
}

// BayesScoreIgnoring is BayesScore with an explicit set of stems to skip.
//
// A stem of m1 missing from m2 is scored with probability 1/total, where
// total is the stem count of m2. The result is at most 0; it is NaN when
// m2 has no stems.
func BayesScoreIgnoring(m1, m2 *model.TextModel, ignore map[string]struct{}) float64 {
	total := sumCounts(m2.Stems)
	if total == 0 {
		return math.NaN()
	}
	stems := make([]string, 0, len(m1.Stems))
	for stem := range m1.Stems {
		if _, skip := ignore[stem]; skip {
			continue
		}
		stems = append(stems, stem)
	}
	sort.Strings(stems)

	var score float64
	for _, stem := range stems {
		count := m2.Stems[stem]
		if count == 0 {
			count = 1
		}
		p := float64(count) / float64(total)
		score += math.Log2(p) * float64(m1.Stems[stem])
	}
	return score
}
