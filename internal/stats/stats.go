// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/verte-zerg/latintextid/internal/model"
)

// TTestResult holds the outcome of a two-sample t-test.
// Both fields are NaN when the samples are too small to compare.
type TTestResult struct {
	T float64
	P float64
}

// Defined reports whether the test produced a usable result.
func (r TTestResult) Defined() bool {
	return !math.IsNaN(r.T) && !math.IsNaN(r.P)
}

var undefined = TTestResult{T: math.NaN(), P: math.NaN()}

// ExpandLengths flattens a length table into one value per occurrence,
// with lengths in ascending order.
func ExpandLengths(table map[int]int) []float64 {
	out := make([]float64, 0, sumCounts(table))
	for _, length := range model.SortedLengths(table) {
		for i := 0; i < table[length]; i++ {
			out = append(out, float64(length))
		}
	}
	return out
}

// TTestWordLength compares the word length distributions of two models.
func TTestWordLength(m1, m2 *model.TextModel) TTestResult {
	return WelchTTest(ExpandLengths(m1.WordLengths), ExpandLengths(m2.WordLengths))
}

// TTestSentenceLength compares the sentence length distributions of two models.
func TTestSentenceLength(m1, m2 *model.TextModel) TTestResult {
	return WelchTTest(ExpandLengths(m1.SentenceLengths), ExpandLengths(m2.SentenceLengths))
}

// WelchTTest runs an unpaired two-sample t-test without assuming equal
// variances and returns the statistic with its two-sided p-value.
// Samples with fewer than two values, or two constant samples with the
// same mean, give an undefined result.
func WelchTTest(a, b []float64) TTestResult {
	if len(a) < 2 || len(b) < 2 {
		return undefined
	}
	n1, n2 := float64(len(a)), float64(len(b))
	mean1, var1 := stat.MeanVariance(a, nil)
	mean2, var2 := stat.MeanVariance(b, nil)

	q1, q2 := var1/n1, var2/n2
	se2 := q1 + q2
	if math.IsNaN(se2) {
		return undefined
	}
	if se2 == 0 {
		// Two constant samples: identical means carry no information,
		// distinct means are infinitely significant.
		if mean1 == mean2 {
			return undefined
		}
		sign := 1
		if mean1 < mean2 {
			sign = -1
		}
		return TTestResult{T: math.Inf(sign), P: 0}
	}
	t := (mean1 - mean2) / math.Sqrt(se2)
	df := se2 * se2 / (q1*q1/(n1-1) + q2*q2/(n2-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	return TTestResult{T: t, P: math.Min(p, 1)}
}

// Comparison gathers every statistic computed between two models.
type Comparison struct {
	Left           string
	Right          string
	WordLength     TTestResult
	SentenceLength TTestResult
	Bayes          float64
	// Ignored is the number of stems of the left model excluded from the
	// Bayes score.
	Ignored int
}

// Compare runs both t-tests and the Bayes score of m1 against m2,
// skipping the stems in ignore.
func Compare(m1, m2 *model.TextModel, ignore map[string]struct{}) Comparison {
	return Comparison{
		Left:           m1.Name(),
		Right:          m2.Name(),
		WordLength:     TTestWordLength(m1, m2),
		SentenceLength: TTestSentenceLength(m1, m2),
		Bayes:          BayesScoreIgnoring(m1, m2, ignore),
		Ignored:        countIgnored(m1.Stems, ignore),
	}
}

func countIgnored(stems map[string]int, ignore map[string]struct{}) int {
	n := 0
	for stem := range stems {
		if _, ok := ignore[stem]; ok {
			n++
		}
	}
	return n
}

func sumCounts[K comparable](table map[K]int) int {
	total := 0
	for _, v := range table {
		total += v
	}
	return total
}
