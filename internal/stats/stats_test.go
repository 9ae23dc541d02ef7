package stats

import (
	"math"
	"reflect"
	"testing"

	"github.com/verte-zerg/latintextid/internal/model"
)

func TestExpandLengths(t *testing.T) {
	got := ExpandLengths(map[int]int{3: 2, 1: 1, 5: 0})
	want := []float64{1, 3, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ExpandLengths(nil); len(got) != 0 {
		t.Fatalf("expected empty sample, got %v", got)
	}
}

func TestWelchTTestKnownValues(t *testing.T) {
	r := WelchTTest([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})
	if !r.Defined() {
		t.Fatalf("expected defined result")
	}
	if math.Abs(r.T-(-1.8973665961)) > 1e-6 {
		t.Fatalf("expected t=-1.8974, got %f", r.T)
	}
	if math.Abs(r.P-0.10753) > 1e-3 {
		t.Fatalf("expected p=0.1075, got %f", r.P)
	}

	swapped := WelchTTest([]float64{2, 4, 6, 8, 10}, []float64{1, 2, 3, 4, 5})
	if math.Abs(swapped.T+r.T) > 1e-12 || math.Abs(swapped.P-r.P) > 1e-12 {
		t.Fatalf("expected antisymmetric t and equal p, got %+v and %+v", r, swapped)
	}
}

func TestWelchTTestUndefined(t *testing.T) {
	cases := map[string][2][]float64{
		"empty":         {nil, {1, 2, 3}},
		"single":        {{4}, {1, 2, 3}},
		"zero variance": {{2, 2, 2}, {2, 2}},
	}
	for name, c := range cases {
		r := WelchTTest(c[0], c[1])
		if r.Defined() || !math.IsNaN(r.T) || !math.IsNaN(r.P) {
			t.Fatalf("%s: expected NaN result, got %+v", name, r)
		}
	}
}

func TestWelchTTestConstantSamplesWithDistinctMeans(t *testing.T) {
	r := WelchTTest([]float64{7, 7, 7}, []float64{5, 5, 5, 5})
	if !r.Defined() || !math.IsInf(r.T, 1) || r.P != 0 {
		t.Fatalf("expected +Inf and p=0, got %+v", r)
	}
	r = WelchTTest([]float64{5, 5, 5, 5}, []float64{7, 7, 7})
	if !math.IsInf(r.T, -1) || r.P != 0 {
		t.Fatalf("expected -Inf and p=0, got %+v", r)
	}

	m1 := model.New("a")
	m1.SentenceLengths = map[int]int{7: 3}
	m2 := model.New("b")
	m2.SentenceLengths = map[int]int{5: 4}
	if r := TTestSentenceLength(m1, m2); !math.IsInf(r.T, 1) || r.P != 0 {
		t.Fatalf("expected +Inf and p=0 for constant sentence lengths, got %+v", r)
	}
}

func TestWelchTTestIdenticalSamples(t *testing.T) {
	r := WelchTTest([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 4})
	if r.T != 0 {
		t.Fatalf("expected t=0, got %f", r.T)
	}
	if math.Abs(r.P-1) > 1e-9 {
		t.Fatalf("expected p=1, got %f", r.P)
	}
}

func TestTTestOnModels(t *testing.T) {
	m1 := model.New("a")
	m1.WordLengths = map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1}
	m1.SentenceLengths = map[int]int{7: 1}
	m2 := model.New("b")
	m2.WordLengths = map[int]int{2: 1, 4: 1, 6: 1, 8: 1, 10: 1}
	m2.SentenceLengths = map[int]int{3: 2, 5: 1}

	words := TTestWordLength(m1, m2)
	if math.Abs(words.T-(-1.8973665961)) > 1e-6 {
		t.Fatalf("unexpected word length t: %f", words.T)
	}
	if sentences := TTestSentenceLength(m1, m2); sentences.Defined() {
		t.Fatalf("expected single-sentence model to be insufficient, got %+v", sentences)
	}
	if empty := TTestWordLength(model.New("empty"), m2); empty.Defined() {
		t.Fatalf("expected empty model to be insufficient, got %+v", empty)
	}
}

func TestCompare(t *testing.T) {
	m1 := model.New("caesar")
	m1.WordLengths = map[int]int{3: 2, 5: 2}
	m1.SentenceLengths = map[int]int{2: 1, 4: 1}
	m1.Stems = map[string]int{"sum": 2, "bellum": 1}
	m2 := m1.Clone("cicero")

	c := Compare(m1, m2, CommonStemSet())
	if c.Left != "caesar" || c.Right != "cicero" {
		t.Fatalf("unexpected names: %+v", c)
	}
	if c.WordLength.T != 0 || c.SentenceLength.T != 0 {
		t.Fatalf("expected zero statistics for identical models, got %+v", c)
	}
	if math.Abs(c.Bayes-math.Log2(1.0/3)) > 1e-12 {
		t.Fatalf("expected bellum-only score, got %f", c.Bayes)
	}
	if c.Ignored != 1 {
		t.Fatalf("expected only sum to be ignored, got %d", c.Ignored)
	}

	other := model.New("livy")
	other.Stems = map[string]int{"bellum": 2}
	if got := Compare(other, m2, CommonStemSet()).Ignored; got != 0 {
		t.Fatalf("expected no ignored stems, got %d", got)
	}
}
