package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/verte-zerg/latintextid/internal/model"
)

const insufficientData = "insufficient data"

// RenderSummary prints the model description followed by its totals.
func RenderSummary(w io.Writer, m *model.TextModel) error {
	if _, err := fmt.Fprint(w, m.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "total words: %d\n", m.TotalWords()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "total stems: %d\n", m.TotalStems()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "total sentences: %d\n", m.TotalSentences()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTopStems prints ranked stems as a table.
func RenderTopStems(w io.Writer, entries []StemCount) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No stems found.")
		return err
	}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(e.Count), e.Stem})
	}
	return writeLines(w, formatTable([]string{"Rank", "Count", "Stem"}, rows, map[int]bool{0: true, 1: true}))
}

// RenderComparison prints both t-tests and the Bayes score. Statistics
// that could not be computed are reported as insufficient data.
func RenderComparison(w io.Writer, c Comparison) error {
	if _, err := fmt.Fprintf(w, "Comparison: %s vs %s\n", c.Left, c.Right); err != nil {
		return err
	}
	rows := [][]string{
		tTestRow("Word length", c.WordLength),
		tTestRow("Sentence length", c.SentenceLength),
		{"Bayes score", formatStat(c.Bayes), ""},
	}
	if err := writeLines(w, formatTable([]string{"Measure", "Statistic", "p-value"}, rows, map[int]bool{1: true, 2: true})); err != nil {
		return err
	}
	if c.Ignored > 0 {
		if _, err := fmt.Fprintf(w, "%d stems ignored in the Bayes score\n", c.Ignored); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func tTestRow(label string, r TTestResult) []string {
	if !r.Defined() {
		return []string{label, insufficientData, ""}
	}
	return []string{label, formatStat(r.T), formatStat(r.P)}
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return insufficientData
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// CorpusStem is one aggregate stem with its document statistics.
type CorpusStem struct {
	Stem  string
	Count int
	Docs  int
	IDF   float64
}

// RenderCorpusStems prints aggregate stems with document frequency and IDF.
func RenderCorpusStems(w io.Writer, entries []CorpusStem) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No stems found.")
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Stem, strconv.Itoa(e.Count), strconv.Itoa(e.Docs), formatStat(e.IDF)})
	}
	return writeLines(w, formatTable([]string{"Stem", "Count", "Docs", "IDF"}, rows, map[int]bool{1: true, 2: true, 3: true}))
}
