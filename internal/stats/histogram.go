package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/latintextid/internal/model"
)

// Distribution is a named length table to draw.
type Distribution struct {
	Name   string
	Counts map[int]int
}

// HistogramOptions controls RenderDistributions. A zero Width uses the
// terminal width.
type HistogramOptions struct {
	Width int
}

const (
	barGlyph            = "█"
	minBarWidth         = 10
	shareWidth          = len("100.00%")
	terminalWidthBackup = 80
)

var barColors = []lipgloss.Color{"6", "5", "3", "2", "4"}

// WordLengthDistributions returns the word length tables of the models.
func WordLengthDistributions(models ...*model.TextModel) []Distribution {
	out := make([]Distribution, 0, len(models))
	for _, m := range models {
		out = append(out, Distribution{Name: m.Name(), Counts: m.WordLengths})
	}
	return out
}

// SentenceLengthDistributions returns the sentence length tables of the models.
func SentenceLengthDistributions(models ...*model.TextModel) []Distribution {
	out := make([]Distribution, 0, len(models))
	for _, m := range models {
		out = append(out, Distribution{Name: m.Name(), Counts: m.SentenceLengths})
	}
	return out
}

// RenderDistributions draws one horizontal bar per length and series,
// scaled to the relative frequency of that length within the series.
func RenderDistributions(w io.Writer, title string, series []Distribution, opts HistogramOptions) error {
	series = filterDistributions(series)
	if len(series) == 0 {
		return nil
	}

	totals := make([]int, len(series))
	keySet := map[int]struct{}{}
	nameWidth := 0
	for i, s := range series {
		totals[i] = sumCounts(s.Counts)
		for k := range s.Counts {
			keySet[k] = struct{}{}
		}
		if nw := runewidth.StringWidth(s.Name); nw > nameWidth {
			nameWidth = nw
		}
	}
	keys := make([]int, 0, len(keySet))
	keyWidth := 0
	for k := range keySet {
		keys = append(keys, k)
		if kw := len(strconv.Itoa(k)); kw > keyWidth {
			keyWidth = kw
		}
	}
	sort.Ints(keys)

	maxShare := 0.0
	for i, s := range series {
		for _, k := range keys {
			maxShare = math.Max(maxShare, share(s.Counts[k], totals[i]))
		}
	}

	width := opts.Width
	if width <= 0 {
		width = terminalWidth()
	}
	barWidth := BarWidthFor(width, keyWidth, nameWidth)

	var styles []lipgloss.Style
	if shouldUseColor(w) {
		renderer := lipgloss.NewRenderer(w)
		for _, c := range barColors {
			styles = append(styles, renderer.NewStyle().Foreground(c))
		}
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, s := range series {
		if _, err := fmt.Fprintf(w, "%s: %d observations\n", s.Name, totals[i]); err != nil {
			return err
		}
	}
	for _, k := range keys {
		for i, s := range series {
			keyCol := strings.Repeat(" ", keyWidth)
			if i == 0 {
				keyCol = fmt.Sprintf("%*d", keyWidth, k)
			}
			sh := share(s.Counts[k], totals[i])
			barLen := barLength(sh, maxShare, barWidth)
			if barLen == 0 && s.Counts[k] > 0 {
				barLen = 1
			}
			bar := strings.Repeat(barGlyph, barLen)
			if len(styles) > 0 && barLen > 0 {
				bar = styles[i%len(styles)].Render(bar)
			}
			line := fmt.Sprintf("%s %s %s%s %*s",
				keyCol,
				runewidth.FillRight(s.Name, nameWidth),
				bar,
				strings.Repeat(" ", barWidth-barLen),
				shareWidth,
				fmt.Sprintf("%.2f%%", sh*100),
			)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// BarWidthFor computes the bar width that fits a row of the histogram
// within the total available width.
func BarWidthFor(totalWidth, keyWidth, nameWidth int) int {
	barWidth := totalWidth - keyWidth - nameWidth - shareWidth - 3
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	return barWidth
}

func filterDistributions(series []Distribution) []Distribution {
	out := make([]Distribution, 0, len(series))
	for _, s := range series {
		if sumCounts(s.Counts) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func share(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

func barLength(sh, maxShare float64, barWidth int) int {
	if maxShare <= 0 {
		return 0
	}
	n := int(math.Round(sh / maxShare * float64(barWidth)))
	if n > barWidth {
		n = barWidth
	}
	return n
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
