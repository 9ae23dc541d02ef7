package normalize

import (
	"reflect"
	"strings"
	"testing"
)

func TestTextSingleSentence(t *testing.T) {
	got := Text("Gallia est omnis divisa in partes tres.")
	want := "gallia est omnis divisa in partes tres\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTextTerminatorRuns(t *testing.T) {
	got := Text("Quo usque tandem?! Abutere -- Catilina... patientia nostra")
	want := "quo usque tandem\nabutere \ncatilina\npatientia nostra"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTextNewlinesAreSpaces(t *testing.T) {
	got := Text("Arma virumque\ncano, Troiae\r\nqui primus")
	want := "arma virumque cano troiae qui primus"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTextSingleHyphenIsPunctuation(t *testing.T) {
	got := Text("res-publica")
	if got != "respublica" {
		t.Fatalf("expected hyphen to be stripped, got %q", got)
	}
}

func TestTextPreservesDiacritics(t *testing.T) {
	got := Text("Rōma æterna; Mūsa!")
	want := "rōma æterna mūsa\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStripPunctuation(t *testing.T) {
	got := StripPunctuation(`"Veni, vidi, vici" (Caesar) [47]`)
	if got != "Veni vidi vici Caesar 47" {
		t.Fatalf("unexpected result: %q", got)
	}
	for _, r := range Punctuation {
		if strings.ContainsRune(StripPunctuation(string(r)), r) {
			t.Fatalf("expected %q to be stripped", r)
		}
	}
}

func TestSentencesGallia(t *testing.T) {
	got := Sentences("Gallia est omnis divisa in partes tres.")
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(got))
	}
	want := []string{"gallia", "est", "omnis", "divisa", "in", "partes", "tres"}
	if !reflect.DeepEqual(got[0], want) {
		t.Fatalf("expected %v, got %v", want, got[0])
	}
}

func TestSentencesSkipsEmptyLines(t *testing.T) {
	got := Sentences("Veni. Vidi. Vici.")
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(got), got)
	}
	for i, word := range []string{"veni", "vidi", "vici"} {
		if len(got[i]) != 1 || got[i][0] != word {
			t.Fatalf("unexpected sentence %d: %v", i, got[i])
		}
	}
}

func TestSentencesWhitespaceOnlyLine(t *testing.T) {
	got := Sentences(`Dixit. " . Tacuit.`)
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(got), got)
	}
	if len(got[1]) != 0 {
		t.Fatalf("expected an empty middle sentence, got %v", got[1])
	}
}

func TestNormalizedLinesAreFixedPoints(t *testing.T) {
	inputs := []string{
		"Gallia est omnis divisa in partes tres. Quarum unam incolunt Belgae!",
		"Quo usque tandem abutere, Catilina, patientia nostra? Quam diu etiam -- furor iste",
		"",
		"sine terminatore",
	}
	for _, in := range inputs {
		for _, line := range Lines(Text(in)) {
			again := Text(line)
			if again != line {
				t.Fatalf("expected normalized line %q to be unchanged, got %q", line, again)
			}
			if len(Lines(again)) != 1 {
				t.Fatalf("expected %q to stay a single sentence", line)
			}
		}
	}
}
