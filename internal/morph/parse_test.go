package morph

import "testing"

const estOutput = `est                  V      5 1 PRES ACTIVE  IND 3 S
sum, esse, fui, futurus  V   [XXXAX]
to be, exist; (also used to form verb perfect passive tenses) with NOM PERF PPL
est                  V      3 1 PRES ACTIVE  IND 3 S
edo, edere, edi, esus  V   [XXXAX]
eat/consume/devour;
`

func TestParseAnalysisFirstUnqualifiedWins(t *testing.T) {
	res := ParseAnalysis(estOutput)
	if res.Stem != "sum" || !res.Substantive {
		t.Fatalf("expected sum/substantive, got %+v", res)
	}
}

func TestParseAnalysisLastQualifiedFallback(t *testing.T) {
	out := `ama                  V      1 1 PRES ACTIVE  IMP 2 S
amo, amare  V   [XXXDX]  lesser
amus, ami  N (2nd) M   [XXXEO]  veryrare
hook;
`
	res := ParseAnalysis(out)
	if res.Stem != "amus" || !res.Substantive {
		t.Fatalf("expected last qualified entry amus, got %+v", res)
	}
}

func TestParseAnalysisUnqualifiedAfterQualified(t *testing.T) {
	out := `amus, ami  N (2nd) M   [XXXEO]  uncommon
ad  PREP  ACC   [XXXAO]
to, toward;
`
	res := ParseAnalysis(out)
	if res.Stem != "ad" {
		t.Fatalf("expected unqualified entry ad, got %+v", res)
	}
	if res.Substantive {
		t.Fatalf("expected preposition to be non-substantive")
	}
}

func TestParseAnalysisNoEntry(t *testing.T) {
	res := ParseAnalysis("xyzzy ========   UNKNOWN\n")
	if res.Known() {
		t.Fatalf("expected unresolved result, got %+v", res)
	}
	if res.Substantive {
		t.Fatalf("expected unresolved result to be non-substantive")
	}
}

func TestParseAnalysisAbbreviation(t *testing.T) {
	res := ParseAnalysis("C., abb.  N  M   [XXXAO]  abb. Gaius\n")
	if res.Stem != "C." {
		t.Fatalf("expected stem C., got %q", res.Stem)
	}
	if res.Substantive {
		t.Fatalf("expected abbreviation to be non-substantive")
	}
}

func TestParseAnalysisAdjectiveAndAdverb(t *testing.T) {
	cases := map[string]string{
		"bonus, bona -um, melior -or -us, optimus -a -um  ADJ   [XXXAX]\n": "bonus",
		"bene, melius, optime  ADV   [XXXAO]\n":                            "bene",
	}
	for line, stem := range cases {
		res := ParseAnalysis(line)
		if res.Stem != stem || !res.Substantive {
			t.Fatalf("expected %s/substantive, got %+v", stem, res)
		}
	}
}

func TestParseAnalysisLeadingSpaceYieldsUnknown(t *testing.T) {
	res := ParseAnalysis(" sum, esse  V   [XXXAX]\n")
	if res.Known() {
		t.Fatalf("expected blank stem, got %q", res.Stem)
	}
}

func TestParseAnalysisCRLF(t *testing.T) {
	res := ParseAnalysis("rex, regis  N (3rd) M   [XXXAX]\r\nking;\r\n")
	if res.Stem != "rex" || !res.Substantive {
		t.Fatalf("expected rex/substantive, got %+v", res)
	}
}

func TestApplyOverrides(t *testing.T) {
	got := ApplyOverrides(Resolution{Stem: "edo", Substantive: false})
	if got != (Resolution{Stem: "sum", Substantive: true}) {
		t.Fatalf("expected edo to be rewritten to sum, got %+v", got)
	}
	other := Resolution{Stem: "rex", Substantive: true}
	if ApplyOverrides(other) != other {
		t.Fatalf("expected other stems to pass through")
	}
}
