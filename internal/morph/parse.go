package morph

import (
	"regexp"
	"strings"
)

// entryMarker matches the bracketed source/frequency code that the
// analyzer prints on dictionary entry lines, e.g. "[XXXAX]".
var entryMarker = regexp.MustCompile(`\[[A-Z]+\]`)

var rarityMarkers = []string{"lesser", "veryrare", "uncommon"}

var substantiveMarkers = []string{" N ", " V ", " ADJ ", " ADV "}

const abbreviationMarker = " abb. "

// ParseAnalysis picks the best dictionary entry from analyzer output.
//
// The first entry line without a rarity marker wins. When every entry is
// marked rare, the last one in output order is used. Output without any
// entry line yields the zero Resolution.
func ParseAnalysis(output string) Resolution {
	var fallback Resolution
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if !entryMarker.MatchString(line) {
			continue
		}
		res := Resolution{Stem: entryStem(line), Substantive: isSubstantive(line)}
		if !isQualified(line) {
			return res
		}
		fallback = res
	}
	return fallback
}

func entryStem(line string) string {
	head, _, _ := strings.Cut(line, ",")
	head, _, _ = strings.Cut(head, " ")
	return strings.TrimSpace(head)
}

func isQualified(line string) bool {
	for _, marker := range rarityMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func isSubstantive(line string) bool {
	if strings.Contains(line, abbreviationMarker) {
		return false
	}
	for _, marker := range substantiveMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
