package wordlist

import "unicode"

// ValidStem reports whether s looks like a lowercase dictionary stem:
// letters only, no whitespace or punctuation.
func ValidStem(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) || unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// Dedupe drops repeated stems, keeping the first occurrence.
func Dedupe(stems []string) []string {
	seen := make(map[string]struct{}, len(stems))
	out := stems[:0]
	for _, s := range stems {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
