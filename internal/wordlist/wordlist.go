// Package wordlist loads stem lists from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadStems reads one stem per line from the provided file path. Blank
// lines and lines starting with '#' are skipped; stems are lowercased and
// must pass ValidStem.
func LoadStems(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only stem list.
			_ = cerr
		}
	}()

	var stems []string
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		stem := strings.ToLower(line)
		if !ValidStem(stem) {
			return nil, fmt.Errorf("%s:%d: invalid stem %q", path, lineNo, line)
		}
		stems = append(stems, stem)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(stems) == 0 {
		return nil, fmt.Errorf("stem list is empty")
	}
	return Dedupe(stems), nil
}
