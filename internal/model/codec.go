package model

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a persisted model cannot be decoded.
var ErrMalformed = errors.New("malformed model file")

// Extension is the file suffix used for persisted models.
const Extension = ".model"

// tableCount is the number of lines in a persisted model.
const tableCount = 4

// Encode writes the four tables as one JSON object per line, in the order
// words, word lengths, stems, sentence lengths. Length keys are written as
// decimal strings.
func (m *TextModel) Encode(w io.Writer) error {
	tables := []any{
		m.Words,
		lengthKeysToStrings(m.WordLengths),
		m.Stems,
		lengthKeysToStrings(m.SentenceLengths),
	}
	lines := make([][]byte, 0, len(tables))
	for _, table := range tables {
		data, err := json.Marshal(table)
		if err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		lines = append(lines, data)
	}
	_, err := w.Write(bytes.Join(lines, []byte("\n")))
	return err
}

// Decode replaces the tables of m with those read from r. On error m is
// left unchanged.
func (m *TextModel) Decode(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read model: %w", err)
	}
	text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	lines := strings.Split(text, "\n")
	if len(lines) != tableCount {
		return fmt.Errorf("%w: expected %d lines, got %d", ErrMalformed, tableCount, len(lines))
	}

	words, err := decodeStringTable(lines[0], "words")
	if err != nil {
		return err
	}
	wordLengths, err := decodeLengthTable(lines[1], "word lengths", 1)
	if err != nil {
		return err
	}
	stems, err := decodeStringTable(lines[2], "stems")
	if err != nil {
		return err
	}
	sentenceLengths, err := decodeLengthTable(lines[3], "sentence lengths", 0)
	if err != nil {
		return err
	}

	m.Words = words
	m.WordLengths = wordLengths
	m.Stems = stems
	m.SentenceLengths = sentenceLengths
	return nil
}

// DefaultPath returns the file name used when Save or Load get no path.
func (m *TextModel) DefaultPath() string {
	return m.name + Extension
}

// Save writes the model to path, or to DefaultPath when path is empty.
// The file is replaced atomically.
func (m *TextModel) Save(path string) error {
	if path == "" {
		path = m.DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create model dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "model-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp model: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := m.Encode(writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush model: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close model: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

// Load reads the model from path, or from DefaultPath when path is empty.
func (m *TextModel) Load(path string) error {
	if path == "" {
		path = m.DefaultPath()
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open model: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only model file.
			_ = cerr
		}
	}()
	return m.Decode(file)
}

// LoadFile creates a model named after the file and loads it.
func LoadFile(path string) (*TextModel, error) {
	name := strings.TrimSuffix(filepath.Base(path), Extension)
	m := New(name)
	if err := m.Load(path); err != nil {
		return nil, err
	}
	return m, nil
}

func lengthKeysToStrings(table map[int]int) map[string]int {
	out := make(map[string]int, len(table))
	for k, v := range table {
		out[strconv.Itoa(k)] = v
	}
	return out
}

func decodeStringTable(line, label string) (map[string]int, error) {
	var table map[string]int
	if err := json.Unmarshal([]byte(line), &table); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, label, err)
	}
	if table == nil {
		return nil, fmt.Errorf("%w: %s: expected an object", ErrMalformed, label)
	}
	for k, v := range table {
		if v < 0 {
			return nil, fmt.Errorf("%w: %s: negative count %d for %q", ErrMalformed, label, v, k)
		}
	}
	return table, nil
}

// decodeLengthTable parses a table whose keys are lengths serialized as
// strings. Keys below minKey are rejected.
func decodeLengthTable(line, label string, minKey int) (map[int]int, error) {
	raw, err := decodeStringTable(line, label)
	if err != nil {
		return nil, err
	}
	table := make(map[int]int, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: key %q is not an integer", ErrMalformed, label, k)
		}
		if n < minKey {
			return nil, fmt.Errorf("%w: %s: key %d is below %d", ErrMalformed, label, n, minKey)
		}
		table[n] += v
	}
	return table, nil
}
