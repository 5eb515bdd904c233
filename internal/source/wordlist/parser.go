// Package wordlist parses a JLPT vocabulary CSV into enrichment targets and a
// word-to-level lookup.
// Pure function: file path in, domain structs out. No database dependencies.
//
// Expected columns: word, reading, level[, gloss]. The first row is a header.
package wordlist

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

// Item is one word-list row.
type Item struct {
	Word    string
	Reading string
	Level   domain.Level
}

// Stats holds parser statistics for logging.
type Stats struct {
	Rows       int
	Items      int
	BadLevel   int
	Duplicates int
}

// Parse reads a word-list CSV and returns its items in file order together
// with a lookup of every word and reading to its easiest listed level.
func Parse(filePath string) ([]Item, domain.Levels, Stats, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, Stats{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]Item, domain.Levels, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.Comment = '#'

	var stats Stats
	levels := domain.Levels{}

	// Skip header row.
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, levels, stats, nil
		}
		return nil, nil, stats, fmt.Errorf("read header: %w", err)
	}

	var items []Item
	seen := make(map[string]struct{})
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, stats, fmt.Errorf("read row: %w", err)
		}
		stats.Rows++

		if len(record) < 3 {
			stats.BadLevel++
			continue
		}
		word := domain.NormalizeText(record[0])
		reading := domain.NormalizeText(record[1])
		if word == "" {
			word = reading
		}
		if word == "" {
			continue
		}
		level, err := domain.ParseLevel(record[2])
		if err != nil {
			stats.BadLevel++
			continue
		}

		levels.Set(level, word, reading)
		if _, dup := seen[word]; dup {
			stats.Duplicates++
			continue
		}
		seen[word] = struct{}{}
		items = append(items, Item{Word: word, Reading: reading, Level: level})
	}
	stats.Items = len(items)

	return items, levels, stats, nil
}

// ParseWords reads a plain word list, one word per line. Blank lines and
// lines starting with # are ignored.
func ParseWords(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := domain.NormalizeText(scanner.Text())
		if word != "" && !strings.HasPrefix(word, "#") {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return words, nil
}
