// Package tatoeba parses Tatoeba Japanese-English sentence pair TSV files.
// Pure function: file path in, domain structs out. No database dependencies.
package tatoeba

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

const maxSentenceLen = 500

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines  int
	SkippedLong int
	Malformed   int
	Duplicates  int
	Pairs       int
}

// Parse reads a Tatoeba pair TSV (id, sentence, id, translation) and returns
// the pairs in file order. A sentence linked to several translations is kept
// once, with its first translation.
func Parse(filePath string) ([]domain.SentencePair, Stats, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]domain.SentencePair, Stats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		stats Stats
		pairs []domain.SentencePair
	)
	seen := make(map[string]struct{})

	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		fields := strings.SplitN(line, "\t", 4)
		if len(fields) < 4 {
			stats.Malformed++
			continue
		}

		source := strings.TrimSpace(fields[1])
		target := strings.TrimSpace(fields[3])
		if source == "" || target == "" {
			stats.Malformed++
			continue
		}
		if len(source) > maxSentenceLen {
			stats.SkippedLong++
			continue
		}
		if _, dup := seen[source]; dup {
			stats.Duplicates++
			continue
		}
		seen[source] = struct{}{}

		pairs = append(pairs, domain.SentencePair{Source: source, Target: target})
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scanner error: %w", err)
	}
	stats.Pairs = len(pairs)

	return pairs, stats, nil
}
