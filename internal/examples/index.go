// Package examples selects short, level-appropriate example sentences for
// target words from a parallel sentence corpus.
package examples

import (
	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

// CandidateCap is the number of candidate sentences collected per word
// before the word stops being matched.
const CandidateCap = 6

// Index collects up to CandidateCap candidate sentences per target word in a
// single pass over corpus, preserving corpus order. Words that reach the cap
// are no longer checked against later sentences. Index is not safe to run
// concurrently with itself over the same targets.
func Index(corpus []domain.SentencePair, targets []string, m Matcher) map[string][]domain.SentencePair {
	if m == nil {
		m = SubstringMatcher{}
	}

	remaining := make([]string, 0, len(targets))
	seen := make(map[string]struct{}, len(targets))
	for _, w := range targets {
		w = domain.NormalizeText(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		remaining = append(remaining, w)
	}

	out := make(map[string][]domain.SentencePair)
	for _, pair := range corpus {
		if len(remaining) == 0 {
			break
		}
		match := m.Prepare(pair.Source)

		kept := remaining[:0]
		for _, w := range remaining {
			if match(w) {
				out[w] = append(out[w], pair)
				if len(out[w]) >= CandidateCap {
					continue
				}
			}
			kept = append(kept, w)
		}
		remaining = kept
	}
	return out
}
