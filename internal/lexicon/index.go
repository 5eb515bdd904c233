package lexicon

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

// Index is the read-only lookup structure over all dictionary entries.
// It is safe for concurrent use once Build has returned.
type Index struct {
	entries  map[int64]*domain.Entry
	order    []int64
	spelling map[string][]int64
	reading  map[string][]int64
	chars    map[rune][]int64
}

// Len returns the number of indexed entries.
func (x *Index) Len() int { return len(x.entries) }

// Entry returns the entry with the given id, or nil.
func (x *Index) Entry(id int64) *domain.Entry { return x.entries[id] }

// BySpelling returns the ids whose spellings include s, in insertion order.
func (x *Index) BySpelling(s string) []int64 { return x.spelling[s] }

// ByReading returns the ids whose readings include s, in insertion order.
func (x *Index) ByReading(s string) []int64 { return x.reading[s] }

// ByChar returns the ids whose spellings contain the ideograph c, ascending.
func (x *Index) ByChar(c rune) []int64 { return x.chars[c] }

// Scan calls fn for every entry in insertion order until fn returns false.
func (x *Index) Scan(fn func(*domain.Entry) bool) {
	for _, id := range x.order {
		if !fn(x.entries[id]) {
			return
		}
	}
}

// Lookup returns the ids matching word, trying spellings first and readings
// second. It returns domain.ErrNotFound when neither table has the word.
func (x *Index) Lookup(word string) ([]int64, error) {
	word = domain.NormalizeText(word)
	if ids := x.spelling[word]; len(ids) > 0 {
		return ids, nil
	}
	if ids := x.reading[word]; len(ids) > 0 {
		return ids, nil
	}
	return nil, fmt.Errorf("lookup %q: %w", word, domain.ErrNotFound)
}

// Source resolves word to its primary entry and the full set of ids it
// matched. Among several matches the most frequent entry wins; insertion
// order breaks ties.
func (x *Index) Source(word string) (*domain.Entry, []int64, error) {
	ids, err := x.Lookup(word)
	if err != nil {
		return nil, nil, err
	}

	best := x.entries[ids[0]]
	bestRank, bestOK := domain.FrequencyRank(best)
	for _, id := range ids[1:] {
		e := x.entries[id]
		rank, ok := domain.FrequencyRank(e)
		if ok && (!bestOK || rank < bestRank) {
			best, bestRank, bestOK = e, rank, true
		}
	}
	return best, ids, nil
}

// CandidatesByChars unions the character index over every ideograph in s,
// leaving out the ids in exclude. The result is ascending by id.
func (x *Index) CandidatesByChars(s string, exclude []int64) []int64 {
	seen := make(map[int64]struct{})
	for _, id := range exclude {
		seen[id] = struct{}{}
	}

	var out []int64
	for _, c := range domain.Ideographs(s) {
		for _, id := range x.chars[c] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
