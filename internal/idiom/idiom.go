// Package idiom extracts idiomatic dictionary entries (proverbs, four-character
// compounds, set expressions) that contain a target word.
package idiom

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/internal/lexicon"
	"github.com/heartmarshall/kotoba-enricher/internal/sense"
)

const (
	containmentScore = 10
	shortScore       = 2
	mediumScore      = 1
	priorityScore    = 5

	shortLen  = 6
	mediumLen = 10

	outputLimit = 10
)

// idiomTags are matched as case-insensitive substrings of misc tags after
// hyphens are folded to spaces, so "four-character-idiom" and
// "four-character idiom" are the same tag.
var idiomTags = []string{"idiom", "proverb", "expression", "yojijukugo", "four character idiom"}

// typeRules is checked in order; the first rule with a matching tag decides
// the idiom type.
var typeRules = []struct {
	typ     domain.IdiomType
	needles []string
}{
	{typ: domain.IdiomTypeProverb, needles: []string{"proverb"}},
	{typ: domain.IdiomTypeYojijukugo, needles: []string{"yojijukugo", "four character idiom"}},
	{typ: domain.IdiomTypeIdiom, needles: []string{"idiom"}},
}

// Extractor finds idioms over a shared read-only index.
type Extractor struct {
	index *lexicon.Index
}

func NewExtractor(index *lexicon.Index) *Extractor {
	return &Extractor{index: index}
}

type candidate struct {
	entry *domain.Entry
	typ   domain.IdiomType
	score int
}

// Extract returns up to ten idiomatic entries whose primary spelling contains
// word, best first. Ids in exclude never appear in the result.
func (x *Extractor) Extract(word string, exclude []int64) []domain.Idiom {
	word = domain.NormalizeText(word)
	if word == "" {
		return nil
	}

	var cands []candidate
	for _, e := range x.candidates(word, exclude) {
		if !strings.Contains(e.Primary(), word) {
			continue
		}
		typ, ok := classify(e)
		if !ok {
			continue
		}
		cands = append(cands, candidate{entry: e, typ: typ, score: score(e)})
	}

	slices.SortFunc(cands, func(a, b candidate) int {
		if a.score != b.score {
			return cmp.Compare(b.score, a.score)
		}
		return cmp.Compare(a.entry.ID, b.entry.ID)
	})
	cands = cands[:min(len(cands), outputLimit)]

	out := make([]domain.Idiom, len(cands))
	for i, c := range cands {
		out[i] = domain.Idiom{
			Word:         c.entry.Primary(),
			Reading:      c.entry.PrimaryReading(),
			PrimaryGloss: c.entry.PrimaryGloss(),
			Type:         c.typ,
		}
	}
	return out
}

// candidates merges the character-index union with a containment scan of
// the whole index, deduplicated and without excluded ids.
func (x *Extractor) candidates(word string, exclude []int64) []*domain.Entry {
	skip := make(map[int64]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	var out []*domain.Entry
	for _, id := range x.index.CandidatesByChars(word, exclude) {
		skip[id] = struct{}{}
		if e := x.index.Entry(id); e != nil {
			out = append(out, e)
		}
	}
	x.index.Scan(func(e *domain.Entry) bool {
		if _, ok := skip[e.ID]; ok {
			return true
		}
		if strings.Contains(e.Primary(), word) {
			skip[e.ID] = struct{}{}
			out = append(out, e)
		}
		return true
	})
	return out
}

// classify returns the idiom type of e, or false when no sense carries an
// idiomatic tag.
func classify(e *domain.Entry) (domain.IdiomType, bool) {
	var tags []string
	for i := range e.Senses {
		for _, m := range e.Senses[i].Misc {
			tags = append(tags, strings.ReplaceAll(m, "-", " "))
		}
	}
	if !sense.HasMiscTag(tags, idiomTags...) {
		return "", false
	}
	for _, r := range typeRules {
		if sense.HasMiscTag(tags, r.needles...) {
			return r.typ, true
		}
	}
	return domain.IdiomTypeExpression, true
}

func score(e *domain.Entry) int {
	s := containmentScore
	switch n := utf8.RuneCountInString(e.Primary()); {
	case n <= shortLen:
		s += shortScore
	case n <= mediumLen:
		s += mediumScore
	}
	if e.HasPriority() {
		s += priorityScore
	}
	return s
}
