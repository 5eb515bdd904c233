// Package related finds vocabulary that shares kanji with a target word and
// ranks it for a learner at the target's proficiency level.
package related

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/internal/lexicon"
	"github.com/heartmarshall/kotoba-enricher/internal/sense"
)

const (
	maxIdeographs  = 3
	maxSpellingLen = 6

	rankProximity = 2000

	preLevelLimit = 20
	outputLimit   = 8
	levelBand     = 1
)

// LevelSource classifies dictionary entries by proficiency level.
type LevelSource interface {
	LevelOf(e *domain.Entry) (domain.Level, bool)
}

// Finder derives related-word lists from a shared read-only index.
type Finder struct {
	index  *lexicon.Index
	kanji  map[rune]domain.KanjiInfo
	levels LevelSource
}

func NewFinder(index *lexicon.Index, kanji map[rune]domain.KanjiInfo, levels LevelSource) *Finder {
	return &Finder{index: index, kanji: kanji, levels: levels}
}

type candidate struct {
	entry  *domain.Entry
	score  int
	rank   int
	ranked bool
	level  domain.Level
	known  bool
}

// Find returns up to eight entries sharing an ideograph with source, ranked
// by score. Ids in exclude never appear in the result.
func (f *Finder) Find(source *domain.Entry, exclude []int64, level domain.Level) []domain.RelatedWord {
	spelling := source.Primary()
	sourceChars := make(map[rune]struct{})
	for _, c := range domain.Ideographs(spelling) {
		sourceChars[c] = struct{}{}
	}
	sourcePOS := source.POSTags()
	sourceRank, sourceRanked := domain.FrequencyRank(source)

	var cands []candidate
	for _, id := range f.index.CandidatesByChars(spelling, exclude) {
		e := f.index.Entry(id)
		if e == nil || f.noisy(e) {
			continue
		}

		c := candidate{entry: e}
		c.level, c.known = f.levels.LevelOf(e)
		c.rank, c.ranked = domain.FrequencyRank(e)

		for _, r := range domain.Ideographs(e.Primary()) {
			if _, ok := sourceChars[r]; ok {
				c.score++
			}
		}
		if c.known && c.level == level {
			c.score += 2
		}
		if c.ranked && sourceRanked && abs(c.rank-sourceRank) < rankProximity {
			c.score++
		}
		if sharesPOS(e.POSTags(), sourcePOS) {
			c.score += 2
		} else {
			c.score--
		}

		if c.score > 0 {
			cands = append(cands, c)
		}
	}

	slices.SortFunc(cands, compareCandidates)
	cands = cands[:min(len(cands), preLevelLimit)]

	out := make([]domain.RelatedWord, 0, outputLimit)
	for _, c := range cands {
		if !c.known || !c.level.Within(level, levelBand) {
			continue
		}
		out = append(out, domain.RelatedWord{
			Word:         c.entry.Primary(),
			Reading:      c.entry.PrimaryReading(),
			PrimaryGloss: c.entry.PrimaryGloss(),
		})
		if len(out) == outputLimit {
			break
		}
	}
	return out
}

// noisy reports whether e is structurally unsuitable as related vocabulary.
func (f *Finder) noisy(e *domain.Entry) bool {
	spelling := e.Primary()
	if utf8.RuneCountInString(spelling) > maxSpellingLen {
		return true
	}

	count := 0
	for _, r := range spelling {
		if !domain.IsIdeograph(r) {
			continue
		}
		count++
		info, ok := f.kanji[r]
		if !ok || !info.IsGraded() {
			return true
		}
	}
	if count > maxIdeographs {
		return true
	}

	for i := range e.Senses {
		if sense.HasMiscTag(e.Senses[i].Misc, "archaic", "obsolete") {
			return true
		}
	}
	return false
}

func sharesPOS(tags, source []string) bool {
	for _, t := range tags {
		if slices.Contains(source, t) {
			return true
		}
	}
	return false
}

// compareCandidates orders by score descending, then frequency rank
// ascending with unranked entries last, then id.
func compareCandidates(a, b candidate) int {
	if a.score != b.score {
		return cmp.Compare(b.score, a.score)
	}
	if a.ranked != b.ranked {
		if a.ranked {
			return -1
		}
		return 1
	}
	if a.ranked && a.rank != b.rank {
		return cmp.Compare(a.rank, b.rank)
	}
	return cmp.Compare(a.entry.ID, b.entry.ID)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
