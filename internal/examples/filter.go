package examples

import (
	"unicode/utf8"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

const maxSentenceLen = 30

const (
	beginnerKeep = 2
	defaultKeep  = 3
)

// gradeCeiling is the highest school grade allowed per level. Levels absent
// from the map are unrestricted.
var gradeCeiling = map[domain.Level]int{
	domain.LevelN5: 2,
	domain.LevelN4: 4,
	domain.LevelN3: 6,
	domain.LevelN2: 8,
}

// Filter keeps the candidates that are short enough and use only kanji
// within the school-grade ceiling of level, preserving corpus order. An
// ideograph without a known grade fails any restricted ceiling.
func Filter(candidates []domain.SentencePair, level domain.Level, kanji map[rune]domain.KanjiInfo) []domain.SentencePair {
	keep := defaultKeep
	if level.IsBeginner() {
		keep = beginnerKeep
	}
	ceiling, restricted := gradeCeiling[level]

	var out []domain.SentencePair
	for _, pair := range candidates {
		if len(out) == keep {
			break
		}
		if utf8.RuneCountInString(pair.Source) > maxSentenceLen {
			continue
		}
		if restricted && !withinGrade(pair.Source, ceiling, kanji) {
			continue
		}
		out = append(out, pair)
	}
	return out
}

func withinGrade(sentence string, ceiling int, kanji map[rune]domain.KanjiInfo) bool {
	for _, r := range sentence {
		if !domain.IsIdeograph(r) {
			continue
		}
		info, ok := kanji[r]
		if !ok || info.Grade == nil || *info.Grade > ceiling {
			return false
		}
	}
	return true
}
