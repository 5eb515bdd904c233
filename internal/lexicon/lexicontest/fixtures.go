// Package lexicontest provides compact builders for dictionary fixtures used
// across package tests.
package lexicontest

import (
	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/internal/lexicon"
)

// Option customizes a fixture record.
type Option func(*lexicon.RawRecord)

// Record builds a raw record with one spelling (may be empty for kana-only
// words), one reading and a single sense glossed with gloss.
func Record(seq int64, spelling, reading, gloss string, opts ...Option) lexicon.RawRecord {
	rec := lexicon.RawRecord{Seq: seq}
	if spelling != "" {
		rec.Kanji = []lexicon.RawElement{{Text: spelling}}
	}
	if reading != "" {
		rec.Readings = []lexicon.RawElement{{Text: reading}}
	}
	rec.Senses = []lexicon.RawSense{{Gloss: []string{gloss}}}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// POS sets the part-of-speech tags of the first sense.
func POS(tags ...string) Option {
	return func(r *lexicon.RawRecord) { r.Senses[0].POS = tags }
}

// Misc sets the misc tags of the first sense.
func Misc(tags ...string) Option {
	return func(r *lexicon.RawRecord) { r.Senses[0].Misc = tags }
}

// Priority attaches priority markers to the first spelling, or to the first
// reading for kana-only records.
func Priority(markers ...string) Option {
	return func(r *lexicon.RawRecord) {
		if len(r.Kanji) > 0 {
			r.Kanji[0].Priority = append(r.Kanji[0].Priority, markers...)
			return
		}
		r.Readings[0].Priority = append(r.Readings[0].Priority, markers...)
	}
}

// Sense appends an extra sense.
func Sense(s lexicon.RawSense) Option {
	return func(r *lexicon.RawRecord) { r.Senses = append(r.Senses, s) }
}

// Build indexes records, failing loudly on fixtures that would be dropped.
func Build(records ...lexicon.RawRecord) *lexicon.Index {
	idx, stats := lexicon.Build(records)
	if stats.Dropped > 0 || stats.Duplicates > 0 {
		panic("lexicontest: fixture records were dropped")
	}
	return idx
}

// Grade returns a kanji metadata record with a school grade.
func Grade(c rune, grade int) domain.KanjiInfo {
	return domain.KanjiInfo{Character: c, Grade: &grade}
}

// Kanji builds a kanji table from metadata records.
func Kanji(infos ...domain.KanjiInfo) map[rune]domain.KanjiInfo {
	m := make(map[rune]domain.KanjiInfo, len(infos))
	for _, k := range infos {
		m[k.Character] = k
	}
	return m
}
