// Package enricher derives per-word enrichment records from the shared
// dictionary index and runs the derivation as a concurrent batch job.
package enricher

import (
	"fmt"

	"github.com/heartmarshall/kotoba-enricher/internal/conjugation"
	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/internal/examples"
	"github.com/heartmarshall/kotoba-enricher/internal/idiom"
	"github.com/heartmarshall/kotoba-enricher/internal/lexicon"
	"github.com/heartmarshall/kotoba-enricher/internal/pitch"
	"github.com/heartmarshall/kotoba-enricher/internal/related"
	"github.com/heartmarshall/kotoba-enricher/internal/sense"
)

// Target is one word to enrich. A zero Level is resolved through the
// level lookup.
type Target struct {
	Word  string
	Level domain.Level
}

// Sources are the loaded inputs of a run. Index, Kanji and Levels are
// required; Pitch and Corpus are optional and disable their feature for the
// whole run when absent.
type Sources struct {
	Index   *lexicon.Index
	Kanji   map[rune]domain.KanjiInfo
	Levels  domain.Levels
	Pitch   *pitch.Dictionary
	Corpus  []domain.SentencePair
	Matcher examples.Matcher
}

// Engine holds the read-only state shared by every derivation. Enrich is
// safe for concurrent use once PrepareExamples has returned.
type Engine struct {
	index   *lexicon.Index
	kanji   map[rune]domain.KanjiInfo
	levels  domain.Levels
	pitch   *pitch.Dictionary
	corpus  []domain.SentencePair
	matcher examples.Matcher

	related *related.Finder
	idioms  *idiom.Extractor

	candidates map[string][]domain.SentencePair
}

func NewEngine(src Sources) (*Engine, error) {
	switch {
	case src.Index == nil || src.Index.Len() == 0:
		return nil, fmt.Errorf("enricher.NewEngine: dictionary index: %w", domain.ErrMissingSource)
	case len(src.Kanji) == 0:
		return nil, fmt.Errorf("enricher.NewEngine: kanji table: %w", domain.ErrMissingSource)
	case len(src.Levels) == 0:
		return nil, fmt.Errorf("enricher.NewEngine: word levels: %w", domain.ErrMissingSource)
	}

	matcher := src.Matcher
	if matcher == nil {
		matcher = examples.SubstringMatcher{}
	}
	return &Engine{
		index:   src.Index,
		kanji:   src.Kanji,
		levels:  src.Levels,
		pitch:   src.Pitch,
		corpus:  src.Corpus,
		matcher: matcher,
		related: related.NewFinder(src.Index, src.Kanji, src.Levels),
		idioms:  idiom.NewExtractor(src.Index),
	}, nil
}

// PrepareExamples builds the example-sentence candidates for the full set of
// words. It must complete before any concurrent Enrich call.
func (e *Engine) PrepareExamples(words []string) {
	if len(e.corpus) == 0 {
		e.candidates = nil
		return
	}
	e.candidates = examples.Index(e.corpus, words, e.matcher)
}

// Enrich derives the enrichment record of one word. It returns
// domain.ErrNotFound when the word is not in the dictionary and
// domain.ErrNoUsableSenses when every sense was filtered out.
func (e *Engine) Enrich(t Target) (*domain.Record, error) {
	word := domain.NormalizeText(t.Word)
	level, err := e.resolveLevel(word, t.Level)
	if err != nil {
		return nil, err
	}

	source, ids, err := e.index.Source(word)
	if err != nil {
		return nil, fmt.Errorf("enrich %q: %w", word, err)
	}

	senses := sense.Filter(source.Senses, level)
	if len(senses) == 0 {
		return nil, fmt.Errorf("enrich %q at %s: %w", word, level, domain.ErrNoUsableSenses)
	}

	rec := &domain.Record{
		Word:     word,
		Reading:  source.PrimaryReading(),
		Level:    level,
		EntryID:  source.ID,
		Senses:   senses,
		Related:  e.related.Find(source, ids, level),
		Idioms:   e.idioms.Extract(word, ids),
		Examples: examples.Filter(e.candidates[word], level, e.kanji),
	}

	if conj, ok := conjugation.Conjugate(source.Primary(), source.POSTags()); ok {
		rec.Conjugation = conj
		if rec.Reading != "" && rec.Reading != conj.Dictionary {
			if rc, ok := conjugation.Generate(rec.Reading, conj.Class); ok {
				rec.ReadingConjugation = rc
			}
		}
	}
	if acc, ok := e.pitch.Lookup(rec.Reading); ok {
		rec.Pitch = &acc
	}

	if rec.Idioms == nil {
		rec.Idioms = []domain.Idiom{}
	}
	if rec.Examples == nil {
		rec.Examples = []domain.SentencePair{}
	}
	return rec, nil
}

func (e *Engine) resolveLevel(word string, level domain.Level) (domain.Level, error) {
	if level.IsValid() {
		return level, nil
	}
	if lv, ok := e.levels.Of(word); ok {
		return lv, nil
	}
	return domain.LevelUnknown, domain.NewValidationError("level", fmt.Sprintf("no proficiency level for %q", word))
}
