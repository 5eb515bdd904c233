package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/kotoba-enricher/internal/config"
	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/internal/enricher"
	"github.com/heartmarshall/kotoba-enricher/internal/examples"
	"github.com/heartmarshall/kotoba-enricher/internal/lexicon"
	"github.com/heartmarshall/kotoba-enricher/internal/source/jmdict"
	"github.com/heartmarshall/kotoba-enricher/internal/source/kanjidic"
	"github.com/heartmarshall/kotoba-enricher/internal/source/pitchfile"
	"github.com/heartmarshall/kotoba-enricher/internal/source/tatoeba"
	"github.com/heartmarshall/kotoba-enricher/internal/source/wordlist"
)

// loadSources parses every configured dataset. A missing dictionary, kanji
// table or word list is fatal; the pitch file and sentence corpus only
// disable their feature. wordsPath, when set, replaces the word list as the
// target set while the list still provides levels.
func loadSources(cfg config.SourcesConfig, matcherKind, wordsPath string, logger *slog.Logger) (enricher.Sources, []enricher.Target, error) {
	var src enricher.Sources

	start := time.Now()
	raw, jmStats, err := jmdict.Parse(cfg.JMdictPath)
	if err != nil {
		return src, nil, fmt.Errorf("load dictionary: %w", err)
	}
	index, buildStats := lexicon.Build(raw)
	logger.Info("dictionary indexed",
		slog.Int("entries", jmStats.Entries),
		slog.Int("indexed", buildStats.Indexed),
		slog.Int("dropped", buildStats.Dropped),
		slog.Int("duplicates", buildStats.Duplicates),
		slog.Int("malformed_markers", buildStats.MalformedMarkers),
		slog.Duration("duration", time.Since(start)),
	)
	src.Index = index

	kanji, kStats, err := kanjidic.Parse(cfg.KanjidicPath)
	if err != nil {
		return src, nil, fmt.Errorf("load kanji table: %w", err)
	}
	logger.Info("kanji table loaded",
		slog.Int("characters", kStats.Characters),
		slog.Int("graded", kStats.Graded),
		slog.Int("leveled", kStats.Leveled),
	)
	src.Kanji = kanji

	items, levels, wStats, err := wordlist.Parse(cfg.WordListPath)
	if err != nil {
		return src, nil, fmt.Errorf("load word list: %w", err)
	}
	logger.Info("word list loaded", slog.Int("items", wStats.Items), slog.Int("bad_level", wStats.BadLevel))
	src.Levels = levels

	targets := make([]enricher.Target, 0, len(items))
	if wordsPath != "" {
		words, err := wordlist.ParseWords(wordsPath)
		if err != nil {
			return src, nil, fmt.Errorf("load target words: %w", err)
		}
		for _, w := range words {
			targets = append(targets, enricher.Target{Word: w, Level: domain.LevelUnknown})
		}
		logger.Info("target words loaded", slog.Int("words", len(targets)))
	} else {
		for _, it := range items {
			targets = append(targets, enricher.Target{Word: it.Word, Level: it.Level})
		}
	}

	if cfg.PitchPath != "" {
		dict, pStats, err := pitchfile.Parse(cfg.PitchPath)
		if err != nil {
			logger.Warn("pitch accents disabled", slog.String("error", err.Error()))
		} else {
			logger.Info("pitch accents loaded", slog.Int("readings", pStats.Loaded), slog.Int("invalid", pStats.Invalid))
			src.Pitch = dict
		}
	} else {
		logger.Info("pitch accents disabled: no source configured")
	}

	if cfg.TatoebaPath != "" {
		corpus, tStats, err := tatoeba.Parse(cfg.TatoebaPath)
		if err != nil {
			logger.Warn("example sentences disabled", slog.String("error", err.Error()))
		} else {
			logger.Info("sentence corpus loaded",
				slog.Int("pairs", tStats.Pairs),
				slog.Int("skipped_long", tStats.SkippedLong),
				slog.Int("malformed", tStats.Malformed),
			)
			src.Corpus = corpus
		}
	} else {
		logger.Info("example sentences disabled: no source configured")
	}

	if src.Corpus != nil {
		matcher, err := newMatcher(matcherKind)
		if err != nil {
			return src, nil, err
		}
		src.Matcher = matcher
	}

	return src, targets, nil
}

func newMatcher(kind string) (examples.Matcher, error) {
	switch kind {
	case config.MatcherLemma:
		m, err := examples.NewLemmaMatcher()
		if err != nil {
			return nil, fmt.Errorf("lemma matcher: %w", err)
		}
		return m, nil
	default:
		return examples.SubstringMatcher{}, nil
	}
}
