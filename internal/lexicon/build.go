package lexicon

import (
	"slices"
	"strings"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

// Build normalizes raw records and constructs the lookup tables.
// Records with neither spellings nor readings, and records whose id was
// already seen, are dropped and counted in the returned stats.
func Build(records []RawRecord) (*Index, BuildStats) {
	stats := BuildStats{Records: len(records)}

	idx := &Index{
		entries:  make(map[int64]*domain.Entry, len(records)),
		order:    make([]int64, 0, len(records)),
		spelling: make(map[string][]int64, len(records)),
		reading:  make(map[string][]int64, len(records)),
		chars:    make(map[rune][]int64),
	}
	charSets := make(map[rune]map[int64]struct{})

	for i := range records {
		rec := &records[i]

		if _, dup := idx.entries[rec.Seq]; dup {
			stats.Duplicates++
			continue
		}

		entry, malformed := normalize(rec)
		stats.MalformedMarkers += malformed
		if len(entry.Spellings) == 0 && len(entry.Readings) == 0 {
			stats.Dropped++
			continue
		}

		idx.entries[entry.ID] = entry
		idx.order = append(idx.order, entry.ID)

		for _, s := range entry.Spellings {
			idx.spelling[s] = append(idx.spelling[s], entry.ID)
			for _, r := range s {
				if !domain.IsIdeograph(r) {
					continue
				}
				set, ok := charSets[r]
				if !ok {
					set = make(map[int64]struct{})
					charSets[r] = set
				}
				set[entry.ID] = struct{}{}
			}
		}
		for _, r := range entry.Readings {
			idx.reading[r] = append(idx.reading[r], entry.ID)
		}
		stats.Indexed++
	}

	for r, set := range charSets {
		ids := make([]int64, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		idx.chars[r] = ids
	}
	stats.Characters = len(idx.chars)

	return idx, stats
}

// normalize converts a raw record into an Entry. It returns the number of
// priority markers that were ignored as malformed.
func normalize(rec *RawRecord) (*domain.Entry, int) {
	entry := &domain.Entry{
		ID:       rec.Seq,
		Priority: make(map[string]struct{}),
	}
	malformed := 0

	addPriority := func(markers []string) {
		for _, m := range markers {
			m = strings.TrimSpace(m)
			if !domain.ValidPriority(m) {
				malformed++
				continue
			}
			entry.Priority[m] = struct{}{}
		}
	}

	for _, k := range rec.Kanji {
		text := domain.NormalizeText(k.Text)
		if text != "" && !slices.Contains(entry.Spellings, text) {
			entry.Spellings = append(entry.Spellings, text)
		}
		addPriority(k.Priority)
	}
	for _, r := range rec.Readings {
		text := domain.NormalizeText(r.Text)
		if text != "" && !slices.Contains(entry.Readings, text) {
			entry.Readings = append(entry.Readings, text)
		}
		addPriority(r.Priority)
	}

	for _, rs := range rec.Senses {
		s := domain.Sense{
			POS:     nonEmpty(rs.POS),
			Glosses: nonEmpty(rs.Gloss),
			Misc:    nonEmpty(rs.Misc),
			Field:   nonEmpty(rs.Field),
		}
		if len(s.Glosses) == 0 {
			continue
		}
		entry.Senses = append(entry.Senses, s)
	}

	return entry, malformed
}

func nonEmpty(ss []string) []string {
	var out []string
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
