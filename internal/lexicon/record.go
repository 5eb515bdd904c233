// Package lexicon builds the read-only reverse-lookup index over a parsed
// dictionary. The index is constructed once per run and shared by every
// per-word derivation; nothing mutates it after Build returns.
package lexicon

// RawRecord is a dictionary record as produced by a source parser, before
// normalization.
type RawRecord struct {
	Seq      int64
	Kanji    []RawElement
	Readings []RawElement
	Senses   []RawSense
}

// RawElement is a spelling or reading variant with its priority markers.
type RawElement struct {
	Text     string
	Priority []string
}

// RawSense is a sense block as found in the source.
type RawSense struct {
	POS   []string
	Gloss []string
	Misc  []string
	Field []string
}

// BuildStats holds index construction statistics for logging.
type BuildStats struct {
	Records          int
	Indexed          int
	Dropped          int
	Duplicates       int
	MalformedMarkers int
	Characters       int
}
