// Package pitch provides the load-once reading to pitch-accent dictionary.
package pitch

import (
	"strings"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

// MetadataPrefix marks keys that carry file metadata rather than a reading.
const MetadataPrefix = "_"

// Dictionary maps readings to accent patterns. It is immutable after New and
// safe for concurrent use.
type Dictionary struct {
	accents map[string]domain.PitchAccent
}

// New copies accents into a dictionary, skipping metadata keys and filling in
// the accent type where it is missing.
func New(accents map[string]domain.PitchAccent) *Dictionary {
	d := &Dictionary{accents: make(map[string]domain.PitchAccent, len(accents))}
	for reading, a := range accents {
		if reading == "" || strings.HasPrefix(reading, MetadataPrefix) || a.Pattern < 0 {
			continue
		}
		if a.Type == "" {
			a.Type = DeriveType(reading, a.Pattern)
		}
		d.accents[reading] = a
	}
	return d
}

// Lookup returns the accent of reading. A nil dictionary never matches.
func (d *Dictionary) Lookup(reading string) (domain.PitchAccent, bool) {
	if d == nil {
		return domain.PitchAccent{}, false
	}
	a, ok := d.accents[reading]
	return a, ok
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.accents)
}

// DeriveType classifies a downstep position against the mora count of reading.
func DeriveType(reading string, pattern int) domain.AccentType {
	switch {
	case pattern == 0:
		return domain.AccentHeiban
	case pattern == 1:
		return domain.AccentAtamadaka
	case pattern >= CountMorae(reading):
		return domain.AccentOdaka
	default:
		return domain.AccentNakadaka
	}
}

// smallKana attach to the preceding mora. Sokuon and the long vowel mark
// are full morae and are not listed.
const smallKana = "ゃゅょぁぃぅぇぉゎャュョァィゥェォヮ"

// CountMorae counts the morae of a kana reading.
func CountMorae(reading string) int {
	n := 0
	for _, r := range reading {
		if strings.ContainsRune(smallKana, r) {
			continue
		}
		n++
	}
	return n
}
