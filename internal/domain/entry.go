package domain

// Entry is one normalized dictionary record. Entries are owned by the lexicon
// index and referenced by ID everywhere else.
type Entry struct {
	ID        int64
	Spellings []string
	Readings  []string
	Priority  map[string]struct{}
	Senses    []Sense
}

// Sense is one meaning of an entry. The first sense is the primary meaning.
type Sense struct {
	POS     []string `json:"pos,omitempty"`
	Glosses []string `json:"glosses"`
	Misc    []string `json:"misc,omitempty"`
	Field   []string `json:"field,omitempty"`
}

// Primary returns the primary written form: the first spelling, or the
// first reading for kana-only entries.
func (e *Entry) Primary() string {
	if len(e.Spellings) > 0 {
		return e.Spellings[0]
	}
	if len(e.Readings) > 0 {
		return e.Readings[0]
	}
	return ""
}

// PrimaryReading returns the first reading, or "" if there is none.
func (e *Entry) PrimaryReading() string {
	if len(e.Readings) > 0 {
		return e.Readings[0]
	}
	return ""
}

// PrimaryGloss returns the first gloss of the first sense that has one.
func (e *Entry) PrimaryGloss() string {
	for i := range e.Senses {
		if len(e.Senses[i].Glosses) > 0 {
			return e.Senses[i].Glosses[0]
		}
	}
	return ""
}

// POSTags returns the union of part-of-speech tags over all senses,
// in first-seen order.
func (e *Entry) POSTags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for i := range e.Senses {
		for _, p := range e.Senses[i].POS {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			tags = append(tags, p)
		}
	}
	return tags
}

// HasPriority reports whether any frequency/commonness marker is attached.
func (e *Entry) HasPriority() bool {
	return len(e.Priority) > 0
}

// Ideographs returns the ideographs of s in order of appearance, without duplicates.
func Ideographs(s string) []rune {
	var out []rune
	seen := make(map[rune]struct{})
	for _, r := range s {
		if !IsIdeograph(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// IsIdeograph reports whether r is a CJK unified or compatibility ideograph.
func IsIdeograph(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // Extension A
		return true
	case r >= 0x20000 && r <= 0x2EBEF: // Extensions B–F
		return true
	case r >= 0x30000 && r <= 0x323AF: // Extensions G–H
		return true
	case r >= 0xF900 && r <= 0xFAFF: // Compatibility Ideographs
		return true
	case r >= 0x2F800 && r <= 0x2FA1F: // Compatibility Supplement
		return true
	}
	return false
}
