package domain

// Levels maps a written form or reading to its proficiency level.
type Levels map[string]Level

// Set records level for every non-empty key. An existing easier level is
// kept so that a word listed twice resolves to its first-taught rank.
func (l Levels) Set(level Level, keys ...string) {
	for _, k := range keys {
		k = NormalizeText(k)
		if k == "" {
			continue
		}
		if cur, ok := l[k]; ok && cur >= level {
			continue
		}
		l[k] = level
	}
}

// Of returns the level of a single word.
func (l Levels) Of(word string) (Level, bool) {
	lv, ok := l[NormalizeText(word)]
	return lv, ok && lv.IsValid()
}

// LevelOf classifies an entry by its spellings. Readings are consulted only
// for kana-only entries; a kanji spelling never borrows the level of a
// listed homophone.
func (l Levels) LevelOf(e *Entry) (Level, bool) {
	if len(e.Spellings) > 0 {
		for _, s := range e.Spellings {
			if lv, ok := l.Of(s); ok {
				return lv, true
			}
		}
		return LevelUnknown, false
	}
	for _, r := range e.Readings {
		if lv, ok := l.Of(r); ok {
			return lv, true
		}
	}
	return LevelUnknown, false
}
