package domain

// KanjiInfo is the metadata of a single ideograph. A nil Grade or Level
// means the value is unknown.
type KanjiInfo struct {
	Character   rune
	Glosses     []string
	OnReadings  []string
	KunReadings []string
	StrokeCount int
	Grade       *int
	Level       *Level
}

// IsGraded reports whether the kanji has a school grade or a proficiency level.
func (k *KanjiInfo) IsGraded() bool {
	return k.Grade != nil || (k.Level != nil && k.Level.IsValid())
}
