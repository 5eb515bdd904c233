package domain

// Conjugation holds the standard inflected forms of a verb.
type Conjugation struct {
	Class         VerbClass `json:"class"`
	Dictionary    string    `json:"dictionary"`
	PoliteNonPast string    `json:"polite_non_past"`
	Negative      string    `json:"negative"`
	Past          string    `json:"past"`
	Conjunctive   string    `json:"conjunctive"`
	Potential     string    `json:"potential"`
	Passive       string    `json:"passive"`
	Causative     string    `json:"causative"`
}

// PitchAccent is the accent pattern of a reading. Pattern is the mora index
// of the downstep, 0 meaning no downstep.
type PitchAccent struct {
	Pattern int        `json:"pattern"`
	Type    AccentType `json:"type"`
}

// SentencePair is a sentence with its parallel translation.
type SentencePair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// RelatedWord is a vocabulary item sharing kanji with the enriched word.
type RelatedWord struct {
	Word         string `json:"word"`
	Reading      string `json:"reading"`
	PrimaryGloss string `json:"primary_gloss"`
}

// Idiom is an idiomatic entry containing the enriched word.
type Idiom struct {
	Word         string    `json:"word"`
	Reading      string    `json:"reading"`
	PrimaryGloss string    `json:"primary_gloss"`
	Type         IdiomType `json:"type"`
}

// Record is the merged enrichment output for one target word.
type Record struct {
	Word               string         `json:"word"`
	Reading            string         `json:"reading"`
	Level              Level          `json:"level"`
	EntryID            int64          `json:"entry_id"`
	Senses             []Sense        `json:"senses"`
	Conjugation        *Conjugation   `json:"conjugation,omitempty"`
	ReadingConjugation *Conjugation   `json:"reading_conjugation,omitempty"`
	Pitch              *PitchAccent   `json:"pitch,omitempty"`
	Related            []RelatedWord  `json:"related"`
	Idioms             []Idiom        `json:"idioms"`
	Examples           []SentencePair `json:"examples"`
}
