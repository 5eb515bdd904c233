package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a JLPT-style proficiency level. Rank 5 (N5) is the easiest,
// rank 1 (N1) the hardest. The zero value means "unknown".
type Level int

const (
	LevelUnknown Level = 0
	LevelN1      Level = 1
	LevelN2      Level = 2
	LevelN3      Level = 3
	LevelN4      Level = 4
	LevelN5      Level = 5
)

// Rank returns the numeric rank of the level (5 = easiest, 1 = hardest).
func (l Level) Rank() int { return int(l) }

func (l Level) IsValid() bool {
	return l >= LevelN1 && l <= LevelN5
}

// IsBeginner reports whether the level is one of the two easiest ranks.
func (l Level) IsBeginner() bool {
	return l >= LevelN4 && l <= LevelN5
}

// Within reports whether both levels are known and at most band ranks apart.
func (l Level) Within(other Level, band int) bool {
	if !l.IsValid() || !other.IsValid() {
		return false
	}
	d := l.Rank() - other.Rank()
	if d < 0 {
		d = -d
	}
	return d <= band
}

func (l Level) String() string {
	if !l.IsValid() {
		return ""
	}
	return "N" + strconv.Itoa(int(l))
}

// ParseLevel accepts "N3", "n3", "jlpt-n3" or a bare rank "3".
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "jlpt")
	s = strings.TrimLeft(s, "-_ ")
	s = strings.TrimPrefix(s, "n")

	n, err := strconv.Atoi(s)
	if err != nil {
		return LevelUnknown, fmt.Errorf("parse level %q: %w", s, ErrValidation)
	}
	l := Level(n)
	if !l.IsValid() {
		return LevelUnknown, fmt.Errorf("level %d out of range: %w", n, ErrValidation)
	}
	return l, nil
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*l = LevelUnknown
		return nil
	}
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// VerbClass is the inflection class of a verb.
type VerbClass string

const (
	VerbClassIchidan       VerbClass = "ichidan"
	VerbClassGodan         VerbClass = "godan"
	VerbClassGodanSpecial  VerbClass = "godanSpecial"
	VerbClassSuruIrregular VerbClass = "suruIrregular"
	VerbClassKuruIrregular VerbClass = "kuruIrregular"
)

func (c VerbClass) String() string { return string(c) }

func (c VerbClass) IsValid() bool {
	switch c {
	case VerbClassIchidan, VerbClassGodan, VerbClassGodanSpecial,
		VerbClassSuruIrregular, VerbClassKuruIrregular:
		return true
	}
	return false
}

// AccentType names the shape of a Tokyo-dialect pitch accent pattern.
type AccentType string

const (
	AccentHeiban    AccentType = "heiban"
	AccentAtamadaka AccentType = "atamadaka"
	AccentNakadaka  AccentType = "nakadaka"
	AccentOdaka     AccentType = "odaka"
)

func (a AccentType) String() string { return string(a) }

func (a AccentType) IsValid() bool {
	switch a {
	case AccentHeiban, AccentAtamadaka, AccentNakadaka, AccentOdaka:
		return true
	}
	return false
}

// IdiomType classifies an extracted idiomatic entry.
type IdiomType string

const (
	IdiomTypeProverb    IdiomType = "proverb"
	IdiomTypeYojijukugo IdiomType = "yojijukugo"
	IdiomTypeIdiom      IdiomType = "idiom"
	IdiomTypeExpression IdiomType = "expression"
)

func (t IdiomType) String() string { return string(t) }
