// Package conjugation classifies verbs by inflection class and derives their
// standard inflected forms from static rule tables.
package conjugation

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

// Classify returns the verb class of the first part-of-speech tag that
// matches a rule, checking rules in priority order. The second result is
// false when the tags describe no verb or an irregular godan subclass.
func Classify(posTags []string) (domain.VerbClass, bool) {
	for _, tag := range posTags {
		if irregularGodan.matches(tag) {
			return "", false
		}
	}
	for _, rule := range classRules {
		for _, tag := range posTags {
			if rule.matches(tag) {
				return rule.class, true
			}
		}
	}
	return "", false
}

func (r classRule) matches(tag string) bool {
	tag = strings.TrimSpace(tag)
	if slices.Contains(r.codes, tag) {
		return true
	}
	lt := strings.ToLower(tag)
	for _, p := range r.phrases {
		if strings.HasPrefix(lt, p) {
			return true
		}
	}
	return false
}

// Conjugate classifies posTags and generates the forms of dictionaryForm.
func Conjugate(dictionaryForm string, posTags []string) (*domain.Conjugation, bool) {
	class, ok := Classify(posTags)
	if !ok {
		return nil, false
	}
	return Generate(dictionaryForm, class)
}

// Generate derives the inflected forms of dictionaryForm for class. It returns
// false when the form does not fit the class tables.
func Generate(dictionaryForm string, class domain.VerbClass) (*domain.Conjugation, bool) {
	if dictionaryForm == "" {
		return nil, false
	}

	switch class {
	case domain.VerbClassIchidan:
		stem, ok := strings.CutSuffix(dictionaryForm, "る")
		if !ok || stem == "" {
			return nil, false
		}
		return withSuffixes(class, stem, ichidanSuffixes), true

	case domain.VerbClassGodan, domain.VerbClassGodanSpecial:
		return godan(dictionaryForm, class)

	case domain.VerbClassSuruIrregular:
		prefix, ok := strings.CutSuffix(dictionaryForm, "する")
		if !ok {
			prefix = strings.TrimSuffix(dictionaryForm, "為る")
		}
		return withSuffixes(class, prefix, suruSuffixes), true

	case domain.VerbClassKuruIrregular:
		for _, t := range kuruTables {
			if prefix, ok := strings.CutSuffix(dictionaryForm, t.ending); ok {
				return withSuffixes(class, prefix, t.forms), true
			}
		}
		return nil, false
	}
	return nil, false
}

func godan(form string, class domain.VerbClass) (*domain.Conjugation, bool) {
	last, size := utf8.DecodeLastRuneInString(form)
	row, ok := godanTable[string(last)]
	if !ok {
		return nil, false
	}
	if class == domain.VerbClassGodanSpecial {
		row.past, row.te = godanSpecialPast.past, godanSpecialPast.te
	}
	stem := form[:len(form)-size]

	return &domain.Conjugation{
		Class:         class,
		Dictionary:    form,
		PoliteNonPast: stem + row.i + "ます",
		Negative:      stem + row.a + "ない",
		Past:          stem + row.past,
		Conjunctive:   stem + row.te,
		Potential:     stem + row.e + "る",
		Passive:       stem + row.a + "れる",
		Causative:     stem + row.a + "せる",
	}, true
}

func withSuffixes(class domain.VerbClass, stem string, s suffixes) *domain.Conjugation {
	return &domain.Conjugation{
		Class:         class,
		Dictionary:    stem + s.dictionary,
		PoliteNonPast: stem + s.polite,
		Negative:      stem + s.negative,
		Past:          stem + s.past,
		Conjunctive:   stem + s.te,
		Potential:     stem + s.potential,
		Passive:       stem + s.passive,
		Causative:     stem + s.causative,
	}
}
