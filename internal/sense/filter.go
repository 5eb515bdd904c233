// Package sense filters an entry's sense list down to what is appropriate
// for a learner at a given proficiency level.
package sense

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

const (
	beginnerCap = 5
	midCap      = 8
	advancedCap = 12
)

// deniedMisc are matched as case-insensitive substrings of misc tags.
var deniedMisc = []string{
	"vulgar",
	"crude",
	"obscene",
	"derogatory",
	"archaic",
	"obsolete",
}

// sensitiveGloss is applied to the joined gloss text of a sense for
// beginner levels only.
var sensitiveGloss = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsex(ual|ually|y)?\b`),
	regexp.MustCompile(`(?i)\b(intercourse|copulat\w*|coitus|orgasm\w*|ejaculat\w*)\b`),
	regexp.MustCompile(`(?i)\b(penis|vagina|genital\w*|testicle\w*|breasts?|nipples?)\b`),
	regexp.MustCompile(`(?i)\b(prostitut\w*|brothel\w*|porn\w*|erotic\w*|masturbat\w*|fetish\w*)\b`),
	regexp.MustCompile(`(?i)\b(drugs?|narcotic\w*|cocaine|heroin|marijuana|cannabis|stimulant\w*|methamphetamine)\b`),
	regexp.MustCompile(`(?i)\b(suicide|kill(ing)? (oneself|himself|herself))\b`),
}

// Filter returns the senses suitable for level, in their original order.
// An empty result means the word is unusable at this level.
func Filter(senses []domain.Sense, level domain.Level) []domain.Sense {
	limit := Cap(level)
	out := make([]domain.Sense, 0, min(len(senses), limit))

	for i := range senses {
		s := &senses[i]
		if hasDeniedMisc(s.Misc) {
			continue
		}
		if level.IsBeginner() && isSensitive(s.Glosses) {
			continue
		}
		out = append(out, *s)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Cap returns the maximum number of senses kept at level.
func Cap(level domain.Level) int {
	switch {
	case level.IsBeginner():
		return beginnerCap
	case level == domain.LevelN3:
		return midCap
	default:
		return advancedCap
	}
}

// HasMiscTag reports whether any tag contains one of needles, ignoring case.
func HasMiscTag(tags []string, needles ...string) bool {
	for _, t := range tags {
		lt := strings.ToLower(t)
		for _, n := range needles {
			if strings.Contains(lt, n) {
				return true
			}
		}
	}
	return false
}

func hasDeniedMisc(tags []string) bool {
	return HasMiscTag(tags, deniedMisc...)
}

func isSensitive(glosses []string) bool {
	text := strings.Join(glosses, "; ")
	for _, re := range sensitiveGloss {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
