package domain

import (
	"strings"
)

// NormalizeText prepares a headword or word-list key for lookup:
//   - trims leading/trailing whitespace
//   - converts Latin letters to lowercase
//   - compresses runs of ASCII and ideographic spaces into one ASCII space
//
// Kana and kanji are left untouched.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' || r == '　' {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
