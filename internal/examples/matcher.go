package examples

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Matcher decides whether a sentence contains a word. Prepare is called once
// per sentence and the returned func once per remaining word.
type Matcher interface {
	Prepare(sentence string) func(word string) bool
}

// SubstringMatcher matches words that occur verbatim in the sentence.
type SubstringMatcher struct{}

func (SubstringMatcher) Prepare(sentence string) func(string) bool {
	return func(word string) bool {
		return strings.Contains(sentence, word)
	}
}

// LemmaMatcher also matches words that appear in the sentence only in an
// inflected form, by comparing against the base forms of its morphemes.
type LemmaMatcher struct {
	tok *tokenizer.Tokenizer
}

// NewLemmaMatcher loads the IPA dictionary tokenizer.
func NewLemmaMatcher() (*LemmaMatcher, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("examples.NewLemmaMatcher: %w", err)
	}
	return &LemmaMatcher{tok: t}, nil
}

func (m *LemmaMatcher) Prepare(sentence string) func(string) bool {
	var lemmas map[string]struct{}
	return func(word string) bool {
		if strings.Contains(sentence, word) {
			return true
		}
		if lemmas == nil {
			lemmas = m.lemmas(sentence)
		}
		_, ok := lemmas[word]
		return ok
	}
}

func (m *LemmaMatcher) lemmas(sentence string) map[string]struct{} {
	toks := m.tok.Tokenize(sentence)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		if base, ok := t.BaseForm(); ok && base != "*" {
			set[base] = struct{}{}
		}
	}
	return set
}
