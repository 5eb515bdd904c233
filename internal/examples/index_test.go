package examples

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

func pair(source string) domain.SentencePair {
	return domain.SentencePair{Source: source, Target: "tr: " + source}
}

// countingMatcher records how often each word was checked.
type countingMatcher struct {
	checks map[string]int
}

func (m *countingMatcher) Prepare(sentence string) func(string) bool {
	return func(word string) bool {
		m.checks[word]++
		return strings.Contains(sentence, word)
	}
}

func TestIndex_CapsAndPreservesOrder(t *testing.T) {
	t.Parallel()

	var corpus []domain.SentencePair
	for i := range 10 {
		corpus = append(corpus, pair(fmt.Sprintf("猫が%d匹いる。", i)))
	}
	corpus = append(corpus, pair("犬がいる。"))

	got := Index(corpus, []string{"猫", "犬", "鳥"}, nil)

	require.Len(t, got["猫"], CandidateCap)
	assert.Equal(t, corpus[:CandidateCap], got["猫"])
	assert.Equal(t, []domain.SentencePair{pair("犬がいる。")}, got["犬"])
	assert.NotContains(t, got, "鳥")
}

func TestIndex_RetiredWordsAreNotChecked(t *testing.T) {
	t.Parallel()

	var corpus []domain.SentencePair
	for range 20 {
		corpus = append(corpus, pair("猫と犬"))
	}
	m := &countingMatcher{checks: map[string]int{}}

	got := Index(corpus, []string{"猫", "猫", " 犬 ", ""}, m)

	assert.Len(t, got["猫"], CandidateCap)
	assert.Len(t, got["犬"], CandidateCap)
	assert.Equal(t, CandidateCap, m.checks["猫"])
	assert.Equal(t, CandidateCap, m.checks["犬"])
}

func TestSubstringMatcher(t *testing.T) {
	t.Parallel()

	match := SubstringMatcher{}.Prepare("毎日日本語を勉強します。")
	assert.True(t, match("日本語"))
	assert.True(t, match("勉強"))
	assert.False(t, match("勉強する"))
}

func TestLemmaMatcher_MatchesInflectedForms(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the IPA dictionary")
	}
	t.Parallel()

	m, err := NewLemmaMatcher()
	require.NoError(t, err)

	match := m.Prepare("昨日は寿司を食べました。")
	assert.True(t, match("寿司"))
	assert.True(t, match("食べる"))
	assert.False(t, match("飲む"))

	got := Index([]domain.SentencePair{pair("昨日は寿司を食べました。")}, []string{"食べる"}, m)
	assert.Len(t, got["食べる"], 1)
}
