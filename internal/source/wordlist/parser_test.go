package wordlist

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestParse_Sample(t *testing.T) {
	t.Parallel()

	items, levels, stats, err := Parse(testdataPath(t, "jlpt.csv"))
	require.NoError(t, err)

	assert.Equal(t, []Item{
		{Word: "食べる", Reading: "たべる", Level: domain.LevelN5},
		{Word: "勉強", Reading: "べんきょう", Level: domain.LevelN5},
		{Word: "経済", Reading: "けいざい", Level: domain.LevelN3},
		{Word: "ねこ", Reading: "ねこ", Level: domain.LevelN5},
	}, items)
	assert.Equal(t, Stats{Rows: 7, Items: 4, BadLevel: 2, Duplicates: 1}, stats)

	lv, ok := levels.Of("べんきょう")
	require.True(t, ok)
	assert.Equal(t, domain.LevelN5, lv, "easiest listing wins")

	_, ok = levels.Of("曖昧")
	assert.False(t, ok)
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	items, levels, _, err := parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, levels)
}

func TestParseWords(t *testing.T) {
	t.Parallel()

	words, err := ParseWords(testdataPath(t, "words.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{"食べる", "勉強"}, words)
}
