package related

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/internal/lexicon"
	lt "github.com/heartmarshall/kotoba-enricher/internal/lexicon/lexicontest"
)

const noun = "noun (common) (futsuumeishi)"

func kanjiTable() map[rune]domain.KanjiInfo {
	n1 := domain.LevelN1
	return lt.Kanji(
		lt.Grade('日', 1), lt.Grade('本', 1), lt.Grade('曜', 2), lt.Grade('毎', 2),
		lt.Grade('古', 2), lt.Grade('生', 1), lt.Grade('年', 1), lt.Grade('月', 1),
		lt.Grade('記', 2), lt.Grade('食', 2), lt.Grade('事', 3),
		domain.KanjiInfo{Character: '僅', Level: &n1},
	)
}

func singleKanjiFixture() (*lexicon.Index, domain.Levels) {
	idx := lt.Build(
		lt.Record(1, "日", "にち", "day", lt.POS(noun), lt.Priority("ichi1")),
		lt.Record(2, "日本", "にほん", "Japan", lt.POS(noun), lt.Priority("ichi1")),
		lt.Record(3, "毎日", "まいにち", "every day", lt.POS(noun)),
		lt.Record(4, "日曜日", "にちようび", "Sunday", lt.POS(noun)),
		lt.Record(5, "古日", "こじつ", "old day", lt.POS(noun), lt.Misc("archaic")),
		lt.Record(6, "生年月日", "せいねんがっぴ", "date of birth", lt.POS(noun)),
		lt.Record(7, "日鬱", "にちうつ", "gloom", lt.POS(noun)),
		lt.Record(8, "記日", "きじつ", "record day", lt.POS(noun)),
		lt.Record(9, "日記", "にっき", "diary", lt.POS(noun)),
		lt.Record(10, "日々", "ひび", "daily", lt.POS("adverb (fukushi)")),
		lt.Record(11, "日", "ひ", "sun", lt.POS(noun)),
		lt.Record(12, "日本の食事", "にほんのしょくじ", "Japanese meal", lt.POS(noun)),
		lt.Record(13, "日日日日日日日", "ひびびび", "long", lt.POS(noun)),
	)
	levels := domain.Levels{}
	levels.Set(domain.LevelN5, "日", "日本", "毎日", "日曜日", "古日", "生年月日", "日鬱", "日々", "日本の食事", "日日日日日日日")
	levels.Set(domain.LevelN1, "記日")
	return idx, levels
}

func words(out []domain.RelatedWord) []string {
	ws := make([]string, len(out))
	for i, w := range out {
		ws[i] = w.Word
	}
	return ws
}

func TestFind_SingleKanjiSource(t *testing.T) {
	t.Parallel()

	idx, levels := singleKanjiFixture()
	f := NewFinder(idx, kanjiTable(), levels)

	source, ids, err := idx.Source("日")
	require.NoError(t, err)
	require.Equal(t, int64(1), source.ID)

	got := f.Find(source, ids, domain.LevelN5)

	assert.Equal(t, []string{"日本", "毎日", "日曜日", "日々"}, words(got))
	for _, w := range got {
		assert.Contains(t, w.Word, "日")
	}
	assert.Equal(t, domain.RelatedWord{Word: "日本", Reading: "にほん", PrimaryGloss: "Japan"}, got[0])
}

func TestFind_NoiseNeverSurvives(t *testing.T) {
	t.Parallel()

	idx, levels := singleKanjiFixture()
	f := NewFinder(idx, kanjiTable(), levels)
	source, ids, err := idx.Source("日")
	require.NoError(t, err)

	got := words(f.Find(source, ids, domain.LevelN5))

	noisy := map[string]string{
		"古日":      "archaic tag",
		"生年月日":    "four ideographs",
		"日本の食事":   "four ideographs among kana",
		"日鬱":      "ideograph missing from kanji table",
		"日日日日日日日": "longer than six characters",
	}
	for w, reason := range noisy {
		assert.NotContains(t, got, w, reason)
	}
}

func TestFind_SelfExclusion(t *testing.T) {
	t.Parallel()

	idx, levels := singleKanjiFixture()
	f := NewFinder(idx, kanjiTable(), levels)
	source, ids, err := idx.Source("日")
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{1, 11}, ids)

	for _, w := range f.Find(source, ids, domain.LevelN5) {
		assert.NotEqual(t, "日", w.Word)
	}
}

func TestFind_LevelBand(t *testing.T) {
	t.Parallel()

	records := []lexicon.RawRecord{lt.Record(1, "日", "にち", "day", lt.POS(noun))}
	levels := domain.Levels{}
	levels.Set(domain.LevelN3, "日")
	all := []domain.Level{domain.LevelN1, domain.LevelN2, domain.LevelN3, domain.LevelN4, domain.LevelN5}
	for i, lv := range all {
		w := fmt.Sprintf("日%c", []rune("本曜毎記年")[i])
		records = append(records, lt.Record(int64(i+2), w, "よみ", "gloss", lt.POS(noun)))
		levels.Set(lv, w)
	}
	records = append(records, lt.Record(20, "日月", "にちげつ", "sun and moon", lt.POS(noun)))

	idx := lt.Build(records...)
	f := NewFinder(idx, kanjiTable(), levels)
	source, ids, err := idx.Source("日")
	require.NoError(t, err)

	got := f.Find(source, ids, domain.LevelN3)
	require.Len(t, got, 3)
	for _, w := range got {
		lv, ok := levels.Of(w.Word)
		require.True(t, ok, "related word %s must have a known level", w.Word)
		assert.True(t, lv.Within(domain.LevelN3, 1), "%s at %s is outside the band", w.Word, lv)
	}
	assert.NotContains(t, words(got), "日月")
}

func TestFind_NonPositiveScoreDropped(t *testing.T) {
	t.Parallel()

	idx := lt.Build(
		lt.Record(1, "日", "にち", "day", lt.POS(noun)),
		lt.Record(2, "日本", "にほん", "Japan", lt.POS("adverb (fukushi)")),
	)
	levels := domain.Levels{}
	levels.Set(domain.LevelN5, "日")
	levels.Set(domain.LevelN4, "日本")

	f := NewFinder(idx, kanjiTable(), levels)
	source, ids, err := idx.Source("日")
	require.NoError(t, err)

	assert.Empty(t, f.Find(source, ids, domain.LevelN5))
}

func TestFind_FrequencyBreaksScoreTies(t *testing.T) {
	t.Parallel()

	idx := lt.Build(
		lt.Record(1, "日", "にち", "day", lt.POS(noun)),
		lt.Record(30, "日曜", "にちよう", "Sunday", lt.POS(noun)),
		lt.Record(31, "日本", "にほん", "Japan", lt.POS(noun), lt.Priority("nf10")),
		lt.Record(32, "毎日", "まいにち", "every day", lt.POS(noun), lt.Priority("nf02")),
	)
	levels := domain.Levels{}
	levels.Set(domain.LevelN5, "日", "日曜", "日本", "毎日")

	f := NewFinder(idx, kanjiTable(), levels)
	source, ids, err := idx.Source("日")
	require.NoError(t, err)

	assert.Equal(t, []string{"毎日", "日本", "日曜"}, words(f.Find(source, ids, domain.LevelN5)))
}

func TestFind_OutputCap(t *testing.T) {
	t.Parallel()

	second := []rune("本曜毎記年月生古食事")
	records := []lexicon.RawRecord{lt.Record(1, "日", "にち", "day", lt.POS(noun))}
	levels := domain.Levels{}
	levels.Set(domain.LevelN5, "日")
	for i, c := range second {
		w := "日" + string(c)
		records = append(records, lt.Record(int64(i+2), w, strings.Repeat("よ", i+1), "gloss", lt.POS(noun)))
		levels.Set(domain.LevelN5, w)
	}

	idx := lt.Build(records...)
	f := NewFinder(idx, kanjiTable(), levels)
	source, ids, err := idx.Source("日")
	require.NoError(t, err)

	assert.Len(t, f.Find(source, ids, domain.LevelN5), outputLimit)
}

func TestFind_UnlistedHomophoneDropped(t *testing.T) {
	t.Parallel()

	idx := lt.Build(
		lt.Record(1, "神社", "じんじゃ", "shrine", lt.POS(noun)),
		lt.Record(2, "紙", "かみ", "paper", lt.POS(noun)),
		lt.Record(3, "神", "かみ", "god", lt.POS(noun)),
		lt.Record(4, "神話", "しんわ", "myth", lt.POS(noun)),
	)
	levels := domain.Levels{}
	levels.Set(domain.LevelN5, "紙", "かみ")
	levels.Set(domain.LevelN4, "神社", "じんじゃ")
	levels.Set(domain.LevelN4, "神話", "しんわ")

	kanji := lt.Kanji(lt.Grade('神', 3), lt.Grade('社', 2), lt.Grade('紙', 2), lt.Grade('話', 2))
	f := NewFinder(idx, kanji, levels)
	source, ids, err := idx.Source("神社")
	require.NoError(t, err)

	got := words(f.Find(source, ids, domain.LevelN4))
	assert.Equal(t, []string{"神話"}, got)
	assert.NotContains(t, got, "神", "神 is not listed and must not borrow the level of 紙")
}

func TestFind_FrequencyProximityBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		source     []string
		nihon, mai []string
		want       []string
	}{
		{
			// 日本 (rank 21000) sits near the source (20000); 毎日 (1000) is
			// more common but far away, so proximity outweighs the tie-break.
			name:   "near rank beats more common rank",
			source: []string{"nf40"},
			nihon:  []string{"nf42"},
			mai:    []string{"nf02"},
			want:   []string{"日本", "毎日"},
		},
		{
			name:   "no bonus when source is unranked",
			source: nil,
			nihon:  []string{"nf42"},
			mai:    []string{"nf02"},
			want:   []string{"毎日", "日本"},
		},
		{
			// An unranked candidate never counts as close to a common source.
			name:   "no bonus when candidate is unranked",
			source: []string{"nf02"},
			nihon:  nil,
			mai:    []string{"nf30"},
			want:   []string{"毎日", "日本"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			idx := lt.Build(
				lt.Record(1, "日", "にち", "day", lt.POS(noun), lt.Priority(tt.source...)),
				lt.Record(2, "日本", "にほん", "Japan", lt.POS(noun), lt.Priority(tt.nihon...)),
				lt.Record(3, "毎日", "まいにち", "every day", lt.POS(noun), lt.Priority(tt.mai...)),
			)
			levels := domain.Levels{}
			levels.Set(domain.LevelN5, "日", "日本", "毎日")

			f := NewFinder(idx, kanjiTable(), levels)
			source, ids, err := idx.Source("日")
			require.NoError(t, err)

			assert.Equal(t, tt.want, words(f.Find(source, ids, domain.LevelN5)))
		})
	}
}
