package conjugation

import "github.com/heartmarshall/kotoba-enricher/internal/domain"

// classRule matches part-of-speech tags to a verb class. Codes are JMdict
// entity names compared exactly; phrases are entity expansions compared as
// case-insensitive prefixes.
type classRule struct {
	class   domain.VerbClass
	codes   []string
	phrases []string
}

// irregularGodan matches godan subclasses whose forms the godan table cannot
// produce (ある negates to ない, 下さる is polite as 下さいます). Verbs
// carrying one of these tags get no conjugation block.
var irregularGodan = classRule{
	codes:   []string{"v5r-i", "v5aru"},
	phrases: []string{"godan verb - -aru special class", "godan verb with 'ru' ending (irregular verb)"},
}

// classRules is ordered by priority; the first rule matching any tag wins.
var classRules = []classRule{
	{
		class:   domain.VerbClassKuruIrregular,
		codes:   []string{"vk"},
		phrases: []string{"kuru verb"},
	},
	{
		class:   domain.VerbClassSuruIrregular,
		codes:   []string{"vs-i", "vs-s"},
		phrases: []string{"suru verb - included", "suru verb - special class", "suru verb - irregular"},
	},
	{
		class:   domain.VerbClassGodanSpecial,
		codes:   []string{"v5k-s"},
		phrases: []string{"godan verb - iku/yuku special class"},
	},
	{
		class:   domain.VerbClassGodan,
		codes:   []string{"v5u", "v5u-s", "v5k", "v5g", "v5s", "v5t", "v5n", "v5b", "v5m", "v5r"},
		phrases: []string{"godan verb"},
	},
	{
		class:   domain.VerbClassIchidan,
		codes:   []string{"v1", "v1-s"},
		phrases: []string{"ichidan verb"},
	},
}

// godanRow holds the sound-alternation forms of one final kana.
type godanRow struct {
	a, i, e  string // a-, i- and e-stem endings
	past, te string
}

var godanTable = map[string]godanRow{
	"う": {a: "わ", i: "い", e: "え", past: "った", te: "って"},
	"く": {a: "か", i: "き", e: "け", past: "いた", te: "いて"},
	"ぐ": {a: "が", i: "ぎ", e: "げ", past: "いだ", te: "いで"},
	"す": {a: "さ", i: "し", e: "せ", past: "した", te: "して"},
	"つ": {a: "た", i: "ち", e: "て", past: "った", te: "って"},
	"ぬ": {a: "な", i: "に", e: "ね", past: "んだ", te: "んで"},
	"ぶ": {a: "ば", i: "び", e: "べ", past: "んだ", te: "んで"},
	"む": {a: "ま", i: "み", e: "め", past: "んだ", te: "んで"},
	"る": {a: "ら", i: "り", e: "れ", past: "った", te: "って"},
}

// godanSpecialPast overrides past/conjunctive for the Iku/Yuku class.
var godanSpecialPast = godanRow{past: "った", te: "って"}

// suffixes lists the fixed endings appended to a stem, one per form.
type suffixes struct {
	dictionary, polite, negative, past, te, potential, passive, causative string
}

var ichidanSuffixes = suffixes{
	dictionary: "る",
	polite:     "ます",
	negative:   "ない",
	past:       "た",
	te:         "て",
	potential:  "られる",
	passive:    "られる",
	causative:  "させる",
}

var suruSuffixes = suffixes{
	dictionary: "する",
	polite:     "します",
	negative:   "しない",
	past:       "した",
	te:         "して",
	potential:  "できる",
	passive:    "される",
	causative:  "させる",
}

// kuruTables is keyed by the trailing dictionary form the table replaces.
var kuruTables = []struct {
	ending string
	forms  suffixes
}{
	{
		ending: "来る",
		forms: suffixes{
			dictionary: "来る",
			polite:     "来ます",
			negative:   "来ない",
			past:       "来た",
			te:         "来て",
			potential:  "来られる",
			passive:    "来られる",
			causative:  "来させる",
		},
	},
	{
		ending: "くる",
		forms: suffixes{
			dictionary: "くる",
			polite:     "きます",
			negative:   "こない",
			past:       "きた",
			te:         "きて",
			potential:  "こられる",
			passive:    "こられる",
			causative:  "こさせる",
		},
	},
}
