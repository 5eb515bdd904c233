// Package kanjidic parses the KANJIDIC2 XML kanji database into kanji metadata.
// Pure function: file path in, domain structs out. No database dependencies.
package kanjidic

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

// Stats holds parser statistics for logging.
type Stats struct {
	Characters int
	Graded     int
	Leveled    int
	Skipped    int
}

type xmlCharacter struct {
	Literal string  `xml:"literal"`
	Misc    xmlMisc `xml:"misc"`
	Groups  []struct {
		Readings []xmlReading `xml:"reading"`
		Meanings []xmlMeaning `xml:"meaning"`
	} `xml:"reading_meaning>rmgroup"`
}

type xmlMisc struct {
	Grade       int   `xml:"grade"`
	StrokeCount []int `xml:"stroke_count"`
	JLPT        int   `xml:"jlpt"`
}

type xmlReading struct {
	Type string `xml:"r_type,attr"`
	Text string `xml:",chardata"`
}

type xmlMeaning struct {
	Lang string `xml:"m_lang,attr"`
	Text string `xml:",chardata"`
}

// oldJLPT maps the four-level test levels recorded by KANJIDIC2 onto the
// current five-level scale. Old level 2 covered both N2 and N3 and is
// mapped to the harder rank.
var oldJLPT = map[int]domain.Level{
	4: domain.LevelN5,
	3: domain.LevelN4,
	2: domain.LevelN2,
	1: domain.LevelN1,
}

// Parse reads a KANJIDIC2 XML file and returns metadata keyed by character.
func Parse(filePath string) (map[rune]domain.KanjiInfo, Stats, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (map[rune]domain.KanjiInfo, Stats, error) {
	dec := xml.NewDecoder(r)
	out := make(map[rune]domain.KanjiInfo)
	var stats Stats

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("decode token: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "character" {
			continue
		}

		var c xmlCharacter
		if err := dec.DecodeElement(&c, &start); err != nil {
			return nil, stats, fmt.Errorf("decode character after %d: %w", stats.Characters, err)
		}
		info, ok := toInfo(&c)
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Characters++
		if info.Grade != nil {
			stats.Graded++
		}
		if info.Level != nil {
			stats.Leveled++
		}
		out[info.Character] = info
	}
	return out, stats, nil
}

func toInfo(c *xmlCharacter) (domain.KanjiInfo, bool) {
	r, size := utf8.DecodeRuneInString(c.Literal)
	if r == utf8.RuneError || size != len(c.Literal) {
		return domain.KanjiInfo{}, false
	}

	info := domain.KanjiInfo{Character: r}
	if c.Misc.Grade > 0 {
		g := c.Misc.Grade
		info.Grade = &g
	}
	if len(c.Misc.StrokeCount) > 0 {
		info.StrokeCount = c.Misc.StrokeCount[0]
	}
	if lv, ok := oldJLPT[c.Misc.JLPT]; ok {
		info.Level = &lv
	}

	for _, g := range c.Groups {
		for _, rd := range g.Readings {
			switch rd.Type {
			case "ja_on":
				info.OnReadings = append(info.OnReadings, rd.Text)
			case "ja_kun":
				info.KunReadings = append(info.KunReadings, rd.Text)
			}
		}
		for _, m := range g.Meanings {
			if m.Lang == "" || m.Lang == "en" {
				info.Glosses = append(info.Glosses, m.Text)
			}
		}
	}
	return info, true
}
