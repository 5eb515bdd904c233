// Package jmdict parses the JMdict XML dictionary into raw lexicon records.
// Pure function: file path in, lexicon records out. No database dependencies.
package jmdict

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/heartmarshall/kotoba-enricher/internal/lexicon"
)

// Stats holds parser statistics for logging.
type Stats struct {
	Entries        int
	Entities       int
	ForeignGlosses int
	InheritedPOS   int
}

type xmlEntry struct {
	Seq      int64        `xml:"ent_seq"`
	Kanji    []xmlElement `xml:"k_ele"`
	Readings []xmlReading `xml:"r_ele"`
	Senses   []xmlSense   `xml:"sense"`
}

type xmlElement struct {
	Text     string   `xml:"keb"`
	Priority []string `xml:"ke_pri"`
}

type xmlReading struct {
	Text     string   `xml:"reb"`
	Priority []string `xml:"re_pri"`
}

type xmlSense struct {
	POS   []string   `xml:"pos"`
	Gloss []xmlGloss `xml:"gloss"`
	Misc  []string   `xml:"misc"`
	Field []string   `xml:"field"`
}

type xmlGloss struct {
	Lang string `xml:"lang,attr"`
	Text string `xml:",chardata"`
}

// entityDecl matches one <!ENTITY name "value"> declaration of the DTD.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([\w.-]+)\s+"([^"]*)"\s*>`)

// Parse reads a JMdict XML file and returns one raw record per entry.
func Parse(filePath string) ([]lexicon.RawRecord, Stats, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

// parse streams <entry> elements. Entity references such as &v1; expand to
// the descriptions declared in the document's internal DTD subset.
func parse(r io.Reader) ([]lexicon.RawRecord, Stats, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = make(map[string]string)

	var (
		records []lexicon.RawRecord
		stats   Stats
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("decode token: %w", err)
		}

		switch t := tok.(type) {
		case xml.Directive:
			for _, m := range entityDecl.FindAllStringSubmatch(string(t), -1) {
				dec.Entity[m[1]] = m[2]
				stats.Entities++
			}
		case xml.StartElement:
			if t.Name.Local != "entry" {
				continue
			}
			var e xmlEntry
			if err := dec.DecodeElement(&e, &t); err != nil {
				return nil, stats, fmt.Errorf("decode entry after %d entries: %w", stats.Entries, err)
			}
			stats.Entries++
			records = append(records, toRecord(&e, &stats))
		}
	}
	return records, stats, nil
}

// toRecord converts an XML entry. A sense without part-of-speech tags
// inherits the tags of the preceding sense.
func toRecord(e *xmlEntry, stats *Stats) lexicon.RawRecord {
	rec := lexicon.RawRecord{Seq: e.Seq}
	for _, k := range e.Kanji {
		rec.Kanji = append(rec.Kanji, lexicon.RawElement{Text: k.Text, Priority: k.Priority})
	}
	for _, r := range e.Readings {
		rec.Readings = append(rec.Readings, lexicon.RawElement{Text: r.Text, Priority: r.Priority})
	}

	var prevPOS []string
	for _, s := range e.Senses {
		pos := s.POS
		if len(pos) == 0 && len(prevPOS) > 0 {
			pos = prevPOS
			stats.InheritedPOS++
		}
		prevPOS = pos

		var glosses []string
		for _, g := range s.Gloss {
			if g.Lang != "" && g.Lang != "eng" {
				stats.ForeignGlosses++
				continue
			}
			glosses = append(glosses, g.Text)
		}
		rec.Senses = append(rec.Senses, lexicon.RawSense{
			POS:   pos,
			Gloss: glosses,
			Misc:  s.Misc,
			Field: s.Field,
		})
	}
	return rec
}
