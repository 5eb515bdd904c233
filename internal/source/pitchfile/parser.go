// Package pitchfile parses a JSON pitch-accent file into a pitch dictionary.
// Pure function: file path in, dictionary out. No database dependencies.
//
// The file is one object keyed by reading. A value is either the downstep
// position as a bare integer or an object {"pattern": n, "type": "..."}.
// Keys starting with "_" carry metadata and are skipped.
package pitchfile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/internal/pitch"
)

// Stats holds parser statistics for logging.
type Stats struct {
	Keys     int
	Metadata int
	Invalid  int
	Loaded   int
}

type accentObject struct {
	Pattern *int              `json:"pattern"`
	Type    domain.AccentType `json:"type"`
}

// Parse reads a pitch-accent JSON file.
func Parse(filePath string) (*pitch.Dictionary, Stats, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*pitch.Dictionary, Stats, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Stats{}, fmt.Errorf("unmarshal: %w", err)
	}

	stats := Stats{Keys: len(raw)}
	accents := make(map[string]domain.PitchAccent, len(raw))
	for reading, msg := range raw {
		if strings.HasPrefix(reading, pitch.MetadataPrefix) {
			stats.Metadata++
			continue
		}
		acc, ok := decodeAccent(msg)
		if !ok {
			stats.Invalid++
			continue
		}
		accents[reading] = acc
	}

	d := pitch.New(accents)
	stats.Loaded = d.Len()
	return d, stats, nil
}

func decodeAccent(msg json.RawMessage) (domain.PitchAccent, bool) {
	var n int
	if err := json.Unmarshal(msg, &n); err == nil {
		return domain.PitchAccent{Pattern: n}, n >= 0
	}

	var obj accentObject
	if err := json.Unmarshal(msg, &obj); err != nil || obj.Pattern == nil || *obj.Pattern < 0 {
		return domain.PitchAccent{}, false
	}
	if obj.Type != "" && !obj.Type.IsValid() {
		return domain.PitchAccent{}, false
	}
	return domain.PitchAccent{Pattern: *obj.Pattern, Type: obj.Type}, true
}
