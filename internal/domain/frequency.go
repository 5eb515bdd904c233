package domain

import (
	"strconv"
	"strings"
)

const (
	// nfBucketSize is the width of one nfXX frequency bucket in ranks.
	nfBucketSize = 500
	maxNFBucket  = 48

	rankTier1 = 12000
	rankTier2 = 24000
)

var tierMarkers = map[string]int{
	"news1": rankTier1, "ichi1": rankTier1, "spec1": rankTier1, "gai1": rankTier1,
	"news2": rankTier2, "ichi2": rankTier2, "spec2": rankTier2, "gai2": rankTier2,
}

// ValidPriority reports whether marker is a well-formed JMdict priority marker.
func ValidPriority(marker string) bool {
	_, ok := markerRank(marker)
	return ok
}

func markerRank(marker string) (int, bool) {
	if r, ok := tierMarkers[marker]; ok {
		return r, true
	}
	if !strings.HasPrefix(marker, "nf") || len(marker) != 4 {
		return 0, false
	}
	n, err := strconv.Atoi(marker[2:])
	if err != nil || n < 1 || n > maxNFBucket {
		return 0, false
	}
	return n * nfBucketSize, true
}

// FrequencyRank derives an approximate frequency rank from priority markers.
// Lower is more common. The second result is false when no marker is usable.
func FrequencyRank(e *Entry) (int, bool) {
	best, found := 0, false
	for m := range e.Priority {
		r, ok := markerRank(m)
		if !ok {
			continue
		}
		if !found || r < best {
			best, found = r, true
		}
	}
	return best, found
}
