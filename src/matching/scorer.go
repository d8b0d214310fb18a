// Package matching scores candidate items against a target and proposes
// ranked matches. Scoring is pure; the finder is the only part that touches
// storage, and it is read-only.
package matching

import (
	"strings"

	"github.com/kltransit/lostfound/src/shared/models"
)

// Scoring weights. Category dominates because candidates are pre-filtered
// on it; the remaining terms discriminate within a category.
const (
	categoryWeight   = 40
	stationWeight    = 30
	modeWeight       = 10
	keywordWeight    = 5
	keywordCap       = 20
	MinMatchScore    = 30
	highMatchScore   = 60
	partialScoreFrom = 40
)

// Breakdown records how much each term contributed to a score.
type Breakdown struct {
	Category int
	Station  int
	Mode     int
	Keywords int
}

func (b Breakdown) Total() int {
	return b.Category + b.Station + b.Mode + b.Keywords
}

// Score returns the compatibility of two items in [0, 100].
func Score(target, candidate *models.Item) int {
	return ScoreDetail(target, candidate).Total()
}

// ScoreDetail scores the candidate against the target, term by term.
// Missing fields contribute zero rather than erroring.
func ScoreDetail(target, candidate *models.Item) Breakdown {
	var b Breakdown

	if target.Category != "" && target.Category == candidate.Category {
		b.Category = categoryWeight
	}

	ts := normalize(target.StationID)
	cs := normalize(candidate.StationID)
	if ts != "" && cs != "" {
		// Substring containment tolerates partial or alias station names.
		if ts == cs || strings.Contains(ts, cs) || strings.Contains(cs, ts) {
			b.Station = stationWeight
		}
	}

	if target.Mode != "" && target.Mode == candidate.Mode {
		b.Mode = modeWeight
	}

	for _, kw := range target.Keywords {
		if keywordMatches(kw, candidate.Keywords) {
			b.Keywords += keywordWeight
			if b.Keywords >= keywordCap {
				b.Keywords = keywordCap
				break
			}
		}
	}

	return b
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func keywordMatches(kw string, candidates models.StringList) bool {
	kw = normalize(kw)
	if kw == "" {
		return false
	}
	for _, c := range candidates {
		c = normalize(c)
		if c == "" {
			continue
		}
		if c == kw || strings.Contains(c, kw) || strings.Contains(kw, c) {
			return true
		}
	}
	return false
}
