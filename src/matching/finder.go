package matching

import (
	"context"
	"log"
	"sort"

	"github.com/kltransit/lostfound/src/shared/apperr"
	"github.com/kltransit/lostfound/src/shared/models"
	"github.com/kltransit/lostfound/src/shared/storage"
)

// candidateLimit bounds the storage query; the store offers no cheap full
// scan.
const candidateLimit = 50

// MatchResult pairs a candidate item with its score and presentation hints.
// Results are ephemeral and never persisted.
type MatchResult struct {
	Item    models.Item `json:"item"`
	Score   int         `json:"score"`
	Reasons []string    `json:"reasons"`
}

// Finder proposes ranked matches for an item. It has no write effects.
type Finder struct {
	store storage.Store
}

func NewFinder(store storage.Store) *Finder {
	return &Finder{store: store}
}

// FindMatches returns candidates for the item scored at or above
// MinMatchScore, highest first. Ties keep the storage query order.
//
// Matching is advisory: a storage failure degrades to an empty result with
// a logged error instead of blocking the caller. A missing target item is
// still reported as not found.
func (f *Finder) FindMatches(ctx context.Context, itemID string) ([]MatchResult, error) {
	target, err := f.store.GetItemByID(ctx, itemID)
	if err != nil {
		if apperr.IsStorage(err) {
			log.Printf("match finder: get item %s: %v", itemID, err)
			return []MatchResult{}, nil
		}
		return nil, err
	}

	candidateType := target.Type.Opposite()
	candidates, err := f.store.GetItems(ctx, storage.ItemFilter{
		Type:     candidateType,
		Category: target.Category,
		Status:   models.MatchEligibleStatus(candidateType),
		Limit:    candidateLimit,
	})
	if err != nil {
		log.Printf("match finder: list candidates for %s: %v", itemID, err)
		return []MatchResult{}, nil
	}

	results := make([]MatchResult, 0, len(candidates))
	for i := range candidates {
		b := ScoreDetail(target, &candidates[i])
		score := b.Total()
		if score < MinMatchScore {
			continue
		}
		results = append(results, MatchResult{
			Item:    candidates[i],
			Score:   score,
			Reasons: reasons(b),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// reasons derives presentation tags from the terms that fired.
func reasons(b Breakdown) []string {
	var out []string
	if b.Station > 0 {
		out = append(out, "Same Station")
	}
	if b.Mode > 0 {
		out = append(out, "Same Transit Mode")
	}
	switch score := b.Total(); {
	case score >= highMatchScore:
		out = append(out, "High Keyword Match")
	case score >= partialScoreFrom:
		out = append(out, "Partial Keyword Match")
	}
	return out
}
