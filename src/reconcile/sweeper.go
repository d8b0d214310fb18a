// Package reconcile repairs the gap left by the non-transactional approve
// path: a claim can be approved while the item write failed, leaving the
// item unresolved. The sweeper periodically compares approved claims
// against their items and resolves stragglers.
package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/kltransit/lostfound/src/shared/apperr"
	"github.com/kltransit/lostfound/src/shared/models"
	"github.com/kltransit/lostfound/src/shared/storage"
)

type Sweeper struct {
	store    storage.Store
	interval time.Duration
}

func New(store storage.Store, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, interval: interval}
}

// Start runs the sweep loop until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("Starting claim/item consistency sweeper (every %s)", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping consistency sweeper")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				log.Printf("consistency sweep: %v", err)
			}
		}
	}
}

// Sweep resolves items whose claims are approved but whose own status never
// made it to resolved. Each repair is logged for operators: it means an
// approve call previously failed halfway.
func (s *Sweeper) Sweep(ctx context.Context) error {
	approved, err := s.store.GetClaims(ctx, storage.ClaimFilter{Status: models.ClaimStatusApproved})
	if err != nil {
		return err
	}

	for i := range approved {
		claim := &approved[i]
		item, err := s.store.GetItemByID(ctx, claim.ItemID)
		if err != nil {
			if apperr.IsNotFound(err) {
				log.Printf("OPERATOR ALERT: approved claim %s references missing item %s",
					claim.ID, claim.ItemID)
				continue
			}
			return err
		}
		if item.Status == models.ItemStatusResolved {
			continue
		}
		log.Printf("OPERATOR ALERT: item %s is %s but claim %s is approved; resolving",
			item.ID, item.Status, claim.ID)
		if err := s.store.UpdateItemStatus(ctx, item.ID, models.ItemStatusResolved); err != nil {
			log.Printf("repair item %s: %v", item.ID, err)
		}
	}
	return nil
}
