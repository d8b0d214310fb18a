// Package claims owns the claim lifecycle state machine. It is the single
// point where item availability, claim status and ticket/notification side
// effects are kept consistent.
package claims

import (
	"context"
	"encoding/json"
	"log"

	"github.com/kltransit/lostfound/src/notify"
	"github.com/kltransit/lostfound/src/shared/apperr"
	"github.com/kltransit/lostfound/src/shared/models"
	"github.com/kltransit/lostfound/src/shared/storage"
)

// ItemLocker serializes claim submissions per item id. Lock returns a
// release func and whether the lock was acquired; a held lock means another
// submission for the same item is in flight.
type ItemLocker interface {
	Lock(ctx context.Context, itemID string) (release func(), acquired bool, err error)
}

// EventPublisher pushes lifecycle events onto the staff event stream.
// Publishing is fire-and-forget; failures are logged, never fatal.
type EventPublisher interface {
	Publish(ctx context.Context, event map[string]interface{}) error
}

// Manager advances claims through the review state machine.
//
// Approve performs two sequential writes (claim, then item) with no
// cross-record transaction: a failure between them leaves the pair
// inconsistent until the reconciliation sweep repairs it.
type Manager struct {
	store  storage.Store
	locker ItemLocker
	events EventPublisher
}

func NewManager(store storage.Store, locker ItemLocker, events EventPublisher) *Manager {
	return &Manager{store: store, locker: locker, events: events}
}

// Submit opens a claim for an item and creates its verification ticket.
// The item must be a listed found item with no other active claim; the
// check runs under the per-item lock so two concurrent submissions cannot
// both pass it. Item status is left unchanged: an unreviewed claim should
// not hide the item before triage.
func (m *Manager) Submit(ctx context.Context, itemID, userID string, evidence []string) (*models.ClaimRequest, error) {
	release, acquired, err := m.locker.Lock(ctx, itemID)
	if err != nil {
		return nil, apperr.Storage(err, "lock item %s", itemID)
	}
	if !acquired {
		return nil, apperr.InvalidState("item %s has a submission in progress", itemID)
	}
	defer release()

	item, err := m.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	existing, err := m.store.GetClaims(ctx, storage.ClaimFilter{ItemID: itemID})
	if err != nil {
		return nil, err
	}

	if err := decideSubmit(item, existing); err != nil {
		return nil, err
	}

	claim := &models.ClaimRequest{
		ItemID:   itemID,
		UserID:   userID,
		Evidence: evidence,
		Status:   models.ClaimStatusSubmitted,
	}
	if err := m.store.CreateClaim(ctx, claim); err != nil {
		return nil, err
	}

	snapshot, _ := json.Marshal(map[string]string{
		"itemTitle": item.Title,
		"category":  item.Category,
		"stationId": item.StationID,
	})
	ticket := &models.Ticket{
		ContextType: models.TicketContextClaimInquiry,
		ItemID:      item.ID,
		ClaimID:     claim.ID,
		Subject:     "Claim verification: " + item.Title,
		Snapshot:    string(snapshot),
	}
	if err := m.store.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	m.publish(ctx, map[string]interface{}{
		"event":   "claim.submitted",
		"claimId": claim.ID,
		"itemId":  item.ID,
		"userId":  userID,
		"title":   item.Title,
	})
	return claim, nil
}

// Approve marks the claim approved and the item resolved. Approval is the
// binding decision point; physical handover happens outside the system.
//
// The two writes are sequential and not rolled back on partial failure.
// If the item write fails after the claim write succeeded the pair is left
// inconsistent and surfaced to the operator log; the reconciliation sweep
// repairs it.
func (m *Manager) Approve(ctx context.Context, claimID, adminID, itemID string) error {
	claim, err := m.store.GetClaimByID(ctx, claimID)
	if err != nil {
		return err
	}
	if err := decideApprove(claim); err != nil {
		return err
	}
	item, err := m.store.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	if err := m.store.UpdateClaimStatus(ctx, claimID, models.ClaimStatusApproved, ""); err != nil {
		return err
	}
	if err := m.store.UpdateItemStatus(ctx, itemID, models.ItemStatusResolved); err != nil {
		log.Printf("OPERATOR ALERT: claim %s approved but item %s not resolved: %v",
			claimID, itemID, err)
		return err
	}

	content := notify.ClaimStatusChanged(models.ClaimStatusApproved, item.Title, "")
	if err := m.store.CreateNotification(ctx, &models.Notification{
		UserID:    claim.UserID,
		Type:      models.NotifyClaimUpdate,
		Title:     content.Title,
		Message:   content.Message,
		RelatedID: claimID,
	}); err != nil {
		return err
	}

	m.publish(ctx, map[string]interface{}{
		"event":   "claim.approved",
		"claimId": claimID,
		"itemId":  itemID,
		"adminId": adminID,
	})
	return nil
}

// Reject marks the claim rejected with the given reason. The item is left
// unchanged so another user can still claim it.
func (m *Manager) Reject(ctx context.Context, claimID, adminID, reason string) error {
	claim, err := m.store.GetClaimByID(ctx, claimID)
	if err != nil {
		return err
	}
	if err := decideReject(claim, reason); err != nil {
		return err
	}

	if err := m.store.UpdateClaimStatus(ctx, claimID, models.ClaimStatusRejected, reason); err != nil {
		return err
	}

	itemTitle := claim.ItemID
	if item, err := m.store.GetItemByID(ctx, claim.ItemID); err == nil {
		itemTitle = item.Title
	}
	content := notify.ClaimStatusChanged(models.ClaimStatusRejected, itemTitle, reason)
	if err := m.store.CreateNotification(ctx, &models.Notification{
		UserID:    claim.UserID,
		Type:      models.NotifyClaimUpdate,
		Title:     content.Title,
		Message:   content.Message,
		RelatedID: claimID,
	}); err != nil {
		return err
	}

	m.publish(ctx, map[string]interface{}{
		"event":   "claim.rejected",
		"claimId": claimID,
		"adminId": adminID,
		"reason":  reason,
	})
	return nil
}

// Cancel lets the claim owner withdraw a non-terminal claim. No
// notification is emitted.
func (m *Manager) Cancel(ctx context.Context, claimID, userID string) error {
	claim, err := m.store.GetClaimByID(ctx, claimID)
	if err != nil {
		return err
	}
	if err := decideCancel(claim, userID); err != nil {
		return err
	}
	return m.store.UpdateClaimStatus(ctx, claimID, models.ClaimStatusCancelled, "")
}

// Advance moves a claim to a later review stage (staff tooling). The user
// is notified of the stage change so the verification chat can start.
func (m *Manager) Advance(ctx context.Context, claimID string, to models.ClaimStatus) error {
	claim, err := m.store.GetClaimByID(ctx, claimID)
	if err != nil {
		return err
	}
	if err := ValidateTransition(claim.Status, to); err != nil {
		return err
	}
	if to.Terminal() {
		// Terminal moves must go through Approve/Reject/Cancel so their
		// side effects are not skipped.
		return apperr.Validation("cannot set terminal status %s directly", to)
	}
	if err := m.store.UpdateClaimStatus(ctx, claimID, to, ""); err != nil {
		return err
	}

	itemTitle := claim.ItemID
	if item, err := m.store.GetItemByID(ctx, claim.ItemID); err == nil {
		itemTitle = item.Title
	}
	content := notify.ClaimStatusChanged(to, itemTitle, "")
	return m.store.CreateNotification(ctx, &models.Notification{
		UserID:    claim.UserID,
		Type:      models.NotifyClaimUpdate,
		Title:     content.Title,
		Message:   content.Message,
		RelatedID: claimID,
	})
}

func (m *Manager) publish(ctx context.Context, event map[string]interface{}) {
	if m.events == nil {
		return
	}
	if err := m.events.Publish(ctx, event); err != nil {
		log.Printf("publish %v: %v", event["event"], err)
	}
}
