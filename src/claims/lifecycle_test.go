package claims

import (
	"context"
	"testing"

	"github.com/kltransit/lostfound/src/shared/apperr"
	"github.com/kltransit/lostfound/src/shared/models"
	"github.com/kltransit/lostfound/src/shared/storage"
)

type fakeLocker struct {
	held map[string]bool
}

func (l *fakeLocker) Lock(ctx context.Context, itemID string) (func(), bool, error) {
	if l.held[itemID] {
		return nil, false, nil
	}
	return func() {}, true, nil
}

type recordingPublisher struct {
	events []map[string]interface{}
}

func (p *recordingPublisher) Publish(ctx context.Context, event map[string]interface{}) error {
	p.events = append(p.events, event)
	return nil
}

func newTestManager(t *testing.T) (*Manager, *storage.Memory, *recordingPublisher) {
	t.Helper()
	store := storage.NewMemory()
	pub := &recordingPublisher{}
	return NewManager(store, &fakeLocker{}, pub), store, pub
}

func seedListedItem(t *testing.T, store *storage.Memory) models.Item {
	t.Helper()
	item := models.Item{
		Type: models.ItemTypeFound, Title: "Grey laptop",
		Category: "Electronics", StationID: "KL Sentral",
		Status: models.ItemStatusListed,
	}
	if err := store.CreateItem(context.Background(), &item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func TestSubmitCreatesClaimAndTicket(t *testing.T) {
	mgr, store, pub := newTestManager(t)
	ctx := context.Background()
	item := seedListedItem(t, store)

	claim, err := mgr.Submit(ctx, item.ID, "user-1", []string{"receipt photo"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if claim.Status != models.ClaimStatusSubmitted {
		t.Errorf("claim status = %s, want %s", claim.Status, models.ClaimStatusSubmitted)
	}

	// Item stays visible until triage.
	got, _ := store.GetItemByID(ctx, item.ID)
	if got.Status != models.ItemStatusListed {
		t.Errorf("item status = %s, want listed", got.Status)
	}

	tickets := store.Tickets()
	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}
	ticket := tickets[0]
	if ticket.ContextType != models.TicketContextClaimInquiry {
		t.Errorf("ticket context = %s, want %s", ticket.ContextType, models.TicketContextClaimInquiry)
	}
	if ticket.ItemID != item.ID || ticket.ClaimID != claim.ID {
		t.Errorf("ticket not linked to item and claim: %+v", ticket)
	}

	if len(pub.events) != 1 || pub.events[0]["event"] != "claim.submitted" {
		t.Errorf("expected one claim.submitted event, got %v", pub.events)
	}
}

func TestSubmitRejectsSecondActiveClaim(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()
	item := seedListedItem(t, store)

	if _, err := mgr.Submit(ctx, item.ID, "user-1", nil); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	_, err := mgr.Submit(ctx, item.ID, "user-2", nil)
	if !apperr.IsInvalidState(err) {
		t.Fatalf("expected InvalidState, got %v", err)
	}

	all, _ := store.GetClaims(ctx, storage.ClaimFilter{ItemID: item.ID})
	if len(all) != 1 {
		t.Errorf("expected exactly 1 claim, got %d", len(all))
	}
}

func TestSubmitAllowedAfterTerminalClaim(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()
	item := seedListedItem(t, store)

	first, _ := mgr.Submit(ctx, item.ID, "user-1", nil)
	if err := mgr.Reject(ctx, first.ID, "admin-1", "insufficient proof"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	// The item stays claimable by someone else.
	if _, err := mgr.Submit(ctx, item.ID, "user-2", nil); err != nil {
		t.Fatalf("Submit after rejection: %v", err)
	}
}

func TestSubmitPreconditions(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := mgr.Submit(ctx, "missing", "user-1", nil); !apperr.IsNotFound(err) {
		t.Errorf("missing item: expected NotFound, got %v", err)
	}

	lost := models.Item{Type: models.ItemTypeLost, Category: "Bags", Status: models.ItemStatusReported}
	store.CreateItem(ctx, &lost)
	if _, err := mgr.Submit(ctx, lost.ID, "user-1", nil); !apperr.IsInvalidState(err) {
		t.Errorf("lost item: expected InvalidState, got %v", err)
	}

	pending := models.Item{Type: models.ItemTypeFound, Category: "Bags", Status: models.ItemStatusPendingVerification}
	store.CreateItem(ctx, &pending)
	if _, err := mgr.Submit(ctx, pending.ID, "user-1", nil); !apperr.IsInvalidState(err) {
		t.Errorf("unlisted item: expected InvalidState, got %v", err)
	}
}

func TestSubmitBlockedWhileLockHeld(t *testing.T) {
	store := storage.NewMemory()
	locker := &fakeLocker{held: map[string]bool{}}
	mgr := NewManager(store, locker, nil)
	ctx := context.Background()

	item := seedListedItem(t, store)
	locker.held[item.ID] = true

	_, err := mgr.Submit(ctx, item.ID, "user-1", nil)
	if !apperr.IsInvalidState(err) {
		t.Errorf("expected InvalidState while lock held, got %v", err)
	}
}

func TestApproveResolvesItemAndNotifies(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()
	item := seedListedItem(t, store)

	claim, _ := mgr.Submit(ctx, item.ID, "user-1", nil)
	if err := mgr.Approve(ctx, claim.ID, "admin-1", item.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	gotClaim, _ := store.GetClaimByID(ctx, claim.ID)
	if gotClaim.Status != models.ClaimStatusApproved {
		t.Errorf("claim status = %s, want approved", gotClaim.Status)
	}
	gotItem, _ := store.GetItemByID(ctx, item.ID)
	if gotItem.Status != models.ItemStatusResolved {
		t.Errorf("item status = %s, want resolved", gotItem.Status)
	}

	ns, _ := store.GetNotifications(ctx, "user-1")
	if len(ns) != 1 {
		t.Fatalf("expected 1 notification for claimant, got %d", len(ns))
	}
	if ns[0].Type != models.NotifyClaimUpdate || ns[0].RelatedID != claim.ID {
		t.Errorf("unexpected notification %+v", ns[0])
	}
}

func TestApproveTwiceFails(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()
	item := seedListedItem(t, store)

	claim, _ := mgr.Submit(ctx, item.ID, "user-1", nil)
	if err := mgr.Approve(ctx, claim.ID, "admin-1", item.ID); err != nil {
		t.Fatalf("first Approve: %v", err)
	}

	err := mgr.Approve(ctx, claim.ID, "admin-1", item.ID)
	if !apperr.IsInvalidState(err) {
		t.Fatalf("second Approve: expected InvalidState, got %v", err)
	}

	// No further writes: still exactly one notification.
	ns, _ := store.GetNotifications(ctx, "user-1")
	if len(ns) != 1 {
		t.Errorf("expected 1 notification after repeated approve, got %d", len(ns))
	}
}

func TestApproveMissingRecords(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()

	if err := mgr.Approve(ctx, "missing", "admin-1", "whatever"); !apperr.IsNotFound(err) {
		t.Errorf("missing claim: expected NotFound, got %v", err)
	}

	item := seedListedItem(t, store)
	claim, _ := mgr.Submit(ctx, item.ID, "user-1", nil)
	if err := mgr.Approve(ctx, claim.ID, "admin-1", "missing-item"); !apperr.IsNotFound(err) {
		t.Errorf("missing item: expected NotFound, got %v", err)
	}
}

func TestRejectKeepsItemClaimable(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()
	item := seedListedItem(t, store)

	claim, _ := mgr.Submit(ctx, item.ID, "user-1", nil)
	if err := mgr.Reject(ctx, claim.ID, "admin-1", "insufficient proof"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	gotClaim, _ := store.GetClaimByID(ctx, claim.ID)
	if gotClaim.Status != models.ClaimStatusRejected {
		t.Errorf("claim status = %s, want rejected", gotClaim.Status)
	}
	if gotClaim.RejectionReason != "insufficient proof" {
		t.Errorf("rejection reason = %q", gotClaim.RejectionReason)
	}

	gotItem, _ := store.GetItemByID(ctx, item.ID)
	if gotItem.Status != models.ItemStatusListed {
		t.Errorf("item status = %s, want listed", gotItem.Status)
	}

	ns, _ := store.GetNotifications(ctx, "user-1")
	if len(ns) != 1 {
		t.Errorf("expected 1 rejection notification, got %d", len(ns))
	}
}

func TestRejectRequiresReason(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()
	item := seedListedItem(t, store)

	claim, _ := mgr.Submit(ctx, item.ID, "user-1", nil)
	if err := mgr.Reject(ctx, claim.ID, "admin-1", ""); !apperr.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestCancelOwnClaimOnly(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()
	item := seedListedItem(t, store)

	claim, _ := mgr.Submit(ctx, item.ID, "user-1", nil)

	// Someone else's claim reads as not found.
	if err := mgr.Cancel(ctx, claim.ID, "user-2"); !apperr.IsNotFound(err) {
		t.Errorf("foreign cancel: expected NotFound, got %v", err)
	}

	if err := mgr.Cancel(ctx, claim.ID, "user-1"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	gotClaim, _ := store.GetClaimByID(ctx, claim.ID)
	if gotClaim.Status != models.ClaimStatusCancelled {
		t.Errorf("claim status = %s, want cancelled", gotClaim.Status)
	}

	// Cancelling never notifies.
	ns, _ := store.GetNotifications(ctx, "user-1")
	if len(ns) != 0 {
		t.Errorf("expected no notifications, got %d", len(ns))
	}

	// Terminal claims stay immutable.
	if err := mgr.Cancel(ctx, claim.ID, "user-1"); !apperr.IsInvalidState(err) {
		t.Errorf("cancel of cancelled claim: expected InvalidState, got %v", err)
	}
}

func TestAdvanceStages(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	ctx := context.Background()
	item := seedListedItem(t, store)

	claim, _ := mgr.Submit(ctx, item.ID, "user-1", nil)

	if err := mgr.Advance(ctx, claim.ID, models.ClaimStatusTriage); err != nil {
		t.Fatalf("Advance to triage: %v", err)
	}
	if err := mgr.Advance(ctx, claim.ID, models.ClaimStatusChat); err != nil {
		t.Fatalf("Advance to chat: %v", err)
	}
	if err := mgr.Advance(ctx, claim.ID, models.ClaimStatusTriage); !apperr.IsInvalidState(err) {
		t.Errorf("backwards advance: expected InvalidState, got %v", err)
	}
	if err := mgr.Advance(ctx, claim.ID, models.ClaimStatusApproved); !apperr.IsValidation(err) {
		t.Errorf("terminal via Advance: expected ValidationError, got %v", err)
	}

	// Each stage move notified the claimant.
	ns, _ := store.GetNotifications(ctx, "user-1")
	if len(ns) != 2 {
		t.Errorf("expected 2 stage notifications, got %d", len(ns))
	}
}
