package claims

import (
	"github.com/kltransit/lostfound/src/shared/apperr"
	"github.com/kltransit/lostfound/src/shared/models"
)

// The transition rules are pure so the state machine can be tested without
// a storage or notification fake. The manager only performs what these
// functions decide.
//
// Rules:
//   - terminal claims (approved, rejected, cancelled) are immutable
//   - review stages only move forward: claim-submitted, under-review-triage,
//     verification-chat; skipping stages is allowed for staff
//   - any non-terminal claim may move to a terminal state

// ValidateTransition reports whether a claim may move from one status to
// another. It returns an InvalidState error describing the violation.
func ValidateTransition(from, to models.ClaimStatus) error {
	if _, err := models.ParseClaimStatus(string(to)); err != nil {
		return apperr.Validation("invalid claim status %q", to)
	}
	if from.Terminal() {
		return apperr.InvalidState("claim is already %s", from)
	}
	if to.Terminal() {
		return nil
	}
	if to.Stage() <= from.Stage() {
		return apperr.InvalidState("cannot move claim from %s back to %s", from, to)
	}
	return nil
}

// decideApprove validates approving the claim and resolving its item.
func decideApprove(claim *models.ClaimRequest) error {
	return ValidateTransition(claim.Status, models.ClaimStatusApproved)
}

// decideReject validates rejecting the claim with the given reason.
func decideReject(claim *models.ClaimRequest, reason string) error {
	if reason == "" {
		return apperr.Validation("rejection reason is required")
	}
	return ValidateTransition(claim.Status, models.ClaimStatusRejected)
}

// decideCancel validates a user cancelling their own claim. Foreign claims
// are reported as not found rather than revealing their existence.
func decideCancel(claim *models.ClaimRequest, userID string) error {
	if claim.UserID != userID {
		return apperr.NotFound("claim %s not found", claim.ID)
	}
	return ValidateTransition(claim.Status, models.ClaimStatusCancelled)
}

// decideSubmit validates opening a new claim against an item, given the
// item and every existing claim for it.
func decideSubmit(item *models.Item, existing []models.ClaimRequest) error {
	if !item.Claimable() {
		return apperr.InvalidState("item %s is not claimable (type %s, status %s)",
			item.ID, item.Type, item.Status)
	}
	for i := range existing {
		if !existing[i].Status.Terminal() {
			return apperr.InvalidState("item %s already has an active claim", item.ID)
		}
	}
	return nil
}
