package models

import "fmt"

type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

// Opposite returns the item type a match candidate must have.
func (t ItemType) Opposite() ItemType {
	if t == ItemTypeLost {
		return ItemTypeFound
	}
	return ItemTypeLost
}

func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypeLost, ItemTypeFound:
		return ItemType(s), nil
	}
	return "", fmt.Errorf("unknown item type %q", s)
}

type ItemStatus string

const (
	ItemStatusReported            ItemStatus = "reported"
	ItemStatusPendingVerification ItemStatus = "pending_verification"
	ItemStatusListed              ItemStatus = "listed"
	ItemStatusMatchFound          ItemStatus = "match_found"
	ItemStatusResolved            ItemStatus = "resolved"
	ItemStatusClosed              ItemStatus = "closed"
)

func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(s) {
	case ItemStatusReported, ItemStatusPendingVerification, ItemStatusListed,
		ItemStatusMatchFound, ItemStatusResolved, ItemStatusClosed:
		return ItemStatus(s), nil
	}
	return "", fmt.Errorf("unknown item status %q", s)
}

// Terminal reports whether an item can no longer change status.
func (s ItemStatus) Terminal() bool {
	return s == ItemStatusResolved || s == ItemStatusClosed
}

// MatchEligibleStatus returns the status a candidate of the given type must
// have to be worth proposing: found items must be publicly listed, lost
// reports must still be open.
func MatchEligibleStatus(t ItemType) ItemStatus {
	if t == ItemTypeFound {
		return ItemStatusListed
	}
	return ItemStatusReported
}

type ClaimStatus string

const (
	ClaimStatusSubmitted ClaimStatus = "claim-submitted"
	ClaimStatusTriage    ClaimStatus = "under-review-triage"
	ClaimStatusChat      ClaimStatus = "verification-chat"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusRejected  ClaimStatus = "rejected"
	ClaimStatusCancelled ClaimStatus = "cancelled"
)

func ParseClaimStatus(s string) (ClaimStatus, error) {
	switch ClaimStatus(s) {
	case ClaimStatusSubmitted, ClaimStatusTriage, ClaimStatusChat,
		ClaimStatusApproved, ClaimStatusRejected, ClaimStatusCancelled:
		return ClaimStatus(s), nil
	}
	return "", fmt.Errorf("unknown claim status %q", s)
}

// Terminal reports whether a claim is immutable. No operation may touch an
// approved, rejected or cancelled claim.
func (s ClaimStatus) Terminal() bool {
	switch s {
	case ClaimStatusApproved, ClaimStatusRejected, ClaimStatusCancelled:
		return true
	}
	return false
}

// claimStage orders the review stages. Terminal states carry no stage.
var claimStage = map[ClaimStatus]int{
	ClaimStatusSubmitted: 1,
	ClaimStatusTriage:    2,
	ClaimStatusChat:      3,
}

// Stage returns the review stage index of a non-terminal claim status,
// or 0 for terminal states.
func (s ClaimStatus) Stage() int { return claimStage[s] }
