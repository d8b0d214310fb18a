// Package models holds the persistent entities of the lost-and-found
// coordination service.
package models

import "time"

// Item is a lost report or a registered found object. Items are never
// deleted, only moved to resolved or closed.
type Item struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Type        ItemType   `gorm:"size:8;index;not null" json:"type"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:64;index;not null" json:"category"`
	Mode        string     `gorm:"size:32" json:"mode"`
	Line        string     `gorm:"size:64" json:"line"`
	StationID   string     `gorm:"size:128;index" json:"stationId"`
	Keywords    StringList `gorm:"type:text" json:"keywords"`
	ImageURLs   StringList `gorm:"type:text" json:"imageUrls"`
	Status      ItemStatus `gorm:"size:32;index;not null" json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Claimable reports whether a user may open a claim against the item.
// Eligibility derives from type and status alone; the single-active-claim
// rule is checked separately by the lifecycle manager.
func (it *Item) Claimable() bool {
	return it.Type == ItemTypeFound && it.Status == ItemStatusListed
}

// ClaimRequest is one user's assertion of ownership over one found item.
type ClaimRequest struct {
	ID              string      `gorm:"primaryKey;size:36" json:"id"`
	ItemID          string      `gorm:"size:36;index;not null" json:"itemId"`
	UserID          string      `gorm:"size:64;index;not null" json:"userId"`
	Evidence        StringList  `gorm:"type:text" json:"evidence"`
	Status          ClaimStatus `gorm:"size:32;index;not null" json:"status"`
	RejectionReason string      `gorm:"size:512" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Ticket context types.
const (
	TicketContextClaimInquiry = "claim_inquiry"
	TicketContextItemInquiry  = "item_inquiry"
)

// Ticket is a verification/support thread. Its status is independent of the
// claim it may reference.
type Ticket struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ContextType string    `gorm:"size:32;not null" json:"contextType"`
	ItemID      string    `gorm:"size:36;index" json:"itemId,omitempty"`
	ClaimID     string    `gorm:"size:36;index" json:"claimId,omitempty"`
	Subject     string    `gorm:"size:255" json:"subject"`
	Snapshot    string    `gorm:"type:text" json:"snapshot,omitempty"`
	Status      string    `gorm:"size:16;not null;default:open" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Notification type tags.
const (
	NotifyMatchFound  = "match_found"
	NotifyClaimUpdate = "claim_update"
	NotifyTicketReply = "ticket_reply"
)

// Notification is a fire-and-forget record for one user. Only the recipient
// reads it or marks it read.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:64;index;not null" json:"userId"`
	Type      string    `gorm:"size:32;not null" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	RelatedID string    `gorm:"size:36" json:"relatedId,omitempty"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
