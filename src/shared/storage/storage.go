// Package storage defines the document-store collaborator the engine reads
// and writes through, with a MySQL implementation for production and an
// in-memory one for tests. The store guarantees per-record atomicity only;
// cross-record consistency is the lifecycle manager's problem.
package storage

import (
	"context"

	"github.com/kltransit/lostfound/src/shared/models"
)

// ItemFilter restricts GetItems. Zero fields are ignored.
type ItemFilter struct {
	Type      models.ItemType
	Category  string
	Status    models.ItemStatus
	StationID string
	Limit     int
}

// ClaimFilter restricts GetClaims. Zero fields are ignored.
type ClaimFilter struct {
	ItemID string
	UserID string
	Status models.ClaimStatus
	Limit  int
}

type Store interface {
	GetItemByID(ctx context.Context, id string) (*models.Item, error)
	GetItems(ctx context.Context, f ItemFilter) ([]models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItemStatus(ctx context.Context, id string, status models.ItemStatus) error

	GetClaimByID(ctx context.Context, id string) (*models.ClaimRequest, error)
	GetClaims(ctx context.Context, f ClaimFilter) ([]models.ClaimRequest, error)
	CreateClaim(ctx context.Context, claim *models.ClaimRequest) error
	UpdateClaimStatus(ctx context.Context, id string, status models.ClaimStatus, reason string) error

	CreateTicket(ctx context.Context, ticket *models.Ticket) error

	CreateNotification(ctx context.Context, n *models.Notification) error
	GetNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
}
