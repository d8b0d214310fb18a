package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kltransit/lostfound/src/shared/apperr"
	"github.com/kltransit/lostfound/src/shared/models"
)

// Memory is an in-memory Store. It backs the engine's tests and mirrors the
// MySQL implementation's ordering: items newest first, claims oldest first.
type Memory struct {
	mu            sync.RWMutex
	items         map[string]models.Item
	claims        map[string]models.ClaimRequest
	tickets       map[string]models.Ticket
	notifications map[string]models.Notification
	itemOrder     []string
	claimOrder    []string
	notifOrder    []string

	// failErr, when set, makes every operation fail with a storage error.
	failErr error
}

func NewMemory() *Memory {
	return &Memory{
		items:         make(map[string]models.Item),
		claims:        make(map[string]models.ClaimRequest),
		tickets:       make(map[string]models.Ticket),
		notifications: make(map[string]models.Notification),
	}
}

// FailWith makes every subsequent operation fail with a storage error
// wrapping err. Passing nil restores normal behavior.
func (s *Memory) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *Memory) failed() error {
	if s.failErr != nil {
		return apperr.Storage(s.failErr, "memory store")
	}
	return nil
}

func (s *Memory) GetItemByID(ctx context.Context, id string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failed(); err != nil {
		return nil, err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("item %s not found", id)
	}
	return &item, nil
}

func (s *Memory) GetItems(ctx context.Context, f ItemFilter) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failed(); err != nil {
		return nil, err
	}
	var out []models.Item
	// Newest first, matching the MySQL ordering.
	for i := len(s.itemOrder) - 1; i >= 0; i-- {
		item := s.items[s.itemOrder[i]]
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		if f.StationID != "" && item.StationID != f.StationID {
			continue
		}
		out = append(out, item)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func (s *Memory) CreateItem(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failed(); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	s.items[item.ID] = *item
	s.itemOrder = append(s.itemOrder, item.ID)
	return nil
}

func (s *Memory) UpdateItemStatus(ctx context.Context, id string, status models.ItemStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failed(); err != nil {
		return err
	}
	item, ok := s.items[id]
	if !ok {
		return apperr.NotFound("item %s not found", id)
	}
	item.Status = status
	item.UpdatedAt = time.Now()
	s.items[id] = item
	return nil
}

func (s *Memory) GetClaimByID(ctx context.Context, id string) (*models.ClaimRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failed(); err != nil {
		return nil, err
	}
	claim, ok := s.claims[id]
	if !ok {
		return nil, apperr.NotFound("claim %s not found", id)
	}
	return &claim, nil
}

func (s *Memory) GetClaims(ctx context.Context, f ClaimFilter) ([]models.ClaimRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failed(); err != nil {
		return nil, err
	}
	var out []models.ClaimRequest
	for _, id := range s.claimOrder {
		claim := s.claims[id]
		if f.ItemID != "" && claim.ItemID != f.ItemID {
			continue
		}
		if f.UserID != "" && claim.UserID != f.UserID {
			continue
		}
		if f.Status != "" && claim.Status != f.Status {
			continue
		}
		out = append(out, claim)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func (s *Memory) CreateClaim(ctx context.Context, claim *models.ClaimRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failed(); err != nil {
		return err
	}
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	now := time.Now()
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = now
	}
	claim.UpdatedAt = now
	s.claims[claim.ID] = *claim
	s.claimOrder = append(s.claimOrder, claim.ID)
	return nil
}

func (s *Memory) UpdateClaimStatus(ctx context.Context, id string, status models.ClaimStatus, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failed(); err != nil {
		return err
	}
	claim, ok := s.claims[id]
	if !ok {
		return apperr.NotFound("claim %s not found", id)
	}
	claim.Status = status
	if reason != "" {
		claim.RejectionReason = reason
	}
	claim.UpdatedAt = time.Now()
	s.claims[id] = claim
	return nil
}

func (s *Memory) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failed(); err != nil {
		return err
	}
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	if ticket.Status == "" {
		ticket.Status = "open"
	}
	now := time.Now()
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = now
	}
	ticket.UpdatedAt = now
	s.tickets[ticket.ID] = *ticket
	return nil
}

// Tickets returns all stored tickets, creation order not guaranteed.
func (s *Memory) Tickets() []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Memory) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failed(); err != nil {
		return err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.notifications[n.ID] = *n
	s.notifOrder = append(s.notifOrder, n.ID)
	return nil
}

func (s *Memory) GetNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failed(); err != nil {
		return nil, err
	}
	var out []models.Notification
	for i := len(s.notifOrder) - 1; i >= 0; i-- {
		n := s.notifications[s.notifOrder[i]]
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *Memory) MarkNotificationRead(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failed(); err != nil {
		return err
	}
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return apperr.NotFound("notification %s not found", id)
	}
	n.Read = true
	s.notifications[id] = n
	return nil
}
