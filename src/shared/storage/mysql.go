package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kltransit/lostfound/src/shared/apperr"
	"github.com/kltransit/lostfound/src/shared/models"
)

// MySQL implements Store on a gorm connection.
type MySQL struct {
	db *gorm.DB
}

func NewMySQL(db *gorm.DB) *MySQL {
	return &MySQL{db: db}
}

// AllModels is the migration set for the service schema.
var AllModels = []interface{}{
	&models.Item{}, &models.ClaimRequest{},
	&models.Ticket{}, &models.Notification{},
}

func (s *MySQL) GetItemByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("item %s not found", id)
	}
	if err != nil {
		return nil, apperr.Storage(err, "get item %s", id)
	}
	// Reject unknown status strings at the boundary rather than letting them
	// flow into transition decisions.
	if _, err := models.ParseItemStatus(string(item.Status)); err != nil {
		return nil, apperr.Storage(err, "item %s", id)
	}
	return &item, nil
}

func (s *MySQL) GetItems(ctx context.Context, f ItemFilter) ([]models.Item, error) {
	q := s.db.WithContext(ctx).Model(&models.Item{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StationID != "" {
		q = q.Where("station_id = ?", f.StationID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var items []models.Item
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, apperr.Storage(err, "list items")
	}
	return items, nil
}

func (s *MySQL) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return apperr.Storage(err, "create item")
	}
	return nil
}

func (s *MySQL) UpdateItemStatus(ctx context.Context, id string, status models.ItemStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return apperr.Storage(res.Error, "update item %s status", id)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("item %s not found", id)
	}
	return nil
}

func (s *MySQL) GetClaimByID(ctx context.Context, id string) (*models.ClaimRequest, error) {
	var claim models.ClaimRequest
	err := s.db.WithContext(ctx).First(&claim, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("claim %s not found", id)
	}
	if err != nil {
		return nil, apperr.Storage(err, "get claim %s", id)
	}
	if _, err := models.ParseClaimStatus(string(claim.Status)); err != nil {
		return nil, apperr.Storage(err, "claim %s", id)
	}
	return &claim, nil
}

func (s *MySQL) GetClaims(ctx context.Context, f ClaimFilter) ([]models.ClaimRequest, error) {
	q := s.db.WithContext(ctx).Model(&models.ClaimRequest{})
	if f.ItemID != "" {
		q = q.Where("item_id = ?", f.ItemID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var claims []models.ClaimRequest
	if err := q.Order("created_at ASC").Find(&claims).Error; err != nil {
		return nil, apperr.Storage(err, "list claims")
	}
	return claims, nil
}

func (s *MySQL) CreateClaim(ctx context.Context, claim *models.ClaimRequest) error {
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(claim).Error; err != nil {
		return apperr.Storage(err, "create claim")
	}
	return nil
}

func (s *MySQL) UpdateClaimStatus(ctx context.Context, id string, status models.ClaimStatus, reason string) error {
	updates := map[string]interface{}{"status": status, "updated_at": time.Now()}
	if reason != "" {
		updates["rejection_reason"] = reason
	}
	res := s.db.WithContext(ctx).Model(&models.ClaimRequest{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return apperr.Storage(res.Error, "update claim %s status", id)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("claim %s not found", id)
	}
	return nil
}

func (s *MySQL) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	if ticket.Status == "" {
		ticket.Status = "open"
	}
	if err := s.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return apperr.Storage(err, "create ticket")
	}
	return nil
}

func (s *MySQL) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return apperr.Storage(err, "create notification")
	}
	return nil
}

func (s *MySQL) GetNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	var ns []models.Notification
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Limit(100).Find(&ns).Error
	if err != nil {
		return nil, apperr.Storage(err, "list notifications")
	}
	return ns, nil
}

func (s *MySQL) MarkNotificationRead(ctx context.Context, id, userID string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).Update("read", true)
	if res.Error != nil {
		return apperr.Storage(res.Error, "mark notification %s read", id)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("notification %s not found", id)
	}
	return nil
}
