package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/kltransit/lostfound/src/shared/models"
	"github.com/kltransit/lostfound/src/shared/storage"
)

type Items struct {
	store  storage.Store
	policy *bluemonday.Policy
}

func NewItems(store storage.Store) Items {
	return Items{store: store, policy: bluemonday.StrictPolicy()}
}

// Create registers an item: users file lost reports, staff register found
// items. Found items start in pending_verification until staff list them;
// lost reports start as reported.
func (h Items) Create(c *gin.Context) {
	var req struct {
		Type        string   `json:"type" binding:"required"`
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Category    string   `json:"category" binding:"required"`
		Mode        string   `json:"mode"`
		Line        string   `json:"line"`
		StationID   string   `json:"stationId"`
		Keywords    []string `json:"keywords"`
		ImageURLs   []string `json:"imageUrls"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	itemType, err := models.ParseItemType(req.Type)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	if itemType == models.ItemTypeFound && c.GetString("role") != "admin" {
		respondMessage(c, http.StatusForbidden, "only staff can register found items")
		return
	}

	status := models.ItemStatusReported
	if itemType == models.ItemTypeFound {
		status = models.ItemStatusPendingVerification
	}

	item := &models.Item{
		Type:        itemType,
		Title:       h.policy.Sanitize(req.Title),
		Description: h.policy.Sanitize(req.Description),
		Category:    req.Category,
		Mode:        req.Mode,
		Line:        req.Line,
		StationID:   req.StationID,
		Keywords:    sanitizeList(h.policy, req.Keywords),
		ImageURLs:   req.ImageURLs,
		Status:      status,
	}
	if err := h.store.CreateItem(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, item)
}

func (h Items) List(c *gin.Context) {
	f := storage.ItemFilter{
		Category:  c.Query("category"),
		StationID: c.Query("stationId"),
		Limit:     50,
	}
	if t := c.Query("type"); t != "" {
		itemType, err := models.ParseItemType(t)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		f.Type = itemType
	}
	if s := c.Query("status"); s != "" {
		status, err := models.ParseItemStatus(s)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		f.Status = status
	} else {
		// Default public view: found items open for claiming.
		f.Status = models.ItemStatusListed
	}

	items, err := h.store.GetItems(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, items)
}

func (h Items) Get(c *gin.Context) {
	item, err := h.store.GetItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item)
}

// SetStatus is the staff tooling path for item status moves outside the
// claim lifecycle: verifying a found item (listed), flagging a pairing
// (match_found) or closing an item without resolution.
func (h Items) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	status, err := models.ParseItemStatus(req.Status)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	id := c.Param("id")
	item, err := h.store.GetItemByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if item.Status.Terminal() {
		respondMessage(c, http.StatusConflict, "item is already "+string(item.Status))
		return
	}

	if err := h.store.UpdateItemStatus(c.Request.Context(), id, status); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id, "status": status})
}

func sanitizeList(policy *bluemonday.Policy, in []string) models.StringList {
	if len(in) == 0 {
		return nil
	}
	out := make(models.StringList, 0, len(in))
	for _, s := range in {
		if clean := policy.Sanitize(s); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
