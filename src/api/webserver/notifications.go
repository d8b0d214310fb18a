package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kltransit/lostfound/src/shared/storage"
)

type Notifications struct {
	store storage.Store
}

func NewNotifications(store storage.Store) Notifications {
	return Notifications{store: store}
}

// List returns the caller's notifications, newest first.
func (h Notifications) List(c *gin.Context) {
	ns, err := h.store.GetNotifications(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, ns)
}

// MarkRead flags one of the caller's notifications as read.
func (h Notifications) MarkRead(c *gin.Context) {
	err := h.store.MarkNotificationRead(c.Request.Context(), c.Param("id"), c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id"), "read": true})
}
