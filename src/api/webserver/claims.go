package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/kltransit/lostfound/src/claims"
	"github.com/kltransit/lostfound/src/shared/models"
)

type Claims struct {
	mgr    *claims.Manager
	policy *bluemonday.Policy
}

func NewClaims(mgr *claims.Manager) Claims {
	return Claims{mgr: mgr, policy: bluemonday.StrictPolicy()}
}

func (h Claims) Submit(c *gin.Context) {
	var req struct {
		ItemID   string   `json:"itemId" binding:"required"`
		Evidence []string `json:"evidence"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	claim, err := h.mgr.Submit(c.Request.Context(), req.ItemID, c.GetString("uid"),
		sanitizeList(h.policy, req.Evidence))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, claim)
}

func (h Claims) Approve(c *gin.Context) {
	var req struct {
		ItemID string `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.mgr.Approve(c.Request.Context(), c.Param("id"), c.GetString("uid"), req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": models.ClaimStatusApproved})
}

func (h Claims) Reject(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.mgr.Reject(c.Request.Context(), c.Param("id"), c.GetString("uid"),
		h.policy.Sanitize(req.Reason))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": models.ClaimStatusRejected})
}

func (h Claims) Cancel(c *gin.Context) {
	err := h.mgr.Cancel(c.Request.Context(), c.Param("id"), c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": models.ClaimStatusCancelled})
}

// SetStatus moves a claim to a later review stage (staff only). Terminal
// statuses must go through Approve/Reject.
func (h Claims) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	status, err := models.ParseClaimStatus(req.Status)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.mgr.Advance(c.Request.Context(), c.Param("id"), status); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": status})
}
