package webserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kltransit/lostfound/src/shared/apperr"
)

// Every endpoint answers the same envelope: {"success": true, "data": ...}
// or {"success": false, "message": ...}. Callers check success rather than
// relying on status codes alone.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}

// respondError maps error kinds to HTTP statuses. Storage failures get a
// generic message; internal detail never reaches end users.
func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		respondMessage(c, http.StatusNotFound, err.Error())
	case apperr.KindInvalidState:
		respondMessage(c, http.StatusConflict, err.Error())
	case apperr.KindValidation:
		respondMessage(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respondMessage(c, http.StatusInternalServerError, "action failed, please try again")
	}
}
