package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kltransit/lostfound/src/matching"
)

type Matches struct {
	finder *matching.Finder
}

func NewMatches(finder *matching.Finder) Matches {
	return Matches{finder: finder}
}

func (h Matches) Find(c *gin.Context) {
	results, err := h.finder.FindMatches(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, results)
}
