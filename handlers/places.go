package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TestPlaces is a diagnostic passthrough to the places provider's raw search.
// The summary always comes back with HTTP 200; failures are reported in the
// status field of the body.
func (h *Handlers) TestPlaces(c *gin.Context) {
	c.JSON(http.StatusOK, h.places.RawSearch())
}
