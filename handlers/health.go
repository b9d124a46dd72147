package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Health(c *gin.Context) {
	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "not initialized"
	} else if err := h.db.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "Trip Planner API",
		"database": dbStatus,
	})
}
