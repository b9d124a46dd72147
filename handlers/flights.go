package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type flightSearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
}

// SearchFlights is the standalone flight search. Provider failures never
// reach the client — the search result always carries data, live or fallback.
func (h *Handlers) SearchFlights(c *gin.Context) {
	var req flightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Origin == "" || req.Destination == "" || req.DepartureDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	result := h.flights.Search(req.Origin, req.Destination, req.DepartureDate, req.ReturnDate)
	c.JSON(http.StatusOK, result)
}
