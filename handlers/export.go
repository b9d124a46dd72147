package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/services"
)

// ExportTrip renders the trip and its recommendation payloads as a
// downloadable PDF itinerary.
func (h *Handlers) ExportTrip(c *gin.Context) {
	trip, err := h.store.GetTrip(c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		log.Printf("❌ Failed to load trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve trip"})
		return
	}

	detail, err := h.enricher.EnsureDetails(trip)
	if err != nil {
		log.Printf("❌ Failed to ensure details for trip %s: %v", trip.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve trip details"})
		return
	}

	data := services.TripPDFData{Trip: trip}
	if detail != nil {
		// decode failures leave the section out of the PDF, same as no data
		if detail.WeatherData.Valid {
			_ = json.Unmarshal([]byte(detail.WeatherData.String), &data.Forecast)
		}
		if detail.HotelData.Valid {
			_ = json.Unmarshal([]byte(detail.HotelData.String), &data.Hotels)
		}
		if detail.FoodData.Valid {
			_ = json.Unmarshal([]byte(detail.FoodData.String), &data.Places)
		}
	}

	pdfBytes, err := services.GenerateTripPDF(data)
	if err != nil {
		log.Printf("❌ PDF generation failed for trip %s: %v", trip.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=trip-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
