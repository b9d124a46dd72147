package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripplanner/database"
)

type tripRequest struct {
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	Budget      *float64 `json:"budget" binding:"required"`
	Interests   string   `json:"interests" binding:"required"`
}

type tripPatchRequest struct {
	Destination *string  `json:"destination"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Budget      *float64 `json:"budget"`
	Interests   *string  `json:"interests"`
}

// detailPayload is the wire form of a trip's detail record: each stored JSON
// string decoded back to structured data, with malformed or absent payloads
// rendered as null rather than failing the request.
type detailPayload struct {
	WeatherData json.RawMessage `json:"weather_data"`
	HotelData   json.RawMessage `json:"hotel_data"`
	FoodData    json.RawMessage `json:"food_data"`
}

type tripResponse struct {
	ID          string        `json:"id"`
	Destination string        `json:"destination"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	Budget      float64       `json:"budget"`
	Interests   string        `json:"interests"`
	Details     detailPayload `json:"details"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func tripView(t *database.Trip, d *database.TripDetail) tripResponse {
	return tripResponse{
		ID:          t.ID,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Budget:      t.Budget,
		Interests:   t.Interests,
		Details:     detailView(d),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func detailView(d *database.TripDetail) detailPayload {
	if d == nil {
		return detailPayload{}
	}
	return detailPayload{
		WeatherData: decodeStored(d.WeatherData),
		HotelData:   decodeStored(d.HotelData),
		FoodData:    decodeStored(d.FoodData),
	}
}

func decodeStored(v sql.NullString) json.RawMessage {
	if !v.Valid || v.String == "" {
		return nil
	}
	if !json.Valid([]byte(v.String)) {
		return nil
	}
	return json.RawMessage(v.String)
}

// validateDates checks the YYYY-MM-DD form and returns field-level errors.
func validateDates(startDate, endDate string) gin.H {
	fieldErrors := gin.H{}
	if _, err := time.Parse("2006-01-02", startDate); err != nil {
		fieldErrors["start_date"] = "Date must be in YYYY-MM-DD format."
	}
	if _, err := time.Parse("2006-01-02", endDate); err != nil {
		fieldErrors["end_date"] = "Date must be in YYYY-MM-DD format."
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// ─── Handlers ────────────────────────────────────────────────────────────────

func (h *Handlers) ListTrips(c *gin.Context) {
	trips, err := h.store.ListTrips()
	if err != nil {
		log.Printf("❌ Failed to list trips: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve trips"})
		return
	}

	out := make([]tripResponse, 0, len(trips))
	for i := range trips {
		trip := &trips[i]
		detail, err := h.enricher.EnsureDetails(trip)
		if err != nil {
			// keep serving the rest of the list, this trip just has no details
			log.Printf("⚠️  Failed to ensure details for trip %s: %v", trip.ID, err)
		}
		out = append(out, tripView(trip, detail))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) CreateTrip(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if fieldErrors := validateDates(req.StartDate, req.EndDate); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fieldErrors})
		return
	}

	trip := &database.Trip{
		ID:          uuid.New().String(),
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      *req.Budget,
		Interests:   req.Interests,
	}
	if err := h.store.CreateTrip(trip); err != nil {
		log.Printf("❌ Failed to create trip: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to create trip"})
		return
	}

	detail, err := h.enricher.EnsureDetails(trip)
	if err != nil {
		log.Printf("❌ Failed to store details for trip %s: %v", trip.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to store trip details"})
		return
	}

	c.JSON(http.StatusCreated, tripView(trip, detail))
}

func (h *Handlers) GetTrip(c *gin.Context) {
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

	c.JSON(http.StatusOK, tripView(trip, detail))
}

func (h *Handlers) ReplaceTrip(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if fieldErrors := validateDates(req.StartDate, req.EndDate); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fieldErrors})
		return
	}

	trip, err := h.store.GetTrip(c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		log.Printf("❌ Failed to load trip: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to update trip"})
		return
	}

	trip.Destination = req.Destination
	trip.StartDate = req.StartDate
	trip.EndDate = req.EndDate
	trip.Budget = *req.Budget
	trip.Interests = req.Interests

	h.saveAndRespond(c, trip)
}

func (h *Handlers) PatchTrip(c *gin.Context) {
	var req tripPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	trip, err := h.store.GetTrip(c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		log.Printf("❌ Failed to load trip: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to update trip"})
		return
	}

	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if req.Budget != nil {
		trip.Budget = *req.Budget
	}
	if req.Interests != nil {
		trip.Interests = *req.Interests
	}
	if fieldErrors := validateDates(trip.StartDate, trip.EndDate); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fieldErrors})
		return
	}

	h.saveAndRespond(c, trip)
}

func (h *Handlers) saveAndRespond(c *gin.Context, trip *database.Trip) {
	if err := h.store.UpdateTrip(trip); err != nil {
		log.Printf("❌ Failed to update trip %s: %v", trip.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to update trip"})
		return
	}

	detail, err := h.enricher.EnsureDetails(trip)
	if err != nil {
		log.Printf("❌ Failed to ensure details for trip %s: %v", trip.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to store trip details"})
		return
	}

	c.JSON(http.StatusOK, tripView(trip, detail))
}

func (h *Handlers) DeleteTrip(c *gin.Context) {
	if err := h.store.DeleteTrip(c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		log.Printf("❌ Failed to delete trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete trip"})
		return
	}
	c.Status(http.StatusNoContent)
}
