package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"tripplanner/database"
	"tripplanner/services"
)

// TripStore is the persistence surface the handlers depend on, implemented by
// database.Store and by test doubles.
type TripStore interface {
	CreateTrip(t *database.Trip) error
	GetTrip(id string) (*database.Trip, error)
	ListTrips() ([]database.Trip, error)
	UpdateTrip(t *database.Trip) error
	DeleteTrip(id string) error
}

// DetailEnricher applies the shared ensure-details refresh policy.
type DetailEnricher interface {
	EnsureDetails(trip *database.Trip) (*database.TripDetail, error)
}

// FlightSearcher runs a flight search; it always produces a result, serving
// fallback data on any provider failure.
type FlightSearcher interface {
	Search(origin, destination, departureDate, returnDate string) services.FlightSearchResult
}

// PlacesDiagnostic is the raw places-API passthrough behind /test-places/.
type PlacesDiagnostic interface {
	RawSearch() map[string]interface{}
}

type Handlers struct {
	store    TripStore
	enricher DetailEnricher
	flights  FlightSearcher
	places   PlacesDiagnostic
	db       *sql.DB
}

func New(store TripStore, enricher DetailEnricher, flights FlightSearcher, places PlacesDiagnostic, db *sql.DB) *Handlers {
	return &Handlers{store: store, enricher: enricher, flights: flights, places: places, db: db}
}

// RegisterRoutes attaches all endpoints to the engine.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", h.Health)
	r.GET("/test-places/", h.TestPlaces)

	trips := r.Group("/trips")
	{
		trips.GET("/", h.ListTrips)
		trips.POST("/", h.CreateTrip)
		trips.POST("/search-flights/", h.SearchFlights)
		trips.GET("/:id/", h.GetTrip)
		trips.PUT("/:id/", h.ReplaceTrip)
		trips.PATCH("/:id/", h.PatchTrip)
		trips.DELETE("/:id/", h.DeleteTrip)
		trips.GET("/:id/export/", h.ExportTrip)
	}
}
