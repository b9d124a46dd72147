package services

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"tripplanner/database"
)

// DetailStore is the slice of the trip store the enricher needs.
type DetailStore interface {
	GetOrCreateDetail(tripID string) (*database.TripDetail, bool, error)
	SaveDetail(d *database.TripDetail) error
}

type weatherProvider interface {
	Forecast(destination, startDate, endDate string) ([]Forecast, error)
}

type hotelProvider interface {
	Recommendations(city, checkIn, checkOut string, budgetPerNight float64) []HotelOffer
}

type foodProvider interface {
	FoodRecommendations(destination, interests string) []Place
}

// Enricher owns the refresh policy for trip details: populate once when the
// detail record is new or entirely empty, otherwise leave the stored payloads
// untouched. Create, update, retrieve and list all go through EnsureDetails.
type Enricher struct {
	store   DetailStore
	weather weatherProvider
	hotels  hotelProvider
	food    foodProvider
}

func NewEnricher(store DetailStore, weather weatherProvider, hotels hotelProvider, food foodProvider) *Enricher {
	return &Enricher{store: store, weather: weather, hotels: hotels, food: food}
}

// EnsureDetails returns the trip's detail record, fetching and persisting
// provider data when none exists yet. Adapter failures are logged and leave
// their field unset; only storage failures propagate.
func (e *Enricher) EnsureDetails(trip *database.Trip) (*database.TripDetail, error) {
	detail, created, err := e.store.GetOrCreateDetail(trip.ID)
	if err != nil {
		return nil, err
	}
	if !created && !detail.Empty() {
		return detail, nil
	}

	forecast, err := e.weather.Forecast(trip.Destination, trip.StartDate, trip.EndDate)
	if err != nil {
		log.Printf("⚠️  Weather fetch failed for trip %s: %v", trip.ID, err)
	} else if len(forecast) > 0 {
		setPayload(&detail.WeatherData, forecast)
	}

	hotels := e.hotels.Recommendations(trip.Destination, trip.StartDate, trip.EndDate, budgetPerNight(trip))
	if len(hotels) > 0 {
		setPayload(&detail.HotelData, hotels)
	}

	// places catalog doubles as the food recommendation source
	food := e.food.FoodRecommendations(trip.Destination, trip.Interests)
	if len(food) > 0 {
		setPayload(&detail.FoodData, food)
	}

	if err := e.store.SaveDetail(detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// budgetPerNight spreads the trip budget across its nights; a zero-night trip
// uses the whole budget as the nightly ceiling to avoid dividing by zero.
func budgetPerNight(trip *database.Trip) float64 {
	start, err := time.Parse("2006-01-02", trip.StartDate)
	if err != nil {
		return trip.Budget
	}
	end, err := time.Parse("2006-01-02", trip.EndDate)
	if err != nil {
		return trip.Budget
	}
	nights := int(end.Sub(start).Hours() / 24)
	if nights <= 0 {
		return trip.Budget
	}
	return trip.Budget / float64(nights)
}

func setPayload(field *sql.NullString, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("⚠️  Failed to serialize detail payload: %v", err)
		return
	}
	*field = sql.NullString{String: string(b), Valid: true}
}
