package services

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

var hotelNames = []string{"Grand Hotel", "City Center Inn", "Luxury Resort", "Business Hotel", "Boutique Stay"}

var hotelAmenities = []string{"WiFi", "Pool", "Spa", "Gym", "Restaurant", "Bar", "Room Service", "Parking"}

type HotelOffer struct {
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Rating         float64  `json:"rating"`
	PricePerNight  float64  `json:"price_per_night"`
	TotalPrice     float64  `json:"total_price"`
	Currency       string   `json:"currency"`
	Image          string   `json:"image"`
	Amenities      []string `json:"amenities"`
	Description    string   `json:"description"`
	AvailableRooms int      `json:"available_rooms"`
}

// HotelService synthesizes hotel recommendations. Prices are random but never
// exceed the caller's nightly budget.
type HotelService struct{}

func NewHotelService() *HotelService {
	return &HotelService{}
}

// Recommendations returns five offers for a stay in city between checkIn and
// checkOut (YYYY-MM-DD). The nightly price is min(random 100–300,
// budgetPerNight); total_price is nightly price times nights, so a same-day
// checkout yields a zero total.
func (s *HotelService) Recommendations(city, checkIn, checkOut string, budgetPerNight float64) []HotelOffer {
	nights := stayNights(checkIn, checkOut)

	offers := make([]HotelOffer, 0, len(hotelNames))
	for i, name := range hotelNames {
		price := math.Min(float64(100+rand.Intn(201)), budgetPerNight)
		offers = append(offers, HotelOffer{
			Name:           fmt.Sprintf("%s %s", name, city),
			Address:        fmt.Sprintf("%d Main Street, %s", 1+rand.Intn(999), city),
			Rating:         math.Round((3.5+rand.Float64()*1.5)*10) / 10,
			PricePerNight:  price,
			TotalPrice:     price * float64(nights),
			Currency:       "USD",
			Image:          fmt.Sprintf("https://picsum.photos/400/%d", 305+i),
			Amenities:      sampleAmenities(3 + rand.Intn(4)),
			Description:    "A wonderful hotel in a prime location with excellent service and modern amenities.",
			AvailableRooms: 1 + rand.Intn(10),
		})
	}
	return offers
}

func stayNights(checkIn, checkOut string) int {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

func sampleAmenities(n int) []string {
	perm := rand.Perm(len(hotelAmenities))
	picked := make([]string, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, hotelAmenities[idx])
	}
	return picked
}
