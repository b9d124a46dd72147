package services

import (
	"fmt"
	"math/rand"
	"time"
)

var weatherConditions = []string{"Sunny", "Cloudy", "Rainy", "Partly Cloudy"}

type Forecast struct {
	Date        string `json:"date"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
}

// WeatherService synthesizes a daily forecast for a destination. There is no
// real weather provider behind it; values are randomized within plausible
// bounds.
type WeatherService struct{}

func NewWeatherService() *WeatherService {
	return &WeatherService{}
}

// Forecast returns one entry per calendar day in the inclusive
// [startDate, endDate] range. Dates use the YYYY-MM-DD form; a parse failure
// is returned to the caller so it can be logged rather than swallowed here.
func (s *WeatherService) Forecast(destination, startDate, endDate string) ([]Forecast, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	forecast := []Forecast{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		forecast = append(forecast, Forecast{
			Date:        d.Format("2006-01-02"),
			Temperature: 18 + rand.Intn(13), // 18–30 °C
			Condition:   weatherConditions[rand.Intn(len(weatherConditions))],
			Humidity:    40 + rand.Intn(51), // 40–90 %
		})
	}
	return forecast, nil
}
