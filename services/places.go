package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tripplanner/config"
)

type Place struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
	Type        string  `json:"type"`
}

// PlacesService serves a fixed catalog of recommendations and carries the raw
// Google Places text-search used by the /test-places/ diagnostic.
type PlacesService struct {
	cfg        config.PlacesConfig
	httpClient *http.Client
}

func NewPlacesService(cfg config.PlacesConfig, httpClient *http.Client) *PlacesService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &PlacesService{cfg: cfg, httpClient: httpClient}
}

// PlacesOfInterest returns the recommendation catalog for a destination.
// Selection currently ignores both inputs; the catalog is deterministic.
func (s *PlacesService) PlacesOfInterest(destination, interests string) []Place {
	return s.catalog()
}

// FoodRecommendations returns dining recommendations for a destination.
// It currently serves the same catalog as PlacesOfInterest; both capabilities
// are named separately so a dedicated food source only touches one call site.
func (s *PlacesService) FoodRecommendations(destination, interests string) []Place {
	return s.catalog()
}

func (s *PlacesService) catalog() []Place {
	return []Place{
		{
			Name:        "Historic City Center",
			Description: "Beautiful historic district with architecture from the 18th century",
			Rating:      4.5,
			Image:       "https://picsum.photos/400/300",
			Type:        "Cultural",
		},
		{
			Name:        "Central Park Gardens",
			Description: "Expansive park with walking trails and botanical gardens",
			Rating:      4.7,
			Image:       "https://picsum.photos/400/301",
			Type:        "Nature",
		},
		{
			Name:        "Museum of Modern Art",
			Description: "World-class museum featuring contemporary artworks",
			Rating:      4.6,
			Image:       "https://picsum.photos/400/302",
			Type:        "Cultural",
		},
		{
			Name:        "Local Food Market",
			Description: "Traditional market with local specialties and fresh produce",
			Rating:      4.4,
			Image:       "https://picsum.photos/400/303",
			Type:        "Food",
		},
		{
			Name:        "Adventure Sports Center",
			Description: "Various outdoor activities and adventure sports",
			Rating:      4.3,
			Image:       "https://picsum.photos/400/304",
			Type:        "Adventure",
		},
	}
}

// ─── Diagnostic ──────────────────────────────────────────────────────────────

// RawSearch fires a fixed text-search query at the Google Places API and
// summarizes the outcome. Used only by the /test-places/ endpoint to verify
// connectivity and credentials.
func (s *PlacesService) RawSearch() map[string]interface{} {
	endpoint := fmt.Sprintf("%s/textsearch/json?query=%s&key=%s",
		s.cfg.BaseURL,
		url.QueryEscape("restaurants in New York"),
		url.QueryEscape(s.cfg.APIKey),
	)

	resp, err := s.httpClient.Get(endpoint)
	if err != nil {
		return map[string]interface{}{"status": "error", "message": err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return map[string]interface{}{
			"status":  "error",
			"message": fmt.Sprintf("places request failed (%d): %s", resp.StatusCode, string(body)),
		}
	}

	var data struct {
		ErrorMessage string                   `json:"error_message"`
		Results      []map[string]interface{} `json:"results"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return map[string]interface{}{"status": "error", "message": "failed to parse places response: " + err.Error()}
	}

	if data.ErrorMessage != "" {
		return map[string]interface{}{
			"status":  "error",
			"message": data.ErrorMessage,
		}
	}

	var first interface{}
	if len(data.Results) > 0 {
		first = data.Results[0]
	}
	return map[string]interface{}{
		"status":        "success",
		"results_count": len(data.Results),
		"first_result":  first,
	}
}
