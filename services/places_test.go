package services_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/config"
	"tripplanner/services"
)

func TestPlacesOfInterest_FixedCatalog(t *testing.T) {
	svc := services.NewPlacesService(config.PlacesConfig{}, nil)

	places := svc.PlacesOfInterest("Paris", "art")
	require.Len(t, places, 5)
	assert.Equal(t, "Historic City Center", places[0].Name)
	assert.Equal(t, "Adventure Sports Center", places[4].Name)

	// deterministic: inputs are ignored entirely
	again := svc.PlacesOfInterest("Tokyo", "food")
	assert.Equal(t, places, again)
}

func TestFoodRecommendations_SameCatalogAsPlaces(t *testing.T) {
	svc := services.NewPlacesService(config.PlacesConfig{}, nil)

	assert.Equal(t,
		svc.PlacesOfInterest("Paris", "art"),
		svc.FoodRecommendations("Paris", "art"))
}

func TestRawSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/textsearch/json", r.URL.Path)
		assert.Equal(t, "restaurants in New York", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"results": [{"name": "Joe's Pizza"}, {"name": "Katz's"}]}`))
	}))
	defer server.Close()

	svc := services.NewPlacesService(config.PlacesConfig{APIKey: "test-key", BaseURL: server.URL}, server.Client())
	out := svc.RawSearch()

	assert.Equal(t, "success", out["status"])
	assert.Equal(t, 2, out["results_count"])
	require.NotNil(t, out["first_result"])
	first := out["first_result"].(map[string]interface{})
	assert.Equal(t, "Joe's Pizza", first["name"])
}

func TestRawSearch_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	svc := services.NewPlacesService(config.PlacesConfig{BaseURL: server.URL}, server.Client())
	out := svc.RawSearch()

	assert.Equal(t, "success", out["status"])
	assert.Equal(t, 0, out["results_count"])
	assert.Nil(t, out["first_result"])
}

func TestRawSearch_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error_message": "The provided API key is invalid.", "results": []}`))
	}))
	defer server.Close()

	svc := services.NewPlacesService(config.PlacesConfig{BaseURL: server.URL}, server.Client())
	out := svc.RawSearch()

	assert.Equal(t, "error", out["status"])
	assert.Equal(t, "The provided API key is invalid.", out["message"])
}

func TestRawSearch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	svc := services.NewPlacesService(config.PlacesConfig{BaseURL: server.URL}, nil)
	out := svc.RawSearch()

	assert.Equal(t, "error", out["status"])
	assert.NotEmpty(t, out["message"])
}
