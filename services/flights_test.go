package services_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/config"
	"tripplanner/services"
)

const offersBody = `{
	"data": [
		{
			"id": "OFFER-1",
			"price": {"total": "523.40", "currency": "USD"},
			"itineraries": [{
				"segments": [{
					"departure": {"at": "2024-06-01T08:30:00.000"},
					"arrival": {"at": "2024-06-01T11:45:00.000"},
					"carrierCode": "AF",
					"number": "1234"
				}]
			}]
		},
		{
			"id": "OFFER-2",
			"price": {"total": "not-a-price", "currency": "USD"},
			"itineraries": [{
				"segments": [{
					"departure": {"at": "2024-06-01T09:00:00"},
					"arrival": {"at": "2024-06-01T12:00:00"},
					"carrierCode": "BA",
					"number": "99"
				}]
			}]
		}
	]
}`

type amadeusStub struct {
	tokenStatus  int
	tokenBody    string
	offersStatus int
	offersBody   string

	tokenCalls  int
	offerCalls  int
	lastOfferQS map[string]string
}

func (s *amadeusStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			s.tokenCalls++
			w.WriteHeader(s.tokenStatus)
			w.Write([]byte(s.tokenBody))
		case "/v2/shopping/flight-offers":
			s.offerCalls++
			s.lastOfferQS = map[string]string{}
			for k := range r.URL.Query() {
				s.lastOfferQS[k] = r.URL.Query().Get(k)
			}
			if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(s.offersStatus)
			w.Write([]byte(s.offersBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newStubClient(t *testing.T, stub *amadeusStub) *services.FlightClient {
	t.Helper()
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)
	return services.NewFlightClient(config.AmadeusConfig{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		BaseURL:      server.URL,
	}, server.Client())
}

func assertFallbackShape(t *testing.T, result services.FlightSearchResult) {
	t.Helper()
	require.Len(t, result.Data, 5)
	for _, f := range result.Data {
		assert.Contains(t, []string{"SkyWings", "Global Air", "Ocean Airlines", "Mountain Express"}, f.Airline)
		assert.GreaterOrEqual(t, f.SeatsAvailable, 1)
		assert.LessOrEqual(t, f.SeatsAvailable, 20)
		assert.Empty(t, f.BookingCode)
		assert.GreaterOrEqual(t, f.Price, 300.0)
		assert.LessOrEqual(t, f.Price, 1000.0)
		assert.Equal(t, "USD", f.Currency)
		assert.Equal(t, "NYC", f.Departure.City)
		assert.Equal(t, "PAR", f.Arrival.City)
		assert.Equal(t, "2024-06-01", f.Departure.Date)
	}
}

func TestFlightSearch_LiveOffers(t *testing.T) {
	stub := &amadeusStub{
		tokenStatus:  http.StatusOK,
		tokenBody:    `{"access_token": "tok-123", "expires_in": 1799}`,
		offersStatus: http.StatusOK,
		offersBody:   offersBody,
	}
	client := newStubClient(t, stub)

	result := client.Search("NYC", "PAR", "2024-06-01", "2024-06-08")

	// OFFER-2 has an unparseable price and is skipped, not fatal
	require.Len(t, result.Data, 1)
	f := result.Data[0]
	assert.Equal(t, "AF", f.Airline)
	assert.Equal(t, "AF1234", f.FlightNumber)
	assert.Equal(t, "OFFER-1", f.BookingCode)
	assert.Zero(t, f.SeatsAvailable)
	assert.Equal(t, 523.40, f.Price)
	assert.Equal(t, "NYC", f.Departure.City)
	assert.Equal(t, "2024-06-01", f.Departure.Date)
	assert.Equal(t, "08:30:00", f.Departure.Time)
	assert.Equal(t, "PAR", f.Arrival.City)
	assert.Equal(t, "11:45:00", f.Arrival.Time)

	assert.Equal(t, "1", stub.lastOfferQS["adults"])
	assert.Equal(t, "5", stub.lastOfferQS["max"])
	assert.Equal(t, "2024-06-08", stub.lastOfferQS["returnDate"])
}

func TestFlightSearch_OneWayOmitsReturnDate(t *testing.T) {
	stub := &amadeusStub{
		tokenStatus:  http.StatusOK,
		tokenBody:    `{"access_token": "tok-123"}`,
		offersStatus: http.StatusOK,
		offersBody:   offersBody,
	}
	client := newStubClient(t, stub)

	result := client.Search("NYC", "PAR", "2024-06-01", "")
	require.Len(t, result.Data, 1)
	_, present := stub.lastOfferQS["returnDate"]
	assert.False(t, present)
}

func TestFlightSearch_AuthFailureFallsBack(t *testing.T) {
	stub := &amadeusStub{
		tokenStatus: http.StatusUnauthorized,
		tokenBody:   `{"error": "invalid_client"}`,
	}
	client := newStubClient(t, stub)

	result := client.Search("NYC", "PAR", "2024-06-01", "")
	assertFallbackShape(t, result)
	assert.Zero(t, stub.offerCalls, "search must not run without a token")
}

func TestFlightSearch_MissingTokenFallsBack(t *testing.T) {
	stub := &amadeusStub{
		tokenStatus: http.StatusOK,
		tokenBody:   `{"expires_in": 1799}`,
	}
	client := newStubClient(t, stub)

	result := client.Search("NYC", "PAR", "2024-06-01", "")
	assertFallbackShape(t, result)
	assert.Zero(t, stub.offerCalls)
}

func TestFlightSearch_BadDateFallsBack(t *testing.T) {
	stub := &amadeusStub{
		tokenStatus:  http.StatusOK,
		tokenBody:    `{"access_token": "tok-123"}`,
		offersStatus: http.StatusOK,
		offersBody:   offersBody,
	}
	client := newStubClient(t, stub)

	result := client.Search("NYC", "PAR", "06/01/2024", "")
	require.Len(t, result.Data, 5)
	for _, f := range result.Data {
		assert.Positive(t, f.SeatsAvailable)
	}
	assert.Zero(t, stub.offerCalls, "offers endpoint must not be hit with a bad date")
}

func TestFlightSearch_EmptyOffersFallsBack(t *testing.T) {
	stub := &amadeusStub{
		tokenStatus:  http.StatusOK,
		tokenBody:    `{"access_token": "tok-123"}`,
		offersStatus: http.StatusOK,
		offersBody:   `{"data": []}`,
	}
	client := newStubClient(t, stub)

	result := client.Search("NYC", "PAR", "2024-06-01", "")
	assertFallbackShape(t, result)
	assert.Equal(t, 1, stub.offerCalls)
}

func TestFlightSearch_SearchErrorFallsBack(t *testing.T) {
	stub := &amadeusStub{
		tokenStatus:  http.StatusOK,
		tokenBody:    `{"access_token": "tok-123"}`,
		offersStatus: http.StatusInternalServerError,
		offersBody:   `{"errors": [{"title": "boom"}]}`,
	}
	client := newStubClient(t, stub)

	result := client.Search("NYC", "PAR", "2024-06-01", "")
	assertFallbackShape(t, result)
}

func TestFlightSearch_UnconfiguredServesFallback(t *testing.T) {
	client := services.NewFlightClient(config.AmadeusConfig{BaseURL: "https://example.invalid"}, nil)

	result := client.Search("NYC", "PAR", "2024-06-01", "")
	assertFallbackShape(t, result)
}

func TestFlightFallback_FlightNumberShape(t *testing.T) {
	client := services.NewFlightClient(config.AmadeusConfig{}, nil)

	result := client.Search("NYC", "PAR", "2024-06-01", "")
	for _, f := range result.Data {
		prefix := strings.ToUpper(f.Airline[:2])
		assert.True(t, strings.HasPrefix(f.FlightNumber, prefix),
			"flight number %q should start with %q", f.FlightNumber, prefix)
	}
}
