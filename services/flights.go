package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tripplanner/config"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type FlightLeg struct {
	City string `json:"city"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// Flight is the normalized flight record. Live offers carry BookingCode;
// fallback records carry SeatsAvailable instead. The two wire shapes are
// intentionally different so callers can be migrated knowingly later.
type Flight struct {
	Airline        string    `json:"airline"`
	FlightNumber   string    `json:"flight_number"`
	Departure      FlightLeg `json:"departure"`
	Arrival        FlightLeg `json:"arrival"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	BookingCode    string    `json:"booking_code,omitempty"`
	SeatsAvailable int       `json:"seats_available,omitempty"`
}

type FlightSearchResult struct {
	Data []Flight `json:"data"`
}

var fallbackAirlines = []string{"SkyWings", "Global Air", "Ocean Airlines", "Mountain Express"}

// ─── Client ───────────────────────────────────────────────────────────────────

// FlightClient searches live flight offers via the Amadeus API, degrading to
// synthesized data whenever the integration is unconfigured or any step of the
// live call fails. Search never returns an error to its caller.
type FlightClient struct {
	cfg        config.AmadeusConfig
	httpClient *http.Client
}

func NewFlightClient(cfg config.AmadeusConfig, httpClient *http.Client) *FlightClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &FlightClient{cfg: cfg, httpClient: httpClient}
}

// Search runs the token exchange and flight-offers lookup for the given route.
// returnDate may be empty for a one-way search. Every failure path falls back
// to dummy data, logged but never surfaced.
func (c *FlightClient) Search(origin, destination, departureDate, returnDate string) FlightSearchResult {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		log.Println("⚠️  Amadeus credentials not configured — serving fallback flights")
		return c.fallback(origin, destination, departureDate)
	}

	token, err := c.authenticate()
	if err != nil {
		log.Printf("⚠️  Amadeus auth failed: %v — serving fallback flights", err)
		return c.fallback(origin, destination, departureDate)
	}

	depDate, retDate, err := normalizeDates(departureDate, returnDate)
	if err != nil {
		log.Printf("⚠️  Invalid search dates: %v — serving fallback flights", err)
		return c.fallback(origin, destination, departureDate)
	}

	flights, err := c.searchOffers(token, origin, destination, depDate, retDate)
	if err != nil {
		log.Printf("⚠️  Amadeus flight search failed: %v — serving fallback flights", err)
		return c.fallback(origin, destination, departureDate)
	}
	if len(flights) == 0 {
		log.Println("⚠️  Amadeus returned no usable offers — serving fallback flights")
		return c.fallback(origin, destination, departureDate)
	}

	log.Printf("✅ Amadeus: %d live flight offers", len(flights))
	return FlightSearchResult{Data: flights}
}

// ─── OAuth2 token ─────────────────────────────────────────────────────────────

func (c *FlightClient) authenticate() (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequest("POST",
		c.cfg.BaseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("no access token in response")
	}
	return result.AccessToken, nil
}

func normalizeDates(departureDate, returnDate string) (string, string, error) {
	dep, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		return "", "", fmt.Errorf("departure date %q: %w", departureDate, err)
	}
	if returnDate == "" {
		return dep.Format("2006-01-02"), "", nil
	}
	ret, err := time.Parse("2006-01-02", returnDate)
	if err != nil {
		return "", "", fmt.Errorf("return date %q: %w", returnDate, err)
	}
	return dep.Format("2006-01-02"), ret.Format("2006-01-02"), nil
}

// ─── Flight offers ────────────────────────────────────────────────────────────

type amadeusOffersResponse struct {
	Data []amadeusOffer `json:"data"`
}

type amadeusOffer struct {
	ID    string `json:"id"`
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Segments []struct {
			Departure struct {
				At string `json:"at"`
			} `json:"departure"`
			Arrival struct {
				At string `json:"at"`
			} `json:"arrival"`
			CarrierCode string `json:"carrierCode"`
			Number      string `json:"number"`
		} `json:"segments"`
	} `json:"itineraries"`
}

func (c *FlightClient) searchOffers(token, origin, destination, departureDate, returnDate string) ([]Flight, error) {
	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", destination)
	q.Set("departureDate", departureDate)
	q.Set("adults", "1")
	q.Set("max", "5")
	if returnDate != "" {
		q.Set("returnDate", returnDate)
	}

	req, err := http.NewRequest("GET",
		c.cfg.BaseURL+"/v2/shopping/flight-offers?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("flight offers request failed (%d): %s", resp.StatusCode, string(body))
	}

	var offers amadeusOffersResponse
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	flights := make([]Flight, 0, len(offers.Data))
	for _, offer := range offers.Data {
		f, err := mapOffer(offer, origin, destination)
		if err != nil {
			// a single bad offer is skipped, not fatal
			log.Printf("⚠️  Skipping unmappable flight offer %s: %v", offer.ID, err)
			continue
		}
		flights = append(flights, f)
	}
	return flights, nil
}

func mapOffer(offer amadeusOffer, origin, destination string) (Flight, error) {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return Flight{}, fmt.Errorf("offer has no segments")
	}
	seg := offer.Itineraries[0].Segments[0]

	price, err := strconv.ParseFloat(offer.Price.Total, 64)
	if err != nil {
		return Flight{}, fmt.Errorf("bad price %q: %w", offer.Price.Total, err)
	}

	depDate, depTime := splitTimestamp(seg.Departure.At)
	arrDate, arrTime := splitTimestamp(seg.Arrival.At)

	return Flight{
		Airline:      seg.CarrierCode,
		FlightNumber: seg.CarrierCode + seg.Number,
		Departure:    FlightLeg{City: origin, Date: depDate, Time: depTime},
		Arrival:      FlightLeg{City: destination, Date: arrDate, Time: arrTime},
		Price:        price,
		Currency:     offer.Price.Currency,
		BookingCode:  offer.ID,
	}, nil
}

// splitTimestamp breaks an Amadeus timestamp (2024-06-01T14:30:00.000) into
// its date and clock parts, discarding fractional seconds.
func splitTimestamp(at string) (string, string) {
	date, clock, found := strings.Cut(at, "T")
	if !found {
		return at, ""
	}
	if dot := strings.Index(clock, "."); dot >= 0 {
		clock = clock[:dot]
	}
	return date, clock
}

// ─── Fallback ─────────────────────────────────────────────────────────────────

func (c *FlightClient) fallback(origin, destination, departureDate string) FlightSearchResult {
	flights := make([]Flight, 0, 5)
	for i := 0; i < 5; i++ {
		airline := fallbackAirlines[rand.Intn(len(fallbackAirlines))]
		flights = append(flights, Flight{
			Airline:      airline,
			FlightNumber: fmt.Sprintf("%s%d", strings.ToUpper(airline[:2]), 100+rand.Intn(900)),
			Departure: FlightLeg{
				City: origin,
				Date: departureDate,
				Time: fmt.Sprintf("%02d:%02d", rand.Intn(24), rand.Intn(60)),
			},
			Arrival: FlightLeg{
				City: destination,
				Date: departureDate,
				Time: fmt.Sprintf("%02d:%02d", rand.Intn(24), rand.Intn(60)),
			},
			Price:          float64(300 + rand.Intn(701)),
			Currency:       "USD",
			SeatsAvailable: 1 + rand.Intn(20),
		})
	}
	return FlightSearchResult{Data: flights}
}
