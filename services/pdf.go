package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripplanner/database"
)

// TripPDFData bundles everything the itinerary PDF renders: the trip record
// plus its decoded detail payloads (any of which may be empty).
type TripPDFData struct {
	Trip     *database.Trip
	Forecast []Forecast
	Hotels   []HotelOffer
	Places   []Place
}

// GenerateTripPDF renders a trip summary PDF and returns the raw bytes
// (stored nowhere — streamed straight to the client).
func GenerateTripPDF(data TripPDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Trip Planner", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Trip ─────────────────────────────────────────────────
	sectionHeader("Trip")
	row("Destination", data.Trip.Destination)
	row("Dates", fmt.Sprintf("%s to %s", data.Trip.StartDate, data.Trip.EndDate))
	row("Budget", fmt.Sprintf("$%.2f USD", data.Trip.Budget))
	row("Interests", data.Trip.Interests)
	pdf.Ln(4)

	// ── Weather ──────────────────────────────────────────────
	if len(data.Forecast) > 0 {
		sectionHeader("Weather Forecast")
		for _, f := range data.Forecast {
			row(f.Date, fmt.Sprintf("%d°C, %s, %d%% humidity", f.Temperature, f.Condition, f.Humidity))
		}
		pdf.Ln(4)
	}

	// ── Hotels ───────────────────────────────────────────────
	if len(data.Hotels) > 0 {
		sectionHeader("Hotel Recommendations")
		for _, h := range data.Hotels {
			row(h.Name, fmt.Sprintf("$%.0f/night, rating %.1f, %d rooms left", h.PricePerNight, h.Rating, h.AvailableRooms))
		}
		pdf.Ln(4)
	}

	// ── Places ───────────────────────────────────────────────
	if len(data.Places) > 0 {
		sectionHeader("Recommended Places")
		for _, p := range data.Places {
			row(p.Name, fmt.Sprintf("%s (rating %.1f)", p.Type, p.Rating))
		}
		pdf.Ln(4)
	}

	// ── Footer ───────────────────────────────────────────────
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(170, 6, "Generated "+time.Now().UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return buf.Bytes(), nil
}
