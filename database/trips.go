package database

import (
	"database/sql"
	"time"
)

// ─── Models ──────────────────────────────────────────────────────────────────

type Trip struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Budget      float64   `json:"budget"`
	Interests   string    `json:"interests"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TripDetail is the one-to-one recommendation bundle attached to a trip.
// Each field holds a JSON-serialized provider payload; a NULL field simply
// means that payload has not been fetched (or the fetch failed).
type TripDetail struct {
	TripID      string
	WeatherData sql.NullString
	HotelData   sql.NullString
	FoodData    sql.NullString
}

// Empty reports whether none of the three payloads are populated, which is
// the signal that a refresh is owed.
func (d *TripDetail) Empty() bool {
	return !d.WeatherData.Valid && !d.HotelData.Valid && !d.FoodData.Valid
}

// ─── Store ───────────────────────────────────────────────────────────────────

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateTrip(t *Trip) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := s.db.Exec(`
		INSERT INTO trips (id, destination, start_date, end_date, budget, interests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Destination, t.StartDate, t.EndDate, t.Budget, t.Interests, t.CreatedAt, t.UpdatedAt)
	return err
}

func (s *Store) GetTrip(id string) (*Trip, error) {
	t := &Trip{}
	err := s.db.QueryRow(`
		SELECT id, destination, start_date, end_date, budget, interests, created_at, updated_at
		FROM trips WHERE id = $1`, id).
		Scan(&t.ID, &t.Destination, &t.StartDate, &t.EndDate, &t.Budget, &t.Interests,
			&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) ListTrips() ([]Trip, error) {
	rows, err := s.db.Query(`
		SELECT id, destination, start_date, end_date, budget, interests, created_at, updated_at
		FROM trips ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.Destination, &t.StartDate, &t.EndDate, &t.Budget,
			&t.Interests, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (s *Store) UpdateTrip(t *Trip) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := s.db.Exec(`
		UPDATE trips SET destination = $1, start_date = $2, end_date = $3, budget = $4,
			interests = $5, updated_at = $6
		WHERE id = $7`,
		t.Destination, t.StartDate, t.EndDate, t.Budget, t.Interests, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteTrip removes a trip and its detail record. The detail row goes first
// so the delete works without relying on ON DELETE CASCADE.
func (s *Store) DeleteTrip(id string) error {
	if _, err := s.db.Exec(`DELETE FROM trip_details WHERE trip_id = $1`, id); err != nil {
		return err
	}
	res, err := s.db.Exec(`DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetOrCreateDetail returns the detail row for a trip, inserting an empty one
// when none exists yet. The second return value reports whether the row was
// just created.
func (s *Store) GetOrCreateDetail(tripID string) (*TripDetail, bool, error) {
	d := &TripDetail{}
	err := s.db.QueryRow(`
		SELECT trip_id, weather_data, hotel_data, food_data
		FROM trip_details WHERE trip_id = $1`, tripID).
		Scan(&d.TripID, &d.WeatherData, &d.HotelData, &d.FoodData)
	if err == nil {
		return d, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	if _, err := s.db.Exec(`
		INSERT INTO trip_details (trip_id) VALUES ($1)
		ON CONFLICT (trip_id) DO NOTHING`, tripID); err != nil {
		return nil, false, err
	}
	return &TripDetail{TripID: tripID}, true, nil
}

func (s *Store) SaveDetail(d *TripDetail) error {
	_, err := s.db.Exec(`
		UPDATE trip_details SET weather_data = $1, hotel_data = $2, food_data = $3
		WHERE trip_id = $4`,
		d.WeatherData, d.HotelData, d.FoodData, d.TripID)
	return err
}
