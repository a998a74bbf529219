package jsonfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ria-intl/airportd/internal/aircraft"
	"github.com/ria-intl/airportd/internal/airport"
	"github.com/ria-intl/airportd/internal/booking"
	"github.com/ria-intl/airportd/internal/flight"
	"github.com/ria-intl/airportd/pkg/logger"
)

const (
	flightsFile  = "flights.json"
	aircraftFile = "aircraft.json"
	bookingsFile = "bookings.json"
	airportsFile = "airports.json"
)

// Database is the full persisted dataset
type Database struct {
	Flights  []*flight.Flight     `json:"flights"`
	Aircraft []*aircraft.Aircraft `json:"aircraft"`
	Bookings []*booking.Booking   `json:"bookings"`
	Airports []*airport.Airport   `json:"airports"`
}

// Store persists entity collections as JSON files under a data directory.
// Each save replaces the collection file in full; a collection with no file
// loads as an empty slice.
type Store struct {
	dataDir string
	logger  *logger.Logger
}

// NewStore creates a JSON file store rooted at dataDir
func NewStore(dataDir string, log *logger.Logger) *Store {
	return &Store{
		dataDir: dataDir,
		logger:  log.Named("jsonfile"),
	}
}

// Initialize ensures the data directory exists and seeds sample data on
// first run
func (s *Store) Initialize() error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return s.seedIfEmpty()
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// loadCollection reads a JSON collection file. A missing file is not an
// error; it yields an empty slice.
func loadCollection[T any](s *Store, name string) ([]T, error) {
	content, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var entities []T
	if err := json.Unmarshal(content, &entities); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return entities, nil
}

// saveCollection replaces a collection file in full. The write goes through
// a temp file and rename so readers never observe a partial file.
func saveCollection[T any](s *Store, name string, entities []T) error {
	content, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// LoadFlights loads the flight collection
func (s *Store) LoadFlights() ([]*flight.Flight, error) {
	flights, err := loadCollection[*flight.Flight](s, flightsFile)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Loaded flights", logger.Int("count", len(flights)))
	return flights, nil
}

// SaveFlights replaces the flight collection
func (s *Store) SaveFlights(flights []*flight.Flight) error {
	return saveCollection(s, flightsFile, flights)
}

// LoadAircraft loads the aircraft collection
func (s *Store) LoadAircraft() ([]*aircraft.Aircraft, error) {
	fleet, err := loadCollection[*aircraft.Aircraft](s, aircraftFile)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Loaded aircraft", logger.Int("count", len(fleet)))
	return fleet, nil
}

// SaveAircraft replaces the aircraft collection
func (s *Store) SaveAircraft(fleet []*aircraft.Aircraft) error {
	return saveCollection(s, aircraftFile, fleet)
}

// LoadBookings loads the booking collection
func (s *Store) LoadBookings() ([]*booking.Booking, error) {
	bookings, err := loadCollection[*booking.Booking](s, bookingsFile)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Loaded bookings", logger.Int("count", len(bookings)))
	return bookings, nil
}

// SaveBookings replaces the booking collection
func (s *Store) SaveBookings(bookings []*booking.Booking) error {
	return saveCollection(s, bookingsFile, bookings)
}

// LoadAirports loads the airport collection
func (s *Store) LoadAirports() ([]*airport.Airport, error) {
	airports, err := loadCollection[*airport.Airport](s, airportsFile)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Loaded airports", logger.Int("count", len(airports)))
	return airports, nil
}

// SaveAirports replaces the airport collection
func (s *Store) SaveAirports(airports []*airport.Airport) error {
	return saveCollection(s, airportsFile, airports)
}

// LoadAll loads the complete dataset
func (s *Store) LoadAll() (*Database, error) {
	flights, err := s.LoadFlights()
	if err != nil {
		return nil, err
	}
	fleet, err := s.LoadAircraft()
	if err != nil {
		return nil, err
	}
	bookings, err := s.LoadBookings()
	if err != nil {
		return nil, err
	}
	airports, err := s.LoadAirports()
	if err != nil {
		return nil, err
	}

	return &Database{
		Flights:  flights,
		Aircraft: fleet,
		Bookings: bookings,
		Airports: airports,
	}, nil
}

// SaveAll persists the complete dataset
func (s *Store) SaveAll(db *Database) error {
	if err := s.SaveFlights(db.Flights); err != nil {
		return err
	}
	if err := s.SaveAircraft(db.Aircraft); err != nil {
		return err
	}
	if err := s.SaveBookings(db.Bookings); err != nil {
		return err
	}
	if err := s.SaveAirports(db.Airports); err != nil {
		return err
	}

	s.logger.Info("Saved complete dataset",
		logger.Int("flights", len(db.Flights)),
		logger.Int("aircraft", len(db.Aircraft)),
		logger.Int("bookings", len(db.Bookings)),
		logger.Int("airports", len(db.Airports)),
	)
	return nil
}

// Backup copies the persisted collection files to a timestamped directory
// and returns its path. In-memory state is untouched.
func (s *Store) Backup() (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	backupDir := filepath.Join(s.dataDir, "backups", timestamp)

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	for _, name := range []string{flightsFile, aircraftFile, bookingsFile, airportsFile} {
		if err := copyFile(s.path(name), filepath.Join(backupDir, name)); err != nil {
			return "", err
		}
	}

	s.logger.Info("Created backup", logger.String("path", backupDir))
	return backupDir, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}

// ValidateIntegrity loads the persisted dataset and cross-checks entity
// references, returning one message per violation
func (s *Store) ValidateIntegrity() ([]string, error) {
	db, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	return ValidateDatabase(db), nil
}

// ValidateDatabase cross-checks references within a dataset: every flight's
// aircraft must exist, every booking's flight must exist, and every flight's
// origin and destination must be known airport codes.
func ValidateDatabase(db *Database) []string {
	var issues []string

	aircraftIDs := make(map[string]bool, len(db.Aircraft))
	for _, a := range db.Aircraft {
		aircraftIDs[a.ID.String()] = true
	}
	flightIDs := make(map[string]bool, len(db.Flights))
	for _, f := range db.Flights {
		flightIDs[f.ID.String()] = true
	}
	airportCodes := make(map[string]bool, len(db.Airports))
	for _, a := range db.Airports {
		airportCodes[a.Code] = true
	}

	for _, f := range db.Flights {
		if !aircraftIDs[f.AircraftID.String()] {
			issues = append(issues, fmt.Sprintf("flight %s references non-existent aircraft %s", f.FlightNumber, f.AircraftID))
		}
		if !airportCodes[f.Origin] {
			issues = append(issues, fmt.Sprintf("flight %s has invalid origin airport: %s", f.FlightNumber, f.Origin))
		}
		if !airportCodes[f.Destination] {
			issues = append(issues, fmt.Sprintf("flight %s has invalid destination airport: %s", f.FlightNumber, f.Destination))
		}
	}

	for _, b := range db.Bookings {
		if !flightIDs[b.FlightID.String()] {
			issues = append(issues, fmt.Sprintf("booking %s references non-existent flight %s", b.TicketNumber, b.FlightID))
		}
	}

	return issues
}
