package jsonfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/aircraft"
	"github.com/ria-intl/airportd/internal/airport"
	"github.com/ria-intl/airportd/internal/booking"
	"github.com/ria-intl/airportd/internal/flight"
	"github.com/ria-intl/airportd/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), logger.Nop())
}

func TestLoadMissingFileYieldsEmptySlice(t *testing.T) {
	store := newTestStore(t)

	flights, err := store.LoadFlights()
	require.NoError(t, err)
	assert.Empty(t, flights)

	bookings, err := store.LoadBookings()
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := flight.New("RIA101", "RIA International Airways", "LAX", "JFK", dep, dep.Add(5*time.Hour), uuid.New(), 180)
	f.SetDelay(25)
	f.SetGate("B7")

	require.NoError(t, store.SaveFlights([]*flight.Flight{f}))

	loaded, err := store.LoadFlights()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, "RIA101", got.FlightNumber)
	assert.Equal(t, flight.StatusDelayed, got.Status.Kind)
	assert.Equal(t, 25, got.Status.DelayMinutes)
	assert.Equal(t, "B7", got.Gate)
	assert.Equal(t, f.SeatAvailability, got.SeatAvailability)
	assert.True(t, f.ArrivalTime.Equal(got.ArrivalTime))
}

func TestInitializeSeedsSampleData(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Initialize())

	db, err := store.LoadAll()
	require.NoError(t, err)

	assert.NotEmpty(t, db.Flights)
	assert.NotEmpty(t, db.Aircraft)
	assert.NotEmpty(t, db.Airports)

	// The seeded dataset must be internally consistent
	assert.Empty(t, ValidateDatabase(db))
}

func TestInitializeDoesNotReseed(t *testing.T) {
	store := newTestStore(t)

	// Existing (empty) files mean the operator's data stands
	require.NoError(t, store.Initialize())
	require.NoError(t, store.SaveFlights(nil))

	require.NoError(t, store.Initialize())
	flights, err := store.LoadFlights()
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestValidateDatabaseReportsViolations(t *testing.T) {
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := flight.New("RIA999", "RIA International Airways", "XXX", "YYY", dep, dep.Add(3*time.Hour), uuid.New(), 100)

	passenger := booking.NewPassenger("Jane", "Doe", "jane@example.com", "", "1985-04-12", booking.PassengerAdult)
	orphan := booking.New(uuid.New(), passenger, flight.Economy, "RIA123456", 299.99, "credit_card")

	db := &Database{
		Flights:  []*flight.Flight{f},
		Bookings: []*booking.Booking{orphan},
	}

	issues := ValidateDatabase(db)
	assert.Len(t, issues, 4) // missing aircraft, two bad airport codes, orphaned booking
}

func TestValidateDatabaseCleanDataset(t *testing.T) {
	craft := aircraft.New("N123RIA", "Boeing 737-800", "Boeing", 2018)
	lax := airport.New("LAX", "KLAX", "Los Angeles International", "Los Angeles", "USA", "America/Los_Angeles", 33.9425, -118.4081, 38)
	jfk := airport.New("JFK", "KJFK", "John F. Kennedy International", "New York", "USA", "America/New_York", 40.6413, -73.7781, 4)

	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := flight.New("RIA101", "RIA International Airways", "LAX", "JFK", dep, dep.Add(5*time.Hour), craft.ID, 180)

	passenger := booking.NewPassenger("Jane", "Doe", "jane@example.com", "", "1985-04-12", booking.PassengerAdult)
	b := booking.New(f.ID, passenger, flight.Economy, "RIA123456", 299.99, "credit_card")

	db := &Database{
		Flights:  []*flight.Flight{f},
		Aircraft: []*aircraft.Aircraft{craft},
		Bookings: []*booking.Booking{b},
		Airports: []*airport.Airport{lax, jfk},
	}

	assert.Empty(t, ValidateDatabase(db))
}

func TestBackupCopiesCollectionFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Initialize())

	path, err := store.Backup()
	require.NoError(t, err)

	for _, name := range []string{"flights.json", "aircraft.json", "airports.json"} {
		_, err := os.Stat(filepath.Join(path, name))
		assert.NoError(t, err, name)
	}
}
