package metrics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/aircraft"
	"github.com/ria-intl/airportd/internal/flight"
	"github.com/stretchr/testify/assert"
)

func TestUpdateFlightMetrics(t *testing.T) {
	now := time.Now()
	onTime := flight.New("RIA101", "RIA International Airways", "LAX", "JFK", now.Add(2*time.Hour), now.Add(7*time.Hour), uuid.New(), 100)
	delayed := flight.New("RIA201", "RIA International Airways", "JFK", "LHR", now.Add(3*time.Hour), now.Add(10*time.Hour), uuid.New(), 100)
	delayed.SetDelay(20)
	cancelled := flight.New("RIA301", "RIA International Airways", "LHR", "CDG", now.Add(4*time.Hour), now.Add(6*time.Hour), uuid.New(), 100)
	cancelled.Status = flight.Status{Kind: flight.StatusCancelled}

	m := New()
	m.UpdateFlightMetrics([]*flight.Flight{onTime, delayed, cancelled})

	assert.Equal(t, 3, m.TotalFlights)
	assert.Equal(t, 2, m.ActiveFlights)
	assert.Equal(t, 1, m.DelayedFlights)
	assert.Equal(t, 1, m.CancelledFlights)
	assert.Zero(t, m.AverageLoadFactor)
}

func TestLoadFactorTracksSoldSeats(t *testing.T) {
	now := time.Now()
	f := flight.New("RIA101", "RIA International Airways", "LAX", "JFK", now.Add(2*time.Hour), now.Add(7*time.Hour), uuid.New(), 100)
	for i := 0; i < 25; i++ {
		if err := f.BookSeat(flight.Economy, now); err != nil {
			t.Fatal(err)
		}
	}

	m := New()
	m.UpdateFlightMetrics([]*flight.Flight{f})
	assert.InDelta(t, 25.0, m.AverageLoadFactor, 1e-9)
}

func TestUpdateAircraftMetrics(t *testing.T) {
	active := aircraft.New("N111RIA", "Boeing 737-800", "Boeing", 2020)
	inFlight := aircraft.New("N222RIA", "Airbus A320", "Airbus", 2019)
	inFlight.Status = aircraft.StatusInFlight
	grounded := aircraft.New("N333RIA", "Airbus A320", "Airbus", 2015)
	grounded.Status = aircraft.StatusMaintenance

	m := New()
	m.UpdateAircraftMetrics([]*aircraft.Aircraft{active, inFlight, grounded})

	assert.Equal(t, 3, m.TotalAircraft)
	assert.Equal(t, 2, m.ActiveAircraft)
	assert.Equal(t, 1, m.AircraftInMaintenance)
}

func TestRecordBookingAccumulatesRevenue(t *testing.T) {
	m := New()
	m.RecordBooking(389.99, 1)
	m.RecordBooking(899.99, 2)

	assert.Equal(t, 2, m.TotalBookings)
	assert.InDelta(t, 1289.98, m.RevenueToday, 1e-9)
	assert.InDelta(t, 1289.98, m.RevenueMonth, 1e-9)
}
