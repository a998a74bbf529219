package sim

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/aircraft"
	"github.com/ria-intl/airportd/internal/flight"
	"github.com/ria-intl/airportd/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimFlight(departure, arrival time.Time) *flight.Flight {
	return flight.New("RIA101", "RIA International Airways", "LAX", "JFK", departure, arrival, uuid.New(), 180)
}

func TestFlightEntersBoardingWithinWindow(t *testing.T) {
	now := time.Now()
	f := newSimFlight(now.Add(20*time.Minute), now.Add(6*time.Hour))
	s := New(time.Minute, logger.Nop())

	changes, ran := s.Update(now, []*flight.Flight{f}, nil)
	require.True(t, ran)

	assert.Equal(t, flight.StatusBoarding, f.Status.Kind)
	require.Len(t, changes, 1)
	assert.Equal(t, "flight", changes[0].EntityType)
	assert.Equal(t, "Boarding", changes[0].To)
}

func TestFlightStaysPutOutsideBoardingWindow(t *testing.T) {
	now := time.Now()
	f := newSimFlight(now.Add(40*time.Minute), now.Add(6*time.Hour))
	s := New(time.Minute, logger.Nop())

	changes, ran := s.Update(now, []*flight.Flight{f}, nil)
	require.True(t, ran)

	assert.Equal(t, flight.StatusOnTime, f.Status.Kind)
	assert.Empty(t, changes)
}

func TestDelayedFlightEntersBoarding(t *testing.T) {
	now := time.Now()
	f := newSimFlight(now.Add(25*time.Minute), now.Add(6*time.Hour))
	f.SetDelay(15)
	s := New(time.Minute, logger.Nop())

	_, ran := s.Update(now, []*flight.Flight{f}, nil)
	require.True(t, ran)
	assert.Equal(t, flight.StatusBoarding, f.Status.Kind)
}

func TestFlightDepartsAfterDepartureTime(t *testing.T) {
	now := time.Now()
	f := newSimFlight(now.Add(-10*time.Minute), now.Add(5*time.Hour))
	s := New(time.Minute, logger.Nop())

	_, ran := s.Update(now, []*flight.Flight{f}, nil)
	require.True(t, ran)
	assert.Equal(t, flight.StatusDeparted, f.Status.Kind)
}

func TestFlightArrivesAfterArrivalTime(t *testing.T) {
	now := time.Now()
	f := newSimFlight(now.Add(-6*time.Hour), now.Add(-10*time.Minute))
	s := New(time.Minute, logger.Nop())

	_, ran := s.Update(now, []*flight.Flight{f}, nil)
	require.True(t, ran)
	assert.Equal(t, flight.StatusArrived, f.Status.Kind)
}

func TestBoardingToDeparted(t *testing.T) {
	now := time.Now()
	f := newSimFlight(now.Add(-5*time.Minute), now.Add(5*time.Hour))
	f.Status = flight.Status{Kind: flight.StatusBoarding}
	s := New(time.Minute, logger.Nop())

	_, ran := s.Update(now, []*flight.Flight{f}, nil)
	require.True(t, ran)
	assert.Equal(t, flight.StatusDeparted, f.Status.Kind)
}

func TestTerminalStatusesNeverAdvance(t *testing.T) {
	now := time.Now()
	s := New(time.Minute, logger.Nop())

	cancelled := newSimFlight(now.Add(-6*time.Hour), now.Add(-time.Hour))
	cancelled.Status = flight.Status{Kind: flight.StatusCancelled}

	arrived := newSimFlight(now.Add(-6*time.Hour), now.Add(-time.Hour))
	arrived.Status = flight.Status{Kind: flight.StatusArrived}

	changes, ran := s.Update(now, []*flight.Flight{cancelled, arrived}, nil)
	require.True(t, ran)

	assert.Equal(t, flight.StatusCancelled, cancelled.Status.Kind)
	assert.Equal(t, flight.StatusArrived, arrived.Status.Kind)
	assert.Empty(t, changes)
}

func TestAircraftDerivedInFlightAndBack(t *testing.T) {
	now := time.Now()
	craft := aircraft.New("N123RIA", "Boeing 737-800", "Boeing", 2018)
	f := newSimFlight(now.Add(20*time.Minute), now.Add(6*time.Hour))
	f.AircraftID = craft.ID

	s := New(time.Minute, logger.Nop())

	_, ran := s.Update(now, []*flight.Flight{f}, []*aircraft.Aircraft{craft})
	require.True(t, ran)
	assert.Equal(t, aircraft.StatusInFlight, craft.Status)

	// Once the flight has arrived the aircraft goes back to Active
	f.Status = flight.Status{Kind: flight.StatusArrived}
	later := now.Add(2 * time.Minute)
	_, ran = s.Update(later, []*flight.Flight{f}, []*aircraft.Aircraft{craft})
	require.True(t, ran)
	assert.Equal(t, aircraft.StatusActive, craft.Status)
}

func TestMaintenanceAircraftUntouched(t *testing.T) {
	now := time.Now()
	craft := aircraft.New("N200RIA", "Airbus A320", "Airbus", 2015)
	craft.Status = aircraft.StatusMaintenance

	f := newSimFlight(now.Add(20*time.Minute), now.Add(6*time.Hour))
	f.AircraftID = craft.ID

	s := New(time.Minute, logger.Nop())
	_, ran := s.Update(now, []*flight.Flight{f}, []*aircraft.Aircraft{craft})
	require.True(t, ran)

	assert.Equal(t, aircraft.StatusMaintenance, craft.Status)
}

func TestCooldownSkipsEarlyRuns(t *testing.T) {
	now := time.Now()
	s := New(60*time.Second, logger.Nop())

	_, ran := s.Update(now, nil, nil)
	require.True(t, ran)

	// Too soon: rejected, and the rejection must not reset the clock
	_, ran = s.Update(now.Add(30*time.Second), nil, nil)
	assert.False(t, ran)

	_, ran = s.Update(now.Add(61*time.Second), nil, nil)
	assert.True(t, ran)
}
