package aircraft

import (
	"testing"

	"github.com/ria-intl/airportd/internal/flight"
	"github.com/stretchr/testify/assert"
)

func TestNewKnownModel(t *testing.T) {
	a := New("N123RIA", "Boeing 737-800", "Boeing", 2020)

	assert.Equal(t, StatusActive, a.Status)
	assert.Equal(t, 28*6+4*4+2*4, a.TotalCapacity)
	assert.Equal(t, a.TotalCapacity*25, a.BaggageCapacityKg)
	assert.Equal(t, 828, a.Performance.CruiseSpeedKmh)
}

func TestNewUnknownModelUsesDefaults(t *testing.T) {
	a := New("N999RIA", "Concorde", "Aerospatiale", 1976)

	assert.Equal(t, defaultSeatConfig.TotalCapacity(), a.TotalCapacity)
	assert.Equal(t, defaultPerformance.RangeKm, a.Performance.RangeKm)
}

func TestSeatsByClass(t *testing.T) {
	a := New("N123RIA", "Airbus A320", "Airbus", 2019)

	assert.Equal(t, 25*6, a.SeatsByClass(flight.Economy))
	assert.Equal(t, 3*4, a.SeatsByClass(flight.Business))
	assert.Equal(t, 2*4, a.SeatsByClass(flight.FirstClass))
}

func TestFlightHoursTriggerMaintenance(t *testing.T) {
	a := New("N123RIA", "Boeing 737-800", "Boeing", 2020)

	a.AddFlightHours(99.5)
	assert.Equal(t, StatusActive, a.Status)
	assert.True(t, a.AvailableForFlight())

	a.AddFlightHours(0.5)
	assert.Equal(t, StatusMaintenance, a.Status)
	assert.False(t, a.AvailableForFlight())
}

func TestMaintenanceReactivates(t *testing.T) {
	a := New("N123RIA", "Boeing 737-800", "Boeing", 2020)
	a.AddFlightHours(120)

	a.PerformMaintenance(50)
	assert.Equal(t, StatusMaintenance, a.Status)

	a.PerformMaintenance(70)
	assert.Equal(t, StatusActive, a.Status)
}

func TestAge(t *testing.T) {
	a := New("N123RIA", "Boeing 737-800", "Boeing", 2018)
	assert.Equal(t, 8, a.Age(2026))
}
