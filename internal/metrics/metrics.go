package metrics

import (
	"fmt"
	"time"

	"github.com/ria-intl/airportd/internal/aircraft"
	"github.com/ria-intl/airportd/internal/flight"
)

// SystemMetrics aggregates counters over the current dataset. Flight and
// aircraft counters are recomputed from the full collections; booking count
// and revenue accumulate across calls.
type SystemMetrics struct {
	TotalFlights          int       `json:"total_flights"`
	ActiveFlights         int       `json:"active_flights"`
	DelayedFlights        int       `json:"delayed_flights"`
	CancelledFlights      int       `json:"cancelled_flights"`
	TotalAircraft         int       `json:"total_aircraft"`
	ActiveAircraft        int       `json:"active_aircraft"`
	AircraftInMaintenance int       `json:"aircraft_in_maintenance"`
	TotalBookings         int       `json:"total_bookings"`
	RevenueToday          float64   `json:"revenue_today"`
	RevenueMonth          float64   `json:"revenue_month"`
	AverageLoadFactor     float64   `json:"average_load_factor"` // percent of seats sold
	LastUpdated           time.Time `json:"last_updated"`
}

// New returns zeroed metrics
func New() *SystemMetrics {
	return &SystemMetrics{LastUpdated: time.Now()}
}

// UpdateFlightMetrics recomputes flight counters from the full collection
func (m *SystemMetrics) UpdateFlightMetrics(flights []*flight.Flight) {
	m.TotalFlights = len(flights)
	m.ActiveFlights = 0
	m.DelayedFlights = 0
	m.CancelledFlights = 0

	var capacity, sold int
	for _, f := range flights {
		switch f.Status.Kind {
		case flight.StatusOnTime:
			m.ActiveFlights++
		case flight.StatusDelayed:
			m.ActiveFlights++
			m.DelayedFlights++
		case flight.StatusCancelled:
			m.CancelledFlights++
		}
		capacity += f.TotalCapacity
		sold += f.TotalCapacity - f.SeatAvailability.Total()
	}

	if capacity > 0 {
		m.AverageLoadFactor = float64(sold) / float64(capacity) * 100
	} else {
		m.AverageLoadFactor = 0
	}

	m.LastUpdated = time.Now()
}

// UpdateAircraftMetrics recomputes aircraft counters from the full collection
func (m *SystemMetrics) UpdateAircraftMetrics(fleet []*aircraft.Aircraft) {
	m.TotalAircraft = len(fleet)
	m.ActiveAircraft = 0
	m.AircraftInMaintenance = 0

	for _, a := range fleet {
		switch a.Status {
		case aircraft.StatusActive, aircraft.StatusInFlight:
			m.ActiveAircraft++
		case aircraft.StatusMaintenance:
			m.AircraftInMaintenance++
		}
	}

	m.LastUpdated = time.Now()
}

// RecordBooking accumulates booking and revenue counters
func (m *SystemMetrics) RecordBooking(amount float64, totalBookings int) {
	m.TotalBookings = totalBookings
	m.RevenueToday += amount
	m.RevenueMonth += amount
	m.LastUpdated = time.Now()
}

// Summary returns a one-line operational summary
func (m *SystemMetrics) Summary() string {
	return fmt.Sprintf("Flights: %d active, %d delayed | Aircraft: %d active, %d maintenance | Revenue: $%.2f today",
		m.ActiveFlights, m.DelayedFlights, m.ActiveAircraft, m.AircraftInMaintenance, m.RevenueToday)
}
