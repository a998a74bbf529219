package aircraft

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/flight"
)

// Status identifies the operational state of an airframe
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
	StatusInFlight    Status = "in_flight"
)

// Display returns the human-readable status string
func (s Status) Display() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusMaintenance:
		return "Maintenance"
	case StatusRetired:
		return "Retired"
	case StatusInFlight:
		return "In Flight"
	default:
		return string(s)
	}
}

// SeatConfiguration describes the cabin layout
type SeatConfiguration struct {
	EconomyRows         int `json:"economy_rows"`
	EconomySeatsPerRow  int `json:"economy_seats_per_row"`
	BusinessRows        int `json:"business_rows"`
	BusinessSeatsPerRow int `json:"business_seats_per_row"`
	FirstRows           int `json:"first_class_rows"`
	FirstSeatsPerRow    int `json:"first_class_seats_per_row"`
}

// PerformanceSpecs holds airframe performance figures
type PerformanceSpecs struct {
	MaxSpeedKmh           int     `json:"max_speed_kmh"`
	CruiseSpeedKmh        int     `json:"cruise_speed_kmh"`
	MaxAltitudeM          int     `json:"max_altitude_m"`
	RangeKm               int     `json:"range_km"`
	FuelEfficiencyLPer100 float64 `json:"fuel_efficiency_l_per_100km"`
}

// Aircraft represents a single airframe in the fleet
type Aircraft struct {
	ID                uuid.UUID         `json:"id"`
	Registration      string            `json:"registration"` // e.g. "N123RIA"
	Model             string            `json:"model"`        // e.g. "Boeing 737-800"
	Manufacturer      string            `json:"manufacturer"`
	YearManufactured  int               `json:"year_manufactured"`
	Status            Status            `json:"status"`
	SeatConfig        SeatConfiguration `json:"seat_configuration"`
	TotalCapacity     int               `json:"total_capacity"`
	BaggageCapacityKg int               `json:"baggage_capacity_kg"`
	MaxCargoWeightKg  int               `json:"max_cargo_weight_kg"`
	Performance       PerformanceSpecs  `json:"performance"`
	MaintenanceHours  float64           `json:"maintenance_hours"`
	FlightHours       float64           `json:"flight_hours"`
}

// seatConfigs maps known models to their cabin layout
var seatConfigs = map[string]SeatConfiguration{
	"Boeing 737-800": {EconomyRows: 28, EconomySeatsPerRow: 6, BusinessRows: 4, BusinessSeatsPerRow: 4, FirstRows: 2, FirstSeatsPerRow: 4},
	"Airbus A320":    {EconomyRows: 25, EconomySeatsPerRow: 6, BusinessRows: 3, BusinessSeatsPerRow: 4, FirstRows: 2, FirstSeatsPerRow: 4},
	"Boeing 777-300": {EconomyRows: 42, EconomySeatsPerRow: 9, BusinessRows: 8, BusinessSeatsPerRow: 6, FirstRows: 4, FirstSeatsPerRow: 4},
	"Airbus A380":    {EconomyRows: 50, EconomySeatsPerRow: 10, BusinessRows: 12, BusinessSeatsPerRow: 6, FirstRows: 6, FirstSeatsPerRow: 4},
}

// performanceSpecs maps known models to performance figures
var performanceSpecs = map[string]PerformanceSpecs{
	"Boeing 737-800": {MaxSpeedKmh: 876, CruiseSpeedKmh: 828, MaxAltitudeM: 12500, RangeKm: 5665, FuelEfficiencyLPer100: 3.2},
	"Airbus A320":    {MaxSpeedKmh: 871, CruiseSpeedKmh: 828, MaxAltitudeM: 12000, RangeKm: 6150, FuelEfficiencyLPer100: 2.9},
	"Boeing 777-300": {MaxSpeedKmh: 905, CruiseSpeedKmh: 892, MaxAltitudeM: 13100, RangeKm: 11135, FuelEfficiencyLPer100: 4.8},
	"Airbus A380":    {MaxSpeedKmh: 945, CruiseSpeedKmh: 903, MaxAltitudeM: 13100, RangeKm: 15200, FuelEfficiencyLPer100: 6.2},
}

var defaultSeatConfig = SeatConfiguration{
	EconomyRows: 20, EconomySeatsPerRow: 6,
	BusinessRows: 3, BusinessSeatsPerRow: 4,
	FirstRows: 2, FirstSeatsPerRow: 4,
}

var defaultPerformance = PerformanceSpecs{
	MaxSpeedKmh: 800, CruiseSpeedKmh: 750, MaxAltitudeM: 11000,
	RangeKm: 4000, FuelEfficiencyLPer100: 3.5,
}

// New creates an aircraft with the default configuration for its model
func New(registration, model, manufacturer string, yearManufactured int) *Aircraft {
	seatConfig, ok := seatConfigs[model]
	if !ok {
		seatConfig = defaultSeatConfig
	}
	performance, ok := performanceSpecs[model]
	if !ok {
		performance = defaultPerformance
	}

	totalCapacity := seatConfig.TotalCapacity()

	return &Aircraft{
		ID:                uuid.New(),
		Registration:      registration,
		Model:             model,
		Manufacturer:      manufacturer,
		YearManufactured:  yearManufactured,
		Status:            StatusActive,
		SeatConfig:        seatConfig,
		TotalCapacity:     totalCapacity,
		BaggageCapacityKg: totalCapacity * 25,
		MaxCargoWeightKg:  totalCapacity * 35,
		Performance:       performance,
	}
}

// TotalCapacity returns the seat count across all cabins
func (c SeatConfiguration) TotalCapacity() int {
	return c.EconomyRows*c.EconomySeatsPerRow +
		c.BusinessRows*c.BusinessSeatsPerRow +
		c.FirstRows*c.FirstSeatsPerRow
}

// Clone returns an independent copy. Callers outside the dataset lock must
// only ever see clones.
func (a *Aircraft) Clone() *Aircraft {
	out := *a
	return &out
}

// SeatsByClass returns the cabin seat count for the given class
func (a *Aircraft) SeatsByClass(class flight.SeatClass) int {
	switch class {
	case flight.Economy:
		return a.SeatConfig.EconomyRows * a.SeatConfig.EconomySeatsPerRow
	case flight.Business:
		return a.SeatConfig.BusinessRows * a.SeatConfig.BusinessSeatsPerRow
	case flight.FirstClass:
		return a.SeatConfig.FirstRows * a.SeatConfig.FirstSeatsPerRow
	default:
		return 0
	}
}

// AvailableForFlight reports whether the airframe can be assigned to a flight
func (a *Aircraft) AvailableForFlight() bool {
	return a.Status == StatusActive
}

// AddFlightHours accumulates flying time. Every 100 flight hours beyond the
// logged maintenance hours grounds the aircraft for maintenance.
func (a *Aircraft) AddFlightHours(hours float64) {
	a.FlightHours += hours
	if a.FlightHours-a.MaintenanceHours >= 100.0 {
		a.Status = StatusMaintenance
	}
}

// PerformMaintenance logs maintenance time and reactivates the aircraft once
// it catches up with accumulated flight hours
func (a *Aircraft) PerformMaintenance(hours float64) {
	a.MaintenanceHours += hours
	if a.MaintenanceHours >= a.FlightHours {
		a.Status = StatusActive
	}
}

// Age returns the airframe age in years as of the given year
func (a *Aircraft) Age(currentYear int) int {
	return currentYear - a.YearManufactured
}

// String implements fmt.Stringer
func (a *Aircraft) String() string {
	return fmt.Sprintf("%s | %s | %d seats | %s",
		a.Registration, a.Model, a.TotalCapacity, a.Status.Display())
}
