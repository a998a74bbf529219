package airport

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Size classifies an airport by annual passenger volume
type Size string

const (
	SizeSmall  Size = "small"  // < 1M passengers/year
	SizeMedium Size = "medium" // 1M - 10M
	SizeLarge  Size = "large"  // 10M - 40M
	SizeHub    Size = "hub"    // > 40M
)

// Terminal is a passenger terminal within an airport
type Terminal struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Gates           []string `json:"gates"`
	Amenities       []string `json:"amenities"`
	IsInternational bool     `json:"is_international"`
}

// Runway describes a single runway
type Runway struct {
	ID           string `json:"id"`
	LengthMeters int    `json:"length_meters"`
	WidthMeters  int    `json:"width_meters"`
	SurfaceType  string `json:"surface_type"` // "Asphalt", "Concrete"
	IsActive     bool   `json:"is_active"`
}

// Coordinates is a WGS84 position
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Airport is static reference data; the simulator never mutates it
type Airport struct {
	ID                  uuid.UUID   `json:"id"`
	Code                string      `json:"code"`      // IATA, e.g. "LAX"
	ICAOCode            string      `json:"icao_code"` // e.g. "KLAX"
	Name                string      `json:"name"`
	City                string      `json:"city"`
	Country             string      `json:"country"`
	Timezone            string      `json:"timezone"`
	Coordinates         Coordinates `json:"coordinates"`
	ElevationMeters     int         `json:"elevation_meters"`
	Size                Size        `json:"size"`
	Terminals           []Terminal  `json:"terminals"`
	Runways             []Runway    `json:"runways"`
	AnnualPassengers    int64       `json:"annual_passengers"`
	CargoCapacityTonnes int         `json:"cargo_capacity_tonnes"`
	OperatingHoursStart int         `json:"operating_hours_start"` // 24h clock, inclusive
	OperatingHoursEnd   int         `json:"operating_hours_end"`   // 24h clock, inclusive
	Services            []string    `json:"services"`
	IsInternational     bool        `json:"is_international"`
	CustomsAvailable    bool        `json:"customs_available"`
}

// New creates an airport with infrastructure generated for its size class
func New(code, icaoCode, name, city, country, timezone string, lat, lon float64, elevationMeters int) *Airport {
	size := sizeForCode(code)
	terminals, runways := generateInfrastructure(size)

	var annualPassengers int64
	switch size {
	case SizeSmall:
		annualPassengers = 500_000
	case SizeMedium:
		annualPassengers = 5_000_000
	case SizeLarge:
		annualPassengers = 25_000_000
	case SizeHub:
		annualPassengers = 80_000_000
	}

	return &Airport{
		ID:                  uuid.New(),
		Code:                code,
		ICAOCode:            icaoCode,
		Name:                name,
		City:                city,
		Country:             country,
		Timezone:            timezone,
		Coordinates:         Coordinates{Latitude: lat, Longitude: lon},
		ElevationMeters:     elevationMeters,
		Size:                size,
		Terminals:           terminals,
		Runways:             runways,
		AnnualPassengers:    annualPassengers,
		CargoCapacityTonnes: 100_000,
		OperatingHoursStart: 5,
		OperatingHoursEnd:   23,
		Services: []string{
			"Car Rental", "Taxi Service", "Parking", "Dining",
			"Shopping", "WiFi", "ATM", "Lost & Found",
		},
		IsInternational:  true,
		CustomsAvailable: true,
	}
}

// sizeForCode classifies well-known airport codes
func sizeForCode(code string) Size {
	switch code {
	case "LAX", "JFK", "LHR", "CDG", "DXB", "ATL", "ORD", "DFW":
		return SizeHub
	case "SFO", "MIA", "BOS", "SEA", "DEN", "LAS", "PHX", "IAH":
		return SizeLarge
	case "AUS", "SAN", "MSP", "DTW", "PHL", "CLT", "BWI", "MDW":
		return SizeMedium
	default:
		return SizeSmall
	}
}

func gateRange(prefix string, count int) []string {
	gates := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		gates = append(gates, fmt.Sprintf("%s%d", prefix, i))
	}
	return gates
}

func generateInfrastructure(size Size) ([]Terminal, []Runway) {
	var terminals []Terminal
	var runways []Runway

	switch size {
	case SizeHub:
		terminals = []Terminal{
			{ID: "T1", Name: "Terminal 1 - International", Gates: gateRange("A", 30), Amenities: []string{"Duty Free", "Lounges", "Restaurants"}, IsInternational: true},
			{ID: "T2", Name: "Terminal 2 - Domestic", Gates: gateRange("B", 25), Amenities: []string{"Fast Food", "Shops", "Business Center"}},
			{ID: "T3", Name: "Terminal 3 - Mixed", Gates: gateRange("C", 20), Amenities: []string{"Restaurants", "Shopping"}, IsInternational: true},
		}
		runways = []Runway{
			{ID: "07L/25R", LengthMeters: 4000, WidthMeters: 60, SurfaceType: "Concrete", IsActive: true},
			{ID: "07R/25L", LengthMeters: 3800, WidthMeters: 60, SurfaceType: "Concrete", IsActive: true},
			{ID: "06L/24R", LengthMeters: 3500, WidthMeters: 45, SurfaceType: "Asphalt", IsActive: true},
		}
	case SizeLarge:
		terminals = []Terminal{
			{ID: "T1", Name: "Terminal 1", Gates: gateRange("A", 20), Amenities: []string{"Restaurants", "Shops", "Lounges"}, IsInternational: true},
			{ID: "T2", Name: "Terminal 2", Gates: gateRange("B", 15), Amenities: []string{"Fast Food", "Shopping"}},
		}
		runways = []Runway{
			{ID: "09/27", LengthMeters: 3500, WidthMeters: 45, SurfaceType: "Concrete", IsActive: true},
			{ID: "04/22", LengthMeters: 3200, WidthMeters: 45, SurfaceType: "Asphalt", IsActive: true},
		}
	case SizeMedium:
		terminals = []Terminal{
			{ID: "T1", Name: "Main Terminal", Gates: gateRange("A", 12), Amenities: []string{"Restaurants", "Shops"}, IsInternational: true},
		}
		runways = []Runway{
			{ID: "12/30", LengthMeters: 2800, WidthMeters: 45, SurfaceType: "Asphalt", IsActive: true},
		}
	default:
		terminals = []Terminal{
			{ID: "T1", Name: "Terminal", Gates: gateRange("A", 6), Amenities: []string{"Cafe", "Gift Shop"}},
		}
		runways = []Runway{
			{ID: "18/36", LengthMeters: 2000, WidthMeters: 30, SurfaceType: "Asphalt", IsActive: true},
		}
	}

	return terminals, runways
}

// Clone returns an independent copy. Callers outside the dataset lock must
// only ever see clones.
func (a *Airport) Clone() *Airport {
	out := *a
	out.Terminals = make([]Terminal, len(a.Terminals))
	for i, t := range a.Terminals {
		out.Terminals[i] = t
		out.Terminals[i].Gates = append([]string(nil), t.Gates...)
		out.Terminals[i].Amenities = append([]string(nil), t.Amenities...)
	}
	out.Runways = append([]Runway(nil), a.Runways...)
	out.Services = append([]string(nil), a.Services...)
	return &out
}

// AllGates returns every gate across all terminals
func (a *Airport) AllGates() []string {
	var gates []string
	for _, terminal := range a.Terminals {
		gates = append(gates, terminal.Gates...)
	}
	return gates
}

// IsOperating checks the inclusive operating window. Cross-midnight windows
// are not supported; a (22,4) window never matches.
func (a *Airport) IsOperating(hour int) bool {
	return hour >= a.OperatingHoursStart && hour <= a.OperatingHoursEnd
}

// CanHandleAircraft reports whether any active runway is long enough
func (a *Airport) CanHandleAircraft(requiredRunwayMeters int) bool {
	for _, runway := range a.Runways {
		if runway.IsActive && runway.LengthMeters >= requiredRunwayMeters {
			return true
		}
	}
	return false
}

// DistanceTo returns the great-circle distance to another airport in km
func (a *Airport) DistanceTo(other *Airport) float64 {
	const earthRadiusKm = 6371.0

	lat1 := a.Coordinates.Latitude * math.Pi / 180
	lat2 := other.Coordinates.Latitude * math.Pi / 180
	deltaLat := (other.Coordinates.Latitude - a.Coordinates.Latitude) * math.Pi / 180
	deltaLon := (other.Coordinates.Longitude - a.Coordinates.Longitude) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// String implements fmt.Stringer
func (a *Airport) String() string {
	return fmt.Sprintf("%s (%s) | %s | %s", a.Name, a.Code, a.City, a.Country)
}
