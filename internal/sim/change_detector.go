package sim

import (
	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/aircraft"
	"github.com/ria-intl/airportd/internal/flight"
)

// Change records one status transition applied by a simulation run
type Change struct {
	EntityType string // "flight" or "aircraft"
	EntityID   uuid.UUID
	Name       string // flight number or aircraft registration
	From       string
	To         string
}

// ChangeDetector tracks entity statuses between simulation runs
type ChangeDetector struct {
	flightStatus   map[uuid.UUID]string
	aircraftStatus map[uuid.UUID]string
}

// NewChangeDetector creates a new change detector
func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{
		flightStatus:   make(map[uuid.UUID]string),
		aircraftStatus: make(map[uuid.UUID]string),
	}
}

// Detect compares current statuses with the previous snapshot and returns
// the transitions. The current snapshot replaces the previous one.
func (cd *ChangeDetector) Detect(flights []*flight.Flight, fleet []*aircraft.Aircraft) []Change {
	var changes []Change

	currentFlights := make(map[uuid.UUID]string, len(flights))
	for _, f := range flights {
		status := f.Status.Display()
		currentFlights[f.ID] = status
		if previous, seen := cd.flightStatus[f.ID]; seen && previous != status {
			changes = append(changes, Change{
				EntityType: "flight",
				EntityID:   f.ID,
				Name:       f.FlightNumber,
				From:       previous,
				To:         status,
			})
		}
	}

	currentAircraft := make(map[uuid.UUID]string, len(fleet))
	for _, a := range fleet {
		status := string(a.Status)
		currentAircraft[a.ID] = status
		if previous, seen := cd.aircraftStatus[a.ID]; seen && previous != status {
			changes = append(changes, Change{
				EntityType: "aircraft",
				EntityID:   a.ID,
				Name:       a.Registration,
				From:       previous,
				To:         status,
			})
		}
	}

	cd.flightStatus = currentFlights
	cd.aircraftStatus = currentAircraft
	return changes
}
