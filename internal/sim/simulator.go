package sim

import (
	"time"

	"github.com/ria-intl/airportd/internal/aircraft"
	"github.com/ria-intl/airportd/internal/flight"
	"github.com/ria-intl/airportd/pkg/logger"
)

// boardingWindow is how close to departure a flight enters Boarding
const boardingWindow = 30 * time.Minute

// Simulator advances flight and aircraft statuses against the clock. Callers
// poll it; runs closer together than the configured interval are no-ops.
type Simulator struct {
	interval time.Duration
	lastRun  time.Time
	detector *ChangeDetector
	logger   *logger.Logger
}

// New creates a simulator with the given minimum interval between runs
func New(interval time.Duration, log *logger.Logger) *Simulator {
	return &Simulator{
		interval: interval,
		detector: NewChangeDetector(),
		logger:   log.Named("sim"),
	}
}

// Update runs one simulation pass over the dataset if the cooldown has
// elapsed. It returns the applied status changes and whether the pass ran at
// all. The cooldown is measured from the previous pass that actually ran, so
// a rejected call never pushes future ticks out.
func (s *Simulator) Update(now time.Time, flights []*flight.Flight, fleet []*aircraft.Aircraft) ([]Change, bool) {
	if !s.lastRun.IsZero() && now.Sub(s.lastRun) < s.interval {
		return nil, false
	}

	// Prime the detector so this pass only reports its own transitions
	s.detector.Detect(flights, fleet)

	for _, f := range flights {
		advanceFlight(f, now)
	}
	for _, a := range fleet {
		deriveAircraftStatus(a, flights)
	}

	changes := s.detector.Detect(flights, fleet)
	for _, change := range changes {
		s.logger.Info("Status transition",
			logger.String("entity", change.EntityType),
			logger.String("name", change.Name),
			logger.String("from", change.From),
			logger.String("to", change.To),
		)
	}

	s.lastRun = now
	return changes, true
}

// advanceFlight applies the status transition rules for a single flight.
// Cancelled and Arrived are terminal. A flight more than 30 minutes out
// stays put even if an earlier tick was missed; late ticks do not backfill.
func advanceFlight(f *flight.Flight, now time.Time) {
	timeToDeparture := f.DepartureTime.Sub(now)
	timeToArrival := f.ArrivalTime.Sub(now)

	switch f.Status.Kind {
	case flight.StatusOnTime, flight.StatusDelayed:
		if timeToDeparture > 0 && timeToDeparture <= boardingWindow {
			f.Status = flight.Status{Kind: flight.StatusBoarding}
		} else if timeToDeparture <= 0 && timeToArrival > 0 {
			f.Status = flight.Status{Kind: flight.StatusDeparted}
		} else if timeToArrival <= 0 {
			f.Status = flight.Status{Kind: flight.StatusArrived}
		}
	case flight.StatusBoarding:
		if timeToDeparture <= 0 {
			f.Status = flight.Status{Kind: flight.StatusDeparted}
		}
	case flight.StatusDeparted:
		if timeToArrival <= 0 {
			f.Status = flight.Status{Kind: flight.StatusArrived}
		}
	}
}

// deriveAircraftStatus flips Active aircraft to InFlight while any of their
// flights is Boarding or Departed, and back once none is. Maintenance and
// Retired aircraft are never touched.
func deriveAircraftStatus(a *aircraft.Aircraft, flights []*flight.Flight) {
	hasActiveFlight := false
	for _, f := range flights {
		if f.AircraftID != a.ID {
			continue
		}
		if f.Status.Kind == flight.StatusBoarding || f.Status.Kind == flight.StatusDeparted {
			hasActiveFlight = true
			break
		}
	}

	switch a.Status {
	case aircraft.StatusActive:
		if hasActiveFlight {
			a.Status = aircraft.StatusInFlight
		}
	case aircraft.StatusInFlight:
		if !hasActiveFlight {
			a.Status = aircraft.StatusActive
		}
	}
}
