package flight

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Booking-related failures surfaced to callers
var (
	ErrNotBookable = errors.New("flight is not available for booking")
	ErrNoSeats     = errors.New("no seats available in the selected class")
)

// StatusKind identifies the flight status variant
type StatusKind string

const (
	StatusOnTime    StatusKind = "on_time"
	StatusDelayed   StatusKind = "delayed"
	StatusBoarding  StatusKind = "boarding"
	StatusDeparted  StatusKind = "departed"
	StatusArrived   StatusKind = "arrived"
	StatusCancelled StatusKind = "cancelled"
)

// Status is a tagged status variant. DelayMinutes is only meaningful when
// Kind is StatusDelayed.
type Status struct {
	Kind         StatusKind `json:"kind"`
	DelayMinutes int        `json:"delay_minutes,omitempty"`
}

// OnTime returns the on-time status
func OnTime() Status { return Status{Kind: StatusOnTime} }

// Delayed returns a delayed status carrying the delay in minutes
func Delayed(minutes int) Status {
	return Status{Kind: StatusDelayed, DelayMinutes: minutes}
}

// Display returns the human-readable status string
func (s Status) Display() string {
	switch s.Kind {
	case StatusOnTime:
		return "On Time"
	case StatusDelayed:
		return fmt.Sprintf("Delayed %d min", s.DelayMinutes)
	case StatusBoarding:
		return "Boarding"
	case StatusDeparted:
		return "Departed"
	case StatusArrived:
		return "Arrived"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s.Kind)
	}
}

// SeatClass is one of the three cabin classes
type SeatClass string

const (
	Economy    SeatClass = "economy"
	Business   SeatClass = "business"
	FirstClass SeatClass = "first_class"
)

// SeatClasses lists all cabin classes in display order
var SeatClasses = []SeatClass{Economy, Business, FirstClass}

// SeatAvailability tracks remaining seats per class
type SeatAvailability struct {
	Economy    int `json:"economy"`
	Business   int `json:"business"`
	FirstClass int `json:"first_class"`
}

// Total returns the number of unsold seats across all classes
func (s SeatAvailability) Total() int {
	return s.Economy + s.Business + s.FirstClass
}

// Pricing holds per-class base prices plus the admin-set dynamic multiplier
type Pricing struct {
	Economy           float64 `json:"economy"`
	Business          float64 `json:"business"`
	FirstClass        float64 `json:"first_class"`
	DynamicMultiplier float64 `json:"dynamic_multiplier"`
}

// Flight represents a scheduled flight
type Flight struct {
	ID               uuid.UUID            `json:"id"`
	FlightNumber     string               `json:"flight_number"`
	Airline          string               `json:"airline"`
	Origin           string               `json:"origin"`      // IATA code, e.g. "LAX"
	Destination      string               `json:"destination"` // IATA code, e.g. "JFK"
	DepartureTime    time.Time            `json:"departure_time"`
	ArrivalTime      time.Time            `json:"arrival_time"`
	Status           Status               `json:"status"`
	AircraftID       uuid.UUID            `json:"aircraft_id"`
	Gate             string               `json:"gate,omitempty"`
	SeatAvailability SeatAvailability     `json:"seat_availability"`
	Pricing          Pricing              `json:"pricing"`
	TotalCapacity    int                  `json:"total_capacity"`
	BaggageAllowance map[SeatClass]int    `json:"baggage_allowance"` // kg per class
}

// New creates a flight with full seat inventory and OnTime status. Capacity
// splits roughly 70/25/5 across economy, business and first class.
func New(flightNumber, airline, origin, destination string, departure, arrival time.Time, aircraftID uuid.UUID, totalCapacity int) *Flight {
	// single-precision split; 180 seats yields 126/45/9
	economySeats := int(float32(totalCapacity) * 0.7)
	businessSeats := int(float32(totalCapacity) * 0.25)
	firstClassSeats := totalCapacity - economySeats - businessSeats

	return &Flight{
		ID:            uuid.New(),
		FlightNumber:  flightNumber,
		Airline:       airline,
		Origin:        origin,
		Destination:   destination,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Status:        OnTime(),
		AircraftID:    aircraftID,
		SeatAvailability: SeatAvailability{
			Economy:    economySeats,
			Business:   businessSeats,
			FirstClass: firstClassSeats,
		},
		Pricing: Pricing{
			Economy:           299.99,
			Business:          899.99,
			FirstClass:        1999.99,
			DynamicMultiplier: 1.0,
		},
		TotalCapacity: totalCapacity,
		BaggageAllowance: map[SeatClass]int{
			Economy:    23,
			Business:   32,
			FirstClass: 46,
		},
	}
}

// Clone returns an independent copy. Callers outside the dataset lock must
// only ever see clones.
func (f *Flight) Clone() *Flight {
	out := *f
	out.BaggageAllowance = make(map[SeatClass]int, len(f.BaggageAllowance))
	for class, kg := range f.BaggageAllowance {
		out.BaggageAllowance[class] = kg
	}
	return &out
}

// Duration returns scheduled flight time
func (f *Flight) Duration() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}

// Bookable reports whether new bookings are accepted: status is OnTime or
// Delayed and departure is strictly in the future.
func (f *Flight) Bookable(now time.Time) bool {
	switch f.Status.Kind {
	case StatusOnTime, StatusDelayed:
		return f.DepartureTime.After(now)
	default:
		return false
	}
}

// AvailableSeats returns remaining seats in the given class
func (f *Flight) AvailableSeats(class SeatClass) int {
	switch class {
	case Economy:
		return f.SeatAvailability.Economy
	case Business:
		return f.SeatAvailability.Business
	case FirstClass:
		return f.SeatAvailability.FirstClass
	default:
		return 0
	}
}

// BasePrice returns the class base price with the dynamic multiplier applied
func (f *Flight) BasePrice(class SeatClass) float64 {
	var base float64
	switch class {
	case Economy:
		base = f.Pricing.Economy
	case Business:
		base = f.Pricing.Business
	case FirstClass:
		base = f.Pricing.FirstClass
	}
	return base * f.Pricing.DynamicMultiplier
}

// BookSeat reserves exactly one seat in the given class
func (f *Flight) BookSeat(class SeatClass, now time.Time) error {
	if !f.Bookable(now) {
		return ErrNotBookable
	}

	switch class {
	case Economy:
		if f.SeatAvailability.Economy == 0 {
			return fmt.Errorf("%w: economy", ErrNoSeats)
		}
		f.SeatAvailability.Economy--
	case Business:
		if f.SeatAvailability.Business == 0 {
			return fmt.Errorf("%w: business", ErrNoSeats)
		}
		f.SeatAvailability.Business--
	case FirstClass:
		if f.SeatAvailability.FirstClass == 0 {
			return fmt.Errorf("%w: first class", ErrNoSeats)
		}
		f.SeatAvailability.FirstClass--
	default:
		return fmt.Errorf("unknown seat class: %s", class)
	}

	return nil
}

// ReleaseSeat returns exactly one seat to the given class
func (f *Flight) ReleaseSeat(class SeatClass) {
	switch class {
	case Economy:
		f.SeatAvailability.Economy++
	case Business:
		f.SeatAvailability.Business++
	case FirstClass:
		f.SeatAvailability.FirstClass++
	}
}

// SetDelay marks the flight Delayed and pushes arrival forward by the delay.
// A zero or negative delay resets the status to OnTime; the arrival time is
// not reverted, earlier delay shifts stick.
func (f *Flight) SetDelay(minutes int) {
	if minutes > 0 {
		f.Status = Delayed(minutes)
		f.ArrivalTime = f.ArrivalTime.Add(time.Duration(minutes) * time.Minute)
	} else {
		f.Status = OnTime()
	}
}

// SetGate assigns a departure gate
func (f *Flight) SetGate(gate string) {
	f.Gate = gate
}

// String implements fmt.Stringer
func (f *Flight) String() string {
	return fmt.Sprintf("%s | %s -> %s | %s | %s",
		f.FlightNumber, f.Origin, f.Destination,
		f.DepartureTime.Format("15:04"), f.Status.Display())
}
