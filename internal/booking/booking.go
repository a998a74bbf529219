package booking

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/flight"
)

// Transition failures surfaced to callers
var (
	ErrInvalidTransition = errors.New("invalid booking state transition")
	ErrAlreadyDeparted   = errors.New("cannot cancel: flight already boarded or completed")
)

// Status identifies the booking state. Transitions only move forward:
// Confirmed -> CheckedIn -> Boarded -> Completed, with Cancelled reachable
// from Confirmed and CheckedIn. NoShow is defined for future use; nothing in
// this system enters it.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusBoarded   Status = "boarded"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Display returns the human-readable status string
func (s Status) Display() string {
	switch s {
	case StatusConfirmed:
		return "Confirmed"
	case StatusCheckedIn:
		return "Checked In"
	case StatusBoarded:
		return "Boarded"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	case StatusNoShow:
		return "No Show"
	default:
		return string(s)
	}
}

// PassengerType classifies passengers for fare and service purposes
type PassengerType string

const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerInfant PassengerType = "infant"
	PassengerSenior PassengerType = "senior"
)

// Passenger holds the traveller record embedded in a booking
type Passenger struct {
	ID                  uuid.UUID     `json:"id"`
	FirstName           string        `json:"first_name"`
	LastName            string        `json:"last_name"`
	Email               string        `json:"email"`
	Phone               string        `json:"phone"`
	PassportNumber      string        `json:"passport_number,omitempty"`
	DateOfBirth         string        `json:"date_of_birth"` // "YYYY-MM-DD"
	Type                PassengerType `json:"passenger_type"`
	SpecialRequirements []string      `json:"special_requirements,omitempty"`
}

// NewPassenger creates a passenger record
func NewPassenger(firstName, lastName, email, phone, dateOfBirth string, passengerType PassengerType) Passenger {
	return Passenger{
		ID:          uuid.New(),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Phone:       phone,
		DateOfBirth: dateOfBirth,
		Type:        passengerType,
	}
}

// FullName returns "First Last"
func (p *Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

// SeatAssignment is an assigned physical seat
type SeatAssignment struct {
	SeatNumber      string           `json:"seat_number"` // e.g. "12A"
	SeatClass       flight.SeatClass `json:"seat_class"`
	IsWindow        bool             `json:"is_window"`
	IsAisle         bool             `json:"is_aisle"`
	IsEmergencyExit bool             `json:"is_emergency_exit"`
}

// NewSeatAssignment infers seat characteristics from the seat number
func NewSeatAssignment(seatNumber string, class flight.SeatClass) SeatAssignment {
	isWindow := strings.HasSuffix(seatNumber, "A") || strings.HasSuffix(seatNumber, "F")
	isAisle := strings.HasSuffix(seatNumber, "C") || strings.HasSuffix(seatNumber, "D")

	row := 0
	for _, r := range seatNumber {
		if r < '0' || r > '9' {
			break
		}
		row = row*10 + int(r-'0')
	}

	return SeatAssignment{
		SeatNumber:      seatNumber,
		SeatClass:       class,
		IsWindow:        isWindow,
		IsAisle:         isAisle,
		IsEmergencyExit: row >= 12 && row <= 15,
	}
}

// Payment records the charge taken for a booking
type Payment struct {
	TotalAmount   float64   `json:"total_amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	PaymentDate   time.Time `json:"payment_date"`
}

// Booking is a passenger reservation on a single flight. The flight is
// referenced by id, never embedded.
type Booking struct {
	ID              uuid.UUID        `json:"id"`
	TicketNumber    string           `json:"ticket_number"`
	FlightID        uuid.UUID        `json:"flight_id"`
	Passenger       Passenger        `json:"passenger"`
	SeatAssignment  *SeatAssignment  `json:"seat_assignment,omitempty"`
	SeatClass       flight.SeatClass `json:"seat_class"`
	BookingDate     time.Time        `json:"booking_date"`
	Status          Status           `json:"status"`
	Payment         Payment          `json:"payment"`
	BaggageCount    int              `json:"baggage_count"`
	SpecialServices []string         `json:"special_services,omitempty"`
	CheckInTime     *time.Time       `json:"check_in_time,omitempty"`
	BoardingTime    *time.Time       `json:"boarding_time,omitempty"`
}

// New creates a confirmed booking with the given ticket number and price
func New(flightID uuid.UUID, passenger Passenger, class flight.SeatClass, ticketNumber string, totalAmount float64, paymentMethod string) *Booking {
	return &Booking{
		ID:           uuid.New(),
		TicketNumber: ticketNumber,
		FlightID:     flightID,
		Passenger:    passenger,
		SeatClass:    class,
		BookingDate:  time.Now(),
		Status:       StatusConfirmed,
		Payment: Payment{
			TotalAmount:   totalAmount,
			Currency:      "USD",
			PaymentMethod: paymentMethod,
			TransactionID: uuid.New().String(),
			PaymentDate:   time.Now(),
		},
		BaggageCount: 1,
	}
}

// TicketNumber generates a human-readable ticket number: the airline prefix
// plus a fixed-width 6-digit suffix. Uniqueness is the caller's concern;
// regenerate on collision.
func TicketNumber(prefix string) string {
	id := uuid.New()
	n := binary.BigEndian.Uint32(id[:4]) % 1_000_000
	return fmt.Sprintf("%s%06d", prefix, n)
}

// Clone returns an independent copy. Callers outside the dataset lock must
// only ever see clones.
func (b *Booking) Clone() *Booking {
	out := *b
	if b.SeatAssignment != nil {
		assignment := *b.SeatAssignment
		out.SeatAssignment = &assignment
	}
	if b.CheckInTime != nil {
		checkIn := *b.CheckInTime
		out.CheckInTime = &checkIn
	}
	if b.BoardingTime != nil {
		boarding := *b.BoardingTime
		out.BoardingTime = &boarding
	}
	out.SpecialServices = append([]string(nil), b.SpecialServices...)
	out.Passenger.SpecialRequirements = append([]string(nil), b.Passenger.SpecialRequirements...)
	return &out
}

// AssignSeat attaches a seat assignment in the booking's class
func (b *Booking) AssignSeat(seatNumber string) {
	assignment := NewSeatAssignment(seatNumber, b.SeatClass)
	b.SeatAssignment = &assignment
}

// CheckIn moves Confirmed -> CheckedIn and records the time
func (b *Booking) CheckIn(now time.Time) error {
	if b.Status != StatusConfirmed {
		return fmt.Errorf("%w: cannot check in from %s", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusCheckedIn
	b.CheckInTime = &now
	return nil
}

// Board moves CheckedIn -> Boarded and records the time
func (b *Booking) Board(now time.Time) error {
	if b.Status != StatusCheckedIn {
		return fmt.Errorf("%w: cannot board from %s", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusBoarded
	b.BoardingTime = &now
	return nil
}

// Cancel moves Confirmed or CheckedIn into Cancelled. Boarded and Completed
// bookings cannot be cancelled, and a cancelled booking stays cancelled.
func (b *Booking) Cancel() error {
	switch b.Status {
	case StatusConfirmed, StatusCheckedIn:
		b.Status = StatusCancelled
		return nil
	case StatusBoarded, StatusCompleted:
		return ErrAlreadyDeparted
	default:
		return fmt.Errorf("%w: booking is %s", ErrInvalidTransition, b.Status)
	}
}

// Modifiable reports whether the booking can still be changed
func (b *Booking) Modifiable() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCheckedIn
}

// AddBaggage adds checked bags to the booking
func (b *Booking) AddBaggage(count int) {
	b.BaggageCount += count
}

// AddSpecialService attaches an extra service if not already present
func (b *Booking) AddSpecialService(service string) {
	for _, existing := range b.SpecialServices {
		if existing == service {
			return
		}
	}
	b.SpecialServices = append(b.SpecialServices, service)
}

// String implements fmt.Stringer
func (b *Booking) String() string {
	return fmt.Sprintf("Ticket: %s | Passenger: %s | Class: %s | Status: %s | Amount: $%.2f",
		b.TicketNumber, b.Passenger.FullName(), b.SeatClass, b.Status.Display(), b.Payment.TotalAmount)
}
