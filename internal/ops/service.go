package ops

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/admin"
	"github.com/ria-intl/airportd/internal/aircraft"
	"github.com/ria-intl/airportd/internal/airport"
	"github.com/ria-intl/airportd/internal/booking"
	"github.com/ria-intl/airportd/internal/flight"
	"github.com/ria-intl/airportd/internal/metrics"
	"github.com/ria-intl/airportd/internal/pricing"
	"github.com/ria-intl/airportd/internal/sim"
	"github.com/ria-intl/airportd/internal/storage/jsonfile"
	"github.com/ria-intl/airportd/pkg/logger"
)

// ErrNotFound is returned when a flight, booking, aircraft or airport lookup
// misses
var ErrNotFound = errors.New("not found")

// Service is the data manager facade. It owns the in-memory snapshot and
// serializes every operation behind a single lock: booking creation touches
// flight seat counts and the booking list together, and no caller may
// observe one without the other. Query methods return clones so callers can
// read or encode results after the lock is released.
type Service struct {
	mu sync.Mutex

	db      *jsonfile.Database
	store   *jsonfile.Store
	panel   *admin.Panel
	pricing *pricing.Engine
	metrics *metrics.SystemMetrics
	sim     *sim.Simulator

	ticketPrefix string
	logger       *logger.Logger
}

// New loads the dataset from the store and builds the facade. Integrity
// issues found at load time are reported but do not prevent startup.
func New(store *jsonfile.Store, auditStore admin.ActionStore, ticketPrefix string, simInterval time.Duration, log *logger.Logger) (*Service, error) {
	if err := store.Initialize(); err != nil {
		return nil, err
	}

	db, err := store.LoadAll()
	if err != nil {
		return nil, err
	}

	svcLogger := log.Named("ops")
	for _, issue := range jsonfile.ValidateDatabase(db) {
		svcLogger.Warn("Data integrity issue", logger.String("issue", issue))
	}

	svc := &Service{
		db:           db,
		store:        store,
		panel:        admin.NewPanel(auditStore, log),
		pricing:      pricing.NewEngine(log),
		metrics:      metrics.New(),
		sim:          sim.New(simInterval, log),
		ticketPrefix: ticketPrefix,
		logger:       svcLogger,
	}

	svc.metrics.UpdateFlightMetrics(db.Flights)
	svc.metrics.UpdateAircraftMetrics(db.Aircraft)
	svc.metrics.RecordBooking(0, len(db.Bookings))

	svc.registerDefaultRules()

	svcLogger.Info("Data manager initialized",
		logger.Int("flights", len(db.Flights)),
		logger.Int("aircraft", len(db.Aircraft)),
		logger.Int("bookings", len(db.Bookings)),
		logger.Int("airports", len(db.Airports)),
	)

	return svc, nil
}

// registerDefaultRules installs the stock pricing rules
func (s *Service) registerDefaultRules() {
	systemID := uuid.New()
	s.pricing.AddRule(pricing.NewRule("Peak Hours Premium", "", true, 6, 9, 1.3, systemID))
	s.pricing.AddRule(pricing.NewRule("Weekend Discount", "", false, 0, 0, 0.9, systemID))
	s.pricing.AddRule(pricing.NewRule("Transatlantic Premium", "*-LHR", false, 0, 0, 1.2, systemID))
}

// --- Flight queries ---

// SearchFlights filters flights by origin, destination and departure date.
// Empty strings and a nil date match everything. Like every query method it
// returns clones; live dataset pointers never leave the lock.
func (s *Service) SearchFlights(origin, destination string, date *time.Time) []*flight.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*flight.Flight
	for _, f := range s.db.Flights {
		if origin != "" && f.Origin != origin {
			continue
		}
		if destination != "" && f.Destination != destination {
			continue
		}
		if date != nil {
			y1, m1, d1 := f.DepartureTime.Date()
			y2, m2, d2 := date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		out = append(out, f.Clone())
	}
	return out
}

// FlightByID returns the flight with the given id
func (s *Service) FlightByID(id uuid.UUID) (*flight.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.flightByID(id)
	if err != nil {
		return nil, err
	}
	return f.Clone(), nil
}

func (s *Service) flightByID(id uuid.UUID) (*flight.Flight, error) {
	for _, f := range s.db.Flights {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("flight %s: %w", id, ErrNotFound)
}

// FlightByNumber returns the flight with the given flight number
func (s *Service) FlightByNumber(number string) (*flight.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.flightByNumber(number)
	if err != nil {
		return nil, err
	}
	return f.Clone(), nil
}

func (s *Service) flightByNumber(number string) (*flight.Flight, error) {
	for _, f := range s.db.Flights {
		if f.FlightNumber == number {
			return f, nil
		}
	}
	return nil, fmt.Errorf("flight %s: %w", number, ErrNotFound)
}

// BookableFlights returns the flights currently accepting bookings
func (s *Service) BookableFlights() []*flight.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var out []*flight.Flight
	for _, f := range s.db.Flights {
		if f.Bookable(now) {
			out = append(out, f.Clone())
		}
	}
	return out
}

// --- Booking operations ---

// CreateBooking reserves one seat for the passenger on the given flight and
// returns the new booking id. The final price is the class base price (with
// the flight's dynamic multiplier) times the applicable pricing-rule
// multiplier for the route and departure hour. Either everything happens
// (seat decremented, booking recorded, metrics updated) or nothing does.
func (s *Service) CreateBooking(flightID uuid.UUID, passenger booking.Passenger, class flight.SeatClass) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.flightByID(flightID)
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now()
	if !f.Bookable(now) {
		return uuid.Nil, flight.ErrNotBookable
	}
	if f.AvailableSeats(class) == 0 {
		return uuid.Nil, fmt.Errorf("%w: %s", flight.ErrNoSeats, class)
	}

	basePrice := f.BasePrice(class)
	multiplier := s.pricing.ApplicableMultiplier(f.Origin, f.Destination, f.DepartureTime.Hour())
	finalPrice := basePrice * multiplier

	b := booking.New(flightID, passenger, class, s.uniqueTicketNumber(), finalPrice, "Credit Card")

	if err := f.BookSeat(class, now); err != nil {
		return uuid.Nil, err
	}
	s.db.Bookings = append(s.db.Bookings, b)
	s.metrics.RecordBooking(finalPrice, len(s.db.Bookings))

	s.logger.Info("Booking created",
		logger.String("ticket", b.TicketNumber),
		logger.String("flight", f.FlightNumber),
		logger.String("class", string(class)),
		logger.Float64("price", finalPrice),
	)

	return b.ID, nil
}

// uniqueTicketNumber generates a ticket number not used by any existing
// booking
func (s *Service) uniqueTicketNumber() string {
	existing := make(map[string]bool, len(s.db.Bookings))
	for _, b := range s.db.Bookings {
		existing[b.TicketNumber] = true
	}

	for {
		ticket := booking.TicketNumber(s.ticketPrefix)
		if !existing[ticket] {
			return ticket
		}
	}
}

// BookingByTicket returns the booking with the given ticket number
func (s *Service) BookingByTicket(ticketNumber string) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.bookingByTicket(ticketNumber)
	if err != nil {
		return nil, err
	}
	return b.Clone(), nil
}

func (s *Service) bookingByTicket(ticketNumber string) (*booking.Booking, error) {
	for _, b := range s.db.Bookings {
		if b.TicketNumber == ticketNumber {
			return b, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", ticketNumber, ErrNotFound)
}

// BookingByID returns the booking with the given id
func (s *Service) BookingByID(id uuid.UUID) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.db.Bookings {
		if b.ID == id {
			return b.Clone(), nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
}

// BookingsForFlight returns all bookings referencing the given flight
func (s *Service) BookingsForFlight(flightID uuid.UUID) []*booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*booking.Booking
	for _, b := range s.db.Bookings {
		if b.FlightID == flightID {
			out = append(out, b.Clone())
		}
	}
	return out
}

// CancelBooking cancels the booking and restores exactly one seat to the
// flight's class counter. A booking that already boarded, completed or was
// cancelled fails without any seat credit.
func (s *Service) CancelBooking(ticketNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.bookingByTicket(ticketNumber)
	if err != nil {
		return err
	}
	if err := b.Cancel(); err != nil {
		return err
	}

	if f, err := s.flightByID(b.FlightID); err == nil {
		f.ReleaseSeat(b.SeatClass)
	}

	s.logger.Info("Booking cancelled", logger.String("ticket", ticketNumber))
	return nil
}

// CheckInBooking moves a confirmed booking to checked in
func (s *Service) CheckInBooking(ticketNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.bookingByTicket(ticketNumber)
	if err != nil {
		return err
	}
	return b.CheckIn(time.Now())
}

// BoardBooking moves a checked-in booking to boarded
func (s *Service) BoardBooking(ticketNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.bookingByTicket(ticketNumber)
	if err != nil {
		return err
	}
	return b.Board(time.Now())
}

// --- Aircraft queries ---

// AircraftByID returns the aircraft with the given id
func (s *Service) AircraftByID(id uuid.UUID) (*aircraft.Aircraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.aircraftByID(id)
	if err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

func (s *Service) aircraftByID(id uuid.UUID) (*aircraft.Aircraft, error) {
	for _, a := range s.db.Aircraft {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("aircraft %s: %w", id, ErrNotFound)
}

// AvailableAircraft returns aircraft that can be assigned to a flight
func (s *Service) AvailableAircraft() []*aircraft.Aircraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*aircraft.Aircraft
	for _, a := range s.db.Aircraft {
		if a.AvailableForFlight() {
			out = append(out, a.Clone())
		}
	}
	return out
}

// AircraftForFlight returns the aircraft assigned to the given flight
func (s *Service) AircraftForFlight(flightID uuid.UUID) (*aircraft.Aircraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.flightByID(flightID)
	if err != nil {
		return nil, err
	}
	a, err := s.aircraftByID(f.AircraftID)
	if err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// Fleet returns all aircraft
func (s *Service) Fleet() []*aircraft.Aircraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*aircraft.Aircraft, 0, len(s.db.Aircraft))
	for _, a := range s.db.Aircraft {
		out = append(out, a.Clone())
	}
	return out
}

// --- Airport queries ---

// AirportByCode returns the airport with the given IATA code
func (s *Service) AirportByCode(code string) (*airport.Airport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.db.Airports {
		if a.Code == code {
			return a.Clone(), nil
		}
	}
	return nil, fmt.Errorf("airport %s: %w", code, ErrNotFound)
}

// Airports returns all airports
func (s *Service) Airports() []*airport.Airport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*airport.Airport, 0, len(s.db.Airports))
	for _, a := range s.db.Airports {
		out = append(out, a.Clone())
	}
	return out
}

// DeparturesFrom returns flights departing the given airport
func (s *Service) DeparturesFrom(airportCode string) []*flight.Flight {
	return s.SearchFlights(airportCode, "", nil)
}

// ArrivalsTo returns flights arriving at the given airport
func (s *Service) ArrivalsTo(airportCode string) []*flight.Flight {
	return s.SearchFlights("", airportCode, nil)
}

// --- Admin operations ---

// AuthenticateAdmin verifies credentials and opens an admin session
func (s *Service) AuthenticateAdmin(username, password string) (*admin.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel.Authenticate(username, password)
}

// LogoutAdmin closes the given admin session
func (s *Service) LogoutAdmin(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel.Logout(sessionID)
}

// requireCapability resolves the session and checks the capability. Failures
// leave no trace in the audit log.
func (s *Service) requireCapability(sessionID uuid.UUID, allowed func(admin.Role) bool) (*admin.Session, error) {
	session, err := s.panel.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if !allowed(session.User.Role) {
		return nil, fmt.Errorf("%w: role %s", admin.ErrPermissionDenied, session.User.Role)
	}
	return session, nil
}

// SetFlightDelay sets or clears a delay on a flight. Positive minutes mark
// the flight Delayed and push arrival forward; zero or negative minutes
// reset the status to OnTime without reverting arrival. Requires flight
// management capability.
func (s *Service) SetFlightDelay(sessionID uuid.UUID, flightNumber string, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.requireCapability(sessionID, admin.Role.CanManageFlights)
	if err != nil {
		return err
	}

	f, err := s.flightByNumber(flightNumber)
	if err != nil {
		return err
	}

	oldStatus := f.Status.Display()
	f.SetDelay(minutes)
	newStatus := f.Status.Display()

	s.panel.LogAction(session.User.ID, "SET_DELAY",
		fmt.Sprintf("Set delay for flight %s", flightNumber),
		&f.ID, oldStatus, newStatus)

	s.logger.Info("Flight delay updated",
		logger.String("flight", flightNumber),
		logger.Int("minutes", minutes),
	)
	return nil
}

// SetDynamicPricing sets a flight's dynamic price multiplier. Requires
// pricing management capability.
func (s *Service) SetDynamicPricing(sessionID uuid.UUID, flightNumber string, multiplier float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.requireCapability(sessionID, admin.Role.CanManagePricing)
	if err != nil {
		return err
	}

	f, err := s.flightByNumber(flightNumber)
	if err != nil {
		return err
	}

	oldMultiplier := f.Pricing.DynamicMultiplier
	f.Pricing.DynamicMultiplier = multiplier

	s.panel.LogAction(session.User.ID, "SET_PRICING",
		fmt.Sprintf("Set pricing multiplier for flight %s", flightNumber),
		&f.ID,
		fmt.Sprintf("%g", oldMultiplier),
		fmt.Sprintf("%g", multiplier))

	s.logger.Info("Dynamic pricing updated",
		logger.String("flight", flightNumber),
		logger.Float64("multiplier", multiplier),
	)
	return nil
}

// AddPricingRule registers a new pricing rule, stamping CreatedBy with the
// acting admin's user id, and returns the stored rule. Requires pricing
// management capability.
func (s *Service) AddPricingRule(sessionID uuid.UUID, rule pricing.Rule) (pricing.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.requireCapability(sessionID, admin.Role.CanManagePricing)
	if err != nil {
		return pricing.Rule{}, err
	}

	rule.CreatedBy = session.User.ID
	s.pricing.AddRule(rule)
	s.panel.LogAction(session.User.ID, "ADD_PRICING_RULE",
		fmt.Sprintf("Added pricing rule: %s", rule.Name),
		&rule.ID, "", fmt.Sprintf("Multiplier: %g", rule.Multiplier))
	return rule, nil
}

// SetPricingRuleActive enables or disables a pricing rule. Requires pricing
// management capability.
func (s *Service) SetPricingRuleActive(sessionID uuid.UUID, ruleID uuid.UUID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.requireCapability(sessionID, admin.Role.CanManagePricing)
	if err != nil {
		return err
	}

	if !s.pricing.SetActive(ruleID, active) {
		return fmt.Errorf("pricing rule %s: %w", ruleID, ErrNotFound)
	}
	s.panel.LogAction(session.User.ID, "SET_RULE_ACTIVE",
		fmt.Sprintf("Set pricing rule %s active=%t", ruleID, active),
		&ruleID, "", fmt.Sprintf("%t", active))
	return nil
}

// PricingRules returns the registered pricing rules
func (s *Service) PricingRules() []pricing.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pricing.Rules()
}

// RecentAdminActions returns the newest audit entries, newest first. The
// caller must hold a valid admin session with report access.
func (s *Service) RecentAdminActions(sessionID uuid.UUID, limit int) ([]admin.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.requireCapability(sessionID, admin.Role.CanViewReports); err != nil {
		return nil, err
	}
	return s.panel.RecentActions(limit), nil
}

// AuditLogLen returns the number of audit entries
func (s *Service) AuditLogLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel.AuditLen()
}

// --- Simulation ---

// UpdateSimulation runs one simulation pass if the cooldown elapsed, then
// recomputes aggregate metrics when anything changed. It reports the applied
// transitions and whether the pass ran.
func (s *Service) UpdateSimulation(now time.Time) ([]sim.Change, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes, ran := s.sim.Update(now, s.db.Flights, s.db.Aircraft)
	if ran && len(changes) > 0 {
		s.metrics.UpdateFlightMetrics(s.db.Flights)
		s.metrics.UpdateAircraftMetrics(s.db.Aircraft)
	}
	return changes, ran
}

// --- Persistence ---

// SaveAll flushes the in-memory snapshot to durable storage. A failed save
// leaves the snapshot untouched and usable.
func (s *Service) SaveAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveAll(s.db)
}

// CreateBackup snapshots the persisted files to a timestamped location
func (s *Service) CreateBackup() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Backup()
}

// ValidateIntegrity cross-checks entity references in the current snapshot
func (s *Service) ValidateIntegrity() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return jsonfile.ValidateDatabase(s.db)
}

// --- Statistics ---

// Metrics returns a copy of the current system metrics
func (s *Service) Metrics() metrics.SystemMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.metrics
}

// FlightStatistics returns total, on-time, delayed and cancelled flight
// counts scanned from the current collection
func (s *Service) FlightStatistics() (total, onTime, delayed, cancelled int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total = len(s.db.Flights)
	for _, f := range s.db.Flights {
		switch f.Status.Kind {
		case flight.StatusOnTime:
			onTime++
		case flight.StatusDelayed:
			delayed++
		case flight.StatusCancelled:
			cancelled++
		}
	}
	return
}

// BookingStatistics returns total, active (confirmed or checked in) and
// cancelled booking counts scanned from the current collection
func (s *Service) BookingStatistics() (total, confirmed, cancelled int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total = len(s.db.Bookings)
	for _, b := range s.db.Bookings {
		switch b.Status {
		case booking.StatusConfirmed, booking.StatusCheckedIn:
			confirmed++
		case booking.StatusCancelled:
			cancelled++
		}
	}
	return
}
