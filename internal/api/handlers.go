package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ria-intl/airportd/internal/admin"
	"github.com/ria-intl/airportd/internal/booking"
	"github.com/ria-intl/airportd/internal/flight"
	"github.com/ria-intl/airportd/internal/ops"
	"github.com/ria-intl/airportd/internal/pricing"
	"github.com/ria-intl/airportd/pkg/logger"
)

// sessionHeader carries the admin session id on privileged requests
const sessionHeader = "X-Admin-Session"

// Handler serves the HTTP API over the data manager facade
type Handler struct {
	service *ops.Service
	logger  *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(service *ops.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.Named("api-handler"),
	}
}

// errorResponse is the JSON error envelope
type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.logger.Error("Failed to encode response", logger.Error(err))
		}
	}
}

// respondError maps domain failures onto HTTP status codes
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ops.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, admin.ErrNotAuthenticated), errors.Is(err, admin.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, admin.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, flight.ErrNotBookable),
		errors.Is(err, flight.ErrNoSeats),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrAlreadyDeparted):
		status = http.StatusConflict
	}
	h.respondJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) sessionID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get(sessionHeader)
	if raw == "" {
		return uuid.Nil, admin.ErrNotAuthenticated
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, admin.ErrNotAuthenticated
	}
	return id, nil
}

// GetFlights returns flights filtered by origin, destination and date
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	flights := h.service.SearchFlights(
		r.URL.Query().Get("origin"),
		r.URL.Query().Get("destination"),
		date,
	)
	h.respondJSON(w, http.StatusOK, flights)
}

// GetFlightByNumber returns a single flight
func (h *Handler) GetFlightByNumber(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.FlightByNumber(chi.URLParam(r, "number"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, f)
}

// GetBookableFlights returns flights currently accepting bookings
func (h *Handler) GetBookableFlights(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.BookableFlights())
}

// GetAllAircraft returns the fleet
func (h *Handler) GetAllAircraft(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.Fleet())
}

// GetAircraftByID returns a single aircraft
func (h *Handler) GetAircraftByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid aircraft id"})
		return
	}
	a, err := h.service.AircraftByID(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, a)
}

// GetAirports returns all airports
func (h *Handler) GetAirports(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.Airports())
}

// GetAirportByCode returns a single airport
func (h *Handler) GetAirportByCode(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.AirportByCode(chi.URLParam(r, "code"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, a)
}

// createBookingRequest is the booking creation payload
type createBookingRequest struct {
	FlightNumber string            `json:"flight_number"`
	SeatClass    flight.SeatClass  `json:"seat_class"`
	Passenger    booking.Passenger `json:"passenger"`
}

// CreateBooking books a seat on a flight
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	f, err := h.service.FlightByNumber(req.FlightNumber)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if req.Passenger.ID == uuid.Nil {
		req.Passenger.ID = uuid.New()
	}

	bookingID, err := h.service.CreateBooking(f.ID, req.Passenger, req.SeatClass)
	if err != nil {
		h.respondError(w, err)
		return
	}

	b, err := h.service.BookingByID(bookingID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, b)
}

// GetBookingByTicket returns a single booking
func (h *Handler) GetBookingByTicket(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.BookingByTicket(chi.URLParam(r, "ticket"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, b)
}

// CancelBooking cancels a booking and releases its seat
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelBooking(chi.URLParam(r, "ticket")); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// CheckInBooking checks a passenger in
func (h *Handler) CheckInBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CheckInBooking(chi.URLParam(r, "ticket")); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "checked_in"})
}

// BoardBooking boards a checked-in passenger
func (h *Handler) BoardBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.BoardBooking(chi.URLParam(r, "ticket")); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "boarded"})
}

// adminLoginRequest is the admin authentication payload
type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin authenticates an admin and returns the session
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := h.service.AuthenticateAdmin(req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, session)
}

// AdminLogout closes the admin session
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.service.LogoutAdmin(id)
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// setDelayRequest is the flight delay payload
type setDelayRequest struct {
	Minutes int `json:"minutes"`
}

// SetFlightDelay sets or clears a flight delay
func (h *Handler) SetFlightDelay(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessionID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req setDelayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.SetFlightDelay(sessionID, chi.URLParam(r, "number"), req.Minutes); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// setPricingRequest is the dynamic pricing payload
type setPricingRequest struct {
	Multiplier float64 `json:"multiplier"`
}

// SetDynamicPricing sets a flight's dynamic multiplier
func (h *Handler) SetDynamicPricing(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessionID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req setPricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.SetDynamicPricing(sessionID, chi.URLParam(r, "number"), req.Multiplier); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// addRuleRequest is the pricing rule creation payload
type addRuleRequest struct {
	Name         string  `json:"name"`
	RoutePattern string  `json:"route_pattern"`
	HasTimeRange bool    `json:"has_time_range"`
	StartHour    int     `json:"start_hour"`
	EndHour      int     `json:"end_hour"`
	Multiplier   float64 `json:"multiplier"`
}

// AddPricingRule registers a pricing rule
func (h *Handler) AddPricingRule(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessionID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req addRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rule := pricing.NewRule(req.Name, req.RoutePattern, req.HasTimeRange, req.StartHour, req.EndHour, req.Multiplier, uuid.Nil)
	created, err := h.service.AddPricingRule(sessionID, rule)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// GetPricingRules returns the registered pricing rules
func (h *Handler) GetPricingRules(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.PricingRules())
}

// GetAdminActions returns recent audit entries, newest first
func (h *Handler) GetAdminActions(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessionID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	actions, err := h.service.RecentAdminActions(sessionID, 50)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, actions)
}

// GetMetrics returns the current system metrics
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.Metrics())
}

// statsResponse carries scanned statistics
type statsResponse struct {
	Flights struct {
		Total     int `json:"total"`
		OnTime    int `json:"on_time"`
		Delayed   int `json:"delayed"`
		Cancelled int `json:"cancelled"`
	} `json:"flights"`
	Bookings struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Cancelled int `json:"cancelled"`
	} `json:"bookings"`
}

// GetStatistics returns flight and booking statistics scanned on demand
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	var resp statsResponse
	resp.Flights.Total, resp.Flights.OnTime, resp.Flights.Delayed, resp.Flights.Cancelled = h.service.FlightStatistics()
	resp.Bookings.Total, resp.Bookings.Active, resp.Bookings.Cancelled = h.service.BookingStatistics()
	h.respondJSON(w, http.StatusOK, resp)
}

// SaveAll flushes the dataset to durable storage
func (h *Handler) SaveAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SaveAll(); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// CreateBackup snapshots the persisted files
func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	path, err := h.service.CreateBackup()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"backup": path})
}

// GetHealth is a basic health check
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
