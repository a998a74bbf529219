package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ria-intl/airportd/internal/config"
	"github.com/ria-intl/airportd/internal/ops"
	"github.com/ria-intl/airportd/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(service *ops.Service, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(service, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Flight routes
		router.Get("/flights", r.handler.GetFlights)
		router.Get("/flights/bookable", r.handler.GetBookableFlights)
		router.Get("/flights/{number}", r.handler.GetFlightByNumber)

		// Aircraft routes
		router.Get("/aircraft", r.handler.GetAllAircraft)
		router.Get("/aircraft/{id}", r.handler.GetAircraftByID)

		// Airport routes
		router.Get("/airports", r.handler.GetAirports)
		router.Get("/airports/{code}", r.handler.GetAirportByCode)

		// Booking routes
		router.Post("/bookings", r.handler.CreateBooking)
		router.Get("/bookings/{ticket}", r.handler.GetBookingByTicket)
		router.Delete("/bookings/{ticket}", r.handler.CancelBooking)
		router.Post("/bookings/{ticket}/check-in", r.handler.CheckInBooking)
		router.Post("/bookings/{ticket}/board", r.handler.BoardBooking)

		// Admin routes
		router.Post("/admin/login", r.handler.AdminLogin)
		router.Post("/admin/logout", r.handler.AdminLogout)
		router.Post("/admin/flights/{number}/delay", r.handler.SetFlightDelay)
		router.Post("/admin/flights/{number}/pricing", r.handler.SetDynamicPricing)
		router.Post("/admin/pricing-rules", r.handler.AddPricingRule)
		router.Get("/admin/pricing-rules", r.handler.GetPricingRules)
		router.Get("/admin/actions", r.handler.GetAdminActions)

		// Persistence routes
		router.Post("/save", r.handler.SaveAll)
		router.Post("/backup", r.handler.CreateBackup)

		// Metrics and statistics
		router.Get("/metrics", r.handler.GetMetrics)
		router.Get("/stats", r.handler.GetStatistics)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
