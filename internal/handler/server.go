// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (plan.go, itinerary.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"iter"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/middleware"
)

// Planner runs the itinerary pipeline for one request.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without any upstream provider.
type Planner interface {
	Plan(ctx context.Context, req domain.TripRequest) (iter.Seq[domain.Fragment], error)
}

// Accounts handles signup, login and token checks.
type Accounts interface {
	Signup(ctx context.Context, email, password, displayName string) (domain.Account, error)
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

// Itineraries stores and updates saved plans for the calling account.
type Itineraries interface {
	Save(ctx context.Context, accountID string, plan map[string]any) (domain.Itinerary, error)
	Get(ctx context.Context, accountID, tripID string) (domain.Itinerary, error)
	Update(ctx context.Context, accountID, tripID string, upd domain.ItineraryUpdate) (domain.Itinerary, error)
}

// Bookings charges for and books a saved trip.
type Bookings interface {
	Book(ctx context.Context, req domain.BookingRequest) (domain.BookingReceipt, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	planner     Planner
	accounts    Accounts
	itineraries Itineraries
	bookings    Bookings
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger uses slog.Default.
func NewServer(planner Planner, accounts Accounts, itineraries Itineraries, bookings Bookings, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		planner:     planner,
		accounts:    accounts,
		itineraries: itineraries,
		bookings:    bookings,
		log:         log,
	}
}

// Routes returns the API router. Routes that need an identity token sit
// behind the id-token authenticator; cross-cutting middleware (request ID,
// logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/", s.GetRoot)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Post("/plan_trip", s.PlanTrip)
	r.Post("/signup", s.Signup)
	r.Post("/login", s.Login)
	r.Post("/book_trip", s.BookTrip)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthenticator(s.accounts, s.log))
		r.Get("/users/me", s.GetCurrentUser)
		r.Post("/itinerary/save", s.SaveItinerary)
		r.Get("/itinerary/{trip_id}", s.GetItinerary)
		r.Post("/update_itinerary", s.UpdateItinerary)
	})
	return r
}
