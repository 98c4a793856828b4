// Package handler implements the HTTP handlers for the trip ledger API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/triplog/internal/auth"
	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/middleware"
	"github.com/pkordes/triplog/internal/report"
	"github.com/pkordes/triplog/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the stores.
type TripServicer interface {
	Create(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	Update(ctx context.Context, id string, in domain.TripInput) (domain.Trip, error)
	Get(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context, q service.ListQuery) (service.TripPage, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status domain.Status) (domain.Trip, error)
}

// VehicleServicer defines the vehicle list operations.
type VehicleServicer interface {
	List(ctx context.Context) []string
	Add(ctx context.Context, name string) (string, error)
	Remove(ctx context.Context, name string) error
}

// ReportServicer builds filtered summaries.
type ReportServicer interface {
	Build(ctx context.Context, f domain.Filter) (report.Report, error)
}

// ExportServicer renders export documents.
type ExportServicer interface {
	Export(ctx context.Context, f domain.Filter, format service.Format) (service.Document, error)
}

// Authenticator checks login credentials.
type Authenticator interface {
	Login(username, password string) bool
}

// SessionManager issues, resolves and revokes session tokens.
type SessionManager interface {
	middleware.SessionVerifier
	Issue(username string) (string, auth.Session, error)
	Revoke(id string)
}

// Deps holds everything a Server needs. Nil services leave their routes
// answering 500, which keeps narrow handler tests short.
type Deps struct {
	Trips    TripServicer
	Vehicles VehicleServicer
	Reports  ReportServicer
	Exports  ExportServicer
	Auth     Authenticator
	Sessions SessionManager
	Logger   *slog.Logger
}

// Server holds the handler dependencies.
type Server struct {
	trips    TripServicer
	vehicles VehicleServicer
	reports  ReportServicer
	exports  ExportServicer
	auth     Authenticator
	sessions SessionManager
	log      *slog.Logger
	started  time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:    d.Trips,
		vehicles: d.Vehicles,
		reports:  d.Reports,
		exports:  d.Exports,
		auth:     d.Auth,
		sessions: d.Sessions,
		log:      log,
		started:  time.Now(),
	}
}

// Routes returns the API router. Cross-cutting middleware (request IDs,
// logging, CORS, body limits) is applied by the caller; the session guard is
// applied here because it depends on the route.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.Login)
		r.Post("/logout", s.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(s.sessions))

			r.Get("/session", s.GetSession)

			r.Get("/trips", s.ListTrips)
			r.Post("/trips", s.CreateTrip)
			r.Get("/trips/{id}", s.GetTrip)
			r.Put("/trips/{id}", s.UpdateTrip)
			r.Delete("/trips/{id}", s.DeleteTrip)
			r.Patch("/trips/{id}/status", s.SetTripStatus)

			r.Get("/stats", s.GetStats)

			r.Get("/export.csv", s.exportHandler(service.FormatCSV))
			r.Get("/export.html", s.exportHandler(service.FormatHTML))
			r.Get("/export.pdf", s.exportHandler(service.FormatPDF))

			r.Get("/vehicles", s.ListVehicles)
			r.Post("/vehicles", s.AddVehicle)
			r.Delete("/vehicles/{name}", s.RemoveVehicle)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})
	return r
}
