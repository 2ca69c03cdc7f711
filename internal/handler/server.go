// Package handler implements the HTTP handlers for the Travel Planner API.
// All handlers are methods on Server. Methods are split into concern-specific
// files (health.go, itinerary.go, watch.go, samples.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/live"
)

// ItineraryServicer defines the business operations the itinerary handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type ItineraryServicer interface {
	Create(ctx context.Context, ownerID string, it domain.Itinerary) (domain.Itinerary, error)
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Itinerary, error)
	ListPaged(ctx context.Context, ownerID string, onlyFavorites bool, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, ownerID string, id uuid.UUID, current bool) (domain.Itinerary, error)
}

// Server implements all API endpoints.
// newBinding opens a fresh live binding for each SSE watch connection; it is
// a constructor function rather than a shared instance because every
// connection owns its own subscription lifecycle.
type Server struct {
	itineraries ItineraryServicer
	newBinding  func() *live.Binding
}

// NewServer constructs the Server with all its dependencies.
// newBinding may be nil when the watch endpoint is not exercised (tests).
func NewServer(itineraries ItineraryServicer, newBinding func() *live.Binding) *Server {
	return &Server{itineraries: itineraries, newBinding: newBinding}
}

// Routes returns the chi router for the API surface.
// Authentication is resolved by auth.Middleware mounted in main; handlers
// only read the identity from the request context.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/samples", s.listSamples)
		r.Route("/itineraries", func(r chi.Router) {
			r.Get("/", s.listItineraries)
			r.Post("/", s.createItinerary)
			r.Get("/watch", s.watchItineraries)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getItinerary)
				r.Patch("/", s.updateItinerary)
				r.Delete("/", s.deleteItinerary)
				r.Post("/favorite", s.toggleFavorite)
			})
		})
	})

	return r
}
