package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/auth"
	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// createItinerary handles POST /api/v1/itineraries.
func (s *Server) createItinerary(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req CreateItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return
	}

	created, err := s.itineraries.Create(r.Context(), owner, requestToItinerary(req))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// listItineraries handles GET /api/v1/itineraries.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100) and
// ?favorites=true to restrict the list to favorite records.
func (s *Server) listItineraries(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	onlyFavorites := r.URL.Query().Get("favorites") == "true"

	items, total, err := s.itineraries.ListPaged(r.Context(), owner, onlyFavorites, params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ItineraryListResponse{
		Data: itinerariesToResponse(items),
		Pagination: &Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// getItinerary handles GET /api/v1/itineraries/{id}.
func (s *Server) getItinerary(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	it, err := s.itineraries.GetByID(r.Context(), owner, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// updateItinerary handles PATCH /api/v1/itineraries/{id}.
// Only the supplied fields are changed; updated_at is always refreshed.
func (s *Server) updateItinerary(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return
	}

	updated, err := s.itineraries.Update(r.Context(), owner, id, requestToPatch(req))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// deleteItinerary handles DELETE /api/v1/itineraries/{id}.
// Deleting a record that does not exist returns 404 rather than succeeding
// silently, matching the repo's RowsAffected contract.
func (s *Server) deleteItinerary(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.itineraries.Delete(r.Context(), owner, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toggleFavorite handles POST /api/v1/itineraries/{id}/favorite.
// The optional body carries the client's last-observed favorite value; when
// absent, the stored value is read first. Either way the flip is
// last-write-wins — concurrent toggles are not locked against each other.
func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return
	}

	current := false
	if req.Current != nil {
		current = *req.Current
	} else {
		it, err := s.itineraries.GetByID(r.Context(), owner, id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		current = it.IsFavorite
	}

	updated, err := s.itineraries.ToggleFavorite(r.Context(), owner, id, current)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// --- request helpers --------------------------------------------------------

// requireIdentity extracts the authenticated owner from the request context,
// writing a 401 and returning ok=false when the request is anonymous.
func requireIdentity(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return "", false
	}
	return id.UserID, true
}

// pathID parses the {id} URL parameter, writing a 404 for malformed IDs:
// a non-UUID can never name an existing record.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "itinerary not found")
		return uuid.UUID{}, false
	}
	return id, true
}

// queryInt parses an optional positive integer query parameter, returning nil
// when absent or malformed so pagination falls back to defaults.
func queryInt(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
