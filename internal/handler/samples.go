package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// listSamples handles GET /api/v1/samples.
// It serves the fixed illustrative itineraries shown to visitors before
// sign-in. No authentication, no pagination, no mutation: the entries are
// constants, so the response carries no pagination envelope.
func (s *Server) listSamples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ItineraryListResponse{
		Data: itinerariesToResponse(domain.SampleItineraries()),
	})
}
