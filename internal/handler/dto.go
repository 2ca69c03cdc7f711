package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ItineraryResponse is the wire representation of one itinerary.
// Calendar dates use the date-only type ("2006-01-02"), timestamps RFC 3339.
type ItineraryResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Destination string              `json:"destination"`
	Type        string              `json:"type"`
	Duration    string              `json:"duration"`
	Activities  []string            `json:"activities"`
	StartDate   *openapi_types.Date `json:"start_date,omitempty"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	OwnerID     string              `json:"owner_id,omitempty"`
	IsFavorite  bool                `json:"is_favorite"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Pagination echoes the applied paging parameters plus the total match count.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ItineraryListResponse is the envelope for list endpoints.
type ItineraryListResponse struct {
	Data       []ItineraryResponse `json:"data"`
	Pagination *Pagination         `json:"pagination,omitempty"`
}

// CreateItineraryRequest is the body of POST /itineraries.
// Activities is the already-split list; clients with a free-text form field
// split it before submitting (see domain.ParseActivities).
type CreateItineraryRequest struct {
	Title       string              `json:"title"`
	Destination string              `json:"destination"`
	Type        string              `json:"type"`
	Duration    string              `json:"duration"`
	Activities  []string            `json:"activities"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
}

// UpdateItineraryRequest is the body of PATCH /itineraries/{id}.
// Every field is optional; omitted fields are left untouched. For the date
// fields an explicit JSON null clears the stored value, which a plain pointer
// cannot distinguish from absence — hence OptionalDate.
type UpdateItineraryRequest struct {
	Title       *string      `json:"title"`
	Destination *string      `json:"destination"`
	Type        *string      `json:"type"`
	Duration    *string      `json:"duration"`
	Activities  *[]string    `json:"activities"`
	StartDate   OptionalDate `json:"start_date"`
	EndDate     OptionalDate `json:"end_date"`
	IsFavorite  *bool        `json:"is_favorite"`
}

// ToggleFavoriteRequest is the optional body of POST /itineraries/{id}/favorite.
// Current is the client's last-observed favorite value; when the body is
// omitted the server reads the stored value instead.
type ToggleFavoriteRequest struct {
	Current *bool `json:"current"`
}

// OptionalDate distinguishes three JSON states for a date field:
// absent (Set=false), null (Set=true, Value=nil), and a value.
// encoding/json only invokes UnmarshalJSON for fields present in the input,
// which is what makes the absent/null distinction observable.
type OptionalDate struct {
	Set   bool
	Value *openapi_types.Date
}

func (o *OptionalDate) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var d openapi_types.Date
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

// --- mapping helpers --------------------------------------------------------

// requestToItinerary converts a create request into a domain.Itinerary.
// Owner and timestamps are not mapped; the service and database stamp those.
func requestToItinerary(req CreateItineraryRequest) domain.Itinerary {
	it := domain.Itinerary{
		Title:       req.Title,
		Destination: req.Destination,
		Type:        domain.TripType(req.Type),
		Duration:    req.Duration,
		Activities:  req.Activities,
	}
	if req.StartDate != nil {
		sd := req.StartDate.Time
		it.StartDate = &sd
	}
	if req.EndDate != nil {
		ed := req.EndDate.Time
		it.EndDate = &ed
	}
	return it
}

// requestToPatch converts an update request into a domain.ItineraryPatch.
func requestToPatch(req UpdateItineraryRequest) domain.ItineraryPatch {
	p := domain.ItineraryPatch{
		Title:       req.Title,
		Destination: req.Destination,
		Duration:    req.Duration,
		Activities:  req.Activities,
		IsFavorite:  req.IsFavorite,
	}
	if req.Type != nil {
		t := domain.TripType(*req.Type)
		p.Type = &t
	}
	if req.StartDate.Set {
		if req.StartDate.Value == nil {
			p.ClearStartDate = true
		} else {
			sd := req.StartDate.Value.Time
			p.StartDate = &sd
		}
	}
	if req.EndDate.Set {
		if req.EndDate.Value == nil {
			p.ClearEndDate = true
		} else {
			ed := req.EndDate.Value.Time
			p.EndDate = &ed
		}
	}
	return p
}

// itineraryToResponse converts a domain.Itinerary into its wire form.
func itineraryToResponse(it domain.Itinerary) ItineraryResponse {
	resp := ItineraryResponse{
		ID:          it.ID,
		Title:       it.Title,
		Destination: it.Destination,
		Type:        string(it.Type),
		Duration:    it.Duration,
		Activities:  it.Activities,
		OwnerID:     it.OwnerID,
		IsFavorite:  it.IsFavorite,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	if resp.Activities == nil {
		resp.Activities = []string{}
	}
	if it.StartDate != nil {
		resp.StartDate = &openapi_types.Date{Time: *it.StartDate}
	}
	if it.EndDate != nil {
		resp.EndDate = &openapi_types.Date{Time: *it.EndDate}
	}
	return resp
}

// itinerariesToResponse converts a snapshot of records into wire form,
// guaranteeing a non-nil slice so the JSON is [] rather than null.
func itinerariesToResponse(items []domain.Itinerary) []ItineraryResponse {
	out := make([]ItineraryResponse, len(items))
	for i, it := range items {
		out[i] = itineraryToResponse(it)
	}
	return out
}
