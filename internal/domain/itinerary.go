// Package domain contains the core data types for the Travel Planner application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, live, handler).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripType classifies an itinerary. The set is closed; anything else is
// rejected at validation time.
type TripType string

const (
	TripAdventure TripType = "adventure"
	TripLeisure   TripType = "leisure"
	TripWork      TripType = "work"
)

// Valid reports whether t is one of the known trip types.
func (t TripType) Valid() bool {
	switch t {
	case TripAdventure, TripLeisure, TripWork:
		return true
	}
	return false
}

// Itinerary represents a single travel itinerary owned by one user.
//
// OwnerID is stamped at creation from the authenticated identity and is never
// user-editable afterwards. Every repo query is scoped by OwnerID, so a record
// is only ever visible to, or mutable by, its owner.
type Itinerary struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	Type        TripType   `json:"type"`
	Duration    string     `json:"duration"`
	Activities  []string   `json:"activities"`
	StartDate   *time.Time `json:"start_date,omitempty"` // nil when no date was supplied
	EndDate     *time.Time `json:"end_date,omitempty"`
	OwnerID     string     `json:"owner_id"`
	IsFavorite  bool       `json:"is_favorite"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ItineraryPatch carries a partial update. Nil fields are left untouched;
// this "omitted field unchanged" rule is applied uniformly, including dates.
// To clear an optional date, set the corresponding Clear*Date flag.
type ItineraryPatch struct {
	Title       *string
	Destination *string
	Type        *TripType
	Duration    *string
	Activities  *[]string
	StartDate   *time.Time
	EndDate     *time.Time
	IsFavorite  *bool

	// ClearStartDate / ClearEndDate distinguish "set to absent" from
	// "leave untouched", which a nil pointer alone cannot express.
	ClearStartDate bool
	ClearEndDate   bool
}

// IsZero reports whether the patch carries no changes at all.
func (p ItineraryPatch) IsZero() bool {
	return p.Title == nil && p.Destination == nil && p.Type == nil &&
		p.Duration == nil && p.Activities == nil &&
		p.StartDate == nil && p.EndDate == nil && p.IsFavorite == nil &&
		!p.ClearStartDate && !p.ClearEndDate
}

// ParseActivities splits the creation form's comma-separated activities string
// into the ordered activities list. Entries are trimmed and empty entries are
// dropped; duplicates and order are preserved ("a, , b,b" → ["a","b","b"]).
func ParseActivities(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
