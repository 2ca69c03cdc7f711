package domain

import "github.com/google/uuid"

// Stable IDs for the sample entries. Any valid UUIDs work; fixed values keep
// the unauthenticated view deterministic across requests and restarts.
var (
	sampleTokyoID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	sampleBaliID  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	sampleNYCID   = uuid.MustParse("00000000-0000-0000-0000-000000000003")
)

// SampleItineraries returns the fixed illustrative list shown to visitors who
// are not signed in, so the product is explorable before authentication.
// The entries are never persisted and never mutable; IDs are stable so the
// client can key on them, and OwnerID is empty because no owner exists.
//
// A fresh slice is returned on every call, so a caller's mutation cannot
// corrupt the fixture seen by other requests.
func SampleItineraries() []Itinerary {
	return []Itinerary{
		{
			ID:          sampleTokyoID,
			Title:       "Tokyo Adventure",
			Destination: "Tokyo, Japan",
			Type:        TripAdventure,
			Duration:    "7 days",
			Activities:  []string{"Shibuya Crossing", "Mount Fuji", "Temple Visits"},
		},
		{
			ID:          sampleBaliID,
			Title:       "Bali Relaxation",
			Destination: "Bali, Indonesia",
			Type:        TripLeisure,
			Duration:    "5 days",
			Activities:  []string{"Beach Hopping", "Spa Treatments", "Sunset Dinners"},
		},
		{
			ID:          sampleNYCID,
			Title:       "NYC Business Trip",
			Destination: "New York, USA",
			Type:        TripWork,
			Duration:    "3 days",
			Activities:  []string{"Conference", "Client Meetings", "Times Square"},
		},
	}
}
