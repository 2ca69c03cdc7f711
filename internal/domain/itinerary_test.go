package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

func TestTripType_Valid(t *testing.T) {
	assert.True(t, domain.TripAdventure.Valid())
	assert.True(t, domain.TripLeisure.Valid())
	assert.True(t, domain.TripWork.Valid())
	assert.False(t, domain.TripType("").Valid())
	assert.False(t, domain.TripType("cruise").Valid())
}

func TestParseActivities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "Louvre,Seine Cruise", []string{"Louvre", "Seine Cruise"}},
		{"trims and drops empties, keeps duplicates and order", "a, , b,b", []string{"a", "b", "b"}},
		{"whitespace only", "  ,  , ", nil},
		{"empty", "", nil},
		{"single", " Mount Fuji ", []string{"Mount Fuji"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ParseActivities(tt.input))
		})
	}
}

func TestItineraryPatch_IsZero(t *testing.T) {
	assert.True(t, domain.ItineraryPatch{}.IsZero())

	title := "New Title"
	assert.False(t, domain.ItineraryPatch{Title: &title}.IsZero())
	assert.False(t, domain.ItineraryPatch{ClearEndDate: true}.IsZero())

	fav := true
	assert.False(t, domain.ItineraryPatch{IsFavorite: &fav}.IsZero())

	now := time.Now()
	assert.False(t, domain.ItineraryPatch{StartDate: &now}.IsZero())
}

func TestSampleItineraries(t *testing.T) {
	samples := domain.SampleItineraries()

	require.Len(t, samples, 3)
	for _, s := range samples {
		assert.Empty(t, s.OwnerID, "samples have no owner")
		assert.True(t, s.Type.Valid())
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Activities)
		assert.False(t, s.IsFavorite)
	}

	// Callers must not be able to corrupt the shared fixture.
	samples[0].Title = "mutated"
	assert.Equal(t, "Tokyo Adventure", domain.SampleItineraries()[0].Title)
}
