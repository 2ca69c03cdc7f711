package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

func newItinerary(owner, title string) domain.Itinerary {
	return domain.Itinerary{
		Title:       title,
		Destination: "Lisbon, Portugal",
		Type:        domain.TripAdventure,
		Duration:    "7 days",
		Activities:  []string{"surfing", "pasteis de nata"},
		OwnerID:     owner,
	}
}

func mustCreate(t *testing.T, r repo.ItineraryRepo, it domain.Itinerary) domain.Itinerary {
	t.Helper()
	created, err := r.Create(context.Background(), it)
	require.NoError(t, err)
	return created
}

func TestItineraryRepo_Create(t *testing.T) {
	r := newTestRepo(t)

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	in := newItinerary("user-1", "Lisbon Surf Week")
	in.StartDate = &start
	in.EndDate = &end

	created := mustCreate(t, r, in)

	assert.NotEqual(t, uuid.UUID{}, created.ID)
	assert.Equal(t, "Lisbon Surf Week", created.Title)
	assert.Equal(t, domain.TripAdventure, created.Type)
	assert.Equal(t, []string{"surfing", "pasteis de nata"}, created.Activities)
	assert.Equal(t, "user-1", created.OwnerID)
	assert.False(t, created.IsFavorite)
	require.NotNil(t, created.StartDate)
	assert.Equal(t, start, created.StartDate.UTC())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt, "both timestamps come from the same now()")
}

func TestItineraryRepo_Create_NullDates(t *testing.T) {
	r := newTestRepo(t)

	created := mustCreate(t, r, newItinerary("user-1", "Undated"))

	assert.Nil(t, created.StartDate)
	assert.Nil(t, created.EndDate)
}

func TestItineraryRepo_GetByID_OwnerScoped(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, newItinerary("user-1", "Mine"))

	got, err := r.GetByID(context.Background(), "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// The same ID under a different owner does not exist.
	_, err = r.GetByID(context.Background(), "user-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryRepo_ListByOwner(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := mustCreate(t, r, newItinerary("user-1", "First"))
	second := mustCreate(t, r, newItinerary("user-1", "Second"))
	mustCreate(t, r, newItinerary("user-2", "Not Mine"))

	items, err := r.ListByOwner(ctx, "user-1", false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Newest first; ties on created_at break by id descending.
	ids := []uuid.UUID{items[0].ID, items[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	assert.False(t, items[0].CreatedAt.Before(items[1].CreatedAt))
}

func TestItineraryRepo_ListByOwner_Favorites(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	plain := mustCreate(t, r, newItinerary("user-1", "Plain"))
	fav := newItinerary("user-1", "Starred")
	fav.IsFavorite = true
	starred := mustCreate(t, r, fav)

	items, err := r.ListByOwner(ctx, "user-1", true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, starred.ID, items[0].ID)
	assert.NotEqual(t, plain.ID, items[0].ID)
}

func TestItineraryRepo_ListByOwnerPaged(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreate(t, r, newItinerary("user-1", "Trip"))
	}

	page1, total, err := r.ListByOwnerPaged(ctx, "user-1", false, domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page1, 2)

	page3, total, err := r.ListByOwnerPaged(ctx, "user-1", false, domain.PaginationParams{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page3, 1)

	empty, total, err := r.ListByOwnerPaged(ctx, "user-1", false, domain.PaginationParams{Page: 4, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, empty)
}

func TestItineraryRepo_Update_Partial(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	in := newItinerary("user-1", "Original")
	in.StartDate = &start
	created := mustCreate(t, r, in)

	title := "Renamed"
	updated, err := r.Update(ctx, "user-1", created.ID, domain.ItineraryPatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	// Everything else is untouched.
	assert.Equal(t, created.Destination, updated.Destination)
	assert.Equal(t, created.Activities, updated.Activities)
	require.NotNil(t, updated.StartDate)
	assert.Equal(t, start, updated.StartDate.UTC())
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestItineraryRepo_Update_ClearsDate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	in := newItinerary("user-1", "Dated")
	in.StartDate = &start
	created := mustCreate(t, r, in)

	updated, err := r.Update(ctx, "user-1", created.ID, domain.ItineraryPatch{ClearStartDate: true})
	require.NoError(t, err)

	assert.Nil(t, updated.StartDate)
}

func TestItineraryRepo_Update_OwnerScoped(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, newItinerary("user-1", "Mine"))

	title := "Hijacked"
	_, err := r.Update(context.Background(), "user-2", created.ID, domain.ItineraryPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The record is unchanged under its real owner.
	got, err := r.GetByID(context.Background(), "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
}

func TestItineraryRepo_Update_FavoriteFlag(t *testing.T) {
	r := newTestRepo(t)
	created := mustCreate(t, r, newItinerary("user-1", "Trip"))

	fav := true
	updated, err := r.Update(context.Background(), "user-1", created.ID, domain.ItineraryPatch{IsFavorite: &fav})
	require.NoError(t, err)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, created.Title, updated.Title)
}

func TestItineraryRepo_Delete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	created := mustCreate(t, r, newItinerary("user-1", "Doomed"))

	require.NoError(t, r.Delete(ctx, "user-1", created.ID))

	_, err := r.GetByID(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again reports not found rather than succeeding silently.
	assert.ErrorIs(t, r.Delete(ctx, "user-1", created.ID), domain.ErrNotFound)
}

func TestItineraryRepo_Delete_OwnerScoped(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	created := mustCreate(t, r, newItinerary("user-1", "Mine"))

	assert.ErrorIs(t, r.Delete(ctx, "user-2", created.ID), domain.ErrNotFound)

	_, err := r.GetByID(ctx, "user-1", created.ID)
	require.NoError(t, err, "the other owner's delete did not touch the record")
}
