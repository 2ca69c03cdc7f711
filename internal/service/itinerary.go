// Package service contains the business logic for the Travel Planner API.
// Services validate inputs, enforce business rules, stamp ownership, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// ChangePublisher receives a notification whenever an owner's itinerary set
// changes. It is satisfied by live.Hub. Publishing after a successful mutation
// gives same-instance subscribers low-latency invalidation; the Postgres
// trigger covers mutations made by other instances.
type ChangePublisher interface {
	Publish(ownerID string)
}

// ItineraryService implements business logic for itinerary operations.
// All operations require an authenticated owner identity and return
// domain.ErrUnauthenticated when it is empty.
type ItineraryService struct {
	repo    repo.ItineraryRepo
	changes ChangePublisher
}

// NewItineraryService constructs an ItineraryService backed by the provided
// repo. changes may be nil, in which case no notifications are published.
func NewItineraryService(r repo.ItineraryRepo, changes ChangePublisher) *ItineraryService {
	return &ItineraryService{repo: r, changes: changes}
}

// Create validates and persists a new itinerary for ownerID.
// The owner is stamped here from the authenticated identity; any OwnerID
// already present on the input is overwritten. The persisted record is
// returned with its DB-assigned ID and timestamps.
func (s *ItineraryService) Create(ctx context.Context, ownerID string, it domain.Itinerary) (domain.Itinerary, error) {
	if ownerID == "" {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", domain.ErrUnauthenticated)
	}
	if err := validateItinerary(it); err != nil {
		return domain.Itinerary{}, err
	}

	it.OwnerID = ownerID
	result, err := s.repo.Create(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	s.publish(ownerID)
	return result, nil
}

// GetByID returns a single itinerary by ID, scoped to ownerID.
func (s *ItineraryService) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Itinerary, error) {
	if ownerID == "" {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", domain.ErrUnauthenticated)
	}
	result, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all of ownerID's itineraries, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) List(ctx context.Context, ownerID string, onlyFavorites bool) ([]domain.Itinerary, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", domain.ErrUnauthenticated)
	}
	items, err := s.repo.ListByOwner(ctx, ownerID, onlyFavorites)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	if items == nil {
		return []domain.Itinerary{}, nil
	}
	return items, nil
}

// ListPaged returns one page of ownerID's itineraries plus the total count.
func (s *ItineraryService) ListPaged(ctx context.Context, ownerID string, onlyFavorites bool, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	if ownerID == "" {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListPaged: %w", domain.ErrUnauthenticated)
	}
	items, total, err := s.repo.ListByOwnerPaged(ctx, ownerID, onlyFavorites, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListPaged: %w", err)
	}
	if items == nil {
		items = []domain.Itinerary{}
	}
	return items, total, nil
}

// Update applies a partial patch to an existing itinerary. Fields omitted from
// the patch are left untouched; updated_at is always refreshed. The owner is
// never patchable.
func (s *ItineraryService) Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	if ownerID == "" {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", domain.ErrUnauthenticated)
	}
	if err := validatePatch(patch); err != nil {
		return domain.Itinerary{}, err
	}
	result, err := s.repo.Update(ctx, ownerID, id, patch)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	s.publish(ownerID)
	return result, nil
}

// Delete removes an itinerary by ID. Deleting a record that does not exist
// (or is owned by someone else) returns domain.ErrNotFound rather than
// succeeding silently.
func (s *ItineraryService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if ownerID == "" {
		return fmt.Errorf("service.ItineraryService.Delete: %w", domain.ErrUnauthenticated)
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	s.publish(ownerID)
	return nil
}

// ToggleFavorite flips the favorite flag: a convenience composition over
// Update with IsFavorite = !current. If two toggles race before either's
// snapshot is observed, last-write-wins at the database; no optimistic
// locking is performed.
func (s *ItineraryService) ToggleFavorite(ctx context.Context, ownerID string, id uuid.UUID, current bool) (domain.Itinerary, error) {
	next := !current
	return s.Update(ctx, ownerID, id, domain.ItineraryPatch{IsFavorite: &next})
}

func (s *ItineraryService) publish(ownerID string) {
	if s.changes != nil {
		s.changes.Publish(ownerID)
	}
}

// validateItinerary enforces business rules for a full record at creation.
//   - Title, destination, and duration must be non-empty (whitespace-only rejected).
//   - Type must be one of the known trip types.
//   - EndDate, if both dates are set, must not be before StartDate.
func validateItinerary(it domain.Itinerary) error {
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(it.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if strings.TrimSpace(it.Duration) == "" {
		return fmt.Errorf("%w: duration is required", domain.ErrValidation)
	}
	if !it.Type.Valid() {
		return fmt.Errorf("%w: unknown trip type %q", domain.ErrValidation, it.Type)
	}
	if it.StartDate != nil && it.EndDate != nil && it.EndDate.Before(*it.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

// validatePatch enforces the same rules as validateItinerary, but only for the
// fields the patch actually carries.
func validatePatch(p domain.ItineraryPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}
	if p.Destination != nil && strings.TrimSpace(*p.Destination) == "" {
		return fmt.Errorf("%w: destination must not be empty", domain.ErrValidation)
	}
	if p.Duration != nil && strings.TrimSpace(*p.Duration) == "" {
		return fmt.Errorf("%w: duration must not be empty", domain.ErrValidation)
	}
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w: unknown trip type %q", domain.ErrValidation, *p.Type)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
