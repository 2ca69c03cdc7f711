// Package repo contains all database access logic for the Travel Planner API.
// No business logic lives here — only SQL and type mapping.
//
// Every query is scoped by owner_id. That scoping is the server-side analogue
// of the managed backend's per-user access rules: a caller can never read or
// mutate a record it does not own, because the owner is part of every WHERE
// clause.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ItineraryRepo defines the persistence operations for itineraries.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type ItineraryRepo interface {
	// Create inserts a new itinerary and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated; created_at and
	// updated_at are set to the same instant).
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves a single itinerary by ID, scoped to ownerID.
	// Returns domain.ErrNotFound if no such record exists for that owner.
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Itinerary, error)

	// ListByOwner returns all of ownerID's itineraries ordered by created_at
	// descending (newest first). When onlyFavorites is true, only records with
	// is_favorite = true are returned.
	ListByOwner(ctx context.Context, ownerID string, onlyFavorites bool) ([]domain.Itinerary, error)

	// ListByOwnerPaged is ListByOwner with pagination; it additionally returns
	// the total number of matching records.
	ListByOwnerPaged(ctx context.Context, ownerID string, onlyFavorites bool, p domain.PaginationParams) ([]domain.Itinerary, int64, error)

	// Update applies the non-nil fields of patch to the record identified by
	// id and owned by ownerID, always refreshing updated_at, and returns the
	// updated record. Returns domain.ErrNotFound if no such record exists.
	Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error)

	// Delete removes an itinerary by ID, scoped to ownerID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `id, title, destination, trip_type, duration, activities,
	start_date, end_date, owner_id, is_favorite, created_at, updated_at`

// Create inserts a new itinerary row and returns the full persisted record.
// created_at and updated_at come from the single now() default, so they are
// equal at creation.
func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (title, destination, trip_type, duration, activities,
		                         start_date, end_date, owner_id, is_favorite)
		VALUES (@title, @destination, @trip_type, @duration, @activities,
		        @start_date, @end_date, @owner_id, @is_favorite)
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"title":       it.Title,
		"destination": it.Destination,
		"trip_type":   string(it.Type),
		"duration":    it.Duration,
		"activities":  it.Activities,
		"start_date":  it.StartDate, // nil becomes NULL
		"end_date":    it.EndDate,
		"owner_id":    it.OwnerID,
		"is_favorite": it.IsFavorite,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an itinerary by primary key, scoped to its owner.
func (r *pgItineraryRepo) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Itinerary, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwner returns all of an owner's itineraries, newest first.
func (r *pgItineraryRepo) ListByOwner(ctx context.Context, ownerID string, onlyFavorites bool) ([]domain.Itinerary, error) {
	q := `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE owner_id = @owner_id`
	if onlyFavorites {
		q += ` AND is_favorite`
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	items, err := collectItineraries(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByOwner: %w", err)
	}
	return items, nil
}

// ListByOwnerPaged returns one page of an owner's itineraries plus the total count.
func (r *pgItineraryRepo) ListByOwnerPaged(ctx context.Context, ownerID string, onlyFavorites bool, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	filter := `WHERE owner_id = @owner_id`
	if onlyFavorites {
		filter += ` AND is_favorite`
	}

	countQ := `SELECT count(*) FROM itineraries ` + filter
	args := pgx.NamedArgs{"owner_id": ownerID, "limit": p.Limit, "offset": p.Offset()}

	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListByOwnerPaged: count: %w", err)
	}

	q := `
		SELECT ` + itineraryColumns + `
		FROM itineraries ` + filter + `
		ORDER BY created_at DESC, id DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListByOwnerPaged: %w", err)
	}
	defer rows.Close()

	items, err := collectItineraries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListByOwnerPaged: %w", err)
	}
	return items, total, nil
}

// Update builds a SET clause from the non-nil patch fields. updated_at is
// always refreshed, even for an empty patch, so a favorite toggle bumps it.
func (r *pgItineraryRepo) Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	sets := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id, "owner_id": ownerID}

	if patch.Title != nil {
		sets = append(sets, "title = @title")
		args["title"] = *patch.Title
	}
	if patch.Destination != nil {
		sets = append(sets, "destination = @destination")
		args["destination"] = *patch.Destination
	}
	if patch.Type != nil {
		sets = append(sets, "trip_type = @trip_type")
		args["trip_type"] = string(*patch.Type)
	}
	if patch.Duration != nil {
		sets = append(sets, "duration = @duration")
		args["duration"] = *patch.Duration
	}
	if patch.Activities != nil {
		sets = append(sets, "activities = @activities")
		args["activities"] = *patch.Activities
	}
	if patch.StartDate != nil || patch.ClearStartDate {
		sets = append(sets, "start_date = @start_date")
		args["start_date"] = patch.StartDate // nil clears to NULL
	}
	if patch.EndDate != nil || patch.ClearEndDate {
		sets = append(sets, "end_date = @end_date")
		args["end_date"] = patch.EndDate
	}
	if patch.IsFavorite != nil {
		sets = append(sets, "is_favorite = @is_favorite")
		args["is_favorite"] = *patch.IsFavorite
	}

	q := `
		UPDATE itineraries
		SET ` + strings.Join(sets, ",\n\t\t    ") + `
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + itineraryColumns

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes an itinerary by primary key, scoped to its owner.
func (r *pgItineraryRepo) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanItinerary to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanItinerary maps a single database row into a domain.Itinerary.
// It handles the UUID, text[] activities, and nullable date conversions.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it        domain.Itinerary
		id        pgtype.UUID
		tripType  string
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &it.Title, &it.Destination, &tripType, &it.Duration,
		&it.Activities, &startDate, &endDate, &it.OwnerID, &it.IsFavorite,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.Type = domain.TripType(tripType)
	if startDate.Valid {
		sd := startDate.Time
		it.StartDate = &sd
	}
	if endDate.Valid {
		ed := endDate.Time
		it.EndDate = &ed
	}

	return it, nil
}

// collectItineraries drains rows into a slice, surfacing scan and iteration errors.
func collectItineraries(rows pgx.Rows) ([]domain.Itinerary, error) {
	var items []domain.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}
