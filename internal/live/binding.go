package live

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ItineraryOps defines the business operations a Binding depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It is satisfied by
// *service.ItineraryService and lets binding tests inject a mock without
// touching the database.
type ItineraryOps interface {
	List(ctx context.Context, ownerID string, onlyFavorites bool) ([]domain.Itinerary, error)
	Create(ctx context.Context, ownerID string, it domain.Itinerary) (domain.Itinerary, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, ownerID string, id uuid.UUID, current bool) (domain.Itinerary, error)
}

// Snapshot is one delivered result set from a live binding at a point in time.
// When the underlying query failed, Err is set and Items holds the previous
// good list — errors are propagated to the consumer, never swallowed here.
type Snapshot struct {
	Items []domain.Itinerary
	Err   error
}

// Binding maintains a live, ordered view of one identity's itineraries and
// exposes the four mutation operations. It is the server-side equivalent of a
// UI data-binding hook:
//
//   - with no identity, Items is empty and Loading is false, and no
//     subscription is held;
//   - with an identity, exactly one hub subscription is open, and every
//     change signal triggers a re-query whose result replaces the view
//     wholesale (newest-created first);
//   - switching identity tears the old subscription down before the new
//     state becomes visible, so stale-user data is never shown.
//
// Snapshots are additionally delivered on the Snapshots channel with
// latest-wins coalescing, for consumers that stream the view (SSE).
type Binding struct {
	ops ItineraryOps
	hub *Hub

	mu      sync.Mutex
	ownerID string
	items   []domain.Itinerary
	loading bool
	gen     uint64 // bumped on every identity change; stale refreshes are no-ops
	stop    context.CancelFunc
	closed  bool

	snapshots chan Snapshot
}

// NewBinding constructs a Binding in the unauthenticated state.
// Call SetIdentity to start (or stop) watching, and Close when done.
func NewBinding(ops ItineraryOps, hub *Hub) *Binding {
	return &Binding{
		ops:       ops,
		hub:       hub,
		snapshots: make(chan Snapshot, 1),
	}
}

// SetIdentity switches the binding to the given owner identity; the empty
// string means "no authenticated user". Setting the same identity again is a
// no-op. The previous watcher is cancelled before the new state is published,
// so a consumer can never observe one identity's items under another.
func (b *Binding) SetIdentity(ownerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || ownerID == b.ownerID {
		return
	}

	// Tear down first. The generation bump makes any in-flight refresh from
	// the old watcher a no-op even if it is past cancellation.
	if b.stop != nil {
		b.stop()
		b.stop = nil
	}
	b.gen++
	b.ownerID = ownerID
	b.items = nil

	if ownerID == "" {
		b.loading = false
		b.emitLocked(Snapshot{Items: []domain.Itinerary{}})
		return
	}

	b.loading = true
	ctx, cancel := context.WithCancel(context.Background())
	b.stop = cancel
	go b.watch(ctx, b.gen, ownerID)
}

// Items returns the current snapshot contents, newest-created first.
// Empty (never nil) when no identity is set or no records exist.
func (b *Binding) Items() []domain.Itinerary {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.items == nil {
		return []domain.Itinerary{}
	}
	return b.items
}

// Loading reports whether the first snapshot for the current identity is
// still pending. Always false when no identity is set.
func (b *Binding) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Snapshots returns the channel on which new snapshots are delivered.
// Delivery is latest-wins: a slow consumer sees the most recent state, not
// every intermediate one. The channel is closed by Close.
func (b *Binding) Snapshots() <-chan Snapshot {
	return b.snapshots
}

// Close cancels any open subscription and closes the snapshot channel.
// A signal arriving after Close is a no-op.
func (b *Binding) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.gen++
	if b.stop != nil {
		b.stop()
		b.stop = nil
	}
	close(b.snapshots)
}

// Create persists a new itinerary for the bound identity. The created record
// is intentionally not returned: the live subscription is the source of truth
// for its arrival and its backend-assigned ID.
func (b *Binding) Create(ctx context.Context, it domain.Itinerary) error {
	owner, err := b.requireIdentity("Create")
	if err != nil {
		return err
	}
	if _, err := b.ops.Create(ctx, owner, it); err != nil {
		return err
	}
	return nil
}

// Update applies a partial patch to one of the bound identity's records.
func (b *Binding) Update(ctx context.Context, id uuid.UUID, patch domain.ItineraryPatch) error {
	owner, err := b.requireIdentity("Update")
	if err != nil {
		return err
	}
	_, err = b.ops.Update(ctx, owner, id, patch)
	return err
}

// Delete removes one of the bound identity's records.
func (b *Binding) Delete(ctx context.Context, id uuid.UUID) error {
	owner, err := b.requireIdentity("Delete")
	if err != nil {
		return err
	}
	return b.ops.Delete(ctx, owner, id)
}

// ToggleFavorite flips the favorite flag on one of the bound identity's
// records. Last-write-wins when two toggles race; see ItineraryService.
func (b *Binding) ToggleFavorite(ctx context.Context, id uuid.UUID, current bool) error {
	owner, err := b.requireIdentity("ToggleFavorite")
	if err != nil {
		return err
	}
	_, err = b.ops.ToggleFavorite(ctx, owner, id, current)
	return err
}

func (b *Binding) requireIdentity(op string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ownerID == "" {
		return "", fmt.Errorf("live.Binding.%s: %w", op, domain.ErrUnauthenticated)
	}
	return b.ownerID, nil
}

// watch holds the hub subscription for one identity generation: query once
// immediately, then re-query on every change signal until cancelled.
func (b *Binding) watch(ctx context.Context, gen uint64, ownerID string) {
	sub := b.hub.Subscribe(ownerID)
	defer sub.Cancel()

	b.refresh(ctx, gen, ownerID)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.C:
			if !ok {
				return
			}
			b.refresh(ctx, gen, ownerID)
		}
	}
}

// refresh re-runs the owner's list query and installs the result, unless the
// binding has moved to a different generation in the meantime.
func (b *Binding) refresh(ctx context.Context, gen uint64, ownerID string) {
	items, err := b.ops.List(ctx, ownerID, false)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gen != gen || b.closed {
		return // stale callback: the identity changed under us
	}
	if err == nil {
		b.items = items
	}
	b.loading = false
	b.emitLocked(Snapshot{Items: b.items, Err: err})
}

// emitLocked delivers a snapshot with latest-wins semantics.
// Caller must hold b.mu, which also serializes emitters, so the post-drain
// send cannot block.
func (b *Binding) emitLocked(snap Snapshot) {
	if b.closed {
		return
	}
	select {
	case b.snapshots <- snap:
	default:
		select {
		case <-b.snapshots:
		default:
		}
		select {
		case b.snapshots <- snap:
		default:
		}
	}
}
