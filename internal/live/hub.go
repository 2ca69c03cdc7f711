// Package live implements the live-query layer of the Travel Planner API:
// a snapshot hub that fans change notifications out to per-owner
// subscriptions, a Binding that keeps an always-current view of one owner's
// itineraries, and a Postgres listener that feeds the hub with changes made
// by other server instances.
package live

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var liveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "travel_planner_live_subscribers",
	Help: "Number of currently open live-query subscriptions.",
})

// Subscription is one owner-scoped registration with a Hub.
// C receives a signal whenever the owner's itinerary set may have changed.
// The channel has a buffer of one, so bursts of notifications coalesce into a
// single pending signal; subscribers re-query, they never receive data here.
type Subscription struct {
	C <-chan struct{}

	hub     *Hub
	ownerID string
	ch      chan struct{}
}

// Cancel removes the subscription from the hub and closes C.
// After Cancel returns, no further signal is ever delivered: removal and
// publishing share the hub lock, so a concurrent Publish either completed
// before the cancel or skips this subscription entirely.
// Cancel is idempotent and safe to call from any goroutine.
func (s *Subscription) Cancel() {
	s.hub.cancel(s)
}

// Hub fans out per-owner change notifications to subscriptions.
// The zero value is not usable; construct with NewHub.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

// NewHub returns an empty Hub ready for use.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers interest in changes to ownerID's itineraries.
// The caller must Cancel the returned subscription when done.
func (h *Hub) Subscribe(ownerID string) *Subscription {
	sub := &Subscription{hub: h, ownerID: ownerID, ch: make(chan struct{}, 1)}
	sub.C = sub.ch

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[ownerID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[ownerID] = set
	}
	set[sub] = struct{}{}
	liveSubscribers.Inc()
	return sub
}

// Publish signals every subscription registered for ownerID.
// The send is non-blocking: a subscriber that already has a signal pending
// does not need another one, since it will re-query anyway.
func (h *Hub) Publish(ownerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[ownerID] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) cancel(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sub.ownerID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return // already cancelled
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.ownerID)
	}
	liveSubscribers.Dec()
	// Closing under the lock is safe: no Publish can reach this subscription
	// any more, so there is no send to race with.
	close(sub.ch)
}
