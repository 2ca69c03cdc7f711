package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkordes/travel-planner/backend/internal/auth"
)

// keepaliveInterval is how often an SSE comment line is written so proxies
// do not reap an idle watch connection.
const keepaliveInterval = 30 * time.Second

// watchItineraries handles GET /api/v1/itineraries/watch.
//
// It streams the caller's live itinerary view as server-sent events: one
// `snapshot` event per delivered snapshot, the first reflecting the current
// state. Each connection owns a dedicated live.Binding, so closing the
// request context tears the subscription down and no further events are
// written. Query failures surface as `error` events rather than closing the
// stream; the client may keep listening.
func (s *Server) watchItineraries(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal_error", "streaming unsupported")
		return
	}

	b := s.newBinding()
	defer b.Close()
	b.SetIdentity(id.UserID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, open := <-b.Snapshots():
			if !open {
				return
			}
			if snap.Err != nil {
				writeEvent(w, "error", ErrorDetail{Code: "query_failed", Message: "live query failed"})
			} else {
				writeEvent(w, "snapshot", itinerariesToResponse(snap.Items))
			}
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}

// writeEvent writes one SSE event with a JSON payload.
func writeEvent(w http.ResponseWriter, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
