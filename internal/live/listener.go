package live

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// NotifyChannel is the Postgres NOTIFY channel the itineraries table trigger
// publishes to. The payload of each notification is the owner id whose
// records changed.
const NotifyChannel = "itinerary_changes"

// Listener feeds the hub with change notifications from Postgres, so
// mutations made by other server instances (or directly in the database)
// invalidate live views on this one.
type Listener struct {
	pool *pgxpool.Pool
	hub  *Hub
	log  *slog.Logger
}

// NewListener constructs a Listener publishing into hub.
func NewListener(pool *pgxpool.Pool, hub *Hub, log *slog.Logger) *Listener {
	return &Listener{pool: pool, hub: hub, log: log}
}

// Run blocks, listening for notifications until ctx is cancelled.
// Connection failures are retried with capped exponential backoff; the only
// non-retryable exit is context cancellation, whose error is returned.
func (l *Listener) Run(ctx context.Context) error {
	backoff := retry.WithCappedDuration(30*time.Second, retry.NewExponential(time.Second))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.log.Warn("itinerary change listener disconnected; reconnecting", "error", err)
		return retry.RetryableError(err)
	})
}

// listen acquires a dedicated connection, LISTENs, and dispatches
// notifications until the connection or the context dies.
func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("live.Listener: acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		return fmt.Errorf("live.Listener: listen: %w", err)
	}
	l.log.Info("listening for itinerary changes", "channel", NotifyChannel)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("live.Listener: wait for notification: %w", err)
		}
		if n.Payload == "" {
			continue
		}
		l.hub.Publish(n.Payload)
	}
}
