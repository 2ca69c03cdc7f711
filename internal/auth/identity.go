// Package auth is the seam between the Travel Planner API and the external
// identity provider. The server only ever reads "current identity or absent";
// sign-up, sign-in, and token lifecycle belong to the provider.
package auth

import "context"

// Identity is the authenticated user as seen by this service.
// UserID is the opaque identifier stamped onto records as their owner.
type Identity struct {
	UserID string
	Email  string
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom returns the identity attached to ctx, if any.
// ok is false for unauthenticated requests.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
