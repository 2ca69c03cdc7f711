package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned by a Verifier when the presented credential is
// unknown, expired, or malformed. Handlers map this to HTTP 401.
var ErrInvalidToken = errors.New("invalid token")

// Verifier checks a bearer token and resolves it to an identity.
// The production implementation wraps the external identity provider;
// StaticVerifier serves development and tests.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// StaticVerifier resolves tokens from a fixed in-memory table.
// It exists so the service can run end-to-end without the external identity
// provider; it performs no cryptography and must not be used in production.
type StaticVerifier struct {
	tokens map[string]Identity
}

// NewStaticVerifier constructs a StaticVerifier from a token → identity table.
func NewStaticVerifier(tokens map[string]Identity) *StaticVerifier {
	// Copy so later mutation of the caller's map cannot change auth behavior.
	cp := make(map[string]Identity, len(tokens))
	for k, v := range tokens {
		cp[k] = v
	}
	return &StaticVerifier{tokens: cp}
}

// Verify looks the token up in the static table.
func (v *StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	id, ok := v.tokens[token]
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return id, nil
}
