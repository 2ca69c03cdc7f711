package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Middleware returns an http middleware that resolves the Authorization
// header into an identity on the request context.
//
// Requests without an Authorization header pass through unauthenticated —
// the product is explorable before sign-in, so handlers decide per-route
// whether an identity is required. A header that is present but invalid is
// rejected with 401 immediately: a caller who attempted to authenticate
// should never be silently downgraded to the anonymous view.
func Middleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "authorization header must be of the form: Bearer <token>")
				return
			}

			id, err := v.Verify(r.Context(), token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthenticated", "message": message},
	})
}
