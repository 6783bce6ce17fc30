package middleware

import (
	"context"
	"net/http"

	"github.com/larkvale/ticketauth"
)

type identityContextKey struct{}

// IdentityFromContext returns the authenticated principal injected by
// [Protect].
func IdentityFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(string)
	return identity, ok
}

// Protect wraps a handler behind the Gate. Requests presenting a valid
// ticket pass straight through; everything else runs the Gate's slow path.
// When a new ticket is issued, its Set-Cookie header is attached to the
// response before the wrapped handler runs.
//
// The caller's client IP, when known, should be attached to the request
// context with [ticketauth.WithClientIP] by an outer middleware.
func Protect(gate *ticketauth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			adm, err := gate.Admit(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if adm.Issued != nil {
				w.Header().Add("Set-Cookie", adm.Issued.Header())
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, adm.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
