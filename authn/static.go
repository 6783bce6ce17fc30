package authn

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
)

// ErrBadCredentials is returned by [Static] for unknown users and wrong
// passwords alike.
var ErrBadCredentials = errors.New("authn: invalid credentials")

// Static authenticates basic-auth credentials against a fixed map of
// username to password. It exists for tests and examples; it is not a
// production credential store.
type Static struct {
	users map[string]string
}

// NewStatic copies the given credential map.
func NewStatic(users map[string]string) *Static {
	copied := make(map[string]string, len(users))
	for user, pass := range users {
		copied[user] = pass
	}
	return &Static{users: copied}
}

// Authenticate implements ticketauth.Authenticator. Unknown user and wrong
// password are indistinguishable to the caller.
func (s *Static) Authenticate(_ context.Context, r *http.Request) (string, error) {
	user, pass, ok := r.BasicAuth()
	if !ok {
		return "", ErrBadCredentials
	}

	want, exists := s.users[user]
	match := subtle.ConstantTimeCompare([]byte(pass), []byte(want)) == 1
	if !exists || !match {
		return "", ErrBadCredentials
	}

	return user, nil
}
