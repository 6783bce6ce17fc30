package ticketauth

import (
	"context"
	"net/http"
	"strings"
)

// Authenticator is the external collaborator that performs the actual
// (expensive, possibly multi-round-trip) identity verification. The Gate
// invokes it at most once per request, only when no valid ticket is
// presented.
//
// On success it returns the verified principal name; on failure its error is
// propagated by the Gate verbatim, with no wrapping and no retry.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (identity string, err error)
}

// AuthenticatorFunc adapts a plain function to the [Authenticator]
// interface.
type AuthenticatorFunc func(ctx context.Context, r *http.Request) (string, error)

// Authenticate implements [Authenticator].
func (f AuthenticatorFunc) Authenticate(ctx context.Context, r *http.Request) (string, error) {
	return f(ctx, r)
}

// Admission is the outcome of a successful [Gate.Admit]: the authenticated
// identity plus, on the slow path, the freshly minted credential to attach
// to the response.
type Admission struct {
	// Identity is the authenticated principal for the remainder of the
	// request.
	Identity string

	// FromTicket is true when the request was admitted on the fast path,
	// without invoking the Authenticator.
	FromTicket bool

	// Issued is the credential minted after a slow-path handshake, nil on
	// the fast path. Transports attach it to the response under its Name.
	Issued *Credential
}

// Credential is the transport envelope of an issued ticket: the raw encoded
// record plus the pass-through attributes from configuration. The attribute
// strings are never interpreted by this package.
type Credential struct {
	Name  string
	Value string

	Expires string
	Domain  string
	Path    string

	HTTPOnly bool
}

// Header renders the credential as a Set-Cookie header value. Assembled by
// hand so the configured attribute strings pass through byte for byte.
func (c Credential) Header() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)

	if c.Expires != "" {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires)
	}
	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}
	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}
	if c.HTTPOnly {
		b.WriteString("; HttpOnly")
	}

	return b.String()
}
