// Package ticketauth caches the result of an expensive external
// authentication handshake inside a client-held, tamper-evident ticket, so
// that subsequent requests from the same client authenticate locally without
// repeating the handshake.
//
// The ticket is a compact binary record binding an identity to an issuance
// time and a server-held secret: a keyed digest, a fixed-width timestamp, and
// the principal name. It is statelessly verifiable (the server keeps no
// session table), and invalid tickets of any kind fall through to
// re-authentication, never to an error response.
//
// # Architecture boundaries
//
// ticketauth is the public surface. It exposes [Gate], [Builder], [Config],
// the [Authenticator] interface, and value types (Admission, Credential,
// MetricsSnapshot, AuditEvent). The pure ticket algorithms live in the
// ticket subpackage, secret resolution in secret, and HTTP adapters in
// middleware. The handshake itself is always an external collaborator
// supplied through [Builder.WithAuthenticator]; reference adapters live in
// authn.
//
// # What this package must NOT do
//
//   - Perform the authentication handshake itself (that is the
//     Authenticator's job; the Gate only decides whether to invoke it).
//   - Keep per-client state between requests (no session store, no
//     revocation list).
//   - Surface ticket invalidity as an error: a bad ticket is
//     indistinguishable from no ticket.
//
// # Performance contract
//
// Gate.Admit with a valid ticket is the hot path: decode, one HMAC, one
// constant-time compare, no I/O. Only the slow path (the Authenticator and,
// when enabled, the Redis handshake throttle) may block.
package ticketauth
