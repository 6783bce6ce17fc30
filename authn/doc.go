// Package authn provides reference implementations of the
// ticketauth.Authenticator interface.
//
//   - [JWT] verifies an upstream bearer token (for deployments fronted by
//     an SSO or API gateway that issues JWTs). Verifying the upstream token
//     on every request is the expensive step the ticket then caches.
//   - [Static] checks basic-auth credentials against a fixed in-memory
//     map, for tests and examples.
//
// Production deployments typically implement Authenticator themselves,
// wrapping whatever directory-service handshake they already run; nothing
// in ticketauth depends on this package.
package authn
