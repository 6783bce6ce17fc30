// Package middleware exposes the net/http adapter for ticketauth.Gate.
//
// # Guards
//
//   - [Protect] — admits each request through the Gate, attaches freshly
//     issued credentials to the response, and injects the authenticated
//     identity into the request context.
//
// Identity values are read back with [IdentityFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Gate calls. It does NOT make
// authentication decisions itself: pass/reject comes from Gate.Admit, and a
// handshake failure maps to 401 regardless of its concrete error.
//
// # What this package must NOT do
//
//   - Inspect or construct tickets (the ticket package owns the format).
//   - Interpret the transport attributes on an issued credential; the
//     Set-Cookie header is rendered by Credential.Header verbatim.
package middleware
