package ticket

import "time"

// Issue mints the wire form of a fresh ticket for an already-authenticated
// identity. It performs no authentication itself: callers must only invoke
// it after the external handshake has produced a trusted identity.
func Issue(identity string, now int64, secret string) []byte {
	return Encode(Ticket{
		Digest:   Digest(now, identity, secret),
		IssuedAt: now,
		Identity: identity,
	})
}

// Validate checks a raw ticket against the secret and the freshness window
// and, when both checks pass, returns the authenticated identity.
//
// A ticket is valid iff its digest matches the recomputed tag (compared in
// constant time) and now-issuedAt < window. Both checks always run; there is
// no way to distinguish a forged ticket from a stale one from the outside.
// Validate has no side effects and never panics on malformed input.
func Validate(raw []byte, now int64, secret string, window time.Duration) (identity string, ok bool) {
	t := Decode(raw)

	expected := Digest(t.IssuedAt, t.Identity, secret)
	authentic := digestEqual(t.Digest, expected)
	fresh := now-t.IssuedAt < int64(window/time.Second) && t.IssuedAt > 0

	if !authentic || !fresh {
		return "", false
	}

	return t.Identity, true
}
