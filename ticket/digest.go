package ticket

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
)

// Digest computes the keyed integrity tag for a ticket: HMAC-SHA1 keyed by
// the secret over the fixed-width decimal issuance time followed by the
// identity, rendered as 40 lowercase hex characters. Hashing the padded
// timestamp form keeps the field boundary fixed, so digits cannot be shifted
// between the timestamp and an identity that starts with digits.
//
// Issuer and validator within one deployment must agree on this exact
// function and field order. Changing either invalidates every outstanding
// ticket, which is the same (acceptable) effect as rotating the secret.
func Digest(issuedAt int64, identity, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(timestampField(issuedAt)))
	mac.Write([]byte(identity))
	return hex.EncodeToString(mac.Sum(nil))
}

// digestEqual compares two hex tags in constant time.
func digestEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
